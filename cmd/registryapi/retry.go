package main

import "time"

// defaultMaxPollAttempts is the repository's bounded-retry policy from §6:
// PENDING and UNKNOWN are retried this many times before the caller gives
// up. It is the fallback used when config.Config.API.RetryAttempts is unset.
const defaultMaxPollAttempts = 6

// pollUntilSettled polls lookup up to maxAttempts times (falling back to
// defaultMaxPollAttempts when maxAttempts <= 0), sleeping interval between
// attempts, and returns as soon as the batch leaves PENDING/UNKNOWN. The
// final result (possibly still PENDING/UNKNOWN) is returned unconditionally;
// the caller decides how to report a timeout.
func pollUntilSettled(lookup func() (*Batch, bool), interval time.Duration, maxAttempts int) *Batch {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxPollAttempts
	}
	var last *Batch
	for attempt := 0; attempt < maxAttempts; attempt++ {
		b, ok := lookup()
		if !ok {
			return nil
		}
		last = b
		if b.Status != StatusPending && b.Status != StatusUnknown {
			return b
		}
		time.Sleep(interval)
	}
	return last
}
