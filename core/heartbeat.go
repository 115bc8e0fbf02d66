package core

import (
	"strconv"
	"time"
)

// heartbeat.go isolates the date arithmetic HEARTBEAT depends on (§9 design
// note), so the payout logic in handler.go never touches time parsing
// directly. A heartbeat's date is a decimal seconds-since-epoch string; the
// keys of a token's "payments" attribute are calendar dates formatted
// MM/DD/YYYY, compared as strings against that date's calendar form.

// heartbeatCalendarDate converts a decimal seconds-since-epoch string (a
// HEARTBEAT payload's Date) into its UTC calendar date, formatted
// MM/DD/YYYY.
func heartbeatCalendarDate(epochSeconds string) (string, error) {
	secs, err := strconv.ParseFloat(epochSeconds, 64)
	if err != nil {
		return "", errBadPayload("invalid heartbeat date %q: %v", epochSeconds, err)
	}
	t := time.Unix(int64(secs), 0).UTC()
	return t.Format("01/02/2006"), nil
}

// dueSchedules returns the subset of a token's "payments" attribute whose
// MM/DD/YYYY key equals the calendar date of rawDate (a decimal
// seconds-since-epoch string), in their original order.
func dueSchedules(tok Token, rawDate string) ([]KV, error) {
	payments, ok := findAttr(tok.Attributes, "payments")
	if !ok {
		return nil, errScheduleEmpty("token %s has no payment schedule", tok.Name)
	}
	if len(payments.Value) == 0 {
		return nil, errScheduleEmpty("token %s has an empty payment schedule", tok.Name)
	}

	asOf, err := heartbeatCalendarDate(rawDate)
	if err != nil {
		return nil, err
	}

	var due []KV
	for _, kv := range payments.Value {
		if kv.Key == asOf {
			due = append(due, kv)
		}
	}
	// No payment scheduled for this date is a no-op success, not a failure.
	return due, nil
}

// parsePaymentAmount parses the decimal amount string of a payments schedule
// entry.
func parsePaymentAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errBadPayload("invalid scheduled payment amount %q: %v", raw, err)
	}
	return amount, nil
}
