package main

import (
	"strconv"
	"strings"
	"time"
)

// resolveHeartbeatDate implements the §6 client-side date rule: a bare
// calendar date (MM/DD/YYYY) is combined with the current wall-clock
// time-of-day before being sent, so the resulting seconds-since-epoch string
// identifies a specific instant whose calendar date is the intended target.
// A value that already looks like a decimal seconds string passes through
// unchanged. The core processor never reads the clock; only this CLI layer
// does, at transaction-construction time.
func resolveHeartbeatDate(raw string) (string, error) {
	if !strings.Contains(raw, "/") {
		return raw, nil
	}
	date, err := time.Parse("01/02/2006", raw)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	instant := time.Date(date.Year(), date.Month(), date.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
	return strconv.FormatInt(instant.Unix(), 10), nil
}
