package timeutil

import (
	"time"
)

// WAT is the shop's business timezone, West Africa Time (UTC+1).
// Daily summaries and the activity feed bucket by WAT days.
var WAT *time.Location

func init() {
	var err error
	WAT, err = time.LoadLocation("Africa/Lagos")
	if err != nil {
		// Fallback: create fixed zone if Africa/Lagos not available
		WAT = time.FixedZone("WAT", 1*60*60) // UTC+1
	}
}

// Now returns the current time in WAT
func Now() time.Time {
	return time.Now().In(WAT)
}

// ToWAT converts any time to WAT
func ToWAT(t time.Time) time.Time {
	return t.In(WAT)
}

// ParseInWAT parses a time string in the business timezone
func ParseInWAT(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, WAT)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) in WAT for the given time
func StartOfDay(t time.Time) time.Time {
	wat := t.In(WAT)
	return time.Date(wat.Year(), wat.Month(), wat.Day(), 0, 0, 0, 0, WAT)
}

// EndOfDay returns the end of day (23:59:59.999999999) in WAT for the given time
func EndOfDay(t time.Time) time.Time {
	wat := t.In(WAT)
	return time.Date(wat.Year(), wat.Month(), wat.Day(), 23, 59, 59, 999999999, WAT)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
