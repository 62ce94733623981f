package utils

import "time"

// ParseDateTime accepts RFC3339 timestamps and the date-only form used by
// the dashboard date pickers.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
