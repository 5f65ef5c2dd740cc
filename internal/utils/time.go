package utils

import (
	"fmt"
	"time"
)

// FormatClock renders seconds as mm:ss. Minutes are not wrapped into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatLocal returns the provided time formatted in local time.
func FormatLocal(t time.Time) string {
	return t.Local().Format(time.RFC1123)
}

// ParseDay accepts 2006-01-02 or 02/01/06.
func ParseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		day, err = time.ParseInLocation("02/01/06", s, time.Local)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse day %q: %w", s, err)
	}
	return day, nil
}
