package timeutil

import "time"

// DateLayout is the canonical civil date format (YYYY-MM-DD) used for
// match dates and export filenames.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ValidDate reports whether value is a well-formed YYYY-MM-DD date.
func ValidDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
