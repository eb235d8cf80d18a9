package request

import (
	"errors"
	"time"
)

var errInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// parseDate accepts calendar dates only. Hotel nights have no clock time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return t, nil
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
