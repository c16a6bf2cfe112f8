package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp accepts unix seconds or an RFC 3339 time, truncated to
// the second. An empty string is the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrInvalidInput, s)
	}
	return t.Truncate(time.Second), nil
}
