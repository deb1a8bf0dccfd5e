package domain

import "time"

// ParseTimestamp parses a marketplace timestamp. The API emits RFC3339
// with or without sub-second precision.
func ParseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// IsFresh reports whether an event timestamp falls within the recency
// window relative to now. An unparseable timestamp counts as fresh:
// the filter fails open so a malformed event over-notifies rather than
// silently disappearing.
func IsFresh(raw string, now time.Time, window time.Duration) bool {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return true
	}
	return now.Sub(t) < window
}
