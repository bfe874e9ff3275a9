package core

import "time"

// Event is the unified calendar entry shape. The calendar service is the
// source of truth; events are never cached beyond the current request.
type Event struct {
	// Unique ID (provided by the source)
	ID      string
	Summary string
	// Timing
	Start    time.Time
	End      time.Time
	IsAllDay bool
	// RawStart is the start value exactly as the calendar API returned it
	// (RFC3339 for timed events, YYYY-MM-DD for all-day ones). Used to
	// collapse duplicate listings of the same logical event.
	RawStart string
	// Calendar event page URL
	HTMLLink string
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// InProgress checks if the event is happening right now.
func (e Event) InProgress(now time.Time) bool {
	return now.After(e.Start) && now.Before(e.End)
}
