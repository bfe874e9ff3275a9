package core

import "context"

// Scheduler is the single calendar resource the assistant reads and
// writes. The Google adapter implements it; tests use in-memory fakes.
type Scheduler interface {
	// ListEvents returns events overlapping the half-open window
	// [window.Start, window.End), recurring events expanded to single
	// occurrences, ordered by start time.
	ListEvents(ctx context.Context, window Interval) ([]Event, error)
	// IsFree reports whether the window has no events at all. No
	// partial-overlap tolerance, no padding around existing events.
	IsFree(ctx context.Context, window Interval) (bool, error)
	// Insert creates an event covering the slot and returns it,
	// including the calendar page link. Never retried: a duplicate
	// booking is worse than a failed one.
	Insert(ctx context.Context, summary string, slot Interval) (Event, error)
}
