package core

import (
	"fmt"
	"time"
)

// Interval is a half-open time span [Start, End) carrying an explicit
// time zone. No naive instants survive past NLP extraction.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates the end-after-start invariant.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("interval end %s is not after start %s", end, start)
	}
	return Interval{Start: start, End: end}, nil
}

// Day returns the full calendar day containing the interval's start,
// with boundaries at local midnight.
func (iv Interval) Day() Interval {
	start := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, iv.Start.Location())
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}
