package nlp

import (
	"errors"
	"strings"
	"time"

	"tailortalk/internal/core"
)

// weekdayNames maps lowercase weekday tokens for explicit day lookups.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DayResolver converts relative-range phrases into whole-day windows.
// It serves the query path only: where the extractor pins a 30-minute
// slot, the resolver always answers with full calendar days.
type DayResolver struct {
	extractor *Extractor
	loc       *time.Location
}

// NewDayResolver wraps an extractor used as the fallback for phrases the
// resolver's own keywords do not cover.
func NewDayResolver(extractor *Extractor, loc *time.Location) *DayResolver {
	return &DayResolver{extractor: extractor, loc: loc}
}

// ResolveDayRange maps text to a day-granular window, checking rules in
// priority order: "next week" / "coming week", "tomorrow", an explicit
// weekday name, then the datetime extractor widened to its whole day.
// Returns core.ErrNoRange when nothing matches.
func (r *DayResolver) ResolveDayRange(text string, now time.Time) (core.Interval, error) {
	now = now.In(r.loc)
	lower := strings.ToLower(text)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)

	if strings.Contains(lower, "next week") || strings.Contains(lower, "coming week") {
		// The following Monday, always strictly in the future (a Monday
		// "next week" starts seven days out, not today).
		offset := 7 - mondayIndexed(now.Weekday())
		start := today.AddDate(0, 0, offset)
		return core.Interval{Start: start, End: start.AddDate(0, 0, 7)}, nil
	}

	if strings.Contains(lower, "tomorrow") {
		start := today.AddDate(0, 0, 1)
		return core.Interval{Start: start, End: start.AddDate(0, 0, 1)}, nil
	}

	for _, token := range tokenize(text) {
		if day, ok := weekdayNames[token]; ok {
			// Offset 0 keeps today: asking for "Wednesday" on a
			// Wednesday means today, not next week.
			offset := (int(day) - int(now.Weekday()) + 7) % 7
			start := today.AddDate(0, 0, offset)
			return core.Interval{Start: start, End: start.AddDate(0, 0, 1)}, nil
		}
	}

	iv, err := r.extractor.Extract(text, now)
	if err != nil {
		if errors.Is(err, core.ErrNoDateFound) {
			return core.Interval{}, core.ErrNoRange
		}
		return core.Interval{}, err
	}
	return iv.Day(), nil
}

// mondayIndexed returns the weekday with Monday as 0 and Sunday as 6.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}
