package nlp

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"tailortalk/internal/core"
)

// DefaultDuration is the length of a booked appointment when the user
// names only a start.
const DefaultDuration = 30 * time.Minute

// DefaultHour is the clock hour assumed when the text carries neither an
// explicit time nor a day-part word. "Book on 5th July" books 9 AM.
const DefaultHour = 9

// dayPart maps a coarse time-of-day word to a fixed clock hour. Checked
// in order with later matches overriding earlier ones, so a message
// containing both "afternoon" and "evening" lands on 18:00.
type dayPart struct {
	word string
	hour int
}

var dayParts = []dayPart{
	{"afternoon", 14},
	{"evening", 18},
	{"morning", 9},
	{"night", 21},
}

// explicitTimeRe recognizes a clock time stated outright: "3PM", "15:30",
// "4 pm", "noon", "midnight". Its absence triggers the default-hour rule.
var explicitTimeRe = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\b|\b\d{1,2}\s?(am|pm)\b|\bnoon\b|\bmidnight\b|\bo'?clock\b`)

// Extractor turns free text into a single proposed appointment slot in a
// fixed target time zone.
type Extractor struct {
	parser   *when.Parser
	loc      *time.Location
	duration time.Duration
}

// NewExtractor builds an extractor for the given zone and default event
// duration. A non-positive duration falls back to DefaultDuration.
func NewExtractor(loc *time.Location, duration time.Duration) *Extractor {
	if duration <= 0 {
		duration = DefaultDuration
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Extractor{parser: w, loc: loc, duration: duration}
}

// Extract finds the first date/time phrase in text and normalizes it to a
// half-open slot [start, start+duration) in the target zone. Returns
// core.ErrNoDateFound when no phrase is recognized.
//
// Normalization, in order: explicit-day anchoring ("tomorrow", weekday
// names), day-part override, default-hour fill for times the user never
// stated, prefer-future adjustment.
func (e *Extractor) Extract(text string, now time.Time) (core.Interval, error) {
	now = now.In(e.loc)

	result, err := e.parser.Parse(text, now)
	if err != nil {
		return core.Interval{}, err
	}
	if result == nil {
		return core.Interval{}, core.ErrNoDateFound
	}

	start := result.Time.In(e.loc)
	start = start.Truncate(time.Minute)

	lower := strings.ToLower(text)

	// The date-search library clusters around the first date-like
	// substring, which can drop a day keyword elsewhere in the message
	// ("afternoon evening tomorrow" must not resolve to today). A named
	// day always pins the calendar day of the result.
	weekdayAnchored := false
	if strings.Contains(lower, "tomorrow") {
		start = onDay(now.AddDate(0, 0, 1), start, e.loc)
	} else if day, ok := weekdayIn(text); ok {
		offset := (int(day) - int(now.Weekday()) + 7) % 7
		start = onDay(now.AddDate(0, 0, offset), start, e.loc)
		weekdayAnchored = true
	}

	hour, hasDayPart := dayPartHour(lower)
	explicit := explicitTimeRe.MatchString(text)

	switch {
	case hasDayPart:
		start = time.Date(start.Year(), start.Month(), start.Day(), hour, 0, 0, 0, e.loc)
	case !explicit:
		start = time.Date(start.Year(), start.Month(), start.Day(), DefaultHour, 0, 0, 0, e.loc)
	}

	if !start.After(now) {
		if weekdayAnchored {
			// A named weekday whose time already passed means the
			// next occurrence, a week out, not the next morning.
			start = start.AddDate(0, 0, 7)
		} else {
			start = preferFuture(start, now)
		}
	}

	return core.NewInterval(start, start.Add(e.duration))
}

// onDay keeps t's clock time but moves it to d's calendar day.
func onDay(d, t time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// weekdayIn returns the first weekday named in the text.
func weekdayIn(text string) (time.Weekday, bool) {
	for _, token := range tokenize(text) {
		if day, ok := weekdayNames[token]; ok {
			return day, true
		}
	}
	return time.Sunday, false
}

// dayPartHour returns the hour for the last day-part word present.
func dayPartHour(lower string) (int, bool) {
	hour, found := 0, false
	for _, dp := range dayParts {
		if strings.Contains(lower, dp.word) {
			hour, found = dp.hour, true
		}
	}
	return hour, found
}

// preferFuture bumps an already-elapsed instant forward: first to the
// same clock time the next day (covers bare times earlier today), else a
// full year ahead (covers month-day phrases that passed this year).
func preferFuture(t, now time.Time) time.Time {
	if t.After(now) {
		return t
	}
	if next := t.AddDate(0, 0, 1); next.After(now) {
		return next
	}
	return t.AddDate(1, 0, 0)
}
