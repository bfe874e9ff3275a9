package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"

	"tailortalk/internal/core"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func TestParseEventTimed(t *testing.T) {
	loc := kolkata(t)

	ev := parseEvent(&calendar.Event{
		Id:       "ev1",
		Summary:  "Standup",
		HtmlLink: "https://calendar.google.com/event?eid=ev1",
		Start:    &calendar.EventDateTime{DateTime: "2025-07-03T09:00:00+05:30"},
		End:      &calendar.EventDateTime{DateTime: "2025-07-03T09:30:00+05:30"},
	}, loc)

	require.False(t, ev.IsAllDay)
	require.Equal(t, "2025-07-03T09:00:00+05:30", ev.RawStart)
	require.True(t, ev.Start.Equal(time.Date(2025, time.July, 3, 9, 0, 0, 0, loc)))
	require.Equal(t, 30*time.Minute, ev.Duration())
	require.Equal(t, loc.String(), ev.Start.Location().String())
}

func TestParseEventAllDay(t *testing.T) {
	loc := kolkata(t)

	ev := parseEvent(&calendar.Event{
		Id:      "ev2",
		Summary: "Holiday",
		Start:   &calendar.EventDateTime{Date: "2025-07-03"},
		End:     &calendar.EventDateTime{Date: "2025-07-04"},
	}, loc)

	require.True(t, ev.IsAllDay)
	require.Equal(t, "2025-07-03", ev.RawStart)
	require.True(t, ev.Start.Equal(time.Date(2025, time.July, 3, 0, 0, 0, 0, loc)))
	require.Equal(t, 24*time.Hour, ev.Duration())
}

func TestDedupeForDisplay(t *testing.T) {
	events := []core.Event{
		{Summary: "Standup", RawStart: "2025-07-03T09:00:00+05:30"},
		{Summary: "Standup", RawStart: "2025-07-03T09:00:00+05:30"},
		{Summary: "Review", RawStart: "2025-07-03T11:00:00+05:30"},
		// Same nominal start, different summary: kept.
		{Summary: "Standup (moved)", RawStart: "2025-07-03T09:00:00+05:30"},
	}

	got := DedupeForDisplay(events)
	require.Len(t, got, 3)
	require.Equal(t, "Standup", got[0].Summary)
	require.Equal(t, "Review", got[1].Summary)
	require.Equal(t, "Standup (moved)", got[2].Summary)
}

func TestDedupeForDisplayEmpty(t *testing.T) {
	require.Empty(t, DedupeForDisplay(nil))
}
