package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tailortalk/internal/core"
	"tailortalk/internal/nlp"
)

type insertCall struct {
	summary string
	slot    core.Interval
}

// fakeScheduler is an in-memory core.Scheduler capturing every call.
type fakeScheduler struct {
	events    []core.Event
	listErr   error
	insertErr error
	listCalls []core.Interval
	inserted  []insertCall
}

func (f *fakeScheduler) ListEvents(_ context.Context, window core.Interval) ([]core.Event, error) {
	f.listCalls = append(f.listCalls, window)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []core.Event
	for _, ev := range f.events {
		if ev.Start.Before(window.End) && ev.End.After(window.Start) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeScheduler) IsFree(ctx context.Context, window core.Interval) (bool, error) {
	events, err := f.ListEvents(ctx, window)
	if err != nil {
		return false, err
	}
	return len(events) == 0, nil
}

func (f *fakeScheduler) Insert(_ context.Context, summary string, slot core.Interval) (core.Event, error) {
	if f.insertErr != nil {
		return core.Event{}, f.insertErr
	}
	f.inserted = append(f.inserted, insertCall{summary: summary, slot: slot})
	return core.Event{
		ID:       "created",
		Summary:  summary,
		Start:    slot.Start,
		End:      slot.End,
		HTMLLink: "https://calendar.google.com/event?eid=created",
	}, nil
}

func newTestAssistant(t *testing.T, sched core.Scheduler) (*Assistant, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	// Wednesday, 2 July 2025, 10:00 IST
	now := time.Date(2025, time.July, 2, 10, 0, 0, 0, loc)
	ex := nlp.NewExtractor(loc, nlp.DefaultDuration)
	days := nlp.NewDayResolver(ex, loc)
	a := New(sched, ex, days, "Meeting via TailorTalk", WithClock(func() time.Time { return now }))
	return a, loc
}

func TestBookingProposesFreeSlot(t *testing.T) {
	sched := &fakeScheduler{}
	a, loc := newTestAssistant(t, sched)
	s := NewSession()

	reply, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)
	require.Contains(t, reply, "Saturday, 05 July 2025 at 03:00 PM")
	require.Contains(t, reply, "yes")

	pending, ok := s.Pending()
	require.True(t, ok)
	require.Equal(t, time.Date(2025, time.July, 5, 15, 0, 0, 0, loc), pending.Start)
	require.Empty(t, sched.inserted, "proposal must not write to the calendar")
}

func TestAffirmationBooksExactlyOnce(t *testing.T) {
	sched := &fakeScheduler{}
	a, loc := newTestAssistant(t, sched)
	s := NewSession()

	_, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)

	reply, err := a.Handle(context.Background(), s, "yes")
	require.NoError(t, err)
	require.Contains(t, reply, "You're booked on Saturday, 05 July 2025 at 03:00 PM")
	require.Contains(t, reply, "https://calendar.google.com/event?eid=created")

	require.Len(t, sched.inserted, 1)
	require.Equal(t, "Meeting via TailorTalk", sched.inserted[0].summary)
	require.Equal(t, time.Date(2025, time.July, 5, 15, 0, 0, 0, loc), sched.inserted[0].slot.Start)

	_, ok := s.Pending()
	require.False(t, ok, "confirmation must clear the pending slot")
}

func TestConflictLeavesNoPending(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	sched := &fakeScheduler{events: []core.Event{{
		Summary: "Existing",
		Start:   time.Date(2025, time.July, 5, 15, 0, 0, 0, loc),
		End:     time.Date(2025, time.July, 5, 16, 0, 0, 0, loc),
	}}}
	a, _ := newTestAssistant(t, sched)
	s := NewSession()

	reply, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)
	require.Contains(t, reply, "already have an appointment")
	require.Contains(t, reply, "Saturday, 05 July 2025 at 03:00 PM")

	_, ok := s.Pending()
	require.False(t, ok)
	require.Empty(t, sched.inserted)
}

func TestQueryNeverMutatesPending(t *testing.T) {
	sched := &fakeScheduler{}
	a, loc := newTestAssistant(t, sched)
	s := NewSession()

	_, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)
	before, ok := s.Pending()
	require.True(t, ok)

	reply, err := a.Handle(context.Background(), s, "Am I free tomorrow")
	require.NoError(t, err)
	require.NotEmpty(t, reply)

	after, ok := s.Pending()
	require.True(t, ok, "query path must leave the pending slot alone")
	require.Equal(t, before, after)

	// The query asked about the whole of tomorrow.
	last := sched.listCalls[len(sched.listCalls)-1]
	require.Equal(t, time.Date(2025, time.July, 3, 0, 0, 0, 0, loc), last.Start)
	require.Equal(t, time.Date(2025, time.July, 4, 0, 0, 0, 0, loc), last.End)
}

func TestQueryDeduplicatesListing(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	start := time.Date(2025, time.July, 3, 0, 0, 0, 0, loc)
	// The same logical event listed twice, as the calendar API does when
	// an entry surfaces both as an all-day and a timed value.
	sched := &fakeScheduler{events: []core.Event{
		{Summary: "Offsite", RawStart: "2025-07-03", Start: start, End: start.AddDate(0, 0, 1), IsAllDay: true},
		{Summary: "Offsite", RawStart: "2025-07-03", Start: start, End: start.Add(8 * time.Hour)},
	}}
	a, _ := newTestAssistant(t, sched)
	s := NewSession()

	reply, err := a.Handle(context.Background(), s, "Am I free tomorrow")
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(reply, "Offsite"))
}

func TestUnparseableInputClarifies(t *testing.T) {
	sched := &fakeScheduler{}
	a, _ := newTestAssistant(t, sched)
	s := NewSession()

	reply, err := a.Handle(context.Background(), s, "hello there")
	require.NoError(t, err)
	require.Contains(t, reply, "couldn't understand the date/time")

	_, ok := s.Pending()
	require.False(t, ok)
	require.Empty(t, sched.listCalls)
}

func TestSecondProposalReplacesWithNotice(t *testing.T) {
	sched := &fakeScheduler{}
	a, loc := newTestAssistant(t, sched)
	s := NewSession()

	_, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)

	reply, err := a.Handle(context.Background(), s, "book tomorrow at 4 pm")
	require.NoError(t, err)
	require.Contains(t, reply, "Dropping the unconfirmed slot on Saturday, 05 July 2025 at 03:00 PM")

	pending, ok := s.Pending()
	require.True(t, ok)
	require.Equal(t, time.Date(2025, time.July, 3, 16, 0, 0, 0, loc), pending.Start)
	require.Empty(t, sched.inserted)
}

func TestAffirmationWithoutPendingFallsThrough(t *testing.T) {
	sched := &fakeScheduler{}
	a, _ := newTestAssistant(t, sched)
	s := NewSession()

	// No proposal outstanding: "yes" routes through the booking path,
	// finds no date phrase and asks for clarification.
	reply, err := a.Handle(context.Background(), s, "yes")
	require.NoError(t, err)
	require.Contains(t, reply, "couldn't understand the date/time")
	require.Empty(t, sched.inserted)
}

func TestCalendarFaultAbortsTurn(t *testing.T) {
	sched := &fakeScheduler{listErr: errors.New("calendar unreachable")}
	a, _ := newTestAssistant(t, sched)
	s := NewSession()

	_, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.Error(t, err)

	// The user's turn is recorded, the assistant's is not.
	history := s.History()
	require.Len(t, history, 1)
	require.Equal(t, RoleUser, history[0].Role)
}

func TestIsFreeIdempotent(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	sched := &fakeScheduler{}
	window := core.Interval{
		Start: time.Date(2025, time.July, 5, 15, 0, 0, 0, loc),
		End:   time.Date(2025, time.July, 5, 15, 30, 0, 0, loc),
	}

	first, err := sched.IsFree(context.Background(), window)
	require.NoError(t, err)
	second, err := sched.IsFree(context.Background(), window)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSessionTranscriptOrder(t *testing.T) {
	sched := &fakeScheduler{}
	a, _ := newTestAssistant(t, sched)
	s := NewSession()
	require.NotEmpty(t, s.ID)

	_, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)
	_, err = a.Handle(context.Background(), s, "yes")
	require.NoError(t, err)

	history := s.History()
	require.Len(t, history, 4)
	require.Equal(t, []Role{RoleUser, RoleAssistant, RoleUser, RoleAssistant},
		[]Role{history[0].Role, history[1].Role, history[2].Role, history[3].Role})
}
