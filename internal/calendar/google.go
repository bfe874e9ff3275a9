package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"tailortalk/internal/core"
	"tailortalk/internal/logger"
)

const (
	// listTimeout bounds each events.list round-trip so a hung calendar
	// call cannot hang the whole conversation turn.
	listTimeout = 10 * time.Second
	// insertTimeout bounds the single, never-retried write.
	insertTimeout = 15 * time.Second
	// listAttempts is one try plus one retry for the idempotent read.
	listAttempts = 2
)

// GoogleScheduler is the calendar pass-through: a thin client over the
// Google Calendar events list/insert operations for one calendar
// resource, authenticated with a static service-account credential.
type GoogleScheduler struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
}

// NewGoogleScheduler reads the service-account JSON once at startup and
// builds the calendar client from it.
func NewGoogleScheduler(ctx context.Context, credsFile, calendarID string, loc *time.Location) (*GoogleScheduler, error) {
	data, err := os.ReadFile(credsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("build calendar service: %w", err)
	}

	return &GoogleScheduler{svc: svc, calendarID: calendarID, loc: loc}, nil
}

// ListEvents fetches events overlapping [window.Start, window.End),
// recurring events expanded, ordered by start time. The read is
// idempotent, so a failed attempt gets one retry.
func (g *GoogleScheduler) ListEvents(ctx context.Context, window core.Interval) ([]core.Event, error) {
	var events []core.Event
	var err error
	for attempt := 1; attempt <= listAttempts; attempt++ {
		events, err = g.list(ctx, window)
		if err == nil {
			return events, nil
		}
		logger.L().Warn("calendar list failed",
			zap.Int("attempt", attempt),
			zap.String("window", window.String()),
			zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("list events: %w", err)
}

func (g *GoogleScheduler) list(ctx context.Context, window core.Interval) ([]core.Event, error) {
	cctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var results []core.Event
	pageToken := ""
	for {
		req := g.svc.Events.List(g.calendarID).
			ShowDeleted(false).
			SingleEvents(true).
			TimeMin(window.Start.Format(time.RFC3339)).
			TimeMax(window.End.Format(time.RFC3339)).
			OrderBy("startTime").
			Context(cctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		page, err := req.Do()
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			results = append(results, parseEvent(item, g.loc))
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return results, nil
}

// IsFree reports whether the window has no events at all.
func (g *GoogleScheduler) IsFree(ctx context.Context, window core.Interval) (bool, error) {
	events, err := g.ListEvents(ctx, window)
	if err != nil {
		return false, err
	}
	return len(events) == 0, nil
}

// Insert writes one event. Not retried: re-sending a write that may have
// landed would double-book the slot.
func (g *GoogleScheduler) Insert(ctx context.Context, summary string, slot core.Interval) (core.Event, error) {
	cctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	body := &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: slot.Start.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: slot.End.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, body).Context(cctx).Do()
	if err != nil {
		return core.Event{}, fmt.Errorf("insert event: %w", err)
	}

	logger.L().Info("event created",
		zap.String("summary", summary),
		zap.String("slot", slot.String()))
	return parseEvent(created, g.loc), nil
}

// parseEvent converts a Google Calendar event to the unified shape.
// Timed events carry RFC3339 DateTime values; all-day events carry bare
// YYYY-MM-DD dates interpreted in the target zone.
func parseEvent(item *calendar.Event, loc *time.Location) core.Event {
	var start, end time.Time
	var rawStart string
	isAllDay := false

	if item.Start != nil && item.Start.DateTime != "" {
		rawStart = item.Start.DateTime
		start, _ = time.Parse(time.RFC3339, item.Start.DateTime)
		start = start.In(loc)
		if item.End != nil {
			end, _ = time.Parse(time.RFC3339, item.End.DateTime)
			end = end.In(loc)
		}
	} else if item.Start != nil {
		rawStart = item.Start.Date
		start, _ = time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if item.End != nil {
			// Google end dates for all-day events are exclusive.
			end, _ = time.ParseInLocation("2006-01-02", item.End.Date, loc)
		}
		isAllDay = true
	}

	return core.Event{
		ID:       item.Id,
		Summary:  item.Summary,
		Start:    start,
		End:      end,
		IsAllDay: isAllDay,
		RawStart: rawStart,
		HTMLLink: item.HtmlLink,
	}
}

// DedupeForDisplay collapses entries sharing an identical
// (summary, raw start value) pair, keeping first occurrences in order.
// The calendar API can hand back the same logical event twice, once
// timed and once as an all-day value; events differing only in summary
// formatting are deliberately left alone.
func DedupeForDisplay(events []core.Event) []core.Event {
	type key struct {
		summary  string
		rawStart string
	}
	seen := make(map[key]bool, len(events))
	var result []core.Event
	for _, ev := range events {
		k := key{summary: ev.Summary, rawStart: ev.RawStart}
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, ev)
	}
	return result
}
