package assistant

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tailortalk/internal/calendar"
	"tailortalk/internal/core"
	"tailortalk/internal/logger"
	"tailortalk/internal/nlp"
)

// Generator rewrites a templated reply in a more conversational voice.
// It is optional; the deterministic template is always computed first
// and remains the answer whenever the generator is absent or fails.
type Generator interface {
	Rephrase(ctx context.Context, userText, reply string) (string, error)
}

// Assistant routes one user message at a time through intent
// classification, date extraction and the calendar, updating the session
// as it goes. Processing is strictly serialized per session: one message,
// one synchronous pass.
type Assistant struct {
	sched   core.Scheduler
	extract *nlp.Extractor
	days    *nlp.DayResolver
	summary string
	gen     Generator
	now     func() time.Time
}

// Option configures optional assistant collaborators.
type Option func(*Assistant)

// WithGenerator attaches a reply paraphraser.
func WithGenerator(g Generator) Option {
	return func(a *Assistant) { a.gen = g }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// New wires the pipeline around a calendar scheduler. summary is the
// fixed label written onto every booked event.
func New(sched core.Scheduler, extract *nlp.Extractor, days *nlp.DayResolver, summary string, opts ...Option) *Assistant {
	a := &Assistant{
		sched:   sched,
		extract: extract,
		days:    days,
		summary: summary,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle processes one user message and returns the assistant's reply.
// Recoverable conditions (unparseable input, slot conflicts) become
// templated replies; calendar faults propagate to the caller and abort
// the turn, leaving only the user's message in the transcript.
func (a *Assistant) Handle(ctx context.Context, s *Session, text string) (string, error) {
	s.append(RoleUser, text)
	now := a.now()

	// An affirmation consumes the pending proposal before anything else.
	if slot, ok := s.Pending(); ok && isAffirmation(text) {
		created, err := a.sched.Insert(ctx, a.summary, slot)
		if err != nil {
			return "", err
		}
		s.clearPending()
		logger.L().Info("booking confirmed",
			zap.String("session", s.ID),
			zap.String("slot", slot.String()))
		return a.reply(ctx, s, text, confirmationReply(slot, created.HTMLLink))
	}

	switch nlp.Classify(text) {
	case core.IntentQuery:
		return a.handleQuery(ctx, s, text, now)
	default:
		return a.handleBooking(ctx, s, text, now)
	}
}

// handleQuery answers availability/listing questions. It never touches
// the pending-booking slot.
func (a *Assistant) handleQuery(ctx context.Context, s *Session, text string, now time.Time) (string, error) {
	window, err := a.days.ResolveDayRange(text, now)
	if err != nil {
		return a.reply(ctx, s, text, clarificationReply())
	}

	events, err := a.sched.ListEvents(ctx, window)
	if err != nil {
		return "", err
	}
	events = calendar.DedupeForDisplay(events)

	if len(events) == 0 {
		return a.reply(ctx, s, text, freeReply(window))
	}
	return a.reply(ctx, s, text, scheduleReply(window, events))
}

// handleBooking proposes a slot for the extracted time. A free slot
// becomes the pending proposal; an earlier unconfirmed proposal is
// dropped with an explicit notice rather than silently.
func (a *Assistant) handleBooking(ctx context.Context, s *Session, text string, now time.Time) (string, error) {
	slot, err := a.extract.Extract(text, now)
	if err != nil {
		return a.reply(ctx, s, text, clarificationReply())
	}

	free, err := a.sched.IsFree(ctx, slot)
	if err != nil {
		return "", err
	}
	if !free {
		return a.reply(ctx, s, text, conflictReply(slot))
	}

	replaced, hadPending := s.setPending(slot)
	logger.L().Debug("proposal pending",
		zap.String("session", s.ID),
		zap.String("slot", slot.String()),
		zap.Bool("replaced", hadPending))
	return a.reply(ctx, s, text, proposalReply(slot, replaced, hadPending))
}

// reply records the assistant turn, giving the generator a chance to
// restate the templated text first.
func (a *Assistant) reply(ctx context.Context, s *Session, userText, reply string) (string, error) {
	if a.gen != nil {
		if rephrased, err := a.gen.Rephrase(ctx, userText, reply); err == nil && rephrased != "" {
			reply = rephrased
		} else if err != nil {
			logger.L().Debug("rephrase failed, using template", zap.Error(err))
		}
	}
	s.append(RoleAssistant, reply)
	return reply, nil
}

// isAffirmation looks for a standalone "yes" token.
func isAffirmation(text string) bool {
	for _, token := range nlp.Tokens(text) {
		if token == "yes" {
			return true
		}
	}
	return false
}
