package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tailortalk/internal/assistant"
	"tailortalk/internal/core"
	"tailortalk/internal/nlp"
)

// ctxScheduler surfaces whatever state its context is in, standing in for
// a calendar call that only ends when the context does.
type ctxScheduler struct{}

func (ctxScheduler) ListEvents(ctx context.Context, _ core.Interval) ([]core.Event, error) {
	return nil, ctx.Err()
}

func (ctxScheduler) IsFree(ctx context.Context, _ core.Interval) (bool, error) {
	return false, ctx.Err()
}

func (ctxScheduler) Insert(ctx context.Context, _ string, _ core.Interval) (core.Event, error) {
	return core.Event{}, ctx.Err()
}

// Quitting the chat cancels the model's context; an in-flight turn must
// observe that instead of running on a detached background context.
func TestSendCmdStopsWithModelContext(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	extractor := nlp.NewExtractor(loc, nlp.DefaultDuration)
	bot := assistant.New(ctxScheduler{}, extractor, nlp.NewDayResolver(extractor, loc), "Meeting")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewModel(ctx, bot, assistant.NewSession())
	msg := m.sendCmd("Book 5th July 3PM")()

	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	require.ErrorIs(t, reply.err, context.Canceled)
}
