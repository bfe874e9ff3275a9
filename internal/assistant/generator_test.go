package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	out string
	err error
}

func (g fakeGenerator) Rephrase(_ context.Context, _, _ string) (string, error) {
	return g.out, g.err
}

func TestGeneratorRephrasesReply(t *testing.T) {
	sched := &fakeScheduler{}
	a, _ := newTestAssistant(t, sched)
	a.gen = fakeGenerator{out: "Sure thing, that slot is open!"}
	s := NewSession()

	reply, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)
	require.Equal(t, "Sure thing, that slot is open!", reply)
}

func TestGeneratorFailureFallsBackToTemplate(t *testing.T) {
	sched := &fakeScheduler{}
	a, _ := newTestAssistant(t, sched)
	a.gen = fakeGenerator{err: errors.New("quota exceeded")}
	s := NewSession()

	reply, err := a.Handle(context.Background(), s, "Book 5th July 3PM")
	require.NoError(t, err)
	require.Contains(t, reply, "Saturday, 05 July 2025 at 03:00 PM")
}
