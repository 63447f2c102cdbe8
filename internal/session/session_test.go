package session

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/rules"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := New(Options{
		GameID: "test-game",
		Config: state.DefaultConfig(),
		RNG:    rand.New(rand.NewPCG(1, 2)),
	})
	t.Cleanup(s.Terminate)
	return s
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)
	return c
}

func TestApplyActionAdvancesStateAndHistory(t *testing.T) {
	s := newTestSession(t)
	c := ctx(t)

	st, events, err := s.ApplyAction(c, seat.North, rules.SelectDealer{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, state.Bidding, st.Phase)

	hist, err := s.History(c)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestApplyActionRejectsIllegalAction(t *testing.T) {
	s := newTestSession(t)
	c := ctx(t)

	_, _, err := s.ApplyAction(c, seat.North, rules.PlayCard{})
	assert.Error(t, err)

	hist, err := s.History(c)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestLegalActionsCachedBetweenCalls(t *testing.T) {
	s := newTestSession(t)
	c := ctx(t)

	first, err := s.LegalActions(c, seat.North)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := s.LegalActions(c, seat.North)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.legal.Stats().Hits, "second lookup is served from the cache")
}

func TestSubscribeReceivesStateUpdated(t *testing.T) {
	s := newTestSession(t)
	c := ctx(t)

	id, sigCh := s.Subscribe()
	defer s.Unsubscribe(id)

	_, _, err := s.ApplyAction(c, seat.North, rules.SelectDealer{})
	require.NoError(t, err)

	select {
	case sig := <-sigCh:
		assert.Equal(t, SignalStateUpdated, sig.Kind)
		assert.Equal(t, "test-game", sig.GameID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for StateUpdated signal")
	}
}

func TestSubscribeReceivesGameOverOnResign(t *testing.T) {
	s := newTestSession(t)
	c := ctx(t)

	id, sigCh := s.Subscribe()
	defer s.Unsubscribe(id)

	_, events, err := s.ApplyAction(c, seat.North, rules.Resign{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindGameWon, events[0].Kind())

	// First signal is the StateUpdated emitted for every successful apply,
	// second is the trailing GameOver triggered by the GameWon event.
	first := <-sigCh
	assert.Equal(t, SignalStateUpdated, first.Kind)
	second := <-sigCh
	assert.Equal(t, SignalGameOver, second.Kind)
	assert.Equal(t, seat.EastWest, second.Winner)

	over, err := s.GameOver(c)
	require.NoError(t, err)
	assert.True(t, over)

	winner, err := s.Winner(c)
	require.NoError(t, err)
	assert.Equal(t, seat.EastWest, winner)
}

func TestResetStartsFreshGame(t *testing.T) {
	s := newTestSession(t)
	c := ctx(t)

	_, _, err := s.ApplyAction(c, seat.North, rules.SelectDealer{})
	require.NoError(t, err)

	st, err := s.Reset(c, state.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, state.DealerSelection, st.Phase)

	hist, err := s.History(c)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestTerminateRejectsFurtherRequests(t *testing.T) {
	s := New(Options{GameID: "terminate-me"})
	s.Terminate()

	c := ctx(t)
	_, err := s.GetState(c)
	assert.ErrorIs(t, err, ErrClosed)
}
