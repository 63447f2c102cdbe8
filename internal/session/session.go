// Package session implements the single-threaded-per-session game
// runtime (C10, spec §4.10, §5). A Session owns one GameState exclusively
// and serializes every request against it through one goroutine, the way
// the teacher serializes all table mutation through a single HandRunner
// loop (internal/server/hand_runner.go) and fans state changes out to
// subscribers the way GameTable.eventSub does (internal/server/game_service.go).
// apply_action (including every auto-advance cascade it triggers) runs to
// completion before the next queued request is processed, so it is
// effectively atomic; a caller that gives up waiting on ctx abandons only
// its own response, never the session's progress (spec §5 "Cancellation").
package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/pidro-game/engine/internal/event"
	"github.com/pidro-game/engine/internal/fingerprint"
	"github.com/pidro-game/engine/internal/gameid"
	"github.com/pidro-game/engine/internal/randutil"
	"github.com/pidro-game/engine/internal/rules"
	"github.com/pidro-game/engine/internal/seat"
	"github.com/pidro-game/engine/internal/state"
)

// ErrClosed is returned by any operation submitted after Terminate.
var ErrClosed = errors.New("session: terminated")

// SignalKind distinguishes the two signal classes a session publishes
// (spec §4.10): StateUpdated fires after every successful apply_action,
// GameOver fires once, after any apply_action that emits GameWon (a
// scoring step that reaches Complete, or a Resign).
type SignalKind string

const (
	SignalStateUpdated SignalKind = "StateUpdated"
	SignalGameOver     SignalKind = "GameOver"
)

// Signal is what a subscriber receives. Events carries whatever
// event.Event values apply_action produced in this step, in emission
// order (spec §5 "same-hand events appear in apply_action emission
// order"); Winner is only set on a SignalGameOver.
type Signal struct {
	Kind   SignalKind
	GameID string
	State  state.GameState
	Events []event.Event
	Winner seat.Team
}

// Options configures a new Session. Every field is optional; zero values
// are filled with production defaults (a real clock, a time-seeded RNG, a
// generated game id, a stderr logger) the same way cmd/simulate wires up
// its own charmbracelet/log logger from a verbosity flag. Callers that
// need deterministic replay (spec §8.2 L5) supply RNG and Clock
// themselves.
type Options struct {
	GameID string
	Config state.Config
	RNG    *rand.Rand
	Clock  quartz.Clock
	Logger *log.Logger
}

type request struct {
	fn func()
}

// Session is the runtime handle for one game. All exported methods are
// safe for concurrent use: each submits a closure to the session's own
// goroutine and waits for it to run.
type Session struct {
	id     string
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand

	requests chan request
	done     chan struct{}
	closeOne sync.Once

	// Owned exclusively by run(); never touched from another goroutine.
	current state.GameState
	history []event.Event
	gameID  string
	legal   *fingerprint.Cache[[]rules.Action]

	subMu   sync.Mutex
	subs    map[int]chan Signal
	nextSub int
}

// New starts a session and returns its handle. The session's goroutine
// runs until Terminate is called.
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.RNG == nil {
		opts.RNG = randutil.Seeded(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	if opts.GameID == "" {
		opts.GameID = gameid.Generate()
	}
	cfg := opts.Config
	if cfg == (state.Config{}) {
		cfg = state.DefaultConfig()
	}

	s := &Session{
		id:       opts.GameID,
		logger:   opts.Logger.With("game_id", opts.GameID),
		clock:    opts.Clock,
		rng:      opts.RNG,
		requests: make(chan request),
		done:     make(chan struct{}),
		current:  state.New(cfg),
		gameID:   opts.GameID,
		legal:    fingerprint.NewCache[[]rules.Action](),
		subs:     make(map[int]chan Signal),
	}
	go s.run()
	return s
}

// ID returns the session's game id.
func (s *Session) ID() string { return s.gameID }

func (s *Session) run() {
	for {
		select {
		case req := <-s.requests:
			req.fn()
		case <-s.done:
			return
		}
	}
}

// submit queues fn on the session's goroutine, returning ErrClosed if the
// session has already been terminated or ctx.Err() if ctx expires first
// while the request is still queued (not yet started).
func (s *Session) submit(ctx context.Context, fn func()) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.requests <- request{fn: fn}:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ApplyAction validates and applies action on behalf of who, running
// every auto-advance cascade it triggers atomically (spec §4.5.1). On
// success it invalidates the legal-action cache, appends to history, and
// publishes a StateUpdated signal (and a GameOver signal, if the game
// just ended). If ctx is cancelled before the session starts the
// request, the submission fails with ctx.Err(); if ctx is cancelled
// after the request is already running, ApplyAction still returns
// ctx.Err() to the caller, but the session keeps going — see package
// doc.
func (s *Session) ApplyAction(ctx context.Context, who seat.Position, action rules.Action) (state.GameState, []event.Event, error) {
	type result struct {
		st     state.GameState
		events []event.Event
		err    error
	}
	resCh := make(chan result, 1)

	err := s.submit(ctx, func() {
		newState, events, err := rules.ApplyAction(s.current, s.rng, s.clock.Now(), who, action)
		if err != nil {
			resCh <- result{s.current, nil, err}
			return
		}
		s.current = newState
		s.history = append(s.history, events...)
		s.legal.InvalidateAll()
		s.publish(events)
		resCh <- result{newState, events, nil}
	})
	if err != nil {
		return state.GameState{}, nil, err
	}

	select {
	case r := <-resCh:
		return r.st, r.events, r.err
	case <-ctx.Done():
		return state.GameState{}, nil, ctx.Err()
	}
}

// GetState returns the current GameState.
func (s *Session) GetState(ctx context.Context) (state.GameState, error) {
	resCh := make(chan state.GameState, 1)
	if err := s.submit(ctx, func() { resCh <- s.current }); err != nil {
		return state.GameState{}, err
	}
	select {
	case st := <-resCh:
		return st, nil
	case <-ctx.Done():
		return state.GameState{}, ctx.Err()
	}
}

// LegalActions returns who's legal actions in the current state, served
// from the per-session fingerprint-keyed cache when available (spec
// §4.9, §4.10).
func (s *Session) LegalActions(ctx context.Context, who seat.Position) ([]rules.Action, error) {
	resCh := make(chan []rules.Action, 1)
	err := s.submit(ctx, func() {
		key := fingerprint.FingerprintFor(s.current, who)
		resCh <- s.legal.GetOrCompute(key, func() []rules.Action {
			return rules.LegalActions(s.current, who)
		})
	})
	if err != nil {
		return nil, err
	}
	select {
	case actions := <-resCh:
		return actions, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GameOver reports whether the session's game has finished.
func (s *Session) GameOver(ctx context.Context) (bool, error) {
	resCh := make(chan bool, 1)
	if err := s.submit(ctx, func() { resCh <- rules.GameOver(s.current) }); err != nil {
		return false, err
	}
	select {
	case over := <-resCh:
		return over, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Winner returns the winning team, or rules.ErrNotOver if the game has
// not yet finished.
func (s *Session) Winner(ctx context.Context) (seat.Team, error) {
	type result struct {
		team seat.Team
		err  error
	}
	resCh := make(chan result, 1)
	err := s.submit(ctx, func() {
		team, err := rules.Winner(s.current)
		resCh <- result{team, err}
	})
	if err != nil {
		return seat.NoTeam, err
	}
	select {
	case r := <-resCh:
		return r.team, r.err
	case <-ctx.Done():
		return seat.NoTeam, ctx.Err()
	}
}

// History returns every event applied so far, oldest first.
func (s *Session) History(ctx context.Context) ([]event.Event, error) {
	resCh := make(chan []event.Event, 1)
	err := s.submit(ctx, func() {
		h := make([]event.Event, len(s.history))
		copy(h, s.history)
		resCh <- h
	})
	if err != nil {
		return nil, err
	}
	select {
	case h := <-resCh:
		return h, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Reset discards the current game and history and starts a fresh game
// under cfg, publishing a StateUpdated signal for the new initial state.
func (s *Session) Reset(ctx context.Context, cfg state.Config) (state.GameState, error) {
	resCh := make(chan state.GameState, 1)
	err := s.submit(ctx, func() {
		s.current = state.New(cfg)
		s.history = nil
		s.legal.InvalidateAll()
		s.publish(nil)
		resCh <- s.current
	})
	if err != nil {
		return state.GameState{}, err
	}
	select {
	case st := <-resCh:
		return st, nil
	case <-ctx.Done():
		return state.GameState{}, ctx.Err()
	}
}

// Subscribe registers a new signal listener and returns its id (for
// Unsubscribe) and receive channel. The channel is buffered; a
// subscriber that falls behind has signals dropped rather than stalling
// the session (the session's own progress always takes precedence).
func (s *Session) Subscribe() (int, <-chan Signal) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Signal, 32)
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe removes and closes a subscriber's channel.
func (s *Session) Unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

// publish runs on the session goroutine. It always emits StateUpdated,
// logs the telemetry-worthy event kinds spec §4.10 calls out by name,
// and emits a trailing GameOver if a GameWon event is present.
func (s *Session) publish(events []event.Event) {
	update := Signal{Kind: SignalStateUpdated, GameID: s.gameID, State: s.current, Events: events}
	s.broadcast(update)

	for _, e := range events {
		switch e.Kind() {
		case event.KindSecondDealComplete:
			s.logger.Info("second deal complete")
		case event.KindDealerRobbedPack:
			s.logger.Info("dealer robbed the pack")
		case event.KindPlayerWentCold:
			s.logger.Info("player went cold")
		case event.KindGameWon:
			won := e.(event.GameWon)
			s.broadcast(Signal{Kind: SignalGameOver, GameID: s.gameID, State: s.current, Events: events, Winner: won.Team})
		}
	}
}

func (s *Session) broadcast(sig Signal) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- sig:
		default:
			s.logger.Warn("dropped signal, subscriber channel full", "subscriber", id, "kind", sig.Kind)
		}
	}
}

// Terminate stops the session's goroutine and closes every subscriber
// channel. Safe to call more than once.
func (s *Session) Terminate() {
	s.closeOne.Do(func() {
		close(s.done)
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
	})
}
