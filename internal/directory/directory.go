// Package directory implements the process-wide session directory (C11,
// spec §4.11): spawn_session, terminate_session, lookup, list, and count
// over a concurrent map of game id to session.Session. Concurrent spawns
// for the same game id collapse onto one session.New call via
// singleflight, the way the teacher's equity.go fans identical work out
// across workers with errgroup rather than racing them.
package directory

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pidro-game/engine/internal/gameid"
	"github.com/pidro-game/engine/internal/session"
)

// ErrNotFound is returned by Terminate and Lookup when no session is
// registered under the given game id.
var ErrNotFound = errors.New("directory: session not found")

// Entry is one row of List's result.
type Entry struct {
	GameID  string
	Session *session.Session
}

// Directory is a process-wide, concurrency-safe registry of live
// sessions. The zero value is not usable; construct with New.
type Directory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	sf       singleflight.Group
}

// New returns an empty Directory.
func New() *Directory {
	return &Directory{sessions: make(map[string]*session.Session)}
}

// Spawn starts a new session and registers it under opts.GameID,
// generating one via gameid.Generate if opts.GameID is empty. Concurrent
// Spawn calls for the same (explicit) game id are collapsed by
// singleflight so only one session.New runs; all callers receive the
// same handle.
func (d *Directory) Spawn(opts session.Options) *session.Session {
	key := opts.GameID
	if key == "" {
		key = gameid.Generate()
		opts.GameID = key
	}

	v, _, _ := d.sf.Do(key, func() (any, error) {
		d.mu.RLock()
		if existing, ok := d.sessions[key]; ok {
			d.mu.RUnlock()
			return existing, nil
		}
		d.mu.RUnlock()

		s := session.New(opts)
		d.mu.Lock()
		d.sessions[key] = s
		d.mu.Unlock()
		return s, nil
	})
	return v.(*session.Session)
}

// Terminate stops and deregisters the session for gameID. It returns
// ErrNotFound if no such session is registered; terminated sessions are
// never restarted automatically (spec §4.11).
func (d *Directory) Terminate(gameID string) error {
	d.mu.Lock()
	s, ok := d.sessions[gameID]
	if ok {
		delete(d.sessions, gameID)
	}
	d.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.Terminate()
	return nil
}

// Lookup returns the session registered under gameID, if any.
func (d *Directory) Lookup(gameID string) (*session.Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.sessions[gameID]
	return s, ok
}

// List returns every registered (game id, session) pair. The order is
// unspecified.
func (d *Directory) List() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entries := make([]Entry, 0, len(d.sessions))
	for id, s := range d.sessions {
		entries = append(entries, Entry{GameID: id, Session: s})
	}
	return entries
}

// Count returns the number of live sessions.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}

// StopAll terminates and deregisters every session concurrently,
// returning the first error encountered (session.Terminate never
// errors today, but the errgroup shape matches the teacher's worker
// fan-out for when it might). Intended for process shutdown.
func (d *Directory) StopAll(ctx context.Context) error {
	d.mu.Lock()
	sessions := make([]*session.Session, 0, len(d.sessions))
	for _, s := range d.sessions {
		sessions = append(sessions, s)
	}
	d.sessions = make(map[string]*session.Session)
	d.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)
	for _, s := range sessions {
		g.Go(func() error {
			s.Terminate()
			return nil
		})
	}
	return g.Wait()
}
