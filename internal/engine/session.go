// Package engine runs the turn loop: it sequences action resolution with
// time advance, environment drift, skill rust and trait drift, and owns the
// session-level locking and persistence around the otherwise pure resolver.
package engine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Earnest-Williams/roomlife/internal/action"
	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// Session wraps one game in progress. All entry points take the lock, so a
// session is safe to share between the CLI loop and the HTTP server.
type Session struct {
	mu      sync.RWMutex
	st      *state.State
	exec    *action.Executor
	spaces  map[string]*content.SpaceSpec
	storage *state.Storage
	logger  *zap.Logger
}

// NewSession builds a session over loaded content. The logger may be nil.
func NewSession(actions map[string]*content.ActionSpec, items map[string]*content.ItemMeta, spaces map[string]*content.SpaceSpec, storage *state.Storage, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		exec:    action.New(actions, items, logger),
		spaces:  spaces,
		storage: storage,
		logger:  logger,
	}
}

// Start begins a session: an existing save is resumed, otherwise a fresh
// game is bootstrapped with the given seed.
func (s *Session) Start(seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage != nil && s.storage.Exists() {
		st, err := s.storage.Load()
		if err != nil {
			return fmt.Errorf("resuming save: %w", err)
		}
		s.st = st
		s.logger.Info("session resumed",
			zap.Int("day", st.World.Day),
			zap.String("slice", st.World.Slice))
		return nil
	}

	s.st = NewGame(s.spaces, s.exec, seed)
	s.logger.Info("new game started", zap.Int64("seed", seed))
	return nil
}

// State returns the live game state. Callers must treat it as read-only;
// mutation goes through Perform and Wait.
func (s *Session) State() *state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

// Executor exposes the action resolver for read-only queries such as
// validation and previews.
func (s *Session) Executor() *action.Executor {
	return s.exec
}

// Validate checks an action call against current state without running it.
func (s *Session) Validate(call action.Call) (action.Validation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exec.Validate(s.st, call)
}

// Preview reports likely tiers and effect ranges for a call.
func (s *Session) Preview(call action.Call, samples int) (*action.Preview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exec.PreviewAction(s.st, call, s.st.World.Seed, samples)
}

// Perform resolves one action, then advances time and applies environment
// drift. A validation or consume failure leaves the world exactly as it
// was, including the clock.
func (s *Session) Perform(call action.Call) (*action.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.exec.Execute(s.st, call, s.st.World.Seed)
	if err != nil {
		return nil, err
	}

	s.advanceTime()
	s.applyEnvironment()

	if s.storage != nil {
		if err := s.storage.Save(s.st); err != nil {
			s.logger.Error("autosave failed", zap.Error(err))
		}
	}
	return result, nil
}

// Wait advances time without performing an action. Needs still drift.
func (s *Session) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.Log("action.wait", nil)
	s.advanceTime()
	s.applyEnvironment()
}

// Move relocates the player to a connected space.
func (s *Session) Move(spaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dest, ok := s.st.Spaces[spaceID]
	if !ok {
		return fmt.Errorf("unknown space: %s", spaceID)
	}
	current := s.st.Spaces[s.st.World.Location]
	if current != nil && current.SpaceID != spaceID {
		connected := false
		for _, c := range current.Connections {
			if c == spaceID {
				connected = true
				break
			}
		}
		if !connected {
			return fmt.Errorf("%s is not connected to %s", spaceID, current.SpaceID)
		}
	}
	s.st.World.Location = dest.SpaceID
	s.st.Log("player.move", map[string]any{"to": dest.SpaceID})
	return nil
}

// Save writes the current state to the session's storage.
func (s *Session) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.storage == nil {
		return fmt.Errorf("session has no storage configured")
	}
	return s.storage.Save(s.st)
}

// advanceTime moves to the next slice, rolling the day over after night.
// Callers hold the lock.
func (s *Session) advanceTime() {
	idx := s.st.SliceIndex()
	if idx == len(state.TimeSlices)-1 {
		s.st.World.Day++
		s.st.World.Slice = state.TimeSlices[0]
		s.st.Log("time.new_day", map[string]any{"day": s.st.World.Day})
	} else {
		s.st.World.Slice = state.TimeSlices[idx+1]
	}
	s.st.Log("time.advance", map[string]any{
		"day":   s.st.World.Day,
		"slice": s.st.World.Slice,
	})
}
