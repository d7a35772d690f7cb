package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Engine hosts any number of matches keyed by id. Actions on one match are
// serialized by that match; different matches proceed independently.
type Engine struct {
	logger   *zap.Logger
	catalog  *catalog.Catalog
	opts     Options
	recorder *ReplayRecorder

	mu      sync.RWMutex
	matches map[string]*Match
}

// NewEngine creates an engine over cat. recorder may be nil to disable replays.
func NewEngine(logger *zap.Logger, cat *catalog.Catalog, opts Options, recorder *ReplayRecorder) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:   logger,
		catalog:  cat,
		opts:     opts,
		recorder: recorder,
		matches:  make(map[string]*Match),
	}
}

// StartMatch creates a match with a fresh id and returns its opening state.
func (e *Engine) StartMatch(setup Setup, seed uint64) (string, *State, error) {
	matchID := uuid.NewString()
	m, err := NewMatch(e.logger, e.catalog, matchID, seed, setup, e.opts)
	if err != nil {
		e.logger.Warn("match setup failed",
			zap.String("match_id", matchID),
			zap.String("code", string(gameerr.CodeOf(err))),
			zap.Error(err),
		)
		return "", nil, err
	}

	e.mu.Lock()
	e.matches[matchID] = m
	e.mu.Unlock()

	if e.recorder != nil {
		e.recorder.StartRecording(matchID)
	}
	return matchID, m.Snapshot(), nil
}

func (e *Engine) match(matchID string) (*Match, error) {
	e.mu.RLock()
	m, ok := e.matches[matchID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrMatchNotFound)
	}
	return m, nil
}

// Submit applies an action to a match.
func (e *Engine) Submit(matchID string, a Action) (*State, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	st, err := m.Apply(a)
	if err != nil {
		return nil, err
	}
	e.saveFinished(m, st)
	return st, nil
}

// Autoplay drives both seats of a match with scripted bots for at most
// maxActions actions.
func (e *Engine) Autoplay(matchID string, maxActions int) (*State, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	st, err := PlayOut(e.logger, m, maxActions)
	if err != nil {
		return st, err
	}
	e.saveFinished(m, st)
	return st, nil
}

func (e *Engine) saveFinished(m *Match, st *State) {
	if !st.Over() || e.recorder == nil {
		return
	}
	if err := e.recorder.Save(m.Journal()); err != nil {
		e.logger.Warn("failed to save replay",
			zap.String("match_id", m.ID()),
			zap.Error(err),
		)
	}
}

// LegalActions lists the actions a match would accept right now.
func (e *Engine) LegalActions(matchID string) ([]Action, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	return m.LegalActions(), nil
}

// Snapshot returns the current state of a match.
func (e *Engine) Snapshot(matchID string) (*State, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	return m.Snapshot(), nil
}

// Subscribe registers a listener on a match's event stream.
func (e *Engine) Subscribe(matchID string, listener rules.Listener) (int, error) {
	m, err := e.match(matchID)
	if err != nil {
		return 0, err
	}
	return m.Subscribe(listener), nil
}

// Journal returns a copy of a match's action journal.
func (e *Engine) Journal(matchID string) (*Journal, error) {
	m, err := e.match(matchID)
	if err != nil {
		return nil, err
	}
	return m.Journal(), nil
}

// EndMatch removes a match. A recorded match's journal is saved first.
func (e *Engine) EndMatch(matchID string) error {
	e.mu.Lock()
	m, ok := e.matches[matchID]
	delete(e.matches, matchID)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrMatchNotFound)
	}

	if e.recorder != nil {
		defer e.recorder.StopRecording(matchID)
		if !m.Snapshot().Over() {
			if err := e.recorder.Save(m.Journal()); err != nil {
				return err
			}
		}
	}
	e.logger.Info("match removed", zap.String("match_id", matchID))
	return nil
}

// Matches lists the hosted match ids, sorted.
func (e *Engine) Matches() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.matches))
	for id := range e.matches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ErrMatchNotFound is returned for an unknown match id.
var ErrMatchNotFound = errors.New("match not found")
