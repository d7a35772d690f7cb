package game

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/effects"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Match owns the state of one game and applies actions to it one at a time.
// Each action runs against a clone; the clone replaces the state only when
// the action succeeds and every invariant still holds.
type Match struct {
	id     string
	logger *zap.Logger
	interp *effects.Interpreter
	opts   Options
	bus    *rules.EventBus

	mu      sync.Mutex
	pubMu   sync.Mutex // taken before mu is released, so batches publish in commit order
	state   *State
	journal *Journal
	opening []rules.Event
}

// NewMatch sets up a match and runs the first turn's begin step.
func NewMatch(logger *zap.Logger, cat *catalog.Catalog, matchID string, seed uint64, setup Setup, opts Options) (*Match, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	st, rec, err := newMatchState(cat, matchID, seed, setup, opts)
	if err != nil {
		return nil, err
	}
	m := &Match{
		id:      matchID,
		logger:  logger,
		interp:  effects.NewInterpreter(logger),
		opts:    opts,
		bus:     rules.NewEventBus(),
		state:   st,
		journal: newJournal(matchID, seed, setup, opts),
	}

	ap := m.applier(st, rec)
	ap.beginTurn()
	ap.settle()
	if err := validateState(st); err != nil {
		return nil, err
	}
	m.journal.Checksum = Checksum(st)
	m.opening = rec.Drain()
	stampEvents(m.opening, matchID)

	logger.Info("match started",
		zap.String("match_id", matchID),
		zap.Uint64("seed", seed),
		zap.Int("instances", st.Instances),
	)
	return m, nil
}

func (m *Match) applier(st *State, rec *rules.Recorder) *applier {
	return &applier{st: st, interp: m.interp, rec: rec, logger: m.logger, opts: m.opts}
}

// ID returns the match id.
func (m *Match) ID() string {
	return m.id
}

// Apply validates and applies a. On success it returns a snapshot of the new
// state; on failure the state is unchanged.
func (m *Match) Apply(a Action) (*State, error) {
	m.mu.Lock()
	next, events, err := m.apply(a)
	if err != nil {
		m.mu.Unlock()
		m.logRejection(a, err)
		return nil, err
	}
	m.state = next
	m.journal.record(a, Checksum(next))
	snapshot := next.Clone()
	m.pubMu.Lock()
	m.mu.Unlock()

	m.bus.PublishBatch(events)
	m.pubMu.Unlock()
	m.logger.Debug("action applied",
		zap.String("match_id", snapshot.MatchID),
		zap.String("player_id", a.PlayerID),
		zap.String("action", string(a.Type)),
		zap.Int("seq", snapshot.Seq),
	)
	if snapshot.Over() {
		m.logEnd(snapshot)
	}
	return snapshot, nil
}

func (m *Match) apply(a Action) (*State, []rules.Event, error) {
	if err := authorize(m.state, a); err != nil {
		return nil, nil, err
	}
	next := m.state.Clone()
	rec := &rules.Recorder{}
	ap := m.applier(next, rec)
	if err := ap.dispatch(a); err != nil {
		return nil, nil, err
	}
	ap.settle()
	if err := validateState(next); err != nil {
		return nil, nil, err
	}
	next.Seq++
	events := rec.Drain()
	stampEvents(events, next.MatchID)
	return next, events, nil
}

func (m *Match) logRejection(a Action, err error) {
	fields := []zap.Field{
		zap.String("match_id", m.ID()),
		zap.String("player_id", a.PlayerID),
		zap.String("action", string(a.Type)),
		zap.String("code", string(gameerr.CodeOf(err))),
		zap.Error(err),
	}
	if gameerr.IsInvariantViolation(err) {
		m.logger.Warn("action aborted by invariant violation", fields...)
		return
	}
	m.logger.Debug("action rejected", fields...)
}

func (m *Match) logEnd(st *State) {
	m.logger.Info("match ended",
		zap.String("match_id", st.MatchID),
		zap.String("winner", st.Result.Winner),
		zap.String("reason", st.Result.Reason),
		zap.Int("actions", st.Seq),
	)
}

// Snapshot returns a copy of the current state.
func (m *Match) Snapshot() *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Subscribe registers a listener for events published after each accepted
// action. Listeners run synchronously and must not submit actions to the
// same match.
func (m *Match) Subscribe(listener rules.Listener) int {
	return m.bus.Subscribe(listener)
}

// SubscribeTyped registers a listener for one event type.
func (m *Match) SubscribeTyped(eventType rules.EventType, callback func(rules.Event)) int {
	return m.bus.SubscribeTyped(eventType, callback)
}

// Unsubscribe removes a listener.
func (m *Match) Unsubscribe(handle int) {
	m.bus.Unsubscribe(handle)
}

// Journal returns a copy of the action journal.
func (m *Match) Journal() *Journal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.journal.clone()
}

// OpeningEvents returns the events produced by setup and the first turn start.
func (m *Match) OpeningEvents() []rules.Event {
	out := make([]rules.Event, len(m.opening))
	copy(out, m.opening)
	return out
}

// Legal reports whether a would be accepted, without applying it.
func (m *Match) Legal(a Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, _, err := m.apply(a)
	return err
}

func stampEvents(events []rules.Event, matchID string) {
	for i := range events {
		events[i].MatchID = matchID
	}
}
