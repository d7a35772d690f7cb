package rules

import (
	"sort"
	"sync"
)

// WatcherScope defines what a watcher counts over.
type WatcherScope int

const (
	// WatcherScopeMatch tracks events for the whole match.
	WatcherScopeMatch WatcherScope = iota
	// WatcherScopeTurn tracks events for the current turn and resets when it ends.
	WatcherScopeTurn
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeMatch:
		return "MATCH"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes published events and keeps per-player tallies.
type Watcher interface {
	// Watch is called for every published event.
	Watch(event Event)

	// Reset clears the tally.
	Reset()

	// Scope reports when the registry resets the watcher.
	Scope() WatcherScope

	// Key identifies the watcher inside a registry.
	Key() string

	// Count returns the tally for a player.
	Count(playerID string) int
}

// CountingWatcher tallies events of the given types per player. The amount
// function decides how much each matching event contributes; nil counts one.
type CountingWatcher struct {
	key    string
	scope  WatcherScope
	types  map[EventType]bool
	amount func(Event) int

	counts map[string]int
}

// NewCountingWatcher creates a watcher counting the listed event types.
func NewCountingWatcher(key string, scope WatcherScope, amount func(Event) int, types ...EventType) *CountingWatcher {
	set := make(map[EventType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return &CountingWatcher{
		key:    key,
		scope:  scope,
		types:  set,
		amount: amount,
		counts: make(map[string]int),
	}
}

// Watch implements Watcher.
func (w *CountingWatcher) Watch(event Event) {
	if !w.types[event.Type] || event.PlayerID == "" {
		return
	}
	n := 1
	if w.amount != nil {
		n = w.amount(event)
	}
	w.counts[event.PlayerID] += n
}

// Reset implements Watcher.
func (w *CountingWatcher) Reset() {
	w.counts = make(map[string]int)
}

// Scope implements Watcher.
func (w *CountingWatcher) Scope() WatcherScope {
	return w.scope
}

// Key implements Watcher.
func (w *CountingWatcher) Key() string {
	return w.key
}

// Count implements Watcher.
func (w *CountingWatcher) Count(playerID string) int {
	return w.counts[playerID]
}

// WatcherRegistry fans events out to its watchers. Turn-scoped watchers are
// reset whenever a TURN_ENDED event passes through.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
}

// NewWatcherRegistry creates an empty registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher registers w, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(w Watcher) {
	if w == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.watchers[w.Key()] = w
}

// RemoveWatcher unregisters the watcher with the given key.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	delete(wr.watchers, key)
}

// Watcher returns the watcher registered under key, or nil.
func (wr *WatcherRegistry) Watcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// Keys returns the registered keys, sorted.
func (wr *WatcherRegistry) Keys() []string {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	keys := make([]string, 0, len(wr.watchers))
	for k := range wr.watchers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Notify passes the event to every watcher.
func (wr *WatcherRegistry) Notify(event Event) {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	for _, w := range wr.watchers {
		w.Watch(event)
	}
	if event.Type == EventTurnEnded {
		for _, w := range wr.watchers {
			if w.Scope() == WatcherScopeTurn {
				w.Reset()
			}
		}
	}
}

// Listener adapts the registry for EventBus.Subscribe.
func (wr *WatcherRegistry) Listener() Listener {
	return wr.Notify
}
