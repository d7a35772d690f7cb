package rules

import (
	"sort"
	"sync"
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Match / turn events
	EventMatchStarted      EventType = "MATCH_STARTED"
	EventMatchEnded        EventType = "MATCH_ENDED"
	EventTurnBegan         EventType = "TURN_BEGAN"
	EventTurnEnded         EventType = "TURN_ENDED"
	EventTerritoryRevealed EventType = "TERRITORY_REVEALED"
	EventEraAdvanced       EventType = "ERA_ADVANCED"
	EventStageChanged      EventType = "STAGE_CHANGED"
	EventDeploymentEnded   EventType = "DEPLOYMENT_ENDED"

	// Zone events
	EventCardDrawn      EventType = "CARD_DRAWN"
	EventCardsMilled    EventType = "CARDS_MILLED"
	EventDeckShuffled   EventType = "DECK_SHUFFLED"
	EventDeckSearched   EventType = "DECK_SEARCHED"
	EventEnergyPlaced   EventType = "ENERGY_PLACED"
	EventEnergyReturned EventType = "ENERGY_RETURNED"
	EventGraveReturned  EventType = "GRAVE_RETURNED"

	// Casting / activation events
	EventUnitSummoned    EventType = "UNIT_SUMMONED"
	EventSpellCast       EventType = "SPELL_CAST"
	EventInstantCast     EventType = "INSTANT_CAST"
	EventUnitActivated   EventType = "UNIT_ACTIVATED"
	EventPendingOpened   EventType = "PENDING_OPENED"
	EventPendingResolved EventType = "PENDING_RESOLVED"
	EventResponsePassed  EventType = "RESPONSE_PASSED"
	EventEffectResolved  EventType = "EFFECT_RESOLVED"
	EventEffectFizzled   EventType = "EFFECT_FIZZLED"

	// Combat events
	EventAttackDeclared EventType = "ATTACK_DECLARED"
	EventAttackFizzled  EventType = "ATTACK_FIZZLED"
	EventBlockDeclared  EventType = "BLOCK_DECLARED"
	EventBlockSkipped   EventType = "BLOCK_SKIPPED"

	// Life / unit events
	EventDamageDealt   EventType = "DAMAGE_DEALT"
	EventLifeHealed    EventType = "LIFE_HEALED"
	EventUnitDestroyed EventType = "UNIT_DESTROYED"
	EventUnitSilenced  EventType = "UNIT_SILENCED"
	EventUnitBounced   EventType = "UNIT_BOUNCED"
	EventUnitToEnergy  EventType = "UNIT_TO_ENERGY"
	EventUnitBuffed    EventType = "UNIT_BUFFED"
	EventUnitDamaged   EventType = "UNIT_DAMAGED"
	EventUnitUntapped  EventType = "UNIT_UNTAPPED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	MatchID     string
	PlayerID    string // Player the event happened to
	SourceID    string // Card id of the source, if any
	TargetID    string // Instance id or player id affected
	Amount      int    // Cards, damage or power involved
	Slot        int    // Battle slot, -1 when not applicable
	Timestamp   time.Time
	Metadata    map[string]string
	Description string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
// Listeners are called in subscription order.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	handles := make([]int, 0, len(bus.listeners))
	for h := range bus.listeners {
		handles = append(handles, h)
	}
	sort.Ints(handles)
	for _, h := range handles {
		bus.listeners[h](event)
	}

	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// PublishBatch publishes events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, playerID, sourceID, targetID string) Event {
	return Event{
		Type:      eventType,
		PlayerID:  playerID,
		SourceID:  sourceID,
		TargetID:  targetID,
		Slot:      -1,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, playerID, sourceID, targetID string, amount int) Event {
	evt := NewEvent(eventType, playerID, sourceID, targetID)
	evt.Amount = amount
	return evt
}

// Recorder buffers events until they are flushed to a bus.
type Recorder struct {
	events []Event
}

// Emit appends an event.
func (r *Recorder) Emit(evt Event) {
	r.events = append(r.events, evt)
}

// Events returns the buffered events.
func (r *Recorder) Events() []Event {
	return r.events
}

// Drain returns and clears the buffered events.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}
