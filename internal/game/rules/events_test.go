package rules

import "testing"

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	castCount := 0
	damageCount := 0

	handle1 := bus.SubscribeTyped(EventSpellCast, func(e Event) {
		castCount++
	})
	bus.SubscribeTyped(EventDamageDealt, func(e Event) {
		damageCount += e.Amount
	})

	bus.Publish(NewEvent(EventSpellCast, "0", "s001", ""))
	bus.Publish(NewEventWithAmount(EventDamageDealt, "1", "", "1", 2))
	if castCount != 1 {
		t.Fatalf("expected cast count 1, got %d", castCount)
	}
	if damageCount != 2 {
		t.Fatalf("expected damage 2, got %d", damageCount)
	}

	bus.Unsubscribe(handle1)
	bus.Publish(NewEvent(EventSpellCast, "0", "s002", ""))
	if castCount != 1 {
		t.Fatalf("expected cast count still 1 after unsubscribe, got %d", castCount)
	}
}

func TestEventBusOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(func(Event) { order = append(order, i) })
	}

	bus.Publish(NewEvent(EventTurnBegan, "0", "", ""))
	for i, v := range order {
		if v != i {
			t.Fatalf("expected listeners in subscription order, got %v", order)
		}
	}
}

func TestEventBusRejectsNil(t *testing.T) {
	bus := NewEventBus()
	if bus.Subscribe(nil) != -1 || bus.SubscribeTyped(EventTurnBegan, nil) != -1 {
		t.Fatalf("expected -1 handle for nil listener")
	}
}

func TestRecorderDrain(t *testing.T) {
	var r Recorder
	r.Emit(NewEvent(EventCardDrawn, "0", "", ""))
	r.Emit(NewEvent(EventCardDrawn, "1", "", ""))

	if len(r.Events()) != 2 {
		t.Fatalf("expected 2 buffered events, got %d", len(r.Events()))
	}
	events := r.Drain()
	if len(events) != 2 || len(r.Events()) != 0 {
		t.Fatalf("expected drain to return 2 and clear buffer")
	}
	if events[0].Slot != -1 {
		t.Fatalf("expected default slot -1, got %d", events[0].Slot)
	}
}
