package zones

// Target is an optional battle-zone slot with an optional owner override.
type Target struct {
	Slot     *int
	PlayerID string
}

// NoTarget is the empty target.
var NoTarget = Target{}

// SlotTarget targets slot with no owner override.
func SlotTarget(slot int) Target {
	return Target{Slot: &slot}
}

// PlayerSlotTarget targets slot owned by playerID.
func PlayerSlotTarget(playerID string, slot int) Target {
	return Target{Slot: &slot, PlayerID: playerID}
}

// HasSlot reports whether a slot was given.
func (t Target) HasSlot() bool { return t.Slot != nil }

// SlotIndex returns the slot, or -1 when none was given.
func (t Target) SlotIndex() int {
	if t.Slot == nil {
		return -1
	}
	return *t.Slot
}

// Clone copies the slot pointer target.
func (t Target) Clone() Target {
	if t.Slot == nil {
		return Target{PlayerID: t.PlayerID}
	}
	slot := *t.Slot
	return Target{Slot: &slot, PlayerID: t.PlayerID}
}
