package rules

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// PendingKind tags the in-flight item.
type PendingKind string

const (
	PendingKindEffect PendingKind = "EFFECT"
	PendingKindAttack PendingKind = "ATTACK"
	PendingKindCombat PendingKind = "COMBAT"
)

// Pending is the closed set of in-flight items. A nil Pending means none.
type Pending interface {
	Kind() PendingKind
	clonePending() Pending
}

// EffectSource says what produced a pending effect.
type EffectSource string

const (
	SourceSpell      EffectSource = "SPELL"
	SourceUnitEffect EffectSource = "UNIT_EFFECT"
)

// PendingEffect is a spell or unit effect awaiting the opponent's response.
type PendingEffect struct {
	Source     EffectSource
	PlayerID   string
	InstanceID string
	CardID     string
	CardName   string
	Effects    []catalog.EffectDefinition
	Target     zones.Target
}

// Kind implements Pending.
func (p *PendingEffect) Kind() PendingKind { return PendingKindEffect }

func (p *PendingEffect) clonePending() Pending {
	cp := *p
	cp.Target = p.Target.Clone()
	return &cp
}

// AttackRef identifies an attacking unit by seat, slot and instance.
type AttackRef struct {
	AttackerPlayerID   string
	AttackerSlot       int
	AttackerInstanceID string
}

// DefenderID returns the defending seat.
func (a AttackRef) DefenderID() string {
	return zones.Opponent(a.AttackerPlayerID)
}

// PendingAttack is a declared attack awaiting the defender's response.
type PendingAttack struct {
	AttackRef
}

// Kind implements Pending.
func (p *PendingAttack) Kind() PendingKind { return PendingKindAttack }

func (p *PendingAttack) clonePending() Pending {
	cp := *p
	return &cp
}

// CombatState is an attack waiting on the defender's block decision.
type CombatState struct {
	AttackRef
}

// Kind implements Pending.
func (c *CombatState) Kind() PendingKind { return PendingKindCombat }

func (c *CombatState) clonePending() Pending {
	cp := *c
	return &cp
}

// PendingSlot holds at most one in-flight item.
type PendingSlot struct {
	item Pending
}

// NewPendingSlot creates an empty slot.
func NewPendingSlot() *PendingSlot {
	return &PendingSlot{}
}

// Set records item. Filling an occupied slot is an engine fault.
func (s *PendingSlot) Set(item Pending) error {
	if item == nil {
		return gameerr.Invariant("cannot record a nil pending item")
	}
	if s.item != nil {
		return gameerr.Invariant("pending %s already active while recording %s", s.item.Kind(), item.Kind())
	}
	s.item = item
	return nil
}

// Take empties the slot and returns what it held.
func (s *PendingSlot) Take() Pending {
	item := s.item
	s.item = nil
	return item
}

// Peek returns the current item without removing it.
func (s *PendingSlot) Peek() Pending {
	return s.item
}

// IsEmpty reports whether nothing is pending.
func (s *PendingSlot) IsEmpty() bool {
	return s.item == nil
}

// Effect returns the pending effect, if that is what is held.
func (s *PendingSlot) Effect() (*PendingEffect, bool) {
	p, ok := s.item.(*PendingEffect)
	return p, ok
}

// Attack returns the pending attack, if that is what is held.
func (s *PendingSlot) Attack() (*PendingAttack, bool) {
	p, ok := s.item.(*PendingAttack)
	return p, ok
}

// Combat returns the combat state, if that is what is held.
func (s *PendingSlot) Combat() (*CombatState, bool) {
	c, ok := s.item.(*CombatState)
	return c, ok
}

// Clone deep-copies the slot.
func (s *PendingSlot) Clone() *PendingSlot {
	if s.item == nil {
		return &PendingSlot{}
	}
	return &PendingSlot{item: s.item.clonePending()}
}
