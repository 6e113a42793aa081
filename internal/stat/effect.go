package stat

import "github.com/riftgo/server/internal/loot"

// EffectKind buckets effects for display and dispel rules.
type EffectKind int

const (
	EffectBuff EffectKind = iota
	EffectDebuff
	EffectAilment // damaging status (burn, poison, bleed, ...)
)

// StackPolicy says what happens when an effect arrives while another of
// the same tag is already active.
type StackPolicy int

const (
	// StackReplace resets duration and magnitude when the same tag from
	// the same source reapplies; a different source coexists.
	StackReplace StackPolicy = iota
	// StackMagnitude merges into one instance: magnitudes add, the
	// longer remaining duration wins.
	StackMagnitude
	// StackIndependent always appends a new instance.
	StackIndependent
	// StackIgnore drops the incoming effect while the tag is active.
	StackIgnore
)

// StackPolicyFromString maps a policy string (from YAML) to a
// StackPolicy. Returns -1 for unknown strings.
func StackPolicyFromString(s string) StackPolicy {
	switch s {
	case "replace":
		return StackReplace
	case "stack_magnitude":
		return StackMagnitude
	case "stack_independent":
		return StackIndependent
	case "ignore":
		return StackIgnore
	default:
		return -1
	}
}

// Effect is one active status instance on a block. Ailments carry a
// Magnitude in damage per second; buffs and debuffs carry Mods that
// join the block's rebuild while the effect lasts.
type Effect struct {
	ID        string // instance id, unique per application
	Name      string
	Kind      EffectKind
	Tag       loot.StatusTag
	Magnitude float64 // ailments: damage per second
	Remaining float64 // seconds
	Total     float64 // seconds at application
	Stacking  StackPolicy
	SourceID  int64 // combatant that applied it
	Mods      []loot.Mod
}

func (e Effect) Contribute(a *Accumulator) {
	for _, m := range e.Mods {
		a.AddMod(m)
	}
}

// Expired reports whether the effect has run out.
func (e Effect) Expired() bool { return e.Remaining <= 0 }
