package stat

import "github.com/riftgo/server/internal/loot"

// Stat keys used by modifier lines. The accumulator buckets are keyed by
// string so data files can introduce stats without code changes; the
// block reads the keys it knows about when it assembles itself.
const (
	KeyMaxLife        = "max_life"
	KeyArmour         = "armour"
	KeyEvasion        = "evasion"
	KeyAccuracy       = "accuracy"
	KeyCritChance     = "crit_chance"
	KeyCritMultiplier = "crit_multiplier"
)

// DamageKey returns the per-type global damage key ("damage_fire", ...).
func DamageKey(dt loot.DamageType) string { return "damage_" + dt.String() }

// ResistKey returns the per-type resistance key ("resist_cold", ...).
// Resistances are fractions: 0.30 on this key means 30% resistance.
func ResistKey(dt loot.DamageType) string { return "resist_" + dt.String() }

// PenKey returns the per-type penetration key ("pen_lightning", ...).
func PenKey(dt loot.DamageType) string { return "pen_" + dt.String() }
