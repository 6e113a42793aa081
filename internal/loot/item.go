package loot

// DamageRange is a min–max roll window for one damage type.
type DamageRange struct {
	Min float64
	Max float64
}

// WeaponProfile holds the local damage of a weapon. Skills sample these
// ranges and scale them by their weapon coefficient; non-weapon items
// carry no profile (nil).
type WeaponProfile struct {
	Ranges     map[DamageType]DamageRange
	CritChance float64 // local crit chance contributed while equipped
}

// Item is an equippable piece of gear. Items are immutable once loaded;
// a stat block references them, it never writes to them.
type Item struct {
	ID     int32
	Name   string
	Slot   Slot
	Mods   []Mod
	Weapon *WeaponProfile

	// Per-status bonuses granted while equipped, keyed by tag.
	StatusMods map[StatusTag]StatusMod

	// Damage conversions granted while equipped, e.g. 50% of physical
	// taken as fire. Fractions, applied in declaration order.
	Conversions []Conversion
}

// StatusMod is the per-status bonus bundle an item can carry.
type StatusMod struct {
	IncreasedDamage   float64 // increased damage dealt by this status' DoT
	IncreasedDuration float64
	AddedChance       float64 // flat addition to the trigger chance

	// ConvertPercent[dt] feeds that fraction of dealt damage of type dt
	// into this status' magnitude ("10% of physical dealt as bleed").
	// The status can fire on gear alone; no skill seed is needed.
	ConvertPercent [DamageTypeMax]float64
}

// HasConversion reports whether any per-type conversion fraction is set.
func (m StatusMod) HasConversion() bool {
	for _, f := range m.ConvertPercent {
		if f > 0 {
			return true
		}
	}
	return false
}

// Conversion redirects a fraction of one damage type into another.
type Conversion struct {
	From     DamageType
	To       DamageType
	Fraction float64
}
