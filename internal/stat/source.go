package stat

import "github.com/riftgo/server/internal/loot"

// Source is anything that contributes stats to a block: innate base
// stats, skill-tree allocations, buff effects. Equipment contributes
// through the block's slot array instead (see applyItem), so items do
// not need to know about this package.
type Source interface {
	Contribute(a *Accumulator)
}

// Mods is a plain modifier-line source: skill-tree nodes and scripted
// bonuses load as one of these.
type Mods []loot.Mod

func (m Mods) Contribute(a *Accumulator) {
	for _, mod := range m {
		a.AddMod(mod)
	}
}

// BaseStats is the innate contribution of a combatant template.
type BaseStats struct {
	MaxLife        float64
	Armour         float64
	Evasion        float64
	Accuracy       float64
	CritChance     float64
	CritMultiplier float64 // 0 = use the balance default at packet time
	Resists        map[loot.DamageType]float64
}

func (b BaseStats) Contribute(a *Accumulator) {
	a.AddFlat(KeyMaxLife, b.MaxLife)
	a.AddFlat(KeyArmour, b.Armour)
	a.AddFlat(KeyEvasion, b.Evasion)
	a.AddFlat(KeyAccuracy, b.Accuracy)
	a.AddFlat(KeyCritChance, b.CritChance)
	a.AddFlat(KeyCritMultiplier, b.CritMultiplier)
	for dt, r := range b.Resists {
		a.AddFlat(ResistKey(dt), r)
	}
}

// applyItem feeds one equipped item into the accumulator.
func applyItem(a *Accumulator, it *loot.Item) {
	for _, m := range it.Mods {
		a.AddMod(m)
	}
	if it.Weapon != nil {
		for dt, r := range it.Weapon.Ranges {
			a.AddWeaponDamage(dt, r.Min, r.Max)
		}
		a.AddWeaponCrit(it.Weapon.CritChance)
	}
	for tag, sm := range it.StatusMods {
		a.AddStatusMod(tag, sm)
	}
	for _, c := range it.Conversions {
		a.AddConversion(c)
	}
}
