package stat

import "github.com/riftgo/server/internal/loot"

// Accumulator collects contributions from every stat source before a
// block is assembled. Buckets are keyed by stat name; anything a data
// file can mention lands here without the accumulator knowing it.
//
// An Accumulator is scratch space for one rebuild. It is not retained,
// shared, or mutated after Build-time.
type Accumulator struct {
	flat      map[string]float64
	increased map[string]float64
	more      map[string][]float64

	weaponMin  [loot.DamageTypeMax]float64
	weaponMax  [loot.DamageTypeMax]float64
	weaponCrit float64

	status      map[loot.StatusTag]loot.StatusMod
	conversions []loot.Conversion
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		flat:      make(map[string]float64),
		increased: make(map[string]float64),
		more:      make(map[string][]float64),
		status:    make(map[loot.StatusTag]loot.StatusMod),
	}
}

// AddFlat adds a flat bonus to a stat bucket.
func (a *Accumulator) AddFlat(stat string, v float64) {
	a.flat[stat] += v
}

// AddIncreased adds to a stat's increased pool (0.5 = 50% increased).
func (a *Accumulator) AddIncreased(stat string, v float64) {
	a.increased[stat] += v
}

// AddMore appends a multiplicative stage to a stat (0.2 = 20% more).
func (a *Accumulator) AddMore(stat string, v float64) {
	a.more[stat] = append(a.more[stat], v)
}

// AddMod routes one modifier line into the right bucket.
func (a *Accumulator) AddMod(m loot.Mod) {
	switch m.Class {
	case loot.ModFlat:
		a.AddFlat(m.Stat, m.Value)
	case loot.ModIncreased:
		a.AddIncreased(m.Stat, m.Value)
	case loot.ModMore:
		a.AddMore(m.Stat, m.Value)
	}
}

// AddWeaponDamage merges a weapon's local roll window for one type.
func (a *Accumulator) AddWeaponDamage(dt loot.DamageType, min, max float64) {
	if dt < 0 || dt >= loot.DamageTypeMax {
		return
	}
	a.weaponMin[dt] += min
	a.weaponMax[dt] += max
}

// AddWeaponCrit adds local crit chance from an equipped weapon.
func (a *Accumulator) AddWeaponCrit(chance float64) {
	a.weaponCrit += chance
}

// AddStatusMod merges per-status bonuses for one tag.
func (a *Accumulator) AddStatusMod(tag loot.StatusTag, m loot.StatusMod) {
	cur := a.status[tag]
	cur.IncreasedDamage += m.IncreasedDamage
	cur.IncreasedDuration += m.IncreasedDuration
	cur.AddedChance += m.AddedChance
	for dt, f := range m.ConvertPercent {
		cur.ConvertPercent[dt] += f
	}
	a.status[tag] = cur
}

// AddConversion appends a damage conversion. Conversions keep source
// order; they are resolved in a single pass, never chained.
func (a *Accumulator) AddConversion(c loot.Conversion) {
	a.conversions = append(a.conversions, c)
}

// value assembles one named stat into a Value on top of the given base.
func (a *Accumulator) value(stat string, base float64) Value {
	v := Value{Base: base, Flat: a.flat[stat], Increased: a.increased[stat]}
	if stages := a.more[stat]; len(stages) > 0 {
		v.more = make([]float64, len(stages))
		copy(v.more, stages)
	}
	return v
}
