package stat

import "github.com/riftgo/server/internal/loot"

// Block is the assembled stat snapshot of one combatant. It is built
// from its sources (innate base, equipped items, passives, active
// effects) and rebuilt from scratch whenever the source set changes —
// there is no subtract path, so a rebuild is the only way a
// contribution ever leaves.
//
// Blocks are immutable: Equip, Unequip, WithEffects and friends return
// a new Block and leave the receiver untouched. A Block may therefore
// be read from any goroutine once published.
type Block struct {
	MaxLife        Value
	Armour         Value
	Evasion        Value
	Accuracy       Value
	CritChance     Value
	CritMultiplier Value

	// Per-type global damage modifiers. Base stays zero; the damage
	// pipeline folds each rolled amount through these with WithBase.
	Damage [loot.DamageTypeMax]Value
	Resist [loot.DamageTypeMax]Value
	Pen    [loot.DamageTypeMax]Value

	// Merged weapon roll windows from equipped weapons.
	WeaponMin  [loot.DamageTypeMax]float64
	WeaponMax  [loot.DamageTypeMax]float64
	WeaponCrit float64

	// Per-status bonuses and damage conversions, merged from all
	// sources. Read-only after rebuild.
	Status      map[loot.StatusTag]loot.StatusMod
	Conversions []loot.Conversion

	// CurrentLife survives rebuilds (clamped to the new maximum) and is
	// the one scalar combat writes to, via WithLife.
	CurrentLife float64

	base     Source
	equipped [loot.SlotMax]*loot.Item
	passives []Source
	effects  []Effect
}

// NewBlock builds a block from its innate source, at full life.
func NewBlock(base Source) *Block {
	b := &Block{base: base}
	b.rebuild()
	b.CurrentLife = b.MaxLife.Value()
	return b
}

// Equip returns a new block with the item in the given slot, plus
// whatever the slot previously held (nil if it was empty). Invalid
// slots return the receiver unchanged.
func (b *Block) Equip(slot loot.Slot, it *loot.Item) (*Block, *loot.Item) {
	if slot <= loot.SlotNone || slot >= loot.SlotMax {
		return b, nil
	}
	nb := b.clone()
	prev := nb.equipped[slot]
	nb.equipped[slot] = it
	nb.rebuild()
	return nb, prev
}

// Unequip returns a new block with the slot emptied and the removed
// item. Equip followed by Unequip restores every stat exactly.
func (b *Block) Unequip(slot loot.Slot) (*Block, *loot.Item) {
	if slot <= loot.SlotNone || slot >= loot.SlotMax {
		return b, nil
	}
	nb := b.clone()
	removed := nb.equipped[slot]
	nb.equipped[slot] = nil
	nb.rebuild()
	return nb, removed
}

// Equipped returns the item in a slot, or nil.
func (b *Block) Equipped(slot loot.Slot) *loot.Item {
	if slot <= loot.SlotNone || slot >= loot.SlotMax {
		return nil
	}
	return b.equipped[slot]
}

// AddPassive returns a new block with a skill-tree or scripted source
// appended. Passives contribute in insertion order.
func (b *Block) AddPassive(s Source) *Block {
	nb := b.clone()
	nb.passives = append(nb.passives, s)
	nb.rebuild()
	return nb
}

// Effects returns a copy of the active effect list, in application order.
func (b *Block) Effects() []Effect {
	out := make([]Effect, len(b.effects))
	copy(out, b.effects)
	return out
}

// WithEffects returns a new block carrying exactly the given effect
// list. Stat-modifier effects join the rebuild; ailment magnitudes do
// not touch stats, but ride along for the tick pass.
func (b *Block) WithEffects(effects []Effect) *Block {
	nb := b.clone()
	nb.effects = make([]Effect, len(effects))
	copy(nb.effects, effects)
	nb.rebuild()
	return nb
}

// WithLife returns a new block with CurrentLife set to v, clamped to
// [0, MaxLife]. No rebuild happens; stats are untouched.
func (b *Block) WithLife(v float64) *Block {
	nb := b.clone()
	max := nb.MaxLife.Value()
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	nb.CurrentLife = v
	return nb
}

// clone copies the block. Slices owned by the clone are re-made; items
// and rebuild products are immutable and may be shared.
func (b *Block) clone() *Block {
	nb := *b
	nb.passives = make([]Source, len(b.passives))
	copy(nb.passives, b.passives)
	nb.effects = make([]Effect, len(b.effects))
	copy(nb.effects, b.effects)
	return &nb
}

// rebuild reassembles every stat from scratch in stable order: innate
// base, then equipment slot by slot, then passives, then effects, each
// in insertion order. Buckets commute, so any source ordering yields
// the same numbers; the order is fixed anyway to keep rebuilds
// reproducible in logs.
func (b *Block) rebuild() {
	acc := NewAccumulator()
	if b.base != nil {
		b.base.Contribute(acc)
	}
	for slot := loot.SlotNone + 1; slot < loot.SlotMax; slot++ {
		if it := b.equipped[slot]; it != nil {
			applyItem(acc, it)
		}
	}
	for _, p := range b.passives {
		p.Contribute(acc)
	}
	for _, e := range b.effects {
		e.Contribute(acc)
	}

	b.MaxLife = acc.value(KeyMaxLife, 0)
	b.Armour = acc.value(KeyArmour, 0)
	b.Evasion = acc.value(KeyEvasion, 0)
	b.Accuracy = acc.value(KeyAccuracy, 0)
	b.CritChance = acc.value(KeyCritChance, 0)
	b.CritMultiplier = acc.value(KeyCritMultiplier, 0)
	for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
		b.Damage[dt] = acc.value(DamageKey(dt), 0)
		b.Resist[dt] = acc.value(ResistKey(dt), 0)
		b.Pen[dt] = acc.value(PenKey(dt), 0)
	}
	b.WeaponMin = acc.weaponMin
	b.WeaponMax = acc.weaponMax
	b.WeaponCrit = acc.weaponCrit
	b.Status = acc.status
	b.Conversions = acc.conversions

	if max := b.MaxLife.Value(); b.CurrentLife > max {
		b.CurrentLife = max
	}
}
