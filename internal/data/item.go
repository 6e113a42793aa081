package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riftgo/server/internal/loot"
)

// ItemTable holds equippable item templates indexed by ID.
type ItemTable struct {
	items map[int32]*loot.Item
}

// Get returns an item template by ID, or nil if not found.
func (t *ItemTable) Get(itemID int32) *loot.Item {
	return t.items[itemID]
}

// Count returns total loaded items.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// All returns all item templates.
func (t *ItemTable) All() []*loot.Item {
	result := make([]*loot.Item, 0, len(t.items))
	for _, it := range t.items {
		result = append(result, it)
	}
	return result
}

// --- YAML loading ---

type itemModEntry struct {
	Stat  string  `yaml:"stat"`
	Class string  `yaml:"class"` // "flat", "increased", "more"
	Value float64 `yaml:"value"`
}

type itemWeaponEntry struct {
	Type string  `yaml:"type"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

type itemStatusConvEntry struct {
	From     string  `yaml:"from"`
	Fraction float64 `yaml:"fraction"`
}

type itemStatusEntry struct {
	Tag               string                `yaml:"tag"`
	IncreasedDamage   float64               `yaml:"increased_damage"`
	IncreasedDuration float64               `yaml:"increased_duration"`
	AddedChance       float64               `yaml:"added_chance"`
	Conversions       []itemStatusConvEntry `yaml:"conversions"`
}

type itemConvEntry struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Fraction float64 `yaml:"fraction"`
}

type itemEntry struct {
	ItemID      int32             `yaml:"item_id"`
	Name        string            `yaml:"name"`
	Slot        string            `yaml:"slot"`
	Mods        []itemModEntry    `yaml:"mods"`
	Weapon      []itemWeaponEntry `yaml:"weapon"`
	WeaponCrit  float64           `yaml:"weapon_crit"`
	Statuses    []itemStatusEntry `yaml:"statuses"`
	Conversions []itemConvEntry   `yaml:"conversions"`
}

type itemListFile struct {
	Items []itemEntry `yaml:"items"`
}

// LoadItemTable loads item templates from YAML.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	t := &ItemTable{items: make(map[int32]*loot.Item, len(f.Items))}
	for i := range f.Items {
		e := &f.Items[i]
		slot := loot.SlotFromString(e.Slot)
		if slot == loot.SlotNone {
			return nil, fmt.Errorf("item %d: unknown slot %q", e.ItemID, e.Slot)
		}
		it := &loot.Item{ID: e.ItemID, Name: e.Name, Slot: slot}
		for _, m := range e.Mods {
			class := loot.ModClassFromString(m.Class)
			if class < 0 {
				return nil, fmt.Errorf("item %d: unknown mod class %q", e.ItemID, m.Class)
			}
			it.Mods = append(it.Mods, loot.Mod{Stat: m.Stat, Class: class, Value: m.Value})
		}
		if len(e.Weapon) > 0 || e.WeaponCrit > 0 {
			wp := &loot.WeaponProfile{
				Ranges:     make(map[loot.DamageType]loot.DamageRange, len(e.Weapon)),
				CritChance: e.WeaponCrit,
			}
			for _, w := range e.Weapon {
				dt := loot.DamageTypeFromString(w.Type)
				if dt == loot.DamageTypeMax {
					return nil, fmt.Errorf("item %d: unknown weapon damage type %q", e.ItemID, w.Type)
				}
				if w.Min > w.Max {
					return nil, fmt.Errorf("item %d: %s min %v above max %v", e.ItemID, w.Type, w.Min, w.Max)
				}
				wp.Ranges[dt] = loot.DamageRange{Min: w.Min, Max: w.Max}
			}
			it.Weapon = wp
		}
		if len(e.Statuses) > 0 {
			it.StatusMods = make(map[loot.StatusTag]loot.StatusMod, len(e.Statuses))
			for _, s := range e.Statuses {
				sm := loot.StatusMod{
					IncreasedDamage:   s.IncreasedDamage,
					IncreasedDuration: s.IncreasedDuration,
					AddedChance:       s.AddedChance,
				}
				for _, c := range s.Conversions {
					from := loot.DamageTypeFromString(c.From)
					if from == loot.DamageTypeMax {
						return nil, fmt.Errorf("item %d: unknown status conversion type %q", e.ItemID, c.From)
					}
					sm.ConvertPercent[from] += c.Fraction
				}
				it.StatusMods[loot.StatusTag(s.Tag)] = sm
			}
		}
		for _, c := range e.Conversions {
			from := loot.DamageTypeFromString(c.From)
			to := loot.DamageTypeFromString(c.To)
			if from == loot.DamageTypeMax || to == loot.DamageTypeMax {
				return nil, fmt.Errorf("item %d: unknown conversion %q→%q", e.ItemID, c.From, c.To)
			}
			it.Conversions = append(it.Conversions, loot.Conversion{From: from, To: to, Fraction: c.Fraction})
		}
		t.items[it.ID] = it
	}
	return t, nil
}
