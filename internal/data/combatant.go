package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// CombatantInfo is a simulator combatant template: innate stats, gear
// to equip at spawn, passive modifier lines, and the skill rotation.
type CombatantInfo struct {
	ID       int32
	Name     string
	Base     stat.BaseStats
	Items    []int32 // item template IDs, equipped in list order
	Passives []loot.Mod
	Skills   []int32 // skills the rotation script may pick from
	Script   string  // rotation script file name, "" = first skill on cooldown
}

// CombatantTable holds combatant templates indexed by ID.
type CombatantTable struct {
	combatants map[int32]*CombatantInfo
}

// Get returns a combatant template by ID, or nil if not found.
func (t *CombatantTable) Get(id int32) *CombatantInfo {
	return t.combatants[id]
}

// Count returns total loaded templates.
func (t *CombatantTable) Count() int {
	return len(t.combatants)
}

// --- YAML loading ---

type combatantResistEntry struct {
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
}

type combatantBaseEntry struct {
	MaxLife        float64                `yaml:"max_life"`
	Armour         float64                `yaml:"armour"`
	Evasion        float64                `yaml:"evasion"`
	Accuracy       float64                `yaml:"accuracy"`
	CritChance     float64                `yaml:"crit_chance"`
	CritMultiplier float64                `yaml:"crit_multiplier"`
	Resists        []combatantResistEntry `yaml:"resists"`
}

type combatantModEntry struct {
	Stat  string  `yaml:"stat"`
	Class string  `yaml:"class"`
	Value float64 `yaml:"value"`
}

type combatantEntry struct {
	CombatantID int32               `yaml:"combatant_id"`
	Name        string              `yaml:"name"`
	Base        combatantBaseEntry  `yaml:"base"`
	Items       []int32             `yaml:"items"`
	Passives    []combatantModEntry `yaml:"passives"`
	Skills      []int32             `yaml:"skills"`
	Script      string              `yaml:"script"`
}

type combatantListFile struct {
	Combatants []combatantEntry `yaml:"combatants"`
}

// LoadCombatantTable loads combatant templates from YAML.
func LoadCombatantTable(path string) (*CombatantTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read combatants: %w", err)
	}
	var f combatantListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse combatants: %w", err)
	}
	t := &CombatantTable{combatants: make(map[int32]*CombatantInfo, len(f.Combatants))}
	for i := range f.Combatants {
		e := &f.Combatants[i]
		info := &CombatantInfo{
			ID:     e.CombatantID,
			Name:   e.Name,
			Items:  e.Items,
			Skills: e.Skills,
			Script: e.Script,
			Base: stat.BaseStats{
				MaxLife:        e.Base.MaxLife,
				Armour:         e.Base.Armour,
				Evasion:        e.Base.Evasion,
				Accuracy:       e.Base.Accuracy,
				CritChance:     e.Base.CritChance,
				CritMultiplier: e.Base.CritMultiplier,
			},
		}
		if len(e.Base.Resists) > 0 {
			info.Base.Resists = make(map[loot.DamageType]float64, len(e.Base.Resists))
			for _, r := range e.Base.Resists {
				dt := loot.DamageTypeFromString(r.Type)
				if dt == loot.DamageTypeMax {
					return nil, fmt.Errorf("combatant %d: unknown resist type %q", e.CombatantID, r.Type)
				}
				info.Base.Resists[dt] = r.Value
			}
		}
		for _, m := range e.Passives {
			class := loot.ModClassFromString(m.Class)
			if class < 0 {
				return nil, fmt.Errorf("combatant %d: unknown mod class %q", e.CombatantID, m.Class)
			}
			info.Passives = append(info.Passives, loot.Mod{Stat: m.Stat, Class: class, Value: m.Value})
		}
		if info.Base.MaxLife <= 0 {
			return nil, fmt.Errorf("combatant %d: max_life must be positive", e.CombatantID)
		}
		t.combatants[info.ID] = info
	}
	return t, nil
}
