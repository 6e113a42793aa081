package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riftgo/server/internal/loot"
)

// DamageComponent is one base-damage roll window of a skill.
type DamageComponent struct {
	Type loot.DamageType
	Min  float64
	Max  float64
}

// StatusSeed is a status effect a skill can plant on hit. DamagePercent
// sizes damaging statuses from the dealt damage of the tag's associated
// type; Magnitude is the fixed strength of non-damaging ones.
type StatusSeed struct {
	Tag           loot.StatusTag
	Chance        float64 // base trigger chance, 0-1
	DamagePercent float64 // DoT dps as a fraction of dealt damage
	Magnitude     float64 // fixed magnitude for non-damaging statuses
	Duration      float64 // seconds; 0 = use the dot table's base duration
}

// SkillInfo holds a single skill template.
type SkillInfo struct {
	SkillID           int32
	Name              string
	Components        []DamageComponent
	WeaponCoefficient float64 // scale on the weapon roll (0 = spell, no weapon part)
	CritChance        float64 // added on top of stat + weapon crit
	Penetration       map[loot.DamageType]float64
	Conversions       []loot.Conversion
	Statuses          []StatusSeed
	Cooldown          float64 // seconds, consumed by rotation scripts
}

// SkillTable holds all skills indexed by SkillID.
type SkillTable struct {
	skills map[int32]*SkillInfo
	byName map[string]*SkillInfo
}

// Get returns a skill by ID, or nil if not found.
func (t *SkillTable) Get(skillID int32) *SkillInfo {
	return t.skills[skillID]
}

// GetByName returns a skill by its exact name, or nil if not found.
func (t *SkillTable) GetByName(name string) *SkillInfo {
	return t.byName[name]
}

// Count returns total loaded skills.
func (t *SkillTable) Count() int {
	return len(t.skills)
}

// All returns all skill infos.
func (t *SkillTable) All() []*SkillInfo {
	result := make([]*SkillInfo, 0, len(t.skills))
	for _, s := range t.skills {
		result = append(result, s)
	}
	return result
}

// --- YAML loading ---

type skillComponentEntry struct {
	Type string  `yaml:"type"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

type skillPenEntry struct {
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
}

type skillConvEntry struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Fraction float64 `yaml:"fraction"`
}

type skillStatusEntry struct {
	Tag           string  `yaml:"tag"`
	Chance        float64 `yaml:"chance"`
	DamagePercent float64 `yaml:"damage_percent"`
	Magnitude     float64 `yaml:"magnitude"`
	Duration      float64 `yaml:"duration"`
}

type skillEntry struct {
	SkillID           int32                 `yaml:"skill_id"`
	Name              string                `yaml:"name"`
	Components        []skillComponentEntry `yaml:"components"`
	WeaponCoefficient float64               `yaml:"weapon_coefficient"`
	CritChance        float64               `yaml:"crit_chance"`
	Penetration       []skillPenEntry       `yaml:"penetration"`
	Conversions       []skillConvEntry      `yaml:"conversions"`
	Statuses          []skillStatusEntry    `yaml:"statuses"`
	Cooldown          float64               `yaml:"cooldown"`
}

type skillListFile struct {
	Skills []skillEntry `yaml:"skills"`
}

// LoadSkillTable loads skill definitions from YAML.
func LoadSkillTable(path string) (*SkillTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skills: %w", err)
	}
	var f skillListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse skills: %w", err)
	}
	t := &SkillTable{
		skills: make(map[int32]*SkillInfo, len(f.Skills)),
		byName: make(map[string]*SkillInfo, len(f.Skills)),
	}
	for i := range f.Skills {
		e := &f.Skills[i]
		info := &SkillInfo{
			SkillID:           e.SkillID,
			Name:              e.Name,
			WeaponCoefficient: e.WeaponCoefficient,
			CritChance:        e.CritChance,
			Cooldown:          e.Cooldown,
		}
		for _, c := range e.Components {
			dt := loot.DamageTypeFromString(c.Type)
			if dt == loot.DamageTypeMax {
				return nil, fmt.Errorf("skill %d: unknown damage type %q", e.SkillID, c.Type)
			}
			if c.Min > c.Max {
				return nil, fmt.Errorf("skill %d: %s min %v above max %v", e.SkillID, c.Type, c.Min, c.Max)
			}
			info.Components = append(info.Components, DamageComponent{Type: dt, Min: c.Min, Max: c.Max})
		}
		if len(e.Penetration) > 0 {
			info.Penetration = make(map[loot.DamageType]float64, len(e.Penetration))
			for _, p := range e.Penetration {
				dt := loot.DamageTypeFromString(p.Type)
				if dt == loot.DamageTypeMax {
					return nil, fmt.Errorf("skill %d: unknown penetration type %q", e.SkillID, p.Type)
				}
				info.Penetration[dt] = p.Value
			}
		}
		for _, c := range e.Conversions {
			from := loot.DamageTypeFromString(c.From)
			to := loot.DamageTypeFromString(c.To)
			if from == loot.DamageTypeMax || to == loot.DamageTypeMax {
				return nil, fmt.Errorf("skill %d: unknown conversion %q→%q", e.SkillID, c.From, c.To)
			}
			info.Conversions = append(info.Conversions, loot.Conversion{From: from, To: to, Fraction: c.Fraction})
		}
		for _, s := range e.Statuses {
			info.Statuses = append(info.Statuses, StatusSeed{
				Tag:           loot.StatusTag(s.Tag),
				Chance:        s.Chance,
				DamagePercent: s.DamagePercent,
				Magnitude:     s.Magnitude,
				Duration:      s.Duration,
			})
		}
		t.skills[e.SkillID] = info
		t.byName[e.Name] = info
	}
	return t, nil
}
