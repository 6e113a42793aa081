package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// DotInfo defines one status effect class: its default duration, how
// simultaneous applications stack, and which damage type feeds its
// magnitude. Adding a status is a YAML edit only.
type DotInfo struct {
	Tag          loot.StatusTag
	Name         string
	Kind         stat.EffectKind
	BaseDuration float64 // seconds
	TickRate     float64 // seconds between simulator tick events; damage itself is per-second
	Stacking     stat.StackPolicy
	MaxStacks    int
	DamageType   loot.DamageType // type whose dealt damage sizes the DoT; ignored for non-damaging tags
	Damaging     bool

	// Mods are stat-modifier lines every instance of this status
	// carries; they join the target's rebuild while the effect lasts.
	// This is how a chill or curse lowers stats via a YAML edit alone.
	Mods []loot.Mod
}

// DotTable holds all status definitions indexed by tag.
type DotTable struct {
	dots map[loot.StatusTag]*DotInfo
}

// Get returns a status definition by tag, or nil if not found.
func (t *DotTable) Get(tag loot.StatusTag) *DotInfo {
	return t.dots[tag]
}

// Count returns total loaded definitions.
func (t *DotTable) Count() int {
	return len(t.dots)
}

// All returns every status definition.
func (t *DotTable) All() []*DotInfo {
	result := make([]*DotInfo, 0, len(t.dots))
	for _, d := range t.dots {
		result = append(result, d)
	}
	return result
}

// --- YAML loading ---

type dotModEntry struct {
	Stat  string  `yaml:"stat"`
	Class string  `yaml:"class"` // "flat", "increased", "more"
	Value float64 `yaml:"value"`
}

type dotEntry struct {
	Tag          string        `yaml:"tag"`
	Name         string        `yaml:"name"`
	Kind         string        `yaml:"kind"` // "buff", "debuff", "ailment"
	BaseDuration float64       `yaml:"base_duration"`
	TickRate     float64       `yaml:"tick_rate"`
	Stacking     string        `yaml:"stacking"`
	MaxStacks    int           `yaml:"max_stacks"`
	DamageType   string        `yaml:"damage_type"`
	Damaging     bool          `yaml:"damaging"`
	Mods         []dotModEntry `yaml:"mods"`
}

type dotListFile struct {
	Dots []dotEntry `yaml:"dots"`
}

// LoadDotTable loads status effect definitions from YAML.
func LoadDotTable(path string) (*DotTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dots: %w", err)
	}
	var f dotListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse dots: %w", err)
	}
	t := &DotTable{dots: make(map[loot.StatusTag]*DotInfo, len(f.Dots))}
	for i := range f.Dots {
		e := &f.Dots[i]
		policy := stat.StackPolicyFromString(e.Stacking)
		if policy < 0 {
			return nil, fmt.Errorf("dot %q: unknown stacking policy %q", e.Tag, e.Stacking)
		}
		kind := stat.EffectAilment
		switch e.Kind {
		case "", "ailment":
		case "buff":
			kind = stat.EffectBuff
		case "debuff":
			kind = stat.EffectDebuff
		default:
			return nil, fmt.Errorf("dot %q: unknown kind %q", e.Tag, e.Kind)
		}
		info := &DotInfo{
			Tag:          loot.StatusTag(e.Tag),
			Name:         e.Name,
			Kind:         kind,
			BaseDuration: e.BaseDuration,
			TickRate:     e.TickRate,
			Stacking:     policy,
			MaxStacks:    e.MaxStacks,
			Damaging:     e.Damaging,
		}
		if e.Damaging {
			dt := loot.DamageTypeFromString(e.DamageType)
			if dt == loot.DamageTypeMax {
				return nil, fmt.Errorf("dot %q: unknown damage type %q", e.Tag, e.DamageType)
			}
			info.DamageType = dt
		}
		if info.BaseDuration <= 0 {
			return nil, fmt.Errorf("dot %q: base_duration must be positive", e.Tag)
		}
		for _, m := range e.Mods {
			class := loot.ModClassFromString(m.Class)
			if class < 0 {
				return nil, fmt.Errorf("dot %q: unknown mod class %q", e.Tag, m.Class)
			}
			info.Mods = append(info.Mods, loot.Mod{Stat: m.Stat, Class: class, Value: m.Value})
		}
		t.dots[info.Tag] = info
	}
	return t, nil
}
