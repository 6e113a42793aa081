package combat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftgo/server/internal/config"
	"github.com/riftgo/server/internal/data"
	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// Fixture skills use min == max rolls so expected numbers are exact.
const testSkillYAML = `
skills:
  - skill_id: 100
    name: "Strike"
    components:
      - {type: physical, min: 10, max: 10}
  - skill_id: 101
    name: "Fireball"
    components:
      - {type: fire, min: 40, max: 40}
    statuses:
      - {tag: burn, chance: 1.0, damage_percent: 0.5}
  - skill_id: 102
    name: "Frostbolt"
    components:
      - {type: cold, min: 30, max: 30}
    conversions:
      - {from: cold, to: lightning, fraction: 0.5}
  - skill_id: 103
    name: "Swing"
    weapon_coefficient: 1.0
  - skill_id: 104
    name: "Assassinate"
    crit_chance: 1.0
    components:
      - {type: physical, min: 10, max: 10}
  - skill_id: 105
    name: "Piercing Flame"
    components:
      - {type: fire, min: 100, max: 100}
    penetration:
      - {type: fire, value: 0.5}
  - skill_id: 106
    name: "Broken Seal"
    components:
      - {type: fire, min: 10, max: 10}
    statuses:
      - {tag: frostburn, chance: 1.0, damage_percent: 0.5}
  - skill_id: 107
    name: "Hex"
    components:
      - {type: chaos, min: 5, max: 5}
    statuses:
      - {tag: chill, chance: 1.0, magnitude: 0.3}
`

const testDotYAML = `
dots:
  - tag: burn
    name: "Burning"
    base_duration: 4.0
    tick_rate: 0.5
    stacking: replace
    max_stacks: 1
    damage_type: fire
    damaging: true
  - tag: bleed
    name: "Bleeding"
    base_duration: 5.0
    tick_rate: 1.0
    stacking: replace
    max_stacks: 1
    damage_type: physical
    damaging: true
  - tag: poison
    name: "Poisoned"
    base_duration: 8.0
    tick_rate: 1.0
    stacking: stack_independent
    max_stacks: 2
    damage_type: chaos
    damaging: true
  - tag: static
    name: "Charged"
    base_duration: 6.0
    tick_rate: 1.0
    stacking: stack_magnitude
    max_stacks: 1
    damage_type: lightning
    damaging: true
  - tag: chill
    name: "Chilled"
    kind: debuff
    base_duration: 2.0
    tick_rate: 1.0
    stacking: ignore
    max_stacks: 1
    mods:
      - {stat: evasion, class: increased, value: -0.3}
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	skillPath := filepath.Join(dir, "skill_list.yaml")
	dotPath := filepath.Join(dir, "dot_list.yaml")
	require.NoError(t, os.WriteFile(skillPath, []byte(testSkillYAML), 0o644))
	require.NoError(t, os.WriteFile(dotPath, []byte(testDotYAML), 0o644))

	skills, err := data.LoadSkillTable(skillPath)
	require.NoError(t, err)
	dots, err := data.LoadDotTable(dotPath)
	require.NoError(t, err)

	eng, err := NewEngine(config.DefaultBalance(), skills, dots, nil)
	require.NoError(t, err)
	return eng
}

func newAttacker(mods ...loot.Mod) *stat.Block {
	b := stat.NewBlock(stat.BaseStats{MaxLife: 100, Accuracy: 0})
	if len(mods) > 0 {
		b = b.AddPassive(stat.Mods(mods))
	}
	return b
}

func newDefender(base stat.BaseStats) *stat.Block {
	return stat.NewBlock(base)
}
