package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/riftgo/server/internal/combat"
	"github.com/riftgo/server/internal/config"
	"github.com/riftgo/server/internal/core/event"
	"github.com/riftgo/server/internal/core/system"
	"github.com/riftgo/server/internal/data"
)

// Fixed-roll fixtures so expected outcomes are exact.
const simSkillYAML = `
skills:
  - skill_id: 100
    name: "Strike"
    components:
      - {type: physical, min: 10, max: 10}
    cooldown: 1.0
  - skill_id: 101
    name: "Fireball"
    components:
      - {type: fire, min: 25, max: 25}
    statuses:
      - {tag: burn, chance: 1.0, damage_percent: 0.2}
    cooldown: 3.0
  - skill_id: 102
    name: "Jab"
    components:
      - {type: physical, min: 2, max: 2}
`

const simDotYAML = `
dots:
  - tag: burn
    name: "Burning"
    base_duration: 4.0
    tick_rate: 0.5
    stacking: replace
    max_stacks: 1
    damage_type: fire
    damaging: true
`

const simItemYAML = `
items:
  - item_id: 1
    name: "Iron Band"
    slot: ring
    mods:
      - {stat: max_life, class: flat, value: 20}
  - item_id: 2
    name: "Worn Blade"
    slot: weapon
    weapon:
      - {type: physical, min: 5, max: 5}
`

const simCombatantYAML = `
combatants:
  - combatant_id: 1
    name: "Bruiser"
    base:
      max_life: 200
      accuracy: 100
    items: [2]
    skills: [100, 101]
  - combatant_id: 2
    name: "Dummy"
    base:
      max_life: 60
      accuracy: 100
    skills: [102]
`

type simWorld struct {
	eng        *combat.Engine
	skills     *data.SkillTable
	items      *data.ItemTable
	combatants *data.CombatantTable
}

func newSimWorld(t *testing.T) *simWorld {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	skills, err := data.LoadSkillTable(write("skill_list.yaml", simSkillYAML))
	require.NoError(t, err)
	dots, err := data.LoadDotTable(write("dot_list.yaml", simDotYAML))
	require.NoError(t, err)
	items, err := data.LoadItemTable(write("item_list.yaml", simItemYAML))
	require.NoError(t, err)
	combatants, err := data.LoadCombatantTable(write("combatant_list.yaml", simCombatantYAML))
	require.NoError(t, err)

	eng, err := combat.NewEngine(config.DefaultBalance(), skills, dots, nil)
	require.NoError(t, err)
	return &simWorld{
		eng:        eng,
		skills:     skills,
		items:      items,
		combatants: combatants,
	}
}

func newTestEncounter(t *testing.T, w *simWorld, seed int64) *Encounter {
	t.Helper()
	enc, err := NewEncounter(seed, w.combatants.Get(1), w.combatants.Get(2), w.items)
	require.NoError(t, err)
	return enc
}

// newTestRunner wires the full phase pipeline around one encounter,
// without scripting or storage.
func newTestRunner(enc *Encounter, w *simWorld) (*system.Runner, *ReportSystem) {
	bus := event.NewBus()
	log := zap.NewNop()

	runner := system.NewRunner()
	report := NewReportSystem(bus, log)
	runner.Register(NewEventSystem(enc, bus))
	runner.Register(NewActionSystem(enc, w.eng, w.skills, bus, nil, log))
	runner.Register(NewEffectTickSystem(enc, w.eng, bus))
	runner.Register(report)
	runner.Register(NewPersistSystem(enc, nil, log))
	return runner, report
}
