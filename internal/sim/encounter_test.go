package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftgo/server/internal/core/event"
	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

func TestSpawnCombatantEquipsTemplateItems(t *testing.T) {
	w := newSimWorld(t)

	c, err := SpawnCombatant(7, w.combatants.Get(1), w.items)
	require.NoError(t, err)

	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "Bruiser", c.Name)
	assert.Equal(t, 200.0, c.Block.MaxLife.Value())
	assert.Equal(t, 5.0, c.Block.WeaponMin[loot.DamagePhysical])
	assert.Equal(t, 5.0, c.Block.WeaponMax[loot.DamagePhysical])
	assert.True(t, c.Alive())
}

func TestSpawnCombatantUnknownItem(t *testing.T) {
	w := newSimWorld(t)
	tpl := *w.combatants.Get(1)
	tpl.Items = []int32{999}

	_, err := SpawnCombatant(1, &tpl, w.items)
	assert.Error(t, err)
}

func TestSpawnCombatantSecondRingFallsToOtherSlot(t *testing.T) {
	w := newSimWorld(t)
	tpl := *w.combatants.Get(2)
	tpl.Items = []int32{1, 1}

	c, err := SpawnCombatant(1, &tpl, w.items)
	require.NoError(t, err)

	assert.NotNil(t, c.Block.Equipped(loot.SlotRing1))
	assert.NotNil(t, c.Block.Equipped(loot.SlotRing2))
	assert.Equal(t, 100.0, c.Block.MaxLife.Value()) // 60 + 20 + 20
}

func TestCooldownLifecycle(t *testing.T) {
	w := newSimWorld(t)
	c, err := SpawnCombatant(1, w.combatants.Get(1), w.items)
	require.NoError(t, err)

	c.StartCooldown(101, 3.0)
	assert.Equal(t, 3.0, c.CooldownLeft(101))

	c.TickCooldowns(1.0)
	assert.Equal(t, 2.0, c.CooldownLeft(101))

	c.TickCooldowns(2.0)
	assert.Equal(t, 0.0, c.CooldownLeft(101))
}

// Bruiser (200 life, 10 per hit) against Dummy (60 life, 2 per hit):
// the fallback rotation spams the first ready skill, so the fight is
// six ticks of Strike with Dummy jabbing back five times.
func TestEncounterRunsToKill(t *testing.T) {
	w := newSimWorld(t)
	enc := newTestEncounter(t, w, 42)
	runner, report := newTestRunner(enc, w)

	for i := 0; i < 50 && !enc.Over; i++ {
		runner.Tick(time.Second)
	}

	require.True(t, enc.Over)
	assert.Equal(t, enc.A.ID, enc.Winner)
	assert.Equal(t, 6, enc.Tick)
	assert.Equal(t, 0.0, enc.B.Block.CurrentLife)
	assert.Equal(t, 190.0, enc.A.Block.CurrentLife)
	assert.Equal(t, 60.0, enc.A.DamageDealt)
	assert.Equal(t, 10.0, enc.B.DamageDealt)
	assert.Len(t, enc.Hits, 11)

	// 最後一拳的事件要再翻一次緩衝才派得出去
	runner.Tick(time.Second)
	assert.Equal(t, 11, report.Hits)
}

func TestEncounterDeterministicUnderSeed(t *testing.T) {
	w := newSimWorld(t)

	run := func(seed int64) *Encounter {
		enc := newTestEncounter(t, w, seed)
		runner, _ := newTestRunner(enc, w)
		for i := 0; i < 100 && !enc.Over; i++ {
			runner.Tick(time.Second)
		}
		return enc
	}

	first := run(7)
	second := run(7)
	assert.Equal(t, first.Winner, second.Winner)
	assert.Equal(t, first.Tick, second.Tick)
	assert.Equal(t, first.Hits, second.Hits)
}

// 只有火球可放:第一發打出燃燒,之後靠冷卻空檔讓持續傷害
// 繼續磨血。
func TestEncounterAppliesStatusesFromSkills(t *testing.T) {
	w := newSimWorld(t)
	enc := newTestEncounter(t, w, 1)
	enc.A.Skills = []int32{101}
	runner, _ := newTestRunner(enc, w)

	runner.Tick(time.Second)

	effects := enc.B.Block.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, loot.StatusTag("burn"), effects[0].Tag)
	assert.Equal(t, 5.0, effects[0].Magnitude) // 25 × 0.2
	// 命中 25 + 當個 tick 的燃燒 5
	assert.Equal(t, 30.0, enc.B.Block.MaxLife.Value()-enc.B.Block.CurrentLife)
	assert.Greater(t, enc.DotDamage, 0.0)
}

func TestEffectTickDownAttributedToOpponent(t *testing.T) {
	w := newSimWorld(t)
	enc := newTestEncounter(t, w, 1)

	burn := stat.Effect{
		ID:        "burn-1",
		Kind:      stat.EffectAilment,
		Tag:       "burn",
		Magnitude: 5.0,
		Remaining: 4.0,
		Total:     4.0,
		Stacking:  stat.StackReplace,
		SourceID:  enc.A.ID,
	}
	block, _ := w.eng.ApplyEffects(enc.B.Block, []stat.Effect{burn})
	enc.B.Block = block.WithLife(3)

	NewEffectTickSystem(enc, w.eng, event.NewBus()).Update(time.Second)

	assert.True(t, enc.Over)
	assert.Equal(t, enc.A.ID, enc.Winner)
	assert.Equal(t, 0.0, enc.B.Block.CurrentLife)
}

func TestPersistSystemTolerantOfMissingStorage(t *testing.T) {
	w := newSimWorld(t)
	enc := newTestEncounter(t, w, 1)
	enc.Finish(enc.A.ID)

	// repo 為 nil 不可 panic,也不可改變勝負
	assert.NotPanics(t, func() {
		NewPersistSystem(enc, nil, nil).Update(time.Second)
	})
	assert.Equal(t, enc.A.ID, enc.Winner)
}
