package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

func burnEffect(id string, source int64, magnitude, duration float64) stat.Effect {
	return stat.Effect{
		ID: id, Name: "Burning", Kind: stat.EffectAilment, Tag: loot.StatusBurn,
		Magnitude: magnitude, Remaining: duration, Total: duration,
		Stacking: stat.StackReplace, SourceID: source,
	}
}

func poisonEffect(id string, source int64, magnitude, duration float64) stat.Effect {
	return stat.Effect{
		ID: id, Name: "Poisoned", Kind: stat.EffectAilment, Tag: loot.StatusPoison,
		Magnitude: magnitude, Remaining: duration, Total: duration,
		Stacking: stat.StackIndependent, SourceID: source,
	}
}

func staticEffect(id string, source int64, magnitude, duration float64) stat.Effect {
	return stat.Effect{
		ID: id, Name: "Charged", Kind: stat.EffectAilment, Tag: loot.StatusStatic,
		Magnitude: magnitude, Remaining: duration, Total: duration,
		Stacking: stat.StackMagnitude, SourceID: source,
	}
}

func TestApplyEffectsReplaceSameSourceResets(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})

	target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("a", 1, 10, 4)})
	target, _ = eng.TickEffects(target, 3) // 1s remaining
	target, applied := eng.ApplyEffects(target, []stat.Effect{burnEffect("b", 1, 25, 4)})

	require.Len(t, applied, 1)
	effects := target.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, "a", effects[0].ID) // instance survives, contents reset
	assert.Equal(t, 25.0, effects[0].Magnitude)
	assert.Equal(t, 4.0, effects[0].Remaining)
}

func TestApplyEffectsReplaceDifferentSourcesCoexist(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})

	target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("a", 1, 10, 4)})
	target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("b", 2, 15, 4)})
	assert.Len(t, target.Effects(), 2)
}

func TestApplyEffectsStackMagnitude(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})

	target, _ = eng.ApplyEffects(target, []stat.Effect{staticEffect("a", 1, 10, 6)})
	target, _ = eng.TickEffects(target, 4) // 2s remaining
	target, _ = eng.ApplyEffects(target, []stat.Effect{staticEffect("b", 2, 5, 6)})

	effects := target.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, 15.0, effects[0].Magnitude)
	assert.Equal(t, 6.0, effects[0].Remaining) // longer duration wins
}

func TestApplyEffectsStackIndependentHonoursMaxStacks(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})

	// dot table caps poison at 2 stacks
	target, applied := eng.ApplyEffects(target, []stat.Effect{
		poisonEffect("a", 1, 3, 8),
		poisonEffect("b", 1, 3, 8),
		poisonEffect("c", 1, 3, 8),
	})
	assert.Len(t, applied, 2)
	assert.Len(t, target.Effects(), 2)
}

func TestApplyEffectsIgnore(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})

	chill := stat.Effect{
		ID: "a", Name: "Chilled", Kind: stat.EffectDebuff, Tag: loot.StatusChill,
		Remaining: 2, Total: 2, Stacking: stat.StackIgnore,
		Mods: []loot.Mod{{Stat: stat.KeyEvasion, Class: loot.ModIncreased, Value: -0.3}},
	}
	target, applied := eng.ApplyEffects(target, []stat.Effect{chill})
	require.Len(t, applied, 1)

	second := chill
	second.ID = "b"
	target, applied = eng.ApplyEffects(target, []stat.Effect{second})
	assert.Empty(t, applied)
	require.Len(t, target.Effects(), 1)
	assert.Equal(t, "a", target.Effects()[0].ID)
}

func TestTickEffectsDotDamage(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})
	target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("a", 1, 10, 4)})

	target, res := eng.TickEffects(target, 1)
	assert.InDelta(t, 10.0, res.DotDamage, 1e-9)
	assert.InDelta(t, 90.0, res.LifeRemaining, 1e-9)
	assert.Empty(t, res.Expired)
	assert.Equal(t, 90.0, target.CurrentLife)
}

func TestTickEffectsCumulativeMatchesMagnitudeTimesTime(t *testing.T) {
	eng := newTestEngine(t)

	run := func(steps int, dt float64) float64 {
		target := newDefender(stat.BaseStats{MaxLife: 1000})
		target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("a", 1, 10, 4)})
		var total float64
		for i := 0; i < steps; i++ {
			var res *TickResult
			target, res = eng.TickEffects(target, dt)
			total += res.DotDamage
		}
		return total
	}

	// 4 seconds of a 10/s burn is 40 damage however the time is sliced
	assert.InDelta(t, 40.0, run(4, 1.0), 1e-9)
	assert.InDelta(t, 40.0, run(8, 0.5), 1e-9)
	assert.InDelta(t, 40.0, run(16, 0.25), 1e-9)
	// overshooting the duration pays only the remaining span
	assert.InDelta(t, 40.0, run(3, 1.5), 1e-9)
}

func TestTickEffectsExpiryAfterTick(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})
	target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("a", 1, 10, 1)})

	target, res := eng.TickEffects(target, 1)
	// the expiring tick still deals its damage
	assert.InDelta(t, 10.0, res.DotDamage, 1e-9)
	assert.Equal(t, []string{"a"}, res.Expired)
	assert.Empty(t, target.Effects())

	// ticking an empty block is a no-op
	target, res = eng.TickEffects(target, 1)
	assert.Equal(t, 0.0, res.DotDamage)
	assert.Empty(t, res.Expired)
}

func TestTickEffectsStatModifierExpiry(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100, Armour: 50})

	buff := stat.Effect{
		ID: "buff-1", Name: "Stoneskin", Kind: stat.EffectBuff, Tag: "stoneskin",
		Remaining: 2, Total: 2, Stacking: stat.StackReplace,
		Mods: []loot.Mod{{Stat: stat.KeyArmour, Class: loot.ModFlat, Value: 30}},
	}
	target, _ = eng.ApplyEffects(target, []stat.Effect{buff})
	assert.Equal(t, 80.0, target.Armour.Value())

	target, res := eng.TickEffects(target, 1)
	assert.Equal(t, 80.0, target.Armour.Value())
	assert.Equal(t, 0.0, res.DotDamage) // buffs deal nothing

	target, res = eng.TickEffects(target, 1)
	assert.Equal(t, []string{"buff-1"}, res.Expired)
	assert.Equal(t, 50.0, target.Armour.Value())
}

func TestTickEffectsLifeFloorsAtZero(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 5})
	target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("a", 1, 100, 4)})

	target, res := eng.TickEffects(target, 1)
	assert.Equal(t, 0.0, res.LifeRemaining)
	assert.Equal(t, 0.0, target.CurrentLife)
}

func TestTickEffectsZeroDt(t *testing.T) {
	eng := newTestEngine(t)
	target := newDefender(stat.BaseStats{MaxLife: 100})
	target, _ = eng.ApplyEffects(target, []stat.Effect{burnEffect("a", 1, 10, 4)})

	same, res := eng.TickEffects(target, 0)
	assert.Equal(t, 0.0, res.DotDamage)
	assert.Len(t, same.Effects(), 1)
	assert.Equal(t, 4.0, same.Effects()[0].Remaining)
}
