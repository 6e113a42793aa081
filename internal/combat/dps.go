package combat

import (
	"fmt"

	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// SkillAverage 是一個技能不擲骰的期望傷害,平衡調校用。
type SkillAverage struct {
	SkillID   int32
	PerType   [loot.DamageTypeMax]float64
	Total     float64
	PerSecond float64 // Total / cooldown;無冷卻時等於 Total
}

// SkillDPS 回傳技能對此攻擊方的期望傷害:區間取中值、
// 暴擊按機率加權、轉換照常結算,完全不碰亂數,也不計防禦。
func (e *Engine) SkillDPS(attacker *stat.Block, skillID int32) (*SkillAverage, error) {
	sk := e.skills.Get(skillID)
	if sk == nil {
		return nil, fmt.Errorf("%w: %d", ErrSkillNotFound, skillID)
	}

	var raw [loot.DamageTypeMax]float64
	for _, c := range sk.Components {
		raw[c.Type] += (c.Min + c.Max) / 2
	}
	if sk.WeaponCoefficient > 0 {
		for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
			if attacker.WeaponMax[dt] > 0 {
				raw[dt] += (attacker.WeaponMin[dt] + attacker.WeaponMax[dt]) / 2 * sk.WeaponCoefficient
			}
		}
	}
	for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
		if raw[dt] > 0 {
			raw[dt] = attacker.Damage[dt].WithBase(raw[dt]).Value()
		}
	}

	// 暴擊期望值:1 + chance × (mult − 1),機率夾在 [0, 1]。
	critChance := attacker.CritChance.Value() + attacker.WeaponCrit + sk.CritChance
	if critChance < 0 {
		critChance = 0
	}
	if critChance > 1 {
		critChance = 1
	}
	critMult := attacker.CritMultiplier.Value()
	if critMult < 1 {
		critMult = e.bal.Crit.BaseMultiplier
	}
	expected := 1 + critChance*(critMult-1)
	for dt := range raw {
		raw[dt] *= expected
	}

	convs := make([]loot.Conversion, 0, len(attacker.Conversions)+len(sk.Conversions))
	convs = append(convs, attacker.Conversions...)
	convs = append(convs, sk.Conversions...)
	raw = applyConversions(raw, convs)

	avg := &SkillAverage{SkillID: skillID, PerType: raw}
	for _, v := range raw {
		avg.Total += v
	}
	avg.PerSecond = avg.Total
	if sk.Cooldown > 0 {
		avg.PerSecond = avg.Total / sk.Cooldown
	}
	return avg, nil
}
