package combat

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/riftgo/server/internal/data"
	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// ==================== 傷害封包建立 ====================

// CalculateDamage 依技能與攻擊方快照產生一個傷害封包。
// 流程固定:基礎擲骰 → 暴擊判定 → 型態轉換 → 穿透 → 狀態種子。
// 攻擊方完全不被改寫;同一顆 rng 種子產生完全相同的封包。
func (e *Engine) CalculateDamage(attacker *stat.Block, skillID int32, sourceID int64, rng *rand.Rand) (*DamagePacket, error) {
	sk := e.skills.Get(skillID)
	if sk == nil {
		return nil, fmt.Errorf("%w: %d", ErrSkillNotFound, skillID)
	}

	// 基礎擲骰:技能自身的各屬性區間,加上武器擲骰 × 武器係數,
	// 再逐屬性摺入攻擊方的全域傷害修正(flat/increased/more)。
	var raw [loot.DamageTypeMax]float64
	for _, c := range sk.Components {
		raw[c.Type] += rollRange(rng, c.Min, c.Max)
	}
	if sk.WeaponCoefficient > 0 {
		for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
			if attacker.WeaponMax[dt] > 0 {
				raw[dt] += rollRange(rng, attacker.WeaponMin[dt], attacker.WeaponMax[dt]) * sk.WeaponCoefficient
			}
		}
	}
	for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
		if raw[dt] > 0 {
			raw[dt] = attacker.Damage[dt].WithBase(raw[dt]).Value()
		}
	}

	// 暴擊:整個封包只擲一次,乘數在聚合後套到每個屬性上。
	critChance := attacker.CritChance.Value() + attacker.WeaponCrit + sk.CritChance
	critMult := attacker.CritMultiplier.Value()
	if critMult < 1 {
		critMult = e.bal.Crit.BaseMultiplier
	}
	isCrit := critChance > 0 && rng.Float64() < critChance
	if isCrit {
		for dt := range raw {
			raw[dt] *= critMult
		}
	}

	// 型態轉換:裝備來源先於技能來源,單趟結算,不鏈接。
	convs := make([]loot.Conversion, 0, len(attacker.Conversions)+len(sk.Conversions))
	convs = append(convs, attacker.Conversions...)
	convs = append(convs, sk.Conversions...)
	raw = applyConversions(raw, convs)

	// 穿透:攻擊方裝備與技能附帶的相加。
	var pen [loot.DamageTypeMax]float64
	for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
		pen[dt] = attacker.Pen[dt].Value()
	}
	for dt, v := range sk.Penetration {
		pen[dt] += v
	}

	// 狀態種子:觸發機率在此擲定;傷害型狀態的強度取自
	// 封包內關聯屬性的傷害量(已含暴擊與轉換)。
	pending, err := e.rollStatuses(attacker, sk, raw, sourceID, rng)
	if err != nil {
		return nil, err
	}

	return &DamagePacket{
		SourceID:       sourceID,
		SkillID:        skillID,
		Damage:         raw,
		IsCritical:     isCrit,
		CritMultiplier: critMult,
		Penetration:    pen,
		Accuracy:       attacker.Accuracy.Value(),
		Pending:        pending,
	}, nil
}

// rollRange 在 [min, max] 區間均勻擲骰。
func rollRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// applyConversions 單趟結算型態轉換。每個屬性的轉出總量
// 以 100% 為上限,超額時按比例縮減;轉換後的傷害不再二次轉換。
func applyConversions(raw [loot.DamageTypeMax]float64, convs []loot.Conversion) [loot.DamageTypeMax]float64 {
	if len(convs) == 0 {
		return raw
	}
	var outFraction [loot.DamageTypeMax]float64
	for _, c := range convs {
		outFraction[c.From] += c.Fraction
	}

	out := raw
	for _, c := range convs {
		if raw[c.From] <= 0 || c.Fraction <= 0 {
			continue
		}
		frac := c.Fraction
		if total := outFraction[c.From]; total > 1 {
			frac /= total
		}
		moved := raw[c.From] * frac
		out[c.From] -= moved
		out[c.To] += moved
	}
	return out
}

// rollStatuses 為技能的每個狀態種子擲觸發判定,再讓裝備的
// 狀態轉換自行長出技能沒種的狀態。引用未定義的狀態,不論
// 來自技能或裝備,一律視為資料錯誤。
func (e *Engine) rollStatuses(attacker *stat.Block, sk *data.SkillInfo, dealt [loot.DamageTypeMax]float64, sourceID int64, rng *rand.Rand) ([]stat.Effect, error) {
	var pending []stat.Effect
	seeded := make(map[loot.StatusTag]bool, len(sk.Statuses))

	for _, seed := range sk.Statuses {
		seeded[seed.Tag] = true
		dot := e.dots.Get(seed.Tag)
		if dot == nil {
			return nil, fmt.Errorf("%w: %q (skill %d)", ErrDotNotFound, seed.Tag, sk.SkillID)
		}

		bonus := attacker.Status[seed.Tag]
		chance := seed.Chance + bonus.AddedChance
		if chance <= 0 || rng.Float64() >= chance {
			continue
		}

		// 傷害型狀態:強度 = 關聯屬性傷害 × 係數,加上裝備轉換
		// 餵進來的份,再乘 (1 + 增傷)。算出來是零就種不出東西。
		var magnitude float64
		if dot.Damaging {
			magnitude = dealt[dot.DamageType]*seed.DamagePercent + convertedMagnitude(dealt, bonus)
			magnitude *= 1 + bonus.IncreasedDamage
			if magnitude <= 0 {
				continue
			}
		} else {
			magnitude = seed.Magnitude
		}

		duration := seed.Duration
		if duration <= 0 {
			duration = dot.BaseDuration
		}
		duration *= 1 + bonus.IncreasedDuration
		if duration <= 0 {
			continue
		}

		pending = append(pending, e.newEffect(dot, magnitude, duration, sourceID, rng))
	}

	// 裝備的狀態轉換在技能沒種該 tag 時自己長:觸發機率完全
	// 來自 added_chance。tag 排序後走訪,rng 的消耗順序才能
	// 隨種子重現。
	tags := make([]string, 0, len(attacker.Status))
	for tag := range attacker.Status {
		tags = append(tags, string(tag))
	}
	sort.Strings(tags)
	for _, ts := range tags {
		tag := loot.StatusTag(ts)
		if seeded[tag] {
			continue
		}
		bonus := attacker.Status[tag]
		if !bonus.HasConversion() || bonus.AddedChance <= 0 {
			continue
		}
		dot := e.dots.Get(tag)
		if dot == nil {
			return nil, fmt.Errorf("%w: %q (equipment)", ErrDotNotFound, tag)
		}
		if rng.Float64() >= bonus.AddedChance {
			continue
		}

		var magnitude float64
		if dot.Damaging {
			magnitude = convertedMagnitude(dealt, bonus) * (1 + bonus.IncreasedDamage)
			if magnitude <= 0 {
				continue
			}
		}
		duration := dot.BaseDuration * (1 + bonus.IncreasedDuration)
		if duration <= 0 {
			continue
		}

		pending = append(pending, e.newEffect(dot, magnitude, duration, sourceID, rng))
	}
	return pending, nil
}

// convertedMagnitude 把各屬性實際傷害按裝備的轉換比例加總,
// 得到餵給狀態的額外強度。
func convertedMagnitude(dealt [loot.DamageTypeMax]float64, bonus loot.StatusMod) float64 {
	var m float64
	for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
		if f := bonus.ConvertPercent[dt]; f > 0 && dealt[dt] > 0 {
			m += dealt[dt] * f
		}
	}
	return m
}

// newEffect 建立一個待套用的效果實例。實例 ID 以注入的 rng
// 產生,封包才能整顆隨種子重現;狀態定義附帶的屬性修正
// 一併掛上,重建時生效。
func (e *Engine) newEffect(dot *data.DotInfo, magnitude, duration float64, sourceID int64, rng *rand.Rand) stat.Effect {
	instID, _ := uuid.NewRandomFromReader(rng)
	return stat.Effect{
		ID:        instID.String(),
		Name:      dot.Name,
		Kind:      dot.Kind,
		Tag:       dot.Tag,
		Magnitude: magnitude,
		Remaining: duration,
		Total:     duration,
		Stacking:  dot.Stacking,
		SourceID:  sourceID,
		Mods:      dot.Mods,
	}
}
