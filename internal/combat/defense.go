package combat

import (
	"math"

	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// ==================== 防禦公式 ====================
//
// 每個屬性獨立走:迴避上限 → 護甲(僅物理)→ 抗性(僅非物理)。
// 物理傷害不走抗性,非物理傷害不走護甲。

// armourReduction 回傳物理減傷比例:armour / (armour + K × incoming)。
// 減免量隨來傷變大而稀釋——大硬一擊打穿重甲,小刀幾乎全擋。
func (e *Engine) armourReduction(armour, incoming float64) float64 {
	if incoming <= 0 || armour <= 0 {
		return 0
	}
	return armour / (armour + e.bal.Armour.DamageConstant*incoming)
}

// evasionCap 回傳單屬性的傷害上限:baseline / (1 + evasion/scale)。
// 迴避不是閃避判定,是壓低單發上限的軟牆。
// 命中基準為 0 時視為不設限。
func (e *Engine) evasionCap(evasion, baseline float64) float64 {
	if baseline <= 0 {
		return math.Inf(1)
	}
	if evasion < 0 {
		evasion = 0
	}
	return baseline / (1 + evasion/e.bal.Evasion.ScaleFactor)
}

// resistFraction 回傳抗性減免比例:clamp(resist − pen, −∞, cap)。
// 只有上限沒有下限——負抗會放大傷害,而且沒有底。
func (e *Engine) resistFraction(resist, pen float64) float64 {
	f := resist - pen
	if f > e.bal.Resistances.MaxCap {
		f = e.bal.Resistances.MaxCap
	}
	return f
}

// mitigate 對單一屬性的來傷走完整減免鏈,回傳實際傷害量。
func (e *Engine) mitigate(defender *stat.Block, dt loot.DamageType, incoming, pen, accuracyBaseline float64) float64 {
	if incoming <= 0 {
		return 0
	}

	// 迴避上限
	if cap := e.evasionCap(defender.Evasion.Value(), accuracyBaseline); incoming > cap {
		incoming = cap
	}

	if dt == loot.DamagePhysical {
		// 護甲
		incoming *= 1 - e.armourReduction(defender.Armour.Value(), incoming)
	} else {
		// 抗性
		incoming *= 1 - e.resistFraction(defender.Resist[dt].Value(), pen)
	}
	if incoming < 0 {
		return 0
	}
	return incoming
}
