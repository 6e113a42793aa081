package combat

import (
	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// DamagePacket 是一次攻擊離開攻擊方時的完整快照。
// 建好之後不再變動;防禦結算只讀取它,不回寫。
// 攻擊方的狀態在封包建立當下就已定格——之後攻擊方換裝
// 或中了 debuff,都不影響已經飛在路上的封包。
type DamagePacket struct {
	SourceID int64
	SkillID  int32

	// 各屬性傷害量,已含暴擊與型態轉換。
	Damage [loot.DamageTypeMax]float64

	// 單次暴擊判定的結果,整包共用。
	IsCritical     bool
	CritMultiplier float64

	// 各屬性穿透(技能 + 攻擊方裝備)。
	Penetration [loot.DamageTypeMax]float64

	// 攻擊方命中值;0 表示結算時改用平衡常數的基準值。
	Accuracy float64

	// 已擲中觸發的狀態種子,由效果引擎於結算後另行套用。
	Pending []stat.Effect
}

// Total 回傳封包內全部屬性的傷害總和(未經任何減免)。
func (p *DamagePacket) Total() float64 {
	var sum float64
	for _, v := range p.Damage {
		sum += v
	}
	return sum
}
