package combat

import (
	"go.uber.org/zap"

	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// CombatResult 是一次結算的摘要,給戰鬥記錄與模擬器統計用。
type CombatResult struct {
	TotalDamage float64 // 生命實際減少量(過量傷害不計)
	Breakdown   [loot.DamageTypeMax]float64
	WasCritical bool

	// 封包帶來、還沒套用的狀態效果。結算只負責扣血;
	// 上層拿這串去呼叫 ApplyEffects,兩步分開。
	PendingEffects []stat.Effect
}

// ==================== 傷害結算 ====================

// ResolveDamage 把一個傷害封包套到防禦方身上,回傳新的快照與
// 結算摘要。防禦方原快照不動;生命在 0 夾住,不自動判死,
// 死亡與獎勵是上層的事。
func (e *Engine) ResolveDamage(defender *stat.Block, packet *DamagePacket) (*stat.Block, *CombatResult) {
	baseline := packet.Accuracy
	if baseline <= 0 {
		baseline = e.bal.Evasion.AccuracyBaseline
	}

	result := &CombatResult{
		WasCritical:    packet.IsCritical,
		PendingEffects: packet.Pending,
	}

	var total float64
	for dt := loot.DamageType(0); dt < loot.DamageTypeMax; dt++ {
		applied := e.mitigate(defender, dt, packet.Damage[dt], packet.Penetration[dt], baseline)
		result.Breakdown[dt] = applied
		total += applied
	}

	oldLife := defender.CurrentLife
	next := defender.WithLife(oldLife - total)
	result.TotalDamage = oldLife - next.CurrentLife

	if e.log.Core().Enabled(zap.DebugLevel) {
		e.log.Debug("damage resolved",
			zap.Int64("source", packet.SourceID),
			zap.Int32("skill", packet.SkillID),
			zap.Float64("total", result.TotalDamage),
			zap.Bool("crit", packet.IsCritical),
			zap.Float64("life", next.CurrentLife))
	}
	return next, result
}
