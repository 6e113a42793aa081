package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/riftgo/server/internal/core/event"
	"github.com/riftgo/server/internal/core/system"
)

// ==================== 戰報 ====================

// ReportSystem 訂閱戰鬥事件,邊打邊寫結構化紀錄。放在
// PhaseReport,事件本身在 tick 開頭才派送,所以看到的永遠是
// 上一個 tick 的完整戰況。
type ReportSystem struct {
	log *zap.Logger

	// 整場統計,結束時印摘要用
	Hits     int
	Crits    int
	Statuses int
	Expiries int
}

func NewReportSystem(bus *event.Bus, log *zap.Logger) *ReportSystem {
	s := &ReportSystem{log: log}

	event.Subscribe(bus, func(ev event.HitLanded) {
		s.Hits++
		if ev.WasCritical {
			s.Crits++
		}
		s.log.Debug("命中",
			zap.Int64("source", ev.SourceID),
			zap.Int64("target", ev.TargetID),
			zap.Int32("skill", ev.SkillID),
			zap.Float64("damage", ev.TotalDamage),
			zap.Bool("crit", ev.WasCritical))
	})
	event.Subscribe(bus, func(ev event.StatusApplied) {
		s.Statuses++
		s.log.Debug("狀態附著",
			zap.Int64("target", ev.TargetID),
			zap.String("tag", ev.Tag),
			zap.Float64("magnitude", ev.Magnitude),
			zap.Float64("duration", ev.Duration))
	})
	event.Subscribe(bus, func(ev event.DotTicked) {
		s.log.Debug("持續傷害",
			zap.Int64("target", ev.TargetID),
			zap.Float64("damage", ev.Damage),
			zap.Float64("life", ev.LifeRemaining))
	})
	event.Subscribe(bus, func(ev event.EffectExpired) {
		s.Expiries++
		s.log.Debug("效果到期",
			zap.Int64("target", ev.TargetID),
			zap.String("effect", ev.EffectID))
	})
	event.Subscribe(bus, func(ev event.CombatantDown) {
		s.log.Info("戰鬥者倒下",
			zap.Int64("target", ev.TargetID),
			zap.Int64("source", ev.SourceID),
			zap.Int32("skill", ev.SkillID))
	})

	return s
}

func (s *ReportSystem) Phase() system.Phase {
	return system.PhaseReport
}

func (s *ReportSystem) Update(dt time.Duration) {}
