package sim

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/riftgo/server/internal/core/system"
	"github.com/riftgo/server/internal/persist"
)

// ==================== 落地 ====================

// PersistSystem 在場子分出勝負後把整場摘要與命中明細寫進
// 資料庫,一場只寫一次。沒接資料庫(repo 為 nil)就什麼都
// 不做,模擬照跑。
type PersistSystem struct {
	enc  *Encounter
	repo *persist.EncounterRepo
	log  *zap.Logger

	saved bool
}

func NewPersistSystem(enc *Encounter, repo *persist.EncounterRepo, log *zap.Logger) *PersistSystem {
	return &PersistSystem{enc: enc, repo: repo, log: log}
}

func (s *PersistSystem) Phase() system.Phase {
	return system.PhasePersist
}

func (s *PersistSystem) Update(dt time.Duration) {
	if s.repo == nil || s.saved || !s.enc.Over {
		return
	}
	s.saved = true

	row := &persist.EncounterRow{
		Seed:         s.enc.Seed,
		WinnerID:     s.enc.Winner,
		CombatantA:   s.enc.A.ID,
		CombatantB:   s.enc.B.ID,
		Ticks:        s.enc.Tick,
		DurationSecs: s.enc.Elapsed,
		DamageByA:    s.enc.A.DamageDealt,
		DamageByB:    s.enc.B.DamageDealt,
		DotDamage:    s.enc.DotDamage,
		Crits:        s.enc.A.Crits + s.enc.B.Crits,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.repo.SaveEncounter(ctx, row, s.enc.Hits)
	if err != nil {
		s.log.Error("戰鬥摘要寫入失敗", zap.Error(err))
		return
	}
	s.log.Info("戰鬥摘要已寫入",
		zap.Int64("encounter", id),
		zap.Int64("winner", s.enc.Winner),
		zap.Int("ticks", s.enc.Tick))
}
