package sim

import (
	"time"

	"github.com/riftgo/server/internal/combat"
	"github.com/riftgo/server/internal/core/event"
	"github.com/riftgo/server/internal/core/system"
)

// ==================== 效果推進 ====================

// EffectTickSystem 在 PhaseTick 把雙方身上的效果往前推一個
// tick:持續傷害扣血、到期效果移除。持續傷害打死人也在這裡
// 收場,兇手算對手。
type EffectTickSystem struct {
	enc *Encounter
	eng *combat.Engine
	bus *event.Bus
}

func NewEffectTickSystem(enc *Encounter, eng *combat.Engine, bus *event.Bus) *EffectTickSystem {
	return &EffectTickSystem{enc: enc, eng: eng, bus: bus}
}

func (s *EffectTickSystem) Phase() system.Phase {
	return system.PhaseTick
}

func (s *EffectTickSystem) Update(dt time.Duration) {
	if s.enc.Over {
		return
	}
	for _, c := range []*Combatant{s.enc.A, s.enc.B} {
		if !c.Alive() {
			continue
		}
		next, res := s.eng.TickEffects(c.Block, dt.Seconds())
		c.Block = next

		if res.DotDamage > 0 {
			s.enc.DotDamage += res.DotDamage
			event.Emit(s.bus, event.DotTicked{
				TargetID:      c.ID,
				Damage:        res.DotDamage,
				LifeRemaining: res.LifeRemaining,
			})
		}
		for _, id := range res.Expired {
			event.Emit(s.bus, event.EffectExpired{
				TargetID: c.ID,
				EffectID: id,
			})
		}

		if !c.Alive() {
			killer := s.enc.Opponent(c)
			event.Emit(s.bus, event.CombatantDown{
				TargetID: c.ID,
				SourceID: killer.ID,
			})
			s.enc.Finish(killer.ID)
			return
		}
	}
}
