package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/riftgo/server/internal/combat"
	"github.com/riftgo/server/internal/core/event"
	"github.com/riftgo/server/internal/core/system"
	"github.com/riftgo/server/internal/data"
	"github.com/riftgo/server/internal/persist"
	"github.com/riftgo/server/internal/scripting"
)

// ==================== 出手決策 ====================

// ActionSystem 在 PhaseAction 跑每個還活著的戰鬥者:推冷卻、
// 選技能(腳本優先,沒腳本或腳本棄權就撿第一個轉好的)、
// 算傷害、結算、掛狀態。一個 tick 雙方各出手一次,先手打死
// 對方的話後手就不動了。
type ActionSystem struct {
	enc    *Encounter
	eng    *combat.Engine
	skills *data.SkillTable
	bus    *event.Bus
	rot    *scripting.Engine // 可為 nil(純後備規則)
	log    *zap.Logger
}

func NewActionSystem(enc *Encounter, eng *combat.Engine, skills *data.SkillTable, bus *event.Bus, rot *scripting.Engine, log *zap.Logger) *ActionSystem {
	return &ActionSystem{
		enc:    enc,
		eng:    eng,
		skills: skills,
		bus:    bus,
		rot:    rot,
		log:    log,
	}
}

func (s *ActionSystem) Phase() system.Phase {
	return system.PhaseAction
}

func (s *ActionSystem) Update(dt time.Duration) {
	if s.enc.Over {
		return
	}
	secs := dt.Seconds()
	s.enc.A.TickCooldowns(secs)
	s.enc.B.TickCooldowns(secs)

	for _, c := range []*Combatant{s.enc.A, s.enc.B} {
		if s.enc.Over || !c.Alive() {
			return
		}
		s.act(c)
	}
}

func (s *ActionSystem) act(c *Combatant) {
	target := s.enc.Opponent(c)
	skillID := s.pickSkill(c, target)
	if skillID == 0 {
		return // 全在冷卻,這個 tick 空過
	}
	sk := s.skills.Get(skillID)
	if sk == nil {
		return
	}

	packet, err := s.eng.CalculateDamage(c.Block, skillID, c.ID, s.enc.Rng)
	if err != nil {
		s.log.Error("傷害計算失敗",
			zap.Int64("source", c.ID),
			zap.Int32("skill", skillID),
			zap.Error(err))
		return
	}

	next, result := s.eng.ResolveDamage(target.Block, packet)
	target.Block = next

	if len(result.PendingEffects) > 0 {
		withEffects, attached := s.eng.ApplyEffects(target.Block, result.PendingEffects)
		target.Block = withEffects
		for _, eff := range attached {
			event.Emit(s.bus, event.StatusApplied{
				TargetID:  target.ID,
				EffectID:  eff.ID,
				Tag:       string(eff.Tag),
				Magnitude: eff.Magnitude,
				Duration:  eff.Remaining,
			})
		}
	}

	c.DamageDealt += result.TotalDamage
	if result.WasCritical {
		c.Crits++
	}
	c.StartCooldown(skillID, sk.Cooldown)

	s.enc.Hits = append(s.enc.Hits, persist.HitRow{
		Tick:     s.enc.Tick,
		SourceID: c.ID,
		TargetID: target.ID,
		SkillID:  skillID,
		Damage:   result.TotalDamage,
		Critical: result.WasCritical,
	})
	event.Emit(s.bus, event.HitLanded{
		SourceID:    c.ID,
		TargetID:    target.ID,
		SkillID:     skillID,
		TotalDamage: result.TotalDamage,
		WasCritical: result.WasCritical,
	})

	if !target.Alive() {
		event.Emit(s.bus, event.CombatantDown{
			TargetID: target.ID,
			SourceID: c.ID,
			SkillID:  skillID,
		})
		s.enc.Finish(c.ID)
	}
}

// pickSkill 選這一手要放的技能。有腳本就把狀況整理成
// RotationContext 交給 lua;腳本棄權(回 0)或選了沒轉好的
// 技能時退回後備規則:技能表順序第一個轉好的。
func (s *ActionSystem) pickSkill(c *Combatant, target *Combatant) int32 {
	if c.Scripted && s.rot != nil {
		if id := s.rot.NextSkill(s.rotationContext(c, target)); id != 0 && s.ready(c, id) {
			return id
		}
	}
	for _, id := range c.Skills {
		if s.ready(c, id) {
			return id
		}
	}
	return 0
}

func (s *ActionSystem) ready(c *Combatant, skillID int32) bool {
	for _, id := range c.Skills {
		if id == skillID {
			return c.CooldownLeft(skillID) <= 0
		}
	}
	return false
}

func (s *ActionSystem) rotationContext(c *Combatant, target *Combatant) scripting.RotationContext {
	opts := make([]scripting.SkillOption, 0, len(c.Skills))
	for _, id := range c.Skills {
		sk := s.skills.Get(id)
		if sk == nil {
			continue
		}
		opt := scripting.SkillOption{
			SkillID:      id,
			Name:         sk.Name,
			CooldownLeft: c.CooldownLeft(id),
		}
		if avg, err := s.eng.SkillDPS(c.Block, id); err == nil {
			opt.AverageDamage = avg.Total
		}
		opts = append(opts, opt)
	}

	effects := target.Block.Effects()
	tags := make([]string, 0, len(effects))
	for _, eff := range effects {
		tags = append(tags, string(eff.Tag))
	}

	return scripting.RotationContext{
		SelfID:         c.ID,
		Life:           c.Block.CurrentLife,
		MaxLife:        c.Block.MaxLife.Value(),
		TargetLife:     target.Block.CurrentLife,
		TargetMaxLife:  target.Block.MaxLife.Value(),
		TargetEffects:  tags,
		ElapsedSeconds: s.enc.Elapsed,
		Skills:         opts,
	}
}
