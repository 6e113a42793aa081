package combat

import (
	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// TickResult 是一次效果推進的摘要。
type TickResult struct {
	DotDamage     float64  // 本次 tick 的持續傷害總量
	Expired       []string // 到期移除的效果實例 ID
	LifeRemaining float64
}

// ==================== 狀態效果套用 ====================

// ApplyEffects 把待套用的效果依各自的堆疊策略合入目標身上,
// 回傳新的快照與實際生效的效果清單。被 Ignore 或疊滿丟棄的
// 不會出現在回傳清單裡。
func (e *Engine) ApplyEffects(target *stat.Block, pending []stat.Effect) (*stat.Block, []stat.Effect) {
	if len(pending) == 0 {
		return target, nil
	}

	active := target.Effects()
	var applied []stat.Effect

	for _, in := range pending {
		switch in.Stacking {
		case stat.StackReplace:
			// 同 tag 同來源 → 重置;不同來源並存。
			idx := -1
			for i, cur := range active {
				if cur.Tag == in.Tag && cur.SourceID == in.SourceID {
					idx = i
					break
				}
			}
			if idx >= 0 {
				in.ID = active[idx].ID
				active[idx] = in
			} else {
				active = append(active, in)
			}
			applied = append(applied, in)

		case stat.StackMagnitude:
			// 同 tag 合為一個實例:強度相加,剩餘時間取長的。
			idx := -1
			for i, cur := range active {
				if cur.Tag == in.Tag {
					idx = i
					break
				}
			}
			if idx >= 0 {
				merged := active[idx]
				merged.Magnitude += in.Magnitude
				if in.Remaining > merged.Remaining {
					merged.Remaining = in.Remaining
					merged.Total = in.Total
				}
				active[idx] = merged
				applied = append(applied, merged)
			} else {
				active = append(active, in)
				applied = append(applied, in)
			}

		case stat.StackIndependent:
			// 各自獨立;疊層上限由 dot 定義決定(0 = 不限)。
			if max := e.maxStacks(in.Tag); max > 0 && countTag(active, in.Tag) >= max {
				continue
			}
			active = append(active, in)
			applied = append(applied, in)

		case stat.StackIgnore:
			// 場上已有同 tag 就整個丟掉。
			if countTag(active, in.Tag) > 0 {
				continue
			}
			active = append(active, in)
			applied = append(applied, in)
		}
	}

	return target.WithEffects(active), applied
}

// ==================== 狀態效果推進 ====================

// TickEffects 把目標身上的效果往前推 dt 秒:持續傷害按
// magnitude × dt 直接扣生命(不走任何減免),剩餘時間扣完
// 才移除——到期那一下的傷害照算,只是不超過剩餘時間的份。
// 不冪等:推兩次 1 秒就是過了兩秒。
func (e *Engine) TickEffects(target *stat.Block, dt float64) (*stat.Block, *TickResult) {
	result := &TickResult{LifeRemaining: target.CurrentLife}
	if dt <= 0 {
		return target, result
	}

	active := target.Effects()
	kept := active[:0]
	var dot float64
	for _, eff := range active {
		if eff.Kind == stat.EffectAilment && eff.Magnitude > 0 {
			span := dt
			if eff.Remaining < span {
				span = eff.Remaining
			}
			dot += eff.Magnitude * span
		}
		eff.Remaining -= dt
		if eff.Expired() {
			result.Expired = append(result.Expired, eff.ID)
			continue
		}
		kept = append(kept, eff)
	}

	next := target.WithEffects(kept)
	if dot > 0 {
		next = next.WithLife(next.CurrentLife - dot)
	}
	result.DotDamage = dot
	result.LifeRemaining = next.CurrentLife
	return next, result
}

func (e *Engine) maxStacks(tag loot.StatusTag) int {
	if d := e.dots.Get(tag); d != nil {
		return d.MaxStacks
	}
	return 0
}

func countTag(effects []stat.Effect, tag loot.StatusTag) int {
	n := 0
	for _, eff := range effects {
		if eff.Tag == tag {
			n++
		}
	}
	return n
}
