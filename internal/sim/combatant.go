package sim

import (
	"fmt"

	"github.com/riftgo/server/internal/data"
	"github.com/riftgo/server/internal/loot"
	"github.com/riftgo/server/internal/stat"
)

// Combatant 是模擬場上的一名戰鬥者。Block 永遠指向最新快照,
// 每次結算換成新的;舊快照留給事件與記錄引用,不會被改寫。
type Combatant struct {
	ID         int64
	TemplateID int32
	Name       string
	Block      *stat.Block
	Skills     []int32
	Scripted   bool // 交給 lua 輪替腳本決策

	cooldowns map[int32]float64

	// 本場統計
	DamageDealt float64
	Crits       int
}

// SpawnCombatant 依模板生出戰鬥者:先天屬性 → 被動 → 逐件穿裝。
// 模板引用不存在的道具視為資料錯誤。
func SpawnCombatant(id int64, tpl *data.CombatantInfo, items *data.ItemTable) (*Combatant, error) {
	block := stat.NewBlock(tpl.Base)
	if len(tpl.Passives) > 0 {
		block = block.AddPassive(stat.Mods(tpl.Passives))
	}
	for _, itemID := range tpl.Items {
		it := items.Get(itemID)
		if it == nil {
			return nil, fmt.Errorf("combatant %d: item %d not found", tpl.ID, itemID)
		}
		slot := it.Slot
		// 第二只戒指自動落到另一個戒指欄
		if slot == loot.SlotRing1 && block.Equipped(loot.SlotRing1) != nil {
			slot = loot.SlotRing2
		}
		block, _ = block.Equip(slot, it)
	}
	return &Combatant{
		ID:         id,
		TemplateID: tpl.ID,
		Name:       tpl.Name,
		Block:      block,
		Skills:     tpl.Skills,
		Scripted:   tpl.Script != "",
		cooldowns:  make(map[int32]float64),
	}, nil
}

// Alive 回報是否還站著。
func (c *Combatant) Alive() bool {
	return c.Block.CurrentLife > 0
}

// CooldownLeft 回傳技能剩餘冷卻秒數。
func (c *Combatant) CooldownLeft(skillID int32) float64 {
	return c.cooldowns[skillID]
}

// StartCooldown 設定技能冷卻。
func (c *Combatant) StartCooldown(skillID int32, secs float64) {
	if secs > 0 {
		c.cooldowns[skillID] = secs
	}
}

// TickCooldowns 把所有冷卻往前推 dt 秒。
func (c *Combatant) TickCooldowns(dt float64) {
	for id, left := range c.cooldowns {
		left -= dt
		if left <= 0 {
			delete(c.cooldowns, id)
		} else {
			c.cooldowns[id] = left
		}
	}
}
