package sim

import (
	"fmt"
	"math/rand"

	"github.com/riftgo/server/internal/data"
	"github.com/riftgo/server/internal/persist"
)

// Encounter 是一場一對一模擬的可變狀態,單一 goroutine 持有。
type Encounter struct {
	A, B *Combatant
	Rng  *rand.Rand
	Seed int64

	Tick    int
	Elapsed float64
	Over    bool
	Winner  int64 // 0 = 平手(到達 tick 上限)

	// 結算明細,收場後一次寫入資料庫
	Hits      []persist.HitRow
	DotDamage float64
}

// NewEncounter 依兩個模板開一場新的對戰。
func NewEncounter(seed int64, tplA, tplB *data.CombatantInfo, items *data.ItemTable) (*Encounter, error) {
	a, err := SpawnCombatant(1, tplA, items)
	if err != nil {
		return nil, fmt.Errorf("spawn a: %w", err)
	}
	b, err := SpawnCombatant(2, tplB, items)
	if err != nil {
		return nil, fmt.Errorf("spawn b: %w", err)
	}
	return &Encounter{
		A:    a,
		B:    b,
		Rng:  rand.New(rand.NewSource(seed)),
		Seed: seed,
	}, nil
}

// Opponent 回傳對手。
func (e *Encounter) Opponent(c *Combatant) *Combatant {
	if c == e.A {
		return e.B
	}
	return e.A
}

// Finish 標記勝負。重複呼叫只有第一次算數。
func (e *Encounter) Finish(winnerID int64) {
	if e.Over {
		return
	}
	e.Over = true
	e.Winner = winnerID
}
