package sim

import (
	"time"

	"github.com/riftgo/server/internal/core/event"
	"github.com/riftgo/server/internal/core/system"
)

// ==================== 事件派送 ====================

// EventSystem 在每個 tick 開頭翻轉事件緩衝並派送上一個 tick
// 的事件,同時推進場上的時鐘。放在 PhaseEvents,保證其他
// System 看到的都是完整 tick 的事件。
type EventSystem struct {
	enc *Encounter
	bus *event.Bus
}

func NewEventSystem(enc *Encounter, bus *event.Bus) *EventSystem {
	return &EventSystem{enc: enc, bus: bus}
}

func (s *EventSystem) Phase() system.Phase {
	return system.PhaseEvents
}

func (s *EventSystem) Update(dt time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()

	if s.enc.Over {
		return
	}
	s.enc.Tick++
	s.enc.Elapsed += dt.Seconds()
}
