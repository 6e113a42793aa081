package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents  Phase = iota // 0: deliver last tick's events
	PhaseAction               // 1: rotation decisions + attacks
	PhaseTick                 // 2: effect durations + periodic damage
	PhaseReport               // 3: logging + statistics
	PhasePersist              // 4: encounter summaries to storage
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
