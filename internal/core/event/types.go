package event

// Combat event types consumed by the simulation loop's reporting and
// persistence systems.

// HitLanded fires after a damage packet resolves against a target.
type HitLanded struct {
	SourceID    int64
	TargetID    int64
	SkillID     int32
	TotalDamage float64
	WasCritical bool
}

// StatusApplied fires when an effect actually attaches (stacking
// policies can swallow an application; those never fire).
type StatusApplied struct {
	TargetID  int64
	EffectID  string
	Tag       string
	Magnitude float64
	Duration  float64
}

// EffectExpired fires when a ticked effect runs out.
type EffectExpired struct {
	TargetID int64
	EffectID string
}

// DotTicked fires when periodic damage lands on a combatant.
type DotTicked struct {
	TargetID      int64
	Damage        float64
	LifeRemaining float64
}

// CombatantDown fires when a resolution leaves a combatant at zero
// life. Downing is observed here, never decided by the resolver.
type CombatantDown struct {
	TargetID int64
	SourceID int64
	SkillID  int32
}
