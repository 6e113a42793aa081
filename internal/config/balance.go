package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Balance holds the combat tuning constants. They are loaded once at
// boot and threaded explicitly into the combat engine; nothing reads
// them through a global.
type Balance struct {
	Armour      ArmourBalance     `toml:"armour"`
	Evasion     EvasionBalance    `toml:"evasion"`
	Crit        CritBalance       `toml:"crit"`
	Resistances ResistanceBalance `toml:"resistances"`
}

type ArmourBalance struct {
	// Denominator weight in armour / (armour + K × incoming).
	DamageConstant float64 `toml:"damage_constant"`
}

type EvasionBalance struct {
	// Divisor in cap = baseline / (1 + evasion/scale).
	ScaleFactor float64 `toml:"scale_factor"`
	// Baseline used when a packet carries no attacker accuracy.
	AccuracyBaseline float64 `toml:"accuracy_baseline"`
}

type CritBalance struct {
	// Multiplier used when the attacker has no crit_multiplier stat.
	BaseMultiplier float64 `toml:"base_multiplier"`
}

type ResistanceBalance struct {
	// Upper clamp on resist − penetration; no lower clamp exists, so
	// negative resistance amplifies damage without bound.
	MaxCap float64 `toml:"max_cap"`
}

// LoadBalance reads balance constants from TOML, over defaults.
func LoadBalance(path string) (*Balance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read balance %s: %w", path, err)
	}
	bal := DefaultBalance()
	if err := toml.Unmarshal(data, bal); err != nil {
		return nil, fmt.Errorf("parse balance %s: %w", path, err)
	}
	if err := bal.Validate(); err != nil {
		return nil, fmt.Errorf("balance %s: %w", path, err)
	}
	return bal, nil
}

// DefaultBalance returns the shipped tuning values.
func DefaultBalance() *Balance {
	return &Balance{
		Armour:      ArmourBalance{DamageConstant: 10},
		Evasion:     EvasionBalance{ScaleFactor: 1000, AccuracyBaseline: 100},
		Crit:        CritBalance{BaseMultiplier: 1.5},
		Resistances: ResistanceBalance{MaxCap: 0.75},
	}
}

// Validate rejects constant sets the formulas cannot run on.
func (b *Balance) Validate() error {
	if b.Armour.DamageConstant <= 0 {
		return fmt.Errorf("armour.damage_constant must be positive, got %v", b.Armour.DamageConstant)
	}
	if b.Evasion.ScaleFactor <= 0 {
		return fmt.Errorf("evasion.scale_factor must be positive, got %v", b.Evasion.ScaleFactor)
	}
	if b.Evasion.AccuracyBaseline < 0 {
		return fmt.Errorf("evasion.accuracy_baseline must not be negative, got %v", b.Evasion.AccuracyBaseline)
	}
	if b.Crit.BaseMultiplier < 1 {
		return fmt.Errorf("crit.base_multiplier must be at least 1, got %v", b.Crit.BaseMultiplier)
	}
	if b.Resistances.MaxCap <= 0 || b.Resistances.MaxCap > 1 {
		return fmt.Errorf("resistances.max_cap must be in (0, 1], got %v", b.Resistances.MaxCap)
	}
	return nil
}
