package loot

// DamageType identifies one of the five damage elements.
type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageFire
	DamageCold
	DamageLightning
	DamageChaos
	DamageTypeMax
)

var damageTypeNames = [DamageTypeMax]string{
	"physical", "fire", "cold", "lightning", "chaos",
}

func (d DamageType) String() string {
	if d < 0 || d >= DamageTypeMax {
		return "unknown"
	}
	return damageTypeNames[d]
}

// DamageTypeFromString maps a YAML/TOML type string to a DamageType.
// Returns DamageTypeMax for unknown strings so loaders can reject them.
func DamageTypeFromString(s string) DamageType {
	for i, name := range damageTypeNames {
		if name == s {
			return DamageType(i)
		}
	}
	return DamageTypeMax
}

// StatusTag names a status effect class. The set is open-ended: adding a
// new status is a data edit (dot_list.yaml), not a code change, so tags
// are strings rather than an enum.
type StatusTag string

const (
	StatusBurn   StatusTag = "burn"
	StatusChill  StatusTag = "chill"
	StatusFreeze StatusTag = "freeze"
	StatusPoison StatusTag = "poison"
	StatusBleed  StatusTag = "bleed"
	StatusStatic StatusTag = "static"
	StatusSlow   StatusTag = "slow"
	StatusFear   StatusTag = "fear"
)

// Slot identifies an equipment slot on a combatant.
type Slot int

const (
	SlotNone    Slot = 0
	SlotHelm    Slot = 1
	SlotChest   Slot = 2
	SlotGloves  Slot = 3
	SlotBoots   Slot = 4
	SlotBelt    Slot = 5
	SlotAmulet  Slot = 6
	SlotRing1   Slot = 7
	SlotRing2   Slot = 8
	SlotWeapon  Slot = 9
	SlotOffhand Slot = 10
	SlotMax     Slot = 11
)

// SlotFromString maps a slot string (from YAML) to a Slot.
func SlotFromString(s string) Slot {
	switch s {
	case "helm":
		return SlotHelm
	case "chest", "body":
		return SlotChest
	case "gloves":
		return SlotGloves
	case "boots":
		return SlotBoots
	case "belt":
		return SlotBelt
	case "amulet", "necklace":
		return SlotAmulet
	case "ring":
		return SlotRing1 // caller should check Ring1 vs Ring2
	case "ring2":
		return SlotRing2
	case "weapon":
		return SlotWeapon
	case "offhand", "shield":
		return SlotOffhand
	default:
		return SlotNone
	}
}

// ModClass says which bucket of the layered stat formula a modifier
// contributes to.
type ModClass int

const (
	ModFlat      ModClass = iota // added to base before any scaling
	ModIncreased                 // summed additively into one multiplier
	ModMore                      // each one its own multiplier
)

// ModClassFromString maps a mod class string (from YAML) to a ModClass.
// Returns -1 for unknown strings.
func ModClassFromString(s string) ModClass {
	switch s {
	case "flat":
		return ModFlat
	case "increased":
		return ModIncreased
	case "more":
		return ModMore
	default:
		return -1
	}
}

// Mod is one modifier line on an item, passive, or effect.
// Stat is a stat key (see the stat package constants).
type Mod struct {
	Stat  string
	Class ModClass
	Value float64
}
