package model

import "time"

// Weapon is the armament a magical girl fights with
type Weapon string

const (
	WeaponBow    Weapon = "Bow"
	WeaponSpear  Weapon = "Spear"
	WeaponSword  Weapon = "Sword"
	WeaponGun    Weapon = "Gun"
	WeaponShield Weapon = "Shield"
	WeaponOther  Weapon = "Other"
)

// IsValid reports whether w is a known weapon
func (w Weapon) IsValid() bool {
	switch w {
	case WeaponBow, WeaponSpear, WeaponSword, WeaponGun, WeaponShield, WeaponOther:
		return true
	}
	return false
}

// Field bounds
const (
	MinPowerLevel        = 0
	MaxPowerLevel        = 100
	MinMagicalGirlName   = 2
	MagicalGirlTableName = "magical_girl"
)

// Validation messages for magical girls
const (
	MsgNameRequired         = "Name is required"
	MsgNameTooShort         = "Name must be at least 2 characters long"
	MsgSoulGemColorRequired = "Soul gem color is required"
	MsgWeaponInvalid        = "Weapon must be one of: Bow, Spear, Sword, Gun, Shield or Other"
	MsgPowerLevelRequired   = "Power level is required"
	MsgPowerLevelMin        = "Minimum power level is 0"
	MsgPowerLevelMax        = "Maximum power level is 100"
)

// MagicalGirl is a contracted girl whose soul lives in a soul gem
type MagicalGirl struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	SoulGemColor string     `json:"soulGemColor"`
	Weapon       Weapon     `json:"weapon,omitempty"`
	PowerLevel   int        `json:"powerLevel"`
	CreatedOn    *time.Time `json:"createdOn,omitempty"`
	UpdatedOn    *time.Time `json:"updatedOn,omitempty"`
}

// MagicalGirlInput is the body of create and update requests.
// Nil fields were not supplied by the caller.
type MagicalGirlInput struct {
	Name         *string `json:"name"`
	SoulGemColor *string `json:"soulGemColor"`
	Weapon       *string `json:"weapon"`
	PowerLevel   *int    `json:"powerLevel"`
}

// Validate checks every field and returns all violations
func (in *MagicalGirlInput) Validate() []FieldError {
	return Collect(
		Field("name",
			Present(in.Name, MsgNameRequired),
			MinLength(in.Name, MinMagicalGirlName, MsgNameTooShort),
		),
		Field("soulGemColor",
			Present(in.SoulGemColor, MsgSoulGemColorRequired),
		),
		Field("weapon",
			OneOf(in.Weapon, func(s string) bool { return Weapon(s).IsValid() }, MsgWeaponInvalid),
		),
		Field("powerLevel",
			PresentInt(in.PowerLevel, MsgPowerLevelRequired),
			AtLeast(in.PowerLevel, MinPowerLevel, MsgPowerLevelMin),
			AtMost(in.PowerLevel, MaxPowerLevel, MsgPowerLevelMax),
		),
	)
}

// Merged returns the input with every omitted field taken from the stored record
func (in MagicalGirlInput) Merged(existing *MagicalGirl) MagicalGirlInput {
	if existing == nil {
		return in
	}
	if in.Name == nil {
		in.Name = &existing.Name
	}
	if in.SoulGemColor == nil {
		in.SoulGemColor = &existing.SoulGemColor
	}
	if in.Weapon == nil && existing.Weapon != "" {
		weapon := string(existing.Weapon)
		in.Weapon = &weapon
	}
	if in.PowerLevel == nil {
		level := existing.PowerLevel
		in.PowerLevel = &level
	}
	return in
}
