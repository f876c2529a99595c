package model

import "time"

// BarrierType describes the space a witch hides inside
type BarrierType string

const (
	BarrierLabyrinth BarrierType = "Labyrinth"
	BarrierPocket    BarrierType = "Pocket"
	BarrierReality   BarrierType = "Reality"
	BarrierOther     BarrierType = "Other"
)

// IsValid reports whether b is a known barrier type
func (b BarrierType) IsValid() bool {
	switch b {
	case BarrierLabyrinth, BarrierPocket, BarrierReality, BarrierOther:
		return true
	}
	return false
}

const (
	MinDangerLevel = 0
	MaxDangerLevel = 10
	WitchTableName = "witch"
)

// Validation messages for witches
const (
	MsgBarrierTypeInvalid  = "Barrier type must be: Labyrinth, Pocket, Reality or Other"
	MsgDangerLevelRequired = "Danger level is required"
	MsgDangerLevelMin      = "Minimum danger level is 0"
	MsgDangerLevelMax      = "Maximum danger level is 10"
	MsgMagicalGirlNotFound = "Magical girl not found"
)

// Witch is what a magical girl becomes once her soul gem is spent.
// MagicalGirlID holds the stored link; MagicalGirl is filled in on read.
type Witch struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	BarrierType   BarrierType  `json:"barrierType,omitempty"`
	DangerLevel   int          `json:"dangerLevel"`
	MagicalGirlID string       `json:"-"`
	MagicalGirl   *MagicalGirl `json:"magicalGirl,omitempty"`
	CreatedOn     *time.Time   `json:"createdOn,omitempty"`
	UpdatedOn     *time.Time   `json:"updatedOn,omitempty"`
}

// WitchInput is the body of create and update requests.
// An empty MagicalGirl clears the relation.
type WitchInput struct {
	Name        *string `json:"name"`
	BarrierType *string `json:"barrierType"`
	DangerLevel *int    `json:"dangerLevel"`
	MagicalGirl *string `json:"magicalGirl"`
}

// Validate checks every field and returns all violations.
// The existence of the linked magical girl is checked by the service.
func (in *WitchInput) Validate() []FieldError {
	return Collect(
		Field("name",
			Present(in.Name, MsgNameRequired),
		),
		Field("barrierType",
			OneOf(in.BarrierType, func(s string) bool { return BarrierType(s).IsValid() }, MsgBarrierTypeInvalid),
		),
		Field("dangerLevel",
			PresentInt(in.DangerLevel, MsgDangerLevelRequired),
			AtLeast(in.DangerLevel, MinDangerLevel, MsgDangerLevelMin),
			AtMost(in.DangerLevel, MaxDangerLevel, MsgDangerLevelMax),
		),
	)
}

// HasMagicalGirl reports whether the input links to a magical girl
func (in *WitchInput) HasMagicalGirl() bool {
	return in.MagicalGirl != nil && *in.MagicalGirl != ""
}

// Merged returns the input with every omitted field taken from the stored record
func (in WitchInput) Merged(existing *Witch) WitchInput {
	if existing == nil {
		return in
	}
	if in.Name == nil {
		in.Name = &existing.Name
	}
	if in.BarrierType == nil && existing.BarrierType != "" {
		barrier := string(existing.BarrierType)
		in.BarrierType = &barrier
	}
	if in.DangerLevel == nil {
		level := existing.DangerLevel
		in.DangerLevel = &level
	}
	if in.MagicalGirl == nil && existing.MagicalGirlID != "" {
		link := existing.MagicalGirlID
		in.MagicalGirl = &link
	}
	return in
}
