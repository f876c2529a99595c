// Package model defines domain entities and data structures for the Madoka API.
//
// The model package contains the two document types served by the API,
// their request bodies, the field validation rules and the error
// definitions shared by every layer.
//
// # Domain Entities
//
//   - MagicalGirl: a contracted girl with a soul gem, a weapon and a power level
//   - Witch: a barrier-dwelling witch, optionally linked to the magical girl it hatched from
//
// # JSON Serialization
//
// Documents expose their store-assigned key as "_id" and use camelCase
// field names:
//
//	type MagicalGirl struct {
//	    ID           string `json:"_id"`
//	    Name         string `json:"name"`
//	    SoulGemColor string `json:"soulGemColor"`
//	}
//
// # Validation
//
// Request bodies use pointer fields so that "absent" and "zero" differ.
// Validate builds one Rule per field from ordered Checks (presence, length,
// enumeration, bounds) and Collect reports the first failing check of every
// field:
//
//	errs := model.Collect(
//	    model.Field("name", model.Present(in.Name, model.MsgNameRequired)),
//	)
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
