package service

import (
	"errors"
	"strings"

	"github.com/forgo/madoka/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Magical Girl Errors =====
var (
	ErrMagicalGirlNotFound   = errors.New("magical girl not found")
	ErrMagicalGirlNameExists = errors.New("a magical girl with this name already exists")
)

// ===== Witch Errors =====
var (
	ErrWitchNotFound   = errors.New("witch not found")
	ErrWitchNameExists = errors.New("a witch with this name already exists")
)

// ValidationError carries every field violation found in a request
type ValidationError struct {
	Errors []model.FieldError
}

// Error joins the field messages in rule order
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func newValidationError(errs []model.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
