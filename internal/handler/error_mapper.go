package handler

import (
	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/model"
	"github.com/forgo/madoka/api/internal/service"
	"github.com/pkg/errors"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API. Server-side failures
// keep the original error, with a stack, as the problem's cause.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Already rendered upstream (e.g. a malformed body)
	var problem *model.ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	// ===== Validation Errors → 400 =====
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Errors)
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrMagicalGirlNotFound):
		return model.NewNotFoundError("Magical girl")
	case errors.Is(err, service.ErrWitchNotFound):
		return model.NewNotFoundError("Witch")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrMagicalGirlNameExists),
		errors.Is(err, service.ErrWitchNameExists):
		return model.NewConflictError(err.Error())
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError("a record with this name already exists")

	// ===== Store Errors → 503 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewServiceUnavailableError("The database is unavailable").WithCause(errors.WithStack(err))
	}

	// ===== Default → 500 =====
	return model.NewInternalError("").WithCause(errors.WithStack(err))
}
