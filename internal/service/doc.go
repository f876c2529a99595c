// Package service implements the business logic layer for the Madoka API.
//
// Services sit between the HTTP handlers and the repositories. They own the
// rules that need more than one store call: field validation, name
// uniqueness and resolving the magical girl a witch is linked to.
//
// # Service Pattern
//
// Both services follow the same pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - List, Get, Create, Update and Delete match handler.ResourceService
//   - Errors are returned as sentinel errors or *ValidationError
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces so tests can swap in
// func-field fakes without a database.
//
// # Error Handling
//
//	var (
//	    ErrMagicalGirlNotFound   = errors.New("magical girl not found")
//	    ErrMagicalGirlNameExists = errors.New("a magical girl with this name already exists")
//	)
//
// A *ValidationError lists every field that failed, first failing rule per
// field, in declaration order.
//
// # Example Usage
//
//	svc := NewWitchService(WitchServiceConfig{
//	    Repo:         witchRepository,
//	    MagicalGirls: magicalGirlRepository,
//	})
//	witch, err := svc.Create(ctx, &model.WitchInput{Name: &name, DangerLevel: &level})
package service
