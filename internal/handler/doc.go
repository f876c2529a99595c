// Package handler provides HTTP request handlers for the Madoka API.
//
// Magical girls and witches share one generic handler, ResourceHandler[T, In],
// which decodes the request, calls a ResourceService and writes the response.
// The family specific rules live in the service layer.
//
// # Routes
//
//	GET    /<family>      200 + array
//	POST   /<family>      201 + created record
//	GET    /<family>/:id  200 + record, 404 if absent
//	PUT    /<family>/:id  204, 404 if absent
//	DELETE /<family>/:id  204
//
// # Errors
//
// Handlers never write error bodies themselves. They return the
// *model.ProblemDetails produced by MapServiceError and the echo error
// handler installed by the middleware package renders it as
// application/problem+json.
//
// # Example Usage
//
//	girls := NewResourceHandler[model.MagicalGirl, model.MagicalGirlInput](girlService)
//	girls.Register(e.Group("/magicalgirls"))
package handler
