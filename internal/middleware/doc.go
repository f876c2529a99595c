// Package middleware provides echo middleware for the Madoka API.
//
// # Available Middleware
//
//   - RequestID: keeps or generates X-Request-ID and echoes it back
//   - ContextLogger: request-scoped zerolog logger on the echo and request contexts
//   - RequestLogger: one log line per request, level by status
//   - Recover: panics become 500 problems
//   - CORS: origins from configuration
//
// ErrorHandler is not a middleware but echo's HTTPErrorHandler. It renders
// every returned error as RFC 9457 problem details.
//
// # Ordering
//
//	e.HTTPErrorHandler = ErrorHandler
//	e.Use(RequestID(), ContextLogger(log), RequestLogger(), Recover(), CORS(origins))
//
// ContextLogger reads the request id, so RequestID must run first.
package middleware
