// Package database provides database connectivity for the Madoka API.
//
// # Connection Management
//
// The service dials SurrealDB once at startup:
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "madoka",
//	    Database:  "madokadb",
//	    User:      "root",
//	    Password:  "root",
//	})
//	err := db.Connect(ctx)
//
// A failed Connect is not retried. Until a connection exists every query
// returns ErrConnection.
//
// # Schema
//
// SurrealQL schema files live in migrations/ and are embedded into the
// binary. Migrate applies them in filename order; each statement uses
// IF NOT EXISTS so re-running is safe.
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique index violation
//   - ErrConnection: Database connection failed or was never made
//   - ErrQuery: Any other statement failure
package database
