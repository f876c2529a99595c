// Package repository implements the data access layer for the Madoka API.
//
// # Generic Store
//
// Collection[T] wraps one SurrealDB table and offers the store operations
// every document family needs:
//
//   - FindAll: every record, oldest first
//   - FindByID / FindByIDs: lookup by record key
//   - FindOne: first record matching a Filter (used for name uniqueness)
//   - Create, UpdateByID, DeleteByID
//
// Each method runs exactly one parameterized SurrealQL statement. Record
// keys are addressed with type::thing($table, $id) so caller-supplied ids
// are never spliced into query text.
//
// # Entity Repositories
//
// MagicalGirlRepository and WitchRepository wrap a collection, translate
// request inputs into snake_case content maps and decode rows into model
// structs. Witches store their magical girl as a record link; the
// repository hands back only its key.
//
// # Example Usage
//
//	repo := NewMagicalGirlRepository(db)
//	girl, err := repo.GetByID(ctx, "abc123")
//	if err != nil {
//	    return err
//	}
//	if girl == nil {
//	    // not found
//	}
package repository
