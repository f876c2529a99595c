package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/forgo/madoka/api/internal/database"
)

// Decoder turns one stored row into a document
type Decoder[T any] func(row map[string]interface{}) (*T, error)

// Filter selects records by field equality. ExcludeID leaves one record
// out of the match, which is how an update ignores the record being updated.
type Filter struct {
	Equals    map[string]interface{}
	ExcludeID string
}

// Collection is the generic store over a single SurrealDB table. Every
// method is one parameterized statement passed straight to the database.
type Collection[T any] struct {
	db     database.Database
	table  string
	decode Decoder[T]
}

// NewCollection creates a collection over table
func NewCollection[T any](db database.Database, table string, decode Decoder[T]) *Collection[T] {
	return &Collection[T]{db: db, table: table, decode: decode}
}

// Table returns the table name
func (c *Collection[T]) Table() string {
	return c.table
}

// FindAll returns every record in insertion order
func (c *Collection[T]) FindAll(ctx context.Context) ([]*T, error) {
	query := `SELECT * FROM type::table($table) ORDER BY created_on ASC, id ASC`
	vars := map[string]interface{}{"table": c.table}

	results, err := c.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return c.decodeRows(results)
}

// FindByID returns the record with the given key, or nil when it does not exist
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := `SELECT * FROM type::thing($table, $id)`
	vars := map[string]interface{}{"table": c.table, "id": id}

	result, err := c.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c.decodeOne(result)
}

// FindByIDs returns the records whose keys are in ids. Missing keys are skipped.
func (c *Collection[T]) FindByIDs(ctx context.Context, ids []string) ([]*T, error) {
	if len(ids) == 0 {
		return []*T{}, nil
	}

	query := `SELECT * FROM type::table($table) WHERE record::id(id) IN $ids`
	vars := map[string]interface{}{"table": c.table, "ids": ids}

	results, err := c.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return c.decodeRows(results)
}

// FindOne returns the first record matching filter, or nil
func (c *Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	vars := map[string]interface{}{"table": c.table}

	fields := make([]string, 0, len(filter.Equals))
	for field := range filter.Equals {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conditions := make([]string, 0, len(fields)+1)
	for i, field := range fields {
		param := fmt.Sprintf("v%d", i)
		conditions = append(conditions, fmt.Sprintf("%s = $%s", field, param))
		vars[param] = filter.Equals[field]
	}
	if filter.ExcludeID != "" {
		conditions = append(conditions, "id != type::thing($table, $exclude_id)")
		vars["exclude_id"] = filter.ExcludeID
	}

	query := `SELECT * FROM type::table($table)`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` LIMIT 1`

	result, err := c.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c.decodeOne(result)
}

// Create stores content as a new record with a generated key
func (c *Collection[T]) Create(ctx context.Context, content map[string]interface{}) (*T, error) {
	query := `CREATE type::table($table) CONTENT $content`
	vars := map[string]interface{}{"table": c.table, "content": content}

	result, err := c.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: %s", database.ErrDuplicate, c.table)
		}
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: create returned no record", database.ErrQuery)
		}
		return nil, err
	}
	return c.decodeOne(result)
}

// UpdateByID sets the content fields on the record and removes the unset
// fields. It returns the updated record, or nil when no record has that key.
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, content map[string]interface{}, unset ...string) (*T, error) {
	vars := map[string]interface{}{"table": c.table, "id": id}

	fields := make([]string, 0, len(content))
	for field := range content {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	assignments := make([]string, 0, len(fields)+len(unset))
	for i, field := range fields {
		param := fmt.Sprintf("v%d", i)
		assignments = append(assignments, fmt.Sprintf("%s = $%s", field, param))
		vars[param] = content[field]
	}
	for _, field := range unset {
		assignments = append(assignments, field+" = NONE")
	}
	if len(assignments) == 0 {
		return c.FindByID(ctx, id)
	}

	query := `UPDATE type::thing($table, $id) SET ` + strings.Join(assignments, ", ") + ` RETURN AFTER`

	result, err := c.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: %s", database.ErrDuplicate, c.table)
		}
		return nil, err
	}
	return c.decodeOne(result)
}

// DeleteByID removes the record. Deleting a missing key is not an error.
func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE type::thing($table, $id)`
	vars := map[string]interface{}{"table": c.table, "id": id}

	return c.db.Execute(ctx, query, vars)
}

func (c *Collection[T]) decodeOne(result interface{}) (*T, error) {
	row, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected %s row type %T", database.ErrQuery, c.table, result)
	}
	return c.decode(row)
}

func (c *Collection[T]) decodeRows(results []interface{}) ([]*T, error) {
	rows := extractQueryResults(results)
	docs := make([]*T, 0, len(rows))
	for _, row := range rows {
		doc, err := c.decode(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
