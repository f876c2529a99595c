package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB implements the Database interface for SurrealDB
type SurrealDB struct {
	mu     sync.RWMutex
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Endpoint returns the websocket URL the client dials
func (s *SurrealDB) Endpoint() string {
	return fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)
}

// Connect establishes a connection to SurrealDB.
// It makes a single attempt; callers decide what a failure means.
func (s *SurrealDB) Connect(ctx context.Context) error {
	if s.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ConnectTimeout)
		defer cancel()
	}

	db, err := surrealdb.FromEndpointURLString(ctx, s.Endpoint())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// Sign in as root user
	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close(context.Background())
	s.db = nil
	return err
}

func (s *SurrealDB) conn() *surrealdb.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	db := s.conn()
	if db == nil {
		return ErrConnection
	}
	if _, err := db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a query and returns results.
// Each entry is a {"status", "result"} map for one statement.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	db := s.conn()
	if db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, db, query, vars)
	if err != nil {
		return nil, classifyError(err.Error())
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, classifyError(r.Error.Message)
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne executes a query and returns a single result
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return FirstRecord(results)
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// FirstRecord unwraps the first record of the first statement result.
// It returns ErrNotFound when the statement produced no rows.
func FirstRecord(results []interface{}) (interface{}, error) {
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	first := results[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, ErrNotFound
				}
				return resultData[0], nil
			}
			if resp["result"] == nil {
				return nil, ErrNotFound
			}
			// Scalar results (e.g. RETURN count()) come back as-is
			return resp["result"], nil
		}
	}

	return first, nil
}

// classifyError maps SurrealDB error text onto the package sentinels
func classifyError(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "already contains"),
		strings.Contains(lower, "already exists"),
		strings.Contains(lower, "unique"):
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	case strings.Contains(lower, "connection"),
		strings.Contains(lower, "websocket"),
		strings.Contains(lower, "broken pipe"):
		return fmt.Errorf("%w: %s", ErrConnection, msg)
	}
	return fmt.Errorf("%w: %s", ErrQuery, msg)
}
