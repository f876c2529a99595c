// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Each TestDB lives in its own namespace with every migration applied, so
// tests run real queries against the real schema, unique indexes included.
// When no SurrealDB is reachable the calling test is skipped.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//
//	    repo := repository.NewMagicalGirlRepository(tdb.DB)
//	}
package testdb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/model"
	"github.com/google/uuid"
)

const (
	setupTimeout = 30 * time.Second
	opTimeout    = 10 * time.Second
)

// TestDB is one isolated database environment
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getTestConfig returns database config from MADOKA_TEST_DB_* or defaults
func getTestConfig() database.Config {
	return database.Config{
		Host:           envOr("MADOKA_TEST_DB_HOST", "localhost"),
		Port:           envOr("MADOKA_TEST_DB_PORT", "8000"),
		User:           envOr("MADOKA_TEST_DB_USER", "root"),
		Password:       envOr("MADOKA_TEST_DB_PASSWORD", "root"),
		ConnectTimeout: 5 * time.Second,
	}
}

// uniqueNamespace generates a namespace no other test run shares
func uniqueNamespace() string {
	return "test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// New connects to a fresh namespace, applies migrations and registers
// cleanup with t. It skips the test when the database cannot be reached.
func New(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("testdb: skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	cfg := getTestConfig()
	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Skipf("testdb: SurrealDB not reachable at %s: %v", db.Endpoint(), err)
	}

	tdb := &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		t:         t,
	}
	t.Cleanup(tdb.Close)

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("testdb: %v", err)
	}

	return tdb
}

// Close removes the namespace and disconnects
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
	_ = tdb.DB.Close()
	tdb.DB = nil
}

// Reset deletes every record while keeping the schema
func (tdb *TestDB) Reset(t *testing.T) {
	t.Helper()

	for _, table := range []string{model.WitchTableName, model.MagicalGirlTableName} {
		tdb.MustExec("DELETE type::table($table)", map[string]interface{}{"table": table})
	}
}

// Ctx returns a context bounded by the per-operation timeout, cancelled
// when the test finishes
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	tdb.t.Cleanup(cancel)
	return ctx
}

// MustExec executes a statement and fails the test on error
func (tdb *TestDB) MustExec(query string, vars map[string]interface{}) {
	tdb.t.Helper()
	if err := tdb.DB.Execute(tdb.Ctx(), query, vars); err != nil {
		tdb.t.Fatalf("testdb: exec failed: %v\nQuery: %s", err, query)
	}
}

// MustQuery executes a query and returns its results, failing the test on error
func (tdb *TestDB) MustQuery(query string, vars map[string]interface{}) []interface{} {
	tdb.t.Helper()
	results, err := tdb.DB.Query(tdb.Ctx(), query, vars)
	if err != nil {
		tdb.t.Fatalf("testdb: query failed: %v\nQuery: %s", err, query)
	}
	return results
}

// Shared is a TestDB reused across subtests
type Shared struct {
	*TestDB
}

// NewShared creates a database that subtests reset instead of recreating
func NewShared(t *testing.T) *Shared {
	t.Helper()
	return &Shared{TestDB: New(t)}
}

// SetupSubtest clears the data and binds the database to t.
// Call it at the start of each t.Run block.
func (s *Shared) SetupSubtest(t *testing.T) *TestDB {
	t.Helper()
	s.TestDB.t = t
	s.TestDB.Reset(t)
	return s.TestDB
}
