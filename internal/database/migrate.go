package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed migrations/*.surql
var migrationFS embed.FS

// Migration is one embedded SurrealQL schema file
type Migration struct {
	Name      string
	Statement string
}

// Migrations returns the embedded schema files in lexical (apply) order
func Migrations() ([]Migration, error) {
	return loadMigrations(migrationFS, "migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	// fs.ReadDir sorts by filename
	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".surql") {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{
			Name:      entry.Name(),
			Statement: string(content),
		})
	}
	return migrations, nil
}

// Migrate applies every embedded migration. The statements are idempotent,
// so running it against an up-to-date database is a no-op.
// It returns the names of the files it executed.
func Migrate(ctx context.Context, db Database) ([]string, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(migrations))
	for _, m := range migrations {
		if err := db.Execute(ctx, m.Statement, nil); err != nil {
			return applied, fmt.Errorf("migration %s: %w", m.Name, err)
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}
