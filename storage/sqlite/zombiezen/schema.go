package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

const (
	DocsSchema    = "docs.sql"
	PhrasesSchema = "phrases.sql"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// CreateSchemas runs the embedded scripts in order on one connection. The
// scripts only create what is missing.
func CreateSchemas(pool *sqlitex.Pool, names ...string) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	for _, name := range names {
		script, err := sqlFiles.ReadFile(path.Join("sql", name))
		if err != nil {
			return fmt.Errorf("no schema %s: %w", name, err)
		}

		if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
			return fmt.Errorf("failed to execute script %s: %w", name, err)
		}
	}

	return nil
}
