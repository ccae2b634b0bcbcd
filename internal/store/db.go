package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
)

const MemoryDB = ":memory:"

// NewDB opens a DuckDB database at the given path.
// Use ":memory:" for an in-memory database (one-shot CLI runs and tests).
func NewDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	// DuckDB is single-writer; a single connection also keeps an in-memory
	// database alive across queries.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Keep extensions next to the database so DuckDB never writes to ~/.duckdb
	if path != MemoryDB {
		extDir := filepath.Dir(path)
		if _, err := conn.Exec(fmt.Sprintf("SET extension_directory = '%s'", extDir)); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("setting extension directory: %w", err)
		}
	}

	return conn, nil
}
