package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version int
	name    string
	stmt    string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create_vms",
		stmt: `CREATE TABLE IF NOT EXISTS vms (
			id VARCHAR PRIMARY KEY,
			name VARCHAR NOT NULL,
			power_state VARCHAR NOT NULL DEFAULT '',
			template BOOLEAN NOT NULL DEFAULT false,
			excluded BOOLEAN NOT NULL DEFAULT false,
			cluster VARCHAR NOT NULL DEFAULT '',
			datacenter VARCHAR NOT NULL DEFAULT '',
			cpus INTEGER NOT NULL DEFAULT 0,
			memory BIGINT NOT NULL DEFAULT 0,
			provisioned BIGINT NOT NULL DEFAULT 0,
			in_use BIGINT NOT NULL DEFAULT 0,
			disk_capacity BIGINT NOT NULL DEFAULT 0
		);`,
	},
	{
		version: 2,
		name:    "create_inventory",
		stmt: `CREATE TABLE IF NOT EXISTS inventory (
			id INTEGER PRIMARY KEY,
			source VARCHAR NOT NULL DEFAULT '',
			vm_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT now(),
			updated_at TIMESTAMP NOT NULL DEFAULT now()
		);`,
	},
	{
		version: 3,
		name:    "create_scenarios",
		stmt: `CREATE TABLE IF NOT EXISTS scenarios (
			id VARCHAR PRIMARY KEY,
			profile VARCHAR NOT NULL,
			scope VARCHAR NOT NULL DEFAULT '',
			data VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT now()
		);`,
	},
}

// Run applies every migration newer than the recorded schema version.
func Run(ctx context.Context, db *sql.DB) error {
	logger := zap.S().Named("migrations")

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT now()
	);`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		logger.Debugw("applied migration", "version", m.version, "name", m.name)
	}

	return nil
}
