package store

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

var migrations = []migration{
	{
		Version:     1,
		Description: "runs, clusters and members",
		Up: func(tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE runs (
					id TEXT PRIMARY KEY,
					created_at TEXT NOT NULL,
					policy TEXT NOT NULL,
					measure TEXT NOT NULL,
					cutoff REAL NOT NULL,
					k INTEGER NOT NULL DEFAULT 0,
					seed INTEGER NOT NULL DEFAULT 0,
					iterations INTEGER NOT NULL DEFAULT 0,
					elements INTEGER NOT NULL,
					active_clusters INTEGER NOT NULL,
					orphans INTEGER NOT NULL,
					silhouette REAL NOT NULL
				)`,
				`CREATE TABLE clusters (
					run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
					cluster_id INTEGER NOT NULL,
					centroid INTEGER NOT NULL,
					medoid INTEGER NOT NULL,
					radius REAL NOT NULL,
					diameter REAL NOT NULL,
					av_distance REAL NOT NULL,
					PRIMARY KEY (run_id, cluster_id)
				)`,
				`CREATE TABLE members (
					run_id TEXT NOT NULL,
					cluster_id INTEGER NOT NULL,
					element INTEGER NOT NULL,
					FOREIGN KEY (run_id, cluster_id) REFERENCES clusters(run_id, cluster_id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_members_run ON members(run_id)`,
			}
			for _, stmt := range stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "runs.converged",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`ALTER TABLE runs ADD COLUMN converged INTEGER NOT NULL DEFAULT 1`)
			return err
		},
	},
}

func latestVersion() int {
	return migrations[len(migrations)-1].Version
}

// schemaVersion reads PRAGMA user_version.
func (db *DB) schemaVersion() (int, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// migrate applies every migration newer than the stored user_version.
func (db *DB) migrate() error {
	current, err := db.schemaVersion()
	if err != nil {
		return err
	}
	if current >= latestVersion() {
		return nil
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		db.log.Info("applying migration", zap.Int("version", m.Version), zap.String("description", m.Description))

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("stamping version %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
