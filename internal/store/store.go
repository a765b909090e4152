// Package store records clustering runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/TrevorS/clustools"
)

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB wraps a SQLite connection holding run history.
type DB struct {
	conn *sql.DB
	path string
	log  *zap.Logger
}

// Run is one stored clustering run.
type Run struct {
	ID             string
	CreatedAt      time.Time
	Policy         clustools.Policy
	Measure        clustools.Measure
	Cutoff         float64
	Elements       int
	ActiveClusters int
	Orphans        int
	Silhouette     float64
	Converged      bool
}

// Open creates or opens the database at path and migrates it.
func Open(path string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn, path: path, log: log}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// SaveRun stores r with its clusters and members in one transaction and
// returns the new run id.
func (db *DB) SaveRun(ctx context.Context, r clustools.Report) (string, error) {
	id := uuid.NewString()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, policy, measure, cutoff, k, seed, iterations, elements, active_clusters, orphans, silhouette, converged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(timeLayout), string(r.Policy), string(r.Measure), r.Cutoff,
		r.K, r.Seed, r.Iterations, r.Elements, r.ActiveClusters, r.Orphans, r.Silhouette, r.Converged)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	clusterStmt, err := tx.PrepareContext(ctx, `INSERT INTO clusters
		(run_id, cluster_id, centroid, medoid, radius, diameter, av_distance)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing cluster insert: %w", err)
	}
	defer clusterStmt.Close()

	memberStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO members (run_id, cluster_id, element) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing member insert: %w", err)
	}
	defer memberStmt.Close()

	for _, c := range r.Clusters {
		if _, err := clusterStmt.ExecContext(ctx, id, c.ID, c.Centroid, c.Mean, c.Radius, c.Diameter, c.AvDistance); err != nil {
			return "", fmt.Errorf("inserting cluster %d: %w", c.ID, err)
		}
		for _, el := range c.Members {
			if _, err := memberStmt.ExecContext(ctx, id, c.ID, el); err != nil {
				return "", fmt.Errorf("inserting member %d of cluster %d: %w", el, c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	db.log.Debug("run saved", zap.String("run", id), zap.Int("clusters", len(r.Clusters)))
	return id, nil
}

// Runs lists stored runs, newest first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, created_at, policy, measure, cutoff,
		elements, active_clusters, orphans, silhouette, converged
		FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r               Run
			created         string
			policy, measure string
		)
		if err := rows.Scan(&r.ID, &created, &policy, &measure, &r.Cutoff,
			&r.Elements, &r.ActiveClusters, &r.Orphans, &r.Silhouette, &r.Converged); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Policy = clustools.Policy(policy)
		r.Measure = clustools.Measure(measure)
		if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parsing run time: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Members returns the element ids of every cluster of run id, keyed by
// cluster id.
func (db *DB) Members(ctx context.Context, id string) (map[int][]int, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT cluster_id, element FROM members WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]int)
	for rows.Next() {
		var cluster, element int
		if err := rows.Scan(&cluster, &element); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		out[cluster] = append(out[cluster], element)
	}
	return out, rows.Err()
}
