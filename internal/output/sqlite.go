package output

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/graph"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pagerank (
	node     INTEGER PRIMARY KEY,
	pagerank REAL NOT NULL
)`

// SQLiteWriter replaces the contents of a `pagerank` table in a SQLite
// database file.
type SQLiteWriter struct {
	Path string
}

// Write implements Writer. All rows are written in a single transaction.
func (w *SQLiteWriter) Write(ctx context.Context, store *graph.Store) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Writing SQLite results.", "path", w.Path, "nodes", store.Len())

	db, err := sql.Open("sqlite", w.Path)
	if err != nil {
		return fmt.Errorf("failed to open results database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := saveRanks(ctx, tx, store.Snapshot()); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

func saveRanks(ctx context.Context, tx *sql.Tx, entries []graph.Entry) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM pagerank"); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pagerank (node, pagerank) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Rank); err != nil {
			return fmt.Errorf("insert rank for node %d: %w", e.ID, err)
		}
	}
	return nil
}
