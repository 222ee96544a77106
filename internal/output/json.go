package output

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/graph"
)

// Row is the JSON shape of one result.
type Row struct {
	Node     int64   `json:"node"`
	PageRank float64 `json:"pagerank"`
}

// JSONWriter writes a single JSON array of rows.
type JSONWriter struct {
	Path string
}

// Write implements Writer.
func (w *JSONWriter) Write(ctx context.Context, store *graph.Store) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Writing JSON results.", "path", w.Path, "nodes", store.Len())

	entries := store.Snapshot()
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Node: e.ID, PageRank: e.Rank}
	}

	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := sonic.ConfigStd.NewEncoder(f).Encode(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode json results: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
