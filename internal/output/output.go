// Package output serializes final ranks. Every format lists each node of the
// store exactly once, in ascending ID order; IDs that were never seen are
// absent rather than zero-filled.
package output

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/burstrank/internal/graph"
)

// DefaultPath is where results go when no path is configured.
const DefaultPath = "pagerank.csv"

// Format names a result encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Writer persists the ranks held by a store.
type Writer interface {
	Write(ctx context.Context, store *graph.Store) error
}

// ParseFormat validates a format name. An empty name yields FormatCSV.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q: must be 'csv', 'json' or 'sqlite'", name)
	}
}

// FormatForPath guesses a format from a file extension, defaulting to CSV.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// New returns the writer for format targeting path.
func New(format Format, path string) (Writer, error) {
	if path == "" {
		path = DefaultPath
	}
	switch format {
	case FormatCSV, "":
		return &CSVWriter{Path: path}, nil
	case FormatJSON:
		return &JSONWriter{Path: path}, nil
	case FormatSQLite:
		return &SQLiteWriter{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
