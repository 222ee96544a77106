// Package edgelist builds a graph.Store from a line-oriented edge list.
//
// Each line holds one directed edge as two whitespace-separated non-negative
// integers, source first. Lines starting with '#' and blank lines are
// skipped. Any other line that does not parse fails the whole load.
package edgelist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/graph"
)

// ErrMalformedLine is wrapped by every LineError.
var ErrMalformedLine = errors.New("malformed edge line")

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// progressEvery controls how often loading progress is logged.
const progressEvery = 1_000_000

// LineError reports the line that made a load fail.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Stats describes a finished load.
type Stats struct {
	Lines   int
	Skipped int
	Edges   int
	Nodes   int
	MaxID   int64
}

// LoadFile opens path and loads it into a new store with the given bucket
// count. On error no store is returned.
func LoadFile(ctx context.Context, path string, buckets int) (*graph.Store, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open edge list: %w", err)
	}
	defer f.Close()

	store, err := graph.New(buckets)
	if err != nil {
		return nil, Stats{}, err
	}

	stats, err := Load(ctx, f, store)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to load edge list %s: %w", path, err)
	}
	return store, stats, nil
}

// Load reads edges from r into store. If it returns an error the store holds a
// partial graph and must be discarded.
func Load(ctx context.Context, r io.Reader, store *graph.Store) (Stats, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Edge list loading started.", "buckets", store.BucketCount())

	var stats Stats
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()

		from, to, skip, err := parseLine(line)
		if err != nil {
			return stats, &LineError{Line: stats.Lines, Text: line, Err: err}
		}
		if skip {
			stats.Skipped++
			continue
		}

		src := store.Insert(from)
		dst := store.Insert(to)
		if err := store.Link(src, dst); err != nil {
			logger.Warn("Skipping edge.", "line", stats.Lines, "error", err)
			continue
		}
		stats.Edges++

		if stats.Edges%progressEvery == 0 {
			logger.Debug("Edge list loading progress.", "edges", stats.Edges, "nodes", store.Len())
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read edge list after line %d: %w", stats.Lines, err)
	}

	stats.Nodes = store.Len()
	stats.MaxID = store.MaxID()
	logger.Debug("Edge list loading finished.", "lines", stats.Lines, "edges", stats.Edges, "nodes", stats.Nodes, "max_id", stats.MaxID)
	return stats, nil
}

// parseLine extracts the edge on a line, or reports that the line carries no
// edge.
func parseLine(line string) (from, to int64, skip bool, err error) {
	if line == "" || line[0] == '#' {
		return 0, 0, true, nil
	}

	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return 0, 0, true, nil
	case 2:
	default:
		return 0, 0, false, fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformedLine, len(fields))
	}

	if from, err = parseID(fields[0]); err != nil {
		return 0, 0, false, err
	}
	if to, err = parseID(fields[1]); err != nil {
		return 0, 0, false, err
	}
	return from, to, false, nil
}

func parseID(field string) (int64, error) {
	id, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer node id", ErrMalformedLine, field)
	}
	if id < 0 {
		return 0, fmt.Errorf("%w: node id %d is negative", ErrMalformedLine, id)
	}
	return id, nil
}
