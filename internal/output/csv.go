package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/graph"
)

// csvHeader is the first line of every CSV result.
const csvHeader = "node,pagerank\n"

// CSVWriter writes `ID,rank` rows with six fixed decimals.
type CSVWriter struct {
	Path string
}

// Write implements Writer.
func (w *CSVWriter) Write(ctx context.Context, store *graph.Store) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Writing CSV results.", "path", w.Path, "nodes", store.Len())

	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := EncodeCSV(f, store.Snapshot()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// EncodeCSV writes the header and one row per entry to out.
func EncodeCSV(out io.Writer, entries []graph.Entry) error {
	bw := bufio.NewWriter(out)
	if _, err := bw.WriteString(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	var row []byte
	for _, e := range entries {
		row = strconv.AppendInt(row[:0], e.ID, 10)
		row = append(row, ',')
		row = strconv.AppendFloat(row, e.Rank, 'f', 6, 64)
		row = append(row, '\n')
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for node %d: %w", e.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	return nil
}
