// Package rankstats summarises the ranks left in a store after a run.
package rankstats

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/vk/burstrank/internal/graph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of ranks.
type Summary struct {
	Nodes  int
	Sum    float64
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Top    []graph.Entry
}

// Summarize computes the summary and keeps the top highest-ranked nodes,
// ties broken by ascending ID.
func Summarize(store *graph.Store, top int) Summary {
	entries := store.Snapshot()
	s := Summary{Nodes: len(entries)}
	if len(entries) == 0 {
		return s
	}

	ranks := make([]float64, len(entries))
	for i, e := range entries {
		ranks[i] = e.Rank
	}
	s.Sum = floats.Sum(ranks)
	s.Min = floats.Min(ranks)
	s.Max = floats.Max(ranks)
	s.Mean, s.StdDev = stat.MeanStdDev(ranks, nil)

	if top > 0 {
		// Snapshot is ID-ordered, so a stable sort keeps ties by ID.
		slices.SortStableFunc(entries, func(a, b graph.Entry) int {
			return cmp.Compare(b.Rank, a.Rank)
		})
		s.Top = entries[:min(top, len(entries))]
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("nodes", s.Nodes),
		slog.Float64("sum", s.Sum),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
	}
	if len(s.Top) > 0 {
		top := make([]int64, len(s.Top))
		for i, e := range s.Top {
			top[i] = e.ID
		}
		attrs = append(attrs, slog.Any("top", top))
	}
	return slog.GroupValue(attrs...)
}
