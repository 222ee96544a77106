package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/edgelist"
	"github.com/vk/burstrank/internal/engine"
	"github.com/vk/burstrank/internal/graph"
	"github.com/vk/burstrank/internal/output"
	"github.com/vk/burstrank/internal/progress"
	"github.com/vk/burstrank/internal/rankstats"
)

// topRanked is how many of the highest-ranked nodes the summary logs.
const topRanked = 5

// Report describes a finished run.
type Report struct {
	RunID   string
	Load    edgelist.Stats
	Engine  *engine.Result
	Summary rankstats.Summary
	Output  string
	Elapsed time.Duration
}

// Run loads the graph, computes the ranks and writes them. Nothing is written
// unless the computation completed.
func (a *App) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	start := time.Now()

	if a.cfg.HealthcheckPort > 0 {
		a.startHealthCheckServer(a.cfg.HealthcheckPort)
		defer a.closeHealthCheckServer(context.WithoutCancel(ctx))
	}

	report, err := a.run(ctx)
	if err != nil {
		a.setPhase(PhaseFailed)
		return nil, err
	}

	report.Elapsed = time.Since(start)
	a.setPhase(PhaseDone)
	a.logger.Info("🏁 Run finished.", "elapsed", report.Elapsed, "output", report.Output)
	return report, nil
}

func (a *App) run(ctx context.Context) (*Report, error) {
	s := a.settings
	a.logger.Info("🚀 Starting PageRank run.",
		"input", a.cfg.InputPath,
		"workers", a.cfg.Workers,
		"iterations", s.Engine.Iterations,
		"buckets", s.Engine.Buckets,
	)
	report := &Report{RunID: a.runID}

	a.setPhase(PhaseLoading)
	phaseStart := time.Now()
	store, stats, err := edgelist.LoadFile(ctx, a.cfg.InputPath, s.Engine.Buckets)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	report.Load = stats
	a.logger.Info("Graph loaded.",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"max_id", stats.MaxID,
		"elapsed", time.Since(phaseStart),
	)

	a.setPhase(PhaseComputing)
	res, err := a.compute(ctx, store)
	if err != nil {
		return nil, err
	}
	report.Engine = res
	a.logger.Info("Ranks computed.",
		"passes", res.Passes,
		"workers", res.Workers,
		"node_updates", res.NodeUpdates,
		"elapsed", res.Elapsed,
	)

	a.setPhase(PhaseWriting)
	phaseStart = time.Now()
	format, err := s.OutputFormat()
	if err != nil {
		return nil, err
	}
	w, err := output.New(format, s.Output.Path)
	if err != nil {
		return nil, err
	}
	if err := w.Write(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}
	report.Output = s.Output.Path
	a.logger.Info("Results written.", "path", s.Output.Path, "format", format, "elapsed", time.Since(phaseStart))

	report.Summary = rankstats.Summarize(store, topRanked)
	a.logger.Info("Rank summary.", "ranks", report.Summary)
	return report, nil
}

func (a *App) compute(ctx context.Context, store *graph.Store) (*engine.Result, error) {
	reporter := a.openReporter(ctx)
	defer func() {
		if err := reporter.Close(); err != nil {
			a.logger.Warn("Failed to close progress reporter.", "error", err)
		}
	}()

	eng, err := engine.New(store, a.settings.EngineOptions(a.cfg.Workers),
		engine.WithPassHook(reporter.PassCompleted),
	)
	if err != nil {
		return nil, err
	}

	res, err := eng.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("computation failed: %w", err)
	}
	reporter.Finished(ctx, res.Passes, res.Elapsed)
	return res, nil
}

// openReporter always logs progress and, when an endpoint is configured,
// also streams it over socket.io. An unreachable endpoint is not fatal.
func (a *App) openReporter(ctx context.Context) progress.Multi {
	reporters := progress.Multi{progress.LogReporter{}}

	p := a.settings.Progress
	if p.URL == "" {
		return reporters
	}
	sio, err := progress.DialSocketIO(ctx, progress.SocketIOOptions{
		URL:                p.URL,
		Namespace:          p.Namespace,
		InsecureSkipVerify: p.InsecureSkipVerify,
	})
	if err != nil {
		a.logger.Warn("Progress reporter unavailable, continuing without it.", "url", p.URL, "error", err)
		return reporters
	}
	return append(reporters, sio)
}
