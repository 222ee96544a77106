// Package progress reports the advance of a rank computation, one event per
// finished pass and one when the run is over.
package progress

import (
	"context"
	"errors"
	"time"

	"github.com/vk/burstrank/internal/ctxlog"
)

// Reporter receives progress events. PassCompleted is called from the engine's
// critical section between passes and must not block for long.
type Reporter interface {
	PassCompleted(ctx context.Context, pass, total int)
	Finished(ctx context.Context, passes int, elapsed time.Duration)
	Close() error
}

// LogReporter writes progress to the context logger.
type LogReporter struct{}

// PassCompleted implements Reporter.
func (LogReporter) PassCompleted(ctx context.Context, pass, total int) {
	ctxlog.FromContext(ctx).Debug("Pass completed.", "pass", pass, "total", total)
}

// Finished implements Reporter.
func (LogReporter) Finished(ctx context.Context, passes int, elapsed time.Duration) {
	ctxlog.FromContext(ctx).Debug("All passes completed.", "passes", passes, "elapsed", elapsed)
}

// Close implements Reporter.
func (LogReporter) Close() error { return nil }

// Multi fans events out to several reporters.
type Multi []Reporter

// PassCompleted implements Reporter.
func (m Multi) PassCompleted(ctx context.Context, pass, total int) {
	for _, r := range m {
		r.PassCompleted(ctx, pass, total)
	}
}

// Finished implements Reporter.
func (m Multi) Finished(ctx context.Context, passes int, elapsed time.Duration) {
	for _, r := range m {
		r.Finished(ctx, passes, elapsed)
	}
}

// Close closes every reporter and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
