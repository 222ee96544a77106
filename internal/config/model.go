package config

import (
	"errors"
	"fmt"

	"github.com/vk/burstrank/internal/engine"
	"github.com/vk/burstrank/internal/output"
)

// DefaultBuckets is the hash bucket count used when none is configured.
const DefaultBuckets = 503

// Model is the fully resolved configuration.
type Model struct {
	Engine   Engine
	Output   Output
	Progress Progress
}

// Engine groups the algorithm constants.
type Engine struct {
	Iterations    int
	Buckets       int
	BaseRank      float64
	DampingFactor float64
}

// Output selects where and how results are written.
type Output struct {
	Path   string
	Format string
}

// Progress configures the optional socket.io progress endpoint. An empty URL
// disables it.
type Progress struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
}

// Layer is a partial configuration. Nil fields are unset.
type Layer struct {
	Iterations    *int
	Buckets       *int
	BaseRank      *float64
	DampingFactor *float64

	OutputPath   *string
	OutputFormat *string

	ProgressURL                *string
	ProgressNamespace          *string
	ProgressInsecureSkipVerify *bool
}

// Default returns the built-in configuration.
func Default() *Model {
	return &Model{
		Engine: Engine{
			Iterations:    engine.DefaultIterations,
			Buckets:       DefaultBuckets,
			BaseRank:      engine.DefaultBaseRank,
			DampingFactor: engine.DefaultDampingFactor,
		},
		Output: Output{
			Path: output.DefaultPath,
		},
		Progress: Progress{
			Namespace: "/",
		},
	}
}

// Apply overlays every set field of l onto m. A nil layer is a no-op.
func (m *Model) Apply(l *Layer) {
	if l == nil {
		return
	}
	set(&m.Engine.Iterations, l.Iterations)
	set(&m.Engine.Buckets, l.Buckets)
	set(&m.Engine.BaseRank, l.BaseRank)
	set(&m.Engine.DampingFactor, l.DampingFactor)
	set(&m.Output.Path, l.OutputPath)
	set(&m.Output.Format, l.OutputFormat)
	set(&m.Progress.URL, l.ProgressURL)
	set(&m.Progress.Namespace, l.ProgressNamespace)
	set(&m.Progress.InsecureSkipVerify, l.ProgressInsecureSkipVerify)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// OutputFormat resolves the configured format, falling back to the output
// path's extension when none is set.
func (m *Model) OutputFormat() (output.Format, error) {
	if m.Output.Format == "" {
		return output.FormatForPath(m.Output.Path), nil
	}
	return output.ParseFormat(m.Output.Format)
}

// EngineOptions converts the model into engine options for a worker count.
func (m *Model) EngineOptions(workers int) engine.Options {
	return engine.Options{
		Iterations:    m.Engine.Iterations,
		BaseRank:      m.Engine.BaseRank,
		DampingFactor: m.Engine.DampingFactor,
		Workers:       workers,
	}
}

// Validate reports every invalid field.
func (m *Model) Validate() error {
	var errs []error
	if m.Engine.Buckets < 1 {
		errs = append(errs, fmt.Errorf("buckets must be at least 1, got %d", m.Engine.Buckets))
	}
	if m.Engine.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be at least 1, got %d", m.Engine.Iterations))
	}
	if m.Engine.BaseRank < 0 {
		errs = append(errs, fmt.Errorf("base_rank must not be negative, got %g", m.Engine.BaseRank))
	}
	if !(m.Engine.DampingFactor >= 0 && m.Engine.DampingFactor <= 1) {
		errs = append(errs, fmt.Errorf("damping_factor must be within [0, 1], got %g", m.Engine.DampingFactor))
	}
	if m.Output.Path == "" {
		errs = append(errs, errors.New("output path must not be empty"))
	}
	if _, err := m.OutputFormat(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
