package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/burstrank/internal/output"
)

func ptr[T any](v T) *T { return &v }

func TestDefault(t *testing.T) {
	m := Default()

	assert.Equal(t, Engine{Iterations: 50, Buckets: 503, BaseRank: 0.15, DampingFactor: 0.85}, m.Engine)
	assert.Equal(t, "pagerank.csv", m.Output.Path)
	assert.Empty(t, m.Progress.URL)
	require.NoError(t, m.Validate())
}

func TestApply_LayersInOrder(t *testing.T) {
	m := Default()

	m.Apply(&Layer{Iterations: ptr(10), Buckets: ptr(7), OutputPath: ptr("file.json")})
	m.Apply(&Layer{Iterations: ptr(20)})
	m.Apply(nil)

	assert.Equal(t, 20, m.Engine.Iterations)
	assert.Equal(t, 7, m.Engine.Buckets)
	assert.Equal(t, 0.85, m.Engine.DampingFactor, "unset fields keep lower layers")
	assert.Equal(t, "file.json", m.Output.Path)
}

func TestOutputFormat(t *testing.T) {
	m := Default()
	f, err := m.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatCSV, f)

	m.Output.Path = "ranks.sqlite"
	f, err = m.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatSQLite, f, "extension decides when no format is set")

	m.Output.Format = "json"
	f, err = m.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, f, "explicit format wins over extension")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	m := Default()
	m.Engine.Buckets = 0
	m.Engine.Iterations = -1
	m.Engine.BaseRank = -0.5
	m.Engine.DampingFactor = 1.01
	m.Output.Format = "xml"

	err := m.Validate()
	require.Error(t, err)
	for _, want := range []string{"buckets", "iterations", "base_rank", "damping_factor", "xml"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestEngineOptions(t *testing.T) {
	m := Default()
	m.Engine.Iterations = 3

	opts := m.EngineOptions(4)

	assert.Equal(t, 3, opts.Iterations)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, 0.15, opts.BaseRank)
	require.NoError(t, opts.Validate())
}
