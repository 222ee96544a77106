package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/burstrank/internal/cli"
	"github.com/vk/burstrank/internal/testutil"
)

func TestRun_EndToEnd(t *testing.T) {
	input := testutil.WriteEdgeList(t, "1 2", "2 3", "3 1")
	out := filepath.Join(t.TempDir(), "pagerank.csv")

	err := run(&bytes.Buffer{}, []string{input, "3", "--output", out, "--env-file", ""})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "node,pagerank\n1,1.000000\n2,1.000000\n3,1.000000\n", string(got))
}

func TestRun_ShouldExit(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when help is requested")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	err := run(&bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	assert.Equal(t, cli.UsageExitCode, exitCode(err))
}

func TestRun_MalformedInputExitsWithOne(t *testing.T) {
	input := testutil.WriteEdgeList(t, "1 2", "garbage")
	out := filepath.Join(t.TempDir(), "pagerank.csv")

	err := run(&bytes.Buffer{}, []string{input, "1", "--output", out, "--env-file", ""})

	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.NoFileExists(t, out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(&cli.ExitError{Code: 2, Message: "usage"}))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
