package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vk/burstrank/internal/app"
	"github.com/vk/burstrank/internal/config"
)

// UsageExitCode is returned for every invocation error.
const UsageExitCode = 2

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: UsageExitCode, Message: fmt.Sprintf(format, args...)}
}

type flagValues struct {
	configPath string
	envFile    string

	output string
	format string

	iterations    int
	buckets       int
	baseRank      float64
	dampingFactor float64

	logLevel        string
	logFormat       string
	healthcheckPort int

	progressURL       string
	progressNamespace string
	progressInsecure  bool
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly (help was shown),
// or an *ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	var cfg *app.Config
	cmd := newCommand(func(c *app.Config) { cfg = c })
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: UsageExitCode, Message: err.Error()}
	}
	if cfg == nil {
		return nil, true, nil
	}
	return cfg, false, nil
}

func newCommand(onParsed func(*app.Config)) *cobra.Command {
	v := &flagValues{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "burstrank <input> <workers>",
		Short: "Compute PageRank scores for an edge-list graph",
		Long: `burstrank loads a directed graph from an edge list (one "source destination"
pair of non-negative integers per line, '#' starts a comment line), runs a
fixed number of PageRank passes with the given number of worker goroutines and
writes one rank per node.

Settings are layered: defaults < --config file < BURSTRANK_* environment
(optionally from --env-file) < flags.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageError("expected 2 arguments <input> <workers>, got %d", len(args))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, v, args)
			if err != nil {
				return err
			}
			onParsed(cfg)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&v.configPath, "config", "c", "", "Path to an .hcl, .yaml or .yml settings file.")
	f.StringVar(&v.envFile, "env-file", ".env", "Dotenv file consulted for BURSTRANK_* variables. Missing is fine.")
	f.StringVarP(&v.output, "output", "o", defaults.Output.Path, "Result file path.")
	f.StringVar(&v.format, "format", "", "Result format: 'csv', 'json' or 'sqlite'. Defaults to the output file extension.")
	f.IntVarP(&v.iterations, "iterations", "n", defaults.Engine.Iterations, "Number of PageRank passes.")
	f.IntVar(&v.buckets, "buckets", defaults.Engine.Buckets, "Number of hash buckets (units of work per pass).")
	f.Float64Var(&v.baseRank, "base-rank", defaults.Engine.BaseRank, "Constant term of every rank.")
	f.Float64Var(&v.dampingFactor, "damping-factor", defaults.Engine.DampingFactor, "Weight of the incoming contributions, within [0, 1].")
	f.StringVar(&v.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.StringVar(&v.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	f.IntVar(&v.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	f.StringVar(&v.progressURL, "progress-url", "", "socket.io server receiving per-pass progress events.")
	f.StringVar(&v.progressNamespace, "progress-namespace", defaults.Progress.Namespace, "socket.io namespace for progress events.")
	f.BoolVar(&v.progressInsecure, "progress-insecure", false, "Skip TLS verification for the progress server.")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%s", err.Error())
	})
	return cmd
}

func buildConfig(cmd *cobra.Command, v *flagValues, args []string) (*app.Config, error) {
	workers, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, usageError("invalid worker count %q: must be an integer", args[1])
	}

	cfg := &app.Config{
		InputPath:       args[0],
		Workers:         workers,
		ConfigPath:      v.configPath,
		EnvFile:         v.envFile,
		LogLevel:        v.logLevel,
		LogFormat:       v.logFormat,
		HealthcheckPort: v.healthcheckPort,
		Flags:           flagLayer(cmd, v),
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError("%s", err.Error())
	}

	// Checking the flags over the defaults isolates problems in the flags.
	probe := config.Default()
	probe.Apply(cfg.Flags)
	if err := probe.Validate(); err != nil {
		return nil, usageError("%s", err.Error())
	}
	return cfg, nil
}

// flagLayer keeps only the flags the user actually set, so that unset flags
// do not mask the config file or the environment.
func flagLayer(cmd *cobra.Command, v *flagValues) *config.Layer {
	f := cmd.Flags()
	l := &config.Layer{}
	if f.Changed("iterations") {
		l.Iterations = &v.iterations
	}
	if f.Changed("buckets") {
		l.Buckets = &v.buckets
	}
	if f.Changed("base-rank") {
		l.BaseRank = &v.baseRank
	}
	if f.Changed("damping-factor") {
		l.DampingFactor = &v.dampingFactor
	}
	if f.Changed("output") {
		l.OutputPath = &v.output
	}
	if f.Changed("format") {
		l.OutputFormat = &v.format
	}
	if f.Changed("progress-url") {
		l.ProgressURL = &v.progressURL
	}
	if f.Changed("progress-namespace") {
		l.ProgressNamespace = &v.progressNamespace
	}
	if f.Changed("progress-insecure") {
		l.ProgressInsecureSkipVerify = &v.progressInsecure
	}
	return l
}
