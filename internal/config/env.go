package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "BURSTRANK_"

// Environment variable names.
const (
	EnvIterations        = EnvPrefix + "ITERATIONS"
	EnvBuckets           = EnvPrefix + "BUCKETS"
	EnvBaseRank          = EnvPrefix + "BASE_RANK"
	EnvDampingFactor     = EnvPrefix + "DAMPING_FACTOR"
	EnvOutput            = EnvPrefix + "OUTPUT"
	EnvFormat            = EnvPrefix + "FORMAT"
	EnvProgressURL       = EnvPrefix + "PROGRESS_URL"
	EnvProgressNamespace = EnvPrefix + "PROGRESS_NAMESPACE"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment that falls back to
// the variables in dotenvPath. A missing dotenv file is not an error; process
// variables always win over the file.
func EnvLookup(dotenvPath string) (LookupFunc, error) {
	fileVars := map[string]string{}
	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", dotenvPath, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// FromEnv builds a layer from BURSTRANK_* variables.
func FromEnv(lookup LookupFunc) (*Layer, error) {
	l := &Layer{}
	var errs []error

	if v, ok := lookup(EnvIterations); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvIterations, err))
		}
		l.Iterations = &n
	}
	if v, ok := lookup(EnvBuckets); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvBuckets, err))
		}
		l.Buckets = &n
	}
	if v, ok := lookup(EnvBaseRank); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvBaseRank, err))
		}
		l.BaseRank = &f
	}
	if v, ok := lookup(EnvDampingFactor); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvDampingFactor, err))
		}
		l.DampingFactor = &f
	}
	if v, ok := lookup(EnvOutput); ok {
		l.OutputPath = &v
	}
	if v, ok := lookup(EnvFormat); ok {
		l.OutputFormat = &v
	}
	if v, ok := lookup(EnvProgressURL); ok {
		l.ProgressURL = &v
	}
	if v, ok := lookup(EnvProgressNamespace); ok {
		l.ProgressNamespace = &v
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return l, nil
}
