// Package config holds the run-time settings of a computation and the rules
// for layering them.
//
// Settings are resolved from four layers, later layers winning:
//
//  1. built-in defaults (Default)
//  2. a configuration file, read by a format-specific Loader (HCL or YAML)
//  3. environment variables prefixed with BURSTRANK_, optionally seeded from a
//     .env file
//  4. command-line flags
//
// Every layer is a *Layer whose nil fields leave the value below untouched.
package config
