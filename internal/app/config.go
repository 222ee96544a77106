package app

import (
	"errors"
	"fmt"

	"github.com/vk/burstrank/internal/config"
)

// Config holds everything an App instance needs that is not part of the
// layered computation settings.
type Config struct {
	InputPath string
	Workers   int

	ConfigPath string // optional .hcl, .yaml or .yml file
	EnvFile    string // optional dotenv file, missing is fine

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Flags is the highest-priority settings layer, usually built from
	// command-line flags.
	Flags *config.Layer
}

// Validate checks the fields that must be present before any resource is
// acquired.
func (c *Config) Validate() error {
	var errs []error
	if c.InputPath == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("worker count must be at least 1, got %d", c.Workers))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := validateLogFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if c.HealthcheckPort < 0 || c.HealthcheckPort > 65535 {
		errs = append(errs, fmt.Errorf("healthcheck port out of range: %d", c.HealthcheckPort))
	}
	return errors.Join(errs...)
}
