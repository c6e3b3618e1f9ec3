// This file contains environment variable handling for configuration.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
)

// timeoutEnvVar is the unprefixed per-session timeout variable, in integer
// seconds. This exact name is part of the external contract.
const timeoutEnvVar = "TIMEOUT"

// timeoutFromEnv reads the per-session timeout. Unset means the default;
// a set but malformed value is a fatal configuration error, never a silent
// fallback.
func timeoutFromEnv() (time.Duration, error) {
	val := os.Getenv(timeoutEnvVar)
	if val == "" {
		return DefaultTimeoutSeconds * time.Second, nil
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs <= 0 {
		return 0, apperrors.NewConfigError("%s must be a positive integer number of seconds, got %q", timeoutEnvVar, val)
	}
	return time.Duration(secs) * time.Second, nil
}

// envOverride declares a single environment variable override. Each entry
// maps an env key (without the GRIDSMOKE_ prefix) to a function that applies
// the value; apply returns an error for malformed values, which aborts
// startup.
type envOverride struct {
	envKey string
	apply  func(*RunConfig, string) error
}

// envOverrides is the declarative table of all supplementary overrides.
var envOverrides = []envOverride{
	{"SCENARIO", func(c *RunConfig, v string) error {
		c.Scenario = v
		return nil
	}},
	{"STAGGER", func(c *RunConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return apperrors.NewConfigError("%sSTAGGER must be a duration (e.g. 25ms), got %q", EnvPrefix, v)
		}
		c.Stagger = parsed
		return nil
	}},
	{"STRICT_METADATA", func(c *RunConfig, v string) error {
		c.StrictMetadata = parseBoolEnv(v, c.StrictMetadata)
		return nil
	}},
	{"METRICS_ADDR", func(c *RunConfig, v string) error {
		c.MetricsAddr = v
		return nil
	}},
	{"TUI", func(c *RunConfig, v string) error {
		c.TUI = parseBoolEnv(v, c.TUI)
		return nil
	}},
	{"QUIET", func(c *RunConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"VERBOSE", func(c *RunConfig, v string) error {
		c.Verbose = parseBoolEnv(v, c.Verbose)
		return nil
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false
// (case-insensitive). Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies GRIDSMOKE_-prefixed environment values to the
// configuration.
//
// Supported variables: SCENARIO, STAGGER, STRICT_METADATA, METRICS_ADDR,
// TUI, QUIET, VERBOSE (all prefixed with GRIDSMOKE_).
func applyEnvOverrides(config *RunConfig) error {
	for _, o := range envOverrides {
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return err
			}
		}
	}
	return nil
}
