package config

import (
	"fmt"
	"strings"

	"bitday/core/render"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// ValidationResult separates errors that must stop startup from values that were clamped.
type ValidationResult struct {
	Fatals   []error
	Warnings []error
}

func (r ValidationResult) HasFatals() bool { return len(r.Fatals) > 0 }

// Validate checks the config. Out-of-range numbers are clamped to safe values and
// reported as warnings; values that cannot be interpreted are fatal.
func (c *Config) Validate() ValidationResult {
	var r ValidationResult

	if _, err := render.ParsePolicy(c.Render.Policy); err != nil {
		r.Fatals = append(r.Fatals, fmt.Errorf("render.policy %q is not valid (use cover or fill-height)", c.Render.Policy))
	}

	switch strings.ToLower(c.Cache.Mode) {
	case CacheSingle, CacheLRU:
	default:
		r.Fatals = append(r.Fatals, fmt.Errorf("cache.mode %q is not valid (use single or lru)", c.Cache.Mode))
	}
	if c.Cache.BudgetBytes < 0 {
		r.Fatals = append(r.Fatals, fmt.Errorf("cache.budget_bytes %d must not be negative", c.Cache.BudgetBytes))
	}

	if c.Window.Width < 1 || c.Window.Height < 1 {
		r.Fatals = append(r.Fatals, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	if c.Headless.Hz < 1 {
		r.Warnings = append(r.Warnings, fmt.Errorf("headless.hz %d is below minimum 1, clamping", c.Headless.Hz))
		c.Headless.Hz = 1
	} else if c.Headless.Hz > 1000 {
		r.Warnings = append(r.Warnings, fmt.Errorf("headless.hz %d exceeds maximum 1000, clamping", c.Headless.Hz))
		c.Headless.Hz = 1000
	}

	if c.Clock.PollTicks < 10 {
		r.Warnings = append(r.Warnings, fmt.Errorf("clock.poll_ticks %d is below minimum 10, clamping", c.Clock.PollTicks))
		c.Clock.PollTicks = 10
	} else if c.Clock.PollTicks > 60000 {
		r.Warnings = append(r.Warnings, fmt.Errorf("clock.poll_ticks %d exceeds maximum 60000, clamping", c.Clock.PollTicks))
		c.Clock.PollTicks = 60000
	}

	if c.Log.Level != "" && !validLogLevels[strings.ToLower(c.Log.Level)] {
		r.Fatals = append(r.Fatals, fmt.Errorf("log.level %q is not valid (use debug, info, warn, error)", c.Log.Level))
	}
	if c.Log.Format != "" && c.Log.Format != "console" && c.Log.Format != "json" {
		r.Fatals = append(r.Fatals, fmt.Errorf("log.format %q is not valid (use console or json)", c.Log.Format))
	}

	return r
}
