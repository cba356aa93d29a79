package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	r := cfg.Validate()
	if r.HasFatals() || len(r.Warnings) > 0 {
		t.Fatalf("default config: fatals=%v warnings=%v", r.Fatals, r.Warnings)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitday.yaml")
	doc := `
assets:
  dir: /srv/bitday
  lazy: true
render:
  policy: fill-height
cache:
  mode: single
window:
  width: 1080
  height: 1920
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("BITDAY_LOG_LEVEL", "debug")
	t.Setenv("BITDAY_CLOCK_POLL_TICKS", "250")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assets.Dir != "/srv/bitday" || !cfg.Assets.Lazy {
		t.Fatalf("assets = %+v", cfg.Assets)
	}
	if cfg.Render.Policy != "fill-height" || cfg.Cache.Mode != CacheSingle {
		t.Fatalf("render=%+v cache=%+v", cfg.Render, cfg.Cache)
	}
	if cfg.Window.Width != 1080 || cfg.Window.Height != 1920 {
		t.Fatalf("window = %+v", cfg.Window)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log.level = %q, want env override", cfg.Log.Level)
	}
	if cfg.Clock.PollTicks != 250 {
		t.Fatalf("clock.poll_ticks = %d, want 250", cfg.Clock.PollTicks)
	}
	if cfg.Headless.Hz != 60 {
		t.Fatalf("headless.hz = %d, want default 60", cfg.Headless.Hz)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidateFatals(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"policy", func(c *Config) { c.Render.Policy = "stretch" }, "render.policy"},
		{"cache mode", func(c *Config) { c.Cache.Mode = "arc" }, "cache.mode"},
		{"budget", func(c *Config) { c.Cache.BudgetBytes = -1 }, "cache.budget_bytes"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			r := cfg.Validate()
			if !r.HasFatals() {
				t.Fatal("expected fatal")
			}
			if !strings.Contains(r.Fatals[0].Error(), tt.want) {
				t.Fatalf("fatal = %v, want mention of %s", r.Fatals[0], tt.want)
			}
		})
	}
}

func TestValidateClampsWithWarnings(t *testing.T) {
	cfg := Default()
	cfg.Headless.Hz = 0
	cfg.Clock.PollTicks = 1 << 20
	r := cfg.Validate()
	if r.HasFatals() {
		t.Fatalf("unexpected fatals: %v", r.Fatals)
	}
	if len(r.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", r.Warnings)
	}
	if cfg.Headless.Hz != 1 || cfg.Clock.PollTicks != 60000 {
		t.Fatalf("clamped hz=%d poll=%d", cfg.Headless.Hz, cfg.Clock.PollTicks)
	}
}

func TestLoadFlagsOverridesOnlyWhenSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitday.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := pflag.NewFlagSet("bitday", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	cfg, err := LoadFlags(path, fs)
	if err != nil {
		t.Fatalf("LoadFlags: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("log.level without flag = %q, want warn from file", cfg.Log.Level)
	}

	fs = pflag.NewFlagSet("bitday", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	if err := fs.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg, err = LoadFlags(path, fs)
	if err != nil {
		t.Fatalf("LoadFlags: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log.level with flag = %q, want debug", cfg.Log.Level)
	}
}
