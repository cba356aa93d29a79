package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Assets   AssetsConfig   `mapstructure:"assets"`
	Render   RenderConfig   `mapstructure:"render"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Prefs    PrefsConfig    `mapstructure:"prefs"`
	Window   WindowConfig   `mapstructure:"window"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Clock    ClockConfig    `mapstructure:"clock"`
	Log      LogConfig      `mapstructure:"log"`
}

type AssetsConfig struct {
	Dir  string `mapstructure:"dir"`
	Lazy bool   `mapstructure:"lazy"`
}

type RenderConfig struct {
	Policy  string `mapstructure:"policy"`
	Preview bool   `mapstructure:"preview"`
}

type CacheConfig struct {
	Mode        string `mapstructure:"mode"`
	BudgetBytes int    `mapstructure:"budget_bytes"`
}

type PrefsConfig struct {
	// Path is the prefs file. Empty means the user config dir; PrefsOff disables persistence.
	Path string `mapstructure:"path"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type HeadlessConfig struct {
	Hz    int    `mapstructure:"hz"`
	Ticks uint64 `mapstructure:"ticks"`
}

type ClockConfig struct {
	PollTicks uint64 `mapstructure:"poll_ticks"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	CacheSingle = "single"
	CacheLRU    = "lru"

	PrefsOff = "off"
)

func Default() *Config {
	return &Config{
		Render:   RenderConfig{Policy: "cover"},
		Cache:    CacheConfig{Mode: CacheLRU},
		Window:   WindowConfig{Width: 540, Height: 960},
		Headless: HeadlessConfig{Hz: 60},
		Clock:    ClockConfig{PollTicks: 1000},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads bitday.yaml (or cfgFile) and BITDAY_* environment overrides on top of Default.
// A missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	return load(viper.New(), cfgFile)
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"log.level": "log-level",
}

// LoadFlags is Load with flags from fs layered on top. A flag only wins when it was set.
func LoadFlags(cfgFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, err
		}
	}
	return load(v, cfgFile)
}

func load(v *viper.Viper, cfgFile string) (*Config, error) {
	cfg := Default()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("bitday")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BITDAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("assets.dir", cfg.Assets.Dir)
	v.SetDefault("assets.lazy", cfg.Assets.Lazy)
	v.SetDefault("render.policy", cfg.Render.Policy)
	v.SetDefault("render.preview", cfg.Render.Preview)
	v.SetDefault("cache.mode", cfg.Cache.Mode)
	v.SetDefault("cache.budget_bytes", cfg.Cache.BudgetBytes)
	v.SetDefault("prefs.path", cfg.Prefs.Path)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("headless.hz", cfg.Headless.Hz)
	v.SetDefault("headless.ticks", cfg.Headless.Ticks)
	v.SetDefault("clock.poll_ticks", cfg.Clock.PollTicks)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bitday")
}
