package app

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"bitday/core/assets"
	"bitday/core/render"
	"bitday/internal/config"
	"bitday/internal/prefs"

	"go.uber.org/zap"
)

// FromConfig resolves a validated file config into engine collaborators.
//
// Asset loading errors are returned: an unreadable or empty asset set is fatal at start.
func FromConfig(log *zap.Logger, c *config.Config) (Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	policy, err := render.ParsePolicy(c.Render.Policy)
	if err != nil {
		return Config{}, err
	}

	images, err := LoadImages(log, c.Assets)
	if err != nil {
		return Config{}, err
	}

	cache, err := NewCache(log, c.Cache)
	if err != nil {
		return Config{}, err
	}

	store, err := PrefsStore(c.Prefs)
	if err != nil {
		log.Warn("prefs disabled", zap.Error(err))
		store = prefs.Discard{}
	}

	return Config{
		Images:    images,
		Cache:     cache,
		Prefs:     store,
		Policy:    policy,
		Preview:   c.Render.Preview,
		PollTicks: c.Clock.PollTicks,
	}, nil
}

// LoadImages opens the configured asset directory, or the generated skies when none is set.
func LoadImages(log *zap.Logger, c config.AssetsConfig) (*assets.Library, error) {
	var fsys fs.FS
	if c.Dir != "" {
		st, err := os.Stat(c.Dir)
		if err != nil {
			return nil, fmt.Errorf("app: assets dir: %w", err)
		}
		if !st.IsDir() {
			return nil, fmt.Errorf("app: assets dir %s is not a directory", c.Dir)
		}
		fsys = os.DirFS(c.Dir)
	}
	lib, err := assets.Load(log.Named("assets"), fsys, assets.Options{Lazy: c.Lazy})
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		log.Info("using generated skies")
	} else {
		log.Info("assets loaded", zap.String("dir", c.Dir), zap.Bool("lazy", c.Lazy), zap.Int("decoded", lib.Loaded()))
	}
	return lib, nil
}

// NewCache builds the scaled-image cache for the configured mode.
func NewCache(log *zap.Logger, c config.CacheConfig) (render.Cache, error) {
	switch strings.ToLower(c.Mode) {
	case config.CacheSingle:
		return render.NewSingleCache(), nil
	case "", config.CacheLRU:
		budget := c.BudgetBytes
		if budget == 0 {
			budget = render.DefaultBudget()
		}
		lru, err := render.NewLRUCache(budget)
		if err != nil {
			return nil, err
		}
		lru.OnEvict = func(k render.Key, n int) {
			log.Debug("cache evict", zap.Stringer("key", k), zap.Int("bytes", n))
		}
		log.Debug("lru cache", zap.Int("budget_bytes", budget))
		return lru, nil
	default:
		return nil, fmt.Errorf("app: unknown cache mode %q", c.Mode)
	}
}

// PrefsStore returns the configured store. config.PrefsOff disables persistence.
func PrefsStore(c config.PrefsConfig) (prefs.Store, error) {
	switch c.Path {
	case config.PrefsOff:
		return prefs.Discard{}, nil
	case "":
		path, err := prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
		return prefs.NewFileStore(path), nil
	default:
		return prefs.NewFileStore(c.Path), nil
	}
}
