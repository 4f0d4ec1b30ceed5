package datasource

import (
	"context"
	"fmt"

	"github.com/graphscape/graphscape/pkg/debug"
	"github.com/graphscape/graphscape/pkg/model"
)

// Load performs multi-source detection and loading: it discovers the
// configured sources, selects the freshest valid one (HTTP preferred over
// file over cache at equal freshness), loads from it, and refreshes the
// cache when the snapshot came from a live source.
func Load(ctx context.Context, cfg Config) (model.GraphData, SourceType, error) {
	sources := Discover(ctx, cfg)
	if len(sources) == 0 {
		return model.GraphData{}, "", ErrNoSources
	}

	best, err := SelectBest(sources)
	if err != nil {
		return model.GraphData{}, "", err
	}

	data, err := loadFrom(ctx, best, cfg)
	if err != nil {
		// The selected source lied during validation (raced away, bad
		// payload). Try the remaining valid sources in order.
		for _, s := range sources {
			if !s.Valid || s == best {
				continue
			}
			if fallback, ferr := loadFrom(ctx, s, cfg); ferr == nil {
				refreshCache(cfg, s.Type, fallback)
				return fallback, s.Type, nil
			}
		}
		return model.GraphData{}, "", err
	}

	refreshCache(cfg, best.Type, data)
	return data, best.Type, nil
}

// LoadOrPlaceholder is Load with the transport-failure contract applied: any
// failure yields the single placeholder node instead of an error.
func LoadOrPlaceholder(ctx context.Context, cfg Config) (model.GraphData, SourceType) {
	data, typ, err := Load(ctx, cfg)
	if err != nil {
		debug.Log("datasource: all sources failed (%v), using placeholder", err)
		return model.Placeholder(), ""
	}
	return data, typ
}

// loadFrom loads a snapshot from a specific source, dispatching on type.
func loadFrom(ctx context.Context, source Source, cfg Config) (model.GraphData, error) {
	switch source.Type {
	case SourceTypeHTTP:
		return NewHTTPSource(source.Location).Fetch(ctx, cfg.Query)

	case SourceTypeFile:
		return NewFileSource(source.Location).Load()

	case SourceTypeCache:
		cache, err := OpenCache(source.Location)
		if err != nil {
			return model.GraphData{}, fmt.Errorf("open cache %s: %w", source.Location, err)
		}
		defer cache.Close()
		return cache.Load()

	default:
		return model.GraphData{}, fmt.Errorf("unknown source type: %s", source.Type)
	}
}

// refreshCache stores a snapshot that came from a live source. Cache write
// failures are logged, not fatal.
func refreshCache(cfg Config, from SourceType, data model.GraphData) {
	if cfg.CachePath == "" || from == SourceTypeCache {
		return
	}
	cache, err := OpenCache(cfg.CachePath)
	if err != nil {
		debug.Log("datasource: cache open failed: %v", err)
		return
	}
	defer cache.Close()
	if err := cache.Store(data); err != nil {
		debug.Log("datasource: cache store failed: %v", err)
	}
}
