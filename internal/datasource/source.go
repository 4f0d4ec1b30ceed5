// Package datasource provides multi-source graph snapshot loading for gx.
// It discovers, validates, and selects the freshest valid source from an HTTP
// graph service, a local JSON file, and the local SQLite snapshot cache.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/graphscape/graphscape/pkg/debug"
)

// SourceType identifies the type of data source
type SourceType string

const (
	// SourceTypeHTTP is a remote graph service endpoint
	SourceTypeHTTP SourceType = "http"
	// SourceTypeFile is a local JSON snapshot file
	SourceTypeFile SourceType = "file"
	// SourceTypeCache is the local SQLite snapshot cache
	SourceTypeCache SourceType = "cache"
)

// Priority values for source types (higher = more authoritative)
const (
	PriorityHTTP  = 100
	PriorityFile  = 80
	PriorityCache = 50
)

// Common errors.
var (
	// ErrUnavailable signals that a source could not produce a snapshot;
	// callers substitute the placeholder graph.
	ErrUnavailable = errors.New("graph source unavailable")
	// ErrNoSources means discovery found nothing to load from.
	ErrNoSources = errors.New("no valid graph sources")
)

// Source represents a potential source of graph data
type Source struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Location is the endpoint URL or file path
	Location string `json:"location"`
	// Priority determines preference when timestamps are equal (higher = preferred)
	Priority int `json:"priority"`
	// ModTime is the last known update time of the source
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// NodeCount is the number of nodes in the source (set during validation)
	NodeCount int `json:"node_count"`
}

// String returns a human-readable description of the source
func (s Source) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, nodes=%d, %s)",
		s.Location, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.NodeCount, status)
}

// Config names the candidate sources.
type Config struct {
	// Endpoint is the HTTP base URL of the graph service ("" disables)
	Endpoint string
	// File is a local JSON snapshot path ("" disables)
	File string
	// CachePath is the SQLite cache db path ("" disables)
	CachePath string
	// Query is sent to the HTTP source
	Query Query
}

// Discover probes every configured source concurrently and returns the
// candidates sorted freshest-first (priority breaks timestamp ties).
func Discover(ctx context.Context, cfg Config) []Source {
	var mu sync.Mutex
	var sources []Source
	add := func(s Source) {
		mu.Lock()
		sources = append(sources, s)
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Endpoint != "" {
		g.Go(func() error {
			s := Source{Type: SourceTypeHTTP, Location: cfg.Endpoint, Priority: PriorityHTTP}
			src := NewHTTPSource(cfg.Endpoint)
			if err := src.Ping(ctx); err != nil {
				s.ValidationError = err.Error()
			} else {
				s.Valid = true
				s.ModTime = time.Now()
			}
			add(s)
			return nil
		})
	}

	if cfg.File != "" {
		g.Go(func() error {
			s := Source{Type: SourceTypeFile, Location: cfg.File, Priority: PriorityFile}
			info, err := os.Stat(cfg.File)
			if err != nil {
				s.ValidationError = err.Error()
			} else {
				s.Valid = true
				s.ModTime = info.ModTime()
			}
			add(s)
			return nil
		})
	}

	if cfg.CachePath != "" {
		g.Go(func() error {
			s := Source{Type: SourceTypeCache, Location: cfg.CachePath, Priority: PriorityCache}
			cache, err := OpenCache(cfg.CachePath)
			if err != nil {
				s.ValidationError = err.Error()
				add(s)
				return nil
			}
			defer cache.Close()
			mod, count, err := cache.Info()
			if err != nil {
				s.ValidationError = err.Error()
			} else if count == 0 {
				s.ValidationError = "cache is empty"
			} else {
				s.Valid = true
				s.ModTime = mod
				s.NodeCount = count
			}
			add(s)
			return nil
		})
	}

	// Probes record failures on the Source instead of returning errors, so
	// Wait never fails; it only fences the goroutines.
	_ = g.Wait()

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})

	for _, s := range sources {
		debug.Log("datasource: discovered %s", s)
	}
	return sources
}

// SelectBest returns the first valid source, preferring the HTTP service over
// file and cache when several are valid.
func SelectBest(sources []Source) (Source, error) {
	best := Source{}
	found := false
	for _, s := range sources {
		if !s.Valid {
			continue
		}
		if !found || s.Priority > best.Priority {
			best = s
			found = true
		}
	}
	if !found {
		return Source{}, ErrNoSources
	}
	return best, nil
}
