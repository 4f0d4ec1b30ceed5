// Package config handles loading and saving gx configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/gx/config.yaml
//   - Data:    ~/.local/share/gx/ (snapshot cache db)
//   - State:   ~/.local/state/gx/ (view state cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/graphscape/graphscape/pkg/model"
)

// SourceConfig names where graph snapshots come from.
type SourceConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"` // HTTP base URL of the graph service
	File     string `yaml:"file,omitempty"`     // Local JSON snapshot path
	Watch    bool   `yaml:"watch,omitempty"`    // Live-reload the file source on change
}

// LayoutConfig holds layout defaults for the explorer and exports.
type LayoutConfig struct {
	Algorithm  string  `yaml:"algorithm,omitempty"`  // force, hierarchical, circular, grid, cluster
	Width      float64 `yaml:"width,omitempty"`      // Canvas width in world units
	Height     float64 `yaml:"height,omitempty"`     // Canvas height in world units
	Iterations int     `yaml:"iterations,omitempty"` // Force relaxation iterations
	Seed       int64   `yaml:"seed,omitempty"`       // Non-zero for reproducible force runs
}

// FilterConfig holds the startup filter.
type FilterConfig struct {
	NodeTypes     []string `yaml:"node_types,omitempty"`
	EdgeTypes     []string `yaml:"edge_types,omitempty"`
	Clusters      []string `yaml:"clusters,omitempty"`
	MinCentrality float64  `yaml:"min_centrality,omitempty"`
	MaxNodes      int      `yaml:"max_nodes,omitempty"`
	Search        string   `yaml:"search,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	ShowEdges  *bool  `yaml:"show_edges,omitempty"` // nil means default (on)
	Theme      string `yaml:"theme,omitempty"`      // auto, light, dark
	FrameMs    int    `yaml:"frame_ms,omitempty"`   // Animation frame interval
	DetailPane bool   `yaml:"detail_pane,omitempty"`
}

// Config is the top-level configuration for gx.
type Config struct {
	Source SourceConfig `yaml:"source,omitempty"`
	Layout LayoutConfig `yaml:"layout,omitempty"`
	Filter FilterConfig `yaml:"filter,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			Algorithm:  string(model.LayoutForce),
			Width:      800,
			Height:     600,
			Iterations: 100,
		},
		Filter: FilterConfig{
			MaxNodes: 500,
		},
		UI: UIConfig{
			Theme:   "auto",
			FrameMs: 33,
		},
	}
}

// LayoutSpec converts the layout section to a model.LayoutSpec, falling back
// to the default algorithm when the configured name is unknown.
func (c Config) LayoutSpec() model.LayoutSpec {
	spec := model.LayoutSpec{
		Algorithm:  model.LayoutAlgorithm(c.Layout.Algorithm),
		Width:      c.Layout.Width,
		Height:     c.Layout.Height,
		Iterations: c.Layout.Iterations,
		Seed:       c.Layout.Seed,
	}
	if !model.ValidLayout(spec.Algorithm) {
		spec.Algorithm = model.LayoutForce
	}
	if spec.Width <= 0 {
		spec.Width = 800
	}
	if spec.Height <= 0 {
		spec.Height = 600
	}
	return spec
}

// ModelFilter converts the filter section to a model.Filter.
func (c Config) ModelFilter() model.Filter {
	f := model.Filter{
		MinCentrality: c.Filter.MinCentrality,
		MaxNodes:      c.Filter.MaxNodes,
		Clusters:      c.Filter.Clusters,
		SearchTerm:    c.Filter.Search,
	}
	for _, t := range c.Filter.NodeTypes {
		f.NodeTypes = append(f.NodeTypes, model.NodeType(t))
	}
	for _, t := range c.Filter.EdgeTypes {
		f.EdgeTypes = append(f.EdgeTypes, model.EdgeType(t))
	}
	return f
}

// ConfigDir returns the XDG config directory for gx.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gx")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gx")
}

// DataDir returns the XDG data directory for gx.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "gx")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "gx")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Source.File = expandHome(cfg.Source.File)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
