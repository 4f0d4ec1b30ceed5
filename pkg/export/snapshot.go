package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/graphscape/graphscape/pkg/model"
	"github.com/graphscape/graphscape/pkg/render"
)

// SnapshotOptions controls static image snapshot export.
type SnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Width  int    // Canvas width in pixels; defaults to 800
	Height int    // Canvas height in pixels; defaults to 600
}

// SaveSnapshot renders a positioned graph to a static SVG or PNG image.
// Nodes must already carry layout positions; nodes without one are skipped.
func SaveSnapshot(g model.GraphData, opts SnapshotOptions) error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("no nodes to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	width := opts.Width
	if width <= 0 {
		width = 800
	}
	height := opts.Height
	if height <= 0 {
		height = 600
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	scene := render.NewScene(g)

	switch format {
	case "svg":
		file, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer file.Close()
		surface := render.NewSVG(file, width, height)
		scene.Draw(surface)
		surface.Close()
		return nil
	case "png":
		surface := render.NewRaster(width, height)
		scene.Draw(surface)
		return surface.SavePNG(opts.Path)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}
