// Package processor is the high-level facade over the graph pipeline: it
// holds a loaded snapshot and derives filtered, analyzed, positioned views
// from it on demand.
package processor

import (
	"fmt"
	"sync"
	"time"

	"github.com/graphscape/graphscape/pkg/analysis"
	"github.com/graphscape/graphscape/pkg/debug"
	"github.com/graphscape/graphscape/pkg/export"
	"github.com/graphscape/graphscape/pkg/filter"
	"github.com/graphscape/graphscape/pkg/layout"
	"github.com/graphscape/graphscape/pkg/model"
)

// Processor derives views from an immutable source snapshot. The source is
// normalized and annotated with centrality once at load; filtering and layout
// happen per view. Safe for concurrent use.
type Processor struct {
	mu     sync.Mutex
	source model.GraphData
	filt   model.Filter
	spec   model.LayoutSpec

	// Last filter result, keyed by the filter that produced it. Filtering
	// dominates recompute cost on large graphs, so one memoized pair covers
	// the common toggle-a-setting-and-back interaction.
	memoFilter model.Filter
	memoResult model.GraphData
	memoValid  bool
}

// New builds a processor over data. The snapshot is normalized (dangling
// edges and duplicate ids dropped) and annotated with degree and centrality.
func New(data model.GraphData) *Processor {
	start := time.Now()
	normalized := data.Normalize()
	annotated := analysis.Annotate(normalized)
	debug.LogTiming("processor.New", time.Since(start))
	return &Processor{
		source: annotated,
		spec:   model.DefaultLayoutSpec(800, 600),
	}
}

// Source returns the normalized, annotated snapshot.
func (p *Processor) Source() model.GraphData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Replace swaps in a new snapshot (live reload) and invalidates memoized
// state.
func (p *Processor) Replace(data model.GraphData) {
	normalized := data.Normalize()
	annotated := analysis.Annotate(normalized)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = annotated
	p.memoValid = false
}

// SetFilter replaces the active filter.
func (p *Processor) SetFilter(f model.Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filt = f
}

// Filter returns the active filter.
func (p *Processor) Filter() model.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filt
}

// SetLayout replaces the active layout spec. Unknown algorithms fall back to
// grid at apply time.
func (p *Processor) SetLayout(spec model.LayoutSpec) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spec = spec
}

// Layout returns the active layout spec.
func (p *Processor) Layout() model.LayoutSpec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spec
}

// View computes the current view: source filtered by the active filter, then
// positioned by the active layout. Statistics describe the filtered subgraph.
func (p *Processor) View() model.GraphData {
	p.mu.Lock()
	defer p.mu.Unlock()

	filtered := p.filteredLocked()
	positioned := layout.Apply(filtered.Nodes, filtered.Edges, filtered.Clusters, p.spec)
	filtered.Nodes = positioned
	return filtered
}

// filteredLocked returns the filter result, reusing the memoized pair when
// the filter has not changed. Caller holds p.mu.
func (p *Processor) filteredLocked() model.GraphData {
	if p.memoValid && p.filt.Equal(p.memoFilter) {
		return p.memoResult
	}
	start := time.Now()
	result := filter.Apply(p.source, p.filt)
	debug.LogTiming("processor.filter", time.Since(start))
	p.memoFilter = p.filt
	p.memoResult = result
	p.memoValid = true
	return result
}

// Neighbors returns nodes reachable from id within depth hops in the current
// filtered view, ignoring edge direction.
func (p *Processor) Neighbors(id string, depth int) []model.Node {
	p.mu.Lock()
	filtered := p.filteredLocked()
	p.mu.Unlock()
	return analysis.Neighbors(filtered, id, depth)
}

// Export serializes the current view in the given format.
func (p *Processor) Export(format export.Format) ([]byte, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	return export.Export(p.View(), format)
}

// ExportFile writes the current view to path (or into a directory under the
// conventional filename) and returns the path written.
func (p *Processor) ExportFile(format export.Format, path string) (string, error) {
	if !format.Valid() {
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	return export.WriteFile(p.View(), format, path)
}

// Snapshot renders the current view to a static PNG or SVG image.
func (p *Processor) Snapshot(opts export.SnapshotOptions) error {
	return export.SaveSnapshot(p.View(), opts)
}
