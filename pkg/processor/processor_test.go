package processor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graphscape/graphscape/pkg/export"
	"github.com/graphscape/graphscape/pkg/model"
	"github.com/graphscape/graphscape/pkg/testutil"
)

func TestNew_NormalizesAndAnnotates(t *testing.T) {
	raw := model.GraphData{
		Nodes: []model.Node{
			{ID: "a"}, {ID: "a"}, {ID: "b"},
		},
		Edges: []model.Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "ghost"},
		},
	}

	src := New(raw).Source()
	testutil.AssertNodeCount(t, src, 2)
	testutil.AssertEdgeCount(t, src, 1)
	testutil.AssertNoDanglingEdges(t, src)

	a := src.NodeByID("a")
	if a == nil || a.OutDegree != 1 {
		t.Errorf("annotation missing: %+v", a)
	}
}

func TestView_FiltersAndPositions(t *testing.T) {
	p := New(testutil.NewDefault().Chain(10))
	p.SetFilter(model.Filter{MaxNodes: 4})
	p.SetLayout(model.LayoutSpec{Algorithm: model.LayoutGrid, Width: 400, Height: 400})

	view := p.View()
	testutil.AssertNodeCount(t, view, 4)
	testutil.AssertAllPositioned(t, view.Nodes)
	testutil.AssertWithinCanvas(t, view.Nodes, 400, 400)
	testutil.AssertNoDanglingEdges(t, view)
}

func TestView_MemoizesFilterResult(t *testing.T) {
	p := New(testutil.NewDefault().Chain(20))
	f := model.Filter{MaxNodes: 5}
	p.SetFilter(f)

	first := p.View()
	second := p.View()
	if len(first.Nodes) != len(second.Nodes) {
		t.Fatal("repeated views diverged")
	}
	// Same filter object state reuses the memoized result.
	if !p.memoValid || !p.memoFilter.Equal(f) {
		t.Error("filter result not memoized")
	}

	p.SetFilter(model.Filter{MaxNodes: 3})
	third := p.View()
	if len(third.Nodes) != 3 {
		t.Errorf("stale memo served after filter change: %d nodes", len(third.Nodes))
	}
}

func TestReplace_InvalidatesMemo(t *testing.T) {
	p := New(testutil.NewDefault().Chain(5))
	p.View() // prime the memo

	p.Replace(testutil.NewDefault().Star(8))
	view := p.View()
	testutil.AssertNodeCount(t, view, 8)
	hub := view.NodeByID("n0")
	if hub == nil || hub.OutDegree != 7 {
		t.Errorf("replacement not re-annotated: %+v", hub)
	}
}

func TestNeighbors_UsesFilteredView(t *testing.T) {
	p := New(testutil.NewDefault().Chain(10))

	all := p.Neighbors("n5", 1)
	if len(all) != 2 {
		t.Fatalf("expected 2 unfiltered neighbors, got %d", len(all))
	}

	// Truncating to the first 6 nodes removes n6, so n5 keeps only n4.
	p.SetFilter(model.Filter{MaxNodes: 6})
	got := p.Neighbors("n5", 1)
	if len(got) != 1 || got[0].ID != "n4" {
		t.Errorf("expected [n4], got %v", testutil.NodeIDs(got))
	}
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	p := New(testutil.NewDefault().Chain(3))
	if _, err := p.Export(export.Format("xlsx")); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := p.ExportFile(export.Format("xlsx"), t.TempDir()); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExport_CarriesCurrentView(t *testing.T) {
	p := New(testutil.NewDefault().Chain(10))
	p.SetFilter(model.Filter{MaxNodes: 2})

	data, err := p.Export(export.FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, `"n0"`) || !strings.Contains(text, `"n1"`) {
		t.Errorf("surviving nodes missing:\n%s", text)
	}
	if strings.Contains(text, `"n5"`) {
		t.Errorf("filtered-out node exported:\n%s", text)
	}
}

func TestExportFile_WritesView(t *testing.T) {
	p := New(testutil.NewDefault().Chain(3))
	path := filepath.Join(t.TempDir(), "graph.json")

	written, err := p.ExportFile(export.FormatJSON, path)
	if err != nil {
		t.Fatal(err)
	}
	if written != path {
		t.Errorf("written %q, want %q", written, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file missing: %v", err)
	}
}

func TestSnapshot_WritesImage(t *testing.T) {
	p := New(testutil.NewDefault().Star(5))
	path := filepath.Join(t.TempDir(), "graph.svg")

	err := p.Snapshot(export.SnapshotOptions{Path: path, Width: 320, Height: 240})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("snapshot is not an SVG document")
	}
}
