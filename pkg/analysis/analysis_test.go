package analysis

import (
	"testing"

	"github.com/graphscape/graphscape/pkg/model"
	"github.com/graphscape/graphscape/pkg/testutil"
)

func TestAnalyze_EmptyGraph(t *testing.T) {
	stats := NewAnalyzer(model.GraphData{}).Analyze()

	if stats.NodeCount != 0 || stats.EdgeCount != 0 {
		t.Errorf("expected zero counts, got %d nodes %d edges", stats.NodeCount, stats.EdgeCount)
	}
	if stats.Density != 0 {
		t.Errorf("expected zero density, got %g", stats.Density)
	}
}

func TestAnalyze_Degrees(t *testing.T) {
	g := testutil.NewDefault().Star(4) // n0 -> n1, n0 -> n2, n0 -> n3
	stats := NewAnalyzer(g).Analyze()

	if stats.OutDegree["n0"] != 3 || stats.InDegree["n0"] != 0 {
		t.Errorf("hub degrees wrong: in=%d out=%d", stats.InDegree["n0"], stats.OutDegree["n0"])
	}
	for _, spoke := range []string{"n1", "n2", "n3"} {
		if stats.InDegree[spoke] != 1 || stats.OutDegree[spoke] != 0 {
			t.Errorf("spoke %s degrees wrong: in=%d out=%d",
				spoke, stats.InDegree[spoke], stats.OutDegree[spoke])
		}
	}
}

func TestAnalyze_Density(t *testing.T) {
	// 4 nodes, 3 edges: 3 / (4*3) = 0.25.
	g := testutil.NewDefault().Chain(4)
	stats := NewAnalyzer(g).Analyze()

	if stats.Density != 0.25 {
		t.Errorf("density = %g, want 0.25", stats.Density)
	}
}

func TestAnalyze_CentralityNormalized(t *testing.T) {
	g := testutil.NewDefault().Star(10)
	stats := NewAnalyzer(g).Analyze()

	sawOne := false
	for id, c := range stats.Centrality {
		if c < 0 || c > 1 {
			t.Errorf("centrality of %s outside [0,1]: %g", id, c)
		}
		if c == 1 {
			sawOne = true
		}
	}
	if !sawOne {
		t.Error("expected the most central node at exactly 1")
	}
}

func TestAnalyze_TopologicalOrderForDAG(t *testing.T) {
	g := testutil.NewDefault().Chain(5)
	stats := NewAnalyzer(g).Analyze()

	if len(stats.TopologicalOrder) != 5 {
		t.Fatalf("expected full order, got %v", stats.TopologicalOrder)
	}
	for i, id := range stats.TopologicalOrder {
		want := testutil.NewDefault().Chain(5).Nodes[i].ID
		if id != want {
			t.Errorf("position %d: got %s, want %s", i, id, want)
		}
	}
}

func TestAnalyze_TopologicalOrderNilForCycle(t *testing.T) {
	g := model.GraphData{
		Nodes: []model.Node{{ID: "a"}, {ID: "b"}},
		Edges: []model.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
		},
	}
	stats := NewAnalyzer(g).Analyze()

	if stats.TopologicalOrder != nil {
		t.Errorf("expected nil order for cyclic graph, got %v", stats.TopologicalOrder)
	}
}

func TestAnalyze_SkipsDanglingEdgesAndSelfLoops(t *testing.T) {
	g := model.GraphData{
		Nodes: []model.Node{{ID: "a"}, {ID: "b"}},
		Edges: []model.Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "a"},
			{Source: "a", Target: "ghost"},
		},
	}
	stats := NewAnalyzer(g).Analyze()

	if stats.EdgeCount != 1 {
		t.Errorf("expected 1 usable edge, got %d", stats.EdgeCount)
	}
}

func TestAnnotate_FillsNodeMetrics(t *testing.T) {
	g := testutil.NewDefault().Star(5)
	out := Annotate(g)

	hub := out.NodeByID("n0")
	if hub == nil {
		t.Fatal("hub missing after annotate")
	}
	if hub.OutDegree != 4 {
		t.Errorf("hub out-degree = %d, want 4", hub.OutDegree)
	}
	for _, n := range out.Nodes {
		if n.Centrality < 0 || n.Centrality > 1 {
			t.Errorf("node %s centrality %g outside [0,1]", n.ID, n.Centrality)
		}
	}
	if out.Statistics.TotalNodes != 5 {
		t.Errorf("statistics not recomputed: %+v", out.Statistics)
	}

	// The input snapshot is untouched.
	if g.Nodes[0].OutDegree != 0 {
		t.Error("input was mutated")
	}
}
