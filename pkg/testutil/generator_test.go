package testutil

import (
	"strconv"
	"strings"
	"testing"

	"github.com/graphscape/graphscape/pkg/model"
)

func TestChain(t *testing.T) {
	g := NewDefault().Chain(5)

	if len(g.Nodes) != 5 || len(g.Edges) != 4 {
		t.Fatalf("chain(5): %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}
	for i, e := range g.Edges {
		if e.Source != "n"+strconv.Itoa(i) || e.Target != "n"+strconv.Itoa(i+1) {
			t.Errorf("edge %d = %s->%s, want n%d->n%d", i, e.Source, e.Target, i, i+1)
		}
	}
}

func TestStar(t *testing.T) {
	g := NewDefault().Star(6)

	if len(g.Nodes) != 6 || len(g.Edges) != 5 {
		t.Fatalf("star(6): %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}
	for _, e := range g.Edges {
		if e.Source != "n0" {
			t.Errorf("spoke %s->%s does not originate at the hub", e.Source, e.Target)
		}
	}
}

func TestTree(t *testing.T) {
	g := NewDefault().Tree(7)

	if len(g.Nodes) != 7 || len(g.Edges) != 6 {
		t.Fatalf("tree(7): %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}
	for _, e := range g.Edges {
		child, err := strconv.Atoi(strings.TrimPrefix(e.Target, "n"))
		if err != nil {
			t.Fatalf("bad target id %q", e.Target)
		}
		wantParent := "n" + strconv.Itoa((child-1)/2)
		if e.Source != wantParent {
			t.Errorf("edge to %s comes from %s, want %s", e.Target, e.Source, wantParent)
		}
	}
}

func TestRandomDAG_EdgesPointForward(t *testing.T) {
	g := NewDefault().RandomDAG(20, 0.3)

	if len(g.Nodes) != 20 {
		t.Fatalf("dag(20): %d nodes", len(g.Nodes))
	}
	if len(g.Edges) == 0 {
		t.Fatal("dag(20, 0.3) generated no edges")
	}
	for _, e := range g.Edges {
		src, _ := strconv.Atoi(strings.TrimPrefix(e.Source, "n"))
		dst, _ := strconv.Atoi(strings.TrimPrefix(e.Target, "n"))
		if src >= dst {
			t.Errorf("backward edge %s->%s breaks acyclicity", e.Source, e.Target)
		}
	}
}

func TestRandomDAG_DeterministicPerSeed(t *testing.T) {
	a := New(GeneratorConfig{Seed: 7}).RandomDAG(15, 0.4)
	b := New(GeneratorConfig{Seed: 7}).RandomDAG(15, 0.4)

	if len(a.Edges) != len(b.Edges) {
		t.Fatalf("same seed, different edge counts: %d vs %d", len(a.Edges), len(b.Edges))
	}
	for i := range a.Edges {
		if a.Edges[i] != b.Edges[i] {
			t.Fatalf("edge %d differs: %+v vs %+v", i, a.Edges[i], b.Edges[i])
		}
	}
}

func TestClustered(t *testing.T) {
	g := NewDefault().Clustered(3, 4)

	if len(g.Nodes) != 12 || len(g.Clusters) != 3 {
		t.Fatalf("clustered(3,4): %d nodes %d clusters", len(g.Nodes), len(g.Clusters))
	}
	// 3 intra-cluster edges per group plus a bridge between consecutive groups.
	if len(g.Edges) != 3*3+2 {
		t.Errorf("clustered(3,4): %d edges, want 11", len(g.Edges))
	}
	for _, c := range g.Clusters {
		if len(c.Nodes) != 4 {
			t.Errorf("cluster %s has %d members, want 4", c.ID, len(c.Nodes))
		}
		for _, id := range c.Nodes {
			n := g.NodeByID(id)
			if n == nil || n.Cluster != c.ID {
				t.Errorf("member %s of %s not tagged with the cluster", id, c.ID)
			}
		}
	}
}

func TestGenerator_ConfigDefaults(t *testing.T) {
	g := New(GeneratorConfig{}).Chain(2)

	if g.Nodes[0].ID != "n0" {
		t.Errorf("default prefix not applied: %s", g.Nodes[0].ID)
	}
	if g.Nodes[0].Type != model.TypeConcept {
		t.Errorf("default node type not applied: %s", g.Nodes[0].Type)
	}
	if g.Edges[0].Type != model.EdgeDependsOn {
		t.Errorf("default edge type not applied: %s", g.Edges[0].Type)
	}
}

func TestGenerator_ConfigOverrides(t *testing.T) {
	g := New(GeneratorConfig{
		IDPrefix: "pkg",
		NodeType: model.TypeModule,
		EdgeType: model.EdgeImports,
	}).Chain(2)

	if g.Nodes[0].ID != "pkg0" || g.Nodes[0].Type != model.TypeModule {
		t.Errorf("overrides not applied: %+v", g.Nodes[0])
	}
	if g.Edges[0].Type != model.EdgeImports {
		t.Errorf("edge type override not applied: %s", g.Edges[0].Type)
	}
}

func TestGenerator_StatisticsPopulated(t *testing.T) {
	g := NewDefault().Star(4)

	if g.Statistics.TotalNodes != 4 || g.Statistics.TotalEdges != 3 {
		t.Errorf("statistics not computed: %+v", g.Statistics)
	}
}
