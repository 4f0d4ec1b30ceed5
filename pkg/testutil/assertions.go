package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/graphscape/graphscape/pkg/model"
)

// AssertNodeCount verifies the expected number of nodes.
func AssertNodeCount(t *testing.T, g model.GraphData, expected int) {
	t.Helper()
	if len(g.Nodes) != expected {
		t.Errorf("expected %d nodes, got %d", expected, len(g.Nodes))
	}
}

// AssertEdgeCount verifies the expected number of edges.
func AssertEdgeCount(t *testing.T, g model.GraphData, expected int) {
	t.Helper()
	if len(g.Edges) != expected {
		t.Errorf("expected %d edges, got %d", expected, len(g.Edges))
	}
}

// AssertNoDuplicateIDs verifies all node IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, g model.GraphData) {
	t.Helper()
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node ID: %s", n.ID)
		}
		seen[n.ID] = true
	}
}

// AssertNoDanglingEdges verifies that every edge endpoint names an existing
// node.
func AssertNoDanglingEdges(t *testing.T, g model.GraphData) {
	t.Helper()
	ids := g.NodeIDs()
	for _, e := range g.Edges {
		if !ids[e.Source] {
			t.Errorf("edge %s->%s references unknown source", e.Source, e.Target)
		}
		if !ids[e.Target] {
			t.Errorf("edge %s->%s references unknown target", e.Source, e.Target)
		}
	}
}

// AssertAllValid verifies all nodes and edges pass validation.
func AssertAllValid(t *testing.T, g model.GraphData) {
	t.Helper()
	for i, n := range g.Nodes {
		if err := n.Validate(); err != nil {
			t.Errorf("node %d (%s) invalid: %v", i, n.ID, err)
		}
	}
	for i, e := range g.Edges {
		if err := e.Validate(); err != nil {
			t.Errorf("edge %d (%s->%s) invalid: %v", i, e.Source, e.Target, err)
		}
	}
}

// AssertHasNode verifies a node with the given id exists.
func AssertHasNode(t *testing.T, g model.GraphData, id string) {
	t.Helper()
	if g.NodeByID(id) == nil {
		t.Errorf("expected node %s not found", id)
	}
}

// AssertHasEdge verifies that a specific edge exists.
func AssertHasEdge(t *testing.T, g model.GraphData, source, target string) {
	t.Helper()
	for _, e := range g.Edges {
		if e.Source == source && e.Target == target {
			return
		}
	}
	t.Errorf("expected edge from %s to %s not found", source, target)
}

// AssertAllPositioned verifies every node carries layout coordinates.
func AssertAllPositioned(t *testing.T, nodes []model.Node) {
	t.Helper()
	for _, n := range nodes {
		if !n.HasPosition() {
			t.Errorf("node %s has no position", n.ID)
		}
	}
}

// AssertWithinCanvas verifies every positioned node falls inside the canvas.
func AssertWithinCanvas(t *testing.T, nodes []model.Node, width, height float64) {
	t.Helper()
	for _, n := range nodes {
		if !n.HasPosition() {
			continue
		}
		if n.Position.X < 0 || n.Position.X > width || n.Position.Y < 0 || n.Position.Y > height {
			t.Errorf("node %s at (%.1f, %.1f) outside canvas %gx%g",
				n.ID, n.Position.X, n.Position.Y, width, height)
		}
	}
}

// AssertJSONEqual compares two values after JSON round-tripping.
// Useful for comparing structs that may have different Go representations
// but equivalent JSON forms.
func AssertJSONEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}

	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// WriteSnapshotFile writes a graph snapshot as JSON to a custom path.
func WriteSnapshotFile(t *testing.T, path string, g model.GraphData) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write snapshot file: %v", err)
	}
}

// NodeIDs returns a slice of all node IDs in order.
func NodeIDs(nodes []model.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
