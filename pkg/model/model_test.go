package model

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestNormalize_DropsDuplicateNodes(t *testing.T) {
	g := GraphData{
		Nodes: []Node{
			{ID: "a", Label: "first"},
			{ID: "a", Label: "second"},
			{ID: "b"},
		},
	}

	out := g.Normalize()
	if len(out.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(out.Nodes))
	}
	// First occurrence wins.
	if out.Nodes[0].Label != "first" {
		t.Errorf("expected first occurrence kept, got label %q", out.Nodes[0].Label)
	}
}

func TestNormalize_DropsDanglingEdges(t *testing.T) {
	g := GraphData{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{
			{Source: "a", Target: "b", Type: EdgeCalls},
			{Source: "a", Target: "ghost", Type: EdgeCalls},
			{Source: "ghost", Target: "b", Type: EdgeCalls},
		},
	}

	out := g.Normalize()
	if len(out.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(out.Edges))
	}
	if out.Edges[0].Source != "a" || out.Edges[0].Target != "b" {
		t.Errorf("wrong surviving edge: %+v", out.Edges[0])
	}
}

func TestNormalize_IntersectsClusterMembers(t *testing.T) {
	g := GraphData{
		Nodes: []Node{{ID: "a"}},
		Clusters: []Cluster{
			{ID: "c1", Nodes: []string{"a", "ghost"}},
			{ID: "c2", Nodes: []string{"ghost"}},
		},
	}

	out := g.Normalize()
	if len(out.Clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(out.Clusters))
	}
	if len(out.Clusters[0].Nodes) != 1 || out.Clusters[0].Nodes[0] != "a" {
		t.Errorf("expected member list [a], got %v", out.Clusters[0].Nodes)
	}
}

func TestNormalize_RecomputesStatistics(t *testing.T) {
	g := GraphData{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{Source: "a", Target: "b"}},
		// Stale statistics from upstream are discarded.
		Statistics: Statistics{TotalNodes: 99},
	}

	out := g.Normalize()
	if out.Statistics.TotalNodes != 2 || out.Statistics.TotalEdges != 1 {
		t.Errorf("statistics not recomputed: %+v", out.Statistics)
	}
}

func TestComputeStatistics_Density(t *testing.T) {
	tests := []struct {
		name  string
		nodes int
		edges int
		want  float64
	}{
		{"empty", 0, 0, 0},
		{"single node", 1, 0, 0},
		{"four nodes three edges", 4, 3, 0.25},
		{"complete pair", 2, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := make([]Node, tt.nodes)
			edges := make([]Edge, tt.edges)
			s := ComputeStatistics(nodes, edges, nil)
			if s.Density != tt.want {
				t.Errorf("density = %g, want %g", s.Density, tt.want)
			}
		})
	}
}

func TestNodeValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr bool
	}{
		{"valid", Node{ID: "a", Centrality: 0.5}, false},
		{"empty id", Node{}, true},
		{"centrality above one", Node{ID: "a", Centrality: 1.5}, true},
		{"negative centrality", Node{ID: "a", Centrality: -0.1}, true},
		{"negative degree", Node{ID: "a", InDegree: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEdgeValidate(t *testing.T) {
	good := Edge{Source: "a", Target: "b", Weight: 1}
	if err := good.Validate(); err != nil {
		t.Errorf("valid edge rejected: %v", err)
	}
	bad := Edge{Source: "a", Target: "b", Weight: -1}
	if err := bad.Validate(); err == nil {
		t.Error("negative weight accepted")
	}
	empty := Edge{Source: "", Target: "b"}
	if err := empty.Validate(); err == nil {
		t.Error("empty endpoint accepted")
	}
}

func TestDisplayLabel(t *testing.T) {
	n := Node{ID: "id1", Label: "Readable"}
	if n.DisplayLabel() != "Readable" {
		t.Errorf("expected label, got %q", n.DisplayLabel())
	}
	n.Label = ""
	if n.DisplayLabel() != "id1" {
		t.Errorf("expected id fallback, got %q", n.DisplayLabel())
	}
}

func TestMatchesSearch(t *testing.T) {
	n := Node{ID: "a", Label: "AuthService"}

	if !n.MatchesSearch("") {
		t.Error("empty term should match everything")
	}
	if !n.MatchesSearch("authserv") {
		t.Error("expected case-insensitive substring match")
	}
	if !n.MatchesSearch("SERVICE") {
		t.Error("expected uppercase term to match")
	}
	if n.MatchesSearch("database") {
		t.Error("unrelated term should not match")
	}
}

func TestPlaceholder(t *testing.T) {
	g := Placeholder()
	if len(g.Nodes) != 1 {
		t.Fatalf("expected single placeholder node, got %d", len(g.Nodes))
	}
	if g.Nodes[0].ID != "placeholder" {
		t.Errorf("unexpected id %q", g.Nodes[0].ID)
	}
	if g.Statistics.TotalNodes != 1 {
		t.Errorf("statistics not populated: %+v", g.Statistics)
	}
}

func TestNodeByID(t *testing.T) {
	g := GraphData{Nodes: []Node{{ID: "a"}, {ID: "b"}}}

	if n := g.NodeByID("b"); n == nil || n.ID != "b" {
		t.Errorf("expected node b, got %v", n)
	}
	if n := g.NodeByID("missing"); n != nil {
		t.Errorf("expected nil for missing id, got %v", n)
	}
}

func TestPropertyValue_JSONRoundTrip(t *testing.T) {
	props := map[string]PropertyValue{
		"lines":    NumberProperty(120),
		"exported": BoolProperty(true),
		"package":  StringProperty("auth"),
	}

	data, err := json.Marshal(props)
	if err != nil {
		t.Fatal(err)
	}

	var back map[string]PropertyValue
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}

	if back["lines"].Kind != PropertyNumber || back["lines"].Num != 120 {
		t.Errorf("number lost: %+v", back["lines"])
	}
	if back["exported"].Kind != PropertyBool || !back["exported"].Bool {
		t.Errorf("bool lost: %+v", back["exported"])
	}
	if back["package"].Kind != PropertyString || back["package"].Str != "auth" {
		t.Errorf("string lost: %+v", back["package"])
	}
}

func TestPropertyValue_RejectsNonScalar(t *testing.T) {
	var v PropertyValue
	if err := json.Unmarshal([]byte(`{"nested": true}`), &v); err == nil {
		t.Error("expected error for object value")
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &v); err == nil {
		t.Error("expected error for array value")
	}
}

func TestPropertyValue_String(t *testing.T) {
	tests := []struct {
		v    PropertyValue
		want string
	}{
		{NumberProperty(120), "120"},
		{NumberProperty(1.5), "1.5"},
		{BoolProperty(false), "false"},
		{StringProperty("x"), "x"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFilterEqual(t *testing.T) {
	a := Filter{NodeTypes: []NodeType{TypeClass}, MaxNodes: 10, SearchTerm: "x"}
	b := Filter{NodeTypes: []NodeType{TypeClass}, MaxNodes: 10, SearchTerm: "x"}
	if !a.Equal(b) {
		t.Error("identical filters compare unequal")
	}

	c := b
	c.NodeTypes = []NodeType{TypeFunction}
	if a.Equal(c) {
		t.Error("different node types compare equal")
	}

	d := b
	d.MaxNodes = 11
	if a.Equal(d) {
		t.Error("different max nodes compare equal")
	}

	if !(Filter{}).Equal(Filter{}) {
		t.Error("zero filters compare unequal")
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Error("zero filter not reported as zero")
	}
	if (Filter{MaxNodes: 1}).IsZero() {
		t.Error("bounded filter reported as zero")
	}
}

func TestFilterMatchesNode(t *testing.T) {
	n := Node{ID: "a", Label: "AuthService", Type: TypeClass, Cluster: "core", Centrality: 0.4}

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"zero filter", Filter{}, true},
		{"type match", Filter{NodeTypes: []NodeType{TypeClass}}, true},
		{"type mismatch", Filter{NodeTypes: []NodeType{TypeFile}}, false},
		{"cluster match", Filter{Clusters: []string{"core"}}, true},
		{"cluster mismatch", Filter{Clusters: []string{"infra"}}, false},
		{"centrality floor passed", Filter{MinCentrality: 0.4}, true},
		{"centrality floor failed", Filter{MinCentrality: 0.5}, false},
		{"search hit", Filter{SearchTerm: "auth"}, true},
		{"search miss", Filter{SearchTerm: "billing"}, false},
		{"all predicates", Filter{NodeTypes: []NodeType{TypeClass}, Clusters: []string{"core"}, MinCentrality: 0.1, SearchTerm: "service"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.MatchesNode(&n); got != tt.want {
				t.Errorf("MatchesNode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterMatchesEdge(t *testing.T) {
	e := Edge{Source: "a", Target: "b", Type: EdgeImports}

	if !(Filter{}).MatchesEdge(&e) {
		t.Error("zero filter should match any edge")
	}
	if !(Filter{EdgeTypes: []EdgeType{EdgeCalls, EdgeImports}}).MatchesEdge(&e) {
		t.Error("expected type in set to match")
	}
	if (Filter{EdgeTypes: []EdgeType{EdgeCalls}}).MatchesEdge(&e) {
		t.Error("expected type outside set to be rejected")
	}
}
