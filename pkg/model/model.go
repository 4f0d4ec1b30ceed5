// Package model defines the immutable value types of the knowledge graph:
// nodes, edges, clusters, the aggregate GraphData with derived Statistics,
// and the Filter/LayoutSpec parameter types consumed by the engines.
//
// GraphData is constructed once per load and treated as read-only. Engines
// derive new GraphData values instead of mutating the source.
package model

import (
	"fmt"
	"strings"
)

// NodeType classifies a node. The set is open: unknown values coming from the
// extraction pipeline are carried through untouched.
type NodeType string

const (
	TypeClass    NodeType = "class"
	TypeFunction NodeType = "function"
	TypeFile     NodeType = "file"
	TypeConcept  NodeType = "concept"
	TypeModule   NodeType = "module"
	TypeEntity   NodeType = "entity"
)

// EdgeType is the fixed edge vocabulary.
type EdgeType string

const (
	EdgeDependsOn  EdgeType = "depends_on"
	EdgeImports    EdgeType = "imports"
	EdgeCalls      EdgeType = "calls"
	EdgeExtends    EdgeType = "extends"
	EdgeImplements EdgeType = "implements"
	EdgeContains   EdgeType = "contains"
	EdgeDefines    EdgeType = "defines"
)

// KnownEdgeTypes lists the fixed vocabulary in display order.
var KnownEdgeTypes = []EdgeType{
	EdgeDependsOn, EdgeImports, EdgeCalls, EdgeExtends,
	EdgeImplements, EdgeContains, EdgeDefines,
}

// Position is a 2-D layout coordinate. A node either has both coordinates or
// neither; Node.HasPosition distinguishes the two states.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single vertex of the knowledge graph.
type Node struct {
	ID         string                   `json:"id"`
	Label      string                   `json:"label"`
	Type       NodeType                 `json:"type"`
	Size       float64                  `json:"size"`
	Color      string                   `json:"color,omitempty"`
	Cluster    string                   `json:"cluster,omitempty"`
	Repository string                   `json:"repository,omitempty"`
	Language   string                   `json:"language,omitempty"`
	Centrality float64                  `json:"centrality"`
	InDegree   int                      `json:"in_degree"`
	OutDegree  int                      `json:"out_degree"`
	Position   *Position                `json:"position,omitempty"`
	Properties map[string]PropertyValue `json:"properties,omitempty"`
}

// HasPosition reports whether the node has been laid out.
func (n *Node) HasPosition() bool { return n.Position != nil }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Validate checks the node's structural invariants.
func (n *Node) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("node id is empty")
	}
	if n.Centrality < 0 || n.Centrality > 1 {
		return fmt.Errorf("node %s: centrality %v outside [0,1]", n.ID, n.Centrality)
	}
	if n.InDegree < 0 || n.OutDegree < 0 {
		return fmt.Errorf("node %s: negative degree", n.ID)
	}
	return nil
}

// Edge is a directed connection between two nodes.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Weight float64  `json:"weight"`
}

// Validate checks the edge's structural invariants. Endpoint existence is a
// graph-level concern handled by Normalize, not here.
func (e *Edge) Validate() error {
	if e.Source == "" || e.Target == "" {
		return fmt.Errorf("edge %s->%s: empty endpoint", e.Source, e.Target)
	}
	if e.Weight < 0 {
		return fmt.Errorf("edge %s->%s: negative weight %v", e.Source, e.Target, e.Weight)
	}
	return nil
}

// Cluster is a named grouping of nodes with a display color.
type Cluster struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Nodes []string `json:"nodes"`
	Color string   `json:"color,omitempty"`
}

// Statistics is the derived summary of a GraphData.
type Statistics struct {
	TotalNodes int     `json:"total_nodes"`
	TotalEdges int     `json:"total_edges"`
	Clusters   int     `json:"clusters"`
	Density    float64 `json:"density"`
}

// GraphData is one immutable snapshot of the knowledge graph.
type GraphData struct {
	Nodes      []Node     `json:"nodes"`
	Edges      []Edge     `json:"edges"`
	Clusters   []Cluster  `json:"clusters,omitempty"`
	Statistics Statistics `json:"statistics"`
}

// ComputeStatistics derives Statistics from the given sets. Density is
// defined as 0 for graphs with fewer than two nodes.
func ComputeStatistics(nodes []Node, edges []Edge, clusters []Cluster) Statistics {
	s := Statistics{
		TotalNodes: len(nodes),
		TotalEdges: len(edges),
		Clusters:   len(clusters),
	}
	n := float64(len(nodes))
	if n > 1 {
		s.Density = float64(len(edges)) / (n * (n - 1))
	}
	return s
}

// Normalize returns a structurally consistent copy of the graph:
// duplicate node ids collapse to the first occurrence, edges referencing
// absent nodes are dropped, cluster member lists are intersected with the
// surviving node set, empty clusters are removed, and Statistics are
// recomputed. Dangling references are data errors per the ingestion
// contract and are resolved silently.
func (g GraphData) Normalize() GraphData {
	seen := make(map[string]bool, len(g.Nodes))
	nodes := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		nodes = append(nodes, n)
	}

	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if !seen[e.Source] || !seen[e.Target] {
			continue
		}
		edges = append(edges, e)
	}

	clusters := make([]Cluster, 0, len(g.Clusters))
	for _, c := range g.Clusters {
		members := make([]string, 0, len(c.Nodes))
		for _, id := range c.Nodes {
			if seen[id] {
				members = append(members, id)
			}
		}
		if len(members) == 0 {
			continue
		}
		c.Nodes = members
		clusters = append(clusters, c)
	}

	return GraphData{
		Nodes:      nodes,
		Edges:      edges,
		Clusters:   clusters,
		Statistics: ComputeStatistics(nodes, edges, clusters),
	}
}

// NodeByID returns a pointer into the node slice, or nil when absent.
func (g *GraphData) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// NodeIDs returns the set of node ids.
func (g *GraphData) NodeIDs() map[string]bool {
	ids := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		ids[g.Nodes[i].ID] = true
	}
	return ids
}

// Placeholder returns the single-node graph substituted when the data source
// is unavailable. It renders like any other graph; the explorer offers retry.
func Placeholder() GraphData {
	nodes := []Node{{
		ID:    "placeholder",
		Label: "No data available",
		Type:  TypeConcept,
		Size:  20,
		Color: "#8888aa",
	}}
	return GraphData{
		Nodes:      nodes,
		Statistics: ComputeStatistics(nodes, nil, nil),
	}
}

// MatchesSearch reports whether the node label contains term,
// case-insensitively. An empty term matches everything.
func (n *Node) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Label), strings.ToLower(term))
}
