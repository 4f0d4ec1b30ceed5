// Package analysis computes derived graph statistics (degree, centrality,
// density) and answers bounded-depth neighbor queries. All computations are
// synchronous pure functions over an immutable snapshot.
package analysis

import (
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/graphscape/graphscape/pkg/model"
)

// Stats holds the per-node metrics derived from one snapshot.
type Stats struct {
	InDegree   map[string]int
	OutDegree  map[string]int
	Centrality map[string]float64 // normalized PageRank, always in [0,1]
	Density    float64
	NodeCount  int
	EdgeCount  int

	// TopologicalOrder is populated only for acyclic graphs; cyclic
	// snapshots leave it nil, which downstream consumers treat as
	// "no canonical order".
	TopologicalOrder []string
}

// Analyzer maps the string-keyed knowledge graph onto a gonum directed graph.
type Analyzer struct {
	g        *simple.DirectedGraph
	idToNode map[string]int64
	nodeToID map[int64]string
}

// NewAnalyzer builds the analysis graph from a snapshot. Edges referencing
// absent nodes are skipped, matching the ingestion contract.
func NewAnalyzer(data model.GraphData) *Analyzer {
	g := simple.NewDirectedGraph()
	idToNode := make(map[string]int64, len(data.Nodes))
	nodeToID := make(map[int64]string, len(data.Nodes))

	for i := range data.Nodes {
		id := data.Nodes[i].ID
		if _, dup := idToNode[id]; dup {
			continue
		}
		n := g.NewNode()
		g.AddNode(n)
		idToNode[id] = n.ID()
		nodeToID[n.ID()] = id
	}

	for i := range data.Edges {
		e := &data.Edges[i]
		u, okU := idToNode[e.Source]
		v, okV := idToNode[e.Target]
		if !okU || !okV || u == v {
			continue
		}
		g.SetEdge(g.NewEdge(g.Node(u), g.Node(v)))
	}

	return &Analyzer{g: g, idToNode: idToNode, nodeToID: nodeToID}
}

// Analyze computes all metrics synchronously. Graphs bounded by the explorer's
// maxNodes cap finish well within a frame budget.
func (a *Analyzer) Analyze() Stats {
	nodeCount := len(a.idToNode)
	stats := Stats{
		InDegree:   make(map[string]int, nodeCount),
		OutDegree:  make(map[string]int, nodeCount),
		Centrality: make(map[string]float64, nodeCount),
		NodeCount:  nodeCount,
		EdgeCount:  a.g.Edges().Len(),
	}
	if nodeCount == 0 {
		return stats
	}

	nodes := a.g.Nodes()
	for nodes.Next() {
		n := nodes.Node()
		id := a.nodeToID[n.ID()]
		stats.InDegree[id] = a.g.To(n.ID()).Len()
		stats.OutDegree[id] = a.g.From(n.ID()).Len()
	}

	if sorted, err := topo.Sort(a.g); err == nil {
		stats.TopologicalOrder = make([]string, 0, len(sorted))
		for _, n := range sorted {
			stats.TopologicalOrder = append(stats.TopologicalOrder, a.nodeToID[n.ID()])
		}
	}

	n := float64(nodeCount)
	if n > 1 {
		stats.Density = float64(stats.EdgeCount) / (n * (n - 1))
	}

	// PageRank normalized by its maximum so centrality lands in [0,1]
	// with the most important node at exactly 1.
	pr := network.PageRank(a.g, 0.85, 1e-6)
	maxPR := 0.0
	for _, score := range pr {
		if score > maxPR {
			maxPR = score
		}
	}
	for gid, score := range pr {
		id := a.nodeToID[gid]
		if maxPR > 0 {
			stats.Centrality[id] = score / maxPR
		} else {
			stats.Centrality[id] = 0
		}
	}

	return stats
}

// Annotate returns a copy of data with per-node Centrality, InDegree, and
// OutDegree filled in from freshly computed stats.
func Annotate(data model.GraphData) model.GraphData {
	stats := NewAnalyzer(data).Analyze()
	nodes := make([]model.Node, len(data.Nodes))
	copy(nodes, data.Nodes)
	for i := range nodes {
		id := nodes[i].ID
		nodes[i].Centrality = stats.Centrality[id]
		nodes[i].InDegree = stats.InDegree[id]
		nodes[i].OutDegree = stats.OutDegree[id]
	}
	out := data
	out.Nodes = nodes
	out.Statistics = model.ComputeStatistics(nodes, data.Edges, data.Clusters)
	return out
}
