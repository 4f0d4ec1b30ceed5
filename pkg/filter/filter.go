// Package filter reduces a graph snapshot to the subset matching a Filter
// specification. Filtering never errors: an empty result is a valid graph.
package filter

import (
	"github.com/graphscape/graphscape/pkg/model"
)

// Apply returns a new GraphData containing exactly the nodes, edges, and
// clusters that survive f. The source is never mutated.
//
// Node retention is the AND of the type, cluster, centrality, and search
// predicates, followed by stable truncation to f.MaxNodes survivors in their
// original relative order. No importance re-sorting happens here; stable
// truncation keeps results deterministic.
//
// An edge survives when its type matches and both endpoints survived node
// filtering. Edges referencing absent nodes are silently skipped. A cluster
// survives when at least one member remains; its member list is intersected
// with the surviving node set.
func Apply(src model.GraphData, f model.Filter) model.GraphData {
	nodes := make([]model.Node, 0, len(src.Nodes))
	for i := range src.Nodes {
		if !f.MatchesNode(&src.Nodes[i]) {
			continue
		}
		nodes = append(nodes, src.Nodes[i])
		if f.MaxNodes > 0 && len(nodes) >= f.MaxNodes {
			break
		}
	}

	surviving := make(map[string]bool, len(nodes))
	for i := range nodes {
		surviving[nodes[i].ID] = true
	}

	edges := make([]model.Edge, 0, len(src.Edges))
	for i := range src.Edges {
		e := &src.Edges[i]
		if !f.MatchesEdge(e) {
			continue
		}
		if !surviving[e.Source] || !surviving[e.Target] {
			continue
		}
		edges = append(edges, *e)
	}

	clusters := make([]model.Cluster, 0, len(src.Clusters))
	for _, c := range src.Clusters {
		members := make([]string, 0, len(c.Nodes))
		for _, id := range c.Nodes {
			if surviving[id] {
				members = append(members, id)
			}
		}
		if len(members) == 0 {
			continue
		}
		c.Nodes = members
		clusters = append(clusters, c)
	}

	return model.GraphData{
		Nodes:      nodes,
		Edges:      edges,
		Clusters:   clusters,
		Statistics: model.ComputeStatistics(nodes, edges, clusters),
	}
}
