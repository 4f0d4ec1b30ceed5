package analysis

import (
	"github.com/graphscape/graphscape/pkg/model"
)

// Neighbors returns the nodes reachable from nodeID within depth hops,
// excluding the origin, deduplicated, in BFS discovery order. Edges are
// treated as undirected: A->B makes each a neighbor of the other. An unknown
// nodeID or depth < 1 yields an empty result, never an error.
func Neighbors(g model.GraphData, nodeID string, depth int) []model.Node {
	if depth < 1 {
		return nil
	}
	nodeByID := make(map[string]*model.Node, len(g.Nodes))
	for i := range g.Nodes {
		nodeByID[g.Nodes[i].ID] = &g.Nodes[i]
	}
	if _, ok := nodeByID[nodeID]; !ok {
		return nil
	}

	// Undirected adjacency in first-seen edge order keeps discovery order
	// stable for a given snapshot.
	adj := make(map[string][]string, len(g.Nodes))
	for i := range g.Edges {
		e := &g.Edges[i]
		if _, ok := nodeByID[e.Source]; !ok {
			continue
		}
		if _, ok := nodeByID[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := map[string]bool{nodeID: true}
	frontier := []string{nodeID}
	var result []model.Node

	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string
		for _, id := range frontier {
			for _, nb := range adj[id] {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				next = append(next, nb)
				result = append(result, *nodeByID[nb])
			}
		}
		frontier = next
	}

	return result
}
