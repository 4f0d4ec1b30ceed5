// Package testutil provides test fixture generators for various graph
// topologies. All generators produce deterministic output for reproducible
// tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/graphscape/graphscape/pkg/model"
)

// GeneratorConfig controls graph generation.
type GeneratorConfig struct {
	Seed     int64            // Random seed for determinism
	IDPrefix string           // Prefix for node IDs (default: "n")
	NodeType model.NodeType   // Type assigned to generated nodes (default: concept)
	EdgeType model.EdgeType   // Type assigned to generated edges (default: depends_on)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42,
		IDPrefix: "n",
		NodeType: model.TypeConcept,
		EdgeType: model.EdgeDependsOn,
	}
}

// Generator creates test graphs with various topologies.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "n"
	}
	if cfg.NodeType == "" {
		cfg.NodeType = model.TypeConcept
	}
	if cfg.EdgeType == "" {
		cfg.EdgeType = model.EdgeDependsOn
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

func (g *Generator) id(i int) string {
	return fmt.Sprintf("%s%d", g.cfg.IDPrefix, i)
}

func (g *Generator) node(i int) model.Node {
	return model.Node{
		ID:    g.id(i),
		Label: fmt.Sprintf("Node %d", i),
		Type:  g.cfg.NodeType,
	}
}

func (g *Generator) edge(from, to int) model.Edge {
	return model.Edge{
		Source: g.id(from),
		Target: g.id(to),
		Type:   g.cfg.EdgeType,
		Weight: 1,
	}
}

func (g *Generator) finish(data model.GraphData) model.GraphData {
	data.Statistics = model.ComputeStatistics(data.Nodes, data.Edges, data.Clusters)
	return data
}

// Chain creates a linear chain: n0 -> n1 -> ... -> n{size-1}.
func (g *Generator) Chain(size int) model.GraphData {
	var data model.GraphData
	for i := 0; i < size; i++ {
		data.Nodes = append(data.Nodes, g.node(i))
		if i > 0 {
			data.Edges = append(data.Edges, g.edge(i-1, i))
		}
	}
	return g.finish(data)
}

// Star creates a hub with size-1 spokes: n0 -> n1, n0 -> n2, ...
func (g *Generator) Star(size int) model.GraphData {
	var data model.GraphData
	for i := 0; i < size; i++ {
		data.Nodes = append(data.Nodes, g.node(i))
		if i > 0 {
			data.Edges = append(data.Edges, g.edge(0, i))
		}
	}
	return g.finish(data)
}

// Tree creates a complete binary tree with edges from parent to child.
func (g *Generator) Tree(size int) model.GraphData {
	var data model.GraphData
	for i := 0; i < size; i++ {
		data.Nodes = append(data.Nodes, g.node(i))
		if i > 0 {
			data.Edges = append(data.Edges, g.edge((i-1)/2, i))
		}
	}
	return g.finish(data)
}

// RandomDAG creates a random acyclic graph: every edge points from a lower
// index to a higher one, so cycles are impossible.
func (g *Generator) RandomDAG(size int, edgeProb float64) model.GraphData {
	var data model.GraphData
	for i := 0; i < size; i++ {
		data.Nodes = append(data.Nodes, g.node(i))
	}
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g.rng.Float64() < edgeProb {
				data.Edges = append(data.Edges, g.edge(i, j))
			}
		}
	}
	return g.finish(data)
}

// Clustered creates numClusters groups of clusterSize nodes each, densely
// connected inside a group with a single bridge edge between consecutive
// groups.
func (g *Generator) Clustered(numClusters, clusterSize int) model.GraphData {
	var data model.GraphData
	for c := 0; c < numClusters; c++ {
		cluster := model.Cluster{
			ID:   fmt.Sprintf("c%d", c),
			Name: fmt.Sprintf("Cluster %d", c),
		}
		base := c * clusterSize
		for i := 0; i < clusterSize; i++ {
			n := g.node(base + i)
			n.Cluster = cluster.ID
			data.Nodes = append(data.Nodes, n)
			cluster.Nodes = append(cluster.Nodes, n.ID)
			if i > 0 {
				data.Edges = append(data.Edges, g.edge(base, base+i))
			}
		}
		if c > 0 {
			data.Edges = append(data.Edges, g.edge(base-clusterSize, base))
		}
		data.Clusters = append(data.Clusters, cluster)
	}
	return g.finish(data)
}
