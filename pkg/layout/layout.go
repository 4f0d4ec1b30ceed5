// Package layout assigns 2-D coordinates to a node set under a named
// algorithm. All algorithms return a new node slice with positions populated;
// the input is never mutated. Only the force algorithm consults edges (as
// attraction springs); cluster layout consults cluster membership.
package layout

import (
	"math"

	"github.com/graphscape/graphscape/pkg/model"
)

// Apply dispatches to the algorithm named by spec. Unknown algorithm names
// fall back to grid, which is always well-defined.
//
// Edge cases shared by every algorithm: an empty node set returns an empty
// slice; a single node lands at the canvas center.
func Apply(nodes []model.Node, edges []model.Edge, clusters []model.Cluster, spec model.LayoutSpec) []model.Node {
	out := make([]model.Node, len(nodes))
	copy(out, nodes)
	if len(out) == 0 {
		return out
	}

	w, h := canvasSize(spec)
	if len(out) == 1 {
		setPos(&out[0], w/2, h/2)
		return out
	}

	switch spec.Algorithm {
	case model.LayoutCircular:
		circular(out, w, h)
	case model.LayoutHierarchical:
		hierarchical(out, edges, w, h)
	case model.LayoutCluster:
		clustered(out, clusters, w, h)
	case model.LayoutForce:
		force(out, edges, spec, w, h)
	default:
		grid(out, w, h)
	}
	return out
}

func canvasSize(spec model.LayoutSpec) (float64, float64) {
	w, h := spec.Width, spec.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

func setPos(n *model.Node, x, y float64) {
	n.Position = &model.Position{X: x, Y: y}
}

// grid arranges nodes row-major in a square-ish grid sized to fit the canvas.
func grid(nodes []model.Node, w, h float64) {
	cols := int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	cell := math.Min(w, h) / float64(cols)
	for i := range nodes {
		row := i / cols
		col := i % cols
		setPos(&nodes[i], cell/2+float64(col)*cell, cell/2+float64(row)*cell)
	}
}

// circular places nodes evenly on a circle centered on the canvas with
// radius 80% of the half-extent.
func circular(nodes []model.Node, w, h float64) {
	cx, cy := w/2, h/2
	radius := math.Min(w, h) / 2 * 0.8
	step := 2 * math.Pi / float64(len(nodes))
	for i := range nodes {
		angle := step * float64(i)
		setPos(&nodes[i], cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
	}
}

// hierarchical layers nodes by shortest-hop distance from the root set
// (nodes with zero in-degree), BFS from all roots simultaneously. Nodes
// unreachable from any root stay at level 0. Levels are spaced evenly along
// y; within a level, nodes are spaced evenly along x.
func hierarchical(nodes []model.Node, edges []model.Edge, w, h float64) {
	index := make(map[string]int, len(nodes))
	for i := range nodes {
		index[nodes[i].ID] = i
	}

	inDeg := make(map[string]int, len(nodes))
	succ := make(map[string][]string, len(nodes))
	for i := range edges {
		e := &edges[i]
		if _, ok := index[e.Source]; !ok {
			continue
		}
		if _, ok := index[e.Target]; !ok {
			continue
		}
		inDeg[e.Target]++
		succ[e.Source] = append(succ[e.Source], e.Target)
	}

	level := make(map[string]int, len(nodes))
	var frontier []string
	for i := range nodes {
		if inDeg[nodes[i].ID] == 0 {
			level[nodes[i].ID] = 0
			frontier = append(frontier, nodes[i].ID)
		}
	}
	maxLevel := 0
	for depth := 1; len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, t := range succ[id] {
				if _, seen := level[t]; seen {
					continue
				}
				level[t] = depth
				next = append(next, t)
				if depth > maxLevel {
					maxLevel = depth
				}
			}
		}
		frontier = next
	}

	// Bucket by level preserving input order inside each level.
	buckets := make([][]int, maxLevel+1)
	for i := range nodes {
		lvl := level[nodes[i].ID] // unreached nodes default to 0
		buckets[lvl] = append(buckets[lvl], i)
	}

	rowGap := h / float64(maxLevel+2)
	for lvl, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		colGap := w / float64(len(bucket)+1)
		y := rowGap * float64(lvl+1)
		for j, idx := range bucket {
			setPos(&nodes[idx], colGap*float64(j+1), y)
		}
	}
}

// clustered arranges cluster centroids on a circle, then places member nodes
// on a small circle around their centroid. Unclustered nodes orbit a shared
// fallback centroid.
func clustered(nodes []model.Node, clusters []model.Cluster, w, h float64) {
	memberOf := make(map[string]string)
	for _, c := range clusters {
		for _, id := range c.Nodes {
			memberOf[id] = c.ID
		}
	}

	// Preserve cluster declaration order, with the fallback centroid last.
	const fallback = ""
	order := make([]string, 0, len(clusters)+1)
	groups := make(map[string][]int)
	for _, c := range clusters {
		order = append(order, c.ID)
	}
	hasFallback := false
	for i := range nodes {
		cid, ok := memberOf[nodes[i].ID]
		if !ok {
			cid = fallback
			if !hasFallback {
				hasFallback = true
				order = append(order, fallback)
			}
		}
		groups[cid] = append(groups[cid], i)
	}

	// Drop clusters with no present members to keep centroids evenly spread.
	active := order[:0]
	for _, cid := range order {
		if len(groups[cid]) > 0 {
			active = append(active, cid)
		}
	}

	cx, cy := w/2, h/2
	centroidRadius := math.Min(w, h) / 2 * 0.6
	memberRadius := math.Min(w, h) / 2 * 0.2
	centroidStep := 2 * math.Pi / float64(len(active))

	for ci, cid := range active {
		var gx, gy float64
		if len(active) == 1 {
			gx, gy = cx, cy
		} else {
			angle := centroidStep * float64(ci)
			gx = cx + centroidRadius*math.Cos(angle)
			gy = cy + centroidRadius*math.Sin(angle)
		}
		members := groups[cid]
		if len(members) == 1 {
			setPos(&nodes[members[0]], gx, gy)
			continue
		}
		memberStep := 2 * math.Pi / float64(len(members))
		for mi, idx := range members {
			angle := memberStep * float64(mi)
			setPos(&nodes[idx], gx+memberRadius*math.Cos(angle), gy+memberRadius*math.Sin(angle))
		}
	}
}
