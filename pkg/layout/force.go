package layout

import (
	"math"
	"math/rand"

	"github.com/graphscape/graphscape/pkg/model"
)

// Force-relaxation constants. These are tuned for stability on graphs in the
// low thousands of nodes, not for physical accuracy: repulsion falls off with
// squared distance, springs pull edge endpoints toward restLength, a weak
// centering force keeps disconnected components on canvas, and velocity
// damping prevents divergence.
const (
	repulsionStrength = 8000.0
	springStrength    = 0.05
	restLength        = 100.0
	centeringStrength = 0.01
	damping           = 0.85
	maxDisplacement   = 50.0
	defaultIterations = 100
)

// force runs the iterative relaxation. Nodes start at random positions inside
// the canvas; a non-zero spec.Seed makes the run reproducible.
func force(nodes []model.Node, edges []model.Edge, spec model.LayoutSpec, w, h float64) {
	iterations := spec.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}

	var rng *rand.Rand
	if spec.Seed != 0 {
		rng = rand.New(rand.NewSource(spec.Seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	n := len(nodes)
	x := make([]float64, n)
	y := make([]float64, n)
	vx := make([]float64, n)
	vy := make([]float64, n)
	index := make(map[string]int, n)
	for i := range nodes {
		x[i] = rng.Float64() * w
		y[i] = rng.Float64() * h
		index[nodes[i].ID] = i
	}

	// Resolve edges to index pairs once; dangling edges are skipped.
	type spring struct{ a, b int }
	springs := make([]spring, 0, len(edges))
	for i := range edges {
		a, okA := index[edges[i].Source]
		b, okB := index[edges[i].Target]
		if !okA || !okB || a == b {
			continue
		}
		springs = append(springs, spring{a, b})
	}

	cx, cy := w/2, h/2
	fx := make([]float64, n)
	fy := make([]float64, n)

	for iter := 0; iter < iterations; iter++ {
		for i := range fx {
			fx[i] = 0
			fy[i] = 0
		}

		// Pairwise repulsion, naive O(n^2). Acceptable because maxNodes
		// caps the working set.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := x[i] - x[j]
				dy := y[i] - y[j]
				distSq := dx*dx + dy*dy
				if distSq < 1e-4 {
					// Coincident nodes get a tiny deterministic-ish kick
					// so the repulsion term has a direction to act on.
					dx = rng.Float64() - 0.5
					dy = rng.Float64() - 0.5
					distSq = dx*dx + dy*dy
				}
				dist := math.Sqrt(distSq)
				f := repulsionStrength / distSq
				ux, uy := dx/dist, dy/dist
				fx[i] += ux * f
				fy[i] += uy * f
				fx[j] -= ux * f
				fy[j] -= uy * f
			}
		}

		// Spring attraction along edges, proportional to the stretch
		// beyond restLength.
		for _, s := range springs {
			dx := x[s.b] - x[s.a]
			dy := y[s.b] - y[s.a]
			dist := math.Hypot(dx, dy)
			if dist < 1e-2 {
				continue
			}
			f := springStrength * (dist - restLength)
			ux, uy := dx/dist, dy/dist
			fx[s.a] += ux * f
			fy[s.a] += uy * f
			fx[s.b] -= ux * f
			fy[s.b] -= uy * f
		}

		// Weak pull toward the canvas center.
		for i := 0; i < n; i++ {
			fx[i] += (cx - x[i]) * centeringStrength
			fy[i] += (cy - y[i]) * centeringStrength
		}

		// Integrate with damping; clamp displacement so early iterations
		// cannot fling nodes off to infinity.
		for i := 0; i < n; i++ {
			vx[i] = (vx[i] + fx[i]) * damping
			vy[i] = (vy[i] + fy[i]) * damping
			dx, dy := vx[i], vy[i]
			if d := math.Hypot(dx, dy); d > maxDisplacement {
				scale := maxDisplacement / d
				dx *= scale
				dy *= scale
			}
			x[i] += dx
			y[i] += dy
		}
	}

	for i := range nodes {
		setPos(&nodes[i], x[i], y[i])
	}
}
