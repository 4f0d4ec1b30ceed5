package model

// LayoutAlgorithm names one of the five position-assignment strategies.
type LayoutAlgorithm string

const (
	LayoutForce        LayoutAlgorithm = "force"
	LayoutHierarchical LayoutAlgorithm = "hierarchical"
	LayoutCircular     LayoutAlgorithm = "circular"
	LayoutGrid         LayoutAlgorithm = "grid"
	LayoutCluster      LayoutAlgorithm = "cluster"
)

// KnownLayouts lists the algorithms in cycling order for the explorer.
var KnownLayouts = []LayoutAlgorithm{
	LayoutForce, LayoutHierarchical, LayoutCircular, LayoutGrid, LayoutCluster,
}

// ValidLayout reports whether name is a recognized algorithm.
func ValidLayout(name LayoutAlgorithm) bool {
	for _, l := range KnownLayouts {
		if l == name {
			return true
		}
	}
	return false
}

// LayoutSpec is an algorithm tag plus its parameter bag.
type LayoutSpec struct {
	Algorithm LayoutAlgorithm `json:"algorithm"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`

	// Force-specific. Iterations defaults to 100 when 0; Seed 0 means
	// unseeded (stability after convergence matters, determinism does not).
	Iterations int   `json:"iterations,omitempty"`
	Seed       int64 `json:"seed,omitempty"`
}

// DefaultLayoutSpec returns the spec the explorer starts with.
func DefaultLayoutSpec(width, height float64) LayoutSpec {
	return LayoutSpec{
		Algorithm:  LayoutForce,
		Width:      width,
		Height:     height,
		Iterations: 100,
	}
}
