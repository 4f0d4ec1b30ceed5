package model

// Filter selects a subset of a GraphData. Empty sets impose no restriction;
// zero values of MinCentrality and SearchTerm are likewise permissive.
// MaxNodes of 0 means unlimited.
type Filter struct {
	NodeTypes     []NodeType `json:"node_types,omitempty"`
	EdgeTypes     []EdgeType `json:"edge_types,omitempty"`
	Clusters      []string   `json:"clusters,omitempty"`
	MinCentrality float64    `json:"min_centrality,omitempty"`
	MaxNodes      int        `json:"max_nodes,omitempty"`
	SearchTerm    string     `json:"search_term,omitempty"`
}

// IsZero reports whether the filter imposes no restriction at all.
func (f Filter) IsZero() bool {
	return len(f.NodeTypes) == 0 && len(f.EdgeTypes) == 0 && len(f.Clusters) == 0 &&
		f.MinCentrality == 0 && f.MaxNodes == 0 && f.SearchTerm == ""
}

// Equal reports whether two filters select the same subset. Slice fields
// compare elementwise, so order matters; the UI builds them deterministically.
func (f Filter) Equal(other Filter) bool {
	if f.MinCentrality != other.MinCentrality || f.MaxNodes != other.MaxNodes ||
		f.SearchTerm != other.SearchTerm {
		return false
	}
	if len(f.NodeTypes) != len(other.NodeTypes) ||
		len(f.EdgeTypes) != len(other.EdgeTypes) ||
		len(f.Clusters) != len(other.Clusters) {
		return false
	}
	for i := range f.NodeTypes {
		if f.NodeTypes[i] != other.NodeTypes[i] {
			return false
		}
	}
	for i := range f.EdgeTypes {
		if f.EdgeTypes[i] != other.EdgeTypes[i] {
			return false
		}
	}
	for i := range f.Clusters {
		if f.Clusters[i] != other.Clusters[i] {
			return false
		}
	}
	return true
}

// MatchesNode evaluates the node-level predicates: type membership, cluster
// membership, centrality floor, and label search. MaxNodes truncation is a
// set-level concern applied after per-node matching.
func (f Filter) MatchesNode(n *Node) bool {
	if len(f.NodeTypes) > 0 && !containsNodeType(f.NodeTypes, n.Type) {
		return false
	}
	if len(f.Clusters) > 0 && !containsString(f.Clusters, n.Cluster) {
		return false
	}
	if n.Centrality < f.MinCentrality {
		return false
	}
	return n.MatchesSearch(f.SearchTerm)
}

// MatchesEdge evaluates the edge-type predicate. Endpoint survival is checked
// by the filter engine against the retained node set.
func (f Filter) MatchesEdge(e *Edge) bool {
	if len(f.EdgeTypes) == 0 {
		return true
	}
	for _, t := range f.EdgeTypes {
		if e.Type == t {
			return true
		}
	}
	return false
}

func containsNodeType(set []NodeType, t NodeType) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
