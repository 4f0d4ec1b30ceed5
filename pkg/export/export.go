// Package export serializes a graph snapshot into interchange formats and
// static image snapshots. All textual formats carry the same logical content
// (ids, labels, types, weights) so any of them round-trips the graph.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/graphscape/graphscape/pkg/model"
)

// Format names a textual interchange format.
type Format string

const (
	FormatJSON      Format = "json"
	FormatGraphML   Format = "graphml"
	FormatGEXF      Format = "gexf"
	FormatCytoscape Format = "cytoscape"
	FormatDOT       Format = "dot"
	FormatMermaid   Format = "mermaid"
)

// Formats lists every supported textual format in display order.
var Formats = []Format{
	FormatJSON, FormatGraphML, FormatGEXF, FormatCytoscape, FormatDOT, FormatMermaid,
}

// Valid reports whether f is a recognized format.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Export serializes g into the requested format.
func Export(g model.GraphData, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return exportJSON(g)
	case FormatGraphML:
		return exportGraphML(g)
	case FormatGEXF:
		return exportGEXF(g)
	case FormatCytoscape:
		return exportCytoscape(g)
	case FormatDOT:
		return []byte(exportDOT(g)), nil
	case FormatMermaid:
		return []byte(exportMermaid(g)), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Filename returns the download filename for a format.
func Filename(format Format) string {
	return "knowledge-graph." + extension(format)
}

func extension(format Format) string {
	switch format {
	case FormatGraphML:
		return "graphml"
	case FormatGEXF:
		return "gexf"
	case FormatDOT:
		return "dot"
	case FormatMermaid:
		return "mmd"
	default:
		// json and cytoscape are both JSON documents.
		return "json"
	}
}

// MIMEType returns the content type served for a format.
func MIMEType(format Format) string {
	switch format {
	case FormatGraphML, FormatGEXF:
		return "application/xml"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatMermaid:
		return "text/plain"
	default:
		return "application/json"
	}
}

// WriteFile exports g and writes it next to the given directory (or path).
// When path is a directory, the conventional download filename is used.
func WriteFile(g model.GraphData, format Format, path string) (string, error) {
	data, err := Export(g, format)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, Filename(format))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create parent dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// sortedNodes returns a copy of the nodes ordered by id, for deterministic
// output across formats.
func sortedNodes(g model.GraphData) []model.Node {
	nodes := make([]model.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// sortedEdges returns a copy of the edges ordered by (source, target, type).
func sortedEdges(g model.GraphData) []model.Edge {
	edges := make([]model.Edge, len(g.Edges))
	copy(edges, g.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		if edges[i].Target != edges[j].Target {
			return edges[i].Target < edges[j].Target
		}
		return edges[i].Type < edges[j].Type
	})
	return edges
}
