package export

import (
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/graphscape/graphscape/pkg/model"
)

// exportJSON emits the full GraphData as an indented JSON document with
// stable field names. This is the canonical round-trip format: re-parsing it
// yields the same node/edge id sets and counts as the source.
func exportJSON(g model.GraphData) ([]byte, error) {
	doc := model.GraphData{
		Nodes:      sortedNodes(g),
		Edges:      sortedEdges(g),
		Clusters:   g.Clusters,
		Statistics: g.Statistics,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Cytoscape element envelope: {elements:{nodes:[{data:{...}}],edges:[{data:{...}}]}}.

type cytoscapeDoc struct {
	Elements cytoscapeElements `json:"elements"`
}

type cytoscapeElements struct {
	Nodes []cytoscapeElement `json:"nodes"`
	Edges []cytoscapeElement `json:"edges"`
}

type cytoscapeElement struct {
	Data map[string]any `json:"data"`
}

func exportCytoscape(g model.GraphData) ([]byte, error) {
	doc := cytoscapeDoc{}

	for _, n := range sortedNodes(g) {
		data := map[string]any{
			"id":         n.ID,
			"label":      n.Label,
			"type":       string(n.Type),
			"size":       n.Size,
			"centrality": n.Centrality,
		}
		if n.Cluster != "" {
			data["parent"] = n.Cluster
		}
		if n.Color != "" {
			data["color"] = n.Color
		}
		for k, v := range n.Properties {
			// Property keys never shadow the reserved element keys.
			if _, reserved := data[k]; reserved {
				continue
			}
			data[k] = propertyAny(v)
		}
		doc.Elements.Nodes = append(doc.Elements.Nodes, cytoscapeElement{Data: data})
	}

	for i, e := range sortedEdges(g) {
		doc.Elements.Edges = append(doc.Elements.Edges, cytoscapeElement{Data: map[string]any{
			"id":     edgeID(i, e),
			"source": e.Source,
			"target": e.Target,
			"type":   string(e.Type),
			"weight": e.Weight,
		}})
	}

	return json.MarshalIndent(doc, "", "  ")
}

func propertyAny(v model.PropertyValue) any {
	switch v.Kind {
	case model.PropertyNumber:
		return v.Num
	case model.PropertyBool:
		return v.Bool
	default:
		return v.Str
	}
}

func edgeID(i int, e model.Edge) string {
	return "e" + strconv.Itoa(i) + ":" + e.Source + "->" + e.Target
}
