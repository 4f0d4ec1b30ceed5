package export

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/graphscape/graphscape/pkg/model"
)

// GraphML: <graphml><graph><node id=...><data key=...>...</data></node>...
// Attribute keys are declared up front per the GraphML schema so consumers
// like Gephi and yEd resolve them without guessing.

type graphmlDoc struct {
	XMLName xml.Name      `xml:"graphml"`
	Xmlns   string        `xml:"xmlns,attr"`
	Keys    []graphmlKey  `xml:"key"`
	Graph   graphmlGraph  `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string         `xml:"id,attr"`
	EdgeDefault string         `xml:"edgedefault,attr"`
	Nodes       []graphmlNode  `xml:"node"`
	Edges       []graphmlEdge  `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

func exportGraphML(g model.GraphData) ([]byte, error) {
	doc := graphmlDoc{
		Xmlns: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: "label", For: "node", AttrName: "label", AttrType: "string"},
			{ID: "type", For: "node", AttrName: "type", AttrType: "string"},
			{ID: "size", For: "node", AttrName: "size", AttrType: "double"},
			{ID: "edgetype", For: "edge", AttrName: "type", AttrType: "string"},
			{ID: "weight", For: "edge", AttrName: "weight", AttrType: "double"},
		},
		Graph: graphmlGraph{ID: "knowledge-graph", EdgeDefault: "directed"},
	}

	for _, n := range sortedNodes(g) {
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
			ID: n.ID,
			Data: []graphmlData{
				{Key: "label", Value: n.Label},
				{Key: "type", Value: string(n.Type)},
				{Key: "size", Value: formatFloat(n.Size)},
			},
		})
	}

	for _, e := range sortedEdges(g) {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: e.Source,
			Target: e.Target,
			Data: []graphmlData{
				{Key: "edgetype", Value: string(e.Type)},
				{Key: "weight", Value: formatFloat(e.Weight)},
			},
		})
	}

	return marshalXML(doc)
}

// GEXF per the 1.2draft schema: attribute declarations for type and size,
// then <nodes>/<edges> carrying the same underlying data as GraphML.

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	Xmlns   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	DefaultEdgeType string          `xml:"defaultedgetype,attr"`
	Attributes      gexfAttributes  `xml:"attributes"`
	Nodes           gexfNodes       `xml:"nodes"`
	Edges           gexfEdges       `xml:"edges"`
}

type gexfAttributes struct {
	Class string     `xml:"class,attr"`
	Attrs []gexfAttr `xml:"attribute"`
}

type gexfAttr struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNodes struct {
	Nodes []gexfNode `xml:"node"`
}

type gexfNode struct {
	ID       string          `xml:"id,attr"`
	Label    string          `xml:"label,attr"`
	Attvalues []gexfAttvalue `xml:"attvalues>attvalue"`
}

type gexfAttvalue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfEdges struct {
	Edges []gexfEdge `xml:"edge"`
}

type gexfEdge struct {
	ID     string  `xml:"id,attr"`
	Source string  `xml:"source,attr"`
	Target string  `xml:"target,attr"`
	Type   string  `xml:"label,attr"`
	Weight float64 `xml:"weight,attr"`
}

func exportGEXF(g model.GraphData) ([]byte, error) {
	doc := gexfDoc{
		Xmlns:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph: gexfGraph{
			DefaultEdgeType: "directed",
			Attributes: gexfAttributes{
				Class: "node",
				Attrs: []gexfAttr{
					{ID: "type", Title: "type", Type: "string"},
					{ID: "size", Title: "size", Type: "double"},
				},
			},
		},
	}

	for _, n := range sortedNodes(g) {
		doc.Graph.Nodes.Nodes = append(doc.Graph.Nodes.Nodes, gexfNode{
			ID:    n.ID,
			Label: n.Label,
			Attvalues: []gexfAttvalue{
				{For: "type", Value: string(n.Type)},
				{For: "size", Value: formatFloat(n.Size)},
			},
		})
	}

	for i, e := range sortedEdges(g) {
		doc.Graph.Edges.Edges = append(doc.Graph.Edges.Edges, gexfEdge{
			ID:     edgeID(i, e),
			Source: e.Source,
			Target: e.Target,
			Type:   string(e.Type),
			Weight: e.Weight,
		})
	}

	return marshalXML(doc)
}

func marshalXML(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// formatFloat keeps whole numbers compact: 1 stays "1", 0.5 stays "0.5".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
