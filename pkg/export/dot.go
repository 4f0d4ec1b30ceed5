package export

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/graphscape/graphscape/pkg/model"
)

// exportDOT creates a Graphviz DOT rendering of the graph. Centrality scales
// node pen width so heavily connected nodes stand out in static renders.
func exportDOT(g model.GraphData) string {
	var sb strings.Builder

	sb.WriteString("digraph knowledge {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=box, fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=8];\n")
	sb.WriteString("\n")

	for _, n := range sortedNodes(g) {
		label := fmt.Sprintf("%s\\n%s", escapeDOTString(truncateRunes(n.DisplayLabel(), 30)), n.Type)
		penwidth := 1.0 + n.Centrality*3.0
		fill := n.Color
		if fill == "" {
			fill = "#C8E6C9"
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", fillcolor=\"%s\", style=filled, penwidth=%.1f];\n",
			escapeDOTString(n.ID), label, fill, penwidth))
	}

	sb.WriteString("\n")

	for _, e := range sortedEdges(g) {
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escapeDOTString(e.Source), escapeDOTString(e.Target), e.Type))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOTString(s string) string {
	// DOT string literals need backslashes and quotes escaped; normalize newlines.
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", " ",
		"\r", " ",
	)
	return replacer.Replace(s)
}

// exportMermaid creates a Mermaid flowchart of the graph, suitable for
// embedding in Markdown.
func exportMermaid(g model.GraphData) string {
	var sb strings.Builder

	sb.WriteString("graph TD\n")

	nodes := sortedNodes(g)

	// Mermaid identifiers must be alphanumeric; build deterministic,
	// collision-free safe IDs up front.
	safeIDMap := make(map[string]string, len(nodes))
	usedSafe := make(map[string]bool, len(nodes))
	getSafeID := func(orig string) string {
		if safe, ok := safeIDMap[orig]; ok {
			return safe
		}
		base := sanitizeMermaidID(orig)
		if base == "" {
			base = "node"
		}
		safe := base
		if usedSafe[safe] {
			h := fnv.New32a()
			_, _ = h.Write([]byte(orig))
			safe = fmt.Sprintf("%s_%x", base, h.Sum32())
		}
		usedSafe[safe] = true
		safeIDMap[orig] = safe
		return safe
	}
	for _, n := range nodes {
		getSafeID(n.ID)
	}

	for _, n := range nodes {
		sb.WriteString(fmt.Sprintf("    %s[\"%s<br/>%s\"]\n",
			getSafeID(n.ID), sanitizeMermaidText(n.DisplayLabel()), n.Type))
	}

	sb.WriteString("\n")

	for _, e := range sortedEdges(g) {
		sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n",
			getSafeID(e.Source), e.Type, getSafeID(e.Target)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return strings.Trim(sb.String(), "_")
}

func sanitizeMermaidText(s string) string {
	replacer := strings.NewReplacer(
		"\"", "&quot;",
		"[", "(",
		"]", ")",
		"\n", " ",
	)
	return replacer.Replace(s)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
