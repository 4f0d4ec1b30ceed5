package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/graphscape/graphscape/pkg/model"
)

// renderDetail builds the detail pane content for a selected node: identity,
// metrics, its property bag, and direct neighbors. The description property
// (when present) is rendered as markdown.
func renderDetail(n model.Node, neighbors []model.Node, width int) string {
	var sb strings.Builder

	sb.WriteString(detailTitleStyle.Render(truncateWidth(n.DisplayLabel(), width)))
	sb.WriteString("\n")
	sb.WriteString(headerInfoStyle.Render(fmt.Sprintf("%s · %s", n.ID, n.Type)))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "centrality  %.3f\n", n.Centrality)
	fmt.Fprintf(&sb, "in/out      %d / %d\n", n.InDegree, n.OutDegree)
	if n.Cluster != "" {
		fmt.Fprintf(&sb, "cluster     %s\n", truncateWidth(n.Cluster, width-12))
	}
	if n.Repository != "" {
		fmt.Fprintf(&sb, "repository  %s\n", truncateWidth(n.Repository, width-12))
	}
	if n.Language != "" {
		fmt.Fprintf(&sb, "language    %s\n", n.Language)
	}

	if desc, ok := n.Properties["description"]; ok && desc.Kind == model.PropertyString {
		sb.WriteString("\n")
		sb.WriteString(renderMarkdown(desc.Str, width))
	}

	if extra := propertyLines(n, width); extra != "" {
		sb.WriteString("\n")
		sb.WriteString(extra)
	}

	if len(neighbors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(detailTitleStyle.Render("neighbors"))
		sb.WriteString("\n")
		max := len(neighbors)
		if max > 8 {
			max = 8
		}
		for _, nb := range neighbors[:max] {
			fmt.Fprintf(&sb, "· %s\n", truncateWidth(nb.DisplayLabel(), width-2))
		}
		if len(neighbors) > max {
			fmt.Fprintf(&sb, "… and %d more\n", len(neighbors)-max)
		}
	}

	return sb.String()
}

// propertyLines lists the scalar property bag, skipping description which is
// rendered separately.
func propertyLines(n model.Node, width int) string {
	if len(n.Properties) == 0 {
		return ""
	}
	keys := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		if k == "description" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		line := fmt.Sprintf("%s: %s", k, n.Properties[k].String())
		sb.WriteString(truncateWidth(line, width))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// Strip trailing whitespace/newlines that glamour adds
	return strings.TrimRight(out, "\n ")
}

// truncateWidth shortens s to maxWidth terminal cells, ellipsis-terminated.
// Uses go-runewidth to handle wide characters correctly.
func truncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
