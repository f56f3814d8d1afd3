package diagram

import (
	"fmt"
	"strings"
)

var dotFill = map[NodeKind]string{
	KindSystemRole:   "#e0e0e0",
	KindAdminRole:    "#ffd59e",
	KindAccountRole:  "#cfe8ff",
	KindDatabaseRole: "#d7f5d0",
	KindSchemaRole:   "#f5e1ff",
	KindObject:       "#ffffff",
}

// DOT renders g as a Graphviz digraph.
func DOT(g *Graph) string {
	var b strings.Builder

	b.WriteString("digraph rbac {\n")
	fmt.Fprintf(&b, "  label=%s;\n", dotQuote(g.Title))
	b.WriteString("  labelloc=t;\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	for _, n := range g.Nodes {
		if n.Kind == KindLabel {
			fmt.Fprintf(&b, "  %s [label=%s, shape=plaintext, style=\"\"];\n", dotQuote(n.ID), dotQuote(n.Label))
		}
	}

	for _, group := range Groups {
		fmt.Fprintf(&b, "  subgraph cluster_%s {\n", group)
		fmt.Fprintf(&b, "    label=%s;\n", dotQuote(group.Label()))
		b.WriteString("    style=dashed;\n")
		for _, n := range g.InGroup(group) {
			fmt.Fprintf(&b, "    %s [label=%s, fillcolor=%s];\n", dotQuote(n.ID), dotQuote(n.Label), dotQuote(dotFill[n.Kind]))
		}
		b.WriteString("  }\n")
	}

	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s -> %s [%s];\n", dotQuote(e.From), dotQuote(e.To), dotEdgeAttrs(e))
	}

	b.WriteString("}\n")
	return b.String()
}

func dotEdgeAttrs(e Edge) string {
	switch e.Relation {
	case RelationLayout:
		return "style=invis"
	case RelationGrant:
		return fmt.Sprintf("label=%s, style=dashed", dotQuote(e.Label))
	default:
		return fmt.Sprintf("label=%s, style=solid", dotQuote(e.Label))
	}
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
