package diagram

import (
	"fmt"
	"strings"
)

var mermaidClass = map[NodeKind]string{
	KindSystemRole:   "fill:#e0e0e0,stroke:#666",
	KindAdminRole:    "fill:#ffd59e,stroke:#c77d00",
	KindAccountRole:  "fill:#cfe8ff,stroke:#2b6cb0",
	KindDatabaseRole: "fill:#d7f5d0,stroke:#2f855a",
	KindSchemaRole:   "fill:#f5e1ff,stroke:#6b46c1",
	KindObject:       "fill:#ffffff,stroke:#999",
	KindLabel:        "fill:none,stroke:none,font-weight:bold",
}

var mermaidKinds = []NodeKind{
	KindSystemRole, KindAdminRole, KindAccountRole, KindDatabaseRole,
	KindSchemaRole, KindObject, KindLabel,
}

// Mermaid renders g as a Mermaid flowchart. Grants are dotted arrows and
// layout edges use the invisible link.
func Mermaid(g *Graph) string {
	var b strings.Builder

	b.WriteString("flowchart TB\n")

	for _, n := range g.Nodes {
		if n.Kind == KindLabel {
			fmt.Fprintf(&b, "  %s[%s]\n", n.ID, mermaidQuote(n.Label))
		}
	}

	for _, group := range Groups {
		fmt.Fprintf(&b, "  subgraph %s[%s]\n", group, mermaidQuote(group.Label()))
		for _, n := range g.InGroup(group) {
			fmt.Fprintf(&b, "    %s[%s]\n", n.ID, mermaidQuote(n.Label))
		}
		b.WriteString("  end\n")
	}

	for _, e := range g.Edges {
		switch e.Relation {
		case RelationLayout:
			fmt.Fprintf(&b, "  %s ~~~ %s\n", e.From, e.To)
		case RelationGrant:
			fmt.Fprintf(&b, "  %s -.->|%s| %s\n", e.From, e.Label, e.To)
		default:
			fmt.Fprintf(&b, "  %s -->|%s| %s\n", e.From, e.Label, e.To)
		}
	}

	for _, kind := range mermaidKinds {
		fmt.Fprintf(&b, "  classDef %s %s\n", kind, mermaidClass[kind])
	}
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  class %s %s\n", n.ID, n.Kind)
	}
	return b.String()
}

func mermaidQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "#quot;") + `"`
}
