// Package diagram describes the RBAC role hierarchy as a plain directed graph.
//
// Build produces the graph from an RBAC config; DOT and Mermaid convert it for
// an external renderer. The graph itself carries no rendering library types.
package diagram

import (
	"fmt"

	"github.com/edvin/snowguard/internal/model"
)

// Relation is the meaning of an edge.
type Relation string

const (
	// RelationCreates is drawn solid: the source creates or owns the target.
	RelationCreates Relation = "creates"
	// RelationGrant is drawn dashed: the source's privileges are granted to the target.
	RelationGrant Relation = "grant"
	// RelationLayout edges only order the rendering and carry no meaning.
	RelationLayout Relation = "layout"
)

// NodeKind classifies a node for styling.
type NodeKind string

const (
	KindSystemRole   NodeKind = "system_role"
	KindAdminRole    NodeKind = "admin_role"
	KindAccountRole  NodeKind = "account_role"
	KindDatabaseRole NodeKind = "database_role"
	KindSchemaRole   NodeKind = "schema_role"
	KindObject       NodeKind = "object"
	KindLabel        NodeKind = "label"
)

// Group is the container a node is drawn in. Label nodes have no group.
type Group string

const (
	GroupAccount  Group = "account"
	GroupDatabase Group = "database"
	GroupSchema   Group = "schema"
)

// Groups in drawing order.
var Groups = []Group{GroupAccount, GroupDatabase, GroupSchema}

// Node IDs. They are stable across inputs; only labels change.
const (
	NodeSysadmin       = "sysadmin"
	NodeAdmin          = "admin"
	NodeAnalyst        = "analyst"
	NodeDeveloper      = "developer"
	NodeSupport        = "support"
	NodeDatabaseRead   = "db_read"
	NodeDatabaseCreate = "db_create"
	NodeDatabaseWrite  = "db_write"
	NodeSchemaRead     = "sc_read"
	NodeSchemaCreate   = "sc_create"
	NodeSchemaWrite    = "sc_write"
	NodeTables         = "tables"
	NodeLabelAccount   = "label_account"
	NodeLabelDatabase  = "label_database"
	NodeLabelSchema    = "label_schema"
	NodeLabelObjects   = "label_objects"
)

type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"kind"`
	Group Group    `json:"group,omitempty"`
}

type Edge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Label    string   `json:"label,omitempty"`
	Relation Relation `json:"relation"`
}

// Graph is the complete RBAC diagram description.
type Graph struct {
	Title string `json:"title"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build returns the role hierarchy graph for cfg. Labels come from cfg.Names(),
// the same names the RBAC script uses.
func Build(cfg model.RBACConfig) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rbac diagram: %w", err)
	}
	n := cfg.Names()

	g := &Graph{
		Title: fmt.Sprintf("RBAC hierarchy for %s", n.Schema),
		Nodes: []Node{
			{ID: NodeSysadmin, Label: "SYSADMIN", Kind: KindSystemRole, Group: GroupAccount},
			{ID: NodeAdmin, Label: n.Admin, Kind: KindAdminRole, Group: GroupAccount},
			{ID: NodeAnalyst, Label: n.Analyst, Kind: KindAccountRole, Group: GroupAccount},
			{ID: NodeDeveloper, Label: n.Developer, Kind: KindAccountRole, Group: GroupAccount},
			{ID: NodeSupport, Label: n.Support, Kind: KindAccountRole, Group: GroupAccount},

			{ID: NodeDatabaseRead, Label: n.DatabaseRead, Kind: KindDatabaseRole, Group: GroupDatabase},
			{ID: NodeDatabaseCreate, Label: n.DatabaseCreate, Kind: KindDatabaseRole, Group: GroupDatabase},
			{ID: NodeDatabaseWrite, Label: n.DatabaseWrite, Kind: KindDatabaseRole, Group: GroupDatabase},

			{ID: NodeSchemaRead, Label: n.SchemaRead, Kind: KindSchemaRole, Group: GroupSchema},
			{ID: NodeSchemaCreate, Label: n.SchemaCreate, Kind: KindSchemaRole, Group: GroupSchema},
			{ID: NodeSchemaWrite, Label: n.SchemaWrite, Kind: KindSchemaRole, Group: GroupSchema},
			{ID: NodeTables, Label: "Tables in " + n.Schema, Kind: KindObject, Group: GroupSchema},

			{ID: NodeLabelAccount, Label: "Account roles", Kind: KindLabel},
			{ID: NodeLabelDatabase, Label: "Database " + n.Database, Kind: KindLabel},
			{ID: NodeLabelSchema, Label: "Schema " + n.Schema, Kind: KindLabel},
			{ID: NodeLabelObjects, Label: "Objects", Kind: KindLabel},
		},
		Edges: []Edge{
			{From: NodeSysadmin, To: NodeAdmin, Label: "creates", Relation: RelationCreates},
			{From: NodeAdmin, To: NodeAnalyst, Label: "creates", Relation: RelationCreates},
			{From: NodeAdmin, To: NodeDeveloper, Label: "creates", Relation: RelationCreates},
			{From: NodeAdmin, To: NodeSupport, Label: "creates", Relation: RelationCreates},
			{From: NodeAdmin, To: NodeDatabaseRead, Label: "creates", Relation: RelationCreates},

			{From: NodeDatabaseRead, To: NodeSchemaRead, Label: "grant", Relation: RelationGrant},
			{From: NodeDatabaseRead, To: NodeSchemaCreate, Label: "grant", Relation: RelationGrant},
			{From: NodeDatabaseRead, To: NodeSchemaWrite, Label: "grant", Relation: RelationGrant},

			{From: NodeAnalyst, To: NodeSchemaRead, Label: "grant", Relation: RelationGrant},
			{From: NodeDeveloper, To: NodeSchemaCreate, Label: "grant", Relation: RelationGrant},
			{From: NodeSupport, To: NodeSchemaWrite, Label: "grant", Relation: RelationGrant},

			{From: NodeSchemaRead, To: NodeTables, Label: "read", Relation: RelationGrant},
			{From: NodeSchemaCreate, To: NodeTables, Label: "create", Relation: RelationGrant},
			{From: NodeSchemaWrite, To: NodeTables, Label: "write", Relation: RelationGrant},

			{From: NodeLabelAccount, To: NodeLabelDatabase, Relation: RelationLayout},
			{From: NodeLabelDatabase, To: NodeLabelSchema, Relation: RelationLayout},
			{From: NodeLabelSchema, To: NodeLabelObjects, Relation: RelationLayout},
			{From: NodeLabelAccount, To: NodeSysadmin, Relation: RelationLayout},
			{From: NodeLabelDatabase, To: NodeDatabaseRead, Relation: RelationLayout},
			{From: NodeLabelDatabase, To: NodeDatabaseCreate, Relation: RelationLayout},
			{From: NodeLabelDatabase, To: NodeDatabaseWrite, Relation: RelationLayout},
			{From: NodeLabelSchema, To: NodeSchemaRead, Relation: RelationLayout},
			{From: NodeLabelObjects, To: NodeTables, Relation: RelationLayout},
		},
	}
	return g, nil
}

// Semantic returns the edges that express a real relationship, skipping layout edges.
func (g *Graph) Semantic() []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Relation != RelationLayout {
			out = append(out, e)
		}
	}
	return out
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeByLabel looks up a node by its label.
func (g *Graph) NodeByLabel(label string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Label == label {
			return n, true
		}
	}
	return Node{}, false
}

// InGroup returns the nodes drawn inside group, in declaration order.
func (g *Graph) InGroup(group Group) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Group == group {
			out = append(out, n)
		}
	}
	return out
}

// GroupLabel is the caption of a group's container.
func (g Group) Label() string {
	switch g {
	case GroupAccount:
		return "Account level"
	case GroupDatabase:
		return "Database roles"
	case GroupSchema:
		return "Schema access (managed)"
	}
	return string(g)
}
