package model

// PerimeterNames are the network objects created by the perimeter script.
type PerimeterNames struct {
	AllowedRule   string `json:"allowed_rule"`
	BlockedRule   string `json:"blocked_rule"`
	NetworkPolicy string `json:"network_policy"`
}

// NewPerimeterNames derives the network rule and policy names from a company name.
func NewPerimeterNames(company string) PerimeterNames {
	return PerimeterNames{
		AllowedRule:   company + "_allowed_ips",
		BlockedRule:   company + "_blocked_ips",
		NetworkPolicy: company + "_network_policy",
	}
}

// RoleNames are every role and object name used by the RBAC script and diagram.
// Both outputs read names from here and nowhere else.
type RoleNames struct {
	Database  string `json:"database"`
	Schema    string `json:"schema"` // fully qualified: <db>.<schema>
	Warehouse string `json:"warehouse"`
	Table     string `json:"table"` // fully qualified sample table

	Admin string `json:"admin"`

	// Database-level database roles.
	DatabaseRead   string `json:"database_read"`
	DatabaseCreate string `json:"database_create"`
	DatabaseWrite  string `json:"database_write"`

	// Schema-access database roles.
	SchemaRead   string `json:"schema_read"`
	SchemaCreate string `json:"schema_create"`
	SchemaWrite  string `json:"schema_write"`

	// Account-level functional roles.
	Analyst   string `json:"analyst"`
	Developer string `json:"developer"`
	Support   string `json:"support"`
}

// NewRoleNames derives the role hierarchy names from a database and schema name.
func NewRoleNames(database, schema string) RoleNames {
	return RoleNames{
		Database:  database,
		Schema:    database + "." + schema,
		Warehouse: database + "_WH",
		Table:     database + "." + schema + ".CUSTOMERS",

		Admin: "RL_" + database + "_ADMIN",

		DatabaseRead:   "DB_R_DBR_" + database,
		DatabaseCreate: "DB_C_DBR_" + database,
		DatabaseWrite:  "DB_W_DBR_" + database,

		SchemaRead:   "SC_R_DBR_" + database,
		SchemaCreate: "SC_C_DBR_" + database,
		SchemaWrite:  "SC_W_DBR_" + database,

		Analyst:   database + "_ANALYST",
		Developer: database + "_DEVELOPER",
		Support:   database + "_SUPPORT",
	}
}

// Roles lists every role name in creation order.
func (n RoleNames) Roles() []string {
	return []string{
		n.Admin,
		n.DatabaseRead, n.DatabaseCreate, n.DatabaseWrite,
		n.SchemaRead, n.SchemaCreate, n.SchemaWrite,
		n.Analyst, n.Developer, n.Support,
	}
}
