package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoleNames(t *testing.T) {
	n := NewRoleNames("MKT_DB", "CRM")

	assert.Equal(t, "MKT_DB", n.Database)
	assert.Equal(t, "MKT_DB.CRM", n.Schema)
	assert.Equal(t, "MKT_DB_WH", n.Warehouse)
	assert.Equal(t, "MKT_DB.CRM.CUSTOMERS", n.Table)
	assert.Equal(t, "RL_MKT_DB_ADMIN", n.Admin)
	assert.Equal(t, "DB_R_DBR_MKT_DB", n.DatabaseRead)
	assert.Equal(t, "DB_C_DBR_MKT_DB", n.DatabaseCreate)
	assert.Equal(t, "DB_W_DBR_MKT_DB", n.DatabaseWrite)
	assert.Equal(t, "SC_R_DBR_MKT_DB", n.SchemaRead)
	assert.Equal(t, "SC_C_DBR_MKT_DB", n.SchemaCreate)
	assert.Equal(t, "SC_W_DBR_MKT_DB", n.SchemaWrite)
	assert.Equal(t, "MKT_DB_ANALYST", n.Analyst)
	assert.Equal(t, "MKT_DB_DEVELOPER", n.Developer)
	assert.Equal(t, "MKT_DB_SUPPORT", n.Support)
}

func TestRoleNames_RolesAreUnique(t *testing.T) {
	roles := NewRoleNames("SALES", "PUBLIC").Roles()
	assert.Len(t, roles, 10)

	seen := map[string]bool{}
	for _, r := range roles {
		assert.False(t, seen[r], "duplicate role %s", r)
		seen[r] = true
	}
}

func TestNewPerimeterNames(t *testing.T) {
	n := NewPerimeterNames("acme")
	assert.Equal(t, "acme_allowed_ips", n.AllowedRule)
	assert.Equal(t, "acme_blocked_ips", n.BlockedRule)
	assert.Equal(t, "acme_network_policy", n.NetworkPolicy)
}

func TestFilenames(t *testing.T) {
	p := PerimeterConfig{CompanyName: "acme"}
	assert.Equal(t, "security_perimeter_setup_acme.sql", p.Filename())

	r := RBACConfig{DatabaseName: "MKT_DB", SchemaName: "CRM"}
	assert.Equal(t, "rbac_setup_MKT_DB_CRM.sql", r.Filename())
	assert.Equal(t, "rbac_diagram_MKT_DB_CRM.dot", r.DiagramFilename("dot"))
}

func TestReady(t *testing.T) {
	assert.False(t, DefaultPerimeterConfig().Ready())
	assert.True(t, PerimeterConfig{CompanyName: "acme"}.Ready())

	assert.False(t, RBACConfig{}.Ready())
	assert.False(t, RBACConfig{DatabaseName: "DB"}.Ready())
	assert.False(t, RBACConfig{SchemaName: "S"}.Ready())
	assert.True(t, RBACConfig{DatabaseName: "DB", SchemaName: "S"}.Ready())
}
