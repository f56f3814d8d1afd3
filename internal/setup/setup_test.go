package setup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/snowguard/internal/model"
	"github.com/edvin/snowguard/internal/script"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadManifest_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFilename)
	writeFile(t, path, `
perimeter:
  company_name: acme
rbac:
  - database_name: MKT_DB
    schema_name: CRM
  - database_name: SALES
    schema_name: ORDERS
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.NotNil(t, m.Perimeter)
	assert.Equal(t, "acme", m.Perimeter.CompanyName)
	assert.Equal(t, model.DefaultAllowedIPs, m.Perimeter.AllowedIPs)
	assert.Equal(t, model.DefaultBlockedIP, m.Perimeter.BlockedIP)
	assert.Equal(t, model.DefaultSessionTimeout, m.Perimeter.SessionTimeout)
	assert.Equal(t, []model.RBACConfig{
		{DatabaseName: "MKT_DB", SchemaName: "CRM"},
		{DatabaseName: "SALES", SchemaName: "ORDERS"},
	}, m.RBAC)
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "rbac: [unterminated")
	_, err = LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestWriteManifest_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ManifestFilename)

	require.NoError(t, WriteManifest(DefaultManifest(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# Snowguard manifest."))
	assert.Contains(t, string(raw), "company_name: acme")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultManifest(), m)
}

func TestValidate(t *testing.T) {
	m := &Manifest{
		Perimeter: &model.PerimeterConfig{CompanyName: "acme", AllowedIPs: "10.0.0.0/8", BlockedIP: "nope", SessionTimeout: 30},
		RBAC: []model.RBACConfig{
			{DatabaseName: "MKT_DB", SchemaName: "CRM"},
			{DatabaseName: "MKT-DB", SchemaName: "CRM"},
			{DatabaseName: "MKT_DB", SchemaName: "CRM"},
		},
	}

	errs := Validate(m)
	require.Len(t, errs, 3)
	assert.Equal(t, "perimeter.blocked_ip", errs[0].Field)
	assert.Equal(t, "rbac[1].database_name", errs[1].Field)
	assert.Equal(t, "rbac[2].database_name", errs[2].Field)
	assert.Contains(t, errs[2].Message, "MKT_DB is already listed as rbac[0]")
}

func TestValidate_DefaultManifest(t *testing.T) {
	assert.Empty(t, Validate(DefaultManifest()))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	var steps []string

	result, err := Generate(DefaultManifest(), dir, func(msg string) { steps = append(steps, msg) })
	require.NoError(t, err)
	assert.NotEmpty(t, steps)

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		"security_perimeter_setup_acme.sql",
		"rbac_setup_MKT_DB_CRM.sql",
		"rbac_diagram_MKT_DB_CRM.dot",
		"rbac_diagram_MKT_DB_CRM.mmd",
	}, paths)

	for _, p := range append(paths, ManifestFilename) {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, p)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "rbac_setup_MKT_DB_CRM.sql"))
	require.NoError(t, err)
	want, err := script.RBAC(model.RBACConfig{DatabaseName: "MKT_DB", SchemaName: "CRM"})
	require.NoError(t, err)
	assert.Equal(t, want, string(raw))
}

func TestGenerate_PreservesOrder(t *testing.T) {
	m := &Manifest{RBAC: []model.RBACConfig{
		{DatabaseName: "C", SchemaName: "S"},
		{DatabaseName: "A", SchemaName: "S"},
		{DatabaseName: "B", SchemaName: "S"},
	}}

	result, err := Generate(m, t.TempDir(), nil)
	require.NoError(t, err)
	require.Len(t, result.Files, 9)
	assert.Equal(t, "rbac_setup_C_S.sql", result.Files[0].Path)
	assert.Equal(t, "rbac_setup_A_S.sql", result.Files[3].Path)
	assert.Equal(t, "rbac_setup_B_S.sql", result.Files[6].Path)
}

func TestGenerate_InvalidWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m := &Manifest{RBAC: []model.RBACConfig{
		{DatabaseName: "MKT_DB", SchemaName: "CRM"},
		{DatabaseName: "MKT_DB"},
	}}

	_, err := Generate(m, dir, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMissingInput))

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_Empty(t *testing.T) {
	_, err := Generate(&Manifest{}, t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrEmptyManifest)
}

func TestGenerateFromManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFilename)
	writeFile(t, path, "rbac:\n  - database_name: SALES\n    schema_name: ORDERS\n")

	result, err := GenerateFromManifest(path, filepath.Join(dir, "out"), nil)
	require.NoError(t, err)
	require.Len(t, result.Files, 3)
	assert.Equal(t, "rbac_setup_SALES_ORDERS.sql", result.Files[0].Path)
	assert.True(t, filepath.IsAbs(result.OutputDir))
}

func TestValidate_OneEntryPerDatabase(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.RBACConfig
		field   string
		message string
	}{
		{
			name:    "same database, different schema",
			entries: []model.RBACConfig{{DatabaseName: "MKT_DB", SchemaName: "CRM"}, {DatabaseName: "MKT_DB", SchemaName: "SALES"}},
			field:   "rbac[1].database_name",
			message: "database MKT_DB is already listed as rbac[0]",
		},
		{
			name:    "case-insensitive",
			entries: []model.RBACConfig{{DatabaseName: "MKT_DB", SchemaName: "CRM"}, {DatabaseName: "mkt_db", SchemaName: "SALES"}},
			field:   "rbac[1].database_name",
			message: "database mkt_db is already listed as rbac[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&Manifest{RBAC: tt.entries})
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Contains(t, errs[0].Message, tt.message)
			assert.ErrorIs(t, errs[0], model.ErrInvalidValue)
		})
	}
}

func TestValidate_CollidingFilenamesAreDistinctDatabases(t *testing.T) {
	m := &Manifest{RBAC: []model.RBACConfig{
		{DatabaseName: "A_B", SchemaName: "C"},
		{DatabaseName: "A", SchemaName: "B_C"},
	}}

	assert.Empty(t, Validate(m))
}

func TestGenerate_SharedDatabaseWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m := &Manifest{RBAC: []model.RBACConfig{
		{DatabaseName: "MKT_DB", SchemaName: "CRM"},
		{DatabaseName: "MKT_DB", SchemaName: "SALES"},
	}}

	_, err := Generate(m, dir, nil)
	require.Error(t, err)
	assert.Equal(t, "rbac[1].database_name", model.FieldErrors(err)[0].Field)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadManifest_ExplicitTimeoutKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFilename)
	writeFile(t, path, "perimeter:\n  company_name: acme\n  session_timeout: 0\n")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Perimeter.SessionTimeout)

	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, "perimeter.session_timeout", errs[0].Field)

	_, err = Generate(m, t.TempDir(), nil)
	assert.ErrorIs(t, err, model.ErrInvalidValue)
}
