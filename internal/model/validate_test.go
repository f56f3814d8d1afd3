package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPerimeter() PerimeterConfig {
	cfg := DefaultPerimeterConfig()
	cfg.CompanyName = "acme"
	return cfg
}

func TestPerimeterValidate_Defaults(t *testing.T) {
	require.NoError(t, validPerimeter().Validate())
}

func TestPerimeterValidate_MissingCompany(t *testing.T) {
	err := DefaultPerimeterConfig().Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingInput))

	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "company_name", fields[0].Field)
	assert.Equal(t, "Company name is required", fields[0].Message)
}

func TestPerimeterValidate_UnsafeCompany(t *testing.T) {
	for _, name := range []string{
		"acme;DROP",
		"acme'",
		`acme"`,
		"ac me",
		"1acme",
		"acme-corp",
		"acme\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfg := validPerimeter()
			cfg.CompanyName = name

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIdentifier))
			assert.Equal(t, "company_name", FieldErrors(err)[0].Field)
		})
	}
}

func TestPerimeterValidate_AllowedIPs(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"10.0.0.0/8", true},
		{"192.0.0.1/24", true},
		{"203.0.113.7", true},
		{"10.0.0.0/33", false},
		{"2001:db8::/32", false},
		{"10.0.0.0/8') --", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := validPerimeter()
			cfg.AllowedIPs = tt.value

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "allowed_ips", FieldErrors(err)[0].Field)
		})
	}
}

func TestPerimeterValidate_BlockedIP(t *testing.T) {
	cfg := validPerimeter()
	cfg.BlockedIP = "1.2.3.4/32"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, "Blocked IP must be a valid IPv4 address", FieldErrors(err)[0].Message)
}

func TestPerimeterValidate_SessionTimeoutRange(t *testing.T) {
	tests := []struct {
		timeout int
		ok      bool
	}{
		{4, false},
		{5, true},
		{45, true},
		{480, true},
		{481, false},
		{0, false},
		{-1, false},
	}
	for _, tt := range tests {
		cfg := validPerimeter()
		cfg.SessionTimeout = tt.timeout

		err := cfg.Validate()
		if tt.ok {
			assert.NoError(t, err, "timeout %d", tt.timeout)
			continue
		}
		require.Error(t, err, "timeout %d", tt.timeout)
		assert.True(t, errors.Is(err, ErrInvalidValue))
		assert.Equal(t, "session_timeout", FieldErrors(err)[0].Field)
	}
}

func TestPerimeterValidate_CollectsAllErrors(t *testing.T) {
	cfg := PerimeterConfig{CompanyName: "x;y", AllowedIPs: "nope", BlockedIP: "nope", SessionTimeout: 1000}

	fields := FieldErrors(cfg.Validate())
	require.Len(t, fields, 4)
	assert.Equal(t, "company_name", fields[0].Field)
	assert.Equal(t, "allowed_ips", fields[1].Field)
	assert.Equal(t, "blocked_ip", fields[2].Field)
	assert.Equal(t, "session_timeout", fields[3].Field)
}

func TestRBACValidate(t *testing.T) {
	require.NoError(t, RBACConfig{DatabaseName: "MKT_DB", SchemaName: "CRM"}.Validate())

	err := RBACConfig{DatabaseName: "MKT_DB", SchemaName: "CRM; DROP DATABASE X"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidIdentifier))
	assert.Equal(t, "schema_name", FieldErrors(err)[0].Field)

	err = RBACConfig{SchemaName: "CRM"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingInput))
	assert.False(t, errors.Is(err, ErrInvalidIdentifier))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("_private"))
	assert.True(t, IsIdentifier("MKT_DB2"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("db.schema"))
	assert.False(t, IsIdentifier("naïve"))
}

func TestFieldErrors_NotValidation(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
	assert.Nil(t, FieldErrors(nil))
}

func TestValidate_NameLengthKeepsDerivedNamesInLimit(t *testing.T) {
	cfg := validPerimeter()
	cfg.CompanyName = strings.Repeat("a", MaxCompanyNameLen)
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Names().NetworkPolicy, MaxIdentifierLen)

	cfg.CompanyName += "a"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidIdentifier))
	assert.Equal(t, "Company name must be at most 240 characters", FieldErrors(err)[0].Message)

	rbac := RBACConfig{DatabaseName: strings.Repeat("D", MaxDatabaseNameLen), SchemaName: "CRM"}
	require.NoError(t, rbac.Validate())
	for _, name := range rbac.Names().Roles() {
		assert.LessOrEqual(t, len(name), MaxIdentifierLen, name)
	}

	rbac.DatabaseName = strings.Repeat("D", 250)
	err = rbac.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidIdentifier))
	assert.Equal(t, "database_name", FieldErrors(err)[0].Field)
}
