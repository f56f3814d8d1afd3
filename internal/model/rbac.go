package model

import "fmt"

// RBACPrompt is shown instead of the generated output until both names are entered.
const RBACPrompt = "Please enter a Database Name and a Schema Name to see the role hierarchy and generated SQL."

// RBACConfig holds the inputs of the RBAC page.
type RBACConfig struct {
	DatabaseName string `json:"database_name" yaml:"database_name" validate:"required,sqlident,max=245"`
	SchemaName   string `json:"schema_name" yaml:"schema_name" validate:"required,sqlident"`
}

// Ready reports whether both names are present.
func (c RBACConfig) Ready() bool {
	return c.DatabaseName != "" && c.SchemaName != ""
}

// Validate checks every field and returns nil when the config can be rendered.
func (c RBACConfig) Validate() error {
	return validateStruct(c)
}

// Filename is the download name of the generated RBAC script.
func (c RBACConfig) Filename() string {
	return fmt.Sprintf("rbac_setup_%s_%s.sql", c.DatabaseName, c.SchemaName)
}

// DiagramFilename is the name of an exported diagram with the given extension ("dot", "mmd").
func (c RBACConfig) DiagramFilename(ext string) string {
	return fmt.Sprintf("rbac_diagram_%s_%s.%s", c.DatabaseName, c.SchemaName, ext)
}

// Names returns the role and object names derived from the database and schema names.
func (c RBACConfig) Names() RoleNames {
	return NewRoleNames(c.DatabaseName, c.SchemaName)
}
