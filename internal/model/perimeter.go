package model

import "fmt"

// Perimeter form defaults and bounds.
const (
	DefaultAllowedIPs     = "192.0.0.1/24"
	DefaultBlockedIP      = "184.0.23.212"
	DefaultSessionTimeout = 30

	MinSessionTimeout = 5
	MaxSessionTimeout = 480
)

// Snowflake identifiers are at most 255 characters. Name fields are capped so
// the longest name derived from them still fits: company + "_network_policy",
// database + "_DEVELOPER".
const (
	MaxIdentifierLen   = 255
	MaxCompanyNameLen  = MaxIdentifierLen - len("_network_policy")
	MaxDatabaseNameLen = MaxIdentifierLen - len("_DEVELOPER")
)

// PerimeterPrompt is shown instead of the generated output until a company name is entered.
const PerimeterPrompt = "Please enter your Company Name to see the configuration and generated SQL."

// PerimeterConfig holds the inputs of the security perimeter page.
type PerimeterConfig struct {
	CompanyName    string `json:"company_name" yaml:"company_name" validate:"required,sqlident,max=240"`
	AllowedIPs     string `json:"allowed_ips" yaml:"allowed_ips" validate:"required,ipv4range"`
	BlockedIP      string `json:"blocked_ip" yaml:"blocked_ip" validate:"required,ipv4"`
	SessionTimeout int    `json:"session_timeout" yaml:"session_timeout" validate:"min=5,max=480"`
}

// DefaultPerimeterConfig returns the form defaults. CompanyName is left empty.
func DefaultPerimeterConfig() PerimeterConfig {
	return PerimeterConfig{
		AllowedIPs:     DefaultAllowedIPs,
		BlockedIP:      DefaultBlockedIP,
		SessionTimeout: DefaultSessionTimeout,
	}
}

// Ready reports whether the page has enough input to render its output.
// Only the company name gates rendering; the other fields always carry defaults.
func (c PerimeterConfig) Ready() bool {
	return c.CompanyName != ""
}

// Validate checks every field and returns nil when the config can be rendered.
func (c PerimeterConfig) Validate() error {
	return validateStruct(c)
}

// Filename is the download name of the generated perimeter script.
func (c PerimeterConfig) Filename() string {
	return fmt.Sprintf("security_perimeter_setup_%s.sql", c.CompanyName)
}

// Names returns the object names derived from the company name.
func (c PerimeterConfig) Names() PerimeterNames {
	return NewPerimeterNames(c.CompanyName)
}
