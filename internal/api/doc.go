// Package api provides the snowguard HTTP server: form pages, downloads and
// the JSON API.
//
//	@title			Snowguard API
//	@version		1.0
//	@description	Generates Snowflake security perimeter and RBAC setup scripts
//	@BasePath		/api/v1
package api
