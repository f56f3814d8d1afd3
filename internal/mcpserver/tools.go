package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/docs"
	"github.com/edvin/snowguard/internal/model"
)

// Tool names.
const (
	ToolPerimeterSQL = "generate_perimeter_sql"
	ToolRBACSQL      = "generate_rbac_sql"
	ToolRBACDiagram  = "describe_rbac_diagram"
	ToolDocs         = "get_documentation"
)

// BuildTools returns the generator tools backed by services, with overrides from cfg applied.
func BuildTools(cfg *Config, services *core.Services) []server.ServerTool {
	t := &tools{services: services}

	defs := []struct {
		name    string
		desc    string
		opts    []mcp.ToolOption
		handler server.ToolHandlerFunc
	}{
		{
			name: ToolPerimeterSQL,
			desc: "Generate the Snowflake security perimeter SQL script: network rules for allowed and blocked IPs, " +
				"a network policy, a session policy with an idle timeout and an MFA authentication policy.",
			opts: []mcp.ToolOption{
				mcp.WithString("company_name", mcp.Required(), mcp.Description("Company name used as prefix of every object name")),
				mcp.WithString("allowed_ips", mcp.Description("Allowed IPv4 address or CIDR range (default "+model.DefaultAllowedIPs+")")),
				mcp.WithString("blocked_ip", mcp.Description("Blocked IPv4 address (default "+model.DefaultBlockedIP+")")),
				mcp.WithNumber("session_timeout", mcp.Description(fmt.Sprintf("Session idle timeout in minutes, %d to %d (default %d)",
					model.MinSessionTimeout, model.MaxSessionTimeout, model.DefaultSessionTimeout))),
			},
			handler: t.perimeterSQL,
		},
		{
			name: ToolRBACSQL,
			desc: "Generate the Snowflake RBAC SQL script for a database and schema: warehouse, admin role, " +
				"database roles, a managed access schema, schema access roles and analyst/developer/support roles.",
			opts:    rbacParams(),
			handler: t.rbacSQL,
		},
		{
			name: ToolRBACDiagram,
			desc: "Describe the RBAC role hierarchy generated for a database and schema as a graph " +
				"(json nodes and edges, Graphviz dot or Mermaid).",
			opts: append(rbacParams(),
				mcp.WithString("format",
					mcp.Description("Output format (default json)"),
					mcp.Enum(core.FormatJSON, core.FormatDOT, core.FormatMermaid),
				),
			),
			handler: t.rbacDiagram,
		},
		{
			name: ToolDocs,
			desc: "Return the Snowflake security documentation shown next to the generators, as markdown.",
			opts: []mcp.ToolOption{
				mcp.WithString("page", mcp.Required(),
					mcp.Description("Documentation page"),
					mcp.Enum(docs.StaticPages()...),
				),
			},
			handler: t.documentation,
		},
	}

	var out []server.ServerTool
	for _, d := range defs {
		name, desc, ok := cfg.apply(d.name, d.desc)
		if !ok {
			continue
		}
		opts := append([]mcp.ToolOption{
			mcp.WithDescription(desc),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
		}, d.opts...)
		out = append(out, server.ServerTool{Tool: mcp.NewTool(name, opts...), Handler: d.handler})
	}
	return out
}

func rbacParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("database_name", mcp.Required(), mcp.Description("Database name, e.g. MKT_DB")),
		mcp.WithString("schema_name", mcp.Required(), mcp.Description("Schema name, e.g. CRM")),
	}
}

type tools struct {
	services *core.Services
}

func (t *tools) perimeterSQL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	cfg := t.services.Perimeter.Defaults()
	cfg.CompanyName = stringArg(args, "company_name")
	if v := stringArg(args, "allowed_ips"); v != "" {
		cfg.AllowedIPs = v
	}
	if v := stringArg(args, "blocked_ip"); v != "" {
		cfg.BlockedIP = v
	}
	if raw, ok := args["session_timeout"]; ok && raw != nil {
		n, err := intArg(raw)
		if err != nil {
			return mcp.NewToolResultError("session_timeout: " + err.Error()), nil
		}
		cfg.SessionTimeout = n
	}

	dl, err := t.services.Perimeter.Script(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(dl.Content), nil
}

func (t *tools) rbacSQL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dl, err := t.services.RBAC.Script(ctx, rbacArgs(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(dl.Content), nil
}

func (t *tools) rbacDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := rbacArgs(req)

	format := stringArg(req.GetArguments(), "format")
	if format == "" {
		format = core.FormatJSON
	}

	if format != core.FormatJSON {
		dl, err := t.services.RBAC.DiagramText(ctx, cfg, format)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(dl.Content), nil
	}

	g, err := t.services.RBAC.Diagram(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal diagram: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *tools) documentation(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := stringArg(req.GetArguments(), "page")
	if !docs.Static(page) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown page %q, expected one of %s",
			page, strings.Join(docs.StaticPages(), ", "))), nil
	}
	src, err := docs.Markdown(page, nil)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(src), nil
}

func rbacArgs(req mcp.CallToolRequest) model.RBACConfig {
	args := req.GetArguments()
	return model.RBACConfig{
		DatabaseName: stringArg(args, "database_name"),
		SchemaName:   stringArg(args, "schema_name"),
	}
}

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

var errNotWhole = errors.New("must be a whole number of minutes")

// intArg accepts JSON numbers and numeric strings. Fractional values are rejected.
func intArg(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, errNotWhole
		}
		return int(n), nil
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, errNotWhole
		}
		return i, nil
	default:
		return 0, errors.New("must be a number")
	}
}
