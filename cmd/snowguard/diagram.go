package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvin/snowguard/internal/core"
)

func newDiagramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Print the RBAC role hierarchy as a diagram",
		Long: `Print the role hierarchy created by the RBAC script for a database and schema.

Formats: dot (Graphviz), mermaid, json (nodes and edges).

Example:
  snowguard diagram --database MKT_DB --schema CRM | dot -Tsvg > rbac.svg
  snowguard diagram -d MKT_DB -s CRM --format mermaid -o docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			cfg := rbacFlags(cmd)
			svc := services().RBAC

			if format != core.FormatJSON {
				dl, err := svc.DiagramText(cmd.Context(), cfg, format)
				if err != nil {
					return err
				}
				return writeDownload(cmd, output, dl)
			}

			g, err := svc.Diagram(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode diagram: %w", err)
			}
			return writeDownload(cmd, output, &core.Download{
				Filename: cfg.DiagramFilename("json"),
				Content:  string(data) + "\n",
			})
		},
	}
	addRBACFlags(cmd)
	cmd.Flags().String("format", core.FormatDOT, "Output format: dot, mermaid or json")
	cmd.Flags().StringP("output", "o", "", "Output directory (default: stdout)")
	return cmd
}
