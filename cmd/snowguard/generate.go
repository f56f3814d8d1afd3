package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvin/snowguard/internal/model"
	"github.com/edvin/snowguard/internal/setup"
)

func newGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate setup scripts",
		Long:  `Generate the perimeter or RBAC setup script, or every file listed in a manifest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("generate: %w (perimeter, rbac, manifest)", errSubcommand)
		},
	}
	generateCmd.AddCommand(newGeneratePerimeterCmd(), newGenerateRBACCmd(), newGenerateManifestCmd())
	return generateCmd
}

func newGeneratePerimeterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perimeter",
		Short: "Generate the security perimeter script",
		Long: `Generate the security perimeter script: network rules for the allowed and blocked
IPs, a network policy, a session policy and an MFA authentication policy.

Example:
  snowguard generate perimeter --company acme
  snowguard generate perimeter --company acme --allowed-ips 10.0.0.0/8 --session-timeout 60 -o out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			company, _ := cmd.Flags().GetString("company")
			allowed, _ := cmd.Flags().GetString("allowed-ips")
			blocked, _ := cmd.Flags().GetString("blocked-ip")
			timeout, _ := cmd.Flags().GetInt("session-timeout")
			output, _ := cmd.Flags().GetString("output")

			cfg := model.PerimeterConfig{
				CompanyName:    company,
				AllowedIPs:     allowed,
				BlockedIP:      blocked,
				SessionTimeout: timeout,
			}
			dl, err := services().Perimeter.Script(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return writeDownload(cmd, output, dl)
		},
	}
	cmd.Flags().StringP("company", "c", "", "Company name, used as prefix of every object name")
	cmd.Flags().String("allowed-ips", model.DefaultAllowedIPs, "Allowed IPv4 address or CIDR range")
	cmd.Flags().String("blocked-ip", model.DefaultBlockedIP, "Blocked IPv4 address")
	cmd.Flags().Int("session-timeout", model.DefaultSessionTimeout,
		fmt.Sprintf("Session idle timeout in minutes (%d-%d)", model.MinSessionTimeout, model.MaxSessionTimeout))
	cmd.Flags().StringP("output", "o", "", "Output directory (default: stdout)")
	return cmd
}

func newGenerateRBACCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rbac",
		Short: "Generate the RBAC script for a database and schema",
		Long: `Generate the RBAC script for a database and schema: warehouse, admin role,
database roles, a managed access schema, schema access roles and functional roles.

Example:
  snowguard generate rbac --database MKT_DB --schema CRM`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dl, err := services().RBAC.Script(cmd.Context(), rbacFlags(cmd))
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			return writeDownload(cmd, output, dl)
		},
	}
	addRBACFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output directory (default: stdout)")
	return cmd
}

func newGenerateManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Generate every script and diagram listed in a manifest",
		Long: `Generate the perimeter script and, for each database/schema pair, the RBAC script
and diagrams (Graphviz .dot and Mermaid .mmd) listed in a manifest.

Every entry is validated first; nothing is written if any entry is invalid.

Example:
  snowguard init
  snowguard generate manifest -f snowguard.yaml -o out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			output, _ := cmd.Flags().GetString("output")

			stderr := cmd.ErrOrStderr()
			result, err := setup.GenerateFromManifest(file, output, func(msg string) {
				fmt.Fprintln(stderr, msg)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d file(s) in %s:\n", len(result.Files), result.OutputDir)
			for _, f := range result.Files {
				fmt.Fprintf(out, "  %s\n", f.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", setup.ManifestFilename, "Manifest file")
	cmd.Flags().StringP("output", "o", ".", "Output directory")
	return cmd
}

func addRBACFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("database", "d", "", "Database name, e.g. MKT_DB")
	cmd.Flags().StringP("schema", "s", "", "Schema name, e.g. CRM")
}

func rbacFlags(cmd *cobra.Command) model.RBACConfig {
	database, _ := cmd.Flags().GetString("database")
	schema, _ := cmd.Flags().GetString("schema")
	return model.RBACConfig{DatabaseName: database, SchemaName: schema}
}
