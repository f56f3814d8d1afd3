package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edvin/snowguard/internal/core"
	"github.com/edvin/snowguard/internal/logging"
	"github.com/edvin/snowguard/internal/model"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snowguard",
		Short: "Snowflake security setup generator",
		Long: `Generate the SQL scripts that set up a Snowflake account's security perimeter
(network rules, network policy, session and authentication policies) and a role-based
access control hierarchy for a database and schema.

Nothing is executed against Snowflake: review the scripts and run them yourself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := logging.NewConsole(verbose)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newGenerateCmd(), newDiagramCmd(), newInitCmd())
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// printError lists field errors one per line.
func printError(w io.Writer, err error) {
	if fields := model.FieldErrors(err); len(fields) > 0 {
		fmt.Fprintln(w, "Error: invalid input")
		for _, fe := range fields {
			fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// services returns the generator services without metrics.
func services() *core.Services {
	return core.NewServices(nopRecorder{})
}

type nopRecorder struct{}

func (nopRecorder) Generated(string)       {}
func (nopRecorder) Rejected(string, error) {}

// writeDownload prints dl to the command output, or writes it into dir when dir is set.
func writeDownload(cmd *cobra.Command, dir string, dl *core.Download) error {
	if dir == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), dl.Content)
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, dl.Filename)
	if err := os.WriteFile(path, []byte(dl.Content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

var errSubcommand = errors.New("a subcommand is required")
