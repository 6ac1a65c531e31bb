package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/doclint/internal/config"
	"github.com/spf13/cobra"
)

// errDiagnostics makes the process exit 1 without printing anything more.
var errDiagnostics = errors.New("diagnostics reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "doclint",
		Short:         "Structural linter for provider documentation pages",
		Long:          `doclint checks Markdown provider pages for required sections, section order, argument and attribute lists, front matter, and line and number formatting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("rules", "", "TOML rule configuration file")
	root.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newGraphCmd())
	return root
}

func main() {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, errDiagnostics):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "doclint:", err)
		os.Exit(2)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: config.ParseLevel(level)}))
}
