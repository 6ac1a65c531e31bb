package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/doclint/internal/check"
	"github.com/dgallion1/doclint/internal/config"
	"github.com/dgallion1/doclint/internal/pipeline"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	fileColor    = color.New(color.Bold)
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.md>...",
		Short: "Check Markdown documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Int("jobs", 4, "max documents checked in parallel")
	cmd.Flags().Bool("parallel", false, "run the rules of each checker concurrently")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	return cmd
}

// runCheck returns errDiagnostics when any document reported a diagnostic.
func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	parallel, _ := cmd.Flags().GetBool("parallel")
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	runner, err := newRunner(cmd, parallel, jobs)
	if err != nil {
		return err
	}

	docs := make([]pipeline.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, pipeline.Document{FileID: path, Content: string(data)})
	}

	reports, err := runner.CheckBatch(cmd.Context(), docs)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	for i := range reports {
		reports[i].RunID = runID
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"run_id": runID, "reports": reports}); err != nil {
			return err
		}
	} else {
		writeText(out, reports)
	}

	for _, r := range reports {
		if len(r.Diagnostics) > 0 {
			return errDiagnostics
		}
	}
	return nil
}

func newRunner(cmd *cobra.Command, parallel bool, jobs int) (*pipeline.Runner, error) {
	rulesPath, _ := cmd.Flags().GetString("rules")
	rc, err := config.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	rc.Parallel = rc.Parallel || parallel
	return pipeline.New(rc, newLogger(cmd), jobs)
}

func writeText(w io.Writer, reports []pipeline.Report) {
	var errs, warns, infos int
	for _, r := range reports {
		if len(r.Diagnostics) == 0 {
			continue
		}
		fileColor.Fprintln(w, r.FileID)
		for _, d := range r.Diagnostics {
			switch d.Severity {
			case check.SeverityError:
				errs++
				errorColor.Fprint(w, "  error   ")
			case check.SeverityWarning:
				warns++
				warningColor.Fprint(w, "  warning ")
			default:
				infos++
				infoColor.Fprint(w, "  info    ")
			}
			fmt.Fprintln(w, d.String())
		}
	}
	fmt.Fprintf(w, "%d file(s) checked: %d error(s), %d warning(s), %d info\n", len(reports), errs, warns, infos)
}
