// =============================================================================
// docctl - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main entry point of the
// intake pipeline. It loads the configuration, resolves the project layout,
// and drives every pending transmittal through validation and
// reconciliation.
//
// COMMAND USAGE:
//   docctl process [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration (defaults when no file is present)
//   2. Resolve the project layout, creating missing directories
//   3. Verify the persistent tables' header contracts
//   4. For each pending transmittal, sorted by name, one at a time:
//      a. Validate the manifest (all errors aggregated)
//      b. Accepted: append history, merge document list, sync the mirror,
//         move to Accepted Transmittals
//      c. Rejected: move to Rejected Transmittals
//   5. Write a run report under Reports
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docctl/docctl/internal/config"
	"github.com/docctl/docctl/internal/logging"
	"github.com/docctl/docctl/internal/project"
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process all pending transmittals in the project",
	Long: `The process command enumerates the Pending Transmittals directory and runs
each transmittal through validation and reconciliation, strictly one at a
time.

A transmittal is all-or-nothing: every row of its manifest is validated and
every error is logged, but a single invalid row rejects the entire batch.
Accepted transmittals are appended to the transmittal database, merged into
the document list, mirrored into Current Files, and moved to Accepted
Transmittals. Rejected transmittals are moved to Rejected Transmittals with
the stores left untouched.

A header mismatch on either persistent table aborts the run before any
transmittal is processed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(false)
	},
}

// init registers the process command with the root command.
func init() {
	rootCmd.AddCommand(processCmd)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess executes one full run. With dryRun set, validation results are
// reported but nothing is mutated or moved.
func runProcess(dryRun bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	layout, err := project.NewLayout(projectRoot, cfg)
	if err != nil {
		return fmt.Errorf("failed to prepare project layout: %w", err)
	}

	logger, closeLog, err := logging.New(layout.LogFile, verbose || cfg.LogLevel == "debug")
	if err != nil {
		return err
	}
	defer closeLog()

	runID := uuid.New().String()
	runner := &project.Runner{
		Layout: layout,
		Logger: logger.With("run_id", runID),
		RunID:  runID,
		DryRun: dryRun,
	}

	summary, err := runner.Run()
	if err != nil {
		return err
	}

	printSummary(summary, dryRun)

	if !dryRun {
		reportPath, err := project.WriteRunReport(summary, layout.Reports)
		if err != nil {
			return err
		}
		if reportPath != "" {
			fmt.Printf("Run report: %s\n", reportPath)
		}
	}

	return nil
}

// printSummary prints the run outcome to the console.
func printSummary(summary *project.Summary, dryRun bool) {
	title := "Processing Complete"
	if dryRun {
		title = "Validation Complete (dry run)"
	}

	fmt.Printf("\n=== %s ===\n", title)
	fmt.Printf("Transmittals: %d\n", len(summary.Results))
	fmt.Printf("Accepted:     %d\n", summary.AcceptedCount)
	fmt.Printf("Rejected:     %d\n", summary.RejectedCount)
	fmt.Printf("Time elapsed: %s\n", summary.End.Sub(summary.Start))

	for _, result := range summary.Results {
		if result.Accepted {
			fmt.Printf("  ✓ %s\n", result.Name)
		} else {
			fmt.Printf("  ✗ %s\n", result.Name)
			for _, msg := range result.Errors {
				fmt.Printf("      %s\n", msg)
			}
		}
	}
}
