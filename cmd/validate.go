// =============================================================================
// docctl - Validate Command
// =============================================================================
//
// This file defines the 'validate' command: a dry run over the pending
// transmittals. Every manifest is validated with full error aggregation and
// the accept/reject decision is reported. Missing directories and persistent
// tables are still created, exactly as 'process' would create them, but no
// rows are written, the Current Files mirror is untouched and no transmittal
// directory is moved.
//
// COMMAND USAGE:
//   docctl validate [flags]
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate pending transmittals without processing them",
	Long: `The validate command runs the full validation pipeline over every pending
transmittal and reports what a real run would accept or reject, without
appending to the transmittal database, rewriting the document list, touching
the Current Files mirror, or moving any transmittal directory. Missing
project directories and persistent tables are still created so the header
contracts can be checked.

Use it to check a batch of submissions before committing them.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(true)
	},
}

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}
