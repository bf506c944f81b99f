// =============================================================================
// docctl - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (docctl)
//   ├── processCmd (docctl process)
//   ├── validateCmd (docctl validate)
//   └── versionCmd (docctl version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// projectRoot is the project root directory holding the standard
// subdirectory layout. Defaults to the current working directory.
var projectRoot string

// cfgFile is the path to the optional configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docctl",
	Short: "docctl - Automate engineering document control workflows",
	Long: `docctl automates the intake of transmittal packages into an engineering
document-control workflow. It validates manifest rows, rejects non-conforming
submissions, deduplicates document versions against history, reconciles the
transmittal database and the document list, and keeps the Current Files
mirror in sync with accepted history.

A project root is expected to contain the standard subdirectories (Pending
Transmittals, Accepted Transmittals, Rejected Transmittals, Current Files,
Reports, Logs); any that are missing are created on demand.

Example Usage:
  docctl process                        # Process all pending transmittals
  docctl process --project-root ./proj  # Use a specific project root
  docctl validate                       # Dry run: validate without changes`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the persistent flags shared by every subcommand.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&projectRoot,
		"project-root",
		".",
		"Root directory of the project containing the required subfolders",
	)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"docctl.yaml",
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
