// =============================================================================
// docctl - Run Report
// =============================================================================
//
// Writes a plain-text summary of one run under the Reports directory:
// counts, per-transmittal outcome, and the collected diagnostics for every
// rejection. The filename carries the run timestamp and run ID so reports
// from repeated runs never collide.
//
// =============================================================================

package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// WriteRunReport writes the summary to a report file and returns its path.
// Nothing is written for a run that processed no transmittals.
func WriteRunReport(summary *Summary, reportsDir string) (string, error) {
	if len(summary.Results) == 0 {
		return "", nil
	}

	name := fmt.Sprintf("run_report_%s_%s.txt", summary.Start.Format("20060102_150405"), summary.RunID)
	path := filepath.Join(reportsDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create run report: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "docctl - Run Report\n")
	fmt.Fprintf(writer, "Run ID:    %s\n", summary.RunID)
	fmt.Fprintf(writer, "Started:   %s\n", summary.Start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Finished:  %s\n", summary.End.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Processed: %d (accepted %d, rejected %d)\n",
		len(summary.Results), summary.AcceptedCount, summary.RejectedCount)
	fmt.Fprintf(writer, "================================================================================\n\n")

	for _, result := range summary.Results {
		outcome := "REJECTED"
		if result.Accepted {
			outcome = "ACCEPTED"
		}
		fmt.Fprintf(writer, "%s  %s\n", outcome, result.Name)
		if result.MovedTo != "" {
			fmt.Fprintf(writer, "  Moved to: %s\n", result.MovedTo)
		}
		for _, msg := range result.Errors {
			fmt.Fprintf(writer, "  - %s\n", msg)
		}
		fmt.Fprintln(writer)
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush run report: %w", err)
	}
	return path, nil
}
