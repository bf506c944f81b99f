// =============================================================================
// docctl - Project Orchestrator
// =============================================================================
//
// Drives one full run over a project: verifies the persistent tables,
// enumerates pending transmittals sorted by name, and pushes each one
// through the intake pipeline strictly one at a time.
//
// PIPELINE (per transmittal):
//   1. Locate the manifest workbook (<dirname>.xlsx); absent -> reject
//   2. Rebuild the version history index from the transmittal database
//   3. Read the manifest rows (header contract enforced) -> mismatch: reject
//   4. Validate every row, aggregating every error
//   5. Accepted: append history, merge document list, sync the mirror,
//      move to Accepted Transmittals
//      Rejected: move to Rejected Transmittals, stores untouched
//
// FAILURE SEMANTICS:
//   A transmittal's own validation failures reject only that transmittal -
//   the run continues with the next one. A header mismatch on either
//   persistent table aborts the run before any transmittal is touched.
//   Mirror sync problems are warnings; acceptance is already recorded when
//   sync runs.
//
// =============================================================================

package project

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/docctl/docctl/internal/reconcile"
	"github.com/docctl/docctl/internal/tabular"
	"github.com/docctl/docctl/internal/transmittal"
	"github.com/docctl/docctl/pkg/utils"
)

// ManifestExt is the manifest workbook extension; the manifest inside a
// transmittal directory is named "<dirname>" + ManifestExt.
const ManifestExt = ".xlsx"

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result is the outcome of processing a single transmittal.
type Result struct {
	// Name is the transmittal directory name.
	Name string

	// Accepted reports the accept/reject decision.
	Accepted bool

	// MovedTo is the final location of the transmittal directory. Empty on
	// a dry run.
	MovedTo string

	// Errors holds the collected diagnostics for a rejected transmittal.
	Errors []string
}

// Summary describes one full run.
type Summary struct {
	// RunID identifies the run in logs and the report filename.
	RunID string

	// Start and End bound the run.
	Start time.Time
	End   time.Time

	// Results holds one entry per processed transmittal, in processing
	// order.
	Results []Result

	// AcceptedCount and RejectedCount tally the decisions.
	AcceptedCount int
	RejectedCount int
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner processes every pending transmittal of one project.
type Runner struct {
	// Layout is the resolved project layout.
	Layout *Layout

	// Logger receives all run diagnostics.
	Logger *slog.Logger

	// RunID identifies this run.
	RunID string

	// DryRun validates and reports without mutating the stores, the mirror,
	// or moving any transmittal.
	DryRun bool
}

// Run executes one full pass over the pending transmittals.
func (r *Runner) Run() (*Summary, error) {
	summary := &Summary{RunID: r.RunID, Start: time.Now()}
	defer func() { summary.End = time.Now() }()

	// A schema problem on either persistent table must surface before any
	// transmittal is processed.
	if err := r.verifyTables(); err != nil {
		return summary, err
	}

	pending, err := r.pendingTransmittals()
	if err != nil {
		return summary, err
	}
	if len(pending) == 0 {
		r.Logger.Info("no pending transmittals found", "dir", r.Layout.Pending)
		return summary, nil
	}

	for _, name := range pending {
		r.Logger.Info("processing transmittal", "transmittal", name)
		result, err := r.processTransmittal(filepath.Join(r.Layout.Pending, name))
		if err != nil {
			return summary, fmt.Errorf("transmittal %s: %w", name, err)
		}
		summary.Results = append(summary.Results, result)
		if result.Accepted {
			summary.AcceptedCount++
		} else {
			summary.RejectedCount++
		}
	}

	return summary, nil
}

// verifyTables opens both persistent tables, creating them with canonical
// headers when absent. A *tabular.HeaderMismatchError here is fatal to the
// whole run.
func (r *Runner) verifyTables() error {
	db, err := tabular.Open(r.Layout.Database, tabular.DatabaseHeaders)
	if err != nil {
		return err
	}
	db.Close()

	list, err := tabular.Open(r.Layout.DocumentList, tabular.TransmittalHeaders)
	if err != nil {
		return err
	}
	list.Close()
	return nil
}

// pendingTransmittals lists the pending subdirectories sorted by name.
func (r *Runner) pendingTransmittals() ([]string, error) {
	entries, err := os.ReadDir(r.Layout.Pending)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending directory %s: %w", r.Layout.Pending, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// =============================================================================
// PER-TRANSMITTAL PIPELINE
// =============================================================================

// processTransmittal drives one transmittal through validation and, when
// accepted, reconciliation. The returned error is fatal to the run;
// rejections are reported through the Result.
func (r *Runner) processTransmittal(dir string) (Result, error) {
	name := filepath.Base(dir)
	result := Result{Name: name}
	logger := r.Logger.With("transmittal", name)

	manifestName := name + ManifestExt
	manifestPath := filepath.Join(dir, manifestName)
	if !utils.FileExists(manifestPath) {
		verr := &transmittal.ValidationError{
			Kind:    transmittal.KindMissingManifest,
			Message: fmt.Sprintf("missing manifest %s", manifestName),
		}
		logger.Error("transmittal rejected", "error", verr.Error())
		result.Errors = append(result.Errors, verr.Error())
		return r.reject(dir, result)
	}

	// Rebuilt fresh for every transmittal so it reflects everything
	// accepted earlier in the same run.
	history, err := transmittal.LoadHistory(r.Layout.Database)
	if err != nil {
		return result, err
	}

	raw, err := tabular.ReadManifest(manifestPath, tabular.TransmittalHeaders)
	if err != nil {
		var mismatch *tabular.HeaderMismatchError
		if errors.As(err, &mismatch) {
			verr := &transmittal.ValidationError{
				Kind:    transmittal.KindHeaderMismatch,
				Message: mismatch.Detail,
			}
			logger.Error("transmittal rejected", "error", verr.Error())
			result.Errors = append(result.Errors, verr.Error())
		} else {
			logger.Error("transmittal rejected", "error", err.Error())
			result.Errors = append(result.Errors, err.Error())
		}
		return r.reject(dir, result)
	}

	rows := make([]transmittal.Row, len(raw))
	for i, record := range raw {
		rows[i] = transmittal.Row(record)
	}

	validator := &transmittal.Validator{
		Dir:          dir,
		ManifestName: manifestName,
		History:      history,
	}
	outcome := validator.ValidateAll(rows)

	for _, verr := range outcome.Errors {
		logger.Error("validation error", "error", verr.Error())
		result.Errors = append(result.Errors, verr.Error())
	}

	if !outcome.Accepted() {
		logger.Error("transmittal rejected", "errors", len(outcome.Errors))
		return r.reject(dir, result)
	}
	result.Accepted = true

	if r.DryRun {
		logger.Info("transmittal would be accepted", "rows", len(outcome.Rows))
		return result, nil
	}

	writer := &reconcile.Writer{
		DatabasePath:     r.Layout.Database,
		DocumentListPath: r.Layout.DocumentList,
		Logger:           logger,
	}
	if err := writer.AppendHistory(outcome.Rows); err != nil {
		return result, err
	}
	if err := writer.MergeDocumentList(outcome.Rows); err != nil {
		return result, err
	}

	syncer := &reconcile.Syncer{CurrentDir: r.Layout.CurrentFiles, Logger: logger}
	if err := syncer.Sync(dir, outcome.Rows); err != nil {
		// Acceptance is already recorded; a broken mirror is repaired on
		// the next accepted submission of the same documents.
		logger.Warn("current files sync incomplete", "error", err)
	}

	moved, err := utils.MoveTransmittal(dir, r.Layout.Accepted)
	if err != nil {
		return result, err
	}
	result.MovedTo = moved
	logger.Info("transmittal accepted", "moved_to", moved, "rows", len(outcome.Rows))
	return result, nil
}

// reject relocates a failed transmittal under the rejected root. Dry runs
// leave the directory in place.
func (r *Runner) reject(dir string, result Result) (Result, error) {
	if r.DryRun {
		return result, nil
	}

	moved, err := utils.MoveTransmittal(dir, r.Layout.Rejected)
	if err != nil {
		return result, err
	}
	result.MovedTo = moved
	r.Logger.Info("transmittal moved to rejected", "transmittal", result.Name, "moved_to", moved)
	return result, nil
}
