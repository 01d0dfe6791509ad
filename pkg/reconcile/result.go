package reconcile

import (
	"fmt"
	"time"
)

// Result aggregates what a reconciliation run did.
type Result struct {
	// Patients is the number of patients the run visited.
	Patients int

	// VisitsProcessed counts outstanding visits entering the per-visit
	// workflow after deduplication.
	VisitsProcessed int

	// VisitsCompleted counts visits that reached the completed state.
	VisitsCompleted int

	// VisitsSkipped counts benign skips (no scheduled time yet).
	VisitsSkipped int

	// VisitsFailed counts visits whose workflow failed and was downgraded
	// to a log entry.
	VisitsFailed int

	// VisitsInserted counts System-B visits created in System A.
	VisitsInserted int

	// InsertsSkipped counts insertion candidates skipped (therapist
	// unmatched or soft insert failure).
	InsertsSkipped int

	// DocumentsFetched counts newly fetched document artifacts; reused
	// artifacts are not counted again.
	DocumentsFetched int

	// DocumentsAttached counts artifacts attached to System-A visits.
	DocumentsAttached int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Summary renders a one-line human-readable digest of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"%d patients: %d visits completed, %d skipped, %d failed, %d inserted, %d documents attached in %s",
		r.Patients, r.VisitsCompleted, r.VisitsSkipped, r.VisitsFailed,
		r.VisitsInserted, r.DocumentsAttached, r.Duration.Round(time.Millisecond),
	)
}
