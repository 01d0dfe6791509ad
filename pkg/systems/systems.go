// Package systems declares the adapter interfaces through which the
// reconciliation engine talks to the two record systems and nothing else.
// Locating on-screen elements, navigating views, submitting forms, and
// credential bootstrapping all live behind these interfaces; the core only
// sees the operations below and the canonical records they return.
package systems

import (
	"context"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/match"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// VisitHandle is an opaque reference to a located System-A visit row.
// Handles are only valid until the next navigation on that session.
type VisitHandle interface {
	// ID identifies the visit for log lines.
	ID() string
}

// TimesFilled reports which timing fields are already populated on the
// System-A side of a visit.
type TimesFilled struct {
	Date    bool
	TimeIn  bool
	TimeOut bool
}

// All reports whether every timing field is populated.
func (t TimesFilled) All() bool {
	return t.Date && t.TimeIn && t.TimeOut
}

// VisitTimes is the timing view of an opened System-B visit.
type VisitTimes struct {
	TimeIn    string
	TimeOut   string
	RawStatus string
}

// TaskSystem is the System-A adapter: the patient/task manager owning the
// record of truth for patient tasks.
type TaskSystem interface {
	// ListOutstandingVisits returns the patient's outstanding visits in
	// listing order. Records are validated and normalized at this boundary.
	ListOutstandingVisits(ctx context.Context, patient string) ([]visits.VisitRecord, error)

	// ListTherapists returns the system's therapist labels in "Last, First"
	// format, for fuzzy matching during insertion.
	ListTherapists(ctx context.Context) ([]string, error)

	// LocateVisit finds the visit row for a task. Fails with ErrNotFound.
	LocateVisit(ctx context.Context, patient, taskName, date, therapist string) (VisitHandle, error)

	// TimesFilled reports which timing fields the visit already has.
	TimesFilled(ctx context.Context, handle VisitHandle) (TimesFilled, error)

	// FillTimesAndApprove writes the date and times back and approves the
	// visit's timing.
	FillTimesAndApprove(ctx context.Context, handle VisitHandle, date, timeIn, timeOut string) error

	// AttachDocuments attaches the given files to the visit.
	AttachDocuments(ctx context.Context, handle VisitHandle, filePaths []string) error

	// InsertVisit creates a new visit task. A false return is a soft
	// failure (the system rejected the therapist or the insert silently
	// did not take); the caller logs and moves on.
	InsertVisit(ctx context.Context, patient, taskLabel, date, therapistLabel string) (bool, error)
}

// ScheduleSystem is the System-B adapter: the visit-scheduling calendar.
type ScheduleSystem interface {
	// ListPatients returns patient names in the order the run processes them.
	ListPatients(ctx context.Context) ([]string, error)

	// ListVisitsForPatient returns the patient's scheduled visits.
	ListVisitsForPatient(ctx context.Context, patient string) ([]visits.VisitRecord, error)

	// ResolveStatus reads the live raw status text for a visit descriptor.
	// Fails with ErrNotFound.
	ResolveStatus(ctx context.Context, patient string, target match.Target) (string, error)

	// OpenVisit opens the visit and returns its timing view. Fails with
	// ErrNotFound or ErrNoScheduledTime.
	OpenVisit(ctx context.Context, patient string, target match.Target) (VisitTimes, error)

	// FetchDocuments saves the visit's document artifacts and returns the
	// file paths.
	FetchDocuments(ctx context.Context, patient string, target match.Target) ([]string, error)

	// AwaitScheduleList waits until the patient's schedule list view is
	// ready. Fails with ErrNavigationStale.
	AwaitScheduleList(ctx context.Context, patient string) error

	// NavigateBack returns the session to the patient's schedule list after
	// a failed or completed per-visit operation.
	NavigateBack(ctx context.Context, patient string) error
}
