package reconcile

import (
	"context"
	"fmt"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/documents"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/match"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// State is a stage of the per-visit reconciliation workflow.
type State string

// Workflow states, in progression order. StateFailed is terminal and
// reachable from any other state.
const (
	StateLocated           State = "located"
	StateTimesVerified     State = "times_verified"
	StateTimesFilled       State = "times_filled"
	StateAlreadyFilled     State = "already_filled"
	StateDocumentsFetched  State = "documents_fetched"
	StateDocumentsAttached State = "documents_attached"
	StateNotApplicable     State = "not_applicable"
	StateCompleted         State = "completed"
	StateFailed            State = "failed"
)

// visitFlow carries one outstanding visit through the workflow.
type visitFlow struct {
	r       *Reconciler
	patient string
	visit   visits.VisitRecord
	target  match.Target
	state   State
}

// runVisit executes the per-visit state machine for one outstanding
// System-A visit against the patient's System-B schedule.
func (r *Reconciler) runVisit(ctx context.Context, patient string, visit visits.VisitRecord, scheduled []visits.VisitRecord, res *Result) error {
	mapping := r.mappings.Lookup(visit.TaskName)
	f := &visitFlow{
		r:       r,
		patient: patient,
		visit:   visit,
		target: match.Target{
			Type:       mapping.SiteBType,
			Discipline: mapping.Discipline,
			Date:       visit.EffectiveDate(),
			Therapist:  visit.Therapist,
		},
	}
	return f.run(ctx, scheduled, res)
}

func (f *visitFlow) run(ctx context.Context, scheduled []visits.VisitRecord, res *Result) error {
	log := logging.FromContext(ctx)

	// Locate the System-B counterpart.
	f.state = StateLocated
	located, err := match.Find(ctx, scheduled, f.target)
	if err != nil {
		return f.fail(err)
	}
	status := visits.ResolveStatus(located.RawStatus)

	handle, err := f.r.tasks.LocateVisit(ctx, f.patient, f.visit.TaskName, f.visit.EffectiveDate(), f.visit.Therapist)
	if err != nil {
		return f.fail(err)
	}

	// Verify timing fields on the System-A side.
	f.state = StateTimesVerified
	filled, err := f.r.tasks.TimesFilled(ctx, handle)
	if err != nil {
		return f.fail(err)
	}

	if filled.All() {
		f.state = StateAlreadyFilled
		log.Debug().Msg("Times already filled")
	} else {
		times, err := f.r.schedule.OpenVisit(ctx, f.patient, f.target)
		if err != nil {
			return f.fail(err)
		}

		f.state = StateTimesFilled
		date := normalize.DateMDY(f.visit.EffectiveDate())
		timeIn := normalize.To24Hour(times.TimeIn)
		timeOut := normalize.To24Hour(times.TimeOut)
		if err := f.r.tasks.FillTimesAndApprove(ctx, handle, date, timeIn, timeOut); err != nil {
			return f.fail(err)
		}
		f.r.sink.Record(f.patient, fmt.Sprintf("Filled times %s-%s for %s on %s", timeIn, timeOut, f.visit.TaskName, date))
	}

	// Fetch documents regardless of category; previously fetched artifacts
	// for the same identifier are reused.
	f.state = StateDocumentsFetched
	dateISO := normalize.DateToISO(f.visit.EffectiveDate())
	identifier := documents.Name(f.target.Type, dateISO, f.patient)
	fingerprint := documents.Fingerprint(f.target.Type, dateISO)
	paths, reused, err := f.r.store.Fetch(ctx, identifier, fingerprint, func(ctx context.Context) ([]string, error) {
		return f.r.schedule.FetchDocuments(ctx, f.patient, f.target)
	})
	if err != nil {
		return f.fail(err)
	}
	if !reused {
		res.DocumentsFetched += len(paths)
	}

	// Attach only standard-category visits that were not missed.
	attachable := normalize.Text(f.target.Type) == string(visits.TypeStandard) && status != visits.StatusMissed
	if attachable && len(paths) > 0 {
		f.state = StateDocumentsAttached
		if err := f.r.tasks.AttachDocuments(ctx, handle, paths); err != nil {
			return f.fail(err)
		}
		res.DocumentsAttached += len(paths)
		f.r.sink.Record(f.patient, fmt.Sprintf("Attached %d document(s) to %s on %s", len(paths), f.visit.TaskName, normalize.DateMDY(f.visit.EffectiveDate())))
	} else {
		f.state = StateNotApplicable
		if len(paths) > 0 {
			log.Debug().
				Str("status", string(status)).
				Msg("Documents fetched only; attachment not applicable")
		}
	}

	f.state = StateCompleted
	return nil
}

// fail marks the flow failed and wraps the cause with the visit's identity
// and the stage the flow was in when it happened. Sentinel classification
// (not-found, no-scheduled-time) stays visible through the wrapper.
func (f *visitFlow) fail(err error) error {
	at := f.state
	f.state = StateFailed
	return errors.NewVisitError(f.patient, f.visit.TaskName, string(at), err)
}
