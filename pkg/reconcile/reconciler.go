// Package reconcile drives the cross-system visit reconciliation run: one
// patient at a time, one outstanding visit at a time, one missing-visit
// candidate at a time, strictly sequentially. Per-visit and per-candidate
// failures are caught at their loop boundary and downgraded to log entries;
// only errors outside the patient loop are fatal.
package reconcile

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/changelog"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/documents"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/systems"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// Reconciler reconciles visit records between the task system (System A)
// and the schedule system (System B).
type Reconciler struct {
	tasks    systems.TaskSystem
	schedule systems.ScheduleSystem
	sink     changelog.Sink
	store    *documents.Store
	mappings *visits.MappingTable
	logger   *zerolog.Logger
}

// New creates a Reconciler with options. The task system, schedule system,
// and document store are required.
func New(opts ...Option) (*Reconciler, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{
		tasks:    o.tasks,
		schedule: o.schedule,
		sink:     o.sink,
		store:    o.store,
		mappings: o.mappings,
		logger:   o.logger,
	}, nil
}

// Run performs one full reconciliation pass. Patients are processed in the
// schedule system's listing order; an error inside one patient ends that
// patient only. The change log is flushed exactly once, at run end or
// before a fatal error surfaces.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	ctx = logging.WithLogger(ctx, r.logger)

	r.sink.StartRun()
	res := &Result{}

	patients, err := r.schedule.ListPatients(ctx)
	if err != nil {
		r.flush()
		return nil, err
	}

	for _, patient := range patients {
		if ctx.Err() != nil {
			r.flush()
			return res, ctx.Err()
		}

		pctx := logging.WithPatient(ctx, patient)
		res.Patients++
		if err := r.processPatient(pctx, patient, res); err != nil {
			logging.FromContext(pctx).Error().Err(err).Msg("Patient processing ended early")
		}
	}

	res.Duration = time.Since(start)
	r.logger.Info().Str("summary", res.Summary()).Msg("Run finished")

	if err := r.sink.Flush(); err != nil {
		return res, err
	}
	return res, nil
}

// flush writes the change log out on the fatal path, where the original
// error must not be masked by a flush failure.
func (r *Reconciler) flush() {
	if err := r.sink.Flush(); err != nil {
		r.logger.Error().Err(err).Msg("Change log flush failed")
	}
}

// processPatient reconciles one patient: outstanding visits first, then
// missing-visit detection and insertion.
func (r *Reconciler) processPatient(ctx context.Context, patient string, res *Result) error {
	if err := r.awaitSchedule(ctx, patient); err != nil {
		return err
	}

	scheduled, err := r.schedule.ListVisitsForPatient(ctx, patient)
	if err != nil {
		return err
	}

	outstanding, err := r.tasks.ListOutstandingVisits(ctx, patient)
	if err != nil {
		return err
	}

	// Keep only reconcilable records that carry a usable date, then
	// collapse duplicate rows in one stable pass. Discharge and
	// start-of-care tasks never enter the workflow.
	kept := make([]visits.VisitRecord, 0, len(outstanding))
	for _, v := range outstanding {
		if v.Validate() != nil || !v.Reconcilable() {
			continue
		}
		kept = append(kept, v)
	}
	kept = visits.Dedupe(kept)

	for _, v := range kept {
		res.VisitsProcessed++
		vctx := logging.WithVisit(ctx, v.TaskName)
		log := logging.FromContext(vctx)

		err := r.runVisit(vctx, patient, v, scheduled, res)
		switch {
		case err == nil:
			res.VisitsCompleted++
		case errors.IsNoScheduledTime(err):
			// Expected precondition not met yet; not an error.
			res.VisitsSkipped++
			log.Debug().Msg("Visit has no scheduled time yet; skipping")
		default:
			res.VisitsFailed++
			log.Error().Err(err).Msg("Visit workflow failed; recovering navigation")
			r.recoverNavigation(vctx, patient)
		}
	}

	return r.insertMissing(ctx, patient, kept, scheduled, res)
}

// awaitSchedule waits for the patient's schedule list, with exactly one
// recovery attempt (navigate back, re-wait) before giving up.
func (r *Reconciler) awaitSchedule(ctx context.Context, patient string) error {
	err := r.schedule.AwaitScheduleList(ctx, patient)
	if err == nil {
		return nil
	}
	logging.FromContext(ctx).Warn().Err(err).Msg("Schedule list not ready; attempting recovery")
	if nerr := r.schedule.NavigateBack(ctx, patient); nerr != nil {
		return nerr
	}
	return r.schedule.AwaitScheduleList(ctx, patient)
}

// recoverNavigation puts the session back on the patient's schedule list
// after a per-visit failure. Never assumes the current view survived the
// failed operation. Recovery failures are logged, not propagated: the
// patient loop keeps going either way.
func (r *Reconciler) recoverNavigation(ctx context.Context, patient string) {
	log := logging.FromContext(ctx)
	if err := r.schedule.NavigateBack(ctx, patient); err != nil {
		log.Warn().Err(err).Msg("Navigation recovery failed")
		return
	}
	if err := r.schedule.AwaitScheduleList(ctx, patient); err != nil {
		log.Warn().Err(err).Msg("Schedule list still not ready after recovery")
	}
}
