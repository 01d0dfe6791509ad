package reconcile

import (
	"context"
	"fmt"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/match"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// insertMissing finds System-B visits without a System-A counterpart and
// creates the eligible ones, one candidate at a time. Eligibility: the
// visit is reconcilable, its key is absent from the outstanding set, and
// its live status resolves to exactly SCHEDULED. A failed therapist match
// aborts only that candidate.
func (r *Reconciler) insertMissing(ctx context.Context, patient string, outstanding, scheduled []visits.VisitRecord, res *Result) error {
	log := logging.FromContext(ctx)
	keys := visits.KeySet(outstanding)

	var therapists []string
	therapistsLoaded := false

	for _, b := range scheduled {
		if !b.Reconcilable() || b.Validate() != nil {
			continue
		}
		// Membership is tested in System-A vocabulary. Every synonym label
		// counts: an outstanding visit recorded under any label mapping to
		// the candidate's (type, discipline) already represents it.
		if r.represented(keys, b) {
			continue
		}

		clog := log.With().Str("candidate", b.TaskName).Str("date", b.EffectiveDate()).Logger()
		target := match.Target{Type: b.TaskName, Discipline: b.Discipline, Date: b.EffectiveDate()}

		// Status is read from the live view, not the listing snapshot.
		raw, err := r.schedule.ResolveStatus(ctx, patient, target)
		if err != nil {
			clog.Warn().Err(err).Msg("Could not resolve live status; skipping candidate")
			continue
		}
		if status := visits.ResolveStatus(raw); status != visits.StatusScheduled {
			clog.Debug().Str("status", string(status)).Msg("Candidate not in scheduled state; skipping")
			continue
		}

		if !therapistsLoaded {
			therapists, err = r.tasks.ListTherapists(ctx)
			if err != nil {
				return err
			}
			therapistsLoaded = true
		}

		matched, err := match.Therapist(ctx, b.Therapist, therapists)
		if err != nil {
			res.InsertsSkipped++
			clog.Warn().Err(err).Msg("Skipping insertion: therapist unmatched")
			continue
		}

		label := r.taskLabel(b)
		date := normalize.DateMDY(b.EffectiveDate())
		ok, err := r.tasks.InsertVisit(ctx, patient, label, date, matched)
		if err != nil {
			res.InsertsSkipped++
			clog.Error().Err(err).Msg("Insert failed; continuing with next candidate")
			continue
		}
		if !ok {
			res.InsertsSkipped++
			clog.Warn().Msg("Insert was not accepted")
			continue
		}

		res.VisitsInserted++
		r.sink.Record(patient, fmt.Sprintf("Created %s on %s for %s", label, date, matched))
	}
	return nil
}

// represented reports whether the outstanding key set already contains the
// candidate under any System-A label that maps to its (type, discipline),
// or under the normalized System-B label itself (the unmapped fallback).
func (r *Reconciler) represented(keys map[string]struct{}, b visits.VisitRecord) bool {
	date := b.EffectiveDate()
	for _, label := range r.mappings.ReverseLabels(b.TaskName, b.Discipline) {
		if _, ok := keys[visits.Key(label, date)]; ok {
			return true
		}
	}
	_, ok := keys[visits.Key(normalize.Text(b.TaskName), date)]
	return ok
}

// taskLabel derives the System-A task label for a System-B visit via the
// reverse mapping, falling back to the normalized System-B label itself.
func (r *Reconciler) taskLabel(b visits.VisitRecord) string {
	if label, ok := r.mappings.ReverseLookup(b.TaskName, b.Discipline); ok {
		return label
	}
	return normalize.Text(b.TaskName)
}
