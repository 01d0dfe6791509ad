// Package match finds the single counterpart of a visit among a list of
// candidate records from the other system, and scores therapist names across
// the two systems' differing formats.
package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// Target describes the visit being sought among the candidates.
type Target struct {
	// Type is the expected visit-type label in the candidate system's
	// vocabulary. Compared case/whitespace-insensitively.
	Type string

	// Discipline is the expected discipline. DisciplineAny skips the check.
	Discipline visits.Discipline

	// Date is the expected date, in ISO or any slash format.
	Date string

	// Therapist is an optional corroborating hint. A mismatch is logged but
	// never excludes a candidate: type/discipline/date identity is
	// authoritative, therapist name formats are not reliable enough.
	Therapist string
}

// ID renders the target for error messages and log lines.
func (t Target) ID() string {
	disc := string(t.Discipline)
	if disc == "" {
		disc = "any"
	}
	return fmt.Sprintf("%s/%s/%s", normalize.Text(t.Type), disc, normalize.DateToISO(t.Date))
}

// noTimeMarkers are time-slot texts meaning the visit exists but has no
// time scheduled yet.
var noTimeMarkers = []string{"no scheduled time", "no time scheduled"}

// Find scans candidates in list order and returns the first one whose type,
// date, and (when required) discipline all match the target. This is a
// deterministic first-match policy, not best-match: within one patient's
// schedule at most one record exists per (type, discipline, date) tuple.
//
// Returns ErrNotFound when no candidate satisfies the predicates, and
// ErrNoScheduledTime when the matched candidate's time slot shows no time
// has been scheduled yet.
func Find(ctx context.Context, candidates []visits.VisitRecord, target Target) (visits.VisitRecord, error) {
	log := logging.FromContext(ctx)

	wantType := normalize.Text(target.Type)
	wantDate := normalize.DateToISO(target.Date)

	for _, c := range candidates {
		if normalize.Text(c.TaskName) != wantType {
			continue
		}
		if normalize.DateToISO(c.EffectiveDate()) != wantDate {
			continue
		}
		if target.Discipline != visits.DisciplineAny && c.Discipline != target.Discipline {
			continue
		}

		if target.Therapist != "" && !therapistCorroborates(target.Therapist, c.Therapist) {
			log.Warn().
				Str("target", target.ID()).
				Str("expected_therapist", target.Therapist).
				Str("candidate_therapist", c.Therapist).
				Msg("Matched visit has a different therapist")
		}

		if slot := normalize.Text(c.RawStatus); slot != "" {
			for _, marker := range noTimeMarkers {
				if strings.Contains(slot, marker) {
					return visits.VisitRecord{}, errors.NewNoScheduledTimeError(target.ID(), wantDate)
				}
			}
		}

		log.Debug().Str("target", target.ID()).Msg("Located visit")
		return c, nil
	}

	return visits.VisitRecord{}, errors.NewNotFoundError("visit", target.ID())
}

// therapistCorroborates loosely compares two therapist strings: the surname
// of one appearing in the other counts as corroboration.
func therapistCorroborates(expected, actual string) bool {
	e := normalize.Text(stripRole(expected))
	a := normalize.Text(stripRole(actual))
	if e == "" || a == "" {
		return true // nothing to corroborate against
	}
	if e == a {
		return true
	}
	eFields := strings.Fields(strings.ReplaceAll(e, ",", " "))
	for _, f := range eFields {
		if strings.Contains(a, f) {
			return true
		}
	}
	return false
}
