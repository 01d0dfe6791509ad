package match_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/match"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

func testCandidates() []visits.VisitRecord {
	return []visits.VisitRecord{
		{TaskName: "Standard", Discipline: visits.DisciplinePT, VisitDate: "2/17/2026", Therapist: "Diaz, Jessica", RawStatus: "Scheduled 9:00 AM"},
		{TaskName: "Standard", Discipline: visits.DisciplineOT, VisitDate: "2/17/2026", RawStatus: "Scheduled 10:00 AM"},
		{TaskName: "Evaluation", Discipline: visits.DisciplinePT, VisitDate: "2/18/2026", RawStatus: "Scheduled 8:00 AM"},
	}
}

func TestFindExactTuple(t *testing.T) {
	got, err := match.Find(context.Background(), testCandidates(), match.Target{
		Type:       "standard",
		Discipline: visits.DisciplinePT,
		Date:       "2026-02-17",
	})

	require.NoError(t, err)
	assert.Equal(t, visits.DisciplinePT, got.Discipline)
	assert.Equal(t, "Diaz, Jessica", got.Therapist)
}

func TestFindNormalizesTypeAndDate(t *testing.T) {
	got, err := match.Find(context.Background(), testCandidates(), match.Target{
		Type:       "  STANDARD ",
		Discipline: visits.DisciplineOT,
		Date:       "02/17/2026",
	})

	require.NoError(t, err)
	assert.Equal(t, visits.DisciplineOT, got.Discipline)
}

func TestFindAnyDisciplineTakesFirst(t *testing.T) {
	got, err := match.Find(context.Background(), testCandidates(), match.Target{
		Type: "standard",
		Date: "2/17/2026",
	})

	require.NoError(t, err)
	// First-match policy: the PT record appears first in list order.
	assert.Equal(t, visits.DisciplinePT, got.Discipline)
}

func TestFindUnknownDateNotFound(t *testing.T) {
	_, err := match.Find(context.Background(), testCandidates(), match.Target{
		Type:       "standard",
		Discipline: visits.DisciplinePT,
		Date:       "3/1/2026",
	})

	assert.True(t, errors.IsNotFound(err))
}

func TestFindNoScheduledTime(t *testing.T) {
	candidates := []visits.VisitRecord{
		{TaskName: "Standard", Discipline: visits.DisciplinePT, VisitDate: "2/17/2026", RawStatus: "No scheduled time"},
	}

	_, err := match.Find(context.Background(), candidates, match.Target{
		Type:       "standard",
		Discipline: visits.DisciplinePT,
		Date:       "2/17/2026",
	})

	assert.True(t, errors.IsNoScheduledTime(err))
	assert.False(t, errors.IsNotFound(err))
}

func TestFindTherapistHintNeverExcludes(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	got, err := match.Find(ctx, testCandidates(), match.Target{
		Type:       "standard",
		Discipline: visits.DisciplinePT,
		Date:       "2/17/2026",
		Therapist:  "CARLOS RIVERA (PT)",
	})

	// Mismatch logs a warning but the candidate still wins.
	require.NoError(t, err)
	assert.Equal(t, "Diaz, Jessica", got.Therapist)
	assert.True(t, tl.Contains("different therapist"))
}

func TestFindTherapistHintCorroborated(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	_, err := match.Find(ctx, testCandidates(), match.Target{
		Type:       "standard",
		Discipline: visits.DisciplinePT,
		Date:       "2/17/2026",
		Therapist:  "JESSICA DIAZ (PTA)",
	})

	require.NoError(t, err)
	assert.False(t, tl.Contains("different therapist"))
}

func TestFindEmptyCandidates(t *testing.T) {
	_, err := match.Find(context.Background(), nil, match.Target{Type: "standard", Date: "2/17/2026"})
	assert.True(t, errors.IsNotFound(err))
}
