package reconcile

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/documents"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/systems/fixture"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

func newFlowReconciler(t *testing.T, sys *fixture.System) *Reconciler {
	t.Helper()

	store, err := documents.NewStore(t.TempDir())
	require.NoError(t, err)

	r, err := New(
		WithTaskSystem(sys),
		WithScheduleSystem(sys),
		WithDocumentStore(store),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return r
}

func TestRunVisitFailureCarriesStage(t *testing.T) {
	visit := visits.VisitRecord{
		TaskName:   "PT Visit",
		TargetDate: "2/17/2026",
		Type:       visits.TypeStandard,
		Discipline: visits.DisciplinePT,
	}

	t.Run("no counterpart fails while locating", func(t *testing.T) {
		sys := fixture.New(fixture.Data{
			Patients: []fixture.Patient{{Name: "Doe, Jane"}},
		}, t.TempDir())
		r := newFlowReconciler(t, sys)

		err := r.runVisit(context.Background(), "Doe, Jane", visit, nil, &Result{})
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))

		var verr *errors.VisitError
		require.True(t, stderrors.As(err, &verr))
		assert.Equal(t, string(StateLocated), verr.Stage)
	})

	t.Run("missing task fails while locating", func(t *testing.T) {
		scheduled := []visits.VisitRecord{{
			TaskName:   "Standard",
			VisitDate:  "02/17/2026",
			Type:       visits.TypeStandard,
			Discipline: visits.DisciplinePT,
			RawStatus:  "Scheduled 9:00 AM",
		}}
		sys := fixture.New(fixture.Data{
			Patients: []fixture.Patient{{Name: "Doe, Jane"}},
		}, t.TempDir())
		r := newFlowReconciler(t, sys)

		err := r.runVisit(context.Background(), "Doe, Jane", visit, scheduled, &Result{})
		require.Error(t, err)

		var verr *errors.VisitError
		require.True(t, stderrors.As(err, &verr))
		assert.Equal(t, string(StateLocated), verr.Stage)
	})
}
