package visits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

func TestKeyInvariance(t *testing.T) {
	base := visits.Key("pt visit", "2/3/2026")

	assert.Equal(t, base, visits.Key("PT Visit", "02/03/2026"))
	assert.Equal(t, base, visits.Key("pt   visit", "2/3/2026"))
	assert.Equal(t, base, visits.Key(" PT VISIT ", "02/3/2026"))
	assert.Equal(t, "pt visit|2026-02-03", base)
}

func TestKeyExcludesTherapist(t *testing.T) {
	a := visits.VisitRecord{TaskName: "PT Visit", VisitDate: "2/17/2026", Therapist: "JESSICA DIAZ (PTA)"}
	b := visits.VisitRecord{TaskName: "pt visit", VisitDate: "02/17/2026", Therapist: "Diaz, Jessica"}

	assert.Equal(t, a.Key(), b.Key())
}

func TestEffectiveDateFallsBackToTarget(t *testing.T) {
	v := visits.VisitRecord{TaskName: "ot eval", TargetDate: "3/1/2026"}
	assert.Equal(t, "3/1/2026", v.EffectiveDate())

	v.VisitDate = "3/2/2026"
	assert.Equal(t, "3/2/2026", v.EffectiveDate())
}

func TestValidateRequiresADate(t *testing.T) {
	v := visits.VisitRecord{TaskName: "pt visit"}
	assert.Error(t, v.Validate())

	v.TargetDate = "3/1/2026"
	assert.NoError(t, v.Validate())

	assert.Error(t, visits.VisitRecord{VisitDate: "3/1/2026"}.Validate())
}

func TestDedupeLastWriteWinsStableOrder(t *testing.T) {
	records := []visits.VisitRecord{
		{TaskName: "PT Visit", VisitDate: "2/17/2026", Therapist: "first"},
		{TaskName: "OT Visit", VisitDate: "2/18/2026"},
		{TaskName: "pt visit", VisitDate: "02/17/2026", Therapist: "second"},
		{TaskName: "ST Visit", VisitDate: "2/19/2026"},
	}

	deduped := visits.Dedupe(records)
	require.Len(t, deduped, 3)

	// Duplicate collapsed into the first occurrence's slot, later row wins.
	assert.Equal(t, "second", deduped[0].Therapist)
	assert.Equal(t, "OT Visit", deduped[1].TaskName)
	assert.Equal(t, "ST Visit", deduped[2].TaskName)
}

func TestKeySet(t *testing.T) {
	records := []visits.VisitRecord{
		{TaskName: "PT Visit", VisitDate: "2/17/2026"},
	}
	set := visits.KeySet(records)

	_, ok := set["pt visit|2026-02-17"]
	assert.True(t, ok)
	assert.Len(t, set, 1)
}

func TestReconcilable(t *testing.T) {
	assert.True(t, visits.VisitRecord{Type: visits.TypeStandard}.Reconcilable())
	assert.True(t, visits.VisitRecord{Type: visits.TypeEvaluation}.Reconcilable())
	assert.False(t, visits.VisitRecord{Type: visits.TypeDischarge}.Reconcilable())
	assert.False(t, visits.VisitRecord{Type: visits.TypeStartOfCare}.Reconcilable())
}
