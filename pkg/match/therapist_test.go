package match_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/match"
)

func TestTherapistFullMatch(t *testing.T) {
	candidates := []string{"Diaz, Jessica", "Diaz, Juan", "Santos, Jessica"}

	got, err := match.Therapist(context.Background(), "JESSICA DIAZ (PTA)", candidates)

	require.NoError(t, err)
	assert.Equal(t, "Diaz, Jessica", got)
}

func TestTherapistSurnameOnlyStillMatches(t *testing.T) {
	got, err := match.Therapist(context.Background(), "JESSICA DIAZ", []string{"Diaz, Maria"})

	require.NoError(t, err)
	assert.Equal(t, "Diaz, Maria", got)
}

func TestTherapistGivenNameAloneInsufficient(t *testing.T) {
	_, err := match.Therapist(context.Background(), "JESSICA DIAZ (PTA)", []string{"Rivera, Carlos"})

	require.Error(t, err)
	assert.True(t, errors.IsTherapistUnmatched(err))

	var unmatched *errors.TherapistUnmatchedError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, 0, unmatched.BestScore)
}

func TestTherapistGivenNameBelowFloor(t *testing.T) {
	// Surname mismatch, given-name substring matches: score 1, below floor.
	_, err := match.Therapist(context.Background(), "JESSICA DIAZ", []string{"Santos, Jessica"})

	require.Error(t, err)
	var unmatched *errors.TherapistUnmatchedError
	require.ErrorAs(t, err, &unmatched)
	assert.Equal(t, 1, unmatched.BestScore)
	assert.Equal(t, "Santos, Jessica", unmatched.BestCandidate)
}

func TestTherapistTieKeepsFirstSeen(t *testing.T) {
	// Both surname-only matches score 2; the first in list order wins.
	got, err := match.Therapist(context.Background(), "ALEX DIAZ", []string{"Diaz, Maria", "Diaz, Pedro"})

	require.NoError(t, err)
	assert.Equal(t, "Diaz, Maria", got)
}

func TestTherapistMultiTokenGivenName(t *testing.T) {
	got, err := match.Therapist(context.Background(), "MARY ANN LOPEZ (OT)", []string{"Lopez, Mary Ann", "Lopez, Joe"})

	require.NoError(t, err)
	assert.Equal(t, "Lopez, Mary Ann", got)
}

func TestTherapistEmptyInput(t *testing.T) {
	_, err := match.Therapist(context.Background(), "", []string{"Diaz, Jessica"})
	assert.True(t, errors.IsTherapistUnmatched(err))

	_, err = match.Therapist(context.Background(), "(PTA)", []string{"Diaz, Jessica"})
	assert.True(t, errors.IsTherapistUnmatched(err))
}

func TestTherapistNoCandidates(t *testing.T) {
	_, err := match.Therapist(context.Background(), "JESSICA DIAZ", nil)
	assert.True(t, errors.IsTherapistUnmatched(err))
}
