package match

import (
	"context"
	"strings"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
)

// Therapist name scoring. System A shows therapists as free-form
// "FIRST LAST (ROLE)"; System B lists them as "Last, First". A surname
// match is mandatory; a given-name match alone is never enough.
const (
	surnameScore = 2
	givenScore   = 1

	// MinTherapistScore is the confidence floor. Scores below it mean no
	// match, and the caller skips the insertion with an explicit reason.
	MinTherapistScore = 2
)

// TherapistCandidate is the ephemeral per-attempt view of one "Last, First"
// entry from the candidate list.
type TherapistCandidate struct {
	DisplayLabel   string
	NormalizedLast string
	NormalizedRest string // post-comma segment, normalized
}

// newTherapistCandidate splits a "Last, First" entry into its comparable
// segments. Entries without a comma keep the whole text as the last name.
func newTherapistCandidate(label string) TherapistCandidate {
	text := normalize.Text(label)
	last, rest := text, ""
	if i := strings.Index(text, ","); i >= 0 {
		last = strings.TrimSpace(text[:i])
		rest = strings.TrimSpace(text[i+1:])
	}
	return TherapistCandidate{
		DisplayLabel:   label,
		NormalizedLast: last,
		NormalizedRest: rest,
	}
}

// Therapist picks the best "Last, First" candidate for a free-form
// "FIRST LAST (ROLE)" therapist string. Scoring: surname match is worth 2
// (candidate text starts with "<surname>," or its pre-comma segment equals
// the surname), a given-name substring match in the post-comma segment adds
// 1. The highest score wins; ties keep the first-seen candidate. A best
// score below MinTherapistScore returns ErrTherapistUnmatched.
func Therapist(ctx context.Context, freeform string, candidates []string) (string, error) {
	log := logging.FromContext(ctx)

	surname, given := splitFreeform(freeform)
	if surname == "" {
		return "", &errors.TherapistUnmatchedError{Input: freeform}
	}

	best := ""
	bestScore := 0
	for _, label := range candidates {
		c := newTherapistCandidate(label)

		score := 0
		if c.NormalizedLast == surname {
			score += surnameScore
		}
		if given != "" && strings.Contains(c.NormalizedRest, given) {
			score += givenScore
		}

		if score > bestScore {
			best = label
			bestScore = score
		}
	}

	if bestScore < MinTherapistScore {
		return "", &errors.TherapistUnmatchedError{
			Input:         freeform,
			BestCandidate: best,
			BestScore:     bestScore,
		}
	}

	log.Debug().
		Str("therapist", freeform).
		Str("matched", best).
		Int("score", bestScore).
		Msg("Matched therapist")
	return best, nil
}

// splitFreeform strips any parenthetical role suffix and splits the rest on
// whitespace: the final token is the surname, the remaining tokens joined
// are the given name(s).
func splitFreeform(freeform string) (surname, given string) {
	text := normalize.Text(stripRole(freeform))
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	surname = fields[len(fields)-1]
	given = strings.Join(fields[:len(fields)-1], " ")
	return surname, given
}

// stripRole removes a trailing parenthetical role marker like "(PTA)".
func stripRole(s string) string {
	if i := strings.Index(s, "("); i >= 0 {
		return s[:i]
	}
	return s
}
