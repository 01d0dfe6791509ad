// Package documents derives deterministic file identifiers for fetched visit
// documents and keeps re-runs idempotent: an artifact that already exists for
// a visit+date fingerprint is reused, never fetched again.
package documents

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
)

// Sanitize strips characters outside the allow-list (letters, digits, space,
// dash, underscore, parentheses, period) and collapses whitespace.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '(', r == ')', r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Name derives the deterministic identifier for a visit's documents:
// sanitized visit type, the dashed date, and the sanitized patient name.
func Name(visitType, dateISO, patient string) string {
	return Sanitize(visitType) + "-" + dateISO + "-" + Sanitize(patient)
}

// Fingerprint is the visit+date prefix shared by every identifier produced
// for the same visit regardless of patient-name spelling.
func Fingerprint(visitType, dateISO string) string {
	return Sanitize(visitType) + "-" + dateISO
}

// FetchFunc produces document artifacts and returns their file paths.
type FetchFunc func(ctx context.Context) ([]string, error)

// Store tracks fetched artifacts under a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIOError("create", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Existing returns the paths of already-fetched artifacts for the given
// identifier: an exact base-name match first, then a normalized match, then
// any artifact sharing the identifier's visit+date fingerprint.
func (s *Store) Existing(identifier, fingerprint string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.NewIOError("read", s.dir, err)
	}

	wantExact := identifier
	wantLoose := normalize.Text(identifier)
	wantPrefix := normalize.Text(fingerprint)

	var exact, loose, prefixed []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		full := filepath.Join(s.dir, e.Name())
		switch {
		case base == wantExact:
			exact = append(exact, full)
		case normalize.Text(base) == wantLoose:
			loose = append(loose, full)
		case wantPrefix != "" && strings.HasPrefix(normalize.Text(base), wantPrefix):
			prefixed = append(prefixed, full)
		}
	}

	if len(exact) > 0 {
		return exact, nil
	}
	if len(loose) > 0 {
		return loose, nil
	}
	return prefixed, nil
}

// Fetch returns the artifacts for identifier, reusing existing ones when the
// visit+date fingerprint already has artifacts on disk. The boolean reports
// whether existing artifacts were reused.
func (s *Store) Fetch(ctx context.Context, identifier, fingerprint string, fetch FetchFunc) ([]string, bool, error) {
	log := logging.FromContext(ctx)

	existing, err := s.Existing(identifier, fingerprint)
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		log.Debug().
			Str("identifier", identifier).
			Int("count", len(existing)).
			Msg("Reusing previously fetched documents")
		return existing, true, nil
	}

	paths, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	log.Debug().
		Str("identifier", identifier).
		Int("count", len(paths)).
		Msg("Fetched documents")
	return paths, false, nil
}
