package documents_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/documents"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Standard Visit", "Standard Visit"},
		{"PT/Eval: Follow*Up", "PTEval FollowUp"},
		{"Doe, Jane (PT)", "Doe Jane (PT)"},
		{"a   b\tc", "a b c"},
		{"v1.2_final-draft", "v1.2_final-draft"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, documents.Sanitize(tt.in), "input %q", tt.in)
	}
}

func TestName(t *testing.T) {
	got := documents.Name("Standard", "2026-02-17", "Doe, Jane")
	assert.Equal(t, "Standard-2026-02-17-Doe Jane", got)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "Standard-2026-02-17", documents.Fingerprint("Standard", "2026-02-17"))
}

func writeArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0o644))
	return path
}

func TestStoreExistingExactMatch(t *testing.T) {
	dir := t.TempDir()
	store, err := documents.NewStore(dir)
	require.NoError(t, err)

	want := writeArtifact(t, dir, "Standard-2026-02-17-Doe Jane.pdf")
	writeArtifact(t, dir, "Evaluation-2026-02-18-Doe Jane.pdf")

	got, err := store.Existing("Standard-2026-02-17-Doe Jane", "Standard-2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, []string{want}, got)
}

func TestStoreExistingNormalizedMatch(t *testing.T) {
	dir := t.TempDir()
	store, err := documents.NewStore(dir)
	require.NoError(t, err)

	want := writeArtifact(t, dir, "standard-2026-02-17-doe  jane.pdf")

	got, err := store.Existing("Standard-2026-02-17-Doe Jane", "Standard-2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, []string{want}, got)
}

func TestStoreExistingFingerprintMatch(t *testing.T) {
	dir := t.TempDir()
	store, err := documents.NewStore(dir)
	require.NoError(t, err)

	// Same visit+date, patient name spelled differently.
	want := writeArtifact(t, dir, "Standard-2026-02-17-Jane Doe.pdf")

	got, err := store.Existing("Standard-2026-02-17-Doe Jane", "Standard-2026-02-17")
	require.NoError(t, err)
	assert.Equal(t, []string{want}, got)
}

func TestStoreFetchIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store, err := documents.NewStore(dir)
	require.NoError(t, err)

	calls := 0
	fetch := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{writeArtifact(t, dir, "Standard-2026-02-17-Doe Jane.pdf")}, nil
	}

	ctx := context.Background()
	first, reused, err := store.Fetch(ctx, "Standard-2026-02-17-Doe Jane", "Standard-2026-02-17", fetch)
	require.NoError(t, err)
	assert.False(t, reused)
	require.Len(t, first, 1)

	second, reused, err := store.Fetch(ctx, "Standard-2026-02-17-Doe Jane", "Standard-2026-02-17", fetch)
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}
