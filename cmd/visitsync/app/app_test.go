package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{name: "default", config: Config{}, want: "info"},
		{name: "explicit level wins", config: Config{LogLevel: "error", Verbose: true}, want: "error"},
		{name: "invalid level falls back", config: Config{LogLevel: "loud"}, want: "info"},
		{name: "verbose", config: Config{Verbose: true}, want: "debug"},
		{name: "quiet", config: Config{Quiet: true}, want: "warn"},
		{name: "both prefers quiet", config: Config{Verbose: true, Quiet: true}, want: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	a, err := New("1.2.3", "abc", "today", "test")
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := a.NewVersionCommand()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "visitsync 1.2.3\n", out.String())
}

func TestRunCommandAgainstFixtureFile(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixtures.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(`
patients:
  - name: "Doe, Jane"
    outstanding:
      - task_name: PT Visit
        target_date: 2/17/2026
        type: standard
        discipline: pt
    scheduled:
      - task_name: Standard
        visit_date: 02/17/2026
        type: standard
        discipline: pt
        raw_status: Scheduled 9:00 AM
        time_in: 9:00 AM
        time_out: 9:45 AM
`), 0o644))

	a, err := New("test", "", "", "")
	require.NoError(t, err)
	a.config.Fixtures = fixturePath
	a.config.DocumentsDir = filepath.Join(dir, "documents")
	a.config.DryRun = true
	a.config.Quiet = true

	var out bytes.Buffer
	root := a.createRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"run"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Filled times 09:00-09:45")
	assert.Contains(t, out.String(), "1 visits completed")
}
