package app

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/changelog"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/documents"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/reconcile"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/systems/fixture"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// NewRunCommand creates the run command.
func (a *App) NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Perform one reconciliation pass",
		Long: `Run drives one full reconciliation pass over the configured adapters:
every patient, every outstanding visit, then missing-visit detection.

The pass is driven through fixture files describing both systems' records;
live sessions are wired through the library API instead. Changes are
appended to the change log unless --dry-run is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Flags are parsed now; rebuild the logger so -v/-q take effect.
			logger := NewLogger(a.config)
			a.logger = &logger
			return a.runReconciliation(cmd)
		},
	}

	cmd.Flags().StringVar(&a.config.Fixtures, "fixtures", a.config.Fixtures, "fixture file providing both system adapters (YAML)")
	cmd.Flags().StringVar(&a.config.DocumentsDir, "documents-dir", a.config.DocumentsDir, "directory fetched documents are stored under")
	cmd.Flags().StringVar(&a.config.ChangeLog, "change-log", a.config.ChangeLog, "append-only change log file")
	cmd.Flags().BoolVar(&a.config.DryRun, "dry-run", a.config.DryRun, "keep changes in memory and print them instead of appending to the change log")

	return cmd
}

func (a *App) runReconciliation(cmd *cobra.Command) error {
	if a.config.Fixtures == "" {
		return errors.NewValidationError("fixtures", "", "a fixture file is required")
	}

	ctx := logging.WithLogger(cmd.Context(), a.logger)

	sys, err := fixture.Load(a.config.Fixtures, a.config.DocumentsDir)
	if err != nil {
		return err
	}
	store, err := documents.NewStore(a.config.DocumentsDir)
	if err != nil {
		return err
	}
	mappings, err := a.loadMappings()
	if err != nil {
		return err
	}

	var mem *changelog.Memory
	var sink changelog.Sink
	if a.config.DryRun {
		mem = changelog.NewMemory()
		sink = mem
	} else {
		sink = changelog.NewFile(a.config.ChangeLog)
	}

	r, err := reconcile.New(
		reconcile.WithTaskSystem(sys),
		reconcile.WithScheduleSystem(sys),
		reconcile.WithChangeLog(sink),
		reconcile.WithDocumentStore(store),
		reconcile.WithMappings(mappings),
		reconcile.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	res, err := r.Run(ctx)
	if err != nil {
		return err
	}

	if mem != nil {
		for _, entry := range mem.Entries {
			cmd.Println(entry)
		}
	}
	cmd.Println(res.Summary())
	return nil
}

// loadMappings returns the task mapping table, applying the override file
// when one is configured.
func (a *App) loadMappings() (*visits.MappingTable, error) {
	if a.config.Mappings == "" {
		return visits.DefaultMappings(), nil
	}
	return visits.LoadMappings(a.config.Mappings)
}

// NewMappingsCommand creates the mappings command.
func (a *App) NewMappingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "Show the task label mapping table",
		Long: `Mappings prints the table that bridges task-manager task labels to the
scheduler's visit types and disciplines, including any override file
configured with --mappings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.loadMappings()
			if err != nil {
				return err
			}

			entries := table.Entries()
			labels := make([]string, 0, len(entries))
			for label := range entries {
				labels = append(labels, label)
			}
			sort.Strings(labels)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "TASK LABEL\tVISIT TYPE\tDISCIPLINE")
			for _, label := range labels {
				m := entries[label]
				d := string(m.Discipline)
				if d == "" {
					d = "any"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", label, m.SiteBType, d)
			}
			return w.Flush()
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("visitsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
