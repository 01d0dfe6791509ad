package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/changelog"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/documents"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/logging"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/systems"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// options configures a Reconciler.
type options struct {
	tasks    systems.TaskSystem
	schedule systems.ScheduleSystem
	sink     changelog.Sink
	store    *documents.Store
	mappings *visits.MappingTable
	logger   *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		sink:     changelog.NewMemory(),
		mappings: visits.DefaultMappings(),
		logger:   logging.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.tasks == nil {
		return nil, &errors.ValidationError{Field: "tasks", Message: "task system adapter is required"}
	}
	if o.schedule == nil {
		return nil, &errors.ValidationError{Field: "schedule", Message: "schedule system adapter is required"}
	}
	if o.store == nil {
		return nil, &errors.ValidationError{Field: "store", Message: "document store is required"}
	}
	return o, nil
}

// WithTaskSystem sets the System-A adapter.
func WithTaskSystem(tasks systems.TaskSystem) Option {
	return func(o *options) error {
		o.tasks = tasks
		return nil
	}
}

// WithScheduleSystem sets the System-B adapter.
func WithScheduleSystem(schedule systems.ScheduleSystem) Option {
	return func(o *options) error {
		o.schedule = schedule
		return nil
	}
}

// WithChangeLog sets the change-log sink. Defaults to an in-memory sink.
func WithChangeLog(sink changelog.Sink) Option {
	return func(o *options) error {
		if sink == nil {
			return &errors.ValidationError{Field: "sink", Message: "cannot be nil"}
		}
		o.sink = sink
		return nil
	}
}

// WithDocumentStore sets the store used for idempotent document fetches.
func WithDocumentStore(store *documents.Store) Option {
	return func(o *options) error {
		o.store = store
		return nil
	}
}

// WithMappings sets the type/discipline mapping table. Defaults to the
// embedded table.
func WithMappings(table *visits.MappingTable) Option {
	return func(o *options) error {
		if table == nil {
			return &errors.ValidationError{Field: "mappings", Message: "cannot be nil"}
		}
		o.mappings = table
		return nil
	}
}

// WithLogger sets the run logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}
