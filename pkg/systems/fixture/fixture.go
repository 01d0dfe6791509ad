// Package fixture provides YAML-file–backed implementations of both system
// adapters. They drive dry runs of the reconciliation engine and the
// integration tests without any live session behind them; every mutation is
// recorded instead of submitted.
package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/documents"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/match"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/systems"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/visits"
)

// Visit is one fixture visit row. For outstanding (System-A) visits the
// time fields hold the already-filled values; for scheduled (System-B)
// visits they hold the calendar's times.
type Visit struct {
	visits.VisitRecord `yaml:",inline"`

	TimeIn    string   `yaml:"time_in,omitempty"`
	TimeOut   string   `yaml:"time_out,omitempty"`
	Documents []string `yaml:"documents,omitempty"`
}

// Patient is one fixture patient with both systems' views of their visits.
type Patient struct {
	Name        string  `yaml:"name"`
	Outstanding []Visit `yaml:"outstanding,omitempty"`
	Scheduled   []Visit `yaml:"scheduled,omitempty"`
}

// Data is the root of a fixture file.
type Data struct {
	Patients   []Patient `yaml:"patients"`
	Therapists []string  `yaml:"therapists,omitempty"`
}

// Fill records one FillTimesAndApprove call.
type Fill struct {
	Patient string
	Task    string
	Date    string
	TimeIn  string
	TimeOut string
}

// Attach records one AttachDocuments call.
type Attach struct {
	Patient string
	Task    string
	Paths   []string
}

// Insert records one InsertVisit call.
type Insert struct {
	Patient   string
	TaskLabel string
	Date      string
	Therapist string
}

// System implements both systems.TaskSystem and systems.ScheduleSystem over
// fixture data.
type System struct {
	data    Data
	docsDir string

	failAwait int
	backCalls int

	Fills    []Fill
	Attaches []Attach
	Inserts  []Insert
}

var (
	_ systems.TaskSystem     = (*System)(nil)
	_ systems.ScheduleSystem = (*System)(nil)
)

// New creates a fixture system over in-memory data. Fetched documents are
// written under docsDir.
func New(data Data, docsDir string) *System {
	return &System{data: data, docsDir: docsDir}
}

// Load reads a fixture file.
func Load(path, docsDir string) (*System, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, errors.NewParseError("yaml", path, "invalid fixture file", err)
	}
	return New(data, docsDir), nil
}

// FailAwait makes the next n AwaitScheduleList calls fail, to exercise the
// engine's single-recovery policy.
func (s *System) FailAwait(n int) {
	s.failAwait = n
}

// BackCalls returns how many times NavigateBack has been called.
func (s *System) BackCalls() int {
	return s.backCalls
}

func (s *System) patient(name string) (*Patient, error) {
	for i := range s.data.Patients {
		if s.data.Patients[i].Name == name {
			return &s.data.Patients[i], nil
		}
	}
	return nil, errors.NewNotFoundError("patient", name)
}

// handle is the fixture's VisitHandle: an index into a patient's
// outstanding list.
type handle struct {
	patient string
	task    string
	index   int
}

func (h handle) ID() string {
	return fmt.Sprintf("%s/%s", h.patient, h.task)
}

// --- systems.TaskSystem ---

// ListOutstandingVisits implements systems.TaskSystem. Records failing
// validation are rejected here, at the adapter boundary.
func (s *System) ListOutstandingVisits(_ context.Context, patient string) ([]visits.VisitRecord, error) {
	p, err := s.patient(patient)
	if err != nil {
		return nil, err
	}
	out := make([]visits.VisitRecord, 0, len(p.Outstanding))
	for _, v := range p.Outstanding {
		if v.Validate() != nil {
			continue
		}
		out = append(out, v.VisitRecord)
	}
	return out, nil
}

// ListTherapists implements systems.TaskSystem.
func (s *System) ListTherapists(_ context.Context) ([]string, error) {
	return s.data.Therapists, nil
}

// LocateVisit implements systems.TaskSystem.
func (s *System) LocateVisit(_ context.Context, patient, taskName, date, _ string) (systems.VisitHandle, error) {
	p, err := s.patient(patient)
	if err != nil {
		return nil, err
	}
	wantTask := normalize.Text(taskName)
	wantDate := normalize.DateToISO(date)
	for i := range p.Outstanding {
		v := &p.Outstanding[i]
		if normalize.Text(v.TaskName) == wantTask && normalize.DateToISO(v.EffectiveDate()) == wantDate {
			return handle{patient: patient, task: v.TaskName, index: i}, nil
		}
	}
	return nil, errors.NewNotFoundError("task", wantTask+" "+wantDate)
}

func (s *System) visitByHandle(h systems.VisitHandle) (*Visit, error) {
	fh, ok := h.(handle)
	if !ok {
		return nil, errors.NewValidationError("handle", h, "foreign visit handle")
	}
	p, err := s.patient(fh.patient)
	if err != nil {
		return nil, err
	}
	if fh.index < 0 || fh.index >= len(p.Outstanding) {
		return nil, errors.NewNotFoundError("task", fh.ID())
	}
	return &p.Outstanding[fh.index], nil
}

// TimesFilled implements systems.TaskSystem.
func (s *System) TimesFilled(_ context.Context, h systems.VisitHandle) (systems.TimesFilled, error) {
	v, err := s.visitByHandle(h)
	if err != nil {
		return systems.TimesFilled{}, err
	}
	return systems.TimesFilled{
		Date:    v.VisitDate != "",
		TimeIn:  v.TimeIn != "",
		TimeOut: v.TimeOut != "",
	}, nil
}

// FillTimesAndApprove implements systems.TaskSystem.
func (s *System) FillTimesAndApprove(_ context.Context, h systems.VisitHandle, date, timeIn, timeOut string) error {
	v, err := s.visitByHandle(h)
	if err != nil {
		return err
	}
	v.VisitDate = date
	v.TimeIn = timeIn
	v.TimeOut = timeOut
	fh := h.(handle)
	s.Fills = append(s.Fills, Fill{Patient: fh.patient, Task: v.TaskName, Date: date, TimeIn: timeIn, TimeOut: timeOut})
	return nil
}

// AttachDocuments implements systems.TaskSystem.
func (s *System) AttachDocuments(_ context.Context, h systems.VisitHandle, filePaths []string) error {
	v, err := s.visitByHandle(h)
	if err != nil {
		return err
	}
	fh := h.(handle)
	s.Attaches = append(s.Attaches, Attach{Patient: fh.patient, Task: v.TaskName, Paths: filePaths})
	return nil
}

// InsertVisit implements systems.TaskSystem.
func (s *System) InsertVisit(_ context.Context, patient, taskLabel, date, therapistLabel string) (bool, error) {
	if _, err := s.patient(patient); err != nil {
		return false, err
	}
	s.Inserts = append(s.Inserts, Insert{Patient: patient, TaskLabel: taskLabel, Date: date, Therapist: therapistLabel})
	return true, nil
}

// --- systems.ScheduleSystem ---

// ListPatients implements systems.ScheduleSystem.
func (s *System) ListPatients(_ context.Context) ([]string, error) {
	names := make([]string, len(s.data.Patients))
	for i, p := range s.data.Patients {
		names[i] = p.Name
	}
	return names, nil
}

// ListVisitsForPatient implements systems.ScheduleSystem.
func (s *System) ListVisitsForPatient(_ context.Context, patient string) ([]visits.VisitRecord, error) {
	p, err := s.patient(patient)
	if err != nil {
		return nil, err
	}
	out := make([]visits.VisitRecord, 0, len(p.Scheduled))
	for _, v := range p.Scheduled {
		out = append(out, v.VisitRecord)
	}
	return out, nil
}

func (s *System) scheduled(patient string, target match.Target) (*Visit, error) {
	p, err := s.patient(patient)
	if err != nil {
		return nil, err
	}
	wantType := normalize.Text(target.Type)
	wantDate := normalize.DateToISO(target.Date)
	for i := range p.Scheduled {
		v := &p.Scheduled[i]
		if normalize.Text(v.TaskName) != wantType {
			continue
		}
		if normalize.DateToISO(v.EffectiveDate()) != wantDate {
			continue
		}
		if target.Discipline != visits.DisciplineAny && v.Discipline != target.Discipline {
			continue
		}
		return v, nil
	}
	return nil, errors.NewNotFoundError("visit", target.ID())
}

// ResolveStatus implements systems.ScheduleSystem.
func (s *System) ResolveStatus(_ context.Context, patient string, target match.Target) (string, error) {
	v, err := s.scheduled(patient, target)
	if err != nil {
		return "", err
	}
	return v.RawStatus, nil
}

// OpenVisit implements systems.ScheduleSystem.
func (s *System) OpenVisit(_ context.Context, patient string, target match.Target) (systems.VisitTimes, error) {
	v, err := s.scheduled(patient, target)
	if err != nil {
		return systems.VisitTimes{}, err
	}
	slot := normalize.Text(v.RawStatus)
	if strings.Contains(slot, "no scheduled time") || strings.Contains(slot, "no time scheduled") {
		return systems.VisitTimes{}, errors.NewNoScheduledTimeError(target.ID(), target.Date)
	}
	return systems.VisitTimes{TimeIn: v.TimeIn, TimeOut: v.TimeOut, RawStatus: v.RawStatus}, nil
}

// FetchDocuments implements systems.ScheduleSystem. Artifacts are written
// under docsDir with names sharing the visit+date fingerprint so re-runs
// find and reuse them.
func (s *System) FetchDocuments(_ context.Context, patient string, target match.Target) ([]string, error) {
	v, err := s.scheduled(patient, target)
	if err != nil {
		return nil, err
	}
	prefix := documents.Fingerprint(target.Type, normalize.DateToISO(target.Date))
	paths := make([]string, 0, len(v.Documents))
	for _, doc := range v.Documents {
		name := prefix + "-" + documents.Sanitize(doc)
		path := filepath.Join(s.docsDir, name)
		if err := os.WriteFile(path, []byte("fixture document\n"), 0o644); err != nil {
			return nil, errors.NewIOError("write", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// AwaitScheduleList implements systems.ScheduleSystem.
func (s *System) AwaitScheduleList(_ context.Context, patient string) error {
	if s.failAwait > 0 {
		s.failAwait--
		return &errors.NavigationError{View: "schedule list", Message: "list not ready for " + patient}
	}
	return nil
}

// NavigateBack implements systems.ScheduleSystem.
func (s *System) NavigateBack(_ context.Context, _ string) error {
	s.backCalls++
	return nil
}
