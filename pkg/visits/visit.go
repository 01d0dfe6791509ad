// Package visits defines the canonical visit record shared by both record
// systems, the vocabulary mapping between them, schedule status resolution,
// and the dedup key used for cross-system set reconciliation.
//
// Both adapters validate and normalize at their boundary so the rest of the
// engine only ever sees this shape. Records are never mutated once returned;
// derived views (keys, mapping lookups) are computed on demand.
package visits

import (
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
)

// VisitType is the visit category in System B's vocabulary.
type VisitType string

// Visit types.
const (
	TypeStandard        VisitType = "standard"
	TypeEvaluation      VisitType = "evaluation"
	TypeReassessment    VisitType = "reassessment"
	TypeRecertification VisitType = "recertification"
	TypeDischarge       VisitType = "discharge"
	TypeStartOfCare     VisitType = "soc"
	TypeOther           VisitType = "other"
)

// Discipline is the clinical role category qualifying a visit type.
// DisciplineAny means the record carries no discipline and matches any.
type Discipline string

// Disciplines.
const (
	DisciplinePT  Discipline = "pt"
	DisciplineOT  Discipline = "ot"
	DisciplineST  Discipline = "st"
	DisciplineAny Discipline = ""
)

// VisitRecord is the canonical unit produced by either adapter.
type VisitRecord struct {
	TaskName    string     `yaml:"task_name"`
	Therapist   string     `yaml:"therapist,omitempty"`
	VisitDate   string     `yaml:"visit_date,omitempty"`  // MM/DD/YYYY or empty
	TargetDate  string     `yaml:"target_date,omitempty"` // MM/DD/YYYY or empty
	Type        VisitType  `yaml:"type"`
	Discipline  Discipline `yaml:"discipline,omitempty"`
	NeedsAction bool       `yaml:"needs_action,omitempty"`
	RawStatus   string     `yaml:"raw_status,omitempty"`
}

// EffectiveDate returns the visit date, falling back to the target date.
func (v VisitRecord) EffectiveDate() string {
	if v.VisitDate != "" {
		return v.VisitDate
	}
	return v.TargetDate
}

// Validate rejects records that cannot enter matching. A record needs at
// least one of visit date or target date.
func (v VisitRecord) Validate() error {
	if v.TaskName == "" {
		return errors.NewValidationError("taskName", v.TaskName, "task name is required")
	}
	if v.VisitDate == "" && v.TargetDate == "" {
		return errors.NewValidationError("visitDate", "", "visit has neither visit date nor target date")
	}
	return nil
}

// IsStandard reports whether the visit is a routine visit eligible for
// document attachment.
func (v VisitRecord) IsStandard() bool {
	return v.Type == TypeStandard
}

// Reconcilable reports whether the visit participates in reconciliation at
// all. Discharge and start-of-care visits are excluded entirely.
func (v VisitRecord) Reconcilable() bool {
	return v.Type != TypeDischarge && v.Type != TypeStartOfCare
}

// Key returns the visit's dedup key (see Key in this package).
func (v VisitRecord) Key() string {
	return Key(v.TaskName, v.EffectiveDate())
}

// Key derives the stable composite dedup key from a task name and a date in
// any slash format. Two records describing the same real-world visit always
// produce equal keys regardless of casing, internal whitespace, or date
// padding. The therapist is deliberately excluded: name spellings diverge
// too much between the systems to be a reliable join key.
func Key(taskName, date string) string {
	return normalize.Text(taskName) + "|" + normalize.DateToISO(date)
}

// Dedupe collapses records with equal dedup keys into one, last write wins,
// while preserving the position of each key's first occurrence. The stable
// order matters: visits are processed in System-A listing order downstream.
func Dedupe(records []VisitRecord) []VisitRecord {
	index := make(map[string]int, len(records))
	out := make([]VisitRecord, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if i, ok := index[k]; ok {
			out[i] = r
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}

// KeySet builds the membership set of dedup keys for the given records.
func KeySet(records []VisitRecord) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[r.Key()] = struct{}{}
	}
	return set
}
