// Package changelog provides the append-only, human-readable record of
// changes made during a reconciliation run. One block is appended per run;
// a run that changes nothing still writes a placeholder line so every run
// is represented in the file.
package changelog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
)

// Sink receives the human-readable change entries for a run. The sink is a
// single process-wide write-only destination: opened once per run, flushed
// once at run end or on fatal error. No concurrent writers.
type Sink interface {
	// StartRun begins a new run block stamped with the current time.
	StartRun()

	// Record appends one change entry for a patient.
	Record(patient, message string)

	// Flush writes the accumulated block out. Flushing a run with zero
	// recorded changes writes a placeholder entry.
	Flush() error
}

// headerTimeFormat renders the run header timestamp, "MM/DD/YYYY - HH:MM".
const headerTimeFormat = "01/02/2006 - 15:04"

// placeholder is written for runs that recorded no changes.
const placeholder = "No changes made this run."

// File is the file-backed Sink. Entries accumulate in memory and hit disk
// only on Flush.
type File struct {
	path    string
	now     func() time.Time
	header  string
	lines   []string
	flushed bool
}

// NewFile creates a file sink appending to path.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// NewFileWithClock creates a file sink with a fixed clock, for tests.
func NewFileWithClock(path string, now func() time.Time) *File {
	return &File{path: path, now: now}
}

// StartRun implements Sink.
func (f *File) StartRun() {
	f.header = fmt.Sprintf("Run %s:", f.now().Format(headerTimeFormat))
	f.lines = f.lines[:0]
	f.flushed = false
}

// Record implements Sink.
func (f *File) Record(patient, message string) {
	f.lines = append(f.lines, fmt.Sprintf("    [%s] %s", patient, message))
}

// Count returns the number of entries recorded so far this run.
func (f *File) Count() int {
	return len(f.lines)
}

// Flush implements Sink. A second flush of the same run is a no-op.
func (f *File) Flush() error {
	if f.flushed {
		return nil
	}
	if f.header == "" {
		f.StartRun()
	}

	var b strings.Builder
	b.WriteString(f.header)
	b.WriteString("\n")
	if len(f.lines) == 0 {
		b.WriteString("    " + placeholder + "\n")
	} else {
		for _, line := range f.lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.NewIOError("open", f.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(b.String()); err != nil {
		return errors.NewIOError("write", f.path, err)
	}
	f.flushed = true
	return nil
}

// Memory is an in-memory Sink for tests and dry runs.
type Memory struct {
	Started bool
	Flushed bool
	Entries []string
}

// NewMemory creates an in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// StartRun implements Sink.
func (m *Memory) StartRun() {
	m.Started = true
	m.Entries = nil
	m.Flushed = false
}

// Record implements Sink.
func (m *Memory) Record(patient, message string) {
	m.Entries = append(m.Entries, fmt.Sprintf("[%s] %s", patient, message))
}

// Flush implements Sink.
func (m *Memory) Flush() error {
	m.Flushed = true
	return nil
}
