package visits

import (
	_ "embed"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
)

//go:embed mappings.yaml
var embeddedMappings []byte

// TypeMapping is one entry of the System-A label to System-B vocabulary
// table. DisciplineAny means the entry matches any discipline.
type TypeMapping struct {
	SiteBType  string     `yaml:"site_b_type"`
	Discipline Discipline `yaml:"discipline,omitempty"`
}

// MappingTable translates System-A visit-type labels into System B's
// (type, discipline) vocabulary. Loaded once at startup, immutable after.
type MappingTable struct {
	entries map[string]TypeMapping
}

// mappingsFile is the on-disk/embedded shape of the table.
type mappingsFile struct {
	Mappings map[string]TypeMapping `yaml:"mappings"`
}

var (
	defaultTable     *MappingTable
	defaultTableOnce sync.Once
)

// DefaultMappings returns the embedded mapping table.
func DefaultMappings() *MappingTable {
	defaultTableOnce.Do(func() {
		table, err := parseMappings(embeddedMappings)
		if err != nil {
			// Embedded table is validated at build time by tests; a parse
			// failure here is a packaging bug.
			panic(err)
		}
		defaultTable = table
	})
	return defaultTable
}

// LoadMappings reads the embedded table, then applies entries from the
// optional override file on top. An empty path returns the embedded table.
func LoadMappings(overridePath string) (*MappingTable, error) {
	base := DefaultMappings()
	if overridePath == "" {
		return base, nil
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, errors.NewIOError("read", overridePath, err)
	}
	overrides, err := parseMappings(data)
	if err != nil {
		return nil, errors.NewParseError("yaml", overridePath, "invalid mapping overrides", err)
	}

	merged := make(map[string]TypeMapping, len(base.entries)+len(overrides.entries))
	for k, v := range base.entries {
		merged[k] = v
	}
	for k, v := range overrides.entries {
		merged[k] = v
	}
	return &MappingTable{entries: merged}, nil
}

func parseMappings(data []byte) (*MappingTable, error) {
	var file mappingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	entries := make(map[string]TypeMapping, len(file.Mappings))
	for label, m := range file.Mappings {
		entries[normalize.Text(label)] = m
	}
	return &MappingTable{entries: entries}, nil
}

// roleOverrides maps compound role markers in a raw label to the discipline
// they imply, in check order. "pta" is checked before "cota": no observed
// label carries both markers, so the order is an explicit tie-break choice
// rather than observed behavior.
var roleOverrides = []struct {
	marker     string
	discipline Discipline
}{
	{"pta", DisciplinePT},
	{"cota", DisciplineOT},
}

// Lookup translates a System-A label. Lookup is case- and whitespace-
// insensitive. Unknown labels fall back to the normalized label itself with
// no discipline, so matching still proceeds (loosely) rather than failing
// closed. A role marker ("pta"/"cota") in the label overrides the table's
// discipline even when the table entry specifies one.
func (t *MappingTable) Lookup(label string) TypeMapping {
	key := normalize.Text(label)

	mapping, ok := t.entries[key]
	if !ok {
		mapping = TypeMapping{SiteBType: key, Discipline: DisciplineAny}
	}

	for _, o := range roleOverrides {
		if strings.Contains(key, o.marker) {
			mapping.Discipline = o.discipline
			break
		}
	}
	return mapping
}

// ReverseLookup translates a System-B (type, discipline) pair back into a
// System-A task label. When several labels map to the same pair the
// shortest wins, ties broken lexicographically, so the choice is
// deterministic across runs. Returns false when no entry matches.
func (t *MappingTable) ReverseLookup(siteBType string, d Discipline) (string, bool) {
	want := normalize.Text(siteBType)
	best := ""
	found := false
	for label, m := range t.entries {
		if normalize.Text(m.SiteBType) != want {
			continue
		}
		// The role-marker override applies on the forward path too, so a
		// label whose effective discipline differs from the table entry's
		// must be compared by its effective value.
		if t.Lookup(label).Discipline != d {
			continue
		}
		if !found || len(label) < len(best) || (len(label) == len(best) && label < best) {
			best = label
			found = true
		}
	}
	return best, found
}

// ReverseLabels returns every System-A label whose effective mapping
// resolves to the given System-B (type, discipline) pair, sorted for
// determinism. Synonym labels ("pt eval", "pt evaluation") all appear;
// ReverseLookup picks one of these for display, but set-membership checks
// must consider them all.
func (t *MappingTable) ReverseLabels(siteBType string, d Discipline) []string {
	want := normalize.Text(siteBType)
	var labels []string
	for label, m := range t.entries {
		if normalize.Text(m.SiteBType) != want {
			continue
		}
		if t.Lookup(label).Discipline != d {
			continue
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Len returns the number of entries in the table.
func (t *MappingTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table for display purposes.
func (t *MappingTable) Entries() map[string]TypeMapping {
	out := make(map[string]TypeMapping, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
