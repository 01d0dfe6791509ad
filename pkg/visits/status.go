package visits

import (
	"strings"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
)

// ScheduleStatus is the semantic state of a System-B visit's raw status
// text. Derived, never stored; recompute every time the text is read.
type ScheduleStatus string

// Schedule statuses.
const (
	StatusScheduled    ScheduleStatus = "SCHEDULED"
	StatusIncomplete   ScheduleStatus = "INCOMPLETE"
	StatusViewDocument ScheduleStatus = "VIEW_DOCUMENT"
	StatusMissed       ScheduleStatus = "MISSED"
	StatusNotFound     ScheduleStatus = "NOT_FOUND"
)

// statusKeywords lists the classification predicates in precedence order.
// The order is the contract: some raw strings satisfy more than one
// predicate ("Scheduled (view)" must classify as SCHEDULED, not
// VIEW_DOCUMENT).
var statusKeywords = []struct {
	keyword string
	status  ScheduleStatus
}{
	{"scheduled", StatusScheduled},
	{"incomplete", StatusIncomplete},
	{"view", StatusViewDocument},
	{"missed", StatusMissed},
}

// ResolveStatus classifies raw status text into a ScheduleStatus by
// substring, using the fixed precedence above. Unrecognized or empty text
// resolves to StatusNotFound.
func ResolveStatus(raw string) ScheduleStatus {
	text := normalize.Text(raw)
	if text == "" {
		return StatusNotFound
	}
	for _, k := range statusKeywords {
		if strings.Contains(text, k.keyword) {
			return k.status
		}
	}
	return StatusNotFound
}
