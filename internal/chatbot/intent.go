package chatbot

import (
	"context"
	"regexp"
	"strings"

	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// Intent is the classified purpose of a query.
type Intent string

// Intents, in dispatch priority order.
const (
	IntentMultiField Intent = "multi_field"
	IntentCount      Intent = "count"
	IntentBulk       Intent = "bulk"
	IntentDetail     Intent = "detail"
	IntentFallback   Intent = "fallback"
)

// Classification cue patterns, checked in priority order. First match wins.
var (
	multiFieldPattern = regexp.MustCompile(
		`(give me|show|list)\s+.*(blood group|rank|unit|position|address|enlistment date|email|phone|award|degree|institution in\s+\w+)`)
	countCuePattern = regexp.MustCompile(`(how many|kitne|total|count|number)`)
	listCuePattern  = regexp.MustCompile(`(list|sabhi|all|give me|name)`)
)

// query carries one utterance through classification and execution.
// lowered is the case-normalised text every pattern runs against; officer is
// filled by the detail rule when subject resolution succeeds.
type query struct {
	raw          string
	lowered      string
	exportFormat string // "", "excel", "word" or "pdf"
	officer      *records.Officer
}

// detectExportFormat scans for the literal export tokens. Independent of
// intent; when present the chosen executor routes its result through the
// export collaborator instead of returning inline text.
func detectExportFormat(lowered string) string {
	switch {
	case strings.Contains(lowered, "excel"):
		return "excel"
	case strings.Contains(lowered, "word"):
		return "word"
	case strings.Contains(lowered, "pdf"):
		return "pdf"
	}
	return ""
}

// rule is one (predicate, handler) pair of the classifier. Rules are
// evaluated top to bottom; the first whose match returns true handles the
// query. This makes the precedence explicit instead of relying on
// short-circuit evaluation order.
type rule struct {
	intent Intent
	match  func(ctx context.Context, q *query) (bool, error)
	handle func(ctx context.Context, q *query) (string, error)
}
