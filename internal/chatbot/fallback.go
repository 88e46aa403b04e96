package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// handleFallback runs the query through full-text search over every record
// type and formats one line per hit.
func (e *Engine) handleFallback(ctx context.Context, q *query) (string, error) {
	hits, err := e.store.SearchRecords(ctx, q.lowered, fallbackResultLimit)
	if err != nil {
		return "", fmt.Errorf("full-text search: %w", err)
	}
	if len(hits) == 0 {
		return msgCouldNotUnderstand, nil
	}

	lines := make([]string, 0, len(hits))
	for _, h := range hits {
		lines = append(lines, formatHit(h))
	}
	return strings.Join(lines, "\n"), nil
}

// formatHit renders one search hit with its record type's line template.
func formatHit(h records.SearchHit) string {
	f := h.Fields
	switch h.Type {
	case records.TypeOfficer:
		return fmt.Sprintf("Officer: %s %s, ID: %s",
			f["full_name"], f["rank"], f["army_number"])
	case records.TypeFamily:
		return fmt.Sprintf("Family Member: %s, Relation: %s, DOB: %s",
			f["name"], f["relation"], f["dob"])
	case records.TypeEducation:
		return fmt.Sprintf("Education: %s, Institution: %s, Passing Year: %s, Grade: %s",
			f["degree"], f["institution"], f["year_of_passing"], f["grade"])
	default:
		return capitalize(h.Type) + " record found"
	}
}
