package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// handleBulk answers listing queries. Branch priority: location, then rank,
// then award. Each branch routes through the export collaborator when an
// export format was requested, otherwise returns inline lines.
func (e *Engine) handleBulk(ctx context.Context, q *query) (string, error) {
	if loc := extractLocation(q.lowered); loc != "" {
		officers, err := e.store.ListOfficers(ctx, records.OfficerFilter{UnitContains: loc})
		if err != nil {
			return "", fmt.Errorf("listing officers in %q: %w", loc, err)
		}
		if len(officers) == 0 {
			return fmt.Sprintf("No officers found in %s", loc), nil
		}
		title := fmt.Sprintf("Officers in %s", loc)
		if q.exportFormat != "" {
			return e.exportResult(officersTable(officers), title, "officers", q.exportFormat)
		}
		lines := make([]string, 0, len(officers))
		for _, o := range officers {
			lines = append(lines, fmt.Sprintf("%s (%s) - %s", o.FullName, o.Rank, o.Unit))
		}
		return title + ":\n" + strings.Join(lines, "\n"), nil
	}

	if rank := extractRank(q.lowered); rank != "" {
		officers, err := e.store.ListOfficers(ctx, records.OfficerFilter{Rank: rank})
		if err != nil {
			return "", fmt.Errorf("listing %s officers: %w", rank, err)
		}
		if len(officers) == 0 {
			return fmt.Sprintf("No %ss found", rank), nil
		}
		title := rank + "s"
		if q.exportFormat != "" {
			return e.exportResult(officersTable(officers), title, "officers", q.exportFormat)
		}
		lines := make([]string, 0, len(officers))
		for _, o := range officers {
			lines = append(lines, fmt.Sprintf("%s - %s", o.FullName, o.Unit))
		}
		return title + ":\n" + strings.Join(lines, "\n"), nil
	}

	if strings.Contains(q.lowered, "award") {
		name, err := e.extractAwardName(ctx, q.lowered)
		if err != nil {
			return "", err
		}
		if name != "" {
			awarded, err := e.store.ListAwardsByName(ctx, name)
			if err != nil {
				return "", fmt.Errorf("listing %q awards: %w", name, err)
			}
			if len(awarded) == 0 {
				return fmt.Sprintf("No officers with %s award found", name), nil
			}
			if q.exportFormat != "" {
				awards := make([]records.AwardRecord, 0, len(awarded))
				for _, a := range awarded {
					awards = append(awards, a.Award)
				}
				return e.exportResult(awardsTable(awards), "Awards: "+name, "awards", q.exportFormat)
			}
			lines := make([]string, 0, len(awarded))
			for _, a := range awarded {
				lines = append(lines, fmt.Sprintf("%s - %s (%d)",
					a.Officer.FullName, a.Award.AwardName, a.Award.DateAwarded.Year()))
			}
			return fmt.Sprintf("Officers with %s award:\n%s", name, strings.Join(lines, "\n")), nil
		}
	}

	return msgBulkUnclear, nil
}
