package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// handleCount answers aggregate questions. Branch priority is fixed:
// location, then rank, then enlistment-year comparison, then awards, then
// blood group. Only the first matching branch executes.
func (e *Engine) handleCount(ctx context.Context, q *query) (string, error) {
	if loc := extractLocation(q.lowered); loc != "" {
		n, err := e.store.CountOfficers(ctx, records.OfficerFilter{UnitContains: loc})
		if err != nil {
			return "", fmt.Errorf("counting officers in %q: %w", loc, err)
		}
		return fmt.Sprintf("Total officers in %s: %d", loc, n), nil
	}

	if rank := extractRank(q.lowered); rank != "" {
		n, err := e.store.CountOfficers(ctx, records.OfficerFilter{Rank: rank})
		if err != nil {
			return "", fmt.Errorf("counting %s officers: %w", rank, err)
		}
		return fmt.Sprintf("Total %ss: %d", rank, n), nil
	}

	if yc, ok := extractYearComparison(q.lowered); ok {
		var filter records.OfficerFilter
		var phrase string
		switch yc.direction {
		case "after":
			filter.YearAfter = yc.year
			phrase = "after"
		case "before":
			filter.YearBefore = yc.year
			phrase = "before"
		default: // "since" and "in" both count that year onwards
			filter.YearSince = yc.year
			phrase = "in"
		}
		n, err := e.store.CountOfficers(ctx, filter)
		if err != nil {
			return "", fmt.Errorf("counting officers by enlistment year: %w", err)
		}
		return fmt.Sprintf("Officers enlisted %s %d: %d", phrase, yc.year, n), nil
	}

	if strings.Contains(q.lowered, "award") {
		name, err := e.extractAwardName(ctx, q.lowered)
		if err != nil {
			return "", err
		}
		n, err := e.store.CountAwards(ctx, name)
		if err != nil {
			return "", fmt.Errorf("counting awards: %w", err)
		}
		if name != "" {
			return fmt.Sprintf("Officers with %s award: %d", name, n), nil
		}
		return fmt.Sprintf("Total awards given: %d", n), nil
	}

	if bg := extractBloodGroup(q.lowered); bg != "" {
		n, err := e.store.CountOfficers(ctx, records.OfficerFilter{BloodGroup: bg})
		if err != nil {
			return "", fmt.Errorf("counting officers by blood group: %w", err)
		}
		return fmt.Sprintf("Officers with blood group %s: %d", bg, n), nil
	}

	return msgCountUnclear, nil
}
