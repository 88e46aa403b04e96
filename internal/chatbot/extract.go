package chatbot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// Compiled extraction patterns. Package-level so they are compiled once.
var (
	// armyNumberPattern matches an identifier token: optional letters, at
	// least one digit, optional trailing alphanumerics (e.g. "A1234B").
	armyNumberPattern = regexp.MustCompile(`\b[A-Za-z]*\d+[A-Za-z0-9]*\b`)

	// locationPattern captures the phrase following "in" when the gazetteer
	// has no match.
	locationPattern = regexp.MustCompile(`in ([a-zA-Z\s]+)`)

	// rankPattern is the closed set of recognised ranks.
	rankPattern = regexp.MustCompile(`(?i)\b(colonel|col|major|av|lieutenant|brigadier|general)\b`)

	// bloodGroupValuePattern matches "blood group B+" style phrases and
	// captures the actual type.
	bloodGroupValuePattern = regexp.MustCompile(`(?i)\b(?:blood group|blood)\s*(AB|A|B|O)\s*([+-]?)`)

	// bloodGroupFilterPattern matches "group <value>" in conditional
	// queries (e.g. "officers with blood group B+").
	bloodGroupFilterPattern = regexp.MustCompile(`(?i)group\s+(AB|A|B|O)\s*([+-]?)`)

	// yearComparisonPattern captures an enlistment-year comparison.
	yearComparisonPattern = regexp.MustCompile(`(after|before|since|in)\s*(\d{4})`)
)

// capitalize upper-cases the first rune and lower-cases the rest,
// matching how extracted names are normalised for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// extractTargetOfficer resolves the query to a specific officer.
//
// It first scans for an identifier token and tries an exact army-number
// lookup (normalised to upper case). If that misses it falls back to fuzzy
// name resolution: the highest token-set similarity against every officer's
// full name, accepted at nameMatchThreshold or above. Returns (nil, nil)
// when nothing resolves; a non-nil error only signals a store failure.
func (e *Engine) extractTargetOfficer(ctx context.Context, text string) (*records.Officer, error) {
	if token := armyNumberPattern.FindString(text); token != "" {
		armyNumber := strings.ToUpper(strings.TrimSpace(token))
		officer, err := e.store.GetOfficer(ctx, armyNumber)
		switch {
		case err == nil:
			return officer, nil
		case errors.Is(err, records.ErrNotFound):
			e.logger.Debug("no officer for extracted identifier", "army_number", armyNumber)
		default:
			return nil, fmt.Errorf("looking up officer %q: %w", armyNumber, err)
		}
	}

	return e.findSimilarOfficer(ctx, text)
}

// findSimilarOfficer scans every officer and keeps the best token-set match.
// A linear scan is fine: the working set is a bounded personnel roster.
func (e *Engine) findSimilarOfficer(ctx context.Context, query string) (*records.Officer, error) {
	officers, err := e.store.ListOfficers(ctx, records.OfficerFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing officers for name match: %w", err)
	}

	lowered := strings.ToLower(query)
	var best *records.Officer
	highest := 0
	for i := range officers {
		score := fuzzy.TokenSetRatio(strings.ToLower(officers[i].FullName), lowered)
		if score > highest {
			highest = score
			best = &officers[i]
		}
	}
	if highest >= nameMatchThreshold {
		return best, nil
	}
	return nil, nil
}

// extractLocation finds a location mentioned in the query: first gazetteer
// membership (first entry wins), then the phrase following "in".
func extractLocation(text string) string {
	lowered := strings.ToLower(text)
	for _, loc := range gazetteer {
		if strings.Contains(lowered, loc) {
			return capitalize(loc)
		}
	}

	if m := locationPattern.FindStringSubmatch(lowered); m != nil {
		return capitalize(strings.TrimSpace(m[1]))
	}
	return ""
}

// extractRank finds a rank from the closed rank set, title-cased.
func extractRank(text string) string {
	if m := rankPattern.FindStringSubmatch(text); m != nil {
		return capitalize(m[1])
	}
	return ""
}

// extractBloodGroup finds a blood type mentioned after "blood"/"blood group".
func extractBloodGroup(text string) string {
	if m := bloodGroupValuePattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]) + m[2]
	}
	return ""
}

// extractBloodGroupFilter finds a blood type in "group <value>" condition
// phrasing used by multi-field queries.
func extractBloodGroupFilter(text string) string {
	if m := bloodGroupFilterPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]) + m[2]
	}
	return ""
}

// extractAwardName resolves an award name by substring containment against
// the store's distinct award names.
func (e *Engine) extractAwardName(ctx context.Context, query string) (string, error) {
	names, err := e.store.DistinctAwardNames(ctx)
	if err != nil {
		return "", fmt.Errorf("listing award names: %w", err)
	}
	lowered := strings.ToLower(query)
	for _, name := range names {
		if strings.Contains(lowered, strings.ToLower(name)) {
			return name, nil
		}
	}
	return "", nil
}

// yearComparison is an extracted enlistment-year predicate.
type yearComparison struct {
	direction string // "after", "before", "since" or "in"
	year      int
}

// extractYearComparison captures phrases like "after 2015" or "in 2020".
func extractYearComparison(text string) (yearComparison, bool) {
	m := yearComparisonPattern.FindStringSubmatch(text)
	if m == nil {
		return yearComparison{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return yearComparison{}, false
	}
	return yearComparison{direction: m[1], year: year}, true
}
