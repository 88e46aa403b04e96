package chatbot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Section cues for single-officer queries. Sections are independent: one
// query may trigger several.
var (
	basicSectionPattern     = regexp.MustCompile(`(basic|details|information|jankari|personal)`)
	contactSectionPattern   = regexp.MustCompile(`(contact|phone|mobile|email)`)
	familySectionPattern    = regexp.MustCompile(`(family|parivaar|father|mother|pita|mata)`)
	educationSectionPattern = regexp.MustCompile(`(education|padhai|degree|shiksha)`)
	awardSectionPattern     = regexp.MustCompile(`(award|puraskar|medal)`)
)

// handleDetail answers queries about one resolved officer. It appends every
// section the query mentions; with an export format it instead produces one
// artifact, choosing the first matching category among family, education,
// award and full profile.
func (e *Engine) handleDetail(ctx context.Context, q *query) (string, error) {
	o := q.officer

	if q.exportFormat != "" {
		return e.exportDetail(ctx, q)
	}

	var lines []string

	if basicSectionPattern.MatchString(q.lowered) {
		lines = append(lines,
			"Army ID: "+o.ArmyNumber,
			"Name: "+o.FullName,
			"Rank: "+valueOr(o.Rank),
			"Unit: "+valueOr(o.Unit),
			"DOB: "+formatDate(o.DateOfBirth),
			"Blood Group: "+valueOr(o.BloodGroup),
			"Enlistment Date: "+formatDate(o.EnlistmentDate),
		)
		if o.PhotoURL != "" {
			lines = append(lines, "Photo: "+o.PhotoURL)
		}
	}

	if contactSectionPattern.MatchString(q.lowered) {
		lines = append(lines,
			"Phone: "+valueOr(o.Phone),
			"Email: "+valueOr(o.Email),
			"Address: "+valueOr(o.Address),
		)
	}

	if familySectionPattern.MatchString(q.lowered) {
		family, err := e.store.ListFamily(ctx, o.ArmyNumber)
		if err != nil {
			return "", fmt.Errorf("listing family of %s: %w", o.ArmyNumber, err)
		}
		if len(family) == 0 {
			lines = append(lines, "No family records found")
		}
		for _, m := range family {
			lines = append(lines, fmt.Sprintf("%s: %s (DOB: %s)",
				m.Relation, m.Name, formatDate(m.DateOfBirth)))
		}
	}

	if educationSectionPattern.MatchString(q.lowered) {
		educations, err := e.store.ListEducation(ctx, o.ArmyNumber)
		if err != nil {
			return "", fmt.Errorf("listing education of %s: %w", o.ArmyNumber, err)
		}
		if len(educations) == 0 {
			lines = append(lines, "No education records found")
		}
		for _, ed := range educations {
			lines = append(lines, fmt.Sprintf("Education: %s from %s (%d) - Grade: %s",
				ed.Degree, ed.Institution, ed.YearOfPassing, valueOr(ed.Grade)))
		}
	}

	if awardSectionPattern.MatchString(q.lowered) {
		awards, err := e.store.ListAwards(ctx, o.ArmyNumber)
		if err != nil {
			return "", fmt.Errorf("listing awards of %s: %w", o.ArmyNumber, err)
		}
		if len(awards) == 0 {
			lines = append(lines, "No award records found")
		}
		for _, a := range awards {
			lines = append(lines, fmt.Sprintf("Award: %s (%s) for %s",
				a.AwardName, formatDate(a.DateAwarded), valueOr(a.Reason)))
		}
	}

	// No section matched: minimal identity block.
	if len(lines) == 0 {
		lines = []string{
			"Name: " + o.FullName,
			"Rank: " + valueOr(o.Rank),
			"Unit: " + valueOr(o.Unit),
			"Army ID: " + o.ArmyNumber,
		}
	}

	return strings.Join(lines, "\n"), nil
}

// exportDetail produces exactly one artifact for a single-officer export
// request. Category precedence: family, then education, then award, then
// the full profile.
func (e *Engine) exportDetail(ctx context.Context, q *query) (string, error) {
	o := q.officer

	switch {
	case strings.Contains(q.lowered, "family"):
		family, err := e.store.ListFamily(ctx, o.ArmyNumber)
		if err != nil {
			return "", fmt.Errorf("listing family of %s: %w", o.ArmyNumber, err)
		}
		return e.exportResult(familyTable(family),
			"Family of "+o.FullName, "family", q.exportFormat)

	case strings.Contains(q.lowered, "education"):
		educations, err := e.store.ListEducation(ctx, o.ArmyNumber)
		if err != nil {
			return "", fmt.Errorf("listing education of %s: %w", o.ArmyNumber, err)
		}
		return e.exportResult(educationTable(educations),
			"Education of "+o.FullName, "education", q.exportFormat)

	case strings.Contains(q.lowered, "award"):
		awards, err := e.store.ListAwards(ctx, o.ArmyNumber)
		if err != nil {
			return "", fmt.Errorf("listing awards of %s: %w", o.ArmyNumber, err)
		}
		return e.exportResult(awardsTable(awards),
			"Awards of "+o.FullName, "awards", q.exportFormat)
	}

	family, err := e.store.ListFamily(ctx, o.ArmyNumber)
	if err != nil {
		return "", fmt.Errorf("listing family of %s: %w", o.ArmyNumber, err)
	}
	educations, err := e.store.ListEducation(ctx, o.ArmyNumber)
	if err != nil {
		return "", fmt.Errorf("listing education of %s: %w", o.ArmyNumber, err)
	}
	awards, err := e.store.ListAwards(ctx, o.ArmyNumber)
	if err != nil {
		return "", fmt.Errorf("listing awards of %s: %w", o.ArmyNumber, err)
	}
	return e.exportResult(profileTable(o, family, educations, awards),
		"Officer "+o.FullName, "officer_profile", q.exportFormat)
}
