package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// fieldSpec ties a displayable officer attribute to the query tokens that
// request it.
type fieldSpec struct {
	label  string
	tokens []string
	value  func(*records.Officer) string
}

// multiFieldSpecs is the ordered set of attributes a multi-field query may
// request. Order fixes the output order of the per-officer blocks.
var multiFieldSpecs = []fieldSpec{
	{"Full Name", []string{"full name", "name"}, func(o *records.Officer) string { return o.FullName }},
	{"Rank", []string{"rank"}, func(o *records.Officer) string { return o.Rank }},
	{"Position", []string{"position"}, func(o *records.Officer) string { return o.Position }},
	{"Unit", []string{"unit"}, func(o *records.Officer) string { return o.Unit }},
	{"Date Of Birth", []string{"date of birth", "dob"}, func(o *records.Officer) string { return formatDate(o.DateOfBirth) }},
	{"Enlistment Date", []string{"enlistment date", "enlistment_date"}, func(o *records.Officer) string { return formatDate(o.EnlistmentDate) }},
	{"Phone", []string{"phone"}, func(o *records.Officer) string { return o.Phone }},
	{"Email", []string{"email"}, func(o *records.Officer) string { return o.Email }},
	{"Address", []string{"address"}, func(o *records.Officer) string { return o.Address }},
	{"Blood Group", []string{"blood group", "blood_group"}, func(o *records.Officer) string { return o.BloodGroup }},
}

// requestedFields collects the attributes named in the query, deduplicated,
// in spec order.
func requestedFields(lowered string) []fieldSpec {
	var fields []fieldSpec
	for _, spec := range multiFieldSpecs {
		for _, token := range spec.tokens {
			if strings.Contains(lowered, token) {
				fields = append(fields, spec)
				break
			}
		}
	}
	return fields
}

// handleMultiField answers "give me <fields> of officers with <conditions>"
// queries. Conditions are AND-combined: blood group, rank and location (as a
// unit-contains filter), each optional.
func (e *Engine) handleMultiField(ctx context.Context, q *query) (string, error) {
	fields := requestedFields(q.lowered)

	var filter records.OfficerFilter
	if bg := extractBloodGroupFilter(q.lowered); bg != "" {
		filter.BloodGroup = bg
	}
	if rank := extractRank(q.lowered); rank != "" {
		filter.Rank = rank
	}
	if loc := extractLocation(q.lowered); loc != "" {
		filter.UnitContains = loc
	}

	officers, err := e.store.ListOfficers(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("listing officers: %w", err)
	}
	if len(officers) == 0 {
		return msgNoCriteriaMatch, nil
	}

	blocks := make([]string, 0, len(officers))
	for i := range officers {
		o := &officers[i]
		lines := []string{"Officer: " + o.FullName}
		for _, f := range fields {
			lines = append(lines, fmt.Sprintf("%s: %s", f.label, valueOr(f.value(o))))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n"), nil
}
