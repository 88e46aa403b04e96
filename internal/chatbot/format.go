package chatbot

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/adarshkumar7463/army-chatbot/internal/export"
	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// User-visible messages for queries that resolve to nothing actionable.
const (
	msgCouldNotUnderstand = "No matching data found. Try changing your question."
	msgCountUnclear       = "Could not determine count query. Please be more specific."
	msgBulkUnclear        = "Could not determine bulk query. Please be more specific."
	msgNoCriteriaMatch    = "No officers found matching the criteria."

	// unavailable is the placeholder shown for missing attributes; the
	// formatter never errors on absent values.
	unavailable = "unavailable"
)

// formatDate renders a date for display, or the placeholder if unset.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return unavailable
	}
	return t.Format("2006-01-02")
}

// valueOr returns the value or the placeholder when empty.
func valueOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return unavailable
	}
	return s
}

// exportBlockTemplate is the HTML fragment wrapping a download link for a
// generated artifact.
var exportBlockTemplate = template.Must(template.New("export").Parse(strings.TrimSpace(`
<div style="text-align:center; margin:15px; padding:10px; border:1px solid #ccc; border-radius:8px;">
    <h2>Army Record System</h2>
    <h4>{{.Title}}</h4>
    <a href="{{.URL}}" class="btn btn-primary" target="_blank">Download {{.Format}} Report</a>
</div>
`)))

// renderExportBlock formats the download block for an exported artifact.
func renderExportBlock(title, fileURL, format string) string {
	var b strings.Builder
	err := exportBlockTemplate.Execute(&b, struct {
		Title, URL, Format string
	}{title, fileURL, strings.ToUpper(format)})
	if err != nil {
		// The template only touches strings; failure here is unreachable
		// short of a programming error.
		return fmt.Sprintf("%s: %s", title, fileURL)
	}
	return b.String()
}

// officersTable renders officers for export.
func officersTable(officers []records.Officer) export.Table {
	t := export.Table{
		Headers: []string{"Army Number", "Full Name", "Rank", "Unit", "DOB", "Phone", "Email"},
	}
	for _, o := range officers {
		t.Rows = append(t.Rows, []string{
			o.ArmyNumber, o.FullName, o.Rank, o.Unit,
			formatDate(o.DateOfBirth), o.Phone, o.Email,
		})
	}
	return t
}

// familyTable renders family members for export.
func familyTable(members []records.FamilyMember) export.Table {
	t := export.Table{
		Headers: []string{"Officer Army No", "Relation", "Name", "DOB", "Contact"},
	}
	for _, m := range members {
		t.Rows = append(t.Rows, []string{
			m.ArmyNumber, m.Relation, m.Name, formatDate(m.DateOfBirth), m.Contact,
		})
	}
	return t
}

// educationTable renders education records for export.
func educationTable(educations []records.EducationRecord) export.Table {
	t := export.Table{
		Headers: []string{"Officer Army No", "Degree", "Institution", "Year", "Grade"},
	}
	for _, e := range educations {
		t.Rows = append(t.Rows, []string{
			e.ArmyNumber, e.Degree, e.Institution,
			fmt.Sprintf("%d", e.YearOfPassing), e.Grade,
		})
	}
	return t
}

// awardsTable renders award records for export.
func awardsTable(awards []records.AwardRecord) export.Table {
	t := export.Table{
		Headers: []string{"Officer Army No", "Award", "Reason", "Location", "Date"},
	}
	for _, a := range awards {
		t.Rows = append(t.Rows, []string{
			a.ArmyNumber, a.AwardName, a.Reason, a.Location, formatDate(a.DateAwarded),
		})
	}
	return t
}

// profileTable renders one officer's full dossier (basic, family, education,
// awards) as Section/Field/Value rows.
func profileTable(o *records.Officer, family []records.FamilyMember,
	educations []records.EducationRecord, awards []records.AwardRecord) export.Table {

	t := export.Table{Headers: []string{"Section", "Field", "Value"}}
	t.Rows = append(t.Rows,
		[]string{"Officer", "Army Number", o.ArmyNumber},
		[]string{"Officer", "Full Name", o.FullName},
		[]string{"Officer", "Rank", o.Rank},
		[]string{"Officer", "Unit", o.Unit},
		[]string{"Officer", "DOB", formatDate(o.DateOfBirth)},
		[]string{"Officer", "Phone", o.Phone},
		[]string{"Officer", "Email", o.Email},
	)
	for _, m := range family {
		t.Rows = append(t.Rows, []string{"Family", m.Relation, m.Name})
	}
	for _, e := range educations {
		t.Rows = append(t.Rows, []string{"Education", e.Degree,
			fmt.Sprintf("%s (%d)", e.Institution, e.YearOfPassing)})
	}
	for _, a := range awards {
		t.Rows = append(t.Rows, []string{"Award", a.AwardName,
			fmt.Sprintf("%s at %s (%s)", a.Reason, a.Location, formatDate(a.DateAwarded))})
	}
	return t
}
