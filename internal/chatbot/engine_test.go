package chatbot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarshkumar7463/army-chatbot/internal/export"
	"github.com/adarshkumar7463/army-chatbot/internal/log"
	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// fakeExporter records invocations and returns a fixed URL.
type fakeExporter struct {
	calls  int
	lastT  export.Table
	format string
}

func (f *fakeExporter) Export(t export.Table, _, _, format string) (string, error) {
	f.calls++
	f.lastT = t
	f.format = format
	return "/exports/test-artifact." + format, nil
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func seedStore(t *testing.T) *records.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := records.NewMemoryStore()

	officers := []records.Officer{
		{
			ArmyNumber: "A1234B", FullName: "Arjun Singh", Rank: "Colonel",
			Unit: "5 Kashmir Rifles", BloodGroup: "B+",
			DateOfBirth: date(1980, 4, 12), EnlistmentDate: date(2001, 6, 1),
			Phone: "9876543210", Email: "arjun@army.example",
		},
		{
			ArmyNumber: "C5678D", FullName: "Vikram Rathore", Rank: "Major",
			Unit: "11 Ladakh Scouts", BloodGroup: "O+",
			EnlistmentDate: date(2016, 3, 15),
		},
		{
			ArmyNumber: "E9012F", FullName: "Rohan Mehta", Rank: "Colonel",
			Unit: "3 Punjab Regiment", BloodGroup: "B+",
			EnlistmentDate: date(2010, 1, 20),
		},
	}
	for _, o := range officers {
		require.NoError(t, store.PutOfficer(ctx, o))
	}

	require.NoError(t, store.AddFamilyMember(ctx, records.FamilyMember{
		ArmyNumber: "A1234B", Name: "Devendra Singh", Relation: "Father",
		DateOfBirth: date(1955, 1, 2),
	}))
	require.NoError(t, store.AddEducation(ctx, records.EducationRecord{
		ArmyNumber: "A1234B", Degree: "B.Tech", Institution: "NDA Pune",
		YearOfPassing: 2000, Grade: "A",
	}))
	require.NoError(t, store.AddAward(ctx, records.AwardRecord{
		ArmyNumber: "A1234B", AwardName: "Vir Chakra", Reason: "Gallantry",
		DateAwarded: date(2019, 8, 15), Location: "Delhi",
	}))
	require.NoError(t, store.AddAward(ctx, records.AwardRecord{
		ArmyNumber: "E9012F", AwardName: "Sena Medal", Reason: "Distinguished service",
		DateAwarded: date(2021, 1, 26), Location: "Delhi",
	}))
	return store
}

func newTestEngine(t *testing.T) (*Engine, *fakeExporter) {
	t.Helper()
	exp := &fakeExporter{}
	return New(seedStore(t), exp, log.NewNop(), nil), exp
}

func TestHandleQuery_CountByLocation(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "how many officers in Kashmir")
	require.NoError(t, err)
	assert.Equal(t, "Total officers in Kashmir: 1", resp)
}

func TestHandleQuery_CountBeatsListing(t *testing.T) {
	e, _ := newTestEngine(t)

	// Contains both a count cue ("how many") and a listing cue ("all");
	// count wins by dispatch order.
	resp, err := e.HandleQuery(context.Background(), "how many colonel officers, list all")
	require.NoError(t, err)
	assert.Equal(t, "Total Colonels: 2", resp)
}

func TestHandleQuery_CountByEnlistmentYear(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	resp, err := e.HandleQuery(ctx, "how many officers enlisted after 2010")
	require.NoError(t, err)
	assert.Equal(t, "Officers enlisted after 2010: 1", resp)

	resp, err = e.HandleQuery(ctx, "how many officers enlisted before 2010")
	require.NoError(t, err)
	assert.Equal(t, "Officers enlisted before 2010: 1", resp)

	// "in <year>" counts that year onwards.
	resp, err = e.HandleQuery(ctx, "how many officers enlisted in 2010")
	require.NoError(t, err)
	assert.Equal(t, "Officers enlisted in 2010: 2", resp)
}

func TestHandleQuery_CountAwards(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	resp, err := e.HandleQuery(ctx, "how many officers have the vir chakra award")
	require.NoError(t, err)
	assert.Equal(t, "Officers with Vir Chakra award: 1", resp)

	resp, err = e.HandleQuery(ctx, "how many total awards")
	require.NoError(t, err)
	assert.Equal(t, "Total awards given: 2", resp)
}

func TestHandleQuery_CountUnclear(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "how many")
	require.NoError(t, err)
	assert.Equal(t, msgCountUnclear, resp)
}

func TestHandleQuery_BulkByRank(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "list colonel officers")
	require.NoError(t, err)
	assert.Contains(t, resp, "Colonels:")
	assert.Contains(t, resp, "Arjun Singh - 5 Kashmir Rifles")
	assert.Contains(t, resp, "Rohan Mehta - 3 Punjab Regiment")
}

func TestHandleQuery_BulkEmptyResult(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "list officers in Goa")
	require.NoError(t, err)
	assert.Equal(t, "No officers found in Goa", resp)
}

func TestHandleQuery_BulkExportInvokedOnce(t *testing.T) {
	e, exp := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "list colonel officers as pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, exp.calls)
	assert.Equal(t, "pdf", exp.format)
	assert.Len(t, exp.lastT.Rows, 2)
	assert.Contains(t, resp, "Download PDF Report")
	assert.Contains(t, resp, "/exports/test-artifact.pdf")
	assert.NotContains(t, resp, "Arjun Singh - ")
}

func TestHandleQuery_BulkAwards(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "all officers with sena medal award")
	require.NoError(t, err)
	assert.Contains(t, resp, "Officers with Sena Medal award:")
	assert.Contains(t, resp, "Rohan Mehta - Sena Medal (2021)")
}

func TestHandleQuery_MultiField(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(),
		"give me name and email of officers with blood group B+")
	require.NoError(t, err)

	assert.Contains(t, resp, "Officer: Arjun Singh")
	assert.Contains(t, resp, "Email: arjun@army.example")
	assert.Contains(t, resp, "Officer: Rohan Mehta")
	// Rohan has no email on record.
	assert.Contains(t, resp, "Email: unavailable")
	assert.NotContains(t, resp, "Vikram Rathore")
}

func TestHandleQuery_MultiFieldNoMatches(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(),
		"give me rank of officers with blood group AB-")
	require.NoError(t, err)
	assert.Equal(t, msgNoCriteriaMatch, resp)
}

func TestHandleQuery_DetailByIdentifier(t *testing.T) {
	e, _ := newTestEngine(t)

	// Identifier round-trip: the stored army number resolves the subject,
	// case-insensitively.
	resp, err := e.HandleQuery(context.Background(), "a1234b")
	require.NoError(t, err)
	assert.Contains(t, resp, "Name: Arjun Singh")
	assert.Contains(t, resp, "Army ID: A1234B")
}

func TestHandleQuery_DetailSections(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	resp, err := e.HandleQuery(ctx, "family of A1234B")
	require.NoError(t, err)
	assert.Contains(t, resp, "Father: Devendra Singh (DOB: 1955-01-02)")

	resp, err = e.HandleQuery(ctx, "education and awards of A1234B")
	require.NoError(t, err)
	assert.Contains(t, resp, "Education: B.Tech from NDA Pune (2000) - Grade: A")
	assert.Contains(t, resp, "Award: Vir Chakra (2019-08-15) for Gallantry")
}

func TestHandleQuery_DetailByFuzzyName(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "vikram rathore")
	require.NoError(t, err)
	assert.Contains(t, resp, "Name: Vikram Rathore")
	assert.Contains(t, resp, "Army ID: C5678D")
}

func TestHandleQuery_DetailExportPrecedence(t *testing.T) {
	e, exp := newTestEngine(t)

	// Family, education and awards are all mentioned; family wins and only
	// one artifact is produced.
	resp, err := e.HandleQuery(context.Background(),
		"family education and award records of A1234B as excel")
	require.NoError(t, err)

	assert.Equal(t, 1, exp.calls)
	assert.Equal(t, "excel", exp.format)
	require.Len(t, exp.lastT.Rows, 1)
	assert.Contains(t, exp.lastT.Rows[0], "Devendra Singh")
	assert.Contains(t, resp, "Family of Arjun Singh")
}

func TestHandleQuery_Fallback(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "devendra")
	require.NoError(t, err)
	assert.Contains(t, resp, "Family Member: Devendra Singh, Relation: Father")
}

func TestHandleQuery_FallbackNoHits(t *testing.T) {
	e, _ := newTestEngine(t)

	resp, err := e.HandleQuery(context.Background(), "xyzzy qwerty")
	require.NoError(t, err)
	assert.Equal(t, msgCouldNotUnderstand, resp)
}
