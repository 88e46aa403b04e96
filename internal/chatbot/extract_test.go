package chatbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarshkumar7463/army-chatbot/internal/log"
	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

func TestArmyNumberPattern(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"details of a1234b", "a1234b"},
		{"details of 12345", "12345"},
		{"show officer AB12CD", "AB12CD"},
		{"no identifier here", ""},
	}
	for _, tt := range tests {
		got := armyNumberPattern.FindString(tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}

func TestExtractLocation(t *testing.T) {
	// Gazetteer membership wins over the "in <place>" fallback.
	assert.Equal(t, "Kashmir", extractLocation("officers posted in kashmir valley"))

	// Unknown place, phrase fallback.
	assert.Equal(t, "Pune cantonment", extractLocation("officers in pune cantonment"))

	assert.Equal(t, "", extractLocation("how many colonels"))
}

func TestExtractRank(t *testing.T) {
	assert.Equal(t, "Colonel", extractRank("list colonel officers"))
	assert.Equal(t, "Brigadier", extractRank("how many BRIGADIER ranks"))
	assert.Equal(t, "", extractRank("list officers"))
}

func TestExtractBloodGroup(t *testing.T) {
	assert.Equal(t, "B+", extractBloodGroup("officers with blood group b+"))
	assert.Equal(t, "AB-", extractBloodGroup("blood AB-"))
	assert.Equal(t, "O", extractBloodGroup("blood group o"))
	assert.Equal(t, "", extractBloodGroup("no group here"))
}

func TestExtractBloodGroupFilter(t *testing.T) {
	assert.Equal(t, "B+", extractBloodGroupFilter("give me names of officers with group b+"))
	assert.Equal(t, "", extractBloodGroupFilter("give me names of officers"))
}

func TestExtractYearComparison(t *testing.T) {
	yc, ok := extractYearComparison("officers enlisted after 2015")
	require.True(t, ok)
	assert.Equal(t, yearComparison{direction: "after", year: 2015}, yc)

	yc, ok = extractYearComparison("enlisted since 2010")
	require.True(t, ok)
	assert.Equal(t, yearComparison{direction: "since", year: 2010}, yc)

	_, ok = extractYearComparison("enlisted recently")
	assert.False(t, ok)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Kashmir", capitalize("KASHMIR"))
	assert.Equal(t, "Tamil nadu", capitalize("tamil nadu"))
	assert.Equal(t, "", capitalize(""))
}

func TestExtractTargetOfficer(t *testing.T) {
	ctx := context.Background()
	store := records.NewMemoryStore()
	require.NoError(t, store.PutOfficer(ctx, records.Officer{
		ArmyNumber: "A1234B", FullName: "Arjun Singh", Rank: "Colonel",
	}))
	e := New(store, nil, log.NewNop(), nil)

	// Exact identifier lookup, case-normalised.
	o, err := e.extractTargetOfficer(ctx, "details of a1234b")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "A1234B", o.ArmyNumber)

	// Unknown identifier falls through to fuzzy name matching.
	o, err = e.extractTargetOfficer(ctx, "details of z9999x arjun singh")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "Arjun Singh", o.FullName)

	// Nothing resolvable.
	o, err = e.extractTargetOfficer(ctx, "nothing to see")
	require.NoError(t, err)
	assert.Nil(t, o)
}
