package records

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarshkumar7463/army-chatbot/internal/testutil"
)

func seedPostgresStore(t *testing.T, s *PostgresStore) {
	t.Helper()
	ctx := context.Background()

	officers := []Officer{
		{
			ArmyNumber: "A1234B", FullName: "Arjun Singh", Rank: "Colonel",
			Position: "Commanding Officer", Unit: "5 Kashmir Rifles",
			BloodGroup:  "B+",
			DateOfBirth: time.Date(1980, 4, 12, 0, 0, 0, 0, time.UTC),
			EnlistmentDate: time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC),
			Phone:          "9876543210", Email: "arjun@army.example",
			Address: "Srinagar",
		},
		{
			ArmyNumber: "C5678D", FullName: "Vikram Rathore", Rank: "Major",
			Unit: "11 Ladakh Scouts", BloodGroup: "O+",
			EnlistmentDate: time.Date(2016, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, o := range officers {
		require.NoError(t, s.PutOfficer(ctx, o))
	}
	require.NoError(t, s.AddFamilyMember(ctx, FamilyMember{
		ArmyNumber: "A1234B", Name: "Devendra Singh", Relation: "Father",
		DateOfBirth: time.Date(1955, 1, 2, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, s.AddEducation(ctx, EducationRecord{
		ArmyNumber: "A1234B", Degree: "B.Tech", Institution: "NDA Pune",
		YearOfPassing: 2000, Grade: "A",
	}))
	require.NoError(t, s.AddAward(ctx, AwardRecord{
		ArmyNumber: "A1234B", AwardName: "Vir Chakra", Reason: "Gallantry",
		DateAwarded: time.Date(2019, 8, 15, 0, 0, 0, 0, time.UTC), Location: "Delhi",
	}))
}

func TestPostgresStore_Integration(t *testing.T) {
	testDB, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPostgresStore(testDB.Pool, slog.New(slog.DiscardHandler))
	seedPostgresStore(t, store)

	t.Run("get officer", func(t *testing.T) {
		o, err := store.GetOfficer(ctx, "A1234B")
		require.NoError(t, err)
		assert.Equal(t, "Arjun Singh", o.FullName)
		assert.Equal(t, "B+", o.BloodGroup)

		_, err = store.GetOfficer(ctx, "Z9999Z")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		o, err := store.GetOfficer(ctx, "C5678D")
		require.NoError(t, err)
		o.Rank = "Lieutenant"
		require.NoError(t, store.PutOfficer(ctx, *o))

		got, err := store.GetOfficer(ctx, "C5678D")
		require.NoError(t, err)
		assert.Equal(t, "Lieutenant", got.Rank)

		// Restore for the filter assertions below.
		o.Rank = "Major"
		require.NoError(t, store.PutOfficer(ctx, *o))
	})

	t.Run("filters", func(t *testing.T) {
		got, err := store.ListOfficers(ctx, OfficerFilter{Rank: "colonel"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A1234B", got[0].ArmyNumber)

		n, err := store.CountOfficers(ctx, OfficerFilter{UnitContains: "ladakh"})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = store.CountOfficers(ctx, OfficerFilter{YearAfter: 2010})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = store.CountOfficers(ctx, OfficerFilter{YearSince: 2001})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("dependent records", func(t *testing.T) {
		family, err := store.ListFamily(ctx, "A1234B")
		require.NoError(t, err)
		require.Len(t, family, 1)
		assert.Equal(t, "Devendra Singh", family[0].Name)

		educations, err := store.ListEducation(ctx, "A1234B")
		require.NoError(t, err)
		require.Len(t, educations, 1)
		assert.Equal(t, 2000, educations[0].YearOfPassing)

		awards, err := store.ListAwards(ctx, "A1234B")
		require.NoError(t, err)
		require.Len(t, awards, 1)
		assert.Equal(t, "Vir Chakra", awards[0].AwardName)
	})

	t.Run("awards by name", func(t *testing.T) {
		joined, err := store.ListAwardsByName(ctx, "vir")
		require.NoError(t, err)
		require.Len(t, joined, 1)
		assert.Equal(t, "Arjun Singh", joined[0].Officer.FullName)

		n, err := store.CountAwards(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		names, err := store.DistinctAwardNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Vir Chakra"}, names)
	})

	t.Run("full text search", func(t *testing.T) {
		hits, err := store.SearchRecords(ctx, "gallantry", 10)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, TypeAward, hits[0].Type)
		assert.Equal(t, "Vir Chakra", hits[0].Fields["award_name"])

		hits, err = store.SearchRecords(ctx, "arjun", 10)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, TypeOfficer, hits[0].Type)

		hits, err = store.SearchRecords(ctx, "nosuchterm", 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, store.DeleteOfficer(ctx, "A1234B"))

		_, err := store.GetOfficer(ctx, "A1234B")
		assert.ErrorIs(t, err, ErrNotFound)

		family, err := store.ListFamily(ctx, "A1234B")
		require.NoError(t, err)
		assert.Empty(t, family)

		assert.ErrorIs(t, store.DeleteOfficer(ctx, "A1234B"), ErrNotFound)
	})
}
