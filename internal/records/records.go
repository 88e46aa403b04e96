// Package records defines the personnel record entities and the record store
// implementations that back the chatbot engine.
//
// The store exposes read paths (lookup, filtered list/count, full-text
// search) consumed by the query engine, and the narrow write paths used by
// data-entry surfaces and seeding. The engine itself never writes.
package records

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Officer is the personnel record being queried. ArmyNumber is the unique,
// immutable identifier and primary lookup key.
type Officer struct {
	ArmyNumber     string
	FullName       string
	Rank           string
	Position       string
	Unit           string
	DateOfBirth    time.Time
	EnlistmentDate time.Time
	Phone          string
	Email          string
	Address        string
	BloodGroup     string
	PhotoURL       string // optional
}

// FamilyMember belongs to exactly one Officer.
type FamilyMember struct {
	ID          int64
	ArmyNumber  string
	Name        string
	Relation    string
	DateOfBirth time.Time
	Occupation  string
	Contact     string
}

// EducationRecord belongs to exactly one Officer.
type EducationRecord struct {
	ID            int64
	ArmyNumber    string
	Degree        string
	Institution   string
	YearOfPassing int
	Grade         string
}

// AwardRecord belongs to exactly one Officer.
type AwardRecord struct {
	ID          int64
	ArmyNumber  string
	AwardName   string
	Reason      string
	DateAwarded time.Time
	Location    string
}

// AwardWithOfficer is an award row joined to its owning officer, used by
// bulk award listings and exports.
type AwardWithOfficer struct {
	Award   AwardRecord
	Officer Officer
}

// OfficerFilter selects officers by AND-combined attribute predicates.
// Zero values mean "no constraint". At most one of the Year fields may be
// set; YearSince is inclusive.
type OfficerFilter struct {
	Rank         string // exact match, case-insensitive
	BloodGroup   string // exact match
	UnitContains string // substring match, case-insensitive
	YearAfter    int    // enlistment year strictly greater
	YearBefore   int    // enlistment year strictly less
	YearSince    int    // enlistment year greater or equal
}

// IsZero reports whether the filter has no constraints.
func (f OfficerFilter) IsZero() bool {
	return f == OfficerFilter{}
}

// Store is the full record store contract, implemented by MemoryStore and
// PostgresStore. Consumers should depend on narrower interfaces (the engine
// and API declare their own); Store exists for wiring code that hands one
// implementation to several consumers.
type Store interface {
	GetOfficer(ctx context.Context, armyNumber string) (*Officer, error)
	ListOfficers(ctx context.Context, f OfficerFilter) ([]Officer, error)
	CountOfficers(ctx context.Context, f OfficerFilter) (int, error)
	ListFamily(ctx context.Context, armyNumber string) ([]FamilyMember, error)
	ListEducation(ctx context.Context, armyNumber string) ([]EducationRecord, error)
	ListAwards(ctx context.Context, armyNumber string) ([]AwardRecord, error)
	ListAwardsByName(ctx context.Context, name string) ([]AwardWithOfficer, error)
	CountAwards(ctx context.Context, name string) (int, error)
	CountEducation(ctx context.Context) (int, error)
	DistinctAwardNames(ctx context.Context) ([]string, error)
	SearchRecords(ctx context.Context, query string, limit int) ([]SearchHit, error)

	PutOfficer(ctx context.Context, o Officer) error
	DeleteOfficer(ctx context.Context, armyNumber string) error
	AddFamilyMember(ctx context.Context, m FamilyMember) error
	AddEducation(ctx context.Context, e EducationRecord) error
	AddAward(ctx context.Context, a AwardRecord) error
}

// Record type tags carried by search hits.
const (
	TypeOfficer   = "officer"
	TypeFamily    = "family"
	TypeEducation = "education"
	TypeAward     = "award"
)

// SearchHit is one full-text search result, tagged with its record type.
// Fields holds that type's display attributes (e.g. "full_name", "rank" for
// an officer hit).
type SearchHit struct {
	Type   string
	Fields map[string]string
}
