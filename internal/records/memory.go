package records

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory record store. It is used by unit tests and by
// `serve --dev`, and is safe for concurrent use.
//
// Officers keep insertion order so that linear scans (fuzzy name resolution,
// unfiltered listings) are deterministic given stable input order.
type MemoryStore struct {
	mu        sync.RWMutex
	officers  map[string]Officer
	order     []string // army numbers in insertion order
	family    map[string][]FamilyMember
	education map[string][]EducationRecord
	awards    map[string][]AwardRecord
	nextID    int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		officers:  make(map[string]Officer),
		family:    make(map[string][]FamilyMember),
		education: make(map[string][]EducationRecord),
		awards:    make(map[string][]AwardRecord),
	}
}

// PutOfficer inserts or replaces an officer record.
func (s *MemoryStore) PutOfficer(_ context.Context, o Officer) error {
	if o.ArmyNumber == "" {
		return fmt.Errorf("army number is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.officers[o.ArmyNumber]; !exists {
		s.order = append(s.order, o.ArmyNumber)
	}
	s.officers[o.ArmyNumber] = o
	return nil
}

// DeleteOfficer removes an officer and cascades to dependent records.
func (s *MemoryStore) DeleteOfficer(_ context.Context, armyNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.officers[armyNumber]; !ok {
		return ErrNotFound
	}
	delete(s.officers, armyNumber)
	delete(s.family, armyNumber)
	delete(s.education, armyNumber)
	delete(s.awards, armyNumber)
	for i, n := range s.order {
		if n == armyNumber {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// AddFamilyMember appends a family member to an existing officer.
func (s *MemoryStore) AddFamilyMember(_ context.Context, m FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.officers[m.ArmyNumber]; !ok {
		return fmt.Errorf("officer %q: %w", m.ArmyNumber, ErrNotFound)
	}
	s.nextID++
	m.ID = s.nextID
	s.family[m.ArmyNumber] = append(s.family[m.ArmyNumber], m)
	return nil
}

// AddEducation appends an education record to an existing officer.
func (s *MemoryStore) AddEducation(_ context.Context, e EducationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.officers[e.ArmyNumber]; !ok {
		return fmt.Errorf("officer %q: %w", e.ArmyNumber, ErrNotFound)
	}
	s.nextID++
	e.ID = s.nextID
	s.education[e.ArmyNumber] = append(s.education[e.ArmyNumber], e)
	return nil
}

// AddAward appends an award record to an existing officer.
func (s *MemoryStore) AddAward(_ context.Context, a AwardRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.officers[a.ArmyNumber]; !ok {
		return fmt.Errorf("officer %q: %w", a.ArmyNumber, ErrNotFound)
	}
	s.nextID++
	a.ID = s.nextID
	s.awards[a.ArmyNumber] = append(s.awards[a.ArmyNumber], a)
	return nil
}

// GetOfficer looks up an officer by army number.
func (s *MemoryStore) GetOfficer(_ context.Context, armyNumber string) (*Officer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.officers[armyNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

// ListOfficers returns officers matching the filter in insertion order.
func (s *MemoryStore) ListOfficers(_ context.Context, f OfficerFilter) ([]Officer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Officer
	for _, n := range s.order {
		o := s.officers[n]
		if matchesFilter(o, f) {
			out = append(out, o)
		}
	}
	return out, nil
}

// CountOfficers counts officers matching the filter.
func (s *MemoryStore) CountOfficers(ctx context.Context, f OfficerFilter) (int, error) {
	officers, err := s.ListOfficers(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(officers), nil
}

// ListFamily returns the family members of an officer.
func (s *MemoryStore) ListFamily(_ context.Context, armyNumber string) ([]FamilyMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]FamilyMember(nil), s.family[armyNumber]...), nil
}

// ListEducation returns the education records of an officer.
func (s *MemoryStore) ListEducation(_ context.Context, armyNumber string) ([]EducationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]EducationRecord(nil), s.education[armyNumber]...), nil
}

// ListAwards returns the award records of an officer.
func (s *MemoryStore) ListAwards(_ context.Context, armyNumber string) ([]AwardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AwardRecord(nil), s.awards[armyNumber]...), nil
}

// ListAwardsByName returns all awards whose name contains the given string
// (case-insensitive), joined to their officers.
func (s *MemoryStore) ListAwardsByName(_ context.Context, name string) ([]AwardWithOfficer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(name)
	var out []AwardWithOfficer
	for _, n := range s.order {
		for _, a := range s.awards[n] {
			if strings.Contains(strings.ToLower(a.AwardName), needle) {
				out = append(out, AwardWithOfficer{Award: a, Officer: s.officers[n]})
			}
		}
	}
	return out, nil
}

// CountAwards counts awards whose name contains the given string.
// An empty name counts every award.
func (s *MemoryStore) CountAwards(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(name)
	count := 0
	for _, list := range s.awards {
		for _, a := range list {
			if name == "" || strings.Contains(strings.ToLower(a.AwardName), needle) {
				count++
			}
		}
	}
	return count, nil
}

// CountEducation counts education records across all officers.
func (s *MemoryStore) CountEducation(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, list := range s.education {
		count += len(list)
	}
	return count, nil
}

// DistinctAwardNames returns the distinct award names in the store, sorted.
func (s *MemoryStore) DistinctAwardNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for _, list := range s.awards {
		for _, a := range list {
			if !seen[a.AwardName] {
				seen[a.AwardName] = true
				names = append(names, a.AwardName)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// SearchRecords performs a case-insensitive substring search across all
// record types, returning at most limit hits. Officers are scanned first,
// then family, education and award records, in insertion order.
func (s *MemoryStore) SearchRecords(_ context.Context, query string, limit int) ([]SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(query)
	var hits []SearchHit

	add := func(h SearchHit) bool {
		hits = append(hits, h)
		return limit > 0 && len(hits) >= limit
	}

	for _, n := range s.order {
		o := s.officers[n]
		if containsAny(needle, o.ArmyNumber, o.FullName, o.Rank, o.Position, o.Unit, o.Phone, o.Email) {
			if add(officerHit(o)) {
				return hits, nil
			}
		}
	}
	for _, n := range s.order {
		for _, m := range s.family[n] {
			if containsAny(needle, m.Name, m.Relation, m.Occupation) {
				if add(familyHit(m)) {
					return hits, nil
				}
			}
		}
	}
	for _, n := range s.order {
		for _, e := range s.education[n] {
			if containsAny(needle, e.Degree, e.Institution, e.Grade) {
				if add(educationHit(e)) {
					return hits, nil
				}
			}
		}
	}
	for _, n := range s.order {
		for _, a := range s.awards[n] {
			if containsAny(needle, a.AwardName, a.Reason, a.Location) {
				if add(awardHit(a)) {
					return hits, nil
				}
			}
		}
	}
	return hits, nil
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func matchesFilter(o Officer, f OfficerFilter) bool {
	if f.Rank != "" && !strings.EqualFold(o.Rank, f.Rank) {
		return false
	}
	if f.BloodGroup != "" && o.BloodGroup != f.BloodGroup {
		return false
	}
	if f.UnitContains != "" && !strings.Contains(strings.ToLower(o.Unit), strings.ToLower(f.UnitContains)) {
		return false
	}
	year := o.EnlistmentDate.Year()
	if f.YearAfter != 0 && year <= f.YearAfter {
		return false
	}
	if f.YearBefore != 0 && year >= f.YearBefore {
		return false
	}
	if f.YearSince != 0 && year < f.YearSince {
		return false
	}
	return true
}

func officerHit(o Officer) SearchHit {
	return SearchHit{Type: TypeOfficer, Fields: map[string]string{
		"army_number": o.ArmyNumber,
		"full_name":   o.FullName,
		"rank":        o.Rank,
		"unit":        o.Unit,
	}}
}

func familyHit(m FamilyMember) SearchHit {
	return SearchHit{Type: TypeFamily, Fields: map[string]string{
		"name":     m.Name,
		"relation": m.Relation,
		"dob":      m.DateOfBirth.Format("2006-01-02"),
	}}
}

func educationHit(e EducationRecord) SearchHit {
	return SearchHit{Type: TypeEducation, Fields: map[string]string{
		"degree":          e.Degree,
		"institution":     e.Institution,
		"year_of_passing": fmt.Sprintf("%d", e.YearOfPassing),
		"grade":           e.Grade,
	}}
}

func awardHit(a AwardRecord) SearchHit {
	return SearchHit{Type: TypeAward, Fields: map[string]string{
		"award_name": a.AwardName,
		"reason":     a.Reason,
		"location":   a.Location,
	}}
}
