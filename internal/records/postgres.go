package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the production record store backed by PostgreSQL.
// It is safe for concurrent use by multiple goroutines; concurrency control
// is delegated to the connection pool and the database.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore creates a store on top of an existing connection pool.
// The pool's lifecycle is managed by the caller.
func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{pool: pool, logger: logger}
}

const officerColumns = `army_number, full_name, rank, position, unit,
	date_of_birth, enlistment_date, phone, email, address, blood_group,
	coalesce(photo_url, '')`

func scanOfficer(row pgx.Row) (Officer, error) {
	var o Officer
	err := row.Scan(&o.ArmyNumber, &o.FullName, &o.Rank, &o.Position, &o.Unit,
		&o.DateOfBirth, &o.EnlistmentDate, &o.Phone, &o.Email, &o.Address,
		&o.BloodGroup, &o.PhotoURL)
	return o, err
}

// GetOfficer looks up an officer by army number.
func (s *PostgresStore) GetOfficer(ctx context.Context, armyNumber string) (*Officer, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+officerColumns+` FROM officers WHERE army_number = $1`, armyNumber)
	o, err := scanOfficer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get officer %q: %w", armyNumber, err)
	}
	return &o, nil
}

// filterClause builds the WHERE clause for an OfficerFilter.
// Returns the SQL fragment (starting with " WHERE" when non-empty) and args.
func filterClause(f OfficerFilter) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Rank != "" {
		conds = append(conds, "rank ILIKE "+arg(f.Rank))
	}
	if f.BloodGroup != "" {
		conds = append(conds, "blood_group = "+arg(f.BloodGroup))
	}
	if f.UnitContains != "" {
		conds = append(conds, "unit ILIKE "+arg("%"+f.UnitContains+"%"))
	}
	if f.YearAfter != 0 {
		conds = append(conds, "EXTRACT(YEAR FROM enlistment_date) > "+arg(f.YearAfter))
	}
	if f.YearBefore != 0 {
		conds = append(conds, "EXTRACT(YEAR FROM enlistment_date) < "+arg(f.YearBefore))
	}
	if f.YearSince != 0 {
		conds = append(conds, "EXTRACT(YEAR FROM enlistment_date) >= "+arg(f.YearSince))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListOfficers returns officers matching the filter, ordered by army number.
func (s *PostgresStore) ListOfficers(ctx context.Context, f OfficerFilter) ([]Officer, error) {
	where, args := filterClause(f)
	rows, err := s.pool.Query(ctx,
		`SELECT `+officerColumns+` FROM officers`+where+` ORDER BY army_number`, args...)
	if err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}
	defer rows.Close()

	var out []Officer
	for rows.Next() {
		o, err := scanOfficer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan officer: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}
	return out, nil
}

// CountOfficers counts officers matching the filter.
func (s *PostgresStore) CountOfficers(ctx context.Context, f OfficerFilter) (int, error) {
	where, args := filterClause(f)
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM officers`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count officers: %w", err)
	}
	return count, nil
}

// ListFamily returns the family members of an officer.
func (s *PostgresStore) ListFamily(ctx context.Context, armyNumber string) ([]FamilyMember, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, army_number, name, relation, date_of_birth, occupation, contact
		 FROM family_members WHERE army_number = $1 ORDER BY id`, armyNumber)
	if err != nil {
		return nil, fmt.Errorf("list family: %w", err)
	}
	defer rows.Close()

	var out []FamilyMember
	for rows.Next() {
		var m FamilyMember
		if err := rows.Scan(&m.ID, &m.ArmyNumber, &m.Name, &m.Relation,
			&m.DateOfBirth, &m.Occupation, &m.Contact); err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list family: %w", err)
	}
	return out, nil
}

// ListEducation returns the education records of an officer.
func (s *PostgresStore) ListEducation(ctx context.Context, armyNumber string) ([]EducationRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, army_number, degree, institution, year_of_passing, grade
		 FROM education_records WHERE army_number = $1 ORDER BY id`, armyNumber)
	if err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	defer rows.Close()

	var out []EducationRecord
	for rows.Next() {
		var e EducationRecord
		if err := rows.Scan(&e.ID, &e.ArmyNumber, &e.Degree, &e.Institution,
			&e.YearOfPassing, &e.Grade); err != nil {
			return nil, fmt.Errorf("scan education record: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	return out, nil
}

// ListAwards returns the award records of an officer.
func (s *PostgresStore) ListAwards(ctx context.Context, armyNumber string) ([]AwardRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, army_number, award_name, reason, date_awarded, location
		 FROM award_records WHERE army_number = $1 ORDER BY id`, armyNumber)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	defer rows.Close()
	return scanAwards(rows)
}

func scanAwards(rows pgx.Rows) ([]AwardRecord, error) {
	var out []AwardRecord
	for rows.Next() {
		var a AwardRecord
		if err := rows.Scan(&a.ID, &a.ArmyNumber, &a.AwardName, &a.Reason,
			&a.DateAwarded, &a.Location); err != nil {
			return nil, fmt.Errorf("scan award record: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return out, nil
}

// ListAwardsByName returns awards whose name contains the given string,
// joined to their officers.
func (s *PostgresStore) ListAwardsByName(ctx context.Context, name string) ([]AwardWithOfficer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.army_number, a.award_name, a.reason, a.date_awarded, a.location,
		        o.army_number, o.full_name, o.rank, o.position, o.unit,
		        o.date_of_birth, o.enlistment_date, o.phone, o.email, o.address,
		        o.blood_group, coalesce(o.photo_url, '')
		 FROM award_records a
		 JOIN officers o ON o.army_number = a.army_number
		 WHERE a.award_name ILIKE $1
		 ORDER BY a.id`, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("list awards by name: %w", err)
	}
	defer rows.Close()

	var out []AwardWithOfficer
	for rows.Next() {
		var r AwardWithOfficer
		a := &r.Award
		o := &r.Officer
		if err := rows.Scan(&a.ID, &a.ArmyNumber, &a.AwardName, &a.Reason,
			&a.DateAwarded, &a.Location,
			&o.ArmyNumber, &o.FullName, &o.Rank, &o.Position, &o.Unit,
			&o.DateOfBirth, &o.EnlistmentDate, &o.Phone, &o.Email, &o.Address,
			&o.BloodGroup, &o.PhotoURL); err != nil {
			return nil, fmt.Errorf("scan award with officer: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list awards by name: %w", err)
	}
	return out, nil
}

// CountAwards counts awards whose name contains the given string.
// An empty name counts every award.
func (s *PostgresStore) CountAwards(ctx context.Context, name string) (int, error) {
	var count int
	var err error
	if name == "" {
		err = s.pool.QueryRow(ctx, `SELECT count(*) FROM award_records`).Scan(&count)
	} else {
		err = s.pool.QueryRow(ctx,
			`SELECT count(*) FROM award_records WHERE award_name ILIKE $1`,
			"%"+name+"%").Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count awards: %w", err)
	}
	return count, nil
}

// CountEducation counts education records across all officers.
func (s *PostgresStore) CountEducation(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM education_records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count education records: %w", err)
	}
	return count, nil
}

// DistinctAwardNames returns the distinct award names in the store, sorted.
func (s *PostgresStore) DistinctAwardNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT award_name FROM award_records ORDER BY award_name`)
	if err != nil {
		return nil, fmt.Errorf("distinct award names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan award name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("distinct award names: %w", err)
	}
	return names, nil
}

// SearchRecords performs full-text search across all record types using
// PostgreSQL websearch_to_tsquery, returning at most limit hits ordered by
// record type (officers first) then rank.
func (s *PostgresStore) SearchRecords(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.pool.Query(ctx, searchSQL, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var recordType, f1, f2, f3, f4 string
		if err := rows.Scan(&recordType, &f1, &f2, &f3, &f4); err != nil {
			return nil, fmt.Errorf("scan search hit: %w", err)
		}
		hits = append(hits, hitFromRow(recordType, f1, f2, f3, f4))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	return hits, nil
}

// searchSQL unions a per-type tsvector match over the four record tables.
// Each branch projects up to four display fields into fixed columns so a
// single scan shape serves every record type.
const searchSQL = `
WITH q AS (SELECT websearch_to_tsquery('english', $1) AS tsq)
SELECT t, f1, f2, f3, f4 FROM (
	SELECT 'officer' AS t, 0 AS ord,
	       o.army_number AS f1, o.full_name AS f2, o.rank AS f3, o.unit AS f4,
	       ts_rank(to_tsvector('english',
	           concat_ws(' ', o.army_number, o.full_name, o.rank, o.position, o.unit, o.email)), q.tsq) AS rank
	FROM officers o, q
	WHERE to_tsvector('english',
	      concat_ws(' ', o.army_number, o.full_name, o.rank, o.position, o.unit, o.email)) @@ q.tsq
	UNION ALL
	SELECT 'family', 1, m.name, m.relation, to_char(m.date_of_birth, 'YYYY-MM-DD'), '',
	       ts_rank(to_tsvector('english', concat_ws(' ', m.name, m.relation, m.occupation)), q.tsq)
	FROM family_members m, q
	WHERE to_tsvector('english', concat_ws(' ', m.name, m.relation, m.occupation)) @@ q.tsq
	UNION ALL
	SELECT 'education', 2, e.degree, e.institution, e.year_of_passing::text, e.grade,
	       ts_rank(to_tsvector('english', concat_ws(' ', e.degree, e.institution, e.grade)), q.tsq)
	FROM education_records e, q
	WHERE to_tsvector('english', concat_ws(' ', e.degree, e.institution, e.grade)) @@ q.tsq
	UNION ALL
	SELECT 'award', 3, a.award_name, a.reason, a.location, '',
	       ts_rank(to_tsvector('english', concat_ws(' ', a.award_name, a.reason, a.location)), q.tsq)
	FROM award_records a, q
	WHERE to_tsvector('english', concat_ws(' ', a.award_name, a.reason, a.location)) @@ q.tsq
) hits
ORDER BY ord, rank DESC
LIMIT $2`

// hitFromRow rebuilds the typed field map from the fixed projection columns.
func hitFromRow(recordType, f1, f2, f3, f4 string) SearchHit {
	switch recordType {
	case TypeOfficer:
		return SearchHit{Type: TypeOfficer, Fields: map[string]string{
			"army_number": f1, "full_name": f2, "rank": f3, "unit": f4,
		}}
	case TypeFamily:
		return SearchHit{Type: TypeFamily, Fields: map[string]string{
			"name": f1, "relation": f2, "dob": f3,
		}}
	case TypeEducation:
		return SearchHit{Type: TypeEducation, Fields: map[string]string{
			"degree": f1, "institution": f2, "year_of_passing": f3, "grade": f4,
		}}
	default:
		return SearchHit{Type: recordType, Fields: map[string]string{
			"award_name": f1, "reason": f2, "location": f3,
		}}
	}
}

// PutOfficer inserts or updates an officer (data-entry surface; the chatbot
// engine never calls write methods).
func (s *PostgresStore) PutOfficer(ctx context.Context, o Officer) error {
	var photo *string
	if o.PhotoURL != "" {
		photo = &o.PhotoURL
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO officers (army_number, full_name, rank, position, unit,
			date_of_birth, enlistment_date, phone, email, address, blood_group, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (army_number) DO UPDATE SET
			full_name = EXCLUDED.full_name, rank = EXCLUDED.rank,
			position = EXCLUDED.position, unit = EXCLUDED.unit,
			date_of_birth = EXCLUDED.date_of_birth,
			enlistment_date = EXCLUDED.enlistment_date,
			phone = EXCLUDED.phone, email = EXCLUDED.email,
			address = EXCLUDED.address, blood_group = EXCLUDED.blood_group,
			photo_url = EXCLUDED.photo_url`,
		o.ArmyNumber, o.FullName, o.Rank, o.Position, o.Unit,
		o.DateOfBirth, o.EnlistmentDate, o.Phone, o.Email, o.Address,
		o.BloodGroup, photo)
	if err != nil {
		return fmt.Errorf("put officer %q: %w", o.ArmyNumber, err)
	}
	return nil
}

// DeleteOfficer removes an officer; dependent records cascade in the schema.
func (s *PostgresStore) DeleteOfficer(ctx context.Context, armyNumber string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM officers WHERE army_number = $1`, armyNumber)
	if err != nil {
		return fmt.Errorf("delete officer %q: %w", armyNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFamilyMember inserts a family member row.
func (s *PostgresStore) AddFamilyMember(ctx context.Context, m FamilyMember) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO family_members (army_number, name, relation, date_of_birth, occupation, contact)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ArmyNumber, m.Name, m.Relation, m.DateOfBirth, m.Occupation, m.Contact)
	if err != nil {
		return fmt.Errorf("add family member: %w", err)
	}
	return nil
}

// AddEducation inserts an education row.
func (s *PostgresStore) AddEducation(ctx context.Context, e EducationRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO education_records (army_number, degree, institution, year_of_passing, grade)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ArmyNumber, e.Degree, e.Institution, e.YearOfPassing, e.Grade)
	if err != nil {
		return fmt.Errorf("add education record: %w", err)
	}
	return nil
}

// AddAward inserts an award row.
func (s *PostgresStore) AddAward(ctx context.Context, a AwardRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO award_records (army_number, award_name, reason, date_awarded, location)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ArmyNumber, a.AwardName, a.Reason, a.DateAwarded, a.Location)
	if err != nil {
		return fmt.Errorf("add award record: %w", err)
	}
	return nil
}
