package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aimldept/deptbot-go/internal/content"
	domerrors "github.com/aimldept/deptbot-go/internal/errors"
)

// FacultyFilter narrows ListFaculty results. Zero values mean no filtering.
type FacultyFilter struct {
	Designation    string // substring, case-insensitive
	Specialization string // substring match on the serialized list
}

// CourseFilter narrows ListCourses results. Zero values mean no filtering.
type CourseFilter struct {
	Semester   string // exact semester label prefix digit ("5" matches "5th")
	Instructor string // substring, case-insensitive
	Credits    int    // exact, 0 = no filter
}

// SaveFacultyBatch replaces faculty rows from fixture records in one transaction.
func (db *DB) SaveFacultyBatch(ctx context.Context, records []content.FacultyRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO faculty (id, name, designation, qualification, email, phone, office,
			office_hours, specialization, research_areas, publications, experience, courses, seeded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			designation = excluded.designation,
			qualification = excluded.qualification,
			email = excluded.email,
			phone = excluded.phone,
			office = excluded.office,
			office_hours = excluded.office_hours,
			specialization = excluded.specialization,
			research_areas = excluded.research_areas,
			publications = excluded.publications,
			experience = excluded.experience,
			courses = excluded.courses,
			seeded_at = excluded.seeded_at
	`

	seededAt := time.Now().Unix()
	start := time.Now()
	err := db.execBatch(ctx, query, func(stmt *sql.Stmt) error {
		for i := range records {
			f := &records[i]
			if _, err := stmt.ExecContext(ctx,
				f.ID, f.Name, f.Designation, f.Qualification, f.Email, f.Phone, f.Office,
				f.OfficeHours, marshalList(f.Specialization), marshalList(f.ResearchAreas),
				f.Publications, f.Experience, marshalList(f.Courses), seededAt,
			); err != nil {
				return fmt.Errorf("save faculty %s: %w", f.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logSlowBatch(ctx, "SaveFacultyBatch", len(records), time.Since(start))
	return nil
}

// GetFacultyByID retrieves one faculty record. Returns ErrNotFound when absent.
func (db *DB) GetFacultyByID(ctx context.Context, id string) (*content.FacultyRecord, error) {
	query := `SELECT id, name, designation, qualification, email, phone, office,
		office_hours, specialization, research_areas, publications, experience, courses
		FROM faculty WHERE id = ?`

	var f content.FacultyRecord
	var spec, areas, courses string
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.Designation, &f.Qualification, &f.Email, &f.Phone, &f.Office,
		&f.OfficeHours, &spec, &areas, &f.Publications, &f.Experience, &courses,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("faculty %q: %w", id, domerrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query faculty: %w", err)
	}

	f.Specialization = unmarshalList(spec)
	f.ResearchAreas = unmarshalList(areas)
	f.Courses = unmarshalList(courses)
	return &f, nil
}

// ListFaculty returns faculty rows matching the filter, ordered by id.
func (db *DB) ListFaculty(ctx context.Context, filter FacultyFilter) ([]content.FacultyRecord, error) {
	query := `SELECT id, name, designation, qualification, email, phone, office,
		office_hours, specialization, research_areas, publications, experience, courses
		FROM faculty`

	var conds []string
	var args []any
	if filter.Designation != "" {
		conds = append(conds, "LOWER(designation) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Designation)+"%")
	}
	if filter.Specialization != "" {
		conds = append(conds, "LOWER(specialization) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Specialization)+"%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []content.FacultyRecord
	for rows.Next() {
		var f content.FacultyRecord
		var spec, areas, courses string
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Designation, &f.Qualification, &f.Email, &f.Phone, &f.Office,
			&f.OfficeHours, &spec, &areas, &f.Publications, &f.Experience, &courses,
		); err != nil {
			return nil, fmt.Errorf("scan faculty row: %w", err)
		}
		f.Specialization = unmarshalList(spec)
		f.ResearchAreas = unmarshalList(areas)
		f.Courses = unmarshalList(courses)
		out = append(out, f)
	}
	return out, rows.Err()
}

// SaveCoursesBatch replaces course rows from fixture records in one transaction.
func (db *DB) SaveCoursesBatch(ctx context.Context, records []content.CourseRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO courses (id, code, name, credits, semester, course_type, instructor,
			contact_hours, cie_marks, see_marks, description, prerequisites, objectives,
			outcomes, topics, seeded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name,
			credits = excluded.credits,
			semester = excluded.semester,
			course_type = excluded.course_type,
			instructor = excluded.instructor,
			contact_hours = excluded.contact_hours,
			cie_marks = excluded.cie_marks,
			see_marks = excluded.see_marks,
			description = excluded.description,
			prerequisites = excluded.prerequisites,
			objectives = excluded.objectives,
			outcomes = excluded.outcomes,
			topics = excluded.topics,
			seeded_at = excluded.seeded_at
	`

	seededAt := time.Now().Unix()
	start := time.Now()
	err := db.execBatch(ctx, query, func(stmt *sql.Stmt) error {
		for i := range records {
			c := &records[i]
			if _, err := stmt.ExecContext(ctx,
				c.ID, c.Code, c.Name, c.Credits, c.Semester, c.CourseType, c.Instructor,
				c.ContactHours, c.CIEMarks, c.SEEMarks, c.Description,
				marshalList(c.Prerequisites), marshalList(c.Objectives),
				marshalList(c.Outcomes), marshalList(c.Topics), seededAt,
			); err != nil {
				return fmt.Errorf("save course %s: %w", c.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logSlowBatch(ctx, "SaveCoursesBatch", len(records), time.Since(start))
	return nil
}

// GetCourseByID retrieves one course by id or code. Returns ErrNotFound when absent.
func (db *DB) GetCourseByID(ctx context.Context, idOrCode string) (*content.CourseRecord, error) {
	query := courseSelect + ` WHERE id = ? OR code = ?`

	row := db.conn.QueryRowContext(ctx, query, idOrCode, strings.ToUpper(idOrCode))
	c, err := scanCourse(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("course %q: %w", idOrCode, domerrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query course: %w", err)
	}
	return c, nil
}

const courseSelect = `SELECT id, code, name, credits, semester, course_type, instructor,
	contact_hours, cie_marks, see_marks, description, prerequisites, objectives, outcomes, topics
	FROM courses`

func scanCourse(scan func(...any) error) (*content.CourseRecord, error) {
	var c content.CourseRecord
	var prereq, objectives, outcomes, topics string
	err := scan(
		&c.ID, &c.Code, &c.Name, &c.Credits, &c.Semester, &c.CourseType, &c.Instructor,
		&c.ContactHours, &c.CIEMarks, &c.SEEMarks, &c.Description,
		&prereq, &objectives, &outcomes, &topics,
	)
	if err != nil {
		return nil, err
	}
	c.Prerequisites = unmarshalList(prereq)
	c.Objectives = unmarshalList(objectives)
	c.Outcomes = unmarshalList(outcomes)
	c.Topics = unmarshalList(topics)
	return &c, nil
}

// ListCourses returns course rows matching the filter, ordered by code.
func (db *DB) ListCourses(ctx context.Context, filter CourseFilter) ([]content.CourseRecord, error) {
	query := courseSelect

	var conds []string
	var args []any
	if filter.Semester != "" {
		// "5" matches "5th"; a full label like "5th" matches itself.
		conds = append(conds, "semester LIKE ?")
		args = append(args, filter.Semester+"%")
	}
	if filter.Instructor != "" {
		conds = append(conds, "LOWER(instructor) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Instructor)+"%")
	}
	if filter.Credits > 0 {
		conds = append(conds, "credits = ?")
		args = append(args, filter.Credits)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY code"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []content.CourseRecord
	for rows.Next() {
		c, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// SaveCalendarBatch stores calendar records as JSON documents keyed by academic year.
func (db *DB) SaveCalendarBatch(ctx context.Context, records []content.CalendarRecord) error {
	return db.saveDocuments(ctx,
		`INSERT INTO calendar (academic_year, document, seeded_at) VALUES (?, ?, ?)
		 ON CONFLICT(academic_year) DO UPDATE SET document = excluded.document, seeded_at = excluded.seeded_at`,
		len(records),
		func(i int) (string, any) { return records[i].AcademicYear, records[i] },
	)
}

// GetCalendar retrieves the calendar for one academic year. Returns ErrNotFound when absent.
func (db *DB) GetCalendar(ctx context.Context, academicYear string) (*content.CalendarRecord, error) {
	var doc string
	err := db.conn.QueryRowContext(ctx,
		`SELECT document FROM calendar WHERE academic_year = ?`, academicYear).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("calendar %q: %w", academicYear, domerrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query calendar: %w", err)
	}

	var record content.CalendarRecord
	if err := json.Unmarshal([]byte(doc), &record); err != nil {
		return nil, fmt.Errorf("decode calendar document: %w", err)
	}
	return &record, nil
}

// ListCalendar returns all calendar records ordered by academic year.
func (db *DB) ListCalendar(ctx context.Context) ([]content.CalendarRecord, error) {
	return listDocuments[content.CalendarRecord](ctx, db,
		`SELECT document FROM calendar ORDER BY academic_year`)
}

// SaveInfrastructureBatch stores infrastructure records as JSON documents keyed by department.
func (db *DB) SaveInfrastructureBatch(ctx context.Context, records []content.InfrastructureRecord) error {
	return db.saveDocuments(ctx,
		`INSERT INTO infrastructure (department, document, seeded_at) VALUES (?, ?, ?)
		 ON CONFLICT(department) DO UPDATE SET document = excluded.document, seeded_at = excluded.seeded_at`,
		len(records),
		func(i int) (string, any) { return records[i].Department, records[i] },
	)
}

// GetInfrastructure retrieves one department's infrastructure. Returns ErrNotFound when absent.
func (db *DB) GetInfrastructure(ctx context.Context, department string) (*content.InfrastructureRecord, error) {
	var doc string
	err := db.conn.QueryRowContext(ctx,
		`SELECT document FROM infrastructure WHERE department = ?`, department).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("infrastructure %q: %w", department, domerrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query infrastructure: %w", err)
	}

	var record content.InfrastructureRecord
	if err := json.Unmarshal([]byte(doc), &record); err != nil {
		return nil, fmt.Errorf("decode infrastructure document: %w", err)
	}
	return &record, nil
}

// ListInfrastructure returns all infrastructure records ordered by department.
func (db *DB) ListInfrastructure(ctx context.Context) ([]content.InfrastructureRecord, error) {
	return listDocuments[content.InfrastructureRecord](ctx, db,
		`SELECT document FROM infrastructure ORDER BY department`)
}

// Counts returns per-domain row counts for the readiness probe.
func (db *DB) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, 4)
	for _, table := range []string{"faculty", "courses", "calendar", "infrastructure"} {
		var n int
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func (db *DB) saveDocuments(ctx context.Context, query string, n int, record func(i int) (string, any)) error {
	if n == 0 {
		return nil
	}
	seededAt := time.Now().Unix()
	return db.execBatch(ctx, query, func(stmt *sql.Stmt) error {
		for i := range n {
			key, value := record(i)
			doc, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode document %q: %w", key, err)
			}
			if _, err := stmt.ExecContext(ctx, key, string(doc), seededAt); err != nil {
				return fmt.Errorf("save document %q: %w", key, err)
			}
		}
		return nil
	})
}

func listDocuments[T any](ctx context.Context, db *DB, query string) ([]T, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		var record T
		if err := json.Unmarshal([]byte(doc), &record); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// marshalList serializes a string slice as JSON for a TEXT column.
func marshalList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalList(data string) []string {
	if data == "" || data == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil
	}
	return out
}

func logSlowBatch(ctx context.Context, operation string, count int, d time.Duration) {
	if d > 500*time.Millisecond {
		slog.WarnContext(ctx, "slow batch operation",
			"operation", operation,
			"count", count,
			"duration_ms", d.Milliseconds())
	}
}
