package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all content tables and indexes.
// Faculty and courses get relational columns because the REST surface
// filters on them; calendar and infrastructure are stored as JSON
// documents keyed by their natural unique key.
func InitSchema(ctx context.Context, db *sql.DB) error {
	statements := map[string]string{
		"faculty": `
	CREATE TABLE IF NOT EXISTS faculty (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		designation TEXT,
		qualification TEXT,
		email TEXT NOT NULL,
		phone TEXT,
		office TEXT,
		office_hours TEXT,
		specialization TEXT,
		research_areas TEXT,
		publications INTEGER,
		experience TEXT,
		courses TEXT,
		seeded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_faculty_name ON faculty(name);
	CREATE INDEX IF NOT EXISTS idx_faculty_designation ON faculty(designation);
	`,
		"courses": `
	CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		credits INTEGER NOT NULL,
		semester TEXT,
		course_type TEXT,
		instructor TEXT,
		contact_hours TEXT,
		cie_marks INTEGER,
		see_marks INTEGER,
		description TEXT,
		prerequisites TEXT,
		objectives TEXT,
		outcomes TEXT,
		topics TEXT,
		seeded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_courses_semester ON courses(semester);
	CREATE INDEX IF NOT EXISTS idx_courses_instructor ON courses(instructor);
	`,
		"calendar": `
	CREATE TABLE IF NOT EXISTS calendar (
		academic_year TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		seeded_at INTEGER NOT NULL
	);
	`,
		"infrastructure": `
	CREATE TABLE IF NOT EXISTS infrastructure (
		department TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		seeded_at INTEGER NOT NULL
	);
	`,
	}

	for name, query := range statements {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create %s table: %w", name, err)
		}
	}
	return nil
}
