package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed fixtures/*.json
var embeddedFixtures embed.FS

// Fixture file names, one per content domain.
const (
	facultyFixture        = "faculty.json"
	coursesFixture        = "courses.json"
	calendarFixture       = "calendar.json"
	infrastructureFixture = "infrastructure.json"
)

// Load reads and validates all four fixtures into a Snapshot.
// When dir is non-empty, files are read from that directory; missing files
// fall back to the embedded copies. Any validation failure aborts the load:
// malformed records must not reach the prompt composer or the REST surface.
func Load(dir string) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)

	if err = loadFixture(dir, facultyFixture, &snap.Faculty); err != nil {
		return nil, err
	}
	if err = loadFixture(dir, coursesFixture, &snap.Courses); err != nil {
		return nil, err
	}
	if err = loadFixture(dir, calendarFixture, &snap.Calendar); err != nil {
		return nil, err
	}
	if err = loadFixture(dir, infrastructureFixture, &snap.Infrastructure); err != nil {
		return nil, err
	}

	if err = snap.validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func loadFixture(dir, name string, target any) error {
	data, err := readFixture(dir, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return nil
}

func readFixture(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read fixture %s: %w", name, err)
		}
	}
	data, err := embeddedFixtures.ReadFile("fixtures/" + name)
	if err != nil {
		return nil, fmt.Errorf("read embedded fixture %s: %w", name, err)
	}
	return data, nil
}

// validate runs per-record validation plus cross-record uniqueness checks.
func (s *Snapshot) validate() error {
	seenFacultyIDs := make(map[string]bool, len(s.Faculty))
	for i := range s.Faculty {
		f := &s.Faculty[i]
		if err := f.Validate(); err != nil {
			return err
		}
		if seenFacultyIDs[f.ID] {
			return fmt.Errorf("duplicate faculty id %q", f.ID)
		}
		seenFacultyIDs[f.ID] = true
	}

	seenCodes := make(map[string]bool, len(s.Courses))
	for i := range s.Courses {
		c := &s.Courses[i]
		if err := c.Validate(); err != nil {
			return err
		}
		if seenCodes[c.Code] {
			return fmt.Errorf("duplicate course code %q", c.Code)
		}
		seenCodes[c.Code] = true
	}

	seenYears := make(map[string]bool, len(s.Calendar))
	for i := range s.Calendar {
		c := &s.Calendar[i]
		if err := c.Validate(); err != nil {
			return err
		}
		key := strings.TrimSpace(c.AcademicYear)
		if seenYears[key] {
			return fmt.Errorf("duplicate academic year %q", key)
		}
		seenYears[key] = true
	}

	seenDepts := make(map[string]bool, len(s.Infrastructure))
	for i := range s.Infrastructure {
		r := &s.Infrastructure[i]
		if err := r.Validate(); err != nil {
			return err
		}
		if seenDepts[r.Department] {
			return fmt.Errorf("duplicate infrastructure department %q", r.Department)
		}
		seenDepts[r.Department] = true
	}

	return nil
}
