package content

import "strings"

// Snapshot is the immutable in-memory view of all four content domains.
// It is loaded once at startup and passed by reference; nothing mutates it
// after load, so concurrent reads need no synchronization.
type Snapshot struct {
	Faculty        []FacultyRecord
	Courses        []CourseRecord
	Calendar       []CalendarRecord
	Infrastructure []InfrastructureRecord
}

// FacultyByID returns the faculty record with the given id, or nil.
func (s *Snapshot) FacultyByID(id string) *FacultyRecord {
	for i := range s.Faculty {
		if s.Faculty[i].ID == id {
			return &s.Faculty[i]
		}
	}
	return nil
}

// CourseByCode returns the course with the given code (case-insensitive), or nil.
func (s *Snapshot) CourseByCode(code string) *CourseRecord {
	for i := range s.Courses {
		if strings.EqualFold(s.Courses[i].Code, code) {
			return &s.Courses[i]
		}
	}
	return nil
}

// CoursesBySemester returns every course whose semester label starts with
// the given semester number ("5" matches "5th").
func (s *Snapshot) CoursesBySemester(number string) []CourseRecord {
	if number == "" {
		return nil
	}
	var out []CourseRecord
	for i := range s.Courses {
		if s.Courses[i].SemesterNumber() == number {
			out = append(out, s.Courses[i])
		}
	}
	return out
}

// HOD returns the record whose designation marks the head of department, or nil.
func (s *Snapshot) HOD() *FacultyRecord {
	for i := range s.Faculty {
		if s.Faculty[i].IsHOD() {
			return &s.Faculty[i]
		}
	}
	return nil
}

// Labs returns all labs across every infrastructure record.
func (s *Snapshot) Labs() []Lab {
	var labs []Lab
	for i := range s.Infrastructure {
		labs = append(labs, s.Infrastructure[i].Labs...)
	}
	return labs
}

// CalendarEvents returns every calendar event across all academic years,
// in fixture order.
func (s *Snapshot) CalendarEvents() []CalendarEvent {
	var events []CalendarEvent
	for i := range s.Calendar {
		events = append(events, s.Calendar[i].AllEvents()...)
	}
	return events
}
