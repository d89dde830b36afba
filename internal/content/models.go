// Package content defines the four content domains served by the site
// (faculty, courses, academic calendar, infrastructure) and loads their
// JSON fixtures into an immutable in-memory snapshot.
package content

import (
	"fmt"
	"strings"

	domerrors "github.com/aimldept/deptbot-go/internal/errors"
)

// Event types accepted in calendar fixtures.
const (
	EventTypeAcademic = "academic"
	EventTypeHoliday  = "holiday"
	EventTypeExam     = "exam"
	EventTypeEvent    = "event"
	EventTypeDeadline = "deadline"
)

// Equipment conditions accepted in infrastructure fixtures.
var validConditions = map[string]bool{
	"excellent": true,
	"good":      true,
	"fair":      true,
	"poor":      true,
}

var validEventTypes = map[string]bool{
	EventTypeAcademic: true,
	EventTypeHoliday:  true,
	EventTypeExam:     true,
	EventTypeEvent:    true,
	EventTypeDeadline: true,
}

// FacultyRecord is a single faculty member. Records are immutable at
// runtime in the agent path.
type FacultyRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Designation    string   `json:"designation"`
	Qualification  string   `json:"qualification"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Office         string   `json:"office"`
	OfficeHours    string   `json:"officeHours"`
	Specialization []string `json:"specialization"`
	ResearchAreas  []string `json:"researchAreas"`
	Publications   int      `json:"publications"`
	Experience     string   `json:"experience"`
	Courses        []string `json:"courses"`
}

// Validate checks required fields on a faculty record.
func (f *FacultyRecord) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("%w: faculty record missing id", domerrors.ErrFixtureInvalid)
	}
	if f.Name == "" {
		return fmt.Errorf("%w: faculty %q missing name", domerrors.ErrFixtureInvalid, f.ID)
	}
	if f.Email == "" {
		return fmt.Errorf("%w: faculty %q missing email", domerrors.ErrFixtureInvalid, f.ID)
	}
	return nil
}

// IsHOD reports whether this record is the head of department.
func (f *FacultyRecord) IsHOD() bool {
	return strings.Contains(strings.ToLower(f.Designation), "hod") ||
		strings.Contains(strings.ToLower(f.Designation), "head of department")
}

// CourseRecord is a single course offering.
type CourseRecord struct {
	ID            string   `json:"id"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Credits       int      `json:"credits"`
	Semester      string   `json:"semester"` // ordinal label, e.g. "5th"
	Prerequisites []string `json:"prerequisites"`
	Description   string   `json:"description"`
	Objectives    []string `json:"objectives"`
	Outcomes      []string `json:"outcomes"`
	Topics        []string `json:"topics"`
	CourseType    string   `json:"courseType"`
	ContactHours  string   `json:"contactHours"`
	Instructor    string   `json:"instructor"`
	CIEMarks      int      `json:"cieMarks"`
	SEEMarks      int      `json:"seeMarks"`
}

// Validate checks required fields and credit bounds on a course record.
func (c *CourseRecord) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: course record missing id", domerrors.ErrFixtureInvalid)
	}
	if c.Code == "" || c.Name == "" {
		return fmt.Errorf("%w: course %q missing code or name", domerrors.ErrFixtureInvalid, c.ID)
	}
	if c.Code != strings.ToUpper(c.Code) {
		return fmt.Errorf("%w: course code %q must be uppercase", domerrors.ErrFixtureInvalid, c.Code)
	}
	if c.Credits < 1 || c.Credits > 5 {
		return fmt.Errorf("%w: course %q has credits %d outside [1,5]", domerrors.ErrFixtureInvalid, c.Code, c.Credits)
	}
	return nil
}

// SemesterNumber returns the leading digits of the semester label
// ("5th" -> "5"), or "" when the label has no leading digit.
func (c *CourseRecord) SemesterNumber() string {
	var b strings.Builder
	for _, r := range c.Semester {
		if r < '0' || r > '9' {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CalendarEvent is a dated entry in the academic calendar.
type CalendarEvent struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Validate checks the event type enum.
func (e *CalendarEvent) Validate() error {
	if !validEventTypes[e.Type] {
		return fmt.Errorf("%w: event %q has unknown type %q", domerrors.ErrFixtureInvalid, e.Label, e.Type)
	}
	return nil
}

// CalendarSemester is one semester block within an academic year.
type CalendarSemester struct {
	Name      string          `json:"name"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Events    []CalendarEvent `json:"events"`
}

// ExamSchedule lists the exams of one semester.
type ExamSchedule struct {
	Semester string   `json:"semester"`
	Exams    []string `json:"exams"`
}

// CalendarRecord is the academic calendar for one academic year.
type CalendarRecord struct {
	AcademicYear        string             `json:"academicYear"`
	Semesters           []CalendarSemester `json:"semesters"`
	ImportantDates      []CalendarEvent    `json:"importantDates"`
	ExaminationSchedule []ExamSchedule     `json:"examinationSchedule"`
}

// Validate checks the year key and all nested events.
func (c *CalendarRecord) Validate() error {
	if c.AcademicYear == "" {
		return fmt.Errorf("%w: calendar record missing academicYear", domerrors.ErrFixtureInvalid)
	}
	for i := range c.ImportantDates {
		if err := c.ImportantDates[i].Validate(); err != nil {
			return err
		}
	}
	for _, sem := range c.Semesters {
		for i := range sem.Events {
			if err := sem.Events[i].Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// AllEvents returns every event in fixture order: semester events first,
// then important dates. The prompt composer renders the first N of these.
func (c *CalendarRecord) AllEvents() []CalendarEvent {
	var events []CalendarEvent
	for _, sem := range c.Semesters {
		events = append(events, sem.Events...)
	}
	events = append(events, c.ImportantDates...)
	return events
}

// LabEquipment is one equipment line item in a lab.
type LabEquipment struct {
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	Condition       string `json:"condition"`
	LastMaintenance string `json:"lastMaintenance"`
	NextMaintenance string `json:"nextMaintenance"`
}

// Lab is a department laboratory.
type Lab struct {
	Name         string         `json:"name"`
	Capacity     int            `json:"capacity"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	Equipment    []LabEquipment `json:"equipment"`
	Facilities   []string       `json:"facilities"`
	Availability string         `json:"availability"`
}

// ResearchFacility is a shared research space.
type ResearchFacility struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Equipment   []string `json:"equipment"`
	Capacity    int      `json:"capacity"`
}

// InfrastructureRecord aggregates a department's physical infrastructure.
type InfrastructureRecord struct {
	Department         string             `json:"department"`
	Labs               []Lab              `json:"labs"`
	Classrooms         int                `json:"classrooms"`
	Library            int                `json:"library"`
	ComputerLabs       int                `json:"computerLabs"`
	ResearchFacilities []ResearchFacility `json:"researchFacilities"`
}

// Validate checks the department key and equipment conditions.
func (r *InfrastructureRecord) Validate() error {
	if r.Department == "" {
		return fmt.Errorf("%w: infrastructure record missing department", domerrors.ErrFixtureInvalid)
	}
	for _, lab := range r.Labs {
		for _, eq := range lab.Equipment {
			if !validConditions[eq.Condition] {
				return fmt.Errorf("%w: equipment %q in lab %q has unknown condition %q",
					domerrors.ErrFixtureInvalid, eq.Name, lab.Name, eq.Condition)
			}
		}
	}
	return nil
}
