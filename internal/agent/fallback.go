package agent

import (
	"fmt"
	"strings"

	"github.com/aimldept/deptbot-go/internal/content"
)

// FallbackResponder produces canned answers when the completion provider
// is unavailable. It keeps its own keyword rules, checked in a fixed
// priority order, and deliberately does not share the intent classifier's
// rule set: the two matchers evolved separately and unifying them is a
// product decision, not a refactor.
type FallbackResponder struct {
	snap *content.Snapshot
}

// NewFallbackResponder creates a responder over the content snapshot.
func NewFallbackResponder(snap *content.Snapshot) *FallbackResponder {
	return &FallbackResponder{snap: snap}
}

// Respond returns a canned answer for the message. The result is never
// empty: unmatched messages get the capability sentence.
func (r *FallbackResponder) Respond(message string) string {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "sandeep") && strings.Contains(lower, "varma") {
		if f := r.facultyByNameTokens("sandeep", "varma"); f != nil {
			return r.facultySentence(f)
		}
	}

	if strings.Contains(lower, "hod") || strings.Contains(lower, "head of department") {
		if hod := r.snap.HOD(); hod != nil {
			return fmt.Sprintf("%s is the Head of the AIML Department. Designation: %s. You can reach them at %s.",
				hod.Name, hod.Designation, hod.Email)
		}
	}

	if strings.Contains(lower, "semester") {
		if reply := r.semesterCourses(lower); reply != "" {
			return reply
		}
	}

	if containsAnyOf(lower, "faculty", "professor", "staff", "teacher") {
		return r.facultyList()
	}

	if containsAnyOf(lower, "course", "subject", "syllabus") {
		return r.courseList()
	}

	if containsAnyOf(lower, "lab", "infrastructure", "facility", "equipment") {
		return r.labList()
	}

	if containsAnyOf(lower, "hello", "hi", "hey", "good morning", "good afternoon", "good evening") {
		return "Hello! I'm Liam, the virtual assistant of the AIML Department. " +
			"Ask me about our faculty, courses, labs or the academic calendar."
	}

	return "I can help you with information about the AIML Department: faculty members, " +
		"courses and syllabus, labs and infrastructure, and the academic calendar. " +
		"What would you like to know?"
}

func (r *FallbackResponder) facultyByNameTokens(tokens ...string) *content.FacultyRecord {
	for i := range r.snap.Faculty {
		name := strings.ToLower(r.snap.Faculty[i].Name)
		matched := true
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				matched = false
				break
			}
		}
		if matched {
			return &r.snap.Faculty[i]
		}
	}
	return nil
}

func (r *FallbackResponder) facultySentence(f *content.FacultyRecord) string {
	return fmt.Sprintf("%s is %s in the AIML Department, specializing in %s. Email: %s.",
		f.Name, f.Designation, strings.Join(f.Specialization, ", "), f.Email)
}

// semesterCourses lists courses for the semester mentioned in the message,
// defaulting to the 5th when only the word "semester" appears.
func (r *FallbackResponder) semesterCourses(lower string) string {
	number := "5"
	if m := semesterPattern.FindStringSubmatch(lower); m != nil {
		number = m[1]
	}

	courses := r.snap.CoursesBySemester(number)
	if len(courses) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Courses offered in semester %s:\n", number)
	for _, c := range courses {
		fmt.Fprintf(&sb, "• %s (%s)\n", c.Name, c.Code)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *FallbackResponder) facultyList() string {
	var sb strings.Builder
	sb.WriteString("Faculty members of the AIML Department:\n")
	for _, f := range r.snap.Faculty {
		fmt.Fprintf(&sb, "• %s, %s\n", f.Name, f.Designation)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *FallbackResponder) courseList() string {
	var sb strings.Builder
	sb.WriteString("Courses offered by the AIML Department:\n")
	for _, c := range r.snap.Courses {
		fmt.Fprintf(&sb, "• %s (%s), semester %s\n", c.Name, c.Code, c.Semester)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *FallbackResponder) labList() string {
	labs := r.snap.Labs()
	if len(labs) == 0 {
		return "The AIML Department's infrastructure details are currently unavailable."
	}
	var sb strings.Builder
	sb.WriteString("Labs in the AIML Department:\n")
	for _, lab := range labs {
		fmt.Fprintf(&sb, "• %s (capacity %d), %s\n", lab.Name, lab.Capacity, lab.Location)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func containsAnyOf(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
