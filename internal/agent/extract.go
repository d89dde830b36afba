package agent

import (
	"regexp"
	"strings"

	"github.com/aimldept/deptbot-go/internal/content"
)

// ExtractedInfo carries the structured hints scanned out of a message.
// Every field is best-effort and may be empty.
type ExtractedInfo struct {
	Semester       string `json:"semester,omitempty"`
	FacultyName    string `json:"facultyName,omitempty"`
	CourseName     string `json:"courseName,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

var semesterPattern = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)?\s*semester`)

// specializationVocab is the fixed list scanned in order; the first
// substring hit wins.
var specializationVocab = []string{
	"machine learning",
	"deep learning",
	"computer vision",
	"nlp",
	"data science",
	"ai",
	"artificial intelligence",
}

// Extract scans a message against the content snapshot for semester
// numbers, faculty names, course names and specializations. First match
// wins in every category; extraction is order-dependent, not scored.
// Pure function of its inputs.
func Extract(message string, snap *content.Snapshot) ExtractedInfo {
	lower := strings.ToLower(message)
	info := ExtractedInfo{}

	if m := semesterPattern.FindStringSubmatch(lower); m != nil {
		info.Semester = m[1]
	}

	for _, f := range snap.Faculty {
		if nameTokenMatches(lower, f.Name, 2) {
			info.FacultyName = f.Name
			break
		}
	}

	for _, c := range snap.Courses {
		if nameTokenMatches(lower, c.Name, 3) {
			info.CourseName = c.Name
			break
		}
	}

	for _, spec := range specializationVocab {
		if strings.Contains(lower, spec) {
			info.Specialization = spec
			break
		}
	}

	return info
}

// nameTokenMatches reports whether any token of name longer than minLen
// characters appears as a substring of the lower-cased message.
func nameTokenMatches(lowerMessage, name string, minLen int) bool {
	for _, token := range strings.Fields(strings.ToLower(name)) {
		if len(token) > minLen && strings.Contains(lowerMessage, token) {
			return true
		}
	}
	return false
}
