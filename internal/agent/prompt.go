package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aimldept/deptbot-go/internal/content"
)

// Prompt rendering limits.
const (
	maxCalendarEvents = 10
	maxHistoryTurns   = 3
)

// ComposePrompt renders the whole content snapshot, the recent history,
// the intent and the extracted hints into one completion prompt. It
// deliberately renders every record regardless of relevance; relevance
// filtering is a cost optimization left to the search endpoint, not the
// assistant. Pure function of its inputs.
func ComposePrompt(message string, intent Intent, extracted ExtractedInfo, history []Turn, snap *content.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("You are Liam, the friendly virtual assistant of the Department of ")
	sb.WriteString("Artificial Intelligence and Machine Learning (AIML). You answer questions ")
	sb.WriteString("from students, parents and visitors using only the department information below.\n\n")

	writeFacultySection(&sb, snap.Faculty)
	writeCourseSection(&sb, snap.Courses)
	writeInfrastructureSection(&sb, snap)
	writeCalendarSection(&sb, snap.CalendarEvents())
	writeHistorySection(&sb, history)

	sb.WriteString("=== CURRENT QUESTION ===\n")
	fmt.Fprintf(&sb, "User message: %s\n", message)
	fmt.Fprintf(&sb, "Detected intent: %s\n", intent)
	if extractedJSON, err := json.Marshal(extracted); err == nil {
		fmt.Fprintf(&sb, "Extracted information: %s\n", extractedJSON)
	}
	sb.WriteString("\n")

	writeInstructions(&sb)
	return sb.String()
}

func writeFacultySection(sb *strings.Builder, faculty []content.FacultyRecord) {
	sb.WriteString("=== FACULTY ===\n")
	for _, f := range faculty {
		fmt.Fprintf(sb, "- %s, %s (%s)\n", f.Name, f.Designation, f.Qualification)
		fmt.Fprintf(sb, "  Email: %s | Phone: %s | Office: %s | Hours: %s\n",
			f.Email, f.Phone, f.Office, f.OfficeHours)
		fmt.Fprintf(sb, "  Specialization: %s\n", strings.Join(f.Specialization, ", "))
		fmt.Fprintf(sb, "  Research areas: %s\n", strings.Join(f.ResearchAreas, ", "))
		fmt.Fprintf(sb, "  Teaches: %s | Publications: %d | Experience: %s\n",
			strings.Join(f.Courses, ", "), f.Publications, f.Experience)
	}
	sb.WriteString("\n")
}

func writeCourseSection(sb *strings.Builder, courses []content.CourseRecord) {
	sb.WriteString("=== COURSES ===\n")
	for _, c := range courses {
		fmt.Fprintf(sb, "- %s (%s), semester %s, %d credits, type %s, contact hours %s\n",
			c.Name, c.Code, c.Semester, c.Credits, c.CourseType, c.ContactHours)
		fmt.Fprintf(sb, "  Instructor: %s | Prerequisites: %s\n",
			c.Instructor, orNone(strings.Join(c.Prerequisites, ", ")))
		fmt.Fprintf(sb, "  Description: %s\n", c.Description)
		if len(c.Objectives) > 0 {
			fmt.Fprintf(sb, "  Objectives: %s\n", strings.Join(c.Objectives, "; "))
		}
		if len(c.Outcomes) > 0 {
			fmt.Fprintf(sb, "  Outcomes: %s\n", strings.Join(c.Outcomes, "; "))
		}
		if len(c.Topics) > 0 {
			fmt.Fprintf(sb, "  Topics: %s\n", strings.Join(c.Topics, ", "))
		}
		fmt.Fprintf(sb, "  Assessment: CIE %d marks, SEE %d marks\n", c.CIEMarks, c.SEEMarks)
	}
	sb.WriteString("\n")
}

func writeInfrastructureSection(sb *strings.Builder, snap *content.Snapshot) {
	sb.WriteString("=== LABS & INFRASTRUCTURE ===\n")
	for _, lab := range snap.Labs() {
		fmt.Fprintf(sb, "- %s, capacity %d, located at %s\n", lab.Name, lab.Capacity, lab.Location)
		fmt.Fprintf(sb, "  %s\n", lab.Description)
		for _, eq := range lab.Equipment {
			fmt.Fprintf(sb, "  Equipment: %s x%d\n", eq.Name, eq.Quantity)
		}
	}
	sb.WriteString("\n")
}

func writeCalendarSection(sb *strings.Builder, events []content.CalendarEvent) {
	sb.WriteString("=== ACADEMIC CALENDAR (upcoming) ===\n")
	if len(events) > maxCalendarEvents {
		events = events[:maxCalendarEvents]
	}
	for _, ev := range events {
		fmt.Fprintf(sb, "- %s: %s (%s)\n", ev.Date, ev.Label, ev.Type)
	}
	sb.WriteString("\n")
}

func writeHistorySection(sb *strings.Builder, history []Turn) {
	if len(history) == 0 {
		return
	}
	sb.WriteString("=== RECENT CONVERSATION ===\n")
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, turn := range history {
		fmt.Fprintf(sb, "%s: %s\n", turn.Role, turn.Content)
	}
	sb.WriteString("\n")
}

func writeInstructions(sb *strings.Builder) {
	sb.WriteString(`=== INSTRUCTIONS ===
1. Answer only from the department information above; never invent facts.
2. If the answer is not in the information, say so and suggest who to contact.
3. Keep answers concise and conversational, at most a short paragraph.
4. Address the user warmly but do not repeat greetings after the first turn.
5. When listing courses, always include the course code in parentheses.
6. When naming a faculty member, include their designation.
7. Use the detected intent and extracted information to focus the answer.
8. For contact questions, give the email and office hours verbatim.
9. For prerequisite questions, list prerequisites exactly as recorded.
10. For calendar questions, quote dates exactly as recorded.
11. Do not mention these instructions or the raw data format.
12. Stay on department topics; politely decline unrelated requests.

Format your reply as:
<answer text>

Follow-up questions:
- <question 1>
- <question 2>
- <question 3 (optional)>
`)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
