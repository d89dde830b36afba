// Package agent implements the chat assistant: intent classification,
// information extraction, conversational context, prompt composition,
// canned fallback answers and follow-up suggestions.
package agent

import "strings"

// Intent labels a user message's presumed purpose. Labels select canned
// follow-up suggestions and are reported back to the client.
type Intent string

const (
	IntentGreeting                Intent = "greeting"
	IntentCareerGuidance          Intent = "career_guidance"
	IntentPrerequisiteAnalysis    Intent = "prerequisite_analysis"
	IntentFacultyCourseMapping    Intent = "faculty_course_mapping"
	IntentSemesterCourseQuery     Intent = "semester_course_query"
	IntentResearchInterestMatch   Intent = "research_interest_matching"
	IntentContactInformation      Intent = "contact_information"
	IntentInfrastructureQuery     Intent = "infrastructure_query"
	IntentFacultyInformation      Intent = "faculty_information"
	IntentCourseInformation       Intent = "course_information"
	IntentGeneralInquiry          Intent = "general_inquiry"
)

// String returns the string representation of the intent.
func (i Intent) String() string {
	return string(i)
}

// intentRule pairs an intent with the keywords that trigger it.
type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules is a priority list, not a scored classifier: the first rule
// with any keyword present in the lower-cased message wins, so a message
// containing both "hello" and "course" classifies as greeting.
var intentRules = []intentRule{
	{IntentGreeting, []string{"hello", " hi ", " hey ", "good morning", "good afternoon", "good evening", "namaste", "greetings"}},
	{IntentCareerGuidance, []string{"career", " job ", "placement", "internship", "salary", "industry", "future scope"}},
	{IntentPrerequisiteAnalysis, []string{"prerequisite", "prereq", "before taking", "required for", "need to know before"}},
	{IntentFacultyCourseMapping, []string{"who teaches", "taught by", "teaches", "instructor for", "faculty for", "handles"}},
	{IntentSemesterCourseQuery, []string{"semester", " sem "}},
	{IntentResearchInterestMatch, []string{"research", "publication", "paper", " phd ", "thesis", "project guide"}},
	{IntentContactInformation, []string{"contact", "email", "phone", "office hours", "cabin", "reach"}},
	{IntentInfrastructureQuery, []string{" lab ", " labs ", "laboratory", "infrastructure", "equipment", "classroom", "facility", "facilities", "library"}},
	{IntentFacultyInformation, []string{"faculty", "professor", "teacher", "staff", " hod ", "head of department"}},
	{IntentCourseInformation, []string{"course", "subject", "syllabus", "curriculum", "credit", "elective"}},
}

// ClassifyIntent maps a free-text message to an intent label. Messages
// matching no rule are general_inquiry. Pure function.
//
// Punctuation is folded to spaces and the message padded so short keywords
// like "hi" or "lab" match at either end without also matching inside
// longer words.
func ClassifyIntent(message string) Intent {
	lower := " " + normalize(message) + " "
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneralInquiry
}

// normalize lower-cases the message and folds punctuation to spaces.
func normalize(message string) string {
	lower := strings.ToLower(message)
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			return r
		}
		return ' '
	}, lower)
}
