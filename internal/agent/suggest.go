package agent

// suggestionTable maps each intent to three canned follow-up questions.
var suggestionTable = map[Intent][]string{
	IntentGreeting: {
		"What courses does the AIML department offer?",
		"Who are the faculty members?",
		"Tell me about the department's labs.",
	},
	IntentCareerGuidance: {
		"What career paths suit an AIML graduate?",
		"Which courses help with machine learning jobs?",
		"Which faculty can guide me on internships?",
	},
	IntentPrerequisiteAnalysis: {
		"What are the prerequisites for Deep Learning?",
		"Which courses should I take before Machine Learning?",
		"Show me the 5th semester courses.",
	},
	IntentFacultyCourseMapping: {
		"Who teaches Machine Learning?",
		"Which courses does the HOD teach?",
		"List all faculty and their courses.",
	},
	IntentSemesterCourseQuery: {
		"What courses are in the 5th semester?",
		"How many credits is each semester?",
		"What are the prerequisites for next semester?",
	},
	IntentResearchInterestMatch: {
		"Which faculty work on computer vision?",
		"What research facilities does the department have?",
		"Who has the most publications?",
	},
	IntentContactInformation: {
		"What is the HOD's email address?",
		"What are the faculty office hours?",
		"How do I reach the department office?",
	},
	IntentInfrastructureQuery: {
		"What equipment is in the AI lab?",
		"How many computer labs are there?",
		"Tell me about the research facilities.",
	},
	IntentFacultyInformation: {
		"Who is the head of department?",
		"What are the faculty specializations?",
		"Which faculty teach in the 5th semester?",
	},
	IntentCourseInformation: {
		"What is the syllabus for Machine Learning?",
		"How many credits is Deep Learning?",
		"What electives are available?",
	},
}

// defaultSuggestions is the bucket for intents with no table entry.
var defaultSuggestions = []string{
	"What courses does the department offer?",
	"Who are the faculty members?",
	"What labs and facilities are available?",
}

// Suggest returns three follow-up questions for the intent. Pure lookup;
// message content plays no part beyond the label.
func Suggest(intent Intent) []string {
	if s, ok := suggestionTable[intent]; ok {
		return s
	}
	return defaultSuggestions
}
