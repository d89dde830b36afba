package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/aimldept/deptbot-go/internal/content"
	domerrors "github.com/aimldept/deptbot-go/internal/errors"
	"github.com/aimldept/deptbot-go/internal/logger"
)

func testSnapshot(t *testing.T) *content.Snapshot {
	t.Helper()
	snap, err := content.Load("")
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	return snap
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"hello", IntentGreeting},
		{"Hello, can you tell me about courses?", IntentGreeting},
		{"hi there", IntentGreeting},
		{"what career options do I have", IntentCareerGuidance},
		{"prerequisites for deep learning", IntentPrerequisiteAnalysis},
		{"who teaches machine learning", IntentFacultyCourseMapping},
		{"what courses are in 5th semester", IntentSemesterCourseQuery},
		{"which faculty do research in NLP", IntentResearchInterestMatch},
		{"how do I contact the department", IntentContactInformation},
		{"show me the labs", IntentInfrastructureQuery},
		{"who is the hod", IntentFacultyInformation},
		{"tell me about the syllabus", IntentCourseInformation},
		{"what is the meaning of life", IntentGeneralInquiry},
		{"", IntentGeneralInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := ClassifyIntent(tt.message); got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestClassifyIntentIdempotent(t *testing.T) {
	msg := "who teaches machine learning in 5th semester"
	first := ClassifyIntent(msg)
	second := ClassifyIntent(msg)
	if first != second {
		t.Errorf("ClassifyIntent not idempotent: %v then %v", first, second)
	}
}

func TestExtractSemester(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		message string
		want    string
	}{
		{"courses in 5th semester", "5"},
		{"what about 3rd semester", "3"},
		{"SEMESTER 2 details", ""},
		{"1st semester please", "1"},
		{"10th semester", "10"},
		{"12 semester", "12"},
		{"no semester number here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := Extract(tt.message, snap)
			if got.Semester != tt.want {
				t.Errorf("Extract(%q).Semester = %q, want %q", tt.message, got.Semester, tt.want)
			}
		})
	}
}

func TestExtractFacultyAndCourse(t *testing.T) {
	snap := testSnapshot(t)

	info := Extract("can I email sandeep about machine learning?", snap)
	if !strings.Contains(strings.ToLower(info.FacultyName), "sandeep") {
		t.Errorf("Extract().FacultyName = %q, want a name containing %q", info.FacultyName, "sandeep")
	}
	if info.CourseName == "" {
		t.Error("Extract().CourseName empty, want a course match for machine learning")
	}
	if info.Specialization != "machine learning" {
		t.Errorf("Extract().Specialization = %q, want %q", info.Specialization, "machine learning")
	}
}

func TestExtractIdempotent(t *testing.T) {
	snap := testSnapshot(t)
	msg := "does priya teach deep learning in 5th semester?"
	first := Extract(msg, snap)
	second := Extract(msg, snap)
	if first != second {
		t.Errorf("Extract not idempotent: %+v then %+v", first, second)
	}
}

func TestContextStoreEviction(t *testing.T) {
	store := NewContextStore()
	for i := 0; i < 12; i++ {
		store.Append("s1", Turn{Role: "user", Content: fmt.Sprintf("turn %d", i)})
	}

	turns := store.Get("s1")
	if len(turns) != MaxContextTurns {
		t.Fatalf("len(turns) = %d, want %d", len(turns), MaxContextTurns)
	}
	// Oldest evicted first: the survivors are turns 2..11 in order.
	for i, turn := range turns {
		want := fmt.Sprintf("turn %d", i+2)
		if turn.Content != want {
			t.Errorf("turns[%d].Content = %q, want %q", i, turn.Content, want)
		}
	}
}

func TestContextStoreSessionIsolation(t *testing.T) {
	store := NewContextStore()
	store.Append("a", Turn{Role: "user", Content: "from a"})
	store.Append("b", Turn{Role: "user", Content: "from b"})

	if got := store.Get("a"); len(got) != 1 || got[0].Content != "from a" {
		t.Errorf("Get(a) = %+v, want single turn from a", got)
	}
	if store.Sessions() != 2 {
		t.Errorf("Sessions() = %d, want 2", store.Sessions())
	}
}

func TestContextStoreConcurrentAppend(t *testing.T) {
	store := NewContextStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Append("shared", Turn{Role: "user", Content: fmt.Sprintf("%d", n)})
		}(i)
	}
	wg.Wait()

	if got := len(store.Get("shared")); got != MaxContextTurns {
		t.Errorf("len(Get(shared)) = %d, want %d", got, MaxContextTurns)
	}
}

func TestSuggestReturnsThree(t *testing.T) {
	intents := []Intent{
		IntentGreeting, IntentCareerGuidance, IntentPrerequisiteAnalysis,
		IntentFacultyCourseMapping, IntentSemesterCourseQuery, IntentResearchInterestMatch,
		IntentContactInformation, IntentInfrastructureQuery, IntentFacultyInformation,
		IntentCourseInformation, IntentGeneralInquiry, Intent("unknown_label"),
	}
	for _, intent := range intents {
		if got := Suggest(intent); len(got) != 3 {
			t.Errorf("Suggest(%v) returned %d suggestions, want 3", intent, len(got))
		}
	}
}

func TestComposePromptContainsFacultyEmails(t *testing.T) {
	snap := testSnapshot(t)
	prompt := ComposePrompt("hello", IntentGreeting, ExtractedInfo{}, nil, snap)

	for _, f := range snap.Faculty {
		if !strings.Contains(prompt, f.Email) {
			t.Errorf("prompt missing faculty email %q", f.Email)
		}
	}
	for _, c := range snap.Courses {
		if !strings.Contains(prompt, c.Code) {
			t.Errorf("prompt missing course code %q", c.Code)
		}
	}
}

func TestComposePromptHistoryWindow(t *testing.T) {
	snap := testSnapshot(t)
	history := []Turn{
		{Role: "user", Content: "dropped-oldest"},
		{Role: "assistant", Content: "kept-one"},
		{Role: "user", Content: "kept-two"},
		{Role: "assistant", Content: "kept-three"},
	}
	prompt := ComposePrompt("next question", IntentGeneralInquiry, ExtractedInfo{}, history, snap)

	if strings.Contains(prompt, "dropped-oldest") {
		t.Error("prompt contains turn beyond the 3-turn history window")
	}
	for _, want := range []string{"kept-one", "kept-two", "kept-three"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing history turn %q", want)
		}
	}
}

func TestComposePromptCalendarLimit(t *testing.T) {
	snap := testSnapshot(t)
	prompt := ComposePrompt("dates?", IntentGeneralInquiry, ExtractedInfo{}, nil, snap)

	events := snap.CalendarEvents()
	if len(events) > maxCalendarEvents {
		overflow := events[maxCalendarEvents]
		if strings.Contains(prompt, overflow.Label) {
			t.Errorf("prompt contains calendar event %q beyond the first %d", overflow.Label, maxCalendarEvents)
		}
	}
}

func TestFallbackGreeting(t *testing.T) {
	snap := testSnapshot(t)
	r := NewFallbackResponder(snap)

	got := r.Respond("hello")
	if !strings.Contains(got, "Liam") || !strings.Contains(got, "AIML") {
		t.Errorf("Respond(hello) = %q, want mention of Liam and AIML", got)
	}
}

func TestFallbackSpecificFaculty(t *testing.T) {
	snap := testSnapshot(t)
	r := NewFallbackResponder(snap)

	got := r.Respond("tell me about sandeep varma")
	if !strings.Contains(strings.ToLower(got), "sandeep") {
		t.Errorf("Respond() = %q, want the specific faculty sentence", got)
	}
}

func TestFallbackHOD(t *testing.T) {
	snap := testSnapshot(t)
	r := NewFallbackResponder(snap)
	hod := snap.HOD()
	if hod == nil {
		t.Fatal("fixtures have no HOD record")
	}

	got := r.Respond("who is the hod")
	if !strings.Contains(got, hod.Name) {
		t.Errorf("Respond(hod) = %q, want mention of %q", got, hod.Name)
	}
}

func TestFallbackSemesterCourseListing(t *testing.T) {
	snap := testSnapshot(t)
	r := NewFallbackResponder(snap)

	got := r.Respond("What courses are available in 5th semester?")
	for _, c := range snap.CoursesBySemester("5") {
		want := fmt.Sprintf("• %s (%s)", c.Name, c.Code)
		if !strings.Contains(got, want) {
			t.Errorf("Respond() missing %q in:\n%s", want, got)
		}
	}
}

func TestFallbackNeverEmpty(t *testing.T) {
	snap := testSnapshot(t)
	r := NewFallbackResponder(snap)

	messages := []string{
		"", "hello", "who is the hod", "courses?", "labs?", "faculty",
		"random nonsense xyzzy", "semester", "9999th semester courses",
	}
	for _, msg := range messages {
		if got := r.Respond(msg); strings.TrimSpace(got) == "" {
			t.Errorf("Respond(%q) returned empty answer", msg)
		}
	}
}

type stubServiceCompleter struct {
	reply string
	err   error
	calls int
	mu    sync.Mutex
}

func (s *stubServiceCompleter) Complete(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(t *testing.T, completer Completer) *Service {
	t.Helper()
	svc, err := NewService(ServiceOptions{
		Snapshot:  testSnapshot(t),
		Completer: completer,
		Logger:    logger.New("error"),
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestServiceChatSuccess(t *testing.T) {
	svc := newTestService(t, &stubServiceCompleter{reply: "generated answer"})

	result, err := svc.Chat(context.Background(), "s1", "hello", nil)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Response != "generated answer" {
		t.Errorf("Response = %q, want %q", result.Response, "generated answer")
	}
	if result.Intent != "greeting" {
		t.Errorf("Intent = %q, want %q", result.Intent, "greeting")
	}
	if result.Confidence != confidenceCompletion {
		t.Errorf("Confidence = %v, want %v", result.Confidence, confidenceCompletion)
	}
	if len(result.Suggestions) != 3 {
		t.Errorf("len(Suggestions) = %d, want 3", len(result.Suggestions))
	}
}

func TestServiceChatFallbackOnProviderError(t *testing.T) {
	completer := &stubServiceCompleter{err: errors.New("quota exceeded")}
	svc := newTestService(t, completer)

	result, err := svc.Chat(context.Background(), "s1", "hello", nil)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Response == "" {
		t.Fatal("fallback response is empty")
	}
	if !strings.Contains(result.Response, "Liam") {
		t.Errorf("fallback greeting = %q, want mention of Liam", result.Response)
	}
	if result.Confidence != confidenceFallback {
		t.Errorf("Confidence = %v, want %v", result.Confidence, confidenceFallback)
	}
}

func TestServiceChatEmptyMessage(t *testing.T) {
	svc := newTestService(t, &stubServiceCompleter{reply: "unused"})

	_, err := svc.Chat(context.Background(), "s1", "   ", nil)
	if !errors.Is(err, domerrors.ErrInvalidInput) {
		t.Fatalf("Chat() error = %v, want ErrInvalidInput", err)
	}
}

func TestServiceChatRemembersTurns(t *testing.T) {
	svc := newTestService(t, &stubServiceCompleter{reply: "answer"})

	for i := 0; i < 3; i++ {
		if _, err := svc.Chat(context.Background(), "s1", fmt.Sprintf("question %d", i), nil); err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
	}

	turns := svc.contexts.Get("s1")
	if len(turns) != 6 {
		t.Fatalf("len(turns) = %d, want 6", len(turns))
	}
	if turns[0].Role != "user" || turns[1].Role != "assistant" {
		t.Errorf("turn roles = %q, %q, want user, assistant", turns[0].Role, turns[1].Role)
	}
}

func TestServiceChatSeedsProvidedHistory(t *testing.T) {
	svc := newTestService(t, &stubServiceCompleter{reply: "answer"})

	history := []Turn{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	if _, err := svc.Chat(context.Background(), "fresh", "follow-up", history); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	turns := svc.contexts.Get("fresh")
	if len(turns) != 4 {
		t.Fatalf("len(turns) = %d, want 4 (seeded history plus new exchange)", len(turns))
	}
	if turns[0].Content != "earlier question" {
		t.Errorf("turns[0].Content = %q, want seeded history first", turns[0].Content)
	}
}
