package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aimldept/deptbot-go/internal/content"
	domerrors "github.com/aimldept/deptbot-go/internal/errors"
	"github.com/aimldept/deptbot-go/internal/logger"
)

// Completer sends a composed prompt to the completion provider chain.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TranscriptSink receives finished conversation turns for archival.
// Implementations must tolerate being called from multiple goroutines.
type TranscriptSink interface {
	Store(ctx context.Context, sessionID string, transcript []byte) error
}

// MetricsRecorder receives chat telemetry. A nil recorder disables it.
type MetricsRecorder interface {
	RecordChat(intent string, fallback bool, duration time.Duration)
}

// Confidence reported to clients for generated versus canned answers.
const (
	confidenceCompletion = 0.9
	confidenceFallback   = 0.6
)

// Entities lists the content records a message referenced.
type Entities struct {
	Faculty         []string `json:"faculty"`
	Courses         []string `json:"courses"`
	Specializations []string `json:"specializations"`
}

// ChatResult is the assistant's full answer for one message.
type ChatResult struct {
	Response      string        `json:"response"`
	Sources       []string      `json:"sources"`
	Suggestions   []string      `json:"suggestions"`
	Confidence    float64       `json:"confidence"`
	Intent        string        `json:"intent"`
	ExtractedInfo ExtractedInfo `json:"extractedInfo"`
	Entities      Entities      `json:"entities"`
}

// Service orchestrates one chat turn: classify, extract, compose, complete
// (or fall back), remember, suggest.
type Service struct {
	snap     *content.Snapshot
	contexts *ContextStore
	fallback *FallbackResponder
	complete Completer
	sink     TranscriptSink
	metrics  MetricsRecorder
	timeout  time.Duration
	log      *logger.Logger
}

// ServiceOptions configures a Service. Completer and Snapshot are
// required; Sink and Metrics are optional.
type ServiceOptions struct {
	Snapshot  *content.Snapshot
	Completer Completer
	Sink      TranscriptSink
	Metrics   MetricsRecorder
	Timeout   time.Duration
	Logger    *logger.Logger
}

// NewService creates the chat service.
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.Snapshot == nil {
		return nil, fmt.Errorf("agent: snapshot is required")
	}
	if opts.Completer == nil {
		return nil, fmt.Errorf("agent: completer is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.New("info")
	}
	return &Service{
		snap:     opts.Snapshot,
		contexts: NewContextStore(),
		fallback: NewFallbackResponder(opts.Snapshot),
		complete: opts.Completer,
		sink:     opts.Sink,
		metrics:  opts.Metrics,
		timeout:  timeout,
		log:      opts.Logger.WithModule("agent"),
	}, nil
}

// Chat answers one user message within the given session. Provider
// failures degrade to the fallback responder and are never surfaced to
// the caller; only an empty message is an error.
func (s *Service) Chat(ctx context.Context, sessionID, message string, history []Turn) (ChatResult, error) {
	start := time.Now()

	message = strings.TrimSpace(message)
	if message == "" {
		return ChatResult{}, fmt.Errorf("%w: message is required", domerrors.ErrInvalidInput)
	}
	if sessionID == "" {
		sessionID = "default"
	}

	intent := ClassifyIntent(message)
	extracted := Extract(message, s.snap)

	turns := s.contexts.Get(sessionID)
	if len(turns) == 0 && len(history) > 0 {
		// A new session may carry client-side history from before a restart.
		for _, t := range history {
			s.contexts.Append(sessionID, t)
		}
		turns = s.contexts.Get(sessionID)
	}

	prompt := ComposePrompt(message, intent, extracted, turns, s.snap)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	usedFallback := false
	response, err := s.complete.Complete(callCtx, prompt)
	if err != nil {
		usedFallback = true
		response = s.fallback.Respond(message)
		s.log.WithSession(sessionID).Warn("Completion failed, using fallback responder",
			"intent", intent.String(),
			"error", err.Error(),
		)
	}

	s.contexts.Append(sessionID, Turn{Role: "user", Content: message})
	s.contexts.Append(sessionID, Turn{Role: "assistant", Content: response})
	s.archive(sessionID)

	confidence := confidenceCompletion
	if usedFallback {
		confidence = confidenceFallback
	}

	if s.metrics != nil {
		s.metrics.RecordChat(intent.String(), usedFallback, time.Since(start))
	}

	return ChatResult{
		Response:      response,
		Sources:       sourcesForIntent(intent),
		Suggestions:   Suggest(intent),
		Confidence:    confidence,
		Intent:        intent.String(),
		ExtractedInfo: extracted,
		Entities:      entitiesFrom(extracted),
	}, nil
}

// archive hands the session transcript to the sink without blocking the
// response. Failures are logged and dropped.
func (s *Service) archive(sessionID string) {
	if s.sink == nil {
		return
	}
	turns := s.contexts.Get(sessionID)
	payload, err := json.Marshal(turns)
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.sink.Store(ctx, sessionID, payload); err != nil {
			s.log.WithSession(sessionID).Warn("Transcript archival failed", "error", err.Error())
		}
	}()
}

// sourcesForIntent names the content domains an intent's answer draws on.
func sourcesForIntent(intent Intent) []string {
	switch intent {
	case IntentFacultyInformation, IntentContactInformation, IntentResearchInterestMatch:
		return []string{"faculty"}
	case IntentCourseInformation, IntentSemesterCourseQuery, IntentPrerequisiteAnalysis:
		return []string{"courses"}
	case IntentFacultyCourseMapping:
		return []string{"faculty", "courses"}
	case IntentInfrastructureQuery:
		return []string{"infrastructure"}
	case IntentCareerGuidance:
		return []string{"faculty", "courses"}
	default:
		return []string{"faculty", "courses", "infrastructure", "calendar"}
	}
}

func entitiesFrom(extracted ExtractedInfo) Entities {
	entities := Entities{
		Faculty:         []string{},
		Courses:         []string{},
		Specializations: []string{},
	}
	if extracted.FacultyName != "" {
		entities.Faculty = append(entities.Faculty, extracted.FacultyName)
	}
	if extracted.CourseName != "" {
		entities.Courses = append(entities.Courses, extracted.CourseName)
	}
	if extracted.Specialization != "" {
		entities.Specializations = append(entities.Specializations, extracted.Specialization)
	}
	return entities
}
