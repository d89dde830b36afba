package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aimldept/deptbot-go/internal/agent"
	"github.com/aimldept/deptbot-go/internal/content"
	"github.com/aimldept/deptbot-go/internal/logger"
	"github.com/aimldept/deptbot-go/internal/ratelimit"
	"github.com/aimldept/deptbot-go/internal/search"
	"github.com/aimldept/deptbot-go/internal/seed"
	"github.com/aimldept/deptbot-go/internal/storage"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type testEnv struct {
	router *gin.Engine
	snap   *content.Snapshot
}

func setupTestRouter(t *testing.T, completer agent.Completer, limiter *ratelimit.KeyedLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.New("error")

	snap, err := content.Load("")
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := seed.Run(ctx, db, snap, log); err != nil {
		t.Fatalf("seed.Run() error = %v", err)
	}

	idx, err := search.NewIndex(snap, log)
	if err != nil {
		t.Fatalf("search.NewIndex() error = %v", err)
	}

	svc, err := agent.NewService(agent.ServiceOptions{
		Snapshot:  snap,
		Completer: completer,
		Logger:    log,
	})
	if err != nil {
		t.Fatalf("agent.NewService() error = %v", err)
	}

	router := gin.New()
	NewHandlers(svc, db, idx, limiter, nil, log).Register(router)
	return &testEnv{router: router, snap: snap}
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestChatSuccess(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "generated"}, nil)

	w := doRequest(t, env.router, http.MethodPost, "/api/ai/chat",
		`{"message":"hello","sessionId":"s1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var result agent.ChatResult
	decodeData(t, w, &result)
	if result.Response != "generated" {
		t.Errorf("response = %q, want %q", result.Response, "generated")
	}
	if result.Intent != "greeting" {
		t.Errorf("intent = %q, want greeting", result.Intent)
	}
	if len(result.Suggestions) != 3 {
		t.Errorf("len(suggestions) = %d, want 3", len(result.Suggestions))
	}
}

func TestChatEmptyBody(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "unused"}, nil)

	w := doRequest(t, env.router, http.MethodPost, "/api/ai/chat", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Message is required"`) {
		t.Errorf("body = %s, want Message is required error", w.Body.String())
	}
}

func TestChatMissingMessage(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "unused"}, nil)

	w := doRequest(t, env.router, http.MethodPost, "/api/ai/chat", `{"sessionId":"s1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestChatProviderFailureDegrades(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{err: errors.New("provider down")}, nil)

	w := doRequest(t, env.router, http.MethodPost, "/api/ai/chat",
		`{"message":"who is the hod","sessionId":"s1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; provider errors must degrade, not fail", w.Code)
	}

	var result agent.ChatResult
	decodeData(t, w, &result)
	hod := env.snap.HOD()
	if hod == nil {
		t.Fatal("fixtures have no HOD record")
	}
	if !strings.Contains(result.Response, hod.Name) {
		t.Errorf("fallback response %q does not name the HOD %q", result.Response, hod.Name)
	}
}

func TestChatSessionRateLimit(t *testing.T) {
	limiter := ratelimit.NewKeyedLimiter(1, 0.0, time.Hour, nil)
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, limiter)

	first := doRequest(t, env.router, http.MethodPost, "/api/ai/chat",
		`{"message":"hello","sessionId":"burst"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}

	second := doRequest(t, env.router, http.MethodPost, "/api/ai/chat",
		`{"message":"hello","sessionId":"burst"}`)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", second.Code)
	}
}

func TestListFaculty(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/faculty", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []content.FacultyRecord
	decodeData(t, w, &records)
	if len(records) != len(env.snap.Faculty) {
		t.Errorf("len(records) = %d, want %d", len(records), len(env.snap.Faculty))
	}
}

func TestListFacultyByDesignation(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/faculty?designation=hod", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []content.FacultyRecord
	decodeData(t, w, &records)
	if len(records) == 0 {
		t.Fatal("no records for designation=hod, want the HOD")
	}
	for _, f := range records {
		if !f.IsHOD() {
			t.Errorf("record %q is not an HOD", f.Name)
		}
	}
}

func TestGetFacultyNotFound(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/faculty/NOPE999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListCoursesBySemester(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/courses?semester=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []content.CourseRecord
	decodeData(t, w, &records)
	want := env.snap.CoursesBySemester("5")
	if len(records) != len(want) {
		t.Errorf("len(records) = %d, want %d", len(records), len(want))
	}
	for _, c := range records {
		if c.SemesterNumber() != "5" {
			t.Errorf("course %s has semester %q, want 5th", c.Code, c.Semester)
		}
	}
}

func TestListCoursesBadCredits(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/courses?credits=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListCoursesSearch(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/courses?search=machine+learning", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []content.CourseRecord
	decodeData(t, w, &records)
	if len(records) == 0 {
		t.Fatal("search=machine learning returned nothing")
	}
	if len(records) >= len(env.snap.Courses) {
		t.Errorf("search did not narrow results: %d of %d", len(records), len(env.snap.Courses))
	}
}

func TestGetCourseByCode(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	code := env.snap.Courses[0].Code
	w := doRequest(t, env.router, http.MethodGet, "/api/courses/"+strings.ToLower(code), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; course lookup must be case-insensitive", w.Code)
	}

	var record content.CourseRecord
	decodeData(t, w, &record)
	if record.Code != code {
		t.Errorf("code = %q, want %q", record.Code, code)
	}
}

func TestGetCalendarNotFound(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/calendar/1999-00", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListInfrastructure(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/api/infrastructure", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []content.InfrastructureRecord
	decodeData(t, w, &records)
	if len(records) != len(env.snap.Infrastructure) {
		t.Errorf("len(records) = %d, want %d", len(records), len(env.snap.Infrastructure))
	}
}

func TestHealth(t *testing.T) {
	env := setupTestRouter(t, &stubCompleter{reply: "ok"}, nil)

	w := doRequest(t, env.router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "OK" {
		t.Errorf("status = %q, want OK", body.Status)
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", body.Timestamp, err)
	}
}
