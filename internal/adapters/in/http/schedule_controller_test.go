package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yusched/schedule-generator/internal/config"
	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

type stubUseCase struct {
	listTermsFn    func(ctx context.Context) ([]string, error)
	listCoursesFn  func(ctx context.Context, term string) (map[string][]string, error)
	listSectionsFn func(ctx context.Context, term string) (map[string][]string, error)
	generateFn     func(ctx context.Context, term string, selections []domain.CourseSelection, blocked []domain.BlockedSlot) (*domain.GenerateResult, error)
}

func (s *stubUseCase) ListTerms(ctx context.Context) ([]string, error) {
	return s.listTermsFn(ctx)
}

func (s *stubUseCase) ListCourses(ctx context.Context, term string) (map[string][]string, error) {
	return s.listCoursesFn(ctx, term)
}

func (s *stubUseCase) ListSections(ctx context.Context, term string) (map[string][]string, error) {
	return s.listSectionsFn(ctx, term)
}

func (s *stubUseCase) GenerateSchedules(ctx context.Context, term string, selections []domain.CourseSelection, blocked []domain.BlockedSlot) (*domain.GenerateResult, error) {
	return s.generateFn(ctx, term, selections, blocked)
}

func (s *stubUseCase) InvalidateTerm(ctx context.Context, term string) error {
	return nil
}

func newRouter(t *testing.T, useCase *stubUseCase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	controller := NewScheduleController(useCase, &config.Config{}, nopLogger{})
	controller.RegisterRoutes(router)
	return router
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

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealth(t *testing.T) {
	router := newRouter(t, &stubUseCase{})

	recorder := doRequest(t, router, http.MethodGet, "/health", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
}

func TestListTerms(t *testing.T) {
	useCase := &stubUseCase{
		listTermsFn: func(ctx context.Context) ([]string, error) {
			return []string{"2024-2025 Spring", "2023-2024 Spring"}, nil
		},
	}
	router := newRouter(t, useCase)

	recorder := doRequest(t, router, http.MethodGet, "/api/terms", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if recorder.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header must be set")
	}

	var terms []string
	if err := json.Unmarshal(recorder.Body.Bytes(), &terms); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(terms) != 2 || terms[0] != "2024-2025 Spring" {
		t.Fatalf("terms = %v", terms)
	}
}

func TestGenerateSchedule(t *testing.T) {
	var gotTerm string
	var gotSelections []domain.CourseSelection
	var gotBlocked []domain.BlockedSlot

	useCase := &stubUseCase{
		generateFn: func(ctx context.Context, term string, selections []domain.CourseSelection, blocked []domain.BlockedSlot) (*domain.GenerateResult, error) {
			gotTerm = term
			gotSelections = selections
			gotBlocked = blocked
			return &domain.GenerateResult{Term: term, Schedules: []domain.Schedule{}}, nil
		},
	}
	router := newRouter(t, useCase)

	// Курсы допускаются и строкой, и объектом с закрепленной секцией
	body := `{
		"term": "2024-2025 Spring",
		"courses": ["COMP 1101", {"course": "MATH 1131", "section": "2"}],
		"blocked_hours": [{"day": "Monday", "slot": "12:40-13:30"}]
	}`

	recorder := doRequest(t, router, http.MethodPost, "/api/generate_schedule", body)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	if gotTerm != "2024-2025 Spring" {
		t.Errorf("term = %q", gotTerm)
	}
	if len(gotSelections) != 2 || gotSelections[0].Course != "COMP 1101" ||
		gotSelections[1].Course != "MATH 1131" || gotSelections[1].Section != "2" {
		t.Errorf("selections = %+v", gotSelections)
	}
	if len(gotBlocked) != 1 || gotBlocked[0].Day != domain.WeekdayMonday {
		t.Errorf("blocked = %+v", gotBlocked)
	}

	var response map[string]json.RawMessage
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"term", "schedules", "warnings", "time_slots", "days_of_week"} {
		if _, ok := response[key]; !ok {
			t.Errorf("response missing %q key", key)
		}
	}
}

func TestGenerateScheduleEmptyCourses(t *testing.T) {
	router := newRouter(t, &stubUseCase{})

	recorder := doRequest(t, router, http.MethodPost, "/api/generate_schedule",
		`{"term": "2024-2025 Spring", "courses": []}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestGenerateScheduleMalformedBlockedSlot(t *testing.T) {
	router := newRouter(t, &stubUseCase{})

	recorder := doRequest(t, router, http.MethodPost, "/api/generate_schedule",
		`{"courses": ["COMP 1101"], "blocked_hours": [{"day": "Monday", "slot": "9-10"}]}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestGenerateScheduleTermNotFound(t *testing.T) {
	useCase := &stubUseCase{
		generateFn: func(ctx context.Context, term string, selections []domain.CourseSelection, blocked []domain.BlockedSlot) (*domain.GenerateResult, error) {
			return nil, out.ErrCatalogNotFound
		},
	}
	router := newRouter(t, useCase)

	recorder := doRequest(t, router, http.MethodPost, "/api/generate_schedule",
		`{"term": "2019-2020 Spring", "courses": ["COMP 1101"]}`)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Course data for term '2019-2020 Spring' not found") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestListCoursesTermNotFoundWithoutTerm(t *testing.T) {
	useCase := &stubUseCase{
		listCoursesFn: func(ctx context.Context, term string) (map[string][]string, error) {
			return nil, out.ErrCatalogNotFound
		},
	}
	router := newRouter(t, useCase)

	recorder := doRequest(t, router, http.MethodGet, "/api/courses", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "No course data available") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestListSections(t *testing.T) {
	useCase := &stubUseCase{
		listSectionsFn: func(ctx context.Context, term string) (map[string][]string, error) {
			if term != "2024-2025 Spring" {
				t.Errorf("term = %q", term)
			}
			return map[string][]string{"COMP 1101": {"1", "2"}}, nil
		},
	}
	router := newRouter(t, useCase)

	recorder := doRequest(t, router, http.MethodGet, "/api/sections?term=2024-2025+Spring", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
}
