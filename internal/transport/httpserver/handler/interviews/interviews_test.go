package interviews

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interviewdomain "hr-interviews-go/internal/domain/interview"
	"hr-interviews-go/internal/validation"
	"hr-interviews-go/pkg/hrclient"
	"hr-interviews-go/pkg/logger"
)

const employeeID = "1b7e5a8e-4b44-4c1e-9d59-0c2f3f1b7a10"

type fakeService struct {
	items       map[string]interviewdomain.Interview
	listedFor   *string
	lastCreate  interviewdomain.CreateInterviewInput
	lastUpdate  interviewdomain.UpdateInterviewInput
	knownPeople map[string]bool
}

func newFakeService() *fakeService {
	return &fakeService{
		items:       make(map[string]interviewdomain.Interview),
		knownPeople: map[string]bool{employeeID: true},
	}
}

func (s *fakeService) List(_ context.Context) ([]interviewdomain.Interview, error) {
	s.listedFor = nil
	return s.filter(""), nil
}

func (s *fakeService) ListByEmployee(_ context.Context, id string) ([]interviewdomain.Interview, error) {
	s.listedFor = &id
	return s.filter(id), nil
}

func (s *fakeService) filter(id string) []interviewdomain.Interview {
	result := make([]interviewdomain.Interview, 0)
	for _, item := range s.items {
		if id == "" || item.EmployeeID == id {
			result = append(result, item)
		}
	}
	return result
}

func (s *fakeService) Create(_ context.Context, input interviewdomain.CreateInterviewInput) (*interviewdomain.Interview, error) {
	s.lastCreate = input
	if !s.knownPeople[input.EmployeeID] {
		return nil, interviewdomain.ErrEmployeeNotFound
	}
	status := interviewdomain.StatusScheduled
	if input.Status != nil {
		status = *input.Status
	}
	item := interviewdomain.Interview{
		ID:          "iv-1",
		EmployeeID:  input.EmployeeID,
		Position:    input.Position,
		Notes:       input.Notes,
		ScheduledAt: input.ScheduledAt,
		Status:      status,
	}
	s.items[item.ID] = item
	return &item, nil
}

func (s *fakeService) Update(_ context.Context, id string, input interviewdomain.UpdateInterviewInput) (*interviewdomain.Interview, error) {
	s.lastUpdate = input
	item, ok := s.items[id]
	if !ok {
		return nil, interviewdomain.ErrInterviewNotFound
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.ScheduledAt != nil {
		item.ScheduledAt = *input.ScheduledAt
	}
	s.items[id] = item
	return &item, nil
}

func (s *fakeService) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return interviewdomain.ErrInterviewNotFound
	}
	delete(s.items, id)
	return nil
}

func newRouter(svc Service) http.Handler {
	h := New(svc, logger.Discard())
	r := chi.NewRouter()
	r.Get("/api/interviews", h.ListInterviews)
	r.Post("/api/interviews", h.CreateInterview)
	r.Put("/api/interviews/{id}", h.UpdateInterview)
	r.Delete("/api/interviews/{id}", h.DeleteInterview)
	return r
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code, envelope.Error.Message
}

func TestCreateInterviewDefaultsToScheduled(t *testing.T) {
	svc := newFakeService()
	rec := do(t, newRouter(svc), http.MethodPost, "/api/interviews",
		`{"employeeId":"`+employeeID+`","position":"Backend Engineer","scheduledAt":"2025-03-10T09:30:00Z"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.lastCreate.Status)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "scheduled", body["status"])
	assert.Equal(t, employeeID, body["employeeId"])
	assert.Equal(t, "2025-03-10T09:30:00Z", body["scheduledAt"])
}

func TestCreateInterviewAcceptsStatusCaseInsensitive(t *testing.T) {
	svc := newFakeService()
	rec := do(t, newRouter(svc), http.MethodPost, "/api/interviews",
		`{"employeeId":"`+employeeID+`","position":"QA","scheduledAt":"2025-03-10","status":"Completed"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.lastCreate.Status)
	assert.Equal(t, interviewdomain.StatusCompleted, *svc.lastCreate.Status)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), svc.lastCreate.ScheduledAt)
}

func TestCreateInterviewValidation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		code    string
		message string
	}{
		{"bad status", `{"employeeId":"` + employeeID + `","position":"QA","scheduledAt":"2025-03-10","status":"postponed"}`, "validation_failed", "status must be one of scheduled, completed, cancelled"},
		{"long notes", `{"employeeId":"` + employeeID + `","position":"QA","scheduledAt":"2025-03-10","notes":"` + strings.Repeat("n", 1001) + `"}`, "validation_failed", "notes must be at most 1000 characters"},
		{"missing position", `{"employeeId":"` + employeeID + `","scheduledAt":"2025-03-10"}`, "validation_failed", "position is required"},
		{"bad employee id", `{"employeeId":"42","position":"QA","scheduledAt":"2025-03-10"}`, "validation_failed", "employeeId must be a valid UUID"},
		{"bad date", `{"employeeId":"` + employeeID + `","position":"QA","scheduledAt":"tomorrow"}`, "validation_failed", "scheduledAt must be a valid date"},
		{"unknown employee", `{"employeeId":"00000000-0000-4000-8000-000000000000","position":"QA","scheduledAt":"2025-03-10"}`, "employee_not_found", "employeeId does not reference an existing employee"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newFakeService()
			rec := do(t, newRouter(svc), http.MethodPost, "/api/interviews", tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			code, message := errorOf(t, rec)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.message, message)
			assert.Empty(t, svc.items)
		})
	}
}

func TestListInterviewsByUserID(t *testing.T) {
	svc := newFakeService()
	svc.items["a"] = interviewdomain.Interview{ID: "a", EmployeeID: employeeID}
	svc.items["b"] = interviewdomain.Interview{ID: "b", EmployeeID: "other"}
	router := newRouter(svc)

	rec := do(t, router, http.MethodGet, "/api/interviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.listedFor)

	var all []interviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = do(t, router, http.MethodGet, "/api/interviews?userId="+employeeID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listedFor)
	assert.Equal(t, employeeID, *svc.listedFor)

	var mine []interviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].ID)

	rec = do(t, router, http.MethodGet, "/api/interviews?userId=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	_, message := errorOf(t, rec)
	assert.Equal(t, "userId must be a valid UUID", message)
}

func TestUpdateInterview(t *testing.T) {
	svc := newFakeService()
	svc.items["iv-1"] = interviewdomain.Interview{ID: "iv-1", EmployeeID: employeeID, Status: interviewdomain.StatusCompleted}
	router := newRouter(svc)

	rec := do(t, router, http.MethodPut, "/api/interviews/iv-1", `{"status":"scheduled","scheduledAt":"2025-04-01T10:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"scheduled"`)
	assert.Nil(t, svc.lastUpdate.Position)
	require.NotNil(t, svc.lastUpdate.ScheduledAt)
	assert.Equal(t, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), *svc.lastUpdate.ScheduledAt)

	rec = do(t, router, http.MethodPut, "/api/interviews/missing", `{"status":"cancelled"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	code, message := errorOf(t, rec)
	assert.Equal(t, "interview_not_found", code)
	assert.Equal(t, "Interview with id missing not found", message)
}

func TestDeleteInterview(t *testing.T) {
	svc := newFakeService()
	svc.items["iv-1"] = interviewdomain.Interview{ID: "iv-1"}
	router := newRouter(svc)

	rec := do(t, router, http.MethodDelete, "/api/interviews/iv-1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/interviews/iv-1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseScheduledAt(t *testing.T) {
	parsed, err := parseScheduledAt("2025-03-10T09:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC), parsed)

	_, err = parseScheduledAt("")
	assert.EqualError(t, err, "scheduledAt is required")
}

func TestClientFormRulesMatchServerRules(t *testing.T) {
	assert.Equal(t, validation.FieldRules(CreateInterviewRequest{}), hrclient.InterviewFormRules())
}
