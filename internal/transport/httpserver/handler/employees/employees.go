package employees

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	employeedomain "hr-interviews-go/internal/domain/employee"
	"hr-interviews-go/internal/transport/httpserver/handler/common"
)

const maxSearchLength = 100

type CreateEmployeeRequest struct {
	Email     string  `json:"email" validate:"required,email,max=254"`
	FirstName string  `json:"firstName" validate:"required,min=2,max=50"`
	LastNames string  `json:"lastNames" validate:"required,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
}

func (r *CreateEmployeeRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastNames = strings.TrimSpace(r.LastNames)
	r.Phone = trimPtr(r.Phone)
}

type UpdateEmployeeRequest struct {
	Email     *string `json:"email" validate:"omitnil,email,max=254"`
	FirstName *string `json:"firstName" validate:"omitnil,min=2,max=50"`
	LastNames *string `json:"lastNames" validate:"omitnil,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
}

func (r *UpdateEmployeeRequest) Normalize() {
	r.Email = trimPtr(r.Email)
	r.FirstName = trimPtr(r.FirstName)
	r.LastNames = trimPtr(r.LastNames)
	r.Phone = trimPtr(r.Phone)
}

type employeeResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastNames string    `json:"lastNames"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type interviewSummaryResponse struct {
	ID          string    `json:"id"`
	Position    string    `json:"position"`
	Notes       *string   `json:"notes"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type employeeDetailsResponse struct {
	employeeResponse
	Interviews []interviewSummaryResponse `json:"interviews"`
}

func (h *Handlers) ListEmployees(w http.ResponseWriter, r *http.Request) {
	search, ok := searchParam(r.URL.Query())
	if !ok {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "search must be a string")
		return
	}
	if len([]rune(search)) > maxSearchLength {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "search must be at most 100 characters")
		return
	}

	items, err := h.Employees.List(r.Context(), search)
	if err != nil {
		h.log.InternalError("employees.list: list employees failed", err, "search", search)
		common.WriteInternalError(w)
		return
	}

	response := make([]employeeResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toEmployeeResponse(item))
	}
	common.WriteJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	details, err := h.Employees.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "employees.get", id, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, toEmployeeDetailsResponse(*details))
}

func (h *Handlers) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.Employees.Create(r.Context(), employeedomain.CreateEmployeeInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastNames: req.LastNames,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeServiceError(w, "employees.create", "", err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, toEmployeeResponse(*created))
}

func (h *Handlers) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req UpdateEmployeeRequest
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}

	// An explicit empty phone clears it; the service reads "" as nil.
	details, err := h.Employees.Update(r.Context(), id, employeedomain.UpdateEmployeeInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastNames: req.LastNames,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeServiceError(w, "employees.update", id, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, toEmployeeDetailsResponse(*details))
}

func (h *Handlers) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := h.Employees.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "employees.delete", id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, employeedomain.ErrEmployeeNotFound):
		h.log.BusinessError(op+": employee not found", err, "employee_id", id)
		message := err.Error()
		var notFound *employeedomain.NotFoundError
		if !errors.As(err, &notFound) {
			message = (&employeedomain.NotFoundError{ID: id}).Error()
		}
		common.WriteError(w, http.StatusNotFound, "employee_not_found", message)
	case errors.Is(err, employeedomain.ErrInvalidEmployee):
		h.log.BusinessError(op+": invalid employee", err, "employee_id", id)
		common.WriteError(w, http.StatusBadRequest, "validation_failed", strings.TrimPrefix(err.Error(), employeedomain.ErrInvalidEmployee.Error()+": "))
	default:
		h.log.InternalError(op+": failed", err, "employee_id", id)
		common.WriteInternalError(w)
	}
}

func toEmployeeResponse(item employeedomain.Employee) employeeResponse {
	return employeeResponse{
		ID:        item.ID,
		Email:     item.Email,
		FirstName: item.FirstName,
		LastNames: item.LastNames,
		Phone:     item.Phone,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toEmployeeDetailsResponse(item employeedomain.EmployeeWithInterviews) employeeDetailsResponse {
	interviews := make([]interviewSummaryResponse, 0, len(item.Interviews))
	for _, summary := range item.Interviews {
		interviews = append(interviews, interviewSummaryResponse{
			ID:          summary.ID,
			Position:    summary.Position,
			Notes:       summary.Notes,
			Status:      summary.Status,
			ScheduledAt: summary.ScheduledAt,
			CreatedAt:   summary.CreatedAt,
		})
	}
	return employeeDetailsResponse{
		employeeResponse: toEmployeeResponse(item.Employee),
		Interviews:       interviews,
	}
}

// searchParam rejects array-shaped input: a repeated key, bracketed keys
// such as search[]=x, or a JSON array literal like search=["x"].
func searchParam(query url.Values) (string, bool) {
	for key := range query {
		if strings.HasPrefix(key, "search[") {
			return "", false
		}
	}

	values := query["search"]
	switch len(values) {
	case 0:
		return "", true
	case 1:
	default:
		return "", false
	}

	value := strings.TrimSpace(values[0])
	if strings.HasPrefix(value, "[") {
		var items []interface{}
		if json.Unmarshal([]byte(value), &items) == nil {
			return "", false
		}
	}
	return value, true
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
