package interviews

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	interviewdomain "hr-interviews-go/internal/domain/interview"
	"hr-interviews-go/internal/transport/httpserver/handler/common"
	"hr-interviews-go/internal/validation"
)

type CreateInterviewRequest struct {
	EmployeeID  string  `json:"employeeId" validate:"required,uuid"`
	Position    string  `json:"position" validate:"required,min=2,max=100"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
	ScheduledAt string  `json:"scheduledAt" validate:"required"`
	Status      *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

func (r *CreateInterviewRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Position = strings.TrimSpace(r.Position)
	r.Notes = trimPtr(r.Notes)
	r.ScheduledAt = strings.TrimSpace(r.ScheduledAt)
	r.Status = lowerPtr(r.Status)
}

type UpdateInterviewRequest struct {
	EmployeeID  *string `json:"employeeId" validate:"omitnil,uuid"`
	Position    *string `json:"position" validate:"omitnil,min=2,max=100"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
	ScheduledAt *string `json:"scheduledAt"`
	Status      *string `json:"status" validate:"omitnil,oneof=scheduled completed cancelled"`
}

func (r *UpdateInterviewRequest) Normalize() {
	r.EmployeeID = trimPtr(r.EmployeeID)
	r.Position = trimPtr(r.Position)
	r.Notes = trimPtr(r.Notes)
	r.ScheduledAt = trimPtr(r.ScheduledAt)
	r.Status = lowerPtr(r.Status)
}

type interviewResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Position    string    `json:"position"`
	Notes       *string   `json:"notes"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (h *Handlers) ListInterviews(w http.ResponseWriter, r *http.Request) {
	employeeID := strings.TrimSpace(r.URL.Query().Get("userId"))

	var (
		items []interviewdomain.Interview
		err   error
	)
	if employeeID == "" {
		items, err = h.Interviews.List(r.Context())
	} else {
		if verr := validation.Var("userId", employeeID, "uuid"); verr != nil {
			common.WriteError(w, http.StatusBadRequest, "invalid_request", verr.Error())
			return
		}
		items, err = h.Interviews.ListByEmployee(r.Context(), employeeID)
	}
	if err != nil {
		h.log.InternalError("interviews.list: list interviews failed", err, "employee_id", employeeID)
		common.WriteInternalError(w)
		return
	}

	response := make([]interviewResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toInterviewResponse(item))
	}
	common.WriteJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateInterview(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}

	scheduledAt, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	input := interviewdomain.CreateInterviewInput{
		EmployeeID:  req.EmployeeID,
		Position:    req.Position,
		Notes:       req.Notes,
		ScheduledAt: scheduledAt,
	}
	if req.Status != nil && *req.Status != "" {
		status := interviewdomain.Status(*req.Status)
		input.Status = &status
	}

	created, err := h.Interviews.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, "interviews.create", "", err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, toInterviewResponse(*created))
}

func (h *Handlers) UpdateInterview(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req UpdateInterviewRequest
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}

	input := interviewdomain.UpdateInterviewInput{
		EmployeeID: req.EmployeeID,
		Position:   req.Position,
		Notes:      req.Notes,
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := parseScheduledAt(*req.ScheduledAt)
		if err != nil {
			common.WriteError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		input.ScheduledAt = &scheduledAt
	}
	if req.Status != nil {
		status := interviewdomain.Status(*req.Status)
		input.Status = &status
	}

	updated, err := h.Interviews.Update(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, "interviews.update", id, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, toInterviewResponse(*updated))
}

func (h *Handlers) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := h.Interviews.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, "interviews.delete", id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, interviewdomain.ErrInterviewNotFound):
		h.log.BusinessError(op+": interview not found", err, "interview_id", id)
		common.WriteError(w, http.StatusNotFound, "interview_not_found", fmt.Sprintf("Interview with id %s not found", id))
	case errors.Is(err, interviewdomain.ErrEmployeeNotFound):
		h.log.BusinessError(op+": employee not found", err, "interview_id", id)
		common.WriteError(w, http.StatusBadRequest, "employee_not_found", "employeeId does not reference an existing employee")
	case errors.Is(err, interviewdomain.ErrInvalidInterview):
		h.log.BusinessError(op+": invalid interview", err, "interview_id", id)
		common.WriteError(w, http.StatusBadRequest, "validation_failed", strings.TrimPrefix(err.Error(), interviewdomain.ErrInvalidInterview.Error()+": "))
	default:
		h.log.InternalError(op+": failed", err, "interview_id", id)
		common.WriteInternalError(w)
	}
}

func toInterviewResponse(item interviewdomain.Interview) interviewResponse {
	return interviewResponse{
		ID:          item.ID,
		EmployeeID:  item.EmployeeID,
		Position:    item.Position,
		Notes:       item.Notes,
		ScheduledAt: item.ScheduledAt,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func lowerPtr(value *string) *string {
	if value == nil {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(*value))
	return &lowered
}
