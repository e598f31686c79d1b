package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	ListTeam(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ManagerDecision(w http.ResponseWriter, r *http.Request)
	AdminDecision(w http.ResponseWriter, r *http.Request)
	GetLogs(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Submit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance submitted", result)
}

// monthYearFromQuery parses the month/year filter, defaulting to the current
// month when absent.
func monthYearFromQuery(r *http.Request) (int, int) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			month = parsed
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			year = parsed
		}
	}

	return month, year
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)
	filter := attendance.MyAttendanceFilter{Month: month, Year: year}
	if v := r.URL.Query().Get("project_id"); v != "" {
		filter.ProjectID = &v
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTeam implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListTeam(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)
	filter := attendance.TeamAttendanceFilter{Month: month, Year: year}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.attendanceService.ListTeam(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) decodeDecision(w http.ResponseWriter, r *http.Request) (attendance.DecisionRequest, bool) {
	var req attendance.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return attendance.DecisionRequest{}, false
	}
	req.ID = chi.URLParam(r, "id")
	return req, true
}

// ManagerDecision implements AttendanceHandler.
func (h *attendanceHandlerImpl) ManagerDecision(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ManagerDecision(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", result)
}

// AdminDecision implements AttendanceHandler.
func (h *attendanceHandlerImpl) AdminDecision(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.AdminDecision(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", result)
}

// GetLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetLogs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetLogs(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
