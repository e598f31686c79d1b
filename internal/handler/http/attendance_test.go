package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
)

type fakeAttendanceService struct {
	submitFn          func(ctx context.Context, req attendance.SubmitRequest) (attendance.RecordResponse, error)
	getMyAttendanceFn func(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListResponse, error)
	listTeamFn        func(ctx context.Context, filter attendance.TeamAttendanceFilter) (attendance.ListResponse, error)
	getRecordFn       func(ctx context.Context, id string) (attendance.RecordResponse, error)
	managerDecisionFn func(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error)
	adminDecisionFn   func(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error)
	getLogsFn         func(ctx context.Context, recordID string) ([]attendance.LogResponse, error)
}

func (f *fakeAttendanceService) Submit(ctx context.Context, req attendance.SubmitRequest) (attendance.RecordResponse, error) {
	return f.submitFn(ctx, req)
}
func (f *fakeAttendanceService) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListResponse, error) {
	return f.getMyAttendanceFn(ctx, filter)
}
func (f *fakeAttendanceService) ListTeam(ctx context.Context, filter attendance.TeamAttendanceFilter) (attendance.ListResponse, error) {
	return f.listTeamFn(ctx, filter)
}
func (f *fakeAttendanceService) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	return f.getRecordFn(ctx, id)
}
func (f *fakeAttendanceService) ManagerDecision(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	return f.managerDecisionFn(ctx, req)
}
func (f *fakeAttendanceService) AdminDecision(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	return f.adminDecisionFn(ctx, req)
}
func (f *fakeAttendanceService) GetLogs(ctx context.Context, recordID string) ([]attendance.LogResponse, error) {
	return f.getLogsFn(ctx, recordID)
}

func newAttendanceRouter(svc attendance.Service) *chi.Mux {
	h := NewAttendanceHandler(svc)
	r := chi.NewRouter()
	r.Post("/attendance", h.Submit)
	r.Get("/attendance/my", h.GetMyAttendance)
	r.Get("/attendance/{id}", h.Get)
	r.Post("/attendance/{id}/manager-decision", h.ManagerDecision)
	return r
}

func TestAttendanceHandler_SubmitCreated(t *testing.T) {
	svc := &fakeAttendanceService{
		submitFn: func(ctx context.Context, req attendance.SubmitRequest) (attendance.RecordResponse, error) {
			return attendance.RecordResponse{ID: "att-1", Status: string(attendance.StatusPendingManager)}, nil
		},
	}
	router := newAttendanceRouter(svc)

	body := bytes.NewBufferString(`{"project_id":"proj-1","latitude":0.1,"longitude":0.1}`)
	req := httptest.NewRequest(http.MethodPost, "/attendance", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "att-1", resp.Data.ID)
	assert.Equal(t, "PENDING_MANAGER", resp.Data.Status)
}

func TestAttendanceHandler_SubmitInvalidJSON(t *testing.T) {
	router := newAttendanceRouter(&fakeAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/attendance", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_SubmitOutsideGeofence(t *testing.T) {
	svc := &fakeAttendanceService{
		submitFn: func(ctx context.Context, req attendance.SubmitRequest) (attendance.RecordResponse, error) {
			return attendance.RecordResponse{}, &attendance.GeoValidationError{DistanceMeters: 250, RadiusMeters: 100}
		},
	}
	router := newAttendanceRouter(svc)

	body := bytes.NewBufferString(`{"project_id":"proj-1","latitude":0.1,"longitude":0.1}`)
	req := httptest.NewRequest(http.MethodPost, "/attendance", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OUTSIDE_GEOFENCE", resp.Error.Code)
	assert.Equal(t, "250", resp.Error.Details["distance_m"])
	assert.Equal(t, "100", resp.Error.Details["radius_m"])
}

func TestAttendanceHandler_SubmitConflict(t *testing.T) {
	svc := &fakeAttendanceService{
		submitFn: func(ctx context.Context, req attendance.SubmitRequest) (attendance.RecordResponse, error) {
			return attendance.RecordResponse{}, &attendance.ConflictError{CurrentStatus: attendance.StatusApproved}
		},
	}
	router := newAttendanceRouter(svc)

	body := bytes.NewBufferString(`{"project_id":"proj-1","latitude":0.1,"longitude":0.1}`)
	req := httptest.NewRequest(http.MethodPost, "/attendance", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ALREADY_SUBMITTED", resp.Error.Code)
	assert.Equal(t, "APPROVED", resp.Error.Details["current_status"])
}

func TestAttendanceHandler_ManagerDecisionRoutesID(t *testing.T) {
	var gotReq attendance.DecisionRequest
	svc := &fakeAttendanceService{
		managerDecisionFn: func(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
			gotReq = req
			return attendance.RecordResponse{ID: req.ID, Status: string(attendance.StatusPendingAdmin)}, nil
		},
	}
	router := newAttendanceRouter(svc)

	body := bytes.NewBufferString(`{"approve":true,"remarks":"ok"}`)
	req := httptest.NewRequest(http.MethodPost, "/attendance/att-9/manager-decision", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "att-9", gotReq.ID)
	assert.True(t, gotReq.Approve)
	require.NotNil(t, gotReq.Remarks)
	assert.Equal(t, "ok", *gotReq.Remarks)
}

func TestAttendanceHandler_GetMyAttendanceFilters(t *testing.T) {
	var gotFilter attendance.MyAttendanceFilter
	svc := &fakeAttendanceService{
		getMyAttendanceFn: func(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListResponse, error) {
			gotFilter = filter
			return attendance.ListResponse{TotalCount: 0, Records: []attendance.RecordResponse{}}, nil
		},
	}
	router := newAttendanceRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/attendance/my?month=3&year=2026&project_id=proj-7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gotFilter.Month)
	assert.Equal(t, 2026, gotFilter.Year)
	require.NotNil(t, gotFilter.ProjectID)
	assert.Equal(t, "proj-7", *gotFilter.ProjectID)
}

func TestAttendanceHandler_GetNotFound(t *testing.T) {
	svc := &fakeAttendanceService{
		getRecordFn: func(ctx context.Context, id string) (attendance.RecordResponse, error) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		},
	}
	router := newAttendanceRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/attendance/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
