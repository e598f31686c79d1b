package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/domain/project"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/database"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/geo"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/validator"
	"github.com/workhive-crm/crm-backend-go/internal/repository/postgresql"
)

// Settings carries the environment-level knobs of the verification flow.
type Settings struct {
	// Location is the calendar used to bucket submissions into days.
	Location *time.Location
	// DefaultGeofenceRadius applies when a project sets a geofence center
	// without a radius, in meters.
	DefaultGeofenceRadius float64
}

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.Repository
	logRepo        attendance.LogRepository
	projectRepo    project.Repository
	roleResolver   user.RoleResolver
	notifier       attendance.Notifier
	settings       Settings

	// runTx wraps the create/decide critical sections. Defaults to
	// postgresql.WithTransaction; swapped out in unit tests.
	runTx func(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	logRepo attendance.LogRepository,
	projectRepo project.Repository,
	roleResolver user.RoleResolver,
	notifier attendance.Notifier,
	settings Settings,
) attendance.Service {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		logRepo:        logRepo,
		projectRepo:    projectRepo,
		roleResolver:   roleResolver,
		notifier:       notifier,
		settings:       settings,
		runTx:          postgresql.WithTransaction,
	}
}

func actorFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", user.ErrNoAuthenticatedUser
	}

	return userID, nil
}

func timePtrToRFC3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:             rec.ID,
		UserID:         rec.UserID,
		UserName:       rec.UserName,
		ProjectID:      rec.ProjectID,
		ProjectTitle:   rec.ProjectTitle,
		Date:           rec.Date.Format("2006-01-02"),
		CheckInTime:    rec.CheckIn.Format(time.RFC3339),
		CheckOutTime:   timePtrToRFC3339(rec.CheckOut),
		Latitude:       rec.Latitude,
		Longitude:      rec.Longitude,
		AccuracyM:      rec.AccuracyMeters,
		QRCodeRef:      rec.QRCodeRef,
		Remarks:        rec.Remarks,
		ManagerRemarks: rec.ManagerRemarks,
		AdminRemarks:   rec.AdminRemarks,
		Status:         string(rec.Status),
		VerifiedBy:     rec.VerifiedBy,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      rec.UpdatedAt.Format(time.RFC3339),
	}
}

// dayOf buckets an instant into a calendar day using the configured location.
// The stored date is midnight UTC of that calendar day, matching the DATE
// column in the store.
func (s *AttendanceServiceImpl) dayOf(t time.Time) time.Time {
	local := t.In(s.settings.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Submit implements attendance.Service.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, req attendance.SubmitRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	proj, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if !proj.HasMember(userID) {
		return attendance.RecordResponse{}, attendance.ErrNotProjectMember
	}

	if proj.Geofence != nil {
		if req.Latitude == nil || req.Longitude == nil {
			return attendance.RecordResponse{}, attendance.ErrLocationRequired
		}
		radius := proj.Geofence.RadiusMeters
		if radius <= 0 {
			radius = s.settings.DefaultGeofenceRadius
		}
		result := geo.Validate(*req.Latitude, *req.Longitude, geo.Center{
			Latitude:     proj.Geofence.Latitude,
			Longitude:    proj.Geofence.Longitude,
			RadiusMeters: radius,
		})
		if !result.OK {
			return attendance.RecordResponse{}, &attendance.GeoValidationError{
				DistanceMeters: result.DistanceMeters,
				RadiusMeters:   result.RadiusMeters,
			}
		}
	}

	checkIn := time.Now().UTC()
	if req.CheckInTime != nil && *req.CheckInTime != "" {
		t, parseErr := time.Parse(time.RFC3339, *req.CheckInTime)
		if parseErr != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_in_time: %w", parseErr)
		}
		checkIn = t.UTC()
	}

	var checkOut *time.Time
	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		t, parseErr := time.Parse(time.RFC3339, *req.CheckOutTime)
		if parseErr != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_out_time: %w", parseErr)
		}
		utc := t.UTC()
		checkOut = &utc
	}

	// Re-checked here because check_in_time defaults to now when omitted;
	// request validation only sees the pair when both are supplied.
	if checkOut != nil && checkOut.Before(checkIn) {
		return attendance.RecordResponse{}, validator.ValidationErrors{{
			Field:   "check_out_time",
			Message: "check_out_time must not be before check_in_time",
		}}
	}

	submission := attendance.Record{
		UserID:         userID,
		ProjectID:      req.ProjectID,
		Date:           s.dayOf(checkIn),
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyM,
		QRCodeRef:      req.QRCodeRef,
		Remarks:        req.Remarks,
		Status:         attendance.StatusPendingManager,
	}

	var saved attendance.Record
	err = s.runTx(ctx, s.db, func(txCtx context.Context) error {
		existing, txErr := s.attendanceRepo.GetByUserProjectDate(txCtx, userID, req.ProjectID, submission.Date)
		if txErr != nil {
			return txErr
		}

		if existing == nil {
			created, createErr := s.attendanceRepo.Create(txCtx, submission)
			if createErr != nil {
				return createErr
			}
			saved = created
			return s.logRepo.Append(txCtx, attendance.Log{
				AttendanceID: created.ID,
				Action:       attendance.LogActionCreate,
				ActorID:      userID,
				Remarks:      req.Remarks,
				Metadata:     submissionMetadata(req),
			})
		}

		if existing.Status.BlocksResubmission() {
			return &attendance.ConflictError{CurrentStatus: existing.Status}
		}

		// Resubmission path: overwrite the member-editable fields while the
		// review state stays untouched. A REJECTED record remains REJECTED
		// until a founder flips it.
		resubmitted := *existing
		resubmitted.CheckIn = submission.CheckIn
		resubmitted.CheckOut = submission.CheckOut
		resubmitted.Latitude = submission.Latitude
		resubmitted.Longitude = submission.Longitude
		resubmitted.AccuracyMeters = submission.AccuracyMeters
		resubmitted.QRCodeRef = submission.QRCodeRef
		resubmitted.Remarks = submission.Remarks
		if txErr := s.attendanceRepo.UpdateSubmission(txCtx, resubmitted); txErr != nil {
			return txErr
		}
		saved = resubmitted
		return s.logRepo.Append(txCtx, attendance.Log{
			AttendanceID: existing.ID,
			Action:       attendance.LogActionComment,
			ActorID:      userID,
			Remarks:      req.Remarks,
			Metadata:     submissionMetadata(req),
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifier.AttendanceSubmitted(saved, proj.Title)

	resp := toRecordResponse(saved)
	resp.ProjectTitle = &proj.Title
	return resp, nil
}

func submissionMetadata(req attendance.SubmitRequest) map[string]interface{} {
	md := map[string]interface{}{}
	if req.Latitude != nil {
		md["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		md["longitude"] = *req.Longitude
	}
	if req.AccuracyM != nil {
		md["accuracy_m"] = *req.AccuracyM
	}
	if req.QRCodeRef != nil {
		md["qr_code_ref"] = *req.QRCodeRef
	}
	if len(md) == 0 {
		return nil
	}
	return md
}

// GetMyAttendance implements attendance.Service.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	userID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	from, to := monthRange(filter.Month, filter.Year)
	records, err := s.attendanceRepo.ListByUser(ctx, userID, from, to, filter.ProjectID)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	return toListResponse(records), nil
}

// ListTeam implements attendance.Service.
func (s *AttendanceServiceImpl) ListTeam(ctx context.Context, filter attendance.TeamAttendanceFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	userID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	roleInfo, err := s.roleResolver.GetRoleInfo(ctx, userID)
	if err != nil {
		return attendance.ListResponse{}, err
	}
	if !roleInfo.IsManagerOrFounder {
		return attendance.ListResponse{}, user.ErrManagerAccessRequired
	}

	var status *attendance.Status
	if filter.Status != nil {
		st := attendance.Status(*filter.Status)
		status = &st
	}

	from, to := monthRange(filter.Month, filter.Year)
	records, err := s.attendanceRepo.ListByRange(ctx, from, to, status)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	return toListResponse(records), nil
}

func monthRange(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func toListResponse(records []attendance.Record) attendance.ListResponse {
	counts := make(map[string]int)
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		counts[string(rec.Status)]++
		responses = append(responses, toRecordResponse(rec))
	}
	return attendance.ListResponse{
		TotalCount:   len(records),
		StatusCounts: counts,
		Records:      responses,
	}
}

// GetRecord implements attendance.Service. Members see their own records;
// managers and founders see everyone's.
func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if rec.UserID != userID {
		roleInfo, roleErr := s.roleResolver.GetRoleInfo(ctx, userID)
		if roleErr != nil {
			return attendance.RecordResponse{}, roleErr
		}
		if !roleInfo.IsManagerOrFounder {
			return attendance.RecordResponse{}, user.ErrManagerAccessRequired
		}
	}

	return toRecordResponse(rec), nil
}

// ManagerDecision implements attendance.Service. The guard check and the
// status write run under one row lock so concurrent decisions serialize.
func (s *AttendanceServiceImpl) ManagerDecision(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	actorID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	roleInfo, err := s.roleResolver.GetRoleInfo(ctx, actorID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !roleInfo.IsManagerOrFounder {
		return attendance.RecordResponse{}, user.ErrManagerAccessRequired
	}

	newStatus := attendance.StatusRejected
	if req.Approve {
		newStatus = attendance.StatusPendingAdmin
	}

	var decided attendance.Record
	err = s.runTx(ctx, s.db, func(txCtx context.Context) error {
		rec, txErr := s.attendanceRepo.GetByIDForUpdate(txCtx, req.ID)
		if txErr != nil {
			return txErr
		}

		if !rec.Status.ManagerCanDecide() {
			return &attendance.InvalidStateError{CurrentStatus: rec.Status}
		}

		previous := rec.Status
		rec.Status = newStatus
		rec.ManagerRemarks = req.Remarks
		rec.VerifiedBy = &actorID
		if txErr := s.attendanceRepo.UpdateStatus(txCtx, rec); txErr != nil {
			return txErr
		}

		decided = rec
		return s.logRepo.Append(txCtx, attendance.Log{
			AttendanceID:   rec.ID,
			Action:         attendance.LogActionUpdateStatus,
			PreviousStatus: &previous,
			NewStatus:      &rec.Status,
			ActorID:        actorID,
			Remarks:        req.Remarks,
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifier.AttendanceReviewed(decided)

	return toRecordResponse(decided), nil
}

// AdminDecision implements attendance.Service. Founder only; accepts records
// pending admin review and, deliberately, rejected ones.
func (s *AttendanceServiceImpl) AdminDecision(ctx context.Context, req attendance.DecisionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	actorID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	roleInfo, err := s.roleResolver.GetRoleInfo(ctx, actorID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !roleInfo.IsFounder {
		return attendance.RecordResponse{}, user.ErrFounderAccessRequired
	}

	newStatus := attendance.StatusRejected
	if req.Approve {
		newStatus = attendance.StatusApproved
	}

	var decided attendance.Record
	err = s.runTx(ctx, s.db, func(txCtx context.Context) error {
		rec, txErr := s.attendanceRepo.GetByIDForUpdate(txCtx, req.ID)
		if txErr != nil {
			return txErr
		}

		if !rec.Status.AdminCanDecide() {
			return &attendance.InvalidStateError{CurrentStatus: rec.Status}
		}

		previous := rec.Status
		rec.Status = newStatus
		rec.AdminRemarks = req.Remarks
		rec.VerifiedBy = &actorID
		if txErr := s.attendanceRepo.UpdateStatus(txCtx, rec); txErr != nil {
			return txErr
		}

		decided = rec
		return s.logRepo.Append(txCtx, attendance.Log{
			AttendanceID:   rec.ID,
			Action:         attendance.LogActionUpdateStatus,
			PreviousStatus: &previous,
			NewStatus:      &rec.Status,
			ActorID:        actorID,
			Remarks:        req.Remarks,
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.notifier.AttendanceReviewed(decided)

	return toRecordResponse(decided), nil
}

// GetLogs implements attendance.Service. Visibility follows GetRecord.
func (s *AttendanceServiceImpl) GetLogs(ctx context.Context, recordID string) ([]attendance.LogResponse, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if rec.UserID != userID {
		roleInfo, roleErr := s.roleResolver.GetRoleInfo(ctx, userID)
		if roleErr != nil {
			return nil, roleErr
		}
		if !roleInfo.IsManagerOrFounder {
			return nil, user.ErrManagerAccessRequired
		}
	}

	logs, err := s.logRepo.ListByAttendance(ctx, recordID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.LogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, attendance.LogResponse{
			ID:             entry.ID,
			AttendanceID:   entry.AttendanceID,
			Action:         string(entry.Action),
			PreviousStatus: statusPtrToString(entry.PreviousStatus),
			NewStatus:      statusPtrToString(entry.NewStatus),
			ActorID:        entry.ActorID,
			Remarks:        entry.Remarks,
			Metadata:       entry.Metadata,
			CreatedAt:      entry.CreatedAt.Format(time.RFC3339),
		})
	}

	return responses, nil
}

func statusPtrToString(s *attendance.Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
