package attendance

import (
	"time"

	"github.com/workhive-crm/crm-backend-go/internal/pkg/validator"
)

const maxRemarksLength = 500

// ========================================
// SUBMISSION DTOs
// ========================================

type SubmitRequest struct {
	ProjectID    string   `json:"project_id"`
	CheckInTime  *string  `json:"check_in_time,omitempty"`  // RFC3339; defaults to now
	CheckOutTime *string  `json:"check_out_time,omitempty"` // RFC3339
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AccuracyM    *float64 `json:"accuracy_m,omitempty"`
	QRCodeRef    *string  `json:"qr_code_ref,omitempty"`
	Remarks      *string  `json:"remarks,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.AccuracyM != nil && *r.AccuracyM < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy_m",
			Message: "accuracy_m must not be negative",
		})
	}

	var checkIn, checkOut time.Time
	if r.CheckInTime != nil && *r.CheckInTime != "" {
		t, ok := validator.IsValidDateTime(*r.CheckInTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an RFC3339 timestamp",
			})
		}
		checkIn = t
	}

	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		t, ok := validator.IsValidDateTime(*r.CheckOutTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an RFC3339 timestamp",
			})
		}
		checkOut = t
	}

	if !checkIn.IsZero() && !checkOut.IsZero() && checkOut.Before(checkIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check_out_time must not be before check_in_time",
		})
	}

	if r.Remarks != nil && len(*r.Remarks) > maxRemarksLength {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// DECISION DTOs
// ========================================

type DecisionRequest struct {
	ID      string  `json:"-"`
	Approve bool    `json:"approve"`
	Remarks *string `json:"remarks,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if r.Remarks != nil && len(*r.Remarks) > maxRemarksLength {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: "remarks must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// LISTING DTOs
// ========================================

type MyAttendanceFilter struct {
	Month     int     `json:"month"`
	Year      int     `json:"year"`
	ProjectID *string `json:"project_id,omitempty"`
}

func (f *MyAttendanceFilter) Validate() error {
	return validateMonthYear(f.Month, f.Year)
}

type TeamAttendanceFilter struct {
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Status *string `json:"status,omitempty"`
}

func (f *TeamAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if err := validateMonthYear(f.Month, f.Year); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PENDING_MANAGER, PENDING_ADMIN, APPROVED, REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateMonthYear(month, year int) error {
	var errs validator.ValidationErrors

	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if year < 2000 || year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type RecordResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	UserName       *string  `json:"user_name,omitempty"`
	ProjectID      string   `json:"project_id"`
	ProjectTitle   *string  `json:"project_title,omitempty"`
	Date           string   `json:"date"`
	CheckInTime    string   `json:"check_in_time"`
	CheckOutTime   *string  `json:"check_out_time,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	AccuracyM      *float64 `json:"accuracy_m,omitempty"`
	QRCodeRef      *string  `json:"qr_code_ref,omitempty"`
	Remarks        *string  `json:"remarks,omitempty"`
	ManagerRemarks *string  `json:"manager_remarks,omitempty"`
	AdminRemarks   *string  `json:"admin_remarks,omitempty"`
	Status         string   `json:"status"`
	VerifiedBy     *string  `json:"verified_by,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type ListResponse struct {
	TotalCount   int              `json:"total_count"`
	StatusCounts map[string]int   `json:"status_counts,omitempty"`
	Records      []RecordResponse `json:"records"`
}

type LogResponse struct {
	ID             string                 `json:"id"`
	AttendanceID   string                 `json:"attendance_id"`
	Action         string                 `json:"action"`
	PreviousStatus *string                `json:"previous_status,omitempty"`
	NewStatus      *string                `json:"new_status,omitempty"`
	ActorID        string                 `json:"actor_id"`
	Remarks        *string                `json:"remarks,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt      string                 `json:"created_at"`
}
