package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrNotProjectMember = errors.New("you are not assigned to this project")
	ErrLocationRequired = errors.New("check-in location is required")
)

// GeoValidationError is returned when a submission falls outside a project's
// geofence. The computed distance is surfaced for client display, never
// silently dropped.
type GeoValidationError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *GeoValidationError) Error() string {
	return fmt.Sprintf("check-in location is %.0fm from the project site (allowed radius %.0fm)",
		e.DistanceMeters, e.RadiusMeters)
}

// ConflictError is returned when a duplicate-day submission hits a record
// that is already pending admin review or finalized. The current status is
// surfaced so the UI can explain why resubmission is blocked.
type ConflictError struct {
	CurrentStatus Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("attendance for this day already exists with status %s", e.CurrentStatus)
}

// InvalidStateError is returned when a decision is attempted against a record
// not in the expected source state.
type InvalidStateError struct {
	CurrentStatus Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("attendance record is in status %s and cannot accept this decision", e.CurrentStatus)
}
