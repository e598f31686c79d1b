package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/domain/project"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var geoErr *attendance.GeoValidationError
	if errors.As(err, &geoErr) {
		UnprocessableEntity(w, "OUTSIDE_GEOFENCE", geoErr.Error(), map[string]string{
			"distance_m": strconv.FormatFloat(geoErr.DistanceMeters, 'f', 0, 64),
			"radius_m":   strconv.FormatFloat(geoErr.RadiusMeters, 'f', 0, 64),
		})
		return
	}

	var conflictErr *attendance.ConflictError
	if errors.As(err, &conflictErr) {
		Conflict(w, "ALREADY_SUBMITTED", conflictErr.Error(), map[string]string{
			"current_status": string(conflictErr.CurrentStatus),
		})
		return
	}

	var stateErr *attendance.InvalidStateError
	if errors.As(err, &stateErr) {
		Conflict(w, "INVALID_STATE", stateErr.Error(), map[string]string{
			"current_status": string(stateErr.CurrentStatus),
		})
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotProjectMember):
		Forbidden(w, "You are not assigned to this project")
	case errors.Is(err, attendance.ErrLocationRequired):
		ValidationError(w, map[string]string{
			"latitude":  "check-in location is required",
			"longitude": "check-in location is required",
		})

	// Collaborator lookups
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Authorization
	case errors.Is(err, user.ErrNoAuthenticatedUser):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager or founder access required")
	case errors.Is(err, user.ErrFounderAccessRequired):
		Forbidden(w, "Founder access required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
