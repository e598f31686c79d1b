package attendance

import (
	"context"
)

// Service defines business logic for attendance verification.
type Service interface {
	// Submit processes a member check-in/out submission: membership check,
	// geofence gate, day bucketing and the create-or-resubmit flow.
	Submit(ctx context.Context, req SubmitRequest) (RecordResponse, error)

	// GetMyAttendance retrieves the authenticated member's records for a month.
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListResponse, error)

	// ListTeam retrieves all records for a month (manager/founder only).
	ListTeam(ctx context.Context, filter TeamAttendanceFilter) (ListResponse, error)

	// GetRecord retrieves a single record by ID.
	GetRecord(ctx context.Context, id string) (RecordResponse, error)

	// ManagerDecision performs the first-stage review on a PENDING_MANAGER record.
	ManagerDecision(ctx context.Context, req DecisionRequest) (RecordResponse, error)

	// AdminDecision performs the final review on a PENDING_ADMIN or REJECTED record.
	AdminDecision(ctx context.Context, req DecisionRequest) (RecordResponse, error)

	// GetLogs retrieves the audit trail of a record, oldest first.
	GetLogs(ctx context.Context, recordID string) ([]LogResponse, error)
}

// Notifier is the fire-and-forget hook invoked after a submission or a
// decision lands. Implementations must not block the request path.
type Notifier interface {
	AttendanceSubmitted(rec Record, projectTitle string)
	AttendanceReviewed(rec Record)
}
