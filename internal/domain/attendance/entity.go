package attendance

import (
	"time"
)

// Status is the review state of an attendance record.
type Status string

const (
	StatusPendingManager Status = "PENDING_MANAGER" // initial, waiting for first-stage review
	StatusPendingAdmin   Status = "PENDING_ADMIN"   // passed manager review, waiting for founder
	StatusApproved       Status = "APPROVED"        // terminal; counts toward payroll
	StatusRejected       Status = "REJECTED"        // re-enterable by a founder decision only
)

// ValidStatuses returns every status the state machine can produce.
func ValidStatuses() []Status {
	return []Status{StatusPendingManager, StatusPendingAdmin, StatusApproved, StatusRejected}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// BlocksResubmission reports whether a member submission against an existing
// record must be rejected with a conflict. A record already in front of a
// founder, or already finalized, cannot be overwritten.
func (s Status) BlocksResubmission() bool {
	return s == StatusApproved || s == StatusPendingAdmin
}

// ManagerCanDecide reports whether a first-stage decision is allowed from s.
func (s Status) ManagerCanDecide() bool {
	return s == StatusPendingManager
}

// AdminCanDecide reports whether a founder decision is allowed from s.
// REJECTED is deliberately a valid source: a founder may flip a rejected
// record to APPROVED, while the member cannot resurrect it themselves.
func (s Status) AdminCanDecide() bool {
	return s == StatusPendingAdmin || s == StatusRejected
}

// Record is one user's attendance for one project on one calendar day.
// Exactly one record exists per (UserID, ProjectID, Date); Date is always
// truncated to day granularity at write time.
type Record struct {
	ID        string
	UserID    string
	ProjectID string
	Date      time.Time

	CheckIn  time.Time
	CheckOut *time.Time

	Latitude       *float64
	Longitude      *float64
	AccuracyMeters *float64
	QRCodeRef      *string

	Remarks        *string
	ManagerRemarks *string
	AdminRemarks   *string

	Status     Status
	VerifiedBy *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserName     *string
	ProjectTitle *string
}

// LogAction is the kind of audit entry.
type LogAction string

const (
	LogActionCreate       LogAction = "CREATE"
	LogActionUpdateStatus LogAction = "UPDATE_STATUS"
	LogActionComment      LogAction = "COMMENT"
)

// Log is one append-only audit entry for a record. Never updated or deleted;
// it is the system of record for dispute resolution.
type Log struct {
	ID           string
	AttendanceID string
	Action       LogAction
	// PreviousStatus and NewStatus are set for UPDATE_STATUS entries only.
	PreviousStatus *Status
	NewStatus      *Status
	ActorID        string
	Remarks        *string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
