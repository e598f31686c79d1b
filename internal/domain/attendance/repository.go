package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The backing store
// enforces uniqueness on (user_id, project_id, date); concurrent submissions
// for the same key resolve to one create and one update-or-conflict.
type Repository interface {
	// Create inserts a new record. A unique-constraint violation is returned
	// as a *ConflictError carrying the racing record's status.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByID retrieves a record by ID. Returns ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByIDForUpdate retrieves a record by ID with a row lock, so a decision
	// guard check and the subsequent write form one atomic unit. Must be
	// called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Record, error)

	// GetByUserProjectDate retrieves the record for one user/project/day with
	// a row lock when called inside a transaction. Returns nil when absent.
	GetByUserProjectDate(ctx context.Context, userID, projectID string, date time.Time) (*Record, error)

	// UpdateSubmission rewrites the member-editable fields of a record
	// (check-in/out, location, qr ref, remarks) on the resubmission path.
	UpdateSubmission(ctx context.Context, rec Record) error

	// UpdateStatus writes a review outcome: status, reviewer remarks, verified_by.
	UpdateStatus(ctx context.Context, rec Record) error

	// ListByUser retrieves one user's records within [from, to), optionally
	// scoped to a project, ordered by date.
	ListByUser(ctx context.Context, userID string, from, to time.Time, projectID *string) ([]Record, error)

	// ListByRange retrieves all records within [from, to), optionally filtered
	// by status, ordered by date then user.
	ListByRange(ctx context.Context, from, to time.Time, status *Status) ([]Record, error)
}

// LogRepository defines access to the append-only audit trail.
type LogRepository interface {
	// Append inserts one log entry. Entries are immutable thereafter.
	Append(ctx context.Context, entry Log) error

	// ListByAttendance retrieves all entries for a record, oldest first.
	ListByAttendance(ctx context.Context, attendanceID string) ([]Log, error)
}
