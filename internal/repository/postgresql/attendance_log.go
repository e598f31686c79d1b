package postgresql

import (
	"context"
	"fmt"

	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/database"
)

type attendanceLogRepository struct {
	db *database.DB
}

func NewAttendanceLogRepository(db *database.DB) attendance.LogRepository {
	return &attendanceLogRepository{db: db}
}

// Append implements attendance.LogRepository. Entries are insert-only; there
// is no update or delete path anywhere in this repository.
func (r *attendanceLogRepository) Append(ctx context.Context, entry attendance.Log) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (
			attendance_id, action, previous_status, new_status,
			actor_id, remarks, metadata
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := q.Exec(ctx, query,
		entry.AttendanceID,
		entry.Action,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.ActorID,
		entry.Remarks,
		entry.Metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to append attendance log: %w", err)
	}

	return nil
}

// ListByAttendance implements attendance.LogRepository.
func (r *attendanceLogRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, action, previous_status, new_status,
			   actor_id, remarks, metadata, created_at
		FROM attendance_logs
		WHERE attendance_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	logs := make([]attendance.Log, 0)
	for rows.Next() {
		var entry attendance.Log
		var action string
		var prevStatus, newStatus *string
		err := rows.Scan(
			&entry.ID, &entry.AttendanceID, &action, &prevStatus, &newStatus,
			&entry.ActorID, &entry.Remarks, &entry.Metadata, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		entry.Action = attendance.LogAction(action)
		if prevStatus != nil {
			s := attendance.Status(*prevStatus)
			entry.PreviousStatus = &s
		}
		if newStatus != nil {
			s := attendance.Status(*newStatus)
			entry.NewStatus = &s
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance logs: %w", err)
	}

	return logs, nil
}
