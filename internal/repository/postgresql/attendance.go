package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.project_id, a.date,
	a.check_in, a.check_out,
	a.latitude, a.longitude, a.accuracy_m, a.qr_code_ref,
	a.remarks, a.manager_remarks, a.admin_remarks,
	a.status, a.verified_by,
	a.created_at, a.updated_at`

func scanRecord(row pgx.Row, rec *attendance.Record, withJoins bool) error {
	dest := []interface{}{
		&rec.ID, &rec.UserID, &rec.ProjectID, &rec.Date,
		&rec.CheckIn, &rec.CheckOut,
		&rec.Latitude, &rec.Longitude, &rec.AccuracyMeters, &rec.QRCodeRef,
		&rec.Remarks, &rec.ManagerRemarks, &rec.AdminRemarks,
		&rec.Status, &rec.VerifiedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &rec.UserName, &rec.ProjectTitle)
	}
	return row.Scan(dest...)
}

// Create implements attendance.Repository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			user_id, project_id, date,
			check_in, check_out,
			latitude, longitude, accuracy_m, qr_code_ref,
			remarks, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.UserID,
		rec.ProjectID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.Latitude,
		rec.Longitude,
		rec.AccuracyMeters,
		rec.QRCodeRef,
		rec.Remarks,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// Lost a race against a concurrent submission for the same
			// user/project/day. Surface the winner's current status.
			status := attendance.StatusPendingManager
			var existing string
			lookupErr := q.QueryRow(ctx,
				`SELECT status FROM attendance_records WHERE user_id = $1 AND project_id = $2 AND date = $3`,
				rec.UserID, rec.ProjectID, rec.Date,
			).Scan(&existing)
			if lookupErr == nil {
				status = attendance.Status(existing)
			}
			return attendance.Record{}, &attendance.ConflictError{CurrentStatus: status}
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, p.title
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		JOIN projects p ON p.id = a.project_id
		WHERE a.id = $1
	`

	var rec attendance.Record
	err := scanRecord(q.QueryRow(ctx, query, id), &rec, true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByIDForUpdate implements attendance.Repository. The row lock holds until
// the ambient transaction commits, so decisions on the same record serialize.
func (r *attendanceRepository) GetByIDForUpdate(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.id = $1
		FOR UPDATE
	`

	var rec attendance.Record
	err := scanRecord(q.QueryRow(ctx, query, id), &rec, false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to lock attendance record: %w", err)
	}

	return rec, nil
}

// GetByUserProjectDate implements attendance.Repository.
func (r *attendanceRepository) GetByUserProjectDate(ctx context.Context, userID, projectID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.project_id = $2 AND a.date = $3
	`
	if InTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	var rec attendance.Record
	err := scanRecord(q.QueryRow(ctx, query, userID, projectID, date), &rec, false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by day: %w", err)
	}

	return &rec, nil
}

// UpdateSubmission implements attendance.Repository.
func (r *attendanceRepository) UpdateSubmission(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in = $2,
			check_out = $3,
			latitude = $4,
			longitude = $5,
			accuracy_m = $6,
			qr_code_ref = $7,
			remarks = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.CheckIn,
		rec.CheckOut,
		rec.Latitude,
		rec.Longitude,
		rec.AccuracyMeters,
		rec.QRCodeRef,
		rec.Remarks,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// UpdateStatus implements attendance.Repository.
func (r *attendanceRepository) UpdateStatus(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET status = $2,
			manager_remarks = $3,
			admin_remarks = $4,
			verified_by = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.Status,
		rec.ManagerRemarks,
		rec.AdminRemarks,
		rec.VerifiedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListByUser implements attendance.Repository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string, from, to time.Time, projectID *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, p.title
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		JOIN projects p ON p.id = a.project_id
		WHERE a.user_id = $1 AND a.date >= $2 AND a.date < $3
	`
	args := []interface{}{userID, from, to}
	if projectID != nil {
		query += ` AND a.project_id = $4`
		args = append(args, *projectID)
	}
	query += ` ORDER BY a.date ASC, a.project_id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := scanRecord(rows, &rec, true); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}

// ListByRange implements attendance.Repository.
func (r *attendanceRepository) ListByRange(ctx context.Context, from, to time.Time, status *attendance.Status) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, p.title
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		JOIN projects p ON p.id = a.project_id
		WHERE a.date >= $1 AND a.date < $2
	`
	args := []interface{}{from, to}
	if status != nil {
		query += ` AND a.status = $3`
		args = append(args, *status)
	}
	query += ` ORDER BY a.date ASC, a.user_id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := scanRecord(rows, &rec, true); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}
