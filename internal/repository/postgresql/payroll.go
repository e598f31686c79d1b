package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workhive-crm/crm-backend-go/internal/domain/attendance"
	"github.com/workhive-crm/crm-backend-go/internal/domain/payroll"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// ApprovedDayCounts implements payroll.Repository. One row per distinct
// calendar day is guaranteed by the unique constraint on the attendance
// table, so COUNT(*) is the day count.
func (r *payrollRepository) ApprovedDayCounts(ctx context.Context, month, year int) ([]payroll.ApprovedGroup, error) {
	q := GetQuerier(ctx, r.db)

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `
		SELECT user_id, project_id, COUNT(*) AS days
		FROM attendance_records
		WHERE status = $1 AND date >= $2 AND date < $3
		GROUP BY user_id, project_id
		ORDER BY user_id ASC, project_id ASC
	`

	rows, err := q.Query(ctx, query, attendance.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate approved days: %w", err)
	}
	defer rows.Close()

	groups := make([]payroll.ApprovedGroup, 0)
	for rows.Next() {
		var g payroll.ApprovedGroup
		if err := rows.Scan(&g.UserID, &g.ProjectID, &g.Days); err != nil {
			return nil, fmt.Errorf("failed to scan approved-day group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read approved-day groups: %w", err)
	}

	return groups, nil
}
