package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/workhive-crm/crm-backend-go/internal/domain/project"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/database"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.Repository {
	return &projectRepository{db: db}
}

// GetByID implements project.Repository.
func (r *projectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.title,
			   p.geofence_lat, p.geofence_lng, p.geofence_radius_m,
			   p.allocated_budget, p.budget,
			   p.team_share_percent, p.expected_working_days,
			   COALESCE(ARRAY_AGG(pm.user_id::text) FILTER (WHERE pm.user_id IS NOT NULL), '{}') AS member_ids
		FROM projects p
		LEFT JOIN project_members pm ON pm.project_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`

	var (
		proj                   project.Project
		geoLat, geoLng, geoRad *float64
		allocated, budget      decimal.NullDecimal
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&proj.ID, &proj.Title,
		&geoLat, &geoLng, &geoRad,
		&allocated, &budget,
		&proj.TeamSharePercent, &proj.ExpectedWorkingDays,
		&proj.MemberIDs,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	if geoLat != nil && geoLng != nil {
		gf := project.Geofence{Latitude: *geoLat, Longitude: *geoLng}
		if geoRad != nil {
			gf.RadiusMeters = *geoRad
		}
		proj.Geofence = &gf
	}
	if allocated.Valid {
		proj.AllocatedBudget = &allocated.Decimal
	}
	if budget.Valid {
		proj.Budget = &budget.Decimal
	}

	return proj, nil
}
