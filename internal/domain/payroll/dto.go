package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/validator"
)

// Config carries the environment-level payout defaults, overridable per
// project. Injected at construction so tests pass a struct instead of
// reading environment variables.
type Config struct {
	// DefaultTeamShare is the profit-share fraction applied when a project
	// does not configure one.
	DefaultTeamShare float64
	// DefaultExpectedDays is the expected working days per month applied when
	// a project does not configure one.
	DefaultExpectedDays int
	// ManagerMultiplier is applied to users holding the project-manager role.
	ManagerMultiplier float64
}

// DefaultConfig returns the documented global defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTeamShare:    0.3,
		DefaultExpectedDays: 22,
		ManagerMultiplier:   1.2,
	}
}

// Record is one (user, project) payout line for a month. Pure derived view,
// recomputed on every query and never persisted.
type Record struct {
	UserID                 string          `json:"user_id"`
	UserName               string          `json:"user_name"`
	UserEmail              string          `json:"user_email"`
	ProjectID              string          `json:"project_id"`
	ProjectTitle           string          `json:"project_title"`
	Month                  int             `json:"month"`
	Year                   int             `json:"year"`
	WorkingDays            int             `json:"working_days"`
	ExpectedDays           int             `json:"expected_days"`
	DailyRate              decimal.Decimal `json:"daily_rate"`
	PayoutBeforeMultiplier decimal.Decimal `json:"payout_before_multiplier"`
	Multiplier             decimal.Decimal `json:"multiplier"`
	Payout                 decimal.Decimal `json:"payout"`
}

// Summary is the result of one monthly computation.
type Summary struct {
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	Records     []Record        `json:"records"`
}

// ApprovedGroup is one aggregation row from the store: the count of approved
// attendance days for a (user, project) pair within the month.
type ApprovedGroup struct {
	UserID    string
	ProjectID string
	Days      int
}

type MonthRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2200 {
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
