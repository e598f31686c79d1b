package payroll

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/workhive-crm/crm-backend-go/internal/domain/payroll"
	"github.com/workhive-crm/crm-backend-go/internal/domain/project"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.Repository
	projectRepo  project.Repository
	userRepo     user.Repository
	roleResolver user.RoleResolver
	cfg          payroll.Config
	logger       *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.Repository,
	projectRepo project.Repository,
	userRepo user.Repository,
	roleResolver user.RoleResolver,
	cfg payroll.Config,
	logger *slog.Logger,
) payroll.Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		roleResolver: roleResolver,
		cfg:          cfg,
		logger:       logger,
	}
}

// ComputeMonth implements payroll.Service. Groups arrive from the store in
// (user, project) order, so two runs over the same attendance state produce
// byte-identical output.
func (s *PayrollServiceImpl) ComputeMonth(ctx context.Context, req payroll.MonthRequest) (payroll.Summary, error) {
	if err := req.Validate(); err != nil {
		return payroll.Summary{}, err
	}

	groups, err := s.payrollRepo.ApprovedDayCounts(ctx, req.Month, req.Year)
	if err != nil {
		return payroll.Summary{}, err
	}

	summary := payroll.Summary{
		Month:       req.Month,
		Year:        req.Year,
		TotalPayout: decimal.Zero,
		Records:     make([]payroll.Record, 0, len(groups)),
	}

	for _, group := range groups {
		proj, err := s.projectRepo.GetByID(ctx, group.ProjectID)
		if err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				// Attendance against a since-deleted project contributes
				// nothing rather than failing the whole month.
				s.logger.DebugContext(ctx, "skipping payout line: project missing",
					"project_id", group.ProjectID, "user_id", group.UserID)
				continue
			}
			return payroll.Summary{}, err
		}

		usr, err := s.userRepo.GetByID(ctx, group.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				s.logger.DebugContext(ctx, "skipping payout line: user missing",
					"user_id", group.UserID, "project_id", group.ProjectID)
				continue
			}
			return payroll.Summary{}, err
		}

		roleInfo, err := s.roleResolver.GetRoleInfo(ctx, group.UserID)
		if err != nil {
			return payroll.Summary{}, err
		}

		rec, ok := s.computeRecord(proj, usr, roleInfo, group.Days, req.Month, req.Year)
		if !ok {
			s.logger.DebugContext(ctx, "skipping payout line: no payout configuration",
				"project_id", group.ProjectID, "user_id", group.UserID)
			continue
		}
		summary.TotalPayout = summary.TotalPayout.Add(rec.Payout)
		summary.Records = append(summary.Records, rec)
	}

	return summary, nil
}

func (s *PayrollServiceImpl) computeRecord(
	proj project.Project,
	usr user.User,
	roleInfo user.RoleInfo,
	workingDays int,
	month, year int,
) (payroll.Record, bool) {
	teamShare := s.cfg.DefaultTeamShare
	if proj.TeamSharePercent != nil && *proj.TeamSharePercent > 0 {
		teamShare = *proj.TeamSharePercent
	}

	expectedDays := s.cfg.DefaultExpectedDays
	if proj.ExpectedWorkingDays != nil && *proj.ExpectedWorkingDays > 0 {
		expectedDays = *proj.ExpectedWorkingDays
	}

	budget := proj.EffectiveBudget()
	if budget.IsZero() || expectedDays <= 0 {
		// No budget or no expected days means no payout is computable for
		// this project; the group earns nothing rather than dividing by zero.
		return payroll.Record{}, false
	}

	dailyRate := budget.
		Mul(decimal.NewFromFloat(teamShare)).
		Div(decimal.NewFromInt(int64(expectedDays)))

	// Days beyond the expected count earn nothing; the month's share is the
	// cap, and the reported working days never exceed it either.
	cappedDays := workingDays
	if cappedDays > expectedDays {
		cappedDays = expectedDays
	}

	payoutBefore := dailyRate.Mul(decimal.NewFromInt(int64(cappedDays)))

	multiplier := decimal.NewFromInt(1)
	if roleInfo.IsProjectManager {
		multiplier = decimal.NewFromFloat(s.cfg.ManagerMultiplier)
	}

	return payroll.Record{
		UserID:                 usr.ID,
		UserName:               usr.Name,
		UserEmail:              usr.Email,
		ProjectID:              proj.ID,
		ProjectTitle:           proj.Title,
		Month:                  month,
		Year:                   year,
		WorkingDays:            cappedDays,
		ExpectedDays:           expectedDays,
		DailyRate:              dailyRate,
		PayoutBeforeMultiplier: payoutBefore,
		Multiplier:             multiplier,
		Payout:                 payoutBefore.Mul(multiplier),
	}, true
}
