package payroll

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive-crm/crm-backend-go/internal/domain/payroll"
	"github.com/workhive-crm/crm-backend-go/internal/domain/project"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
)

type fakePayrollRepo struct {
	groups []payroll.ApprovedGroup
	err    error
}

func (f *fakePayrollRepo) ApprovedDayCounts(ctx context.Context, month, year int) ([]payroll.ApprovedGroup, error) {
	return f.groups, f.err
}

type fakeProjectRepo struct {
	projects map[string]project.Project
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (project.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeRoleResolver struct {
	managers map[string]bool
}

func (f *fakeRoleResolver) GetRoleInfo(ctx context.Context, userID string) (user.RoleInfo, error) {
	return user.RoleInfo{IsProjectManager: f.managers[userID]}, nil
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func newTestService(
	groups []payroll.ApprovedGroup,
	projects map[string]project.Project,
	users map[string]user.User,
	managers map[string]bool,
) payroll.Service {
	return NewPayrollService(
		&fakePayrollRepo{groups: groups},
		&fakeProjectRepo{projects: projects},
		&fakeUserRepo{users: users},
		&fakeRoleResolver{managers: managers},
		payroll.DefaultConfig(),
		nil,
	)
}

func TestComputeMonth_DefaultRates(t *testing.T) {
	// 66000 * 0.3 / 22 = 900 per day.
	svc := newTestService(
		[]payroll.ApprovedGroup{{UserID: "u1", ProjectID: "p1", Days: 20}},
		map[string]project.Project{"p1": {ID: "p1", Title: "Website", Budget: decPtr("66000")}},
		map[string]user.User{"u1": {ID: "u1", Name: "Ana", Email: "ana@example.com"}},
		nil,
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	require.Len(t, summary.Records, 1)
	rec := summary.Records[0]
	assert.True(t, rec.DailyRate.Equal(dec("900")), "daily rate was %s", rec.DailyRate)
	assert.Equal(t, 20, rec.WorkingDays)
	assert.Equal(t, 22, rec.ExpectedDays)
	assert.True(t, rec.Payout.Equal(dec("18000")), "payout was %s", rec.Payout)
	assert.True(t, summary.TotalPayout.Equal(dec("18000")))
}

func TestComputeMonth_CapsAtExpectedDays(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{{UserID: "u1", ProjectID: "p1", Days: 25}},
		map[string]project.Project{"p1": {ID: "p1", Budget: decPtr("66000")}},
		map[string]user.User{"u1": {ID: "u1"}},
		nil,
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	rec := summary.Records[0]
	// Both the payout and the reported working days cap at the expected 22.
	assert.Equal(t, 22, rec.WorkingDays)
	assert.LessOrEqual(t, rec.WorkingDays, rec.ExpectedDays)
	assert.True(t, rec.Payout.Equal(dec("19800")), "payout was %s", rec.Payout)
}

func TestComputeMonth_ManagerMultiplier(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{{UserID: "u1", ProjectID: "p1", Days: 10}},
		map[string]project.Project{"p1": {ID: "p1", Budget: decPtr("66000")}},
		map[string]user.User{"u1": {ID: "u1"}},
		map[string]bool{"u1": true},
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	rec := summary.Records[0]
	assert.True(t, rec.Multiplier.Equal(dec("1.2")))
	assert.True(t, rec.PayoutBeforeMultiplier.Equal(dec("9000")))
	assert.True(t, rec.Payout.Equal(dec("10800")), "payout was %s", rec.Payout)
}

func TestComputeMonth_ProjectOverrides(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{{UserID: "u1", ProjectID: "p1", Days: 10}},
		map[string]project.Project{"p1": {
			ID:                  "p1",
			Budget:              decPtr("40000"),
			TeamSharePercent:    floatPtr(0.5),
			ExpectedWorkingDays: intPtr(20),
		}},
		map[string]user.User{"u1": {ID: "u1"}},
		nil,
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	rec := summary.Records[0]
	// 40000 * 0.5 / 20 = 1000 per day.
	assert.True(t, rec.DailyRate.Equal(dec("1000")), "daily rate was %s", rec.DailyRate)
	assert.Equal(t, 20, rec.ExpectedDays)
	assert.True(t, rec.Payout.Equal(dec("10000")))
}

func TestComputeMonth_AllocatedBudgetWins(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{{UserID: "u1", ProjectID: "p1", Days: 22}},
		map[string]project.Project{"p1": {
			ID:              "p1",
			AllocatedBudget: decPtr("22000"),
			Budget:          decPtr("66000"),
		}},
		map[string]user.User{"u1": {ID: "u1"}},
		nil,
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	// 22000 * 0.3 / 22 = 300 per day, full month.
	assert.True(t, summary.Records[0].Payout.Equal(dec("6600")), "payout was %s", summary.Records[0].Payout)
}

func TestComputeMonth_SkipsMissingProjectAndUser(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{
			{UserID: "u1", ProjectID: "gone", Days: 10},
			{UserID: "ghost", ProjectID: "p1", Days: 10},
			{UserID: "u1", ProjectID: "p1", Days: 10},
		},
		map[string]project.Project{"p1": {ID: "p1", Budget: decPtr("66000")}},
		map[string]user.User{"u1": {ID: "u1"}},
		nil,
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	require.Len(t, summary.Records, 1)
	assert.True(t, summary.TotalPayout.Equal(dec("9000")))
}

func TestComputeMonth_SkipsProjectWithoutBudget(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{
			{UserID: "u1", ProjectID: "unfunded", Days: 10},
			{UserID: "u1", ProjectID: "p1", Days: 10},
		},
		map[string]project.Project{
			"unfunded": {ID: "unfunded", Title: "Internal"},
			"p1":       {ID: "p1", Budget: decPtr("66000")},
		},
		map[string]user.User{"u1": {ID: "u1"}},
		nil,
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	require.Len(t, summary.Records, 1)
	assert.Equal(t, "p1", summary.Records[0].ProjectID)
	assert.True(t, summary.TotalPayout.Equal(dec("9000")))
}

func TestComputeMonth_SumsAcrossProjects(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{
			{UserID: "u1", ProjectID: "p1", Days: 22},
			{UserID: "u1", ProjectID: "p2", Days: 11},
		},
		map[string]project.Project{
			"p1": {ID: "p1", Budget: decPtr("66000")},
			"p2": {ID: "p2", Budget: decPtr("44000")},
		},
		map[string]user.User{"u1": {ID: "u1"}},
		nil,
	)

	summary, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026})

	require.NoError(t, err)
	require.Len(t, summary.Records, 2)
	// 19800 from p1 plus 44000*0.3/22*11 = 6600 from p2.
	assert.True(t, summary.TotalPayout.Equal(dec("26400")), "total was %s", summary.TotalPayout)
}

func TestComputeMonth_InvalidMonth(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.ComputeMonth(context.Background(), payroll.MonthRequest{Month: 13, Year: 2026})

	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	svc := newTestService(
		[]payroll.ApprovedGroup{{UserID: "u1", ProjectID: "p1", Days: 20}},
		map[string]project.Project{"p1": {ID: "p1", Title: "Website", Budget: decPtr("66000")}},
		map[string]user.User{"u1": {ID: "u1", Name: "Ana", Email: "ana@example.com"}},
		nil,
	)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), payroll.MonthRequest{Month: 8, Year: 2026}, &buf)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "User Name,Email,Project,Month,Year,Working Days,Expected Days,Daily Rate,Multiplier,Payout", lines[0])
	assert.Equal(t, "Ana,ana@example.com,Website,8,2026,20,22,900.00,1.00,18000.00", lines[1])
}

func TestExportCSV_EmptyMonth(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), payroll.MonthRequest{Month: 1, Year: 2026}, &buf)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "User Name,Email,Project,Month,Year,Working Days,Expected Days,Daily Rate,Multiplier,Payout", lines[0])
}
