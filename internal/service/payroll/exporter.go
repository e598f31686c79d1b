package payroll

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/workhive-crm/crm-backend-go/internal/domain/payroll"
)

var csvHeader = []string{
	"User Name",
	"Email",
	"Project",
	"Month",
	"Year",
	"Working Days",
	"Expected Days",
	"Daily Rate",
	"Multiplier",
	"Payout",
}

// ExportCSV implements payroll.Service. An empty month still writes the
// header row so spreadsheet imports stay stable.
func (s *PayrollServiceImpl) ExportCSV(ctx context.Context, req payroll.MonthRequest, w io.Writer) error {
	summary, err := s.ComputeMonth(ctx, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range summary.Records {
		row := []string{
			rec.UserName,
			rec.UserEmail,
			rec.ProjectTitle,
			strconv.Itoa(rec.Month),
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.WorkingDays),
			strconv.Itoa(rec.ExpectedDays),
			rec.DailyRate.StringFixed(2),
			rec.Multiplier.StringFixed(2),
			rec.Payout.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}

	return nil
}
