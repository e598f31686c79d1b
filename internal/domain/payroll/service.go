package payroll

import (
	"context"
	"io"
)

// Service computes monthly payouts from approved attendance. Read-only and
// idempotent: two calls over the same attendance state return identical
// results.
type Service interface {
	// ComputeMonth aggregates approved attendance for a calendar month into
	// per-user, per-project payout records.
	ComputeMonth(ctx context.Context, req MonthRequest) (Summary, error)

	// ExportCSV renders a month's summary as CSV. An empty record set yields
	// header-only output, never an error.
	ExportCSV(ctx context.Context, req MonthRequest, w io.Writer) error
}

// Repository is the aggregation contract against the attendance store.
type Repository interface {
	// ApprovedDayCounts returns approved-day counts grouped by
	// (user, project) for dates within [from, to), in deterministic order.
	ApprovedDayCounts(ctx context.Context, month, year int) ([]ApprovedGroup, error)
}
