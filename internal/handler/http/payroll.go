package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/workhive-crm/crm-backend-go/internal/domain/payroll"
	"github.com/workhive-crm/crm-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// GetMonth implements PayrollHandler.
func (h *payrollHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)

	result, err := h.payrollService.ComputeMonth(r.Context(), payroll.MonthRequest{Month: month, Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements PayrollHandler. Errors after the first byte of the
// body cannot change the status code, so the computation runs before any
// headers are written.
func (h *payrollHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)
	req := payroll.MonthRequest{Month: month, Year: year}

	var buf bytes.Buffer
	if err := h.payrollService.ExportCSV(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=attendance-payroll-%d-%02d.csv", year, month))
	_, _ = w.Write(buf.Bytes())
}
