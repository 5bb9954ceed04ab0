package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type AccountingExporter interface {
	Accounting(ctx context.Context, w io.Writer, from, to time.Time) error
}

type DashboardReader interface {
	Summary(ctx context.Context) (*services.DashboardSummary, error)
}

type ReportController struct {
	Export    AccountingExporter
	Dashboard DashboardReader
}

func NewReportController(export AccountingExporter, dashboard DashboardReader) *ReportController {
	return &ReportController{Export: export, Dashboard: dashboard}
}

// GET /api/reports/accounting.csv?from=2024-01-01&to=2024-01-31
func (c *ReportController) AccountingCSV(ctx *gin.Context) {
	from, err := utils.ParseDate(ctx.Query("from"))
	if err != nil {
		badRequest(ctx, fmt.Errorf("from: %w", err))
		return
	}
	to, err := utils.ParseDate(ctx.Query("to"))
	if err != nil {
		badRequest(ctx, fmt.Errorf("to: %w", err))
		return
	}
	var buf bytes.Buffer
	if err := c.Export.Accounting(ctx.Request.Context(), &buf, from, to); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="accounting_%s_%s.csv"`,
		from.Format(utils.DateLayout), to.Format(utils.DateLayout)))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (c *ReportController) GetDashboard(ctx *gin.Context) {
	summary, err := c.Dashboard.Summary(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, summary)
}
