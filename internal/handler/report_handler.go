package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"worklink/internal/service"
)

// ReportHandler streams CSV exports of the marketplace records.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func csvResponse(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
}

// ExportProfiles godoc
// @Summary Export all user profiles as CSV
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV data"
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/profiles.csv [get]
func (h *ReportHandler) ExportProfiles(c echo.Context) error {
	csvResponse(c, "profiles.csv")
	return h.reportService.ExportProfiles(c.Request().Context(), c.Response())
}

// ExportOrders godoc
// @Summary Export all orders as CSV
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV data"
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/orders.csv [get]
func (h *ReportHandler) ExportOrders(c echo.Context) error {
	csvResponse(c, "orders.csv")
	return h.reportService.ExportOrders(c.Request().Context(), c.Response())
}

// ExportBids godoc
// @Summary Export all bids as CSV
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV data"
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/bids.csv [get]
func (h *ReportHandler) ExportBids(c echo.Context) error {
	csvResponse(c, "bids.csv")
	return h.reportService.ExportBids(c.Request().Context(), c.Response())
}
