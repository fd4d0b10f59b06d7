package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"metrictracker/internal/clock"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/service"
)

// DashboardHandler serves the dashboard and reports.
type DashboardHandler struct {
	aggregationService service.AggregationService
	clock              clock.Clock
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(aggregationService service.AggregationService, clk clock.Clock) *DashboardHandler {
	return &DashboardHandler{
		aggregationService: aggregationService,
		clock:              clk,
	}
}

// Dashboard godoc
// @Summary Today's totals per metric
// @Description progress is total_today/target, null when the target is unset or zero.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dash, err := h.aggregationService.Dashboard(c.Request().Context(), userID, h.clock.Today())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Report godoc
// @Summary Value series of one metric
// @Description Oldest date first. Notes are not included.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param metric_id query int true "Metric ID"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {object} service.Report
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reports [get]
func (h *DashboardHandler) Report(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var metricID uint
	if raw := c.QueryParam("metric_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fail(apperrors.Validation("metric_id must be a positive integer"))
		}
		// Only an absent metric_id is missing; zero names no metric.
		if id == 0 {
			return fail(apperrors.ErrMetricNotFound)
		}
		metricID = uint(id)
	}

	report, err := h.aggregationService.Report(c.Request().Context(), userID, metricID, dateRange(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, report)
}
