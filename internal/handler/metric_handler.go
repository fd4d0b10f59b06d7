package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/service"
)

// Column limits mirrored from the model.
const (
	maxMetricName  = 120
	maxMetricUnit  = 40
	maxMetricColor = 20
)

// MetricHandler handles metric catalog endpoints.
type MetricHandler struct {
	metricService service.MetricService
}

// NewMetricHandler creates a new metric handler.
func NewMetricHandler(metricService service.MetricService) *MetricHandler {
	return &MetricHandler{metricService: metricService}
}

// CreateMetricRequest represents a metric creation request.
type CreateMetricRequest struct {
	Name        string   `json:"name" validate:"max=120"`
	Unit        *string  `json:"unit" validate:"omitempty,max=40"`
	TargetValue *float64 `json:"target_value"`
	Color       *string  `json:"color" validate:"omitempty,max=20"`
}

// CreatedMetricResponse is returned after a metric is created.
type CreatedMetricResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// List godoc
// @Summary List metrics
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Metric
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics [get]
func (h *MetricHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	metrics, err := h.metricService.List(c.Request().Context(), userID)
	if err != nil {
		return fail(err)
	}
	if metrics == nil {
		metrics = []model.Metric{}
	}
	return c.JSON(http.StatusOK, metrics)
}

// Create godoc
// @Summary Create a metric
// @Tags metrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMetricRequest true "Metric"
// @Success 201 {object} CreatedMetricResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics [post]
func (h *MetricHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateMetricRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	metric, err := h.metricService.Create(c.Request().Context(), userID, service.NewMetric{
		Name:        req.Name,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		Color:       req.Color,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, CreatedMetricResponse{ID: metric.ID, Name: metric.Name})
}

// Get godoc
// @Summary Get a metric
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Metric ID"
// @Success 200 {object} model.Metric
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id} [get]
func (h *MetricHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", apperrors.ErrMetricNotFound)
	if err != nil {
		return err
	}

	metric, err := h.metricService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, metric)
}

// Update godoc
// @Summary Update a metric
// @Description Only fields present in the body change; null clears unit, target_value and color.
// @Tags metrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Metric ID"
// @Param request body CreateMetricRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id} [put]
func (h *MetricHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", apperrors.ErrMetricNotFound)
	if err != nil {
		return err
	}

	var p service.MetricPatch
	if err := c.Bind(&p); err != nil {
		return fail(apperrors.Validation("invalid request body"))
	}
	if err := checkLength("name", p.Name.Value, maxMetricName); err != nil {
		return fail(err)
	}
	if err := checkLength("unit", p.Unit.Value, maxMetricUnit); err != nil {
		return fail(err)
	}
	if err := checkLength("color", p.Color.Value, maxMetricColor); err != nil {
		return fail(err)
	}

	if _, err := h.metricService.Update(c.Request().Context(), userID, id, p); err != nil {
		return fail(err)
	}
	return ok(c, "updated")
}

// Delete godoc
// @Summary Delete a metric
// @Description Also removes the metric's goals and entries.
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Metric ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id} [delete]
func (h *MetricHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", apperrors.ErrMetricNotFound)
	if err != nil {
		return err
	}

	if err := h.metricService.Delete(c.Request().Context(), userID, id); err != nil {
		return fail(err)
	}
	return ok(c, "deleted")
}

func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apperrors.Validation("%s must be at most %d characters", field, max)
	}
	return nil
}
