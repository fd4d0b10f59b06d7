package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/service"
)

const maxEntryNote = 500

// EntryHandler handles entry ledger endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// CreateEntryRequest represents an entry creation request. Date defaults to today.
type CreateEntryRequest struct {
	MetricID uint     `json:"metric_id"`
	Value    *float64 `json:"value"`
	Date     string   `json:"date" example:"2026-10-19"`
	Note     *string  `json:"note" validate:"omitempty,max=500"`
}

// EntryResponse is an entry as listed under its metric.
type EntryResponse struct {
	ID    uint    `json:"id"`
	Value float64 `json:"value"`
	Date  string  `json:"date"`
	Note  *string `json:"note"`
}

// CreatedEntryResponse is returned after an entry is logged.
type CreatedEntryResponse struct {
	ID    uint    `json:"id"`
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// ListForMetric godoc
// @Summary List a metric's entries
// @Description Newest date first. Bounds are inclusive.
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Metric ID"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {array} EntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id}/entries [get]
func (h *EntryHandler) ListForMetric(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	metricID, err := pathID(c, "id", apperrors.ErrMetricNotFound)
	if err != nil {
		return err
	}

	entries, err := h.entryService.ListForMetric(c.Request().Context(), userID, metricID, dateRange(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toEntryResponses(entries))
}

// Create godoc
// @Summary Log an entry
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEntryRequest true "Entry"
// @Success 201 {object} CreatedEntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateEntryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	entry, err := h.entryService.Create(c.Request().Context(), userID, service.NewEntry{
		MetricID: req.MetricID,
		Value:    req.Value,
		Date:     req.Date,
		Note:     req.Note,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, CreatedEntryResponse{ID: entry.ID, Value: entry.Value, Date: entry.Date})
}

// Update godoc
// @Summary Update an entry
// @Description Only fields present in the body change; a null note clears it.
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param request body CreateEntryRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id} [put]
func (h *EntryHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", apperrors.ErrEntryNotFound)
	if err != nil {
		return err
	}

	var p service.EntryPatch
	if err := c.Bind(&p); err != nil {
		return fail(apperrors.Validation("invalid request body"))
	}
	if err := checkLength("note", p.Note.Value, maxEntryNote); err != nil {
		return fail(err)
	}

	if _, err := h.entryService.Update(c.Request().Context(), userID, id, p); err != nil {
		return fail(err)
	}
	return ok(c, "updated")
}

// Delete godoc
// @Summary Delete an entry
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", apperrors.ErrEntryNotFound)
	if err != nil {
		return err
	}

	if err := h.entryService.Delete(c.Request().Context(), userID, id); err != nil {
		return fail(err)
	}
	return ok(c, "deleted")
}

func dateRange(c echo.Context) service.DateRange {
	return service.DateRange{
		From: c.QueryParam("date_from"),
		To:   c.QueryParam("date_to"),
	}
}

func toEntryResponses(entries []model.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryResponse{ID: e.ID, Value: e.Value, Date: e.Date, Note: e.Note})
	}
	return out
}
