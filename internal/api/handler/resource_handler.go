package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizdesk/bizdesk-api/internal/api/metrics"
	"github.com/bizdesk/bizdesk-api/internal/core/domain"
	"github.com/bizdesk/bizdesk-api/internal/core/ports"
)

// ResourceHandler serves the HTTP surface of the CRUD protocol for one
// resource type. The schema only contributes envelope keys and message
// wording; all behavior lives in the service.
type ResourceHandler struct {
	service ports.ResourceService
	schema  domain.Schema
}

func NewResourceHandler(service ports.ResourceService, schema domain.Schema) *ResourceHandler {
	return &ResourceHandler{service: service, schema: schema}
}

// Create handles POST /api/<resource>.
func (h *ResourceHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var payload domain.Document
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	doc, err := h.service.Create(c.Request().Context(), userID, payload)
	if err != nil {
		h.countError(err)
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues(h.schema.Name).Inc()
	return c.JSON(http.StatusCreated, map[string]any{
		"message":     h.schema.Title + " created successfully",
		h.schema.Name: doc,
	})
}

// List handles GET /api/<resource>.
func (h *ResourceHandler) List(c echo.Context) error {
	return h.list(c, nil)
}

// ListBy returns a handler for GET /api/<resource>/:<param>/... that
// narrows the listing by an equality filter on field.
func (h *ResourceHandler) ListBy(param, field string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.list(c, domain.Document{field: c.Param(param)})
	}
}

func (h *ResourceHandler) list(c echo.Context, extra domain.Document) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	docs, err := h.service.List(c.Request().Context(), userID, extra)
	if err != nil {
		h.countError(err)
		return err
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":       h.schema.Title + "s fetched successfully",
		h.schema.Plural: docs,
		"count":         len(docs),
	})
}

// Get handles GET /api/<resource>/:id.
func (h *ResourceHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	doc, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		h.countError(err)
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		h.schema.Name: doc,
	})
}

// Update handles PUT /api/<resource>/:id.
func (h *ResourceHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var payload domain.Document
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	doc, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), payload)
	if err != nil {
		h.countError(err)
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":     h.schema.Title + " updated successfully",
		h.schema.Name: doc,
	})
}

// Delete handles DELETE /api/<resource>/:id.
func (h *ResourceHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		h.countError(err)
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": h.schema.Title + " deleted successfully",
	})
}

func (h *ResourceHandler) countError(err error) {
	reason := "internal"
	if ae, ok := domain.AsAPIError(err); ok {
		reason = ae.Code
	}
	metrics.ResourceErrorsTotal.WithLabelValues(h.schema.Name, reason).Inc()
}
