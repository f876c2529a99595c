package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ResourceService is the business layer behind one resource family
type ResourceService[T any, In any] interface {
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in *In) (*T, error)
	Update(ctx context.Context, id string, in *In) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ResourceHandler serves list, create, get, update and delete for one family
type ResourceHandler[T any, In any] struct {
	service ResourceService[T, In]
}

// NewResourceHandler creates a handler over svc
func NewResourceHandler[T any, In any](svc ResourceService[T, In]) *ResourceHandler[T, In] {
	return &ResourceHandler[T, In]{service: svc}
}

// Register mounts the five routes on g
func (h *ResourceHandler[T, In]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /
func (h *ResourceHandler[T, In]) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return MapServiceError(err)
	}
	if items == nil {
		items = []*T{}
	}
	return WriteJSON(c, http.StatusOK, items)
}

// Create handles POST /
func (h *ResourceHandler[T, In]) Create(c echo.Context) error {
	in := new(In)
	if err := DecodeJSON(c, in); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return MapServiceError(err)
	}
	return WriteJSON(c, http.StatusCreated, created)
}

// Get handles GET /:id
func (h *ResourceHandler[T, In]) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return MapServiceError(err)
	}
	return WriteJSON(c, http.StatusOK, item)
}

// Update handles PUT /:id
func (h *ResourceHandler[T, In]) Update(c echo.Context) error {
	in := new(In)
	if err := DecodeJSON(c, in); err != nil {
		return err
	}

	if _, err := h.service.Update(c.Request().Context(), c.Param("id"), in); err != nil {
		return MapServiceError(err)
	}
	return WriteNoContent(c)
}

// Delete handles DELETE /:id
func (h *ResourceHandler[T, In]) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return MapServiceError(err)
	}
	return WriteNoContent(c)
}
