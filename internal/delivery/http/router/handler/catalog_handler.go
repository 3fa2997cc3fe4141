package handler

import (
	"log/slog"
	"net/http"

	"sapa/internal/delivery/http/response"
	"sapa/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for the curated catalog handlers.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalogUC usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// List returns the catalog with its category index.
func (h *CatalogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	return response.Success(c, http.StatusOK, map[string]any{
		"products":   h.catalogUC.List(ctx),
		"categories": h.catalogUC.Categories(ctx),
	}, "")
}

// Detail returns one catalog entry by slug.
func (h *CatalogHandler) Detail(c echo.Context) error {
	product, err := h.catalogUC.BySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// ShareQR streams the share link of a catalog entry as a PNG QR code.
func (h *CatalogHandler) ShareQR(c echo.Context) error {
	png, err := h.catalogUC.ShareQR(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
