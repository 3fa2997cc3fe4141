package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "sapa/internal/delivery/context"
	"sapa/internal/delivery/http/response"
	"sapa/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type submitProductRequest struct {
	ProductName        string `json:"productName" validate:"required"`
	Category           string `json:"category" validate:"required"`
	PriceRange         string `json:"priceRange" validate:"required"`
	Description        string `json:"description" validate:"required"`
	UniqueSellingPoint string `json:"uniqueSellingPoint"`
	ProductionCapacity string `json:"productionCapacity"`
	Certifications     string `json:"certifications"`
	FulfillmentNotes   string `json:"fulfillmentNotes"`
	MediaLink          string `json:"mediaLink"`
	ImageBase64        string `json:"imageBase64"`
	ImageMimeType      string `json:"imageMimeType"`
}

// ProductHandler holds dependencies for product submission handlers.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	authUC    usecase.AuthUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(productUC usecase.ProductUsecase, authUC usecase.AuthUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUC: productUC,
		authUC:    authUC,
		logger:    logger,
	}
}

// List returns every submission, most recent first.
func (h *ProductHandler) List(c echo.Context) error {
	submissions := h.productUC.Submissions(c.Request().Context())

	return response.Success(c, http.StatusOK, submissions, "")
}

// ListMine returns the authenticated profile's submissions.
func (h *ProductHandler) ListMine(c echo.Context) error {
	profileID := deliverycontext.GetProfileID(c)
	if profileID == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Profil tidak ditemukan di token")
	}

	submissions := h.productUC.SubmissionsByOwner(c.Request().Context(), profileID)

	return response.Success(c, http.StatusOK, submissions, "")
}

// Submit records a product submission for the authenticated profile.
func (h *ProductHandler) Submit(c echo.Context) error {
	profileID := deliverycontext.GetProfileID(c)
	if profileID == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Profil tidak ditemukan di token")
	}

	var req submitProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Data pengajuan tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	ctx := c.Request().Context()

	owner, err := h.authUC.ProfileByID(ctx, profileID)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.productUC.Submit(ctx, owner, &usecase.ProductDraft{
		ProductName:        req.ProductName,
		Category:           req.Category,
		PriceRange:         req.PriceRange,
		Description:        req.Description,
		UniqueSellingPoint: req.UniqueSellingPoint,
		ProductionCapacity: req.ProductionCapacity,
		Certifications:     req.Certifications,
		FulfillmentNotes:   req.FulfillmentNotes,
		MediaLink:          req.MediaLink,
		ImageBase64:        req.ImageBase64,
		ImageMimeType:      req.ImageMimeType,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Product, output.Message)
}

// ClearAll drops every submission.
func (h *ProductHandler) ClearAll(c echo.Context) error {
	if err := h.productUC.ClearAll(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Semua pengajuan berhasil dihapus.")
}
