// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "sapa/internal/delivery/context"
	"sapa/internal/delivery/http/response"
	"sapa/internal/domain/entity"
	"sapa/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// profileView is the outward shape of a business profile. The stored
// password hash never leaves the server.
type profileView struct {
	ID               string    `json:"id"`
	BusinessName     string    `json:"businessName"`
	OwnerName        string    `json:"ownerName"`
	BusinessCategory string    `json:"businessCategory"`
	PhoneNumber      string    `json:"phoneNumber"`
	Email            string    `json:"email"`
	BusinessAddress  string    `json:"businessAddress"`
	Description      string    `json:"description"`
	Products         string    `json:"products"`
	RegisteredAt     time.Time `json:"registeredAt"`
}

func newProfileView(p *entity.BusinessProfile) *profileView {
	return &profileView{
		ID:               p.ID,
		BusinessName:     p.BusinessName,
		OwnerName:        p.OwnerName,
		BusinessCategory: p.BusinessCategory,
		PhoneNumber:      p.PhoneNumber,
		Email:            p.Email,
		BusinessAddress:  p.BusinessAddress,
		Description:      p.Description,
		Products:         p.Products,
		RegisteredAt:     p.RegisteredAt,
	}
}

type registerRequest struct {
	BusinessName     string `json:"businessName" validate:"required"`
	OwnerName        string `json:"ownerName" validate:"required"`
	BusinessCategory string `json:"businessCategory"`
	PhoneNumber      string `json:"phoneNumber" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	BusinessAddress  string `json:"businessAddress"`
	Description      string `json:"description"`
	Products         string `json:"products"`
	Password         string `json:"password" validate:"required"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// updateProfileRequest accepts any subset of the settings form; absent
// fields keep their stored values.
type updateProfileRequest struct {
	BusinessName     *string `json:"businessName"`
	OwnerName        *string `json:"ownerName"`
	BusinessCategory *string `json:"businessCategory"`
	PhoneNumber      *string `json:"phoneNumber"`
	Email            *string `json:"email" validate:"omitempty,email"`
	BusinessAddress  *string `json:"businessAddress"`
	Description      *string `json:"description"`
	Products         *string `json:"products"`
	Password         *string `json:"password"`
}

// submissionSummary is the dashboard tally shown with the profile.
type submissionSummary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

type profileResponse struct {
	Profile     *profileView       `json:"profile"`
	Submissions *submissionSummary `json:"submissions"`
}

// AuthHandler holds dependencies for account and session handlers.
type AuthHandler struct {
	authUC    usecase.AuthUsecase
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase, productUC usecase.ProductUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:    authUC,
		productUC: productUC,
		logger:    logger,
	}
}

// Register handles the business profile registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Data registrasi tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		BusinessCategory: req.BusinessCategory,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		BusinessAddress:  req.BusinessAddress,
		Description:      req.Description,
		Products:         req.Products,
		Password:         req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newProfileView(output.Profile), output.Message)
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Data login tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"accessToken": output.AccessToken,
		"profile":     newProfileView(output.Profile),
	}, output.Message)
}

// Logout handles the logout request.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUC.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout berhasil.")
}

// GetProfile returns the authenticated profile with its submission tally.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	profileID := deliverycontext.GetProfileID(c)
	if profileID == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Profil tidak ditemukan di token")
	}

	ctx := c.Request().Context()

	profile, err := h.authUC.ProfileByID(ctx, profileID)
	if err != nil {
		return errors.WithStack(err)
	}

	counts := h.productUC.CountByStatus(ctx, profileID)
	summary := &submissionSummary{
		Pending:  counts[entity.StatusPending],
		Accepted: counts[entity.StatusAccepted],
		Rejected: counts[entity.StatusRejected],
	}
	summary.Total = summary.Pending + summary.Accepted + summary.Rejected

	return response.Success(c, http.StatusOK, &profileResponse{
		Profile:     newProfileView(profile),
		Submissions: summary,
	}, "")
}

// UpdateProfile applies the account settings form.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	profileID := deliverycontext.GetProfileID(c)
	if profileID == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Profil tidak ditemukan di token")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Data pengaturan tidak valid")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.UpdateProfile(c.Request().Context(), profileID, &usecase.UpdateProfileInput{
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		BusinessCategory: req.BusinessCategory,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		BusinessAddress:  req.BusinessAddress,
		Description:      req.Description,
		Products:         req.Products,
		Password:         req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProfileView(output.Profile), output.Message)
}
