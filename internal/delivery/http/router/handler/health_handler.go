package handler

import (
	"net/http"

	"sapa/internal/delivery/http/response"
	"sapa/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and whether both stores finished
// bootstrapping.
type HealthHandler struct {
	authUC    usecase.AuthUsecase
	productUC usecase.ProductUsecase
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(authUC usecase.AuthUsecase, productUC usecase.ProductUsecase) *HealthHandler {
	return &HealthHandler{
		authUC:    authUC,
		productUC: productUC,
	}
}

// Check is a simple handler to check if the service is up.
func (h *HealthHandler) Check(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"status":        "ok",
		"accountsReady": h.authUC.Ready(),
		"productsReady": h.productUC.Ready(),
	}, "Service is healthy")
}
