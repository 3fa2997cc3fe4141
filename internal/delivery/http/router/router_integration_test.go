package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sapa/config"
	httpmiddleware "sapa/internal/delivery/http/middleware"
	"sapa/internal/delivery/http/router/handler"
	"sapa/internal/delivery/http/validator"
	deliverymiddleware "sapa/internal/delivery/middleware"
	infraauth "sapa/internal/infra/auth"
	"sapa/internal/infra/catalog"
	"sapa/internal/infra/kv"
	"sapa/internal/infra/qrcode"
	"sapa/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

// newTestServer wires the full HTTP surface over an in-memory store.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{
		QRCode: &config.QRCodeConfig{
			Size:                 128,
			ErrorCorrectionLevel: "M",
			BaseURL:              "https://sapa-umkm.id/catalog",
		},
	}
	cfg.SecretKey.Access = "integration_test_secret_key_long_enough"
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Hour}

	bucket := kv.OpenMemoryBucket()
	t.Cleanup(func() { _ = bucket.Close() })
	store := kv.NewBlobStore(bucket)

	tokenService, err := infraauth.NewJWTService(cfg)
	require.NoError(t, err)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		KVStore:      store,
		Hasher:       infraauth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Logger:       logger,
	})
	productUC := impl.NewProductService(impl.ProductServiceParams{
		KVStore: store,
		Logger:  logger,
	})
	catalogUC := impl.NewCatalogService(impl.CatalogServiceParams{
		CatalogRepo: catalog.NewStaticRepository(),
		QRService:   qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel),
		Config:      cfg,
		Logger:      logger,
	})

	ctx := context.Background()
	require.NoError(t, authUC.Bootstrap(ctx))
	require.NoError(t, productUC.Bootstrap(ctx))

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Use(deliverymiddleware.NewRequestIDMiddleware(logger).Process)

	r := NewRouter(RouterParams{
		HealthHandler:  handler.NewHealthHandler(authUC, productUC),
		AuthHandler:    handler.NewAuthHandler(authUC, productUC, logger),
		ProductHandler: handler.NewProductHandler(productUC, authUC, logger),
		CatalogHandler: handler.NewCatalogHandler(catalogUC, logger),
		AuthMiddleware: httpmiddleware.NewAuthMiddleware(tokenService),
	})
	r.RegisterRoutes(e)

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

const registerBody = `{
	"businessName": "Warung Kopi Sederhana",
	"ownerName": "Budi Santoso",
	"businessCategory": "Kuliner",
	"phoneNumber": "0812-3456-7890",
	"email": "budi@warung.id",
	"businessAddress": "Jl. Merdeka 1, Bandung",
	"description": "Kopi rumahan",
	"products": "Kopi bubuk",
	"password": "rahasia123"
}`

func loginToken(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/auth/login", "", `{"identifier":"budi@warung.id","password":"rahasia123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	env := decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)

	return data.AccessToken
}

func TestRouter_HealthCheck(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accountsReady":true`)
	assert.Contains(t, rec.Body.String(), `"productsReady":true`)
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Registrasi berhasil. Silakan login untuk melanjutkan.", env.Message)
	// The password hash must never appear in a response.
	assert.NotContains(t, rec.Body.String(), "password")

	// Duplicate email surfaces as a conflict.
	rec = doJSON(e, http.MethodPost, "/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	env = decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_EMAIL", env.Error.Code)

	token := loginToken(t, e)
	assert.NotEmpty(t, token)

	// Wrong password surfaces through the error handler.
	rec = doJSON(e, http.MethodPost, "/auth/login", "", `{"identifier":"budi@warung.id","password":"salah-besar"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env = decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "WRONG_PASSWORD", env.Error.Code)
	assert.Equal(t, "Kata sandi tidak sesuai.", env.Message)
}

func TestRouter_RegisterValidation(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", "", `{"businessName":"Tanpa Email","ownerName":"X","phoneNumber":"0812","password":"rahasia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestRouter_ProfileRequiresAuth(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/profile", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ProfileAndSubmissionFlow(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	token := loginToken(t, e)

	// Fresh profile starts with an empty dashboard tally.
	rec = doJSON(e, http.MethodGet, "/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)

	// Submit one product.
	rec = doJSON(e, http.MethodPost, "/products", token, `{
		"productName": "Kopi Rempah",
		"category": "Kuliner",
		"priceRange": "Rp58.000 / 200gr",
		"description": "Blend arabika dengan rempah"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Pengajuan produk berhasil disimpan.", env.Message)

	// Missing required fields are rejected at the edge.
	rec = doJSON(e, http.MethodPost, "/products", token, `{"productName":"Tanpa Kategori"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The tally and the listings reflect the submission.
	rec = doJSON(e, http.MethodGet, "/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":1`)

	rec = doJSON(e, http.MethodGet, "/products/mine", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kopi Rempah")

	rec = doJSON(e, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Warung Kopi Sederhana")

	// Clear everything.
	rec = doJSON(e, http.MethodDelete, "/products", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/products/mine", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Kopi Rempah")
}

func TestRouter_UpdateProfile(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	token := loginToken(t, e)

	rec = doJSON(e, http.MethodPut, "/profile", token, `{
		"businessName": "Warung Kopi Modern",
		"ownerName": "Budi Santoso",
		"businessCategory": "Kuliner",
		"phoneNumber": "0812-3456-7890",
		"email": "budi@warung.id",
		"businessAddress": "Jl. Merdeka 1, Bandung",
		"description": "Kopi rumahan",
		"products": "Kopi bubuk"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Pengaturan akun berhasil diperbarui.", env.Message)
	assert.Contains(t, rec.Body.String(), "Warung Kopi Modern")

	// Fields left out of the request keep their stored values.
	rec = doJSON(e, http.MethodPut, "/profile", token, `{"description": "Kopi rumahan turun-temurun"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Warung Kopi Modern")
	assert.Contains(t, rec.Body.String(), "Kopi rumahan turun-temurun")
	assert.Contains(t, rec.Body.String(), "budi@warung.id")

	// A short new password is rejected.
	rec = doJSON(e, http.MethodPut, "/profile", token, `{
		"businessName": "Warung Kopi Modern",
		"ownerName": "Budi Santoso",
		"phoneNumber": "0812-3456-7890",
		"email": "budi@warung.id",
		"password": "12345"
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env = decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "WEAK_PASSWORD", env.Error.Code)
}

func TestRouter_Logout(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	_ = loginToken(t, e)

	rec = doJSON(e, http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Logout berhasil.", env.Message)
}

func TestRouter_Catalog(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/catalog", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kopi-rempah-nusantara")
	assert.Contains(t, rec.Body.String(), "Fesyen & Kriya")

	rec = doJSON(e, http.MethodGet, "/catalog/tenun-ikat-larantuka", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tenun Ikat Larantuka")

	rec = doJSON(e, http.MethodGet, "/catalog/tidak-ada", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CATALOG_NOT_FOUND", env.Error.Code)

	rec = doJSON(e, http.MethodGet, "/catalog/tenun-ikat-larantuka/qr", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, len(rec.Body.Bytes()) > 0)
}
