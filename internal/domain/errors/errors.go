package errors

import (
	"net/http"

	"sapa/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. Messages are user-facing and in Indonesian,
// the language of the app.
var (
	// Registration-related errors
	ErrCredentialsRequired = NewBaseError(
		http.StatusBadRequest,
		"CREDENTIALS_REQUIRED",
		"Email dan kata sandi wajib diisi.",
		"",
	)

	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"Email sudah terdaftar. Silakan gunakan email lain atau login.",
		"",
	)

	ErrDuplicatePhone = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_PHONE",
		"Nomor telepon sudah terdaftar. Silakan gunakan nomor lain.",
		"",
	)

	// Login-related errors
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"Akun tidak ditemukan. Periksa kembali email atau nomor telepon.",
		"",
	)

	ErrWrongPassword = NewBaseError(
		http.StatusUnauthorized,
		"WRONG_PASSWORD",
		"Kata sandi tidak sesuai.",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Sesi tidak valid atau sudah berakhir.",
		"",
	)

	// Profile update errors
	ErrNoActiveSession = NewBaseError(
		http.StatusUnauthorized,
		"NO_ACTIVE_SESSION",
		"Tidak ada sesi pengguna aktif.",
		"",
	)

	ErrEmailRequired = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_REQUIRED",
		"Email tidak boleh kosong.",
		"",
	)

	ErrEmailInUse = NewBaseError(
		http.StatusConflict,
		"EMAIL_IN_USE",
		"Email sudah digunakan oleh akun lain.",
		"",
	)

	ErrPhoneRequired = NewBaseError(
		http.StatusBadRequest,
		"PHONE_REQUIRED",
		"Nomor telepon tidak boleh kosong.",
		"",
	)

	ErrPhoneInUse = NewBaseError(
		http.StatusConflict,
		"PHONE_IN_USE",
		"Nomor telepon sudah digunakan oleh akun lain.",
		"",
	)

	ErrWeakPassword = NewBaseError(
		http.StatusBadRequest,
		"WEAK_PASSWORD",
		"Kata sandi minimal 6 karakter.",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Terjadi kesalahan saat memproses kata sandi.",
		"",
	)

	// Catalog-related errors
	ErrCatalogNotFound = NewBaseError(
		http.StatusNotFound,
		"CATALOG_NOT_FOUND",
		"Produk katalog tidak ditemukan.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Data yang dikirim tidak valid.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Terjadi kesalahan pada sistem.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Data tidak ditemukan.",
		"",
	)
)

// PersistenceError represents a storage read/write failure, implementing
// the AppError interface. Store operations report it to the caller
// instead of crashing; the caller decides how to prompt a retry.
type PersistenceError struct {
	err     error
	details string
}

// NewPersistenceError creates a storage-related error
func NewPersistenceError(err error, details string) AppError {
	return &PersistenceError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return errors.Wrap(e.err, "persistence failed").Error()
}

// Unwrap exposes the underlying storage error to errors.Is checks.
func (e *PersistenceError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *PersistenceError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *PersistenceError) ErrorCode() string {
	return "PERSISTENCE_FAILED"
}

// Message returns the user-friendly error message
func (e *PersistenceError) Message() string {
	return "Gagal menyimpan data. Silakan coba lagi."
}

// Details returns detailed error information
func (e *PersistenceError) Details() string {
	return e.details
}
