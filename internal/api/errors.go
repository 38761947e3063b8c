package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/store"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "bad request"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "forbidden"}
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "not found"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "conflict"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "invalid or expired token"}
)

func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: msg}
}

func NewValidationError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

// HandleError maps the mutation pipeline's error taxonomy onto HTTP
// statuses. Primary-operation failures always reach the admin with a
// human-readable message; nothing here is fatal to the process.
func HandleError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSONErrorMessage(w, appErr.Code, appErr.Message)
		return
	}

	var validationErr *mutation.ValidationError
	if errors.As(err, &validationErr) {
		JSONErrorMessage(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var notFoundErr *mutation.NotFoundError
	if errors.As(err, &notFoundErr) {
		JSONErrorMessage(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	var authzErr *mutation.AuthorizationError
	if errors.As(err, &authzErr) {
		JSONErrorMessage(w, http.StatusForbidden, authzErr.Error())
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		JSONErrorMessage(w, http.StatusNotFound, "not found")
		return
	}

	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		slog.Error("store error", "op", storeErr.Op, "table", storeErr.Table, "error", storeErr.Err)
		JSONErrorMessage(w, http.StatusBadGateway, "storage backend rejected the operation")
		return
	}

	slog.Error("unhandled error", "error", err)
	JSONErrorMessage(w, http.StatusInternalServerError, "internal server error")
}
