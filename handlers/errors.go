// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/askup/middleware"
	"github.com/danielhkuo/askup/store"
)

// writeStoreError maps store sentinel errors onto HTTP responses. Anything
// unrecognized is logged and reported as an internal error without leaking
// the underlying message.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrPermission):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrPartialFailure):
		slog.Error("partial failure", "error", err)
		middleware.ErrorResponseCode(w, http.StatusInternalServerError, "partial_failure", err.Error())
	default:
		slog.Error("store operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
