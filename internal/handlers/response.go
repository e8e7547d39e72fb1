// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"iconforge/internal/icons"
)

// StatusError is an error that carries the HTTP status it should be
// reported with. Fields are merged into the JSON error body.
type StatusError struct {
	Status  int
	Message string
	Fields  map[string]any
}

func (e *StatusError) Error() string { return e.Message }

// badRequest builds a 400 StatusError.
func badRequest(msg string) *StatusError {
	return &StatusError{Status: http.StatusBadRequest, Message: msg}
}

// notFound builds a 404 StatusError.
func notFound(msg string) *StatusError {
	return &StatusError{Status: http.StatusNotFound, Message: msg}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// statusFor maps an error to the HTTP status it is reported with.
func statusFor(err error) int {
	var se *StatusError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &se):
		return se.Status
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, icons.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single error envelope for the API. The body is
// {"error": msg} plus any StatusError fields; in development 5xx bodies
// also carry the stack of the handler that failed.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := map[string]any{"error": err.Error()}

	var se *StatusError
	if errors.As(err, &se) {
		for k, v := range se.Fields {
			body[k] = v
		}
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
			"request_id", chimw.GetReqID(r.Context()),
		)
		if a.isDev {
			body["stack"] = string(debug.Stack())
		}
	}

	writeJSON(w, status, body)
}
