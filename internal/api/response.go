// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mattailor/internal/logging"
	"github.com/tomtom215/mattailor/internal/models"
	"github.com/tomtom215/mattailor/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeValidation       = validation.CodeValidation
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeFeatureDisabled  = "FEATURE_DISABLED"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
	ErrCodeUnprocessable    = "UNPROCESSABLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// respondJSON writes the envelope with the given status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes a 200 envelope around data.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	respondSuccessWithMeta(w, r, http.StatusOK, data, models.Metadata{})
}

// respondSuccessWithMeta writes an envelope with caller supplied metadata.
// Timestamp and request ID are always filled in here.
func respondSuccessWithMeta(w http.ResponseWriter, r *http.Request, status int, data interface{}, meta models.Metadata) {
	meta.Timestamp = time.Now().UTC()
	meta.RequestID = logging.RequestIDFromContext(r.Context())
	respondJSON(w, status, &models.APIResponse{
		Status:   statusSuccess,
		Data:     data,
		Metadata: meta,
	})
}

// respondError writes an error envelope. err, when non-nil, is logged with
// the request context and never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Err(err).
			Str("code", code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: statusError,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func respondNotFound(w http.ResponseWriter, r *http.Request, message string, details map[string]interface{}) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, message, details, nil)
}

func respondInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, message, nil, err)
}

func respondFeatureDisabled(w http.ResponseWriter, r *http.Request, feature string) {
	respondError(w, r, http.StatusServiceUnavailable, ErrCodeFeatureDisabled,
		feature+" is disabled", map[string]interface{}{"feature": feature}, nil)
}
