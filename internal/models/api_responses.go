// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"materials": [...], "scores": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 4,
//	    "cached": false
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "Material not found",
//	    "details": {"material_id": "unobtanium"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
// QueryTimeMS is 0 when the result came from the recommendation cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body.
//
// Common error codes:
//   - VALIDATION_ERROR: request fields out of range
//   - INVALID_REQUEST: body could not be decoded
//   - NOT_FOUND: unknown material or planning session
//   - FEATURE_DISABLED: the requested capability is switched off
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: orchestration failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Materials int       `json:"materials"`
	Suppliers int       `json:"suppliers"`
	Uptime    float64   `json:"uptime_seconds"`
	Timestamp time.Time `json:"timestamp"`
}
