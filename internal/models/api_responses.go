// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "UNSATISFIABLE_REQUEST",
//	    "message": "no valid outfit could be composed",
//	    "details": {"violations": ["required_category_missing:shoes"]}
//	  },
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	// Timestamp is the server time when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMS is the request processing time in milliseconds.
	QueryTimeMS int64 `json:"query_time_ms,omitempty"`
}

// APIError carries structured error information in error responses.
type APIError struct {
	// Code is a stable machine-readable error code ("VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details holds optional structured context for the error.
	Details map[string]interface{} `json:"details,omitempty"`
}
