// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

// Package validation provides struct validation using go-playground/validator v10.
//
// It holds the request structs of the HTTP API and a thread-safe singleton
// validator whose error messages name query parameters (the `query` struct
// tag) rather than Go fields.
//
// # Usage
//
//	req := validation.OverlapRequest{FID: fid, Target: target}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//	    return
//	}
//
// Errors use the VALIDATION_ERROR code. A single failure puts field, tag and
// value in the details; several failures are listed under "fields".
package validation
