// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/collabscout/internal/auth"
	"github.com/tomtom215/collabscout/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// parseInt64 parses an optional integer parameter. An empty value yields 0.
func parseInt64(name, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

// parseInt parses an optional int parameter. An empty value yields 0.
func parseInt(name, value string) (int, error) {
	n, err := parseInt64(name, value)
	if err != nil {
		return 0, err
	}
	if n != int64(int(n)) {
		return 0, fmt.Errorf("%s is out of range", name)
	}
	return int(n), nil
}

// requesterFID resolves the requesting creator: the explicit fid query
// parameter wins, then the session fid. Zero means neither was supplied.
func requesterFID(r *http.Request) (int64, error) {
	if raw := r.URL.Query().Get("fid"); raw != "" {
		return parseInt64("fid", raw)
	}
	if fid, ok := auth.FIDFromContext(r.Context()); ok {
		return fid, nil
	}
	return 0, nil
}

// validate writes a 400 response and returns false when req is invalid.
func validate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	verr := validation.ValidateStruct(req)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	NewResponseWriter(w, r).ValidationError(apiErr.Code, apiErr.Message, apiErr.Details)
	return false
}
