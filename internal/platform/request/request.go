// Copyright (c) 2026 Biblion. All rights reserved.

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tkempf/biblion/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Returns validate.ErrInvalidJSON if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and parses it as an integer.
// A missing or malformed value yields zero.
func IntParam(request *http.Request, name string) int {
	n, _ := strconv.Atoi(chi.URLParam(request, name))
	return n
}

// QueryInt parses an integer query-string parameter with a fallback default.
func QueryInt(request *http.Request, name string, defaultVal int) int {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return n
}

// QueryBool parses a boolean query-string parameter ("true"/"1" are true).
func QueryBool(request *http.Request, name string) bool {
	raw := request.URL.Query().Get(name)
	return raw == "true" || raw == "1"
}
