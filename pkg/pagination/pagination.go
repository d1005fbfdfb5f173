// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
//
// Pages are zero-based and the page size travels in the "offset" parameter,
// so `?page=2&offset=10` skips the first 20 items and returns the next 10.
package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

const (
	// DefaultOffset is the number of items per page if not specified.
	DefaultOffset = 20
	// MaxOffset is the upper bound for items per page to prevent system abuse.
	MaxOffset = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
	// MaxPage is the largest page whose skip fits in an int at [MaxOffset].
	MaxPage = math.MaxInt / MaxOffset
)

// Params holds the parsed page and page size from a request's query string.
type Params struct {
	Page   int
	Offset int
}

// Skip returns the SQL OFFSET value derived from [Page] and [Offset].
// It saturates at math.MaxInt instead of overflowing.
func (p Params) Skip() int {
	if p.Page <= 0 || p.Offset <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Offset {
		return math.MaxInt
	}
	return p.Page * p.Offset
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Offset     int `json:"offset"`
	TotalItems int `json:"total_items"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(page, offset, total int) Meta {
	return Meta{
		Page:       page,
		Offset:     offset,
		TotalItems: total,
	}
}

// FromRequest parses "page" and "offset" query parameters from an HTTP request.
//
// # Errors
//
// Unlike silent clamping, malformed or out-of-range values are reported so the
// caller can answer with a validation error. Missing values take the defaults.
func FromRequest(r *http.Request) (Params, error) {
	page, err := parseIntParam(r, "page", DefaultPage)
	if err != nil {
		return Params{}, err
	}

	offset, err := parseIntParam(r, "offset", DefaultOffset)
	if err != nil {
		return Params{}, err
	}

	return Normalize(page, offset)
}

// Normalize checks page and offset bounds.
func Normalize(page, offset int) (Params, error) {
	if page < 0 || page > MaxPage {
		return Params{}, fmt.Errorf("page must be between 0 and %d", MaxPage)
	}

	if offset < 1 || offset > MaxOffset {
		return Params{}, fmt.Errorf("offset must be between 1 and %d", MaxOffset)
	}

	return Params{Page: page, Offset: offset}, nil
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}

	return n, nil
}
