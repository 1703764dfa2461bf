// Copyright (c) 2026 Folio. All rights reserved.

// Package pagination provides shared types and helpers for paginated list pages.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered to the view layer.
package pagination

import (
	"net/http"

	"github.com/foliocatalog/folio/pkg/convert"
)

const (
	// PerPage is the fixed number of items per page. The catalog does not
	// accept a client-supplied page size.
	PerPage = 10

	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata handed to list views.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Zero returns empty metadata for the fail-soft path: a renderable page with
// no results and no navigation.
func Zero() Meta {
	return Meta{Page: DefaultPage, Limit: PerPage}
}

// FromRequest parses the "page" query parameter from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or missing values fall back to [DefaultPage]. The limit
// is always [PerPage].
func FromRequest(r *http.Request) Params {
	page := convert.ToIntD(r.URL.Query().Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	return Params{Page: page, Limit: PerPage}
}
