// Copyright (c) 2026 Folio. All rights reserved.

package middleware

import (
	"net/http"

	"github.com/foliocatalog/folio/internal/platform/constants"
)

// # HTML Form Support

// MethodOverride rewrites POST requests into PUT/DELETE when the client
// tunnels the verb through the "_method" parameter, since HTML forms can
// only submit GET and POST.
//
// The override is read from the query string first (form actions like
// "/books/123?_method=PUT"), then from an already-parsed urlencoded body.
// Multipart bodies are left untouched so the handler's own size-capped
// parse sees the original stream.
func MethodOverride() func(http.Handler) http.Handler {
	allowed := map[string]bool{
		http.MethodPut:    true,
		http.MethodPatch:  true,
		http.MethodDelete: true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Method == http.MethodPost {
				override := request.URL.Query().Get(constants.MethodOverrideField)

				if override == "" && request.PostForm != nil {
					override = request.PostForm.Get(constants.MethodOverrideField)
				}

				if allowed[override] {
					request.Method = override
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// NoCache disables client and proxy caching of rendered pages, so stale
// catalog state is never shown after a back-navigation.
func NoCache() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			next.ServeHTTP(writer, request)
		})
	}
}

// MaxBytes caps the request body size before any form parsing happens.
// Oversized uploads fail the parse inside the handler rather than
// exhausting memory.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Body != nil {
				request.Body = http.MaxBytesReader(writer, request.Body, limit)
			}
			next.ServeHTTP(writer, request)
		})
	}
}
