// Copyright (c) 2026 Folio. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliocatalog/folio/internal/platform/middleware"
)

/*
TestMethodOverride verifies verb tunneling through the _method query parameter.
*/
func TestMethodOverride(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		wantMethod string
	}{
		{"post_to_put", http.MethodPost, "/books/1?_method=PUT", http.MethodPut},
		{"post_to_delete", http.MethodPost, "/books/1?_method=DELETE", http.MethodDelete},
		{"plain_post_untouched", http.MethodPost, "/books", http.MethodPost},
		{"get_never_overridden", http.MethodGet, "/books?_method=DELETE", http.MethodGet},
		{"unknown_verb_ignored", http.MethodPost, "/books/1?_method=TRACE", http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.MethodOverride()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.Method
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantMethod, seen)
		})
	}
}

/*
TestNoCache verifies the Cache-Control header suppresses page caching.
*/
func TestNoCache(t *testing.T) {
	handler := middleware.NoCache()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/books", nil))

	assert.Contains(t, recorder.Header().Get("Cache-Control"), "no-store")
}
