// Copyright (c) 2026 Folio. All rights reserved.

package book_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliocatalog/folio/internal/catalog/book"
)

/*
TestBook_CoverImagePath verifies the derived data URI for the cover image.
*/
func TestBook_CoverImagePath(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	b := &book.Book{CoverImage: payload, CoverImageType: "image/png"}

	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	assert.Equal(t, want, b.CoverImagePath())
}

/*
TestBook_CoverImagePath_Incomplete verifies that a half-set attachment never
produces a URI: both the bytes and the media type must be present.
*/
func TestBook_CoverImagePath_Incomplete(t *testing.T) {
	cases := []struct {
		name string
		book book.Book
	}{
		{name: "no attachment", book: book.Book{}},
		{name: "bytes without type", book: book.Book{CoverImage: []byte{1, 2, 3}}},
		{name: "type without bytes", book: book.Book{CoverImageType: "image/png"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.book.HasCover())
			assert.Empty(t, tc.book.CoverImagePath())
		})
	}
}
