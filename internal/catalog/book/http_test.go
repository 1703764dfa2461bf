// Copyright (c) 2026 Folio. All rights reserved.

package book_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocatalog/folio/internal/catalog/book"
	"github.com/foliocatalog/folio/internal/platform/apperr"
)

// fakeRenderer records the last page it was asked to write.
type fakeRenderer struct {
	page   string
	status int
	data   any
}

func (r *fakeRenderer) Page(writer http.ResponseWriter, status int, name string, data any) error {
	r.page = name
	r.status = status
	r.data = data
	writer.WriteHeader(status)
	return nil
}

func setupHandler(t *testing.T, books ...*book.Book) (*fakeRepo, *fakeRenderer, http.Handler) {
	t.Helper()

	repo := newFakeRepo(books...)
	genres := newFakeGenres()
	renderer := &fakeRenderer{}
	service := book.NewService(repo, genres, testLogger())
	handler := book.NewHandler(service, genres, renderer)

	return repo, renderer, handler.Routes()
}

func bookForm(b *book.Book) url.Values {
	return url.Values{
		"title":       {b.Title},
		"author":      {b.Author},
		"genre":       {b.GenreID},
		"overview":    {b.Overview},
		"publishDate": {b.PublishDate.Format("2006-01-02")},
	}
}

/*
TestHandler_ListBooks verifies that the index page renders with pagination
metadata and the echoed filter state.
*/
func TestHandler_ListBooks(t *testing.T) {
	stored := validBook()
	stored.ID = "018f3aec-5f1b-7c4e-9d2a-000000000010"
	_, renderer, router := setupHandler(t, stored)

	request := httptest.NewRequest(http.MethodGet, "/?title=darkness&sort=title&dir=asc", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "books_index.html", renderer.page)
}

/*
TestHandler_CreateBook verifies that a valid submission redirects to the new
book's detail page.
*/
func TestHandler_CreateBook(t *testing.T) {
	repo, _, router := setupHandler(t)

	form := bookForm(validBook())
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Len(t, repo.books, 1)
	for id := range repo.books {
		assert.Equal(t, "/books/"+id, recorder.Header().Get("Location"))
	}
}

/*
TestHandler_CreateBook_Invalid verifies that a rejected submission re-renders
the form with the submitted values instead of redirecting.
*/
func TestHandler_CreateBook_Invalid(t *testing.T) {
	_, renderer, router := setupHandler(t)

	candidate := validBook()
	candidate.Title = ""
	form := bookForm(candidate)
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "books_new.html", renderer.page)
	assert.Equal(t, http.StatusBadRequest, renderer.status)
}

/*
TestHandler_CreateBook_MultipartCover verifies that a multipart submission
carries the uploaded cover through to the stored book.
*/
func TestHandler_CreateBook_MultipartCover(t *testing.T) {
	repo, _, router := setupHandler(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, values := range bookForm(validBook()) {
		require.NoError(t, writer.WriteField(field, values[0]))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="cover"; filename="cover.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Len(t, repo.books, 1)
	for _, stored := range repo.books {
		assert.True(t, stored.HasCover())
		assert.Equal(t, "image/png", stored.CoverImageType)
	}
}

/*
TestHandler_ShowBook_Missing verifies that an unknown ID degrades to the
index instead of an error page.
*/
func TestHandler_ShowBook_Missing(t *testing.T) {
	_, _, router := setupHandler(t)

	request := httptest.NewRequest(http.MethodGet, "/018f3aec-5f1b-7c4e-9d2a-444444444444", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/books", recorder.Header().Get("Location"))
}

/*
TestHandler_UpdateBook verifies the redirect to the detail page after a
successful update.
*/
func TestHandler_UpdateBook(t *testing.T) {
	stored := validBook()
	stored.ID = "018f3aec-5f1b-7c4e-9d2a-000000000020"
	repo, _, router := setupHandler(t, stored)

	input := validBook()
	input.Title = "Updated Title"
	form := bookForm(input)
	request := httptest.NewRequest(http.MethodPut, "/"+stored.ID, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/books/"+stored.ID, recorder.Header().Get("Location"))
	assert.Equal(t, "Updated Title", repo.books[stored.ID].Title)
}

/*
TestHandler_UpdateBook_Missing verifies that updating an unknown book
redirects home.
*/
func TestHandler_UpdateBook_Missing(t *testing.T) {
	_, _, router := setupHandler(t)

	form := bookForm(validBook())
	request := httptest.NewRequest(http.MethodPut, "/018f3aec-5f1b-7c4e-9d2a-555555555555", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
}

/*
TestHandler_UpdateBook_StoreDown verifies that a store outage during an
update surfaces as a 503, not the missing-book redirect home.
*/
func TestHandler_UpdateBook_StoreDown(t *testing.T) {
	repo, _, router := setupHandler(t)
	repo.getErr = apperr.StoreUnavailable(assert.AnError)

	form := bookForm(validBook())
	request := httptest.NewRequest(http.MethodPut, "/018f3aec-5f1b-7c4e-9d2a-555555555555", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "temporarily unavailable")
}

/*
TestHandler_DeleteBook verifies both delete outcomes: success redirects to
the index, a missing book redirects home.
*/
func TestHandler_DeleteBook(t *testing.T) {
	stored := validBook()
	stored.ID = "018f3aec-5f1b-7c4e-9d2a-000000000030"
	repo, _, router := setupHandler(t, stored)

	request := httptest.NewRequest(http.MethodDelete, "/"+stored.ID, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/books", recorder.Header().Get("Location"))
	assert.Empty(t, repo.books)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/"+stored.ID, nil))
	assert.Equal(t, "/", recorder.Header().Get("Location"))
}
