// Copyright (c) 2026 Folio. All rights reserved.

package genre_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocatalog/folio/internal/catalog/genre"
	"github.com/foliocatalog/folio/internal/platform/apperr"
	"github.com/foliocatalog/folio/internal/platform/dberr"
)

type fakeRepo struct {
	genres  []*genre.Genre
	created []*genre.Genre
}

func (r *fakeRepo) ListGenres(_ context.Context) ([]*genre.Genre, error) {
	return r.genres, nil
}

func (r *fakeRepo) GetGenre(_ context.Context, id string) (*genre.Genre, error) {
	for _, g := range r.genres {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) CreateGenre(_ context.Context, g *genre.Genre) error {
	r.created = append(r.created, g)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

/*
TestService_CreateGenre verifies that a genre gets an ID and a slug derived
from its name.
*/
func TestService_CreateGenre(t *testing.T) {
	repo := &fakeRepo{}
	service := genre.NewService(repo, nil, testLogger())

	input := &genre.Genre{Name: "Science Fiction"}
	require.NoError(t, service.CreateGenre(context.Background(), input))

	assert.NotEmpty(t, input.ID)
	assert.Equal(t, "science-fiction", input.Slug)
	require.Len(t, repo.created, 1)
}

/*
TestService_CreateGenre_Validation verifies that a blank name is rejected
before the store is touched.
*/
func TestService_CreateGenre_Validation(t *testing.T) {
	repo := &fakeRepo{}
	service := genre.NewService(repo, nil, testLogger())

	err := service.CreateGenre(context.Background(), &genre.Genre{Name: "   "})

	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, repo.created)
}

/*
TestService_ListGenres verifies the uncached read path.
*/
func TestService_ListGenres(t *testing.T) {
	repo := &fakeRepo{genres: []*genre.Genre{
		{ID: "018f3aec-5f1b-7c4e-9d2a-111111111111", Name: "Fiction", Slug: "fiction"},
	}}
	service := genre.NewService(repo, nil, testLogger())

	genres, err := service.ListGenres(context.Background())

	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Fiction", genres[0].Name)
}
