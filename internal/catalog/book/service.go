package book

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliocatalog/folio/internal/catalog/genre"
	"github.com/foliocatalog/folio/internal/platform/apperr"
	"github.com/foliocatalog/folio/internal/platform/validate"
	"github.com/foliocatalog/folio/pkg/pagination"
	"github.com/foliocatalog/folio/pkg/uuidv7"
)

// GenreDirectory resolves genre references during book validation. It is
// satisfied by [genre.Service].
type GenreDirectory interface {
	GetGenre(ctx context.Context, id string) (*genre.Genre, error)
}

// Cover is an uploaded attachment as received at the HTTP boundary. The
// service decides whether it is applied.
type Cover struct {
	Data        []byte
	ContentType string
}

// ListResult is everything the index view needs to render one page.
type ListResult struct {
	Books  []*Book
	Meta   pagination.Meta
	Filter Filter
}

type Service struct {
	repo   Repository
	genres GenreDirectory
	logger *slog.Logger
}

func NewService(repo Repository, genres GenreDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		genres: genres,
		logger: logger,
	}
}

// normalize quietly coerces unrecognized sort parameters to the defaults.
// Bad sort input degrades the ordering, it never produces an error.
func (f Filter) normalize() Filter {
	if _, ok := sortColumns[f.Sort]; !ok {
		f.Sort = SortCreatedAt
	}
	if f.Dir != DirAsc && f.Dir != DirDesc {
		f.Dir = DirDesc
	}
	return f
}

// ListBooks returns one page of the catalog.
//
// The listing is fail-soft: a store error is logged and rendered as an empty
// page rather than an error page, so the index stays reachable while the
// store is down.
func (service *Service) ListBooks(context context.Context, f Filter, params pagination.Params) ListResult {
	f = f.normalize()

	books, total, err := service.repo.ListBooks(context, f, params.Limit, params.Offset())
	if err != nil {
		service.logger.Error("list_books_failed", slog.Any("error", err))
		return ListResult{Books: []*Book{}, Meta: pagination.Zero(), Filter: f}
	}

	return ListResult{
		Books:  books,
		Meta:   pagination.NewMeta(params.Page, params.Limit, total),
		Filter: f,
	}
}

// GetBook returns a single book with its genre populated. A malformed
// identifier is NotFound, never a store error.
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("Book")
	}
	return service.repo.GetBook(context, id)
}

// applyCover attaches an upload to the book, silently dropping anything that
// is not an image. A dropped or absent cover leaves the book's existing
// attachment untouched.
func applyCover(b *Book, cover *Cover) {
	if cover == nil || len(cover.Data) == 0 {
		return
	}
	if !strings.HasPrefix(cover.ContentType, "image/") {
		return
	}
	b.CoverImage = cover.Data
	b.CoverImageType = cover.ContentType
}

// applyUpdate copies every field listed in [UpdatableFields] from src onto
// dst. The cover is absent from that list and goes through applyCover.
func applyUpdate(dst, src *Book) {
	for _, field := range UpdatableFields {
		switch field {
		case FieldTitle:
			dst.Title = src.Title
		case FieldOverview:
			dst.Overview = src.Overview
		case FieldAuthor:
			dst.Author = src.Author
		case FieldGenreID:
			dst.GenreID = src.GenreID
		case FieldPublishDate:
			dst.PublishDate = src.PublishDate
		}
	}
}

// validateBook checks the required fields and the genre reference. The
// referential check runs only when the field-level rules pass, so a blank
// genre never costs a lookup.
func (service *Service) validateBook(context context.Context, b *Book) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, b.Title).MaxLen(FieldTitle, b.Title, 200)
	validator.Required(FieldAuthor, b.Author).MaxLen(FieldAuthor, b.Author, 200)
	validator.Required(FieldGenreID, b.GenreID)
	validator.MaxLen(FieldOverview, b.Overview, 5000)

	if b.GenreID != "" {
		validator.UUID(FieldGenreID, b.GenreID)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.genres.GetGenre(context, b.GenreID); err != nil {
		if apperr.IsNotFound(err) {
			return validate.RequiredError(FieldGenreID, "Selected genre does not exist")
		}
		return err
	}

	return nil
}

// CreateBook validates and persists a new book. The candidate keeps whatever
// the caller submitted on a validation failure so the form can be
// re-rendered with the rejected values.
func (service *Service) CreateBook(context context.Context, b *Book, cover *Cover) error {
	if b.PublishDate.IsZero() {
		b.PublishDate = time.Now().UTC()
	}
	applyCover(b, cover)

	if err := service.validateBook(context, b); err != nil {
		return err
	}

	b.ID = uuidv7.New()
	if err := service.repo.CreateBook(context, b); err != nil {
		return err
	}

	service.logger.Info("book_created", slog.String("book_id", b.ID), slog.String("title", b.Title))
	return nil
}

// UpdateBook replaces every updatable field of an existing book with the
// submitted values. The cover attachment is the exception: it is only
// replaced when the caller supplies a new one.
//
// The returned book carries the merged state even when validation fails, so
// the edit form can re-present the rejected submission.
func (service *Service) UpdateBook(context context.Context, id string, input *Book, cover *Cover) (*Book, error) {
	b, err := service.GetBook(context, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(b, input)
	if b.PublishDate.IsZero() {
		b.PublishDate = time.Now().UTC()
	}
	b.Genre = nil
	applyCover(b, cover)

	if err := service.validateBook(context, b); err != nil {
		return b, err
	}

	if err := service.repo.UpdateBook(context, b); err != nil {
		return b, err
	}

	service.logger.Info("book_updated", slog.String("book_id", b.ID))
	return b, nil
}

// DeleteBook removes a book after confirming it exists, so a missing book
// and a failed delete surface as distinct errors.
func (service *Service) DeleteBook(context context.Context, id string) error {
	if _, err := service.GetBook(context, id); err != nil {
		return err
	}

	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id))
	return nil
}
