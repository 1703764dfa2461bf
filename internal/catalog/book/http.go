package book

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foliocatalog/folio/internal/catalog/genre"
	"github.com/foliocatalog/folio/internal/platform/apperr"
	"github.com/foliocatalog/folio/internal/platform/constants"
	"github.com/foliocatalog/folio/internal/platform/ctxutil"
	"github.com/foliocatalog/folio/internal/platform/render"
	"github.com/foliocatalog/folio/pkg/pagination"
)

// publishDateLayout is the wire format of the publish date form field.
const publishDateLayout = "2006-01-02"

// GenreLister supplies the genre options rendered into book forms. It is
// satisfied by [genre.Service].
type GenreLister interface {
	ListGenres(ctx context.Context) ([]*genre.Genre, error)
}

type Handler struct {
	service  *Service
	genres   GenreLister
	renderer render.Renderer
}

func NewHandler(service *Service, genres GenreLister, renderer render.Renderer) *Handler {
	return &Handler{service: service, genres: genres, renderer: renderer}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Get("/new", handler.newBook)
	router.Post("/", handler.createBook)
	router.Get("/{id}", handler.showBook)
	router.Get("/{id}/edit", handler.editBook)
	router.Put("/{id}", handler.updateBook)
	router.Delete("/{id}", handler.deleteBook)

	return router
}

// # View Models

type booksIndexView struct {
	Books    []*Book
	Meta     pagination.Meta
	Filter   string
	Sort     string
	Dir      string
	PrevPage int
	NextPage int
}

type bookFormView struct {
	Book         *Book
	Genres       []*genre.Genre
	ErrorMessage string
}

type bookShowView struct {
	Book *Book
}

// # Handlers

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{
		Title: query.Get("title"),
		Sort:  query.Get("sort"),
		Dir:   query.Get("dir"),
	}

	result := handler.service.ListBooks(request.Context(), filter, pagination.FromRequest(request))

	view := booksIndexView{
		Books:    result.Books,
		Meta:     result.Meta,
		Filter:   result.Filter.Title,
		Sort:     result.Filter.Sort,
		Dir:      result.Filter.Dir,
		PrevPage: result.Meta.Page - 1,
		NextPage: result.Meta.Page + 1,
	}
	handler.renderPage(writer, request, http.StatusOK, "books_index.html", view)
}

func (handler *Handler) newBook(writer http.ResponseWriter, request *http.Request) {
	handler.renderForm(writer, request, http.StatusOK, "books_new.html", &Book{}, "")
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	input, cover, err := parseBookForm(request)
	if err != nil {
		handler.renderForm(writer, request, http.StatusBadRequest, "books_new.html", input, "Could not read the submitted form")
		return
	}

	if err := handler.service.CreateBook(request.Context(), input, cover); err != nil {
		handler.renderForm(writer, request, statusFor(err), "books_new.html", input, "Error creating Book")
		return
	}

	http.Redirect(writer, request, "/books/"+input.ID, http.StatusSeeOther)
}

func (handler *Handler) showBook(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	b, err := handler.service.GetBook(request.Context(), id)
	if err != nil {
		http.Redirect(writer, request, "/books", http.StatusSeeOther)
		return
	}

	handler.renderPage(writer, request, http.StatusOK, "books_show.html", bookShowView{Book: b})
}

func (handler *Handler) editBook(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	b, err := handler.service.GetBook(request.Context(), id)
	if err != nil {
		http.Redirect(writer, request, "/books", http.StatusSeeOther)
		return
	}

	handler.renderForm(writer, request, http.StatusOK, "books_edit.html", b, "")
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	input, cover, err := parseBookForm(request)
	if err != nil {
		http.Redirect(writer, request, "/books/"+id+"/edit", http.StatusSeeOther)
		return
	}

	b, err := handler.service.UpdateBook(request.Context(), id, input, cover)
	if err != nil {
		if b == nil {
			// A missing book means there is no edit form to re-render.
			if apperr.IsNotFound(err) {
				http.Redirect(writer, request, "/", http.StatusSeeOther)
				return
			}
			// Anything else is a server-side failure, not a bad reference.
			message := "Something went wrong"
			if ae := apperr.As(err); ae != nil {
				message = ae.Message
			}
			http.Error(writer, message, statusFor(err))
			return
		}
		handler.renderForm(writer, request, statusFor(err), "books_edit.html", b, "Error updating Book")
		return
	}

	http.Redirect(writer, request, "/books/"+b.ID, http.StatusSeeOther)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	if err := handler.service.DeleteBook(request.Context(), id); err != nil {
		if apperr.IsNotFound(err) {
			http.Redirect(writer, request, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(writer, request, "/books/"+id, http.StatusSeeOther)
		return
	}

	http.Redirect(writer, request, "/books", http.StatusSeeOther)
}

// # Form Parsing

// parseBookForm reads a create/update submission. The candidate book is
// returned even on a parse failure so the form can be re-rendered with
// whatever values survived.
func parseBookForm(request *http.Request) (*Book, *Cover, error) {
	var parseErr error
	if strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data") {
		parseErr = request.ParseMultipartForm(constants.MaxUploadBytes)
	} else {
		parseErr = request.ParseForm()
	}

	b := &Book{
		Title:    request.PostFormValue("title"),
		Overview: request.PostFormValue("overview"),
		Author:   request.PostFormValue("author"),
		GenreID:  request.PostFormValue("genre"),
	}
	if raw := request.PostFormValue("publishDate"); raw != "" {
		if date, err := time.Parse(publishDateLayout, raw); err == nil {
			b.PublishDate = date
		}
	}
	if parseErr != nil {
		return b, nil, parseErr
	}

	cover, err := readCover(request)
	return b, cover, err
}

// readCover extracts the optional cover upload. An absent file is not an
// error.
func readCover(request *http.Request) (*Cover, error) {
	file, header, err := request.FormFile(constants.CoverFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &Cover{Data: data, ContentType: header.Header.Get("Content-Type")}, nil
}

// # Rendering

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, page string, b *Book, errorMessage string) {
	genres, err := handler.genres.ListGenres(request.Context())
	if err != nil {
		genres = nil
	}

	view := bookFormView{Book: b, Genres: genres, ErrorMessage: errorMessage}
	handler.renderPage(writer, request, status, page, view)
}

// renderPage degrades a failed render into a redirect home rather than a
// blank error page.
func (handler *Handler) renderPage(writer http.ResponseWriter, request *http.Request, status int, page string, view any) {
	if err := handler.renderer.Page(writer, status, page, view); err != nil {
		ctxutil.GetLogger(request.Context()).Error("render_failed",
			slog.String("page", page), slog.Any("error", err))
		if page != "books_index.html" {
			http.Redirect(writer, request, "/books", http.StatusSeeOther)
			return
		}
		http.Error(writer, "Something went wrong", http.StatusInternalServerError)
	}
}

func statusFor(err error) int {
	if ae := apperr.As(err); ae != nil {
		return ae.HTTPStatus
	}
	return http.StatusInternalServerError
}
