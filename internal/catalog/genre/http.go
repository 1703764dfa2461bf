package genre

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foliocatalog/folio/internal/platform/ctxutil"
	"github.com/foliocatalog/folio/internal/platform/render"
)

type Handler struct {
	service  *Service
	renderer render.Renderer
}

func NewHandler(service *Service, renderer render.Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGenres)
	router.Post("/", handler.createGenre)

	return router
}

// genresView is the data handed to the genres index template.
type genresView struct {
	Genres       []*Genre
	ErrorMessage string
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	handler.renderIndex(writer, request, http.StatusOK, "")
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.renderIndex(writer, request, http.StatusBadRequest, "Could not read the submitted form")
		return
	}

	input := &Genre{Name: request.PostForm.Get("name")}

	if err := handler.service.CreateGenre(request.Context(), input); err != nil {
		handler.renderIndex(writer, request, http.StatusBadRequest, "Error creating Genre")
		return
	}

	http.Redirect(writer, request, "/genres", http.StatusSeeOther)
}

// renderIndex shows the genre list; a render failure degrades to the book index.
func (handler *Handler) renderIndex(writer http.ResponseWriter, request *http.Request, status int, errorMessage string) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		genres = nil
		if errorMessage == "" {
			errorMessage = "Genres are temporarily unavailable"
		}
	}

	view := genresView{Genres: genres, ErrorMessage: errorMessage}
	if err := handler.renderer.Page(writer, status, "genres_index.html", view); err != nil {
		ctxutil.GetLogger(request.Context()).Error("render_failed",
			slog.String("page", "genres_index.html"), slog.Any("error", err))
		http.Redirect(writer, request, "/books", http.StatusSeeOther)
	}
}
