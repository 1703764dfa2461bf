/*
Package book defines the core domain entity of the Folio catalogue and the
operations over it: filtered listing, detail reads, and the create/update/
delete lifecycle including the optional cover attachment.
*/
package book

import (
	"encoding/base64"
	"time"

	"github.com/foliocatalog/folio/internal/catalog/genre"
)

// Book represents one catalog entry.
type Book struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Author   string `json:"author"`

	// GenreID references a [genre.Genre]; Genre carries the populated
	// entity on reads. A dangling reference leaves Genre nil.
	GenreID string       `json:"genre_id"`
	Genre   *genre.Genre `json:"genre,omitempty"`

	PublishDate time.Time `json:"publish_date"`

	// CoverImage and CoverImageType are set together or not at all.
	CoverImage     []byte `json:"-"`
	CoverImageType string `json:"cover_image_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCover reports whether the cover co-invariant is satisfied with an
// attachment present.
func (b *Book) HasCover() bool {
	return len(b.CoverImage) > 0 && b.CoverImageType != ""
}

// CoverImagePath derives the inline data URI for the cover image, or ""
// when either half of the attachment is missing. It is computed on demand
// and never stored.
func (b *Book) CoverImagePath() string {
	if !b.HasCover() {
		return ""
	}
	return "data:" + b.CoverImageType + ";base64," + base64.StdEncoding.EncodeToString(b.CoverImage)
}

// # Search & Filtering

// Filter holds the parameters for a filtered book list query.
type Filter struct {
	// Title is matched as a literal, case-insensitive substring. It is
	// escaped before reaching the pattern language, never interpreted.
	Title string

	// Sort names a sortable attribute ("title", "author", "publishDate",
	// "createdAt"). Unrecognized values degrade to the default ordering.
	Sort string

	// Dir is "asc" or "desc"; anything else falls back to "desc".
	Dir string
}

// Sortable attribute identifiers accepted in list requests.
const (
	SortCreatedAt   = "createdAt"
	SortTitle       = "title"
	SortAuthor      = "author"
	SortPublishDate = "publishDate"

	DirAsc  = "asc"
	DirDesc = "desc"
)

// # Field Identifiers

// Global field names for validation and form rendering.
const (
	FieldTitle       = "title"
	FieldOverview    = "overview"
	FieldAuthor      = "author"
	FieldGenreID     = "genre"
	FieldPublishDate = "publish_date"
	FieldCover       = "cover"
)

// UpdatableFields is the explicit set of attributes an update overwrites
// unconditionally. The cover attachment is intentionally absent: it is only
// replaced when a new one is supplied.
var UpdatableFields = []string{
	FieldTitle,
	FieldOverview,
	FieldAuthor,
	FieldGenreID,
	FieldPublishDate,
}
