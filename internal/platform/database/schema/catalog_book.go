// Package schema centralizes table and column identifiers so SQL in the
// repositories never contains loose string literals.
package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table          string
	ID             string
	Title          string
	Overview       string
	Author         string
	GenreID        string
	PublishDate    string
	CoverImage     string
	CoverImageType string
	CreatedAt      string
	UpdatedAt      string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:          "catalog.book",
	ID:             "id",
	Title:          "title",
	Overview:       "overview",
	Author:         "author",
	GenreID:        "genreid",
	PublishDate:    "publishdate",
	CoverImage:     "coverimage",
	CoverImageType: "coverimagetype",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Overview, t.Author, t.GenreID, t.PublishDate,
		t.CoverImage, t.CoverImageType, t.CreatedAt, t.UpdatedAt,
	}
}
