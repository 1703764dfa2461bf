package book

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliocatalog/folio/internal/catalog/genre"
	"github.com/foliocatalog/folio/internal/platform/database/schema"
	"github.com/foliocatalog/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// sortColumns maps the public sort identifiers onto real columns. Anything
// outside this map degrades to the creation-time default instead of reaching
// the query text.
var sortColumns = map[string]string{
	SortTitle:       schema.CatalogBook.Title,
	SortAuthor:      schema.CatalogBook.Author,
	SortPublishDate: schema.CatalogBook.PublishDate,
	SortCreatedAt:   schema.CatalogBook.CreatedAt,
}

// escapeLike neutralizes the LIKE pattern metacharacters so a filter term is
// always matched as a literal substring.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		       g.%s, g.%s, g.%s, g.%s
		FROM %s b
		LEFT JOIN %s g ON b.%s = g.%s
	`,
		schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Overview, schema.CatalogBook.Author,
		schema.CatalogBook.GenreID, schema.CatalogBook.PublishDate, schema.CatalogBook.CoverImage,
		schema.CatalogBook.CoverImageType, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogBook.Table, schema.CatalogGenre.Table, schema.CatalogBook.GenreID, schema.CatalogGenre.ID,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s b`, schema.CatalogBook.Table)

	args := []any{}
	countArgs := []any{}

	if f.Title != "" {
		searchTerm := "%" + escapeLike(f.Title) + "%"
		query += fmt.Sprintf(` WHERE b.%s ILIKE $1`, schema.CatalogBook.Title)
		countQuery += fmt.Sprintf(` WHERE b.%s ILIKE $1`, schema.CatalogBook.Title)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	column, ok := sortColumns[f.Sort]
	if !ok {
		column = schema.CatalogBook.CreatedAt
	}
	direction := "DESC"
	if f.Dir == DirAsc {
		direction = "ASC"
	}

	query += fmt.Sprintf(" ORDER BY b.%s %s LIMIT $", column, direction) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b := &Book{}
		var gID, gName, gSlug *string
		var gCreatedAt *time.Time
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Overview, &b.Author, &b.GenreID, &b.PublishDate,
			&b.CoverImage, &b.CoverImageType, &b.CreatedAt, &b.UpdatedAt,
			&gID, &gName, &gSlug, &gCreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		if gID != nil {
			b.Genre = &genre.Genre{ID: *gID, Name: *gName, Slug: *gSlug, CreatedAt: *gCreatedAt}
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		       g.%s, g.%s, g.%s, g.%s
		FROM %s b
		LEFT JOIN %s g ON b.%s = g.%s
		WHERE b.%s = $1
	`,
		schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Overview, schema.CatalogBook.Author,
		schema.CatalogBook.GenreID, schema.CatalogBook.PublishDate, schema.CatalogBook.CoverImage,
		schema.CatalogBook.CoverImageType, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogBook.Table, schema.CatalogGenre.Table, schema.CatalogBook.GenreID, schema.CatalogGenre.ID,
		schema.CatalogBook.ID,
	)

	b := &Book{}
	var gID, gName, gSlug *string
	var gCreatedAt *time.Time

	err := repository.db.QueryRow(context, query, id).Scan(
		&b.ID, &b.Title, &b.Overview, &b.Author, &b.GenreID, &b.PublishDate,
		&b.CoverImage, &b.CoverImageType, &b.CreatedAt, &b.UpdatedAt,
		&gID, &gName, &gSlug, &gCreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	if gID != nil {
		b.Genre = &genre.Genre{ID: *gID, Name: *gName, Slug: *gSlug, CreatedAt: *gCreatedAt}
	}

	return b, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Overview, schema.CatalogBook.Author,
		schema.CatalogBook.GenreID, schema.CatalogBook.PublishDate, schema.CatalogBook.CoverImage,
		schema.CatalogBook.CoverImageType, schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.Title, b.Overview, b.Author, b.GenreID, b.PublishDate, b.CoverImage, b.CoverImageType,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.Overview, schema.CatalogBook.Author,
		schema.CatalogBook.GenreID, schema.CatalogBook.PublishDate, schema.CatalogBook.CoverImage,
		schema.CatalogBook.CoverImageType, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID, schema.CatalogBook.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.Title, b.Overview, b.Author, b.GenreID, b.PublishDate, b.CoverImage, b.CoverImageType,
	).Scan(&b.UpdatedAt)
	return dberr.Wrap(err, "update_book")
}

func (repository *PostgresRepository) DeleteBook(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
