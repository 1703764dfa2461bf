package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliocatalog/folio/internal/platform/database/schema"
	"github.com/foliocatalog/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListGenres(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func (repository *PostgresRepository) GetGenre(context context.Context, id string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, id).Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre")
	}

	return g, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, g.ID, g.Name, g.Slug).Scan(&g.CreatedAt)
	return dberr.Wrap(err, "create_genre")
}
