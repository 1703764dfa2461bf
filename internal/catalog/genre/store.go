package genre

import "context"

type Repository interface {
	ListGenres(context context.Context) ([]*Genre, error)
	GetGenre(context context.Context, id string) (*Genre, error)
	CreateGenre(context context.Context, g *Genre) error
}
