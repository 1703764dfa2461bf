package genre

import (
	"context"
	"encoding/json"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/foliocatalog/folio/internal/platform/constants"
	"github.com/foliocatalog/folio/internal/platform/validate"
	"github.com/foliocatalog/folio/pkg/slug"
	"github.com/foliocatalog/folio/pkg/uuidv7"
)

// Service manages genres. The full genre list is rendered into every book
// form, so it is cached in Redis with a short TTL when a client is wired.
type Service struct {
	repo   Repository
	cache  *goredis.Client // nil disables caching
	logger *slog.Logger
}

func NewService(repo Repository, cache *goredis.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListGenres returns all genres, preferring the cached copy.
//
// Cache failures are logged and bypassed: Redis being down degrades to
// slower form renders, never to an error page.
func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	if service.cache != nil {
		raw, err := service.cache.Get(context, constants.RedisKeyGenreList).Bytes()
		if err == nil {
			var cached []*Genre
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		} else if err != goredis.Nil {
			service.logger.Warn("genre_cache_read_failed", slog.Any("error", err))
		}
	}

	genres, err := service.repo.ListGenres(context)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if raw, err := json.Marshal(genres); err == nil {
			if err := service.cache.Set(context, constants.RedisKeyGenreList, raw, constants.GenreListTTL).Err(); err != nil {
				service.logger.Warn("genre_cache_write_failed", slog.Any("error", err))
			}
		}
	}

	return genres, nil
}

// GetGenre returns a single genre by its ID.
func (service *Service) GetGenre(context context.Context, id string) (*Genre, error) {
	return service.repo.GetGenre(context, id)
}

// CreateGenre validates and persists a new genre, then invalidates the
// cached list.
func (service *Service) CreateGenre(context context.Context, g *Genre) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, g.Name).MaxLen(FieldName, g.Name, 100)

	if err := validator.Err(); err != nil {
		return err
	}

	g.ID = uuidv7.New()
	g.Slug = slug.From(g.Name)

	if err := service.repo.CreateGenre(context, g); err != nil {
		return err
	}

	if service.cache != nil {
		if err := service.cache.Del(context, constants.RedisKeyGenreList).Err(); err != nil {
			service.logger.Warn("genre_cache_invalidate_failed", slog.Any("error", err))
		}
	}

	service.logger.Info("genre_created", slog.String("genre_id", g.ID), slog.String("slug", g.Slug))
	return nil
}
