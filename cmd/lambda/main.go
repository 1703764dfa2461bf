// Copyright (c) 2026 Folio. All rights reserved.

// Command lambda runs the Folio catalog behind AWS API Gateway.
//
// # Cold Start Strategy
//
// The init phase only prepares what cannot fail on a healthy host: logger,
// configuration, and templates. The PostgreSQL connection is NOT established
// here — it is acquired lazily through [postgres.Provider] on the first
// request and cached for the lifetime of the execution environment. A failed
// establishment answers 503 and leaves the cache empty, so the next
// invocation retries instead of reusing a dead handle.
package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	goredis "github.com/redis/go-redis/v9"

	"github.com/foliocatalog/folio/internal/catalog/book"
	"github.com/foliocatalog/folio/internal/catalog/genre"
	"github.com/foliocatalog/folio/internal/platform/config"
	"github.com/foliocatalog/folio/internal/platform/constants"
	pgstore "github.com/foliocatalog/folio/internal/platform/postgres"
	redisstore "github.com/foliocatalog/folio/internal/platform/redis"
	"github.com/foliocatalog/folio/internal/platform/render"
	"github.com/foliocatalog/folio/internal/web"
)

var (
	log      *slog.Logger
	cfg      *config.Config
	provider *pgstore.Provider
	renderer *render.TemplateRenderer
	rdb      *goredis.Client

	// adapterMu guards the lazily-built router. It stays nil until the
	// first successful pool acquisition.
	adapterMu sync.Mutex
	adapter   *chiadapter.ChiLambdaV2
)

func init() {
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	var err error
	cfg, err = config.Load()
	must(err, "load configuration")

	renderer, err = render.New()
	must(err, "parse templates")

	provider = pgstore.NewProvider(cfg.DatabaseURL, log)

	// Redis is best-effort in Lambda: a cache outage must not fail cold
	// starts.
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if rdb, err = redisstore.NewClient(ctx, cfg.RedisURL, log); err != nil {
			log.Warn("redis_unavailable", slog.Any("error", err))
			rdb = nil
		}
	}

	log.Info("lambda_initialized")
}

// router returns the cached adapter, building it on the first call that
// reaches the database.
func router(ctx context.Context) (*chiadapter.ChiLambdaV2, error) {
	adapterMu.Lock()
	defer adapterMu.Unlock()

	if adapter != nil {
		return adapter, nil
	}

	pool, err := provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	liveness, readiness := web.NewHealthHandlers(web.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
	}, log)

	genreRepository := genre.NewPostgresRepository(pool)
	genreService := genre.NewService(genreRepository, rdb, log)
	genreHandler := genre.NewHandler(genreService, renderer)

	bookRepository := book.NewPostgresRepository(pool)
	bookService := book.NewService(bookRepository, genreService, log)
	bookHandler := book.NewHandler(bookService, genreService, renderer)

	handlers := web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      bookHandler,
		Genre:     genreHandler,
	}

	adapter = chiadapter.NewV2(web.NewRouter(context.Background(), log, handlers))
	return adapter, nil
}

// Handler proxies one API Gateway event through the chi router.
func Handler(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	a, err := router(ctx)
	if err != nil {
		log.Error("store_unavailable", slog.Any("error", err))
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 503,
			Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
			Body:       `{"error":"The catalog is temporarily unavailable","code":"STORE_UNAVAILABLE"}`,
		}, nil
	}

	return a.ProxyWithContextV2(ctx, request)
}

func main() {
	lambda.Start(Handler)
}

// must terminates the cold start if an unrecoverable init error occurs.
func must(err error, context string) {
	if err != nil {
		log.Error("init failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
