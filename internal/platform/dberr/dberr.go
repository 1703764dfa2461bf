// Copyright (c) 2026 Folio. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Classification is based on the Postgres SQLSTATE where one is available,
// so repositories never leak driver error types to the service layer.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/foliocatalog/folio/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("A record with the same value already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced record does not exist")
		}
	}

	// 3. Connection establishment failures surface as 503, not 500: the
	// request did not reach the store and may succeed on retry.
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return apperr.StoreUnavailable(err)
	}

	// 4. Anything else becomes an Internal Server Error
	return apperr.Internal(err)
}
