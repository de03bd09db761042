package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zvrva/journeys/internal/domain"
)

// Postgres error codes that correspond to entity constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapPgError converts constraint violations raised by the database into the
// domain's ConstraintError; everything else passes through untouched.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			return &domain.ConstraintError{Message: pgErr.Message, Err: err}
		}
	}
	return err
}
