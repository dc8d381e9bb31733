package postgres

import (
	"errors"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
	pgCheckViolation  = "23514"
)

// translate maps driver errors onto the errs taxonomy. onConflict, when set,
// replaces the generic errs.ErrConflict for unique violations.
func translate(err error, onConflict error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	if isUniqueViolation(err) {
		if onConflict != nil {
			return onConflict
		}
		return errs.ErrConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgFKViolation:
			return errs.ErrNotFound
		case pgCheckViolation:
			return errs.Invalid("constraint %s violated", pgErr.ConstraintName)
		}
	}
	return errs.Unavailable("postgres", err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
