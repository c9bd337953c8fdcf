package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgDuplicateKeyCode = "23505"
	pgInvalidTextCode  = "22P02"
)

// MapError translates database errors to domain errors.
// sql.ErrNoRows and a malformed key literal (22P02) map to notFoundErr,
// a unique violation (23505) maps to duplicateErr. Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgDuplicateKeyCode:
			return duplicateErr
		case pgInvalidTextCode:
			return notFoundErr
		}
	}

	return err
}
