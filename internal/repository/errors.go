package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMediaNotFound = errors.New("media not found")
)

// isConstraintViolation reports whether err is a unique-key or foreign-key
// violation. Duplicate likes/follows and inserts against missing endpoints
// both surface this way and are reported to callers as a soft false, never
// as a server error.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation ||
			pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	return false
}
