package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	ForeignKeyViolation       = "23503"
	InvalidTextRepresentation = "22P02"
)

// Code returns the SQLSTATE of a postgres error, or "" for anything else.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsForeignKeyViolation(err error) bool {
	return Code(err) == ForeignKeyViolation
}

// IsInvalidInput reports malformed literals such as a non-uuid id.
func IsInvalidInput(err error) bool {
	return Code(err) == InvalidTextRepresentation
}
