package postgres

import (
	"database/sql"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const pqUndefinedTable = "42P01"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable
}

func storageFailure(sentinel, cause error, msg string) error {
	return crerr.WithSecondaryError(crerr.Wrapf(sentinel, "%s: %v", msg, cause), cause)
}
