package postgres

import (
	"errors"
	"fmt"

	"mdvault/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const undefinedTable = "42P01"

// documentError turns a pgx failure on one document into the domain error
// the folder engine understands. A missing row is ErrNotFound; everything
// else is passed through as the remote cause.
func documentError(id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}
	return err
}

// missingSchema reports whether err is the server saying the documents table
// does not exist yet.
func missingSchema(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTable
}
