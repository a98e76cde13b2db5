package utils

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// TranslateUniqueViolation maps a Postgres unique violation on the users
// table to the matching business error. The pre-insert existence checks catch
// duplicates first; this covers the race where two registrations for the same
// email or phone land concurrently. Unrecognized errors pass through.
func TranslateUniqueViolation(err error, emailErr, phoneErr error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return emailErr
		case strings.Contains(pgErr.ConstraintName, "phone"):
			return phoneErr
		}
	}
	return err
}
