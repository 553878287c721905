package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hrdocs/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// mapUniqueViolation translates a postgres duplicate-key failure into
// the matching domain error so callers see 409 instead of 500.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return employeeerrors.ErrEmailTaken
	case strings.Contains(pgErr.ConstraintName, "employee_code"):
		return employeeerrors.ErrEmployeeCodeTaken
	default:
		return err
	}
}
