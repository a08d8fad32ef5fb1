package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yamdb/yamdb-api/pkg/apperr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateConstraint maps storage-level constraint violations to the
// validation taxonomy so a uniqueness race surfaces as a 400, not a raw
// database error. The field name comes from the constraint.
func translateConstraint(err error, constraintFields map[string]string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		if field, ok := constraintFields[pgErr.ConstraintName]; ok {
			return apperr.ValidationField(field, "already exists")
		}
		return apperr.Validation("duplicate value", nil)
	case codeForeignKeyViolation:
		return apperr.Validation("referenced entity does not exist", nil)
	}
	return err
}
