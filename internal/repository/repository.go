package repository

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// violation referencing the given column.
func IsForeignKeyViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23503" {
		return false
	}
	return column == "" || strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Detail, column)
}

// setClause builds "col1=$1, col2=$2" from the requested fields, mapping
// request keys to columns through allowed. Unknown keys are skipped; the
// caller decides whether an empty clause is an error. order fixes the
// parameter sequence so generated SQL is deterministic.
func setClause(fields map[string]any, allowed map[string]string, order []string) (string, []any) {
	var (
		parts []string
		args  []any
	)
	for _, key := range order {
		col, ok := allowed[key]
		if !ok {
			continue
		}
		val, ok := fields[key]
		if !ok {
			continue
		}
		args = append(args, val)
		parts = append(parts, col+"=$"+strconv.Itoa(len(args)))
	}
	return strings.Join(parts, ", "), args
}
