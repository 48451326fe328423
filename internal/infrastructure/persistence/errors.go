package persistence

import (
	"errors"
	"strings"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err was raised by a unique or primary key constraint
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return hasSQLState(err, pgUniqueViolation) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err was raised by a foreign key constraint
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return hasSQLState(err, pgForeignKeyViolation) || strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// hasSQLState matches errors from both postgres drivers: pgx at runtime, lib/pq under golang-migrate
func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}

// notFound converts gorm.ErrRecordNotFound to a NotFound domain error
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFound(format, args...)
	}
	return err
}

// writeConstraint converts constraint errors of an insert or update of subject:
// unique violations become Conflict, foreign key violations ReferentialIntegrity
func writeConstraint(err error, subject string) error {
	switch {
	case IsUniqueViolation(err):
		return shared.NewConflict("%s already exists", subject)
	case IsForeignKeyViolation(err):
		return shared.NewReferentialIntegrity("%s references a record that does not exist", subject)
	default:
		return err
	}
}

// deleteConstraint converts a foreign key violation raised while deleting subject to Conflict
func deleteConstraint(err error, subject string) error {
	if IsForeignKeyViolation(err) {
		return shared.NewConflict("%s is still referenced by other records", subject)
	}
	return err
}
