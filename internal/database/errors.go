package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a booking or menu item does not exist.
	// Callers treat it as an outcome, not an internal failure.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateReference is returned when a booking reference collides
	// with an existing row. Creation retries with a fresh reference.
	ErrDuplicateReference = errors.New("duplicate booking reference")
)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
