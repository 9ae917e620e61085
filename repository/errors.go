package repository

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrAlreadyExists is returned by Create when the username is taken.
	ErrAlreadyExists = errors.New("username already exists")
	// ErrNotFound is returned when no account has the requested id.
	ErrNotFound = errors.New("account not found")
	// ErrInvalidAccount is returned when required fields are empty or the role is unknown.
	ErrInvalidAccount = errors.New("invalid account")
)

// StorageError wraps a failure of the underlying database (I/O, corruption,
// constraint other than username uniqueness).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrConstraint && se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
