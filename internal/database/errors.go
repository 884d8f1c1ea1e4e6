package database

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrStatusChanged     = errors.New("booking status changed concurrently")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrForeignKey        = errors.New("referenced record does not exist")
	ErrConstraintViolate = errors.New("constraint violation")
)

// mapError translates sqlite constraint failures into package sentinels.
// Errors it does not recognise are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	s := err.Error()
	switch {
	case strings.Contains(s, "UNIQUE constraint failed: users.email"):
		return &Error{Sentinel: ErrDuplicateEmail, Cause: err}
	case strings.Contains(s, "FOREIGN KEY constraint failed"):
		return &Error{Sentinel: ErrForeignKey, Cause: err}
	case strings.Contains(s, "CHECK constraint failed"), strings.Contains(s, "UNIQUE constraint failed"):
		return &Error{Sentinel: ErrConstraintViolate, Cause: err}
	}
	return err
}

// Error pairs a sentinel with the driver error that produced it.
type Error struct {
	Sentinel error
	Cause    error
}

func (e *Error) Error() string {
	return e.Sentinel.Error() + ": " + e.Cause.Error()
}

func (e *Error) Is(target error) bool { return target == e.Sentinel }

func (e *Error) Unwrap() error { return e.Cause }
