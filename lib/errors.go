package lib

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Order lifecycle errors
var (
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidState   = errors.New("operation not valid for current status")
	ErrAmountMismatch = errors.New("submitted amount does not match order total")
	ErrStorage        = errors.New("storage failure")
)

// MapPgError translates driver-level SQLSTATE codes to sentinel errors.
func MapPgError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
