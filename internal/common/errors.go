// Package common defines shared sentinel errors and small helpers used across
// budgetkeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Account errors.
	ErrDuplicateEmail = errors.New("that email is already registered")
	ErrUserNotFound   = errors.New("no account found for that email")
	ErrBadPassword    = errors.New("incorrect password")

	// Form errors. Field-specific failures wrap ErrValidation.
	ErrValidation        = errors.New("validation error")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrWeakPassword      = errors.New("password is too short")
	ErrFutureDateOfBirth = errors.New("date of birth cannot be in the future")

	// Session errors.
	ErrNoSession    = errors.New("no active session")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
