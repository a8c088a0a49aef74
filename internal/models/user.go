// Package models defines the records persisted by budgetkeeper: users with
// their profile, ledger transactions, and aggregate totals.
package models

import (
	"errors"
	"strings"
	"time"
)

var ErrIncompleteUser = errors.New("user record is missing id, email or password hash")

// Profile holds the optional personal fields collected at signup.
type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	DOB       Date   `json:"dob,omitzero"`
}

// User is one registered account. It is created on signup and never changed.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Profile
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// The result is the uniqueness key for accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayName prefers "First Last", then "First", then the local part of the email.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// Validate checks the fields every stored user must carry.
func (u User) Validate() error {
	if u.ID == "" || u.Email == "" || u.PasswordHash == "" {
		return ErrIncompleteUser
	}
	return nil
}
