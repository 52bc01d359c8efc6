// Package user defines the managed user record and its validation rules.
package user

import (
	apperrors "github.com/louisbranch/userdesk/internal/platform/errors"
)

var (
	// ErrEmptyFirstName indicates a missing first name.
	ErrEmptyFirstName = apperrors.WithMetadata(apperrors.CodeUserFirstNameEmpty, "first name is required", map[string]string{"field": "firstName"})
	// ErrEmptyLastName indicates a missing last name.
	ErrEmptyLastName = apperrors.WithMetadata(apperrors.CodeUserLastNameEmpty, "last name is required", map[string]string{"field": "lastName"})
	// ErrInvalidID indicates an id that cannot address a stored record.
	ErrInvalidID = apperrors.New(apperrors.CodeUserInvalidID, "user id must be positive")
)

// User is one managed user record.
//
// The ID is assigned by the record store on insert and immutable afterwards.
// Both name fields are stored verbatim; validation only rejects empty values.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Validate checks the name fields required on every create and update.
func (u User) Validate() error {
	if u.FirstName == "" {
		return ErrEmptyFirstName
	}
	if u.LastName == "" {
		return ErrEmptyLastName
	}
	return nil
}

// ValidateStored checks a record that must already carry an assigned id.
func (u User) ValidateStored() error {
	if u.ID <= 0 {
		return ErrInvalidID
	}
	return u.Validate()
}
