// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// User validation errors
	CodeUserFirstNameEmpty Code = "USER_FIRST_NAME_EMPTY"
	CodeUserLastNameEmpty  Code = "USER_LAST_NAME_EMPTY"
	CodeUserInvalidID      Code = "USER_INVALID_ID"

	// Storage errors
	CodeNotFound    Code = "NOT_FOUND"
	CodePersistence Code = "PERSISTENCE_FAILED"
)
