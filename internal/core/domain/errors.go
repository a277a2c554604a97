package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Wire error codes returned in the "error" field of failure envelopes.
const (
	CodeMissingFields       = "missing_fields"
	CodeMissingCredentials  = "missing_credentials"
	CodeInvalidEmail        = "invalid_email"
	CodeWeakPassword        = "weak_password"
	CodeInvalidAmount       = "invalid_amount"
	CodeInvalidAmountFormat = "invalid_amount_format"
	CodeUserExists          = "user_exists"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeNotFound            = "not_found"
	CodeNoChanges           = "no_changes"
	CodeUserNotFound        = "user_not_found"
)

// Sentinel errors returned by repositories. Services translate them into
// coded APIErrors before they reach the transport layer.
var (
	ErrNotFound     = errors.New("document not found")
	ErrNoChanges    = errors.New("no changes applied")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// APIError is a client-facing failure with a stable wire code. Fields is
// populated only for missing_fields errors.
type APIError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsAPIError unwraps err into an *APIError when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// MissingFields reports required fields absent from a payload. A single
// field reads "<field> is required"; several are listed together.
func MissingFields(fields ...string) *APIError {
	msg := ""
	if len(fields) == 1 {
		msg = fields[0] + " is required"
	} else {
		msg = "The following fields are required: " + strings.Join(fields, ", ")
	}
	return &APIError{Code: CodeMissingFields, Message: msg, Fields: fields}
}

func MissingCredentials() *APIError {
	return &APIError{Code: CodeMissingCredentials, Message: "Email and password are required"}
}

func InvalidEmail() *APIError {
	return &APIError{Code: CodeInvalidEmail, Message: "Invalid email format"}
}

func WeakPassword() *APIError {
	return &APIError{Code: CodeWeakPassword, Message: "Password must be at least 6 characters long"}
}

func InvalidCredentials() *APIError {
	return &APIError{Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

func UserExists() *APIError {
	return &APIError{Code: CodeUserExists, Message: "User with this email already exists"}
}

func UserNotFound() *APIError {
	return &APIError{Code: CodeUserNotFound, Message: "User not found"}
}

// NotFound reports a missing resource by its display title, e.g.
// "Project not found".
func NotFound(title string) *APIError {
	return &APIError{Code: CodeNotFound, Message: title + " not found"}
}

// NoChanges reports an update that matched a document but altered
// nothing.
func NoChanges(title string) *APIError {
	return &APIError{Code: CodeNoChanges, Message: "No changes made to " + strings.ToLower(title)}
}
