package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USER001"
	ErrCodeDuplicateUsername  = "USER002"
	ErrCodeDuplicateEmail     = "USER003"
	ErrCodeInvalidCredentials = "USER004"
	ErrCodeInactiveUser       = "USER005"
	ErrCodeInvalidInput       = "USER006"
	ErrCodeInvalidToken       = "USER007"
)

// Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// UserError custom error type
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewDuplicateUsernameError() *UserError {
	return &UserError{
		Code:    ErrCodeDuplicateUsername,
		Message: "Username already taken",
		Err:     ErrDuplicateUsername,
	}
}

func NewDuplicateEmailError() *UserError {
	return &UserError{
		Code:    ErrCodeDuplicateEmail,
		Message: "Email already registered",
		Err:     ErrDuplicateEmail,
	}
}

func NewInvalidCredentialsError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid username or password",
		Err:     ErrInvalidCredentials,
	}
}

func NewInactiveUserError() *UserError {
	return &UserError{
		Code:    ErrCodeInactiveUser,
		Message: "User account is deactivated",
		Err:     ErrInactiveUser,
	}
}

func NewInvalidInputError(err error) *UserError {
	return &UserError{
		Code:    ErrCodeInvalidInput,
		Message: "Invalid user input",
		Err:     err,
	}
}

func NewInvalidTokenError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidToken,
		Message: "Invalid or expired token",
		Err:     ErrInvalidToken,
	}
}
