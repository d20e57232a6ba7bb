package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound   = "BOOK001"
	ErrCodeDuplicateTitle = "BOOK002"
	ErrCodeInvalidInput   = "BOOK003"
	ErrCodeSummaryFailed  = "BOOK004"
)

// Errors
var (
	ErrBookNotFound = errors.New("book not found")
)

// BookError custom error type
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewInvalidInputError(err error) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidInput,
		Message: "Invalid book input",
		Err:     err,
	}
}
