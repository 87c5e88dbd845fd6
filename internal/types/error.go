package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	BadRequest           ErrorCode = "BAD_REQUEST"
	NotFound             ErrorCode = "NOT_FOUND"
	Unauthenticated      ErrorCode = "UNAUTHENTICATED"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	InvalidAmount        ErrorCode = "INVALID_AMOUNT"
	TransferFailure      ErrorCode = "TRANSFER_FAILURE"
	ReentrantCall        ErrorCode = "REENTRANT_CALL"
	TooManyRequests      ErrorCode = "TOO_MANY_REQUESTS"
)

func (c ErrorCode) String() string {
	return string(c)
}

// Error is the error type returned by every ledger operation. StatusCode is
// the HTTP status the API layer answers with.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

func NewValidationFailedError(err error) *Error {
	return NewError(http.StatusBadRequest, ValidationError, err)
}

func NewUnauthorizedError(caller, operation string) *Error {
	return NewError(
		http.StatusForbidden,
		Unauthorized,
		fmt.Errorf("caller %q is not allowed to %s", caller, operation),
	)
}

func NewInvalidAmountError(field string) *Error {
	return NewError(
		http.StatusBadRequest,
		InvalidAmount,
		fmt.Errorf("%s must be greater than zero", field),
	)
}

func NewTransferFailureError(err error) *Error {
	return NewError(http.StatusBadGateway, TransferFailure, fmt.Errorf("transfer failed: %w", err))
}

func NewReentrantCallError(operation string) *Error {
	return NewError(
		http.StatusConflict,
		ReentrantCall,
		fmt.Errorf("%s called while a transfer is in progress", operation),
	)
}

// HasErrorCode reports whether err wraps an *Error with the given code.
func HasErrorCode(err error, code ErrorCode) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.ErrorCode == code
	}
	return false
}
