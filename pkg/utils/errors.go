package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewValidationError returns an error for a request that failed validation.
func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewScanError returns an error for a mailbox scan that could not run.
func NewScanError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Mailbox scan failed",
		Detail:  detail,
	}
}

// NewTaskNotFoundError returns an error for an unknown background task.
func NewTaskNotFoundError(processID string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Task not found",
		Detail:  processID,
	}
}
