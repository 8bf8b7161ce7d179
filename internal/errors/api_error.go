package errors

import "net/http"

type APIError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func New(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func Internal(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return New(http.StatusInternalServerError, "internal_error", message)
}

func BadRequest(code, message string) *APIError {
	return New(http.StatusBadRequest, code, message)
}

func Unauthorized(message string) *APIError {
	if message == "" {
		message = "unauthorized"
	}
	return New(http.StatusUnauthorized, "unauthorized", message)
}

// NotFound carries the missing item's id in Details.
func NotFound(code, message, id string) *APIError {
	err := New(http.StatusNotFound, code, message)
	if id != "" {
		err.Details = map[string]string{"id": id}
	}
	return err
}

// Unchanged reports a valid request that had nothing to act on, such as
// lapping a paused stopwatch.
func Unchanged(code, message string) *APIError {
	return New(http.StatusConflict, code, message)
}
