package errors

import "net/http"

// NewHTTPError returns a new HTTPError with the given code, message, and status code.
// If statusCode is 0, it defaults to http.StatusBadRequest.
func NewHTTPError(code int, message string, statusCode int) *HTTPError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewBadRequestHTTPError returns a new 400 Bad Request error.
func NewBadRequestHTTPError(message string) *HTTPError {
	return &HTTPError{
		Code:       400,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnauthorizedHTTPError returns a new unauthorized HTTP error.
func NewUnauthorizedHTTPError() *HTTPError {
	return &HTTPError{
		Code:       401,
		Message:    "Unauthorized",
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenHTTPError returns a new forbidden HTTP error.
func NewForbiddenHTTPError(message string) *HTTPError {
	if message == "" {
		message = "Forbidden"
	}
	return &HTTPError{
		Code:       403,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFoundHTTPError returns a new 404 Not Found error.
func NewNotFoundHTTPError(message string) *HTTPError {
	if message == "" {
		message = "Not Found"
	}
	return &HTTPError{
		Code:       404,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// Error returns the error message.
func (e *HTTPError) Error() string {
	return e.Message
}
