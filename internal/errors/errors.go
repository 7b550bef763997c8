package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrForbidden is returned when the caller lacks the role or ownership
	// required for an operation. Distinct from not-found and validation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrOrderNotFound is returned when an order id does not resolve.
	ErrOrderNotFound = errors.New("order not found")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateBid is returned when an executor already has a bid on the order.
	ErrDuplicateBid = errors.New("bid already submitted for this order")
	// ErrBidRequired is returned when assigning an executor who has not bid.
	ErrBidRequired = errors.New("executor has no bid on this order")
	// ErrNotAnExecutor is returned when the assignment target is not an executor.
	ErrNotAnExecutor = errors.New("target user is not an executor")
	// ErrInvalidTransition is returned when the requested status change is not
	// in the transition table for the order's current status.
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrBudgetTooLow is returned when a budget or price proposal is below the floor.
	ErrBudgetTooLow = errors.New("amount is below the minimum of 1000")
	// ErrDeadlinePast is returned when a deadline is not in the future.
	ErrDeadlinePast = errors.New("deadline must be in the future")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Forbidden, not-found,
// conflict and validation outcomes each keep a distinct status and code.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateBid):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_BID")
	case errors.Is(err, ErrBidRequired):
		return NewHTTPError(http.StatusConflict, err.Error(), "BID_REQUIRED")
	case errors.Is(err, ErrNotAnExecutor):
		return NewHTTPError(http.StatusConflict, err.Error(), "NOT_AN_EXECUTOR")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrBudgetTooLow):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BUDGET_TOO_LOW")
	case errors.Is(err, ErrDeadlinePast):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DEADLINE_PAST")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
