package errorx

import "net/http"

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Draw codes
	InsufficientMembers Code = 200001
	NoValidAssignment   Code = 200002
	ConcurrencyConflict Code = 200003
)

// HTTPStatus returns the status code the router writes for an error code.
func HTTPStatus(code Code) int {
	switch code {
	case BadRequest:
		return http.StatusBadRequest
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case AlreadyExists, ConcurrencyConflict:
		return http.StatusConflict
	case Unavailable:
		return http.StatusServiceUnavailable
	case NotImplemented:
		return http.StatusNotImplemented
	case TooManyRequests:
		return http.StatusTooManyRequests
	case InsufficientMembers, NoValidAssignment:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
