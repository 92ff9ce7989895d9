package allocation

import "fmt"

// ValidationError means the request was rejected locally, before any network
// call was made.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid allocation request: %s", e.Message)
}

// NetworkError means no response reached the client at all.
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("allocation service unreachable: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// RateLimitedError means the service answered 429. Callers surface this with
// a distinct retry-later message instead of the generic API failure.
type RateLimitedError struct{}

func (e RateLimitedError) Error() string {
	return "allocation service rate limit hit - try again later"
}

// ApiError is any other non-2xx status. Detail carries the server's message
// when the error body was parseable.
type ApiError struct {
	StatusCode int
	Detail     string
}

func (e ApiError) Error() string {
	return fmt.Sprintf("allocation service returned %d: %s", e.StatusCode, e.Detail)
}

// MalformedResponseError means a 2xx body matched neither wire shape, or a
// matched shape was missing required fields.
type MalformedResponseError struct {
	Reason string
}

func (e MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed allocation response: %s", e.Reason)
}
