package fetch

// ErrorCode defines error types for fetch operations
type ErrorCode string

const (
	// ErrInvalidTarget represents URLs recognized as auth/login surfaces
	// before any request is made
	ErrInvalidTarget ErrorCode = "InvalidTarget"

	// ErrAuthWall represents a login wall detected in a fetched body
	ErrAuthWall ErrorCode = "AuthWall"

	// ErrRateLimited represents 429 responses that survived all retries
	ErrRateLimited ErrorCode = "RateLimited"

	// ErrUpstreamServer represents 5xx responses that survived all retries
	ErrUpstreamServer ErrorCode = "UpstreamServer"

	// ErrForbidden represents persistent 403 responses across every
	// candidate user agent
	ErrForbidden ErrorCode = "Forbidden"

	// ErrRequestFailed represents transport-level failures
	ErrRequestFailed ErrorCode = "RequestFailed"

	// ErrBadStatus represents non-retryable unexpected status codes
	ErrBadStatus ErrorCode = "BadStatus"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
