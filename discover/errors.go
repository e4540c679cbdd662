package discover

// ErrorCode defines error types for engine operations
type ErrorCode string

const (
	// ErrNotFound represents the engine-level outcome where no strategy
	// produced any candidate. Discover reports it as ok=false rather than
	// an error; DiscoverAll uses the code for diagnostics only.
	ErrNotFound ErrorCode = "NotFound"

	// ErrInvalidConfig represents malformed engine configuration
	ErrInvalidConfig ErrorCode = "InvalidConfig"

	// ErrInvalidDomain represents a domain string that cannot be normalized
	ErrInvalidDomain ErrorCode = "InvalidDomain"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
