package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	NoDomainSpecified ErrorCode = "NoDomainSpecified"
	InvalidTypeFlag   ErrorCode = "InvalidTypeFlag"
	InvalidArguments  ErrorCode = "InvalidArguments"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
