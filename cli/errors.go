package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	OpenBrowserFailed ErrorCode = "OpenBrowserFailed"
	PagerFailed       ErrorCode = "PagerFailed"
	OutputFailed      ErrorCode = "OutputFailed"
	ServeFailed       ErrorCode = "ServeFailed"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
