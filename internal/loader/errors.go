package loader

// Error codes surfaced to the API layer. Keep these values stable; they map
// directly onto response error codes.
const (
	CodeUnreadableFile    = "UNREADABLE_FILE"
	CodeNoValidTimestamps = "NO_VALID_TIMESTAMPS"
)

// LoadError is a user-recoverable load failure: the upload itself was bad,
// not the process. Handlers map Code onto an HTTP error response.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return e.Message
}
