package core

// Error codes for domain errors carried on error events.
const (
	ErrCodeInvalidMessage     = "invalid_message"
	ErrCodePersistenceFailure = "persistence_failure"
	ErrCodeBadRequest         = "bad_request"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// asCoreError converts any error into a CoreError for emission to clients.
func asCoreError(err error) *CoreError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CoreError); ok {
		return ce
	}
	return &CoreError{Code: ErrCodeBadRequest, Message: err.Error()}
}
