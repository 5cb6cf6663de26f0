package predictor

// notLoadedError signals that no model artifact is loaded, for 503 mapping.
type notLoadedError struct{}

func (notLoadedError) Error() string { return "Model not loaded" }

// ErrNotLoaded returns the error served while the service runs degraded.
func ErrNotLoaded() error { return notLoadedError{} }

// IsNotLoaded reports whether err means no model is loaded (return 503).
func IsNotLoaded(err error) bool {
	_, ok := err.(notLoadedError)
	return ok
}

// invalidRequestError signals a malformed payload, for 400 mapping.
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return e.msg }

// ErrInvalidRequest constructs an invalidRequestError. An empty msg yields
// the generic reason.
func ErrInvalidRequest(msg string) error {
	if msg == "" {
		msg = "Invalid request"
	}
	return invalidRequestError{msg: msg}
}

// IsInvalidRequest reports whether err indicates a bad payload (return 400).
func IsInvalidRequest(err error) bool {
	_, ok := err.(invalidRequestError)
	return ok
}
