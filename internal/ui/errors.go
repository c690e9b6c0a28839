package ui

// UIError carries presentation intent from command logic to main.go: whether
// cobra usage should be shown and whether the message was already rendered.
type UIError struct {
	Err           error
	SuppressUsage bool
	SilentExit    bool // message already written (e.g. styled notice on stderr)
}

func (e *UIError) Error() string {
	return e.Err.Error()
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps a pre-flight failure: show the error, skip usage.
func NewValidationError(err error) *UIError {
	return &UIError{Err: err, SuppressUsage: true}
}

// NewSilentError wraps an error whose message has already been presented.
func NewSilentError(err error) *UIError {
	return &UIError{Err: err, SuppressUsage: true, SilentExit: true}
}
