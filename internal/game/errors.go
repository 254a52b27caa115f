package game

// InvalidOperationError is a business-rule violation: answering your own
// riddle, answering a solved riddle, or answering past the deadline. The
// reason is safe to show to the caller.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return e.Reason
}

func invalidOperation(reason string) error {
	return &InvalidOperationError{Reason: reason}
}
