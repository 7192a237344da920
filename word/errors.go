package word

import "errors"

var (
	// ErrInvalidArgument indicates a malformed handle or view, or a token used
	// where it cannot be.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState indicates shared state that contradicts the protocol, or
	// a token that is already associated with a lock.
	ErrIllegalState = errors.New("illegal state")
	// ErrRange indicates a count that would leave its permitted range.
	ErrRange = errors.New("value out of range")
)
