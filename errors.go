package shmsync

import "github.com/a2y-d5l/go-shmsync/word"

var (
	// ErrInvalidArgument reports a malformed handle, buffer or token.
	ErrInvalidArgument = word.ErrInvalidArgument
	// ErrIllegalState reports a token or protocol in the wrong state.
	ErrIllegalState = word.ErrIllegalState
	// ErrRange reports a semaphore count pushed past its maximum.
	ErrRange = word.ErrRange
)
