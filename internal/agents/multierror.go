package agents

import (
	"fmt"
	"strings"
	"sync"
)

// MultiError collects the failures of several agents. It is safe for
// concurrent use.
type MultiError struct {
	mu     sync.Mutex
	errors []error
}

// Add records err. Nil errors are ignored.
func (me *MultiError) Add(err error) {
	if err == nil {
		return
	}
	me.mu.Lock()
	me.errors = append(me.errors, err)
	me.mu.Unlock()
}

// Errors returns a copy of the recorded errors in the order they were added.
func (me *MultiError) Errors() []error {
	me.mu.Lock()
	defer me.mu.Unlock()
	return append([]error(nil), me.errors...)
}

// Unwrap exposes the recorded errors to errors.Is and errors.As.
func (me *MultiError) Unwrap() []error {
	return me.Errors()
}

// Count returns the number of recorded errors.
func (me *MultiError) Count() int {
	me.mu.Lock()
	defer me.mu.Unlock()
	return len(me.errors)
}

func (me *MultiError) Error() string {
	errs := me.Errors()
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}

	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = fmt.Sprintf("[%d] %s", i+1, err)
	}
	return fmt.Sprintf("%d agents failed:\n%s", len(errs), strings.Join(messages, "\n"))
}

// ToError returns nil when nothing was recorded, otherwise me.
func (me *MultiError) ToError() error {
	if me.Count() == 0 {
		return nil
	}
	return me
}
