package lock

// holder is the view a Token has of the mutex it holds, whatever its width.
type holder interface {
	release() bool
	relock(tok *Token)
	isLocked() bool
}

// Token is the capability to release a held Mutex. The zero value is an
// empty token, not associated with any lock.
//
// A Token belongs to one agent at a time; it must not be used from two
// agents concurrently.
type Token struct {
	held holder
}

// Locked reports whether the token is associated with a mutex whose word is
// locked.
func (t *Token) Locked() bool {
	return t != nil && t.held != nil && t.held.isLocked()
}

// Unlock releases the associated mutex, wakes one agent waiting for it and
// empties the token. It returns false, and changes nothing, when the token is
// empty or the word was not locked.
func (t *Token) Unlock() bool {
	if t == nil || t.held == nil {
		return false
	}
	if !t.held.release() {
		return false
	}
	t.held = nil
	return true
}

// Dispose is Unlock without a result, for use with defer. It is safe on a nil
// or empty token:
//
//	tok, _ := mu.Lock(nil)
//	defer tok.Dispose()
func (t *Token) Dispose() {
	t.Unlock()
}
