package linereader

import "errors"

// ErrDisallowedRead is returned (wrapped) by Disallowed.GetLine once the
// underlying reader has been asked for more input than the blame token
// allows — used for `$(...)` command substitution, where the inner
// CommandParser must not read past the closing paren's line, even if
// the outer source has more lines after it.
var ErrDisallowedRead = errors.New("linereader: read past end of finite command-sub input")

// Disallowed wraps another LineReader and fails once it has been asked
// for one more line than `limit` (0 means "no further reads allowed at
// all", used once the inner reader has already consumed everything up
// to the closing token and the CommandParser asks for one line too
// many, which should never happen in a well-formed program).
type Disallowed struct {
	inner LineReader
	limit int
	read  int
	err   error
}

// NewDisallowed wraps inner so it can be read at most limit more times.
func NewDisallowed(inner LineReader, limit int) *Disallowed {
	return &Disallowed{inner: inner, limit: limit}
}

// Err returns the error that caused the last failed GetLine, if any.
func (r *Disallowed) Err() error { return r.err }

func (r *Disallowed) GetLine() (int, string, int, bool) {
	if r.read >= r.limit {
		r.err = ErrDisallowedRead
		return 0, "", 0, false
	}
	r.read++
	return r.inner.GetLine()
}
