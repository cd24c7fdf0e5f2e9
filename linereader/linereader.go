// Package linereader implements the LineReader external interface
// spec.md §6 requires: file-backed, string-backed, virtual (pre-
// supplied lines for here-docs), disallowed (fails past a blame token,
// for finite $(...) input), and an interactive variant backing a REPL.
//
// Grounded on wudi-hey's whole-string Lexer.input model (lexer.go),
// generalized to a line-at-a-time reader per spec.md §6, plus
// duhaifeng-light-lang's cmd/light/repl.go for the readline-backed
// Interactive variant (see SPEC_FULL.md §9.5).
package linereader

// LineReader is the interface every component consumes. Each call
// advances the cursor; GetLine never re-delivers a line once consumed.
// The line id it returns is a reader-local sequence number; callers
// hand the returned text to Arena.AddLine to get the Arena's own line
// id for span bookkeeping.
type LineReader interface {
	// GetLine returns the next line's reader-local id, text (including
	// its trailing newline, if present in the source), byte offset of
	// the line's start within this reader's source, and ok=false at EOF
	// (in which case id/text/offset are the zero values).
	GetLine() (lineID int, text string, offset int, ok bool)
}
