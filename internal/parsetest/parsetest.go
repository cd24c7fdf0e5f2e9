// Package parsetest provides the shared test helpers every parser
// package's own _test.go files build on: a fresh Lexer over a literal
// string, and an assertion that a Word is statically evaluable.
//
// Grounded on wudi-hey parser/testutils/{builder,assertions}.go,
// adapted from a PHP-parser test harness (which builds a *parser.Parser
// directly from source text) to this module's split Lexer/Arena
// construction, since every parser package here shares a Lexer rather
// than owning one outright.
package parsetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/arena"
	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/lexer"
	"github.com/oilshell/oil-parser/linereader"
	"github.com/oilshell/oil-parser/wordparser"
)

// NewLexer builds a Lexer over text backed by a fresh Arena, the
// construction every parser-package test in this module otherwise
// repeats by hand. Use this when the test never needs the Arena itself
// (boolparser/exprparser's constructors don't take one).
func NewLexer(text string) *lexer.Lexer {
	return lexer.New(linereader.NewString(text), arena.New())
}

// NewArenaLexer builds a fresh Arena and a Lexer sharing it, returning
// both. cmdparser.New takes the Arena separately from the Lexer so it
// can re-share it with a sub-parser (alias/here-doc re-lexing); a token
// Span is only resolvable through the same Arena instance the Lexer
// that produced it was built with, so a test driving a cmdparser.Parser
// must pass this same Arena to both, not two independently-constructed
// ones.
func NewArenaLexer(text string) (*arena.Arena, *lexer.Lexer) {
	a := arena.New()
	return a, lexer.New(linereader.NewString(text), a)
}

// RequireLitText asserts w is statically evaluable (no command
// substitution, no unexpanded variable) and returns its value, failing
// the test immediately otherwise.
func RequireLitText(t *testing.T, w ast.Word) string {
	t.Helper()
	s, ok := wordparser.StaticEval(w, nil)
	require.True(t, ok, "word must be statically evaluable: %#v", w)
	return s
}
