package boolparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/internal/parsetest"
	"github.com/oilshell/oil-parser/wordparser"
)

// newParser assumes the caller already consumed the opening `[[`, which
// is the contract this package documents (Parser.New primes only peek).
func newParser(t *testing.T, text string) *Parser {
	t.Helper()
	lex := parsetest.NewLexer(text)
	words := wordparser.New(lex, nil)
	p, err := New(lex, words)
	require.NoError(t, err)
	return p
}

func litText(t *testing.T, w ast.Word) string {
	t.Helper()
	return parsetest.RequireLitText(t, w)
}

func TestBoolParser_UnaryTest(t *testing.T) {
	p := newParser(t, "-z foo ]]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	un, ok := expr.(*ast.BoolUnaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.BoolUnaryZ, un.Op)
	assert.Equal(t, "foo", litText(t, un.Arg))
}

func TestBoolParser_BinaryTest(t *testing.T) {
	p := newParser(t, "foo == bar ]]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	bin, ok := expr.(*ast.BoolBinaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.BoolBinaryEqEq, bin.Op)
	assert.Equal(t, "foo", litText(t, bin.Left))
	assert.Equal(t, "bar", litText(t, bin.Right))
}

func TestBoolParser_BareWord(t *testing.T) {
	p := newParser(t, "foo ]]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	w, ok := expr.(*ast.BoolWord)
	require.True(t, ok)
	assert.Equal(t, "foo", litText(t, w.W))
}

func TestBoolParser_Not(t *testing.T) {
	p := newParser(t, "! -z foo ]]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	not, ok := expr.(*ast.BoolNot)
	require.True(t, ok)
	un, ok := not.Operand.(*ast.BoolUnaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.BoolUnaryZ, un.Op)
}

func TestBoolParser_AndOrPrecedence(t *testing.T) {
	// && binds tighter than ||: `a || b && c` parses as `a || (b && c)`.
	p := newParser(t, "-z a || -z b && -z c ]]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	or, ok := expr.(*ast.BoolAndOr)
	require.True(t, ok)
	assert.False(t, or.IsAnd)

	_, ok = or.Left.(*ast.BoolUnaryOp)
	require.True(t, ok)

	and, ok := or.Right.(*ast.BoolAndOr)
	require.True(t, ok)
	assert.True(t, and.IsAnd)
}

func TestBoolParser_Parenthesized(t *testing.T) {
	p := newParser(t, "( -z a || -z b ) && -z c ]]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	and, ok := expr.(*ast.BoolAndOr)
	require.True(t, ok)
	assert.True(t, and.IsAnd)

	or, ok := and.Left.(*ast.BoolAndOr)
	require.True(t, ok, "grouping must be transparent to the resulting AST shape")
	assert.False(t, or.IsAnd)
}

func TestBoolParser_RegexRHSIsOpaqueLiteral(t *testing.T) {
	p := newParser(t, "foo =~ ^[0-9]+$ ]]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	bin, ok := expr.(*ast.BoolBinaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.BoolBinaryTildeEq, bin.Op)
	assert.Equal(t, "^[0-9]+$", litText(t, bin.Right))
}
