package exprparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/internal/parsetest"
	"github.com/oilshell/oil-parser/lexer"
)

// stubWordsReader only backs the one array-literal test below; every
// other test never reaches a words/command splice and passes nil for
// both collaborators, same as tdop/boolparser's parser-local tests do.
type stubWordsReader struct {
	words []ast.Word
}

func (s *stubWordsReader) ReadWords(mode lexer.Mode) ([]ast.Word, error) {
	return s.words, nil
}

func newParser(t *testing.T, text string) *Parser {
	t.Helper()
	p, err := New(parsetest.NewLexer(text), nil, nil)
	require.NoError(t, err)
	return p
}

func TestExprParser_PrecedenceClimbsMultBeforeAdd(t *testing.T) {
	p := newParser(t, "1+2*3")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	bin, ok := expr.(*ast.OilBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ExprPlus, bin.Op)

	right, ok := bin.Right.(*ast.OilBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ExprStar, right.Op)
}

func TestExprParser_UnaryMinus(t *testing.T) {
	p := newParser(t, "-5")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	un, ok := expr.(*ast.OilUnary)
	require.True(t, ok)
	assert.Equal(t, ast.ExprMinus, un.Op)
	lit, ok := un.Operand.(*ast.OilLiteral)
	require.True(t, ok)
	assert.Equal(t, "5", lit.Tok.Lit)
}

func TestExprParser_VarRef(t *testing.T) {
	p := newParser(t, "x")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	v, ok := expr.(*ast.OilVar)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
}

func TestExprParser_AttrAndIndexArePostfix(t *testing.T) {
	p := newParser(t, "x.foo[0]")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	idx, ok := expr.(*ast.OilIndex)
	require.True(t, ok)
	attr, ok := idx.Recv.(*ast.OilAttr)
	require.True(t, ok)
	assert.Equal(t, "foo", attr.Attr)
	_, ok = attr.Recv.(*ast.OilVar)
	require.True(t, ok)
}

func TestExprParser_Call(t *testing.T) {
	p := newParser(t, "f(1, 2)")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	call, ok := expr.(*ast.OilCall)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.OilVar)
	require.True(t, ok)
	assert.Equal(t, "f", callee.Name)
	require.Len(t, call.Args, 2)
}

func TestExprParser_SingleQuotedLiteral(t *testing.T) {
	p := newParser(t, "'hello'")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	lit, ok := expr.(*ast.OilLiteral)
	require.True(t, ok)
	assert.Equal(t, ast.ExprString, lit.Tok.Kind)
	assert.Equal(t, "hello", lit.Tok.Lit)
}

func TestExprParser_VarSub(t *testing.T) {
	p := newParser(t, "$x")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	vs, ok := expr.(*ast.OilVarSub)
	require.True(t, ok)
	part, ok := vs.Part.(*ast.SimpleVarSub)
	require.True(t, ok)
	assert.Equal(t, "x", part.Tok.Lit)
}

func TestExprParser_ArrayLiteralSplicesWords(t *testing.T) {
	words := []ast.Word{&ast.TokenWord{Tok: ast.Token{Kind: ast.LitChars, Lit: "a"}}}
	p, err := New(parsetest.NewLexer("@[a]"), &stubWordsReader{words: words}, nil)
	require.NoError(t, err)

	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	arr, ok := expr.(*ast.OilArrayLiteral)
	require.True(t, ok)
	assert.Equal(t, words, arr.Words)
}
