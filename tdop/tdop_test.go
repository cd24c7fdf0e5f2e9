package tdop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/arena"
	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/lexer"
	"github.com/oilshell/oil-parser/linereader"
)

func newParser(t *testing.T, text string) *Parser {
	t.Helper()
	lex := lexer.New(linereader.NewString(text), arena.New())
	p, err := New(lex)
	require.NoError(t, err)
	return p
}

func TestTdop_PrecedenceClimbsMultBeforeAdd(t *testing.T) {
	p := newParser(t, "1+2*3")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	bin, ok := expr.(*ast.ArithBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithPlus, bin.Op)

	left, ok := bin.Left.(*ast.ArithWord)
	require.True(t, ok)
	assert.Equal(t, "1", left.Tok.Lit)

	right, ok := bin.Right.(*ast.ArithBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithStar, right.Op)
}

func TestTdop_Parenthesized(t *testing.T) {
	p := newParser(t, "(1+2)*3")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	bin, ok := expr.(*ast.ArithBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithStar, bin.Op)

	_, ok = bin.Left.(*ast.ArithBinary)
	assert.True(t, ok, "grouping must be transparent to the resulting AST shape")
}

func TestTdop_UnaryMinus(t *testing.T) {
	p := newParser(t, "-5")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)

	un, ok := expr.(*ast.ArithUnary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithMinus, un.Op)
	operand, ok := un.Operand.(*ast.ArithWord)
	require.True(t, ok)
	assert.Equal(t, "5", operand.Tok.Lit)
}

func TestTdop_Name(t *testing.T) {
	p := newParser(t, "i")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)
	name, ok := expr.(*ast.ArithWord)
	require.True(t, ok)
	assert.Equal(t, "i", name.Tok.Lit)
}

func TestTdop_ParseTriple(t *testing.T) {
	// ParseTriple is entered with cur already on the first clause token
	// (the grammar's caller has already consumed the opening '((').
	p := newParser(t, "i=0; i<3; i++")
	init, cond, update, err := p.ParseTriple()
	require.NoError(t, err)

	initBin, ok := init.(*ast.ArithBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithAssign, initBin.Op)

	condBin, ok := cond.(*ast.ArithBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithLess, condBin.Op)

	updateUn, ok := update.(*ast.ArithUnary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithIncr, updateUn.Op)
	assert.True(t, updateUn.Postfix)
}

func TestTdop_ComparisonOperators(t *testing.T) {
	tests := []struct {
		in string
		op ast.TokenKind
	}{
		{"a<b", ast.ArithLess},
		{"a>b", ast.ArithGreater},
		{"a<=b", ast.ArithLessEq},
		{"a>=b", ast.ArithGreaterEq},
		{"a==b", ast.ArithEqEq},
		{"a!=b", ast.ArithNotEq},
	}
	for _, tt := range tests {
		p := newParser(t, tt.in)
		expr, err := p.ParseExpression(Lowest)
		require.NoError(t, err, tt.in)
		bin, ok := expr.(*ast.ArithBinary)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.op, bin.Op, tt.in)
	}
}

func TestTdop_PrefixIncrement(t *testing.T) {
	p := newParser(t, "++i")
	expr, err := p.ParseExpression(Lowest)
	require.NoError(t, err)
	un, ok := expr.(*ast.ArithUnary)
	require.True(t, ok)
	assert.Equal(t, ast.ArithIncr, un.Op)
	assert.False(t, un.Postfix)
}

func TestTdop_ParseTripleAllowsEmptyClauses(t *testing.T) {
	// ";;)" mimics bash's all-clauses-empty `(( ;; ))`, with the closing
	// ')' standing in for where the real grammar's `))` would resync.
	p := newParser(t, ";;)")
	init, cond, update, err := p.ParseTriple()
	require.NoError(t, err)
	assert.Nil(t, init)
	assert.Nil(t, cond)
	assert.Nil(t, update)
}
