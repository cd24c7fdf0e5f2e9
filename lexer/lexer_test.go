package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/arena"
	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/linereader"
)

func newLexer(text string) *Lexer {
	a := arena.New()
	return New(linereader.NewString(text), a)
}

func TestLexer_ShCommandBasicTokens(t *testing.T) {
	lex := newLexer("ls /home\n")

	tests := []struct {
		kind ast.TokenKind
		lit  string
	}{
		{ast.LitChars, "ls"},
		{ast.WSSpace, " "},
		{ast.LitChars, "/home"},
		{ast.OpNewline, "\n"},
		{ast.EofReal, ""},
	}
	for i, tt := range tests {
		tok, err := lex.Read(ShCommand)
		require.NoError(t, err, "token %d", i)
		assert.Equal(t, tt.kind, tok.Kind, "token %d", i)
		assert.Equal(t, tt.lit, tok.Lit, "token %d", i)
	}
}

func TestLexer_KeywordRecognizedAtWordBoundary(t *testing.T) {
	lex := newLexer("if true\n")
	tok, err := lex.Read(ShCommand)
	require.NoError(t, err)
	assert.Equal(t, ast.KwIf, tok.Kind)
	assert.Equal(t, "if", tok.Lit)
}

func TestLexer_LookAheadDoesNotAdvance(t *testing.T) {
	lex := newLexer("ls /\n")

	peeked, err := lex.LookAhead(ShCommand)
	require.NoError(t, err)
	assert.Equal(t, ast.LitChars, peeked.Kind)
	assert.Equal(t, "ls", peeked.Lit)

	// A second LookAhead call must return the exact same token, proving
	// the cursor did not move.
	peeked2, err := lex.LookAhead(ShCommand)
	require.NoError(t, err)
	assert.Equal(t, peeked, peeked2)

	read, err := lex.Read(ShCommand)
	require.NoError(t, err)
	assert.Equal(t, peeked, read, "Read after LookAhead must deliver the peeked token")
}

func TestLexer_PushHintRewritesNextTokenOnce(t *testing.T) {
	lex := newLexer("))\n")

	lex.PushHint(ast.RightSubshell, ast.RightExtGlob)
	tok, err := lex.Read(ShCommand)
	require.NoError(t, err)
	assert.Equal(t, ast.RightExtGlob, tok.Kind, "hint must rewrite the first ')'")

	tok, err = lex.Read(ShCommand)
	require.NoError(t, err)
	assert.Equal(t, ast.RightSubshell, tok.Kind, "hint is single-shot and must not apply twice")
}

func TestLexer_EmitCompDummyInsertsBeforeEOF(t *testing.T) {
	lex := newLexer("ls\n")
	lex.EmitCompDummy()

	var kinds []ast.TokenKind
	for {
		tok, err := lex.Read(ShCommand)
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
		if tok.Kind == ast.EofReal {
			break
		}
	}
	require.GreaterOrEqual(t, len(kinds), 2)
	assert.Equal(t, ast.LitCompDummy, kinds[len(kinds)-2], "dummy must appear immediately before Eof_Real")
	assert.Equal(t, ast.EofReal, kinds[len(kinds)-1])
}

func TestLexer_MultilineAdvancesLineID(t *testing.T) {
	a := arena.New()
	lex := New(linereader.NewString("a\nb\n"), a)

	tok1, err := lex.Read(ShCommand)
	require.NoError(t, err)
	sp1, ok := a.GetLineSpan(tok1.Span)
	require.True(t, ok)

	// consume the newline
	_, err = lex.Read(ShCommand)
	require.NoError(t, err)

	tok2, err := lex.Read(ShCommand)
	require.NoError(t, err)
	sp2, ok := a.GetLineSpan(tok2.Span)
	require.True(t, ok)

	assert.NotEqual(t, sp1.LineID, sp2.LineID, "tokens from different source lines must carry different line ids")
}

func TestModeStack_PushPeekPop(t *testing.T) {
	s := NewModeStack()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, Expr, s.Peek(), "an empty stack reports Expr as the implicit base mode")

	s.Push(Regex)
	s.Push(CharClass)
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, CharClass, s.Peek())

	assert.Equal(t, CharClass, s.Pop())
	assert.Equal(t, Regex, s.Peek())
	assert.Equal(t, Regex, s.Pop())
	assert.True(t, s.IsEmpty())
}

func TestModeStack_PopOnEmptyReturnsExpr(t *testing.T) {
	s := NewModeStack()
	assert.Equal(t, Expr, s.Pop())
}
