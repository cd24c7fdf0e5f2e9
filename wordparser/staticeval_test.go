package wordparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/errors"
)

func literalWord(s string) *ast.CompoundWord {
	return &ast.CompoundWord{Parts: []ast.WordPart{
		&ast.LiteralPart{Tok: ast.Token{Kind: ast.LitChars, Lit: s}},
	}}
}

func TestStaticEval_TokenWord(t *testing.T) {
	w := &ast.TokenWord{Tok: ast.Token{Kind: ast.OpNewline, Lit: "\n"}}
	s, ok := StaticEval(w, nil)
	require.True(t, ok)
	assert.Equal(t, "\n", s)
}

func TestStaticEval_LiteralCompound(t *testing.T) {
	s, ok := StaticEval(literalWord("EOF"), nil)
	require.True(t, ok)
	assert.Equal(t, "EOF", s)
}

func TestStaticEval_QuotedLiteral(t *testing.T) {
	w := &ast.CompoundWord{Parts: []ast.WordPart{
		&ast.QuotedPart{Parts: []ast.WordPart{
			&ast.LiteralPart{Tok: ast.Token{Kind: ast.LitChars, Lit: "EOF"}},
		}},
	}}
	s, ok := StaticEval(w, nil)
	require.True(t, ok)
	assert.Equal(t, "EOF", s)
	assert.True(t, IsHereDocDelimQuoted(w))
}

func TestStaticEval_UnquotedHasNoDelimQuoting(t *testing.T) {
	w := literalWord("EOF")
	assert.False(t, IsHereDocDelimQuoted(w))
}

func TestStaticEval_FailsOnSubstitution(t *testing.T) {
	w := &ast.CompoundWord{Parts: []ast.WordPart{
		&ast.SimpleVarSub{Tok: ast.Token{Kind: ast.VSubName, Lit: "$x"}},
	}}
	reporter := errors.NewReporter()
	_, ok := StaticEval(w, reporter)
	assert.False(t, ok)
	assert.True(t, reporter.HasErrors())
	assert.Equal(t, errors.AssertionError, reporter.Errors()[0].Type)
}

func TestStaticEval_EscapedChar(t *testing.T) {
	w := &ast.CompoundWord{Parts: []ast.WordPart{
		&ast.LiteralPart{Tok: ast.Token{Kind: ast.LitEscapedChar, Lit: `\$`}},
	}}
	s, ok := StaticEval(w, nil)
	require.True(t, ok)
	assert.Equal(t, "$", s)
}

func TestStaticEval_TildeSubPart(t *testing.T) {
	bare := &ast.CompoundWord{Parts: []ast.WordPart{&ast.TildeSubPart{}}}
	s, ok := StaticEval(bare, nil)
	require.True(t, ok)
	assert.Equal(t, "~", s)

	named := &ast.CompoundWord{Parts: []ast.WordPart{&ast.TildeSubPart{UserName: "bob"}}}
	s, ok = StaticEval(named, nil)
	require.True(t, ok)
	assert.Equal(t, "~bob", s)
}
