package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/arena"
)

func TestError_ErrorIncludesTypeAndMessage(t *testing.T) {
	e := NewParseError("unexpected token", 7)
	assert.Equal(t, "Parse Error: unexpected token (span 7)", e.Error())
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "Lex Error", LexError.String())
	assert.Equal(t, "Parse Error", ParseError.String())
	assert.Equal(t, "HereDoc Error", HereDocError.String())
	assert.Equal(t, "Alias Error", AliasError.String())
	assert.Equal(t, "Assertion Error", AssertionError.String())
}

func TestError_PrintFormatted(t *testing.T) {
	a := arena.New()
	lineID := a.AddLine("echo hi\n")
	span := a.AddLineSpan(lineID, 5, 2)

	e := NewParseError("bad word", span)
	out := e.PrintFormatted(a)
	assert.Contains(t, out, "Parse Error at line 1, column 6")
	assert.Contains(t, out, "echo hi")
	assert.Contains(t, out, "^^")
}

func TestError_PrintFormattedFallsBackWhenSpanUnresolvable(t *testing.T) {
	a := arena.New()
	e := NewLexError("bad byte", 99)
	out := e.PrintFormatted(a)
	assert.Equal(t, e.Error(), out)
}

func TestList_AddAndHasErrors(t *testing.T) {
	var l List
	assert.False(t, l.HasErrors())

	l.Add(NewParseError("first", 1))
	l.Add(NewLexError("second", 2))
	require.True(t, l.HasErrors())
	assert.Equal(t, 2, l.Count())
}

func TestList_FilterByType(t *testing.T) {
	var l List
	l.Add(NewParseError("p1", 1))
	l.Add(NewLexError("l1", 2))
	l.Add(NewParseError("p2", 3))

	parseErrs := l.FilterByType(ParseError)
	require.Len(t, parseErrs, 2)
	assert.Equal(t, "p1", parseErrs[0].Message)
	assert.Equal(t, "p2", parseErrs[1].Message)
}

func TestList_ErrorJoinsAllMessages(t *testing.T) {
	var l List
	l.Add(NewParseError("first", 1))
	l.Add(NewAliasError("second", 2))
	assert.Equal(t, "Parse Error: first (span 1)\nAlias Error: second (span 2)", l.Error())
}

func TestReporter_ReportAndClear(t *testing.T) {
	r := NewReporter()
	assert.False(t, r.HasErrors())

	r.Report(NewHereDocError("unterminated here-doc", 4))
	require.True(t, r.HasErrors())
	require.Len(t, r.Errors(), 1)
	assert.Equal(t, HereDocError, r.Errors()[0].Type)

	r.Clear()
	assert.False(t, r.HasErrors())
	assert.Empty(t, r.Errors())
}
