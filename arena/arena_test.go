package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/ast"
)

func TestArena_AddLineSpanRoundTrip(t *testing.T) {
	a := New()
	lineID := a.AddLine("echo hi\n")
	span := a.AddLineSpan(lineID, 0, 4)

	sp, ok := a.GetLineSpan(span)
	require.True(t, ok)
	assert.Equal(t, ast.Span{LineID: lineID, Col: 0, Length: 4}, sp)

	text, ok := a.SpanText(span)
	require.True(t, ok)
	assert.Equal(t, "echo", text)
}

func TestArena_SpanZeroIsNoSpan(t *testing.T) {
	a := New()
	_, ok := a.GetLineSpan(ast.NoSpan)
	assert.False(t, ok, "span id 0 must never resolve, so ast.NoSpan is a safe zero value")
}

func TestArena_GetLineSpanOutOfRange(t *testing.T) {
	a := New()
	a.AddLine("x\n")
	_, ok := a.GetLineSpan(ast.SpanID(99))
	assert.False(t, ok)
}

func TestArena_SpanTextOutOfBounds(t *testing.T) {
	a := New()
	lineID := a.AddLine("hi\n")
	span := a.AddLineSpan(lineID, 1, 10) // runs past end of line
	_, ok := a.SpanText(span)
	assert.False(t, ok)
}

func TestArena_GetLineNumberIsOneBased(t *testing.T) {
	a := New()
	id0 := a.AddLine("first\n")
	id1 := a.AddLine("second\n")
	assert.Equal(t, 1, a.GetLineNumber(id0))
	assert.Equal(t, 2, a.GetLineNumber(id1))
}

func TestArena_PushPopSource(t *testing.T) {
	a := New()
	_, ok := a.CurrentSource()
	assert.False(t, ok)
	assert.Equal(t, 0, a.SourceDepth())

	frame := a.PushSource(SourceProvenance{Kind: "alias", Label: "ll"})
	assert.NotEqual(t, frame.TraceID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, 1, a.SourceDepth())

	cur, ok := a.CurrentSource()
	require.True(t, ok)
	assert.Equal(t, "alias", cur.Kind)
	assert.Equal(t, "ll", cur.Label)

	a.PopSource()
	assert.Equal(t, 0, a.SourceDepth())
	_, ok = a.CurrentSource()
	assert.False(t, ok)
}

func TestArena_PopSourceOnEmptyIsNoop(t *testing.T) {
	a := New()
	assert.NotPanics(t, func() { a.PopSource() })
	assert.Equal(t, 0, a.SourceDepth())
}
