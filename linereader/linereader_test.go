package linereader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_SplitsOnNewlineKeepingIt(t *testing.T) {
	r := NewString("ls /\nls /home/\n")

	id0, line0, off0, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, 0, id0)
	assert.Equal(t, "ls /\n", line0)
	assert.Equal(t, 0, off0)

	id1, line1, off1, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, 1, id1)
	assert.Equal(t, "ls /home/\n", line1)
	assert.Equal(t, 5, off1)

	_, _, _, ok = r.GetLine()
	assert.False(t, ok, "reader must report EOF once the text is exhausted")
}

func TestString_LastLineWithoutTrailingNewline(t *testing.T) {
	r := NewString("echo hi")
	_, line, _, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, "echo hi", line)

	_, _, _, ok = r.GetLine()
	assert.False(t, ok)
}

func TestString_EmptyInputIsImmediateEOF(t *testing.T) {
	r := NewString("")
	_, _, _, ok := r.GetLine()
	assert.False(t, ok)
}

func TestVirtual_DeliversLinesInOrder(t *testing.T) {
	r := NewVirtual([]string{"hi\n", "bye\n"})

	id0, line0, off0, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, 0, id0)
	assert.Equal(t, "hi\n", line0)
	assert.Equal(t, 0, off0)

	id1, line1, off1, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, 1, id1)
	assert.Equal(t, "bye\n", line1)
	assert.Equal(t, 3, off1)

	_, _, _, ok = r.GetLine()
	assert.False(t, ok)
}

func TestVirtual_EmptySlice(t *testing.T) {
	r := NewVirtual(nil)
	_, _, _, ok := r.GetLine()
	assert.False(t, ok)
}

func TestFile_ReadsLineByLine(t *testing.T) {
	r := NewFile(strings.NewReader("one\ntwo\nthree"))

	_, l1, _, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, "one\n", l1)

	_, l2, _, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, "two\n", l2)

	_, l3, _, ok := r.GetLine()
	require.True(t, ok)
	assert.Equal(t, "three", l3, "final line with no trailing newline is still delivered")

	_, _, _, ok = r.GetLine()
	assert.False(t, ok)
}

func TestDisallowed_FailsPastLimit(t *testing.T) {
	inner := NewString("a\nb\nc\n")
	r := NewDisallowed(inner, 2)

	_, _, _, ok := r.GetLine()
	require.True(t, ok)
	_, _, _, ok = r.GetLine()
	require.True(t, ok)

	_, _, _, ok = r.GetLine()
	assert.False(t, ok, "a third read must be refused once the two-line limit is reached")
	assert.ErrorIs(t, r.Err(), ErrDisallowedRead)
}

func TestDisallowed_ZeroLimitRefusesImmediately(t *testing.T) {
	r := NewDisallowed(NewString("x\n"), 0)
	_, _, _, ok := r.GetLine()
	assert.False(t, ok)
	assert.ErrorIs(t, r.Err(), ErrDisallowedRead)
}
