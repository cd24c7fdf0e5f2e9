package wordparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTopLevelComma(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a", []string{"a"}},
		{"a,{b,c},d", []string{"a", "{b,c}", "d"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitTopLevelComma(tt.in), "input %q", tt.in)
	}
}

func TestParseBraceRange(t *testing.T) {
	tests := []struct {
		in                string
		lo, hi, step      int
		ok                bool
	}{
		{"1..5", 1, 5, 1, true},
		{"5..1", 5, 1, -1, true},
		{"1..10..2", 1, 10, 2, true},
		{"1..10..0", 0, 0, 0, false},
		{"a,b", 0, 0, 0, false},
		{"1..2..3..4", 0, 0, 0, false},
	}
	for _, tt := range tests {
		lo, hi, step, ok := parseBraceRange(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.lo, lo, "input %q", tt.in)
			assert.Equal(t, tt.hi, hi, "input %q", tt.in)
			assert.Equal(t, tt.step, step, "input %q", tt.in)
		}
	}
}

func TestExpandRange(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, expandRange(1, 3, 1))
	assert.Equal(t, []string{"3", "2", "1"}, expandRange(3, 1, -1))
	assert.Equal(t, []string{"0", "2", "4"}, expandRange(0, 4, 2))
}

func TestSplitBraceBody(t *testing.T) {
	alts, ok := splitBraceBody("a,b,c")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, alts)

	alts, ok = splitBraceBody("1..3")
	assert.True(t, ok)
	assert.Equal(t, []string{"1", "2", "3"}, alts)

	_, ok = splitBraceBody("nocommaornorange")
	assert.False(t, ok, "a brace group with no comma and no valid range is left untouched")
}
