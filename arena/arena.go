// Package arena stores input lines and assigns each byte range a span
// id other components use for diagnostics. It is mutated by the lexer
// (AddLineSpan) and read by every other component, for the lifetime of
// one top-level parse.
//
// Grounded on the teacher's errors.Error Position{Line,Column,Offset}
// field (wudi-hey errors/errors.go), generalized into an immutable
// line-span table plus a source-provenance stack (wudi-hey has no
// analogue for the latter; modeled directly from spec.md §3/§6).
package arena

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/oilshell/oil-parser/ast"
)

// SourceProvenance records why a nested parse was started: an alias
// expansion or a command substitution. Pushed/popped by PushSource and
// PopSource for blame attribution across re-entrant parses.
type SourceProvenance struct {
	// Kind is "alias" or "command-sub" or "top".
	Kind string
	// Label is the alias name or a short description of the command-sub.
	Label string
	// ArgvSpan is the span id of the word that triggered this nesting.
	ArgvSpan ast.SpanID
	// TraceID correlates this provenance frame across log lines; see
	// SPEC_FULL.md §10 for why a UUID rather than a sequence counter.
	TraceID uuid.UUID
}

func (s SourceProvenance) String() string {
	return fmt.Sprintf("%s(%s) trace=%s", s.Kind, s.Label, s.TraceID)
}

type line struct {
	id   int
	text string
}

// Arena is the line/span table for one top-level parse. Not safe for
// concurrent use; each CommandParser (and any nested CommandParser it
// spawns for alias expansion) either shares an Arena or, for a wholly
// separate nested source, owns its own.
type Arena struct {
	lines []line
	spans []ast.Span // index 0 unused so SpanID 0 == ast.NoSpan

	sourceStack []SourceProvenance
}

// New returns an empty Arena ready to accept lines.
func New() *Arena {
	return &Arena{spans: make([]ast.Span, 1)}
}

// AddLine registers a new line's text and returns its line id. Lines are
// added in the order the LineReader produces them; line ids are stable
// for the life of the Arena.
func (a *Arena) AddLine(text string) int {
	id := len(a.lines)
	a.lines = append(a.lines, line{id: id, text: text})
	return id
}

// AddLineSpan records a (lineID, col, length) byte range and returns the
// span id the lexer should attach to the token or node it produced.
func (a *Arena) AddLineSpan(lineID, col, length int) ast.SpanID {
	a.spans = append(a.spans, ast.Span{LineID: lineID, Col: col, Length: length})
	return ast.SpanID(len(a.spans) - 1)
}

// GetLineSpan returns the span a span id refers to.
func (a *Arena) GetLineSpan(id ast.SpanID) (ast.Span, bool) {
	if int(id) <= 0 || int(id) >= len(a.spans) {
		return ast.Span{}, false
	}
	return a.spans[id], true
}

// GetLine returns a line's text by id.
func (a *Arena) GetLine(lineID int) (string, bool) {
	if lineID < 0 || lineID >= len(a.lines) {
		return "", false
	}
	return a.lines[lineID].text, true
}

// GetLineNumber returns the 1-based line number for a line id (the
// Arena's line ids are already 0-based sequential, so this is id+1
// unless the line came from a nested source, in which case callers
// should consult the enclosing SourceProvenance for context).
func (a *Arena) GetLineNumber(lineID int) int { return lineID + 1 }

// SpanText returns the literal source bytes a span covers, by slicing
// into the owning line's text. Used for round-trip checks and for
// extracting the unexpanded source text during alias expansion
// (spec.md §4.4 step 3: "single-line ranges only").
func (a *Arena) SpanText(id ast.SpanID) (string, bool) {
	sp, ok := a.GetLineSpan(id)
	if !ok {
		return "", false
	}
	text, ok := a.GetLine(sp.LineID)
	if !ok {
		return "", false
	}
	end := sp.Col + sp.Length
	if sp.Col < 0 || end > len(text) {
		return "", false
	}
	return text[sp.Col:end], true
}

// PushSource pushes a new provenance frame, assigning it a trace id if
// the caller left one unset.
func (a *Arena) PushSource(s SourceProvenance) SourceProvenance {
	if s.TraceID == uuid.Nil {
		s.TraceID = uuid.New()
	}
	a.sourceStack = append(a.sourceStack, s)
	return s
}

// PopSource pops the most recently pushed provenance frame.
func (a *Arena) PopSource() {
	if len(a.sourceStack) == 0 {
		return
	}
	a.sourceStack = a.sourceStack[:len(a.sourceStack)-1]
}

// CurrentSource returns the innermost provenance frame, or the zero
// value if none is pushed (i.e. we are at the top-level source).
func (a *Arena) CurrentSource() (SourceProvenance, bool) {
	if len(a.sourceStack) == 0 {
		return SourceProvenance{}, false
	}
	return a.sourceStack[len(a.sourceStack)-1], true
}

// SourceDepth reports how many nested provenance frames are pushed; used
// by AssertionError checks for runaway reentrancy.
func (a *Arena) SourceDepth() int { return len(a.sourceStack) }
