// Package lexer implements the mode-switching lexer spec.md §4.1
// describes: Read/LookAhead take the mode to lex under as an explicit
// per-call argument, plus PushHint for single-shot token-id rewrites and
// EmitCompDummy for interactive completion.
//
// Grounded on wudi-hey's per-state nextTokenInXxx dispatch
// (lexer/lexer.go's nextTokenInHeredoc and friends) and its
// LexerState/StateStack pair (lexer/states.go), generalized from an
// 11-state whole-string PHP lexer into a per-call-mode, per-line lexer
// over spec.md's larger mode enumeration (see mode.go).
package lexer

import (
	"fmt"

	"github.com/oilshell/oil-parser/arena"
	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/linereader"
)

// matchFn is one mode's longest-match function: given the remaining
// text of the current line and the cursor into it, it returns the kind
// and byte length of the longest lexeme starting at pos, or ok=false if
// no lexeme matches (a LexError).
type matchFn func(line string, pos int) (kind ast.TokenKind, length int, ok bool)

var modeMatchers = map[Mode]matchFn{
	ShCommand:       matchShCommand,
	DQ:              matchDQ,
	SQ:              matchSQ,
	DollarSQ:        matchDollarSQ,
	VSub1:           matchVSub1,
	VSub2:           matchVSub2,
	VSubArgUnquoted: matchVSubArg,
	VSubArgDQ:       matchVSubArg,
	Arith:           matchArith,
	DBracket:        matchDBracket,
	BashRegex:       matchBashRegex,
	ExtGlob:         matchExtGlob,
	PrintfOuter:     matchPrintfOuter,
	PrintfPercent:   matchPrintfPercent,
	Backtick:        matchBacktick,
	Expr:            matchExpr,
	Array:           matchExpr,
	Regex:           matchRegex,
	CharClass:       matchCharClass,
	Command:         matchShCommand,
	DQOil:           matchDQOil,
	VSubOil:         matchVSub2,
}

type peekEntry struct {
	mode Mode
	tok  ast.Token
	// lexer cursor state immediately after this token was produced
	lineID   int
	lineText string
	pos      int
}

// Lexer is one mode-switching tokenizer over a LineReader, recording
// every line and span it touches into an Arena.
type Lexer struct {
	reader linereader.LineReader
	arena  *arena.Arena

	lineID   int
	lineText string
	pos      int
	atRealEOF bool

	hints map[ast.TokenKind]ast.TokenKind
	peek  *peekEntry

	compDummyArmed    bool
	compDummyDelivered bool
}

// New returns a Lexer reading from r and recording spans into a.
func New(r linereader.LineReader, a *arena.Arena) *Lexer {
	return &Lexer{reader: r, arena: a, hints: make(map[ast.TokenKind]ast.TokenKind)}
}

// Arena returns the Arena this Lexer records lines and spans into, so
// callers that need to spin up a short-lived sub-lexer over a standalone
// string (e.g. wordparser's here-doc line re-lexing) can share it
// instead of fragmenting span bookkeeping across two arenas.
func (l *Lexer) Arena() *arena.Arena { return l.arena }

// ReadRawLine returns the remainder of the current physical line
// un-tokenized and advances the cursor past it, for callers reading a
// structurally line-oriented body (here-docs) rather than a token
// stream. eof is true if no more input is available.
func (l *Lexer) ReadRawLine() (line string, eof bool, err error) {
	if l.peek != nil && l.pos >= len(l.lineText) && !l.atRealEOF {
		// A preview already pulled the next line from the reader; start
		// from that line instead of skipping it.
		l.lineID, l.lineText, l.pos = l.peek.lineID, l.peek.lineText, 0
	}
	l.peek = nil
	l.fillLineIfNeeded()
	if l.atRealEOF {
		return "", true, nil
	}
	line = l.lineText[l.pos:]
	l.pos = len(l.lineText)
	return line, false, nil
}

// PushHint records a single-shot rewrite: the next token with kind
// "from" that would be emitted by Read is instead emitted as "to", and
// the hint is then cleared.
func (l *Lexer) PushHint(from, to ast.TokenKind) {
	l.hints[from] = to
}

// EmitCompDummy arranges for a Lit_CompDummy token with empty text to be
// emitted at the current cursor, immediately before the next Eof_Real.
func (l *Lexer) EmitCompDummy() {
	l.compDummyArmed = true
}

func (l *Lexer) fillLineIfNeeded() {
	for l.pos >= len(l.lineText) && !l.atRealEOF {
		id, text, _, ok := l.reader.GetLine()
		if !ok {
			l.atRealEOF = true
			return
		}
		l.lineID = l.arena.AddLine(text)
		_ = id
		l.lineText = text
		l.pos = 0
		if l.lineText == "" {
			// Defensive: an empty "line" (possible from a Virtual
			// reader) would spin forever; treat as EOF instead.
			l.atRealEOF = true
			return
		}
	}
}

func (l *Lexer) currentSpan(start, length int) ast.SpanID {
	return l.arena.AddLineSpan(l.lineID, start, length)
}

// rawToken produces the next token under mode without consulting the
// hint table or the peek buffer; used by lex() after any line refill.
func (l *Lexer) rawToken(mode Mode) (ast.Token, error) {
	l.fillLineIfNeeded()
	if l.atRealEOF {
		if l.compDummyArmed && !l.compDummyDelivered {
			l.compDummyDelivered = true
			return ast.Token{Kind: ast.LitCompDummy, Lit: "", Span: ast.NoSpan}, nil
		}
		return ast.Token{Kind: ast.EofReal, Lit: "", Span: ast.NoSpan}, nil
	}
	matcher, ok := modeMatchers[mode]
	if !ok {
		return ast.Token{}, fmt.Errorf("lexer: no matcher registered for mode %s", mode)
	}
	kind, length, ok := matcher(l.lineText, l.pos)
	if !ok {
		span := l.currentSpan(l.pos, 1)
		return ast.Token{Kind: ast.Unknown, Lit: string(l.lineText[l.pos]), Span: span},
			fmt.Errorf("lexer: unknown byte %q in mode %s", l.lineText[l.pos], mode)
	}
	start := l.pos
	lit := l.lineText[start : start+length]
	span := l.currentSpan(start, length)
	l.pos += length
	return ast.Token{Kind: kind, Lit: lit, Span: span}, nil
}

func (l *Lexer) applyHintDestructive(tok ast.Token) ast.Token {
	if to, ok := l.hints[tok.Kind]; ok {
		from := tok.Kind
		tok.Kind = to
		delete(l.hints, from)
	}
	return tok
}

func (l *Lexer) previewHint(tok ast.Token) ast.Token {
	if to, ok := l.hints[tok.Kind]; ok {
		tok.Kind = to
	}
	return tok
}

// Read consumes exactly one token under mode, advancing the cursor.
func (l *Lexer) Read(mode Mode) (ast.Token, error) {
	if l.peek != nil && l.peek.mode == mode {
		tok := l.peek.tok
		l.lineID, l.lineText, l.pos = l.peek.lineID, l.peek.lineText, l.peek.pos
		l.peek = nil
		return l.applyHintDestructive(tok), nil
	}
	if l.peek != nil && l.pos >= len(l.lineText) && !l.atRealEOF {
		// The discarded preview already pulled the next line from the
		// reader; resume at that line's start rather than losing it.
		l.lineID, l.lineText, l.pos = l.peek.lineID, l.peek.lineText, 0
	}
	l.peek = nil
	tok, err := l.rawToken(mode)
	if err != nil {
		return tok, err
	}
	return l.applyHintDestructive(tok), nil
}

// LookAhead returns the next token after the current cursor under mode,
// without advancing, using a one-token peek buffer. The hint table is
// consulted but not yet cleared (a peek is not a real emission).
func (l *Lexer) LookAhead(mode Mode) (ast.Token, error) {
	if l.peek != nil && l.peek.mode == mode {
		return l.previewHint(l.peek.tok), nil
	}
	savedID, savedText, savedPos := l.lineID, l.lineText, l.pos
	tok, err := l.rawToken(mode)
	if err != nil {
		l.lineID, l.lineText, l.pos = savedID, savedText, savedPos
		return tok, err
	}
	l.peek = &peekEntry{mode: mode, tok: tok, lineID: l.lineID, lineText: l.lineText, pos: l.pos}
	l.lineID, l.lineText, l.pos = savedID, savedText, savedPos
	return l.previewHint(tok), nil
}
