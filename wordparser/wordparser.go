// Package wordparser assembles the Lexer's flat token stream into Words
// (spec.md §4.2): a Token-word for a bare operator/newline/EOF, or a
// Compound-word built from literal runs, quoted bodies, and the several
// substitution forms, with no intervening whitespace.
//
// Grounded on the *shape* of wudi-hey's parser.Parser cursor
// (currentToken/peekToken fields, parser/parser.go) — wudi-hey's own
// lexer never needs a word-assembly stage, since PHP tokens are already
// terminal, so this package's core loop (ReadWord's WordPart dispatch
// switch) is new, modeled directly from spec.md §4.2's part enumeration.
package wordparser

import (
	"fmt"
	"strings"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/errors"
	"github.com/oilshell/oil-parser/lexer"
	"github.com/oilshell/oil-parser/linereader"
)

// CommandReader lets the WordParser hand off to a nested CommandParser
// for $(...), `...`, and $((...)) spliced expressions, without an import
// cycle (cmdparser imports wordparser, not the reverse).
type CommandReader interface {
	ParseCommandSub(mode lexer.Mode) (ast.Command, error)
	ParseArithSub() (ast.ArithExpr, error)
}

// WordParser reads Words from a Lexer under an explicit mode, per
// spec.md §4.2's ReadWord(mode)/ReadForExpression/ReadDParen trio.
type WordParser struct {
	lex  *lexer.Lexer
	cmds CommandReader
}

func New(lex *lexer.Lexer, cmds CommandReader) *WordParser {
	return &WordParser{lex: lex, cmds: cmds}
}

// ReadWord reads one Word under mode: a bare token surfaced as a
// TokenWord if it cannot start a word part (EOF, newline, an operator),
// otherwise a CompoundWord accumulating WordParts until a boundary token
// (whitespace, newline, EOF, or an unescaped operator) is reached.
func (wp *WordParser) ReadWord(mode lexer.Mode) (ast.Word, error) {
	w, _, err := wp.ReadWordWithLastToken(mode)
	return w, err
}

// ReadWordWithLastToken is ReadWord plus the boundary token that ended
// the word, which command-substitution closing logic needs to decide
// whether the ')' that just ended the inner WordParser's scan also
// belongs to the enclosing $(...) (spec.md Open Question (c)): rather
// than reaching into WordParser's private cursor state, the caller gets
// this token back explicitly and decides for itself.
func (wp *WordParser) ReadWordWithLastToken(mode lexer.Mode) (ast.Word, ast.Token, error) {
	tok, err := wp.lex.Read(mode)
	if err != nil {
		return nil, tok, err
	}
	return wp.ReadWordFromToken(mode, tok)
}

// ReadWordFromToken is ReadWordWithLastToken for a caller that has
// already read the word's first token itself (a command parser dispatching
// on its own cur, say) instead of letting this method do that first Read.
// Handing that token in here, rather than re-reading, is the only way
// such a caller can delegate word assembly without silently dropping
// whatever cur already held.
func (wp *WordParser) ReadWordFromToken(mode lexer.Mode, tok ast.Token) (ast.Word, ast.Token, error) {
	var err error
	for tok.Kind == ast.WSSpace || tok.Kind == ast.Ignored {
		tok, err = wp.lex.Read(mode)
		if err != nil {
			return nil, tok, err
		}
	}
	if !wp.startsPart(tok) {
		return &ast.TokenWord{Tok: tok}, tok, nil
	}

	cw := &ast.CompoundWord{}
	last := tok
	for {
		part, consumedNext, err := wp.readPart(mode, last)
		if err != nil {
			return nil, last, err
		}
		if part != nil {
			cw.Parts = append(cw.Parts, part)
		}
		last = consumedNext
		if !wp.startsPart(last) {
			break
		}
	}
	return cw, last, nil
}

// startsPart reports whether tok's kind can begin (or continue) a
// CompoundWord in the mode it was read under.
func (wp *WordParser) startsPart(tok ast.Token) bool {
	switch tok.Kind {
	case ast.EofReal, ast.EofHint, ast.OpNewline, ast.WSSpace, ast.Ignored,
		ast.RightSQ, ast.RightDQ, ast.RightDollarSQ, ast.RightDoubleQuoteOil,
		ast.RightDollarBrace, ast.RightDollarParen, ast.RightDollarDParen,
		ast.RightBacktick, ast.RightSubshell, ast.RightBraceGroup,
		ast.RightDBracket, ast.Unknown:
		return false
	}
	if ast.KindOf(tok.Kind) == ast.KindOp || ast.KindOf(tok.Kind) == ast.KindKW ||
		ast.KindOf(tok.Kind) == ast.KindRedir {
		return false
	}
	return true
}

// readPart reads exactly one WordPart starting from the already-read
// token `start`, returning the part and the next boundary/continuation
// token, ready for the caller's loop to re-test with startsPart.
func (wp *WordParser) readPart(mode lexer.Mode, start ast.Token) (ast.WordPart, ast.Token, error) {
	switch start.Kind {
	case ast.LitChars, ast.LitEscapedChar:
		next, err := wp.lex.Read(mode)
		if err != nil {
			return nil, start, err
		}
		return &ast.LiteralPart{Tok: start}, next, nil

	case ast.LeftSQ:
		return wp.readSingleQuoted(start)
	case ast.LeftDQ:
		return wp.readDoubleQuoted(start, lexer.DQ, ast.RightDQ)
	case ast.LeftDoubleQuoteOil:
		return wp.readDoubleQuoted(start, lexer.DQOil, ast.RightDoubleQuoteOil)
	case ast.LeftDollarSQ:
		return wp.readDollarSingleQuoted(start)

	case ast.VSubName, ast.VSubNumber, ast.VSubSpecial:
		next, err := wp.lex.Read(mode)
		if err != nil {
			return nil, start, err
		}
		return &ast.SimpleVarSub{Tok: start}, next, nil

	case ast.LeftDollarBrace:
		return wp.readBracedVarSub(mode)

	case ast.LeftDollarParen:
		return wp.readCommandSub(mode)
	case ast.LeftBacktick:
		return wp.readBacktick(mode)
	case ast.LeftDollarDParen:
		return wp.readArithSub(mode)

	case ast.ExtGlobAt, ast.ExtGlobQuestion, ast.ExtGlobStar, ast.ExtGlobPlus, ast.ExtGlobBang:
		return wp.readExtGlob(start)

	case ast.LeftBraceGroup:
		return wp.readBraceTreeAlt(start, mode)
	}
	next, err := wp.lex.Read(mode)
	if err != nil {
		return nil, start, err
	}
	return &ast.LiteralPart{Tok: start}, next, nil
}

func (wp *WordParser) readSingleQuoted(open ast.Token) (ast.WordPart, ast.Token, error) {
	var parts []ast.WordPart
	for {
		tok, err := wp.lex.Read(lexer.SQ)
		if err != nil {
			return nil, tok, err
		}
		if tok.Kind == ast.RightSQ {
			next, err := wp.lex.Read(lexer.ShCommand)
			if err != nil {
				return nil, tok, err
			}
			return &ast.QuotedPart{Quote: '\'', Parts: parts}, next, nil
		}
		parts = append(parts, &ast.LiteralPart{Tok: tok})
	}
}

func (wp *WordParser) readDollarSingleQuoted(open ast.Token) (ast.WordPart, ast.Token, error) {
	var parts []ast.WordPart
	for {
		tok, err := wp.lex.Read(lexer.DollarSQ)
		if err != nil {
			return nil, tok, err
		}
		if tok.Kind == ast.RightDollarSQ {
			next, err := wp.lex.Read(lexer.ShCommand)
			if err != nil {
				return nil, tok, err
			}
			return &ast.QuotedPart{Quote: '\'', Parts: parts}, next, nil
		}
		parts = append(parts, &ast.LiteralPart{Tok: tok})
	}
}

func (wp *WordParser) readDoubleQuoted(open ast.Token, innerMode lexer.Mode, closeKind ast.TokenKind) (ast.WordPart, ast.Token, error) {
	var parts []ast.WordPart
	for {
		tok, err := wp.lex.Read(innerMode)
		if err != nil {
			return nil, tok, err
		}
		if tok.Kind == closeKind {
			next, err := wp.lex.Read(lexer.ShCommand)
			if err != nil {
				return nil, tok, err
			}
			return &ast.QuotedPart{Quote: '"', Parts: parts}, next, nil
		}
		part, err := wp.readEmbeddedPart(innerMode, tok)
		if err != nil {
			return nil, tok, err
		}
		parts = append(parts, part)
	}
}

// readEmbeddedPart handles the substitution forms permitted inside "...":
// $var, ${...}, $(...), `...`, $((...)), or else a literal run.
func (wp *WordParser) readEmbeddedPart(innerMode lexer.Mode, tok ast.Token) (ast.WordPart, error) {
	switch tok.Kind {
	case ast.VSubName, ast.VSubNumber, ast.VSubSpecial:
		return &ast.SimpleVarSub{Tok: tok}, nil
	case ast.LeftDollarBrace:
		part, _, err := wp.readBracedVarSub(innerMode)
		return part, err
	case ast.LeftDollarParen:
		part, _, err := wp.readCommandSub(innerMode)
		return part, err
	case ast.LeftBacktick:
		part, _, err := wp.readBacktick(innerMode)
		return part, err
	case ast.LeftDollarDParen:
		part, _, err := wp.readArithSub(innerMode)
		return part, err
	default:
		return &ast.LiteralPart{Tok: tok}, nil
	}
}

func (wp *WordParser) readBracedVarSub(mode lexer.Mode) (ast.WordPart, ast.Token, error) {
	innerMode := lexer.VSub2
	if mode == lexer.Expr || mode == lexer.DQOil {
		innerMode = lexer.VSubOil
	}
	nameTok, err := wp.lex.Read(innerMode)
	if err != nil {
		return nil, nameTok, err
	}
	bv := &ast.BracedVarSub{NameTok: nameTok, Name: nameTok.Lit}
	tok, err := wp.lex.Read(innerMode)
	if err != nil {
		return nil, tok, err
	}
	if tok.Kind == ast.VSubOp {
		bv.Op = tok.Kind
		bv.OpLit = tok.Lit
		arg, err := wp.readVSubArg(mode)
		if err != nil {
			return nil, tok, err
		}
		bv.Arg = arg
		tok, err = wp.lex.Read(innerMode)
		if err != nil {
			return nil, tok, err
		}
	}
	if tok.Kind != ast.RightDollarBrace {
		return nil, tok, fmt.Errorf("wordparser: expected '}', got %s", tok.Kind)
	}
	next, err := wp.lex.Read(lexer.ShCommand)
	if err != nil {
		return nil, tok, err
	}
	return bv, next, nil
}

func (wp *WordParser) readVSubArg(mode lexer.Mode) (ast.Word, error) {
	argMode := lexer.VSubArgUnquoted
	if mode == lexer.DQ {
		argMode = lexer.VSubArgDQ
	}
	cw := &ast.CompoundWord{}
	for {
		tok, err := wp.lex.Read(argMode)
		if err != nil {
			return nil, err
		}
		if tok.Kind == ast.RightDollarBrace {
			break
		}
		part, err := wp.readEmbeddedPart(argMode, tok)
		if err != nil {
			return nil, err
		}
		cw.Parts = append(cw.Parts, part)
	}
	if cw.IsEmpty() {
		return nil, nil
	}
	return cw, nil
}

func (wp *WordParser) readCommandSub(mode lexer.Mode) (ast.WordPart, ast.Token, error) {
	child, err := wp.cmds.ParseCommandSub(lexer.ShCommand)
	if err != nil {
		return nil, ast.Token{}, err
	}
	next, err := wp.lex.Read(mode)
	if err != nil {
		return nil, next, err
	}
	return &ast.CommandSubPart{Child: child}, next, nil
}

func (wp *WordParser) readBacktick(mode lexer.Mode) (ast.WordPart, ast.Token, error) {
	var raw []byte
	for {
		tok, err := wp.lex.Read(lexer.Backtick)
		if err != nil {
			return nil, tok, err
		}
		if tok.Kind == ast.RightBacktick {
			break
		}
		raw = append(raw, tok.Lit...)
	}
	child, err := wp.cmds.ParseCommandSub(lexer.ShCommand)
	if err != nil {
		return nil, ast.Token{}, err
	}
	next, err := wp.lex.Read(mode)
	if err != nil {
		return nil, next, err
	}
	return &ast.BacktickSubPart{Child: child, Raw: string(raw)}, next, nil
}

func (wp *WordParser) readArithSub(mode lexer.Mode) (ast.WordPart, ast.Token, error) {
	expr, err := wp.cmds.ParseArithSub()
	if err != nil {
		return nil, ast.Token{}, err
	}
	next, err := wp.lex.Read(mode)
	if err != nil {
		return nil, next, err
	}
	return &ast.ArithSubPart{Expr: expr}, next, nil
}

func (wp *WordParser) readExtGlob(open ast.Token) (ast.WordPart, ast.Token, error) {
	opByte := extGlobByte(open.Kind)
	var branches [][]ast.WordPart
	var cur []ast.WordPart
	for {
		tok, err := wp.lex.Read(lexer.ExtGlob)
		if err != nil {
			return nil, tok, err
		}
		switch tok.Kind {
		case ast.RightExtGlob:
			branches = append(branches, cur)
			next, err := wp.lex.Read(lexer.ShCommand)
			if err != nil {
				return nil, tok, err
			}
			return &ast.ExtGlobPart{Op: opByte, Branches: branches}, next, nil
		case ast.OpPipe:
			branches = append(branches, cur)
			cur = nil
		default:
			part, err := wp.readEmbeddedPart(lexer.ExtGlob, tok)
			if err != nil {
				return nil, tok, err
			}
			cur = append(cur, part)
		}
	}
}

func extGlobByte(k ast.TokenKind) byte {
	switch k {
	case ast.ExtGlobAt:
		return '@'
	case ast.ExtGlobQuestion:
		return '?'
	case ast.ExtGlobStar:
		return '*'
	case ast.ExtGlobPlus:
		return '+'
	default:
		return '!'
	}
}

// readBraceTreeAlt handles an unquoted '{' at a position where it could
// either open a BraceTreePart (if it looks like {a,b} or {1..5}) or is
// just a literal '{' (bash only treats it specially when followed by a
// recognizable brace-expansion body); see brace.go for the body scan.
func (wp *WordParser) readBraceTreeAlt(open ast.Token, mode lexer.Mode) (ast.WordPart, ast.Token, error) {
	return wp.parseBraceTree(open, mode)
}

// ReadHereDocBody reads the lines of a here-doc body up to (but not
// including) a line consisting solely of delim, optionally after
// stripping leading tabs (dashStrip, from <<-). If quoted, each body
// line is returned as its own LiteralPart with no further substitution
// performed, matching the POSIX rule that a quoted delimiter disables
// parameter/command substitution in the body; otherwise each line is
// re-lexed under DQ mode so $var/$(...)/${...} still expand. Running
// off the real end of input before delim is ever seen is a fatal error
// blamed at opSpan, the `<<`/`<<-` operator's own span, since that is
// the only token the body's unterminated-ness can be pinned to.
func (wp *WordParser) ReadHereDocBody(delim string, quoted, dashStrip bool, opSpan ast.SpanID) ([]ast.WordPart, error) {
	var parts []ast.WordPart
	for {
		line, eof, err := wp.lex.ReadRawLine()
		if err != nil {
			return nil, err
		}
		trimmed := line
		if dashStrip {
			trimmed = strings.TrimLeft(line, "\t")
		}
		if strings.TrimRight(trimmed, "\n") == delim {
			break
		}
		if eof {
			return nil, errors.NewHereDocError(
				"unterminated here-doc: expected delimiter \""+delim+"\" before end of input", opSpan)
		}
		if quoted {
			parts = append(parts, &ast.LiteralPart{Tok: ast.Token{Kind: ast.LitChars, Lit: trimmed}})
			continue
		}
		embedded, err := wp.expandHereDocLine(trimmed)
		if err != nil {
			return nil, err
		}
		parts = append(parts, embedded...)
	}
	return parts, nil
}

// expandHereDocLine re-lexes one unquoted here-doc line for $var/
// $(...)/${...}, splitting it into literal runs and substitution parts
// the same way readDoubleQuoted's inner loop does. A short-lived
// sub-lexer over the line text (sharing the live Lexer's Arena) drives
// the scan, since the here-doc body is read as whole lines ahead of the
// normal token stream rather than through the live cursor (spec.md's
// "pending here-doc queue" design).
func (wp *WordParser) expandHereDocLine(line string) ([]ast.WordPart, error) {
	sub := lexer.New(linereader.NewString(line), wp.lex.Arena())
	subWP := &WordParser{lex: sub, cmds: wp.cmds}
	var parts []ast.WordPart
	for {
		tok, err := sub.Read(lexer.DQ)
		if err != nil {
			return nil, err
		}
		if tok.Kind == ast.EofReal {
			break
		}
		part, err := subWP.readEmbeddedPart(lexer.DQ, tok)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}
