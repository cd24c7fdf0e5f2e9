// Package boolparser implements the Pratt parser for `[[ ... ]]`
// boolean test expressions: unary tests (-z, -f, ...), binary tests
// (-eq, ==, =~, ...), and the &&/||/! combinators, per spec.md §4.4.
//
// Grounded on the same wudi-hey parser.PrattParser shape as [[tdop]],
// reusing its prefix/infix function-table idiom; the grammar itself
// (operand words rather than numeric literals, =~ handing its RHS to a
// regex rather than an operand) is new and modeled from spec.md.
package boolparser

import (
	"fmt"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/lexer"
)

// WordReader is the subset of wordparser.WordParser the bool parser
// needs: reading one operand word under DBracket mode, plus the
// boundary token that ended it so the bool parser can resync its own
// cursor from it instead of advancing past the word's first token
// before the word reader ever sees it. Declared as an interface here
// (rather than importing wordparser directly) to avoid an import
// cycle, since wordparser in turn may call into cmdparser.
type WordReader interface {
	ReadWordWithLastToken(mode lexer.Mode) (ast.Word, ast.Token, error)
}

type Precedence int

const (
	_ Precedence = iota
	Lowest
	Or
	And
	Not
)

// Parser parses one [[ ... ]] body, assuming the caller has already
// consumed the opening Left_DBracket token and will consume the
// trailing Right_DBracket itself.
type Parser struct {
	lex    *lexer.Lexer
	words  WordReader
	cur    ast.Token
	peek   ast.Token
}

// Cur returns the parser's current token, used by cmdparser to resync
// its own cursor after delegating a [[ ]] body to this parser (which
// reads directly from the shared Lexer).
func (p *Parser) Cur() ast.Token { return p.cur }

// New primes only peek, a non-destructive preview of the expression's
// first token, and leaves cur unset: the first token may turn out to
// be the start of an operand word, which only the WordParser — not
// this Parser's own advance() — is allowed to actually consume.
func New(lex *lexer.Lexer, words WordReader) (*Parser, error) {
	p := &Parser{lex: lex, words: words}
	peek, err := p.peekNonSpace()
	if err != nil {
		return nil, err
	}
	p.peek = peek
	return p, nil
}

// advance commits the previewed peek into cur (via Read, which reuses
// the Lexer's cached lookahead entry) and previews the next token.
// peek is always populated through LookAhead rather than Read so the
// bytes right after cur stay unconsumed until something actually wants
// them — letting p.words.ReadWord take over mid-expression for an
// operand word without cur/peek having already eaten its first token.
func (p *Parser) advance() error {
	cur, err := p.lex.Read(lexer.DBracket)
	if err != nil {
		return err
	}
	for cur.Kind == ast.WSSpace {
		cur, err = p.lex.Read(lexer.DBracket)
		if err != nil {
			return err
		}
	}
	p.cur = cur
	peek, err := p.peekNonSpace()
	if err != nil {
		return err
	}
	p.peek = peek
	return nil
}

// resyncFrom re-anchors cur/peek after p.words has been reading
// directly from the shared Lexer: cur becomes the word reader's
// boundary token, skipping over it first if it is itself WSSpace
// (ReadWordWithLastToken's last token can be, unlike any other caller
// of this method), and peek is previewed under DBracket mode.
func (p *Parser) resyncFrom(cur ast.Token) error {
	for cur.Kind == ast.WSSpace {
		tok, err := p.lex.Read(lexer.DBracket)
		if err != nil {
			return err
		}
		cur = tok
	}
	p.cur = cur
	peek, err := p.peekNonSpace()
	if err != nil {
		return err
	}
	p.peek = peek
	return nil
}

func (p *Parser) peekNonSpace() (ast.Token, error) {
	for {
		tok, err := p.lex.LookAhead(lexer.DBracket)
		if err != nil {
			return tok, err
		}
		if tok.Kind != ast.WSSpace {
			return tok, nil
		}
		if _, err := p.lex.Read(lexer.DBracket); err != nil {
			return ast.Token{}, err
		}
	}
}

// ParseExpression is the entry point: `a && b || !c` with the usual
// left-associative &&/|| precedence (&& binds tighter than ||), the
// same precedence-climbing shape as tdop.ParseExpression.
func (p *Parser) ParseExpression(precedence Precedence) (ast.BoolExpr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec, isAnd, ok := p.peekAndOrPrecedence()
		if !ok || precedence >= prec {
			break
		}
		if err := p.advance(); err != nil { // cur -> '&&'/'||'; peek previews the RHS's first token
			return nil, err
		}
		right, err := p.ParseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BoolAndOr{IsAnd: isAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) peekAndOrPrecedence() (Precedence, bool, bool) {
	switch p.peek.Kind {
	case ast.OpAndAnd:
		return And, true, true
	case ast.OpOrOr:
		return Or, false, true
	}
	return Lowest, false, false
}

// parsePrefix dispatches on peek rather than cur: at entry, nothing
// after the last consumed boundary has actually been read yet, only
// previewed, since the upcoming token may turn out to be the first
// token of an operand word that only a ReadWordWithLastToken call (not
// this Parser's own advance()) is allowed to consume. The three special
// forms below are single recognizable DBracket-mode tokens in their
// own right, so advancing onto one of those directly is safe; only the
// fallback case — an ordinary operand word — must stay unconsumed.
func (p *Parser) parsePrefix() (ast.BoolExpr, error) {
	switch p.peek.Kind {
	case ast.OpBang:
		if err := p.advance(); err != nil { // cur -> '!'
			return nil, err
		}
		operand, err := p.ParseExpression(Not)
		if err != nil {
			return nil, err
		}
		return &ast.BoolNot{Operand: operand}, nil
	case ast.LeftSubshell:
		if err := p.advance(); err != nil { // cur -> '('
			return nil, err
		}
		inner, err := p.ParseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		if p.peek.Kind != ast.RightSubshell {
			return nil, fmt.Errorf("boolparser: expected ')', got %s", p.peek.Kind)
		}
		if err := p.advance(); err != nil { // cur -> ')'
			return nil, err
		}
		return inner, nil
	}
	if ast.KindOf(p.peek.Kind) == ast.KindBoolUnary {
		if err := p.advance(); err != nil { // cur -> the unary test operator
			return nil, err
		}
		op := p.cur.Kind
		arg, last, err := p.words.ReadWordWithLastToken(lexer.DBracket)
		if err != nil {
			return nil, err
		}
		if err := p.resyncFrom(last); err != nil {
			return nil, err
		}
		return &ast.BoolUnaryOp{Op: op, Arg: arg}, nil
	}
	// Operand word, possibly followed by a binary operator: cur is left
	// untouched here (whatever boundary preceded this call) so that
	// ReadWordWithLastToken is the very first thing to actually read
	// from the Lexer at this position.
	left, last, err := p.words.ReadWordWithLastToken(lexer.DBracket)
	if err != nil {
		return nil, err
	}
	if err := p.resyncFrom(last); err != nil {
		return nil, err
	}
	if ast.KindOf(p.cur.Kind) == ast.KindBoolBinary {
		op := p.cur.Kind
		if op == ast.BoolBinaryTildeEq {
			// The RHS of =~ is an unquoted ERE; BashRegex mode lexes it
			// as one opaque literal run rather than word-splitting it.
			right, last, err := p.words.ReadWordWithLastToken(lexer.BashRegex)
			if err != nil {
				return nil, err
			}
			if err := p.resyncFrom(last); err != nil {
				return nil, err
			}
			return &ast.BoolBinaryOp{Op: op, Left: left, Right: right}, nil
		}
		right, last, err := p.words.ReadWordWithLastToken(lexer.DBracket)
		if err != nil {
			return nil, err
		}
		if err := p.resyncFrom(last); err != nil {
			return nil, err
		}
		return &ast.BoolBinaryOp{Op: op, Left: left, Right: right}, nil
	}
	return &ast.BoolWord{W: left}, nil
}
