// Package tdop is the top-down operator precedence (Pratt) parser for
// shell arithmetic: `(( ... ))`, `$(( ... ))`, and the three clauses of
// `for (( init; cond; update ))`.
//
// Grounded on wudi-hey's parser.PrattParser (parser/pratt_parser.go):
// the same prefix/infix function-table shape and precedence-climbing
// parseExpression loop, generalized from PHP's expression grammar down
// to the much smaller arithmetic grammar spec.md §4.3 names, and
// re-targeted at ast.ArithExpr instead of ast.Expression.
package tdop

import (
	"fmt"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/lexer"
)

// Precedence mirrors the teacher's named precedence ladder, cut down to
// the operators shell arithmetic actually has.
type Precedence int

const (
	_ Precedence = iota
	Lowest
	Assign     // = += -= *= /= %=
	Ternary    // ?:
	LogicalOr  // ||
	LogicalAnd // &&
	BitOr      // |
	BitXor     // ^
	BitAnd     // &
	Equality   // == !=
	Relational // < > <= >=
	Shift      // << >>
	Additive   // + -
	Mult       // * / %
	Unary      // unary - + ! ~ ++ --
	Postfix    // x++ x--
)

var precedenceTable = map[ast.TokenKind]Precedence{
	ast.ArithAssign: Assign,
	ast.ArithEqEq:   Equality, ast.ArithNotEq: Equality,
	ast.ArithLess: Relational, ast.ArithGreater: Relational,
	ast.ArithLessEq: Relational, ast.ArithGreaterEq: Relational,
	ast.ArithPlus: Additive, ast.ArithMinus: Additive,
	ast.ArithStar: Mult, ast.ArithSlash: Mult, ast.ArithPercent: Mult,
	ast.ArithIncr: Postfix, ast.ArithDecr: Postfix,
}

type prefixFn func(p *Parser) (ast.ArithExpr, error)
type infixFn func(p *Parser, left ast.ArithExpr) (ast.ArithExpr, error)

// Parser is the arithmetic expression parser: a thin cursor over the
// Lexer (always read under lexer.Arith mode) plus the teacher's
// prefix/infix function-table dispatch.
type Parser struct {
	lex  *lexer.Lexer
	cur  ast.Token
	peek ast.Token

	prefixFns map[ast.TokenKind]prefixFn
	infixFns  map[ast.TokenKind]infixFn
}

// New constructs a Parser reading from lex and primes the two-token
// lookahead window, matching the teacher's NewPrattParser double
// p.nextToken() priming call.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	p.prefixFns = map[ast.TokenKind]prefixFn{
		ast.ArithNumber: parseNumber,
		ast.ArithName:   parseName,
		ast.ArithMinus:  parseUnary,
		ast.ArithPlus:   parseUnary,
		ast.ArithIncr:   parsePrefixIncrDecr,
		ast.ArithDecr:   parsePrefixIncrDecr,
		ast.ArithLParen: parseGrouped,
	}
	p.infixFns = map[ast.TokenKind]infixFn{
		ast.ArithPlus:       parseBinary,
		ast.ArithMinus:      parseBinary,
		ast.ArithStar:       parseBinary,
		ast.ArithSlash:      parseBinary,
		ast.ArithPercent:    parseBinary,
		ast.ArithAssign:     parseBinary,
		ast.ArithEqEq:       parseBinary,
		ast.ArithNotEq:      parseBinary,
		ast.ArithLess:       parseBinary,
		ast.ArithGreater:    parseBinary,
		ast.ArithLessEq:     parseBinary,
		ast.ArithGreaterEq:  parseBinary,
		ast.ArithIncr:       parsePostfix,
		ast.ArithDecr:       parsePostfix,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Cur returns the parser's current token, used by callers (cmdparser,
// wordparser) to resync their own cursor after delegating an arithmetic
// sub-expression to this parser.
func (p *Parser) Cur() ast.Token { return p.cur }

// Advance steps the cursor forward by one token, exported so a caller
// can pull the closing `))`/`)` (left in Peek position once
// ParseExpression/ParseTriple stops) into Cur before resyncing.
func (p *Parser) Advance() error { return p.advance() }

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.Read(lexer.Arith)
	for err == nil && tok.Kind == ast.WSSpace {
		tok, err = p.lex.Read(lexer.Arith)
	}
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *Parser) peekPrecedence() Precedence {
	if prec, ok := precedenceTable[p.peek.Kind]; ok {
		return prec
	}
	return Lowest
}

// ParseExpression is the core precedence-climbing loop, ported from the
// teacher's parseExpression(precedence) with ArithExpr substituted for
// ast.Expression and an explicit error return in place of appending to a
// side-channel error slice.
func (p *Parser) ParseExpression(precedence Precedence) (ast.ArithExpr, error) {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		return nil, fmt.Errorf("tdop: no prefix parser for %s", p.cur.Kind)
	}
	left, err := prefix(p)
	if err != nil {
		return nil, err
	}
	for p.peek.Kind != ast.RightDollarDParen && p.peek.Kind != ast.ArithRParen &&
		precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Kind]
		if !ok {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		left, err = infix(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// ParseTriple parses the three semicolon-separated clauses of a C-style
// `for (( init; cond; update ))` header, returning nil for any clause
// left empty (all three are optional in bash).
func (p *Parser) ParseTriple() (init, cond, update ast.ArithExpr, err error) {
	if p.cur.Kind != ast.ArithRParen && p.cur.Kind != ast.OpSemi {
		init, err = p.ParseExpression(Lowest)
		if err != nil {
			return
		}
	}
	if err = p.expectSemi(); err != nil {
		return
	}
	if p.cur.Kind != ast.ArithRParen && p.cur.Kind != ast.OpSemi {
		cond, err = p.ParseExpression(Lowest)
		if err != nil {
			return
		}
	}
	if err = p.expectSemi(); err != nil {
		return
	}
	if p.cur.Kind != ast.ArithRParen {
		update, err = p.ParseExpression(Lowest)
	}
	return
}

// expectSemi consumes the ';' that separates two for-loop header clauses
// and leaves cur sitting on the next clause's first token. It handles
// both an empty clause (cur already resting on the ';') and a parsed
// clause (the ';' still sitting in peek, since ParseExpression stops
// with cur on the expression's own last token).
func (p *Parser) expectSemi() error {
	if p.cur.Kind == ast.OpSemi {
		return p.advance()
	}
	if p.peek.Kind != ast.OpSemi {
		return fmt.Errorf("tdop: expected ';' in for-loop header, got %s", p.peek.Kind)
	}
	if err := p.advance(); err != nil { // cur -> ';'
		return err
	}
	return p.advance() // cur -> first token of next clause
}

// parseNumber and parseName are leaf prefix parsers: cur is already the
// token being parsed, and nothing here consumes further input, so cur
// is left untouched. Only the enclosing loop's advance moves past it.
func parseNumber(p *Parser) (ast.ArithExpr, error) {
	return &ast.ArithWord{Tok: p.cur}, nil
}

func parseName(p *Parser) (ast.ArithExpr, error) {
	return &ast.ArithWord{Tok: p.cur}, nil
}

func parseUnary(p *Parser) (ast.ArithExpr, error) {
	op := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.ParseExpression(Unary)
	if err != nil {
		return nil, err
	}
	return &ast.ArithUnary{Op: op.Kind, OpLit: op.Lit, Operand: operand}, nil
}

func parseGrouped(p *Parser) (ast.ArithExpr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	inner, err := p.ParseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if p.peek.Kind != ast.ArithRParen {
		return nil, fmt.Errorf("tdop: expected ')', got %s", p.peek.Kind)
	}
	if err := p.advance(); err != nil { // cur -> ')'
		return nil, err
	}
	return inner, nil
}

// parsePrefixIncrDecr handles `++x`/`--x`, binding tighter than any
// binary operator (same slot as unary -/+).
func parsePrefixIncrDecr(p *Parser) (ast.ArithExpr, error) {
	op := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.ParseExpression(Unary)
	if err != nil {
		return nil, err
	}
	return &ast.ArithUnary{Op: op.Kind, OpLit: op.Lit, Operand: operand}, nil
}

// parsePostfix handles `x++`/`x--`: an infix slot that ignores its
// right-hand side entirely, since the operator is already complete once
// seen. The loop has already advanced cur onto the operator before
// calling this, and nothing follows it, so cur is left as-is.
func parsePostfix(p *Parser, left ast.ArithExpr) (ast.ArithExpr, error) {
	op := p.cur
	return &ast.ArithUnary{Op: op.Kind, OpLit: op.Lit, Operand: left, Postfix: true}, nil
}

func parseBinary(p *Parser, left ast.ArithExpr) (ast.ArithExpr, error) {
	op := p.cur
	myPrec := precedenceTable[op.Kind]
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.ParseExpression(myPrec)
	if err != nil {
		return nil, err
	}
	return &ast.ArithBinary{Op: op.Kind, OpLit: op.Lit, Left: left, Right: right}, nil
}
