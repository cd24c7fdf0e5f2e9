// Package exprparser implements the table-driven parser for the Oil
// expression sublanguage (spec.md §4.5): `var`/`setvar` right-hand
// sides, `if (...)`/`while (...)` conditions, func/proc defaults, and
// the bodies spliced in from `$(...)`/`${...}`/`$[...]`/`@(...)`/
// `$/.../ ` via the Expr_WordsDummy/Expr_CommandDummy dummy terminals.
//
// Grounded on the same wudi-hey parser.PrattParser precedence-climbing
// shape [[tdop]] and [[boolparser]] already adapt, with the addition of
// an explicit mode stack (spec.md's design note: "a first-class field...
// to aid debugging" rather than hidden in a closure) since Oil
// expressions self-nest across Expr/Array/Regex/CharClass/Command modes.
// Binding powers come from the checked-in [[grammar]].Table rather than
// a private map, so the mode-transition precedences spec.md §4.5 names
// live in one place shared by anything else that needs them.
package exprparser

import (
	"fmt"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/grammar"
	"github.com/oilshell/oil-parser/lexer"
)

// WordsReader lets the ExprParser splice in a WordParser's output for
// Oil's `@(word word)` array literal (the Expr_WordsDummy terminal).
type WordsReader interface {
	ReadWords(mode lexer.Mode) ([]ast.Word, error)
}

// CommandReader lets the ExprParser splice in a parsed nested command
// for `$(...)` and `$[...]` (the Expr_CommandDummy terminal).
type CommandReader interface {
	ParseCommandSub(mode lexer.Mode) (ast.Command, error)
}

// Precedence and its levels are the grammar package's checked-in
// binding-power table, re-exported here so callers don't need their own
// import of it just to pass e.g. exprparser.Lowest to ParseExpression.
type Precedence = grammar.Precedence

const (
	Lowest     = grammar.Lowest
	Or         = grammar.Or
	And        = grammar.And
	Not        = grammar.Not
	Equality   = grammar.Equality
	Relational = grammar.Relational
	Additive   = grammar.Additive
	Mult       = grammar.Mult
	Unary      = grammar.Unary
	Postfix    = grammar.Postfix
)

// Parser is the Oil expression parser, reading from a shared Lexer
// under an explicit ModeStack rather than a hidden recursion depth.
type Parser struct {
	lex   *lexer.Lexer
	words WordsReader
	cmds  CommandReader
	modes *lexer.ModeStack

	cur, peek ast.Token
}

func New(lex *lexer.Lexer, words WordsReader, cmds CommandReader) (*Parser, error) {
	p := &Parser{lex: lex, words: words, cmds: cmds, modes: lexer.NewModeStack()}
	p.modes.Push(lexer.Expr)
	// advance's own Read(cur)+LookAhead(peek) body already primes both
	// fields from a single call (unlike tdop's shift-style advance, which
	// needs two calls starting from a zero peek); a second call here
	// would shift cur onto the expression's second token, silently
	// dropping its first.
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) mode() lexer.Mode { return p.modes.Peek() }

// Cur returns the parser's current token, used by cmdparser to resync
// its own cursor after delegating an Oil expression to this parser.
func (p *Parser) Cur() ast.Token { return p.cur }

// advance commits the previewed peek into cur (via Read, which reuses
// the Lexer's cached lookahead entry) and previews the next token via
// LookAhead rather than Read, so the bytes right after cur stay
// unconsumed until something actually wants them — letting p.words and
// p.cmds take over reading from the shared Lexer mid-expression (for
// `@(word word)` splicing or a nested `$(...)`) without cur/peek having
// already eaten their first token.
func (p *Parser) advance() error {
	cur, err := p.lex.Read(p.mode())
	if err != nil {
		return err
	}
	for cur.Kind == ast.WSSpace {
		cur, err = p.lex.Read(p.mode())
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

func (p *Parser) peekNonSpace() (ast.Token, error) {
	for {
		tok, err := p.lex.LookAhead(p.mode())
		if err != nil {
			return tok, err
		}
		if tok.Kind != ast.WSSpace {
			return tok, nil
		}
		if _, err := p.lex.Read(p.mode()); err != nil {
			return ast.Token{}, err
		}
	}
}

func (p *Parser) peekPrecedence() Precedence {
	return grammar.Lookup(p.peek.Kind)
}

// ParseExpression is the core precedence-climbing loop shared with
// [[tdop]]/[[boolparser]], re-targeted at ast.OilExpr and augmented with
// postfix `.attr`/`[index]`/`(args)` handling.
func (p *Parser) ParseExpression(precedence Precedence) (ast.OilExpr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	// parsePrefix leaves cur on the first token after the operand, so the
	// operator (if any) is cur, not peek.
	for grammar.Lookup(p.cur.Kind) > max(precedence, Lowest) {
		switch p.cur.Kind {
		case ast.ExprDot:
			if err := p.advance(); err != nil { // cur = attr name
				return nil, err
			}
			attr := p.cur.Lit
			if err := p.advance(); err != nil { // cur = token after it
				return nil, err
			}
			left = &ast.OilAttr{Recv: left, Attr: attr}
		case ast.ExprLBracket:
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.ParseExpression(Lowest)
			if err != nil {
				return nil, err
			}
			if p.cur.Kind != ast.ExprRBracket {
				return nil, fmt.Errorf("exprparser: expected ']', got %s", p.cur.Kind)
			}
			if err := p.advance(); err != nil { // consume ']'
				return nil, err
			}
			left = &ast.OilIndex{Recv: left, Index: idx}
		default:
			op := p.cur.Kind
			myPrec := grammar.Lookup(op)
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.ParseExpression(myPrec)
			if err != nil {
				return nil, err
			}
			left = &ast.OilBinary{Op: op, Left: left, Right: right}
		}
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.OilExpr, error) {
	tok := p.cur
	switch tok.Kind {
	case ast.ExprNumber, ast.ExprString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.OilLiteral{Tok: tok}, nil
	case ast.ExprName:
		name := tok.Lit
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == ast.ArithLParen {
			return p.parseCall(&ast.OilVar{Name: name})
		}
		return &ast.OilVar{Name: name}, nil
	case ast.ExprMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.ParseExpression(Unary)
		if err != nil {
			return nil, err
		}
		return &ast.OilUnary{Op: ast.ExprMinus, Operand: operand}, nil
	case ast.LeftSQ:
		return p.parseSingleQuotedLiteral()
	case ast.LeftDoubleQuoteOil:
		return p.parseDoubleQuoted()
	case ast.VSubName:
		part := &ast.SimpleVarSub{Tok: tok}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.OilVarSub{Part: part}, nil
	case ast.LeftDollarParen:
		return p.parseCommandSub(ast.RightDollarParen)
	case ast.LeftDollarBracket:
		return p.parseCommandSub(ast.RightDollarBracket)
	case ast.LeftDollarBrace:
		return p.parseVarSub()
	case ast.LeftAtBracket:
		return p.parseArrayLiteral()
	case ast.LeftDollarSlash:
		return p.parseRegex()
	}
	return nil, fmt.Errorf("exprparser: unexpected token %s in expression", tok.Kind)
}

func (p *Parser) parseCall(callee ast.OilExpr) (ast.OilExpr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []ast.OilExpr
	for p.cur.Kind != ast.ArithRParen {
		arg, err := p.ParseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Kind == ast.ExprComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // consume ')'
		return nil, err
	}
	return &ast.OilCall{Callee: callee, Args: args}, nil
}

func (p *Parser) parseSingleQuotedLiteral() (ast.OilExpr, error) {
	var lit string
	for {
		tok, err := p.lex.Read(lexer.SQ)
		if err != nil {
			return nil, err
		}
		if tok.Kind == ast.RightSQ {
			break
		}
		lit += tok.Lit
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.OilLiteral{Tok: ast.Token{Kind: ast.ExprString, Lit: lit}}, nil
}

func (p *Parser) parseDoubleQuoted() (ast.OilExpr, error) {
	dq := &ast.OilDoubleQuoted{}
	for {
		tok, err := p.lex.Read(lexer.DQOil)
		if err != nil {
			return nil, err
		}
		if tok.Kind == ast.RightDoubleQuoteOil {
			break
		}
		switch tok.Kind {
		case ast.VSubName:
			dq.Parts = append(dq.Parts, &ast.OilVarSub{Part: &ast.SimpleVarSub{Tok: tok}})
		case ast.LeftDollarParen:
			sub, err := p.parseCommandSub(ast.RightDollarParen)
			if err != nil {
				return nil, err
			}
			dq.Parts = append(dq.Parts, sub)
		default:
			dq.Parts = append(dq.Parts, &ast.OilLiteral{Tok: tok})
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return dq, nil
}

func (p *Parser) parseCommandSub(closeKind ast.TokenKind) (ast.OilExpr, error) {
	child, err := p.cmds.ParseCommandSub(lexer.ShCommand)
	if err != nil {
		return nil, err
	}
	// ParseCommandSub stops once it sees the closing delimiter token in
	// its own Read call; the ExprParser's cursor is still one token
	// behind that consumption, so re-sync by advancing past it here.
	if err := p.advance(); err != nil {
		return nil, err
	}
	if closeKind == ast.RightDollarBracket {
		return &ast.OilCommandArraySub{Child: child}, nil
	}
	return &ast.OilCommandSub{Child: child}, nil
}

func (p *Parser) parseVarSub() (ast.OilExpr, error) {
	p.modes.Push(lexer.VSubOil)
	defer p.modes.Pop()
	nameTok, err := p.lex.Read(lexer.VSubOil)
	if err != nil {
		return nil, err
	}
	closeTok, err := p.lex.Read(lexer.VSubOil)
	if err != nil {
		return nil, err
	}
	if closeTok.Kind != ast.RightDollarBrace {
		return nil, fmt.Errorf("exprparser: expected '}', got %s", closeTok.Kind)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.OilVarSub{Part: &ast.SimpleVarSub{Tok: nameTok}}, nil
}

func (p *Parser) parseArrayLiteral() (ast.OilExpr, error) {
	words, err := p.words.ReadWords(lexer.ShCommand)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.OilArrayLiteral{Words: words}, nil
}

func (p *Parser) parseRegex() (ast.OilExpr, error) {
	p.modes.Push(lexer.Regex)
	defer p.modes.Pop()
	regex := &ast.OilRegex{}
	for {
		tok, err := p.lex.Read(lexer.Regex)
		if err != nil {
			return nil, err
		}
		if tok.Kind == ast.RightDollarSlash {
			break
		}
		if tok.Kind == ast.ExprLBracket {
			atom, err := p.parseCharClass()
			if err != nil {
				return nil, err
			}
			regex.Atoms = append(regex.Atoms, atom)
			continue
		}
		regex.Atoms = append(regex.Atoms, &ast.RegexLiteral{Text: tok.Lit})
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return regex, nil
}

func (p *Parser) parseCharClass() (ast.RegexAtom, error) {
	var chars string
	for {
		tok, err := p.lex.Read(lexer.CharClass)
		if err != nil {
			return nil, err
		}
		if tok.Kind == ast.ExprRBracket {
			break
		}
		chars += tok.Lit
	}
	return &ast.RegexCharClass{Chars: chars}, nil
}
