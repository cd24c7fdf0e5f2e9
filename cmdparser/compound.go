package cmdparser

import (
	"fmt"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/lexer"
)

func (p *Parser) expectAdvance(kind ast.TokenKind) error {
	if p.cur.Kind != kind {
		return fmt.Errorf("cmdparser: expected %s, got %s", kind, p.cur.Kind)
	}
	return p.advance()
}

func (p *Parser) skipNewlines() error {
	for p.cur.Kind == ast.OpNewline {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseIf() (ast.Command, error) {
	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}
	if p.opts.ParseParen && p.cur.Kind == ast.LeftSubshell {
		return p.parseOilIf()
	}
	n := &ast.If{}
	for {
		cond, err := p.parseCommandListUntil(isThenBoundary)
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(ast.KwThen); err != nil {
			return nil, err
		}
		body, err := p.parseCommandListUntil(isArmBoundary)
		if err != nil {
			return nil, err
		}
		n.Arms = append(n.Arms, ast.IfArm{Cond: cond, Body: body})
		if p.cur.Kind == ast.KwElif {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.Kind == ast.KwElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBody, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.KwFi })
		if err != nil {
			return nil, err
		}
		n.ElseArm = elseBody
	}
	if err := p.expectAdvance(ast.KwFi); err != nil {
		return nil, err
	}
	return n, nil
}

func isThenBoundary(t ast.Token) bool { return t.Kind == ast.KwThen }
func isArmBoundary(t ast.Token) bool {
	return t.Kind == ast.KwElif || t.Kind == ast.KwElse || t.Kind == ast.KwFi
}

// parseOilIf handles `if (expr) { body } ...`, active only under the
// `parse_paren` option.
func (p *Parser) parseOilIf() (ast.Command, error) {
	n := &ast.If{}
	for {
		cond, err := p.parseOilParenCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseOilBraceBody()
		if err != nil {
			return nil, err
		}
		n.Arms = append(n.Arms, ast.IfArm{
			Cond: &ast.CommandList{Children: []ast.Command{&ast.OilCondition{Expr: cond}}},
			Body: body,
		})
		if p.cur.Kind == ast.KwElif {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.Kind == ast.KwElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBody, err := p.parseOilBraceBody()
		if err != nil {
			return nil, err
		}
		n.ElseArm = elseBody
	}
	return n, nil
}

func (p *Parser) parseOilParenCondition() (ast.OilExpr, error) {
	// Deliberately not expectAdvance: that would read the condition's
	// first token under ShCommand mode and commit it into p.cur before
	// the ExprParser ever gets a chance to read it under Expr mode, the
	// same hazard parseOilAssign's RHS hand-off works around.
	if p.cur.Kind != ast.LeftSubshell {
		return nil, fmt.Errorf("cmdparser: expected %s, got %s", ast.LeftSubshell, p.cur.Kind)
	}
	ep, err := p.newExprParser()
	if err != nil {
		return nil, err
	}
	expr, err := ep.ParseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.resyncFrom(ep.Cur()); err != nil {
		return nil, err
	}
	// The ExprParser lexes ')' as ArithRParen (matchExpr's Expr-mode
	// token kind), not RightSubshell (ShCommand's), since Oil's
	// condition paren never round-trips back through ShCommand mode.
	return expr, p.expectAdvance(ast.ArithRParen)
}

func (p *Parser) parseOilBraceBody() (*ast.CommandList, error) {
	if err := p.expectAdvance(ast.LeftBraceGroup); err != nil {
		return nil, err
	}
	body, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.RightBraceGroup })
	if err != nil {
		return nil, err
	}
	return body, p.expectAdvance(ast.RightBraceGroup)
}

func (p *Parser) parseWhileUntil(until bool) (ast.Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.opts.ParseParen && p.cur.Kind == ast.LeftSubshell {
		cond, err := p.parseOilParenCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseOilBraceBody()
		if err != nil {
			return nil, err
		}
		return &ast.WhileUntil{
			Until: until,
			Cond:  &ast.CommandList{Children: []ast.Command{&ast.OilCondition{Expr: cond}}},
			Body:  &ast.DoGroup{Body: body},
		}, nil
	}
	cond, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.KwDo })
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.KwDo); err != nil {
		return nil, err
	}
	body, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.KwDone })
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.KwDone); err != nil {
		return nil, err
	}
	return &ast.WhileUntil{Until: until, Cond: cond, Body: &ast.DoGroup{Body: body}}, nil
}

func (p *Parser) parseFor() (ast.Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind == ast.LeftDParen {
		return p.parseForExpr()
	}
	if p.opts.ParseForIn && p.cur.Kind == ast.LeftSubshell {
		return p.parseOilForIn()
	}
	varName := p.cur.Lit
	if err := p.advance(); err != nil {
		return nil, err
	}
	var words []ast.Word
	if p.cur.Kind == ast.KwIn {
		if p.peek.Kind == ast.OpSemi || p.peek.Kind == ast.OpNewline || p.peek.Kind == ast.EofReal {
			if err := p.advance(); err != nil { // cur -> ';'/newline/EOF, empty list
				return nil, err
			}
		} else {
			for {
				w, last, err := p.words.ReadWordWithLastToken(lexer.ShCommand)
				if err != nil {
					return nil, err
				}
				words = append(words, w)
				if err := p.resyncFrom(last); err != nil {
					return nil, err
				}
				if p.cur.Kind == ast.OpSemi || p.cur.Kind == ast.OpNewline || p.cur.Kind == ast.EofReal {
					break
				}
			}
		}
	}
	if p.cur.Kind == ast.OpSemi || p.cur.Kind == ast.OpNewline {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.KwDo); err != nil {
		return nil, err
	}
	body, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.KwDone })
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.KwDone); err != nil {
		return nil, err
	}
	return &ast.ForEach{VarName: varName, Words: words, Body: &ast.DoGroup{Body: body}}, nil
}

func (p *Parser) parseForExpr() (ast.Command, error) {
	// cur is the single '((' token; the init clause's first token must
	// reach tdop unconsumed, so there is no advance before handing off.
	sub, err := newArithSubParser(p)
	if err != nil {
		return nil, err
	}
	init, cond, update, err := sub.ParseTriple()
	if err != nil {
		return nil, err
	}
	if err := sub.Advance(); err != nil { // pull the closing '))' into Cur
		return nil, err
	}
	if err := p.resyncFrom(sub.Cur()); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.RightDollarDParen); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.KwDo); err != nil {
		return nil, err
	}
	body, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.KwDone })
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.KwDone); err != nil {
		return nil, err
	}
	return &ast.ForExpr{Init: init, Cond: cond, Update: update, Body: &ast.DoGroup{Body: body}}, nil
}

func (p *Parser) parseOilForIn() (ast.Command, error) {
	if err := p.expectAdvance(ast.LeftSubshell); err != nil {
		return nil, err
	}
	var names []string
	for {
		names = append(names, p.cur.Lit)
		if err := p.advance(); err != nil {
			return nil, err
		}
		// A bare ',' lexes as LitChars under ShCommand mode (which this
		// loop reads in via advance()), not ExprComma — that token kind
		// only exists under Expr mode.
		if p.cur.Kind == ast.LitChars && p.cur.Lit == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	// Not expectAdvance: the iterable's first token must reach the
	// ExprParser unconsumed (same hand-off concern as parseOilAssign's
	// RHS and parseOilParenCondition's condition).
	if p.cur.Kind != ast.KwIn {
		return nil, fmt.Errorf("cmdparser: expected %s, got %s", ast.KwIn, p.cur.Kind)
	}
	ep, err := p.newExprParser()
	if err != nil {
		return nil, err
	}
	iterable, err := ep.ParseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.resyncFrom(ep.Cur()); err != nil {
		return nil, err
	}
	// ArithRParen, not RightSubshell, for the same reason noted in
	// parseOilParenCondition.
	if err := p.expectAdvance(ast.ArithRParen); err != nil {
		return nil, err
	}
	body, err := p.parseOilBraceBody()
	if err != nil {
		return nil, err
	}
	return &ast.OilForIn{VarNames: names, Iterable: iterable, Body: &ast.BraceGroup{Body: body}}, nil
}

func (p *Parser) parseCase() (ast.Command, error) {
	// cur is still "case" itself; the subject word starts right after
	// it, so read it directly rather than advancing past "case" first
	// (which would hand the word's own first token to the lexer's
	// cursor before ReadWordWithLastToken gets to see it).
	subject, last, err := p.words.ReadWordWithLastToken(lexer.ShCommand)
	if err != nil {
		return nil, err
	}
	if err := p.resyncFrom(last); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.KwIn); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	n := &ast.Case{Subject: subject}
	for p.cur.Kind != ast.KwEsac {
		arm, err := p.parseCaseArm()
		if err != nil {
			return nil, err
		}
		n.Arms = append(n.Arms, arm)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	return n, p.expectAdvance(ast.KwEsac)
}

func (p *Parser) parseCaseArm() (ast.CaseArm, error) {
	var arm ast.CaseArm
	// cur is either the optional leading '(' or a boundary left over
	// from the previous arm/"in"; either way the next pattern word
	// starts right after it, so read it directly.
	for {
		pat, last, err := p.words.ReadWordWithLastToken(lexer.ShCommand)
		if err != nil {
			return arm, err
		}
		arm.Patterns = append(arm.Patterns, pat)
		if err := p.resyncFrom(last); err != nil {
			return arm, err
		}
		if p.cur.Kind == ast.OpPipe {
			continue
		}
		break
	}
	if err := p.expectAdvance(ast.RightSubshell); err != nil {
		return arm, err
	}
	body, err := p.parseCommandListUntil(isCaseTerminator)
	if err != nil {
		return arm, err
	}
	arm.Body = body
	arm.Terminator = p.cur.Kind
	if p.cur.Kind != ast.KwEsac {
		if err := p.advance(); err != nil {
			return arm, err
		}
	}
	return arm, nil
}

func isCaseTerminator(t ast.Token) bool {
	switch t.Kind {
	case ast.OpDSemi, ast.OpSemiAmp, ast.OpDSemiAmp, ast.KwEsac:
		return true
	}
	return false
}

func (p *Parser) parseFunctionKeyword() (ast.Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := p.cur.Lit
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind == ast.LeftSubshell {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectAdvance(ast.RightSubshell); err != nil {
			return nil, err
		}
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	body, err := p.parseFuncBody()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDef{Name: name, Body: body}, nil
}

func (p *Parser) parseFuncBody() (ast.Command, error) {
	switch p.cur.Kind {
	case ast.LeftBraceGroup:
		return p.parseBraceGroup()
	case ast.LeftSubshell:
		return p.parseSubshell()
	}
	return nil, fmt.Errorf("cmdparser: expected '{' or '(' to start function body, got %s", p.cur.Kind)
}

func (p *Parser) parseTime() (ast.Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	posix := false
	if p.cur.Kind == ast.LitChars && p.cur.Lit == "-p" {
		posix = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	child, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	return &ast.TimeBlock{PosixFormat: posix, Child: child}, nil
}

func (p *Parser) parseBraceGroup() (ast.Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.RightBraceGroup })
	if err != nil {
		return nil, err
	}
	return &ast.BraceGroup{Body: body}, p.expectAdvance(ast.RightBraceGroup)
}

func (p *Parser) parseSubshell() (ast.Command, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseCommandListUntil(func(t ast.Token) bool { return t.Kind == ast.RightSubshell })
	if err != nil {
		return nil, err
	}
	return &ast.Subshell{Body: body}, p.expectAdvance(ast.RightSubshell)
}

func (p *Parser) parseDBracket() (ast.Command, error) {
	bp, err := newBoolParser(p)
	if err != nil {
		return nil, err
	}
	expr, err := bp.ParseExpression(0)
	if err != nil {
		return nil, err
	}
	// boolparser's prefix parsers already advance past the last operand
	// word, leaving Cur on the ']]' that closed the expression.
	if err := p.resyncFrom(bp.Cur()); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.RightDBracket); err != nil {
		return nil, err
	}
	return &ast.DBracket{Expr: expr}, nil
}

func (p *Parser) parseDParen() (ast.Command, error) {
	// cur is the single '((' token; the expression's first token must
	// reach tdop unconsumed, so there is no advance before handing off.
	sub, err := newArithSubParser(p)
	if err != nil {
		return nil, err
	}
	expr, err := sub.ParseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := sub.Advance(); err != nil { // pull the closing '))' into Cur
		return nil, err
	}
	if err := p.resyncFrom(sub.Cur()); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.RightDollarDParen); err != nil {
		return nil, err
	}
	return &ast.DParen{Expr: expr}, nil
}

func (p *Parser) parseOilAssign() (ast.Command, error) {
	kw := p.cur.Kind
	if err := p.advance(); err != nil {
		return nil, err
	}
	var lhs []ast.OilLhs
	for {
		name := p.cur.Lit
		if err := p.advance(); err != nil {
			return nil, err
		}
		item := ast.OilLhs{Name: name}
		lhs = append(lhs, item)
		// Same LitChars-not-ExprComma distinction as parseOilForIn's names
		// loop: advance() reads under ShCommand mode here too.
		if p.cur.Kind == ast.LitChars && p.cur.Lit == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	op := p.cur.Kind
	if op == ast.LitChars && p.cur.Lit == "=" {
		op = ast.ExprEqual
	}
	// No p.advance() here: the RHS's first token must reach the
	// ExprParser unconsumed, the same reason ReadWordFromToken exists for
	// the WordParser — p.advance() reads under ShCommand mode, so eagerly
	// consuming it into p.cur would hand the ExprParser nothing to read
	// but the token *after* the RHS.
	ep, err := p.newExprParser()
	if err != nil {
		return nil, err
	}
	rhs, err := ep.ParseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.resyncFrom(ep.Cur()); err != nil {
		return nil, err
	}
	return &ast.OilAssign{Keyword: kw, Lhs: lhs, Op: op, Rhs: rhs}, nil
}

func (p *Parser) parseOilFuncProc() (ast.Command, error) {
	isProc := p.cur.Kind == ast.KwProc
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := p.cur.Lit
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(ast.LeftSubshell); err != nil {
		return nil, err
	}
	var params []ast.OilParam
	for p.cur.Kind != ast.RightSubshell {
		param := ast.OilParam{Name: p.cur.Lit}
		if err := p.advance(); err != nil {
			return nil, err
		}
		params = append(params, param)
		// Same LitChars-not-ExprComma distinction noted in parseOilAssign
		// and parseOilForIn.
		if p.cur.Kind == ast.LitChars && p.cur.Lit == "," {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectAdvance(ast.RightSubshell); err != nil {
		return nil, err
	}
	body, err := p.parseBraceGroup()
	if err != nil {
		return nil, err
	}
	return &ast.OilFuncProc{IsProc: isProc, Name: name, Params: params, Body: body.(*ast.BraceGroup)}, nil
}
