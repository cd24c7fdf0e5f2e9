package cmdparser

import (
	"strconv"
	"strings"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/lexer"
	"github.com/oilshell/oil-parser/linereader"
	"github.com/oilshell/oil-parser/wordparser"
)

// parseSimpleOrAssignOrFuncDef is parseCommand's fallback: the word
// sitting in p.cur (already committed by the caller's own advance, not
// yet handed to the WordParser) starts either a plain simple command, a
// run of leading NAME=value assignments with no command after them
// (spec.md §4.4's Assignment node), or an implicit `name() body`
// function definition.
//
// cur is read directly into ReadWordFromToken rather than advanced past
// first, for the same reason parseControlFlow and the boolparser operand
// case do: the WordParser may need to glue cur together with further
// tokens into one CompoundWord, and a plain advance() would have already
// committed cur's bytes as a standalone token before the WordParser ever
// saw them.
func (p *Parser) parseSimpleOrAssignOrFuncDef() (ast.Command, error) {
	var moreEnv []*ast.Assignment
	var words []ast.Word
	var redirects []*ast.Redirect
	assigning := true

	tok := p.cur
	for !simpleCommandEnds(tok) {
		if ast.KindOf(tok.Kind) == ast.KindRedir {
			redir, last, err := p.parseOneRedirect(tok, -1)
			if err != nil {
				return nil, err
			}
			redirects = append(redirects, redir)
			if err := p.resyncFrom(last); err != nil {
				return nil, err
			}
			tok = p.cur
			continue
		}

		if tok.Kind == ast.LitChars && isAllDigits(tok.Lit) {
			peek, err := p.lex.LookAhead(lexer.ShCommand)
			if err != nil {
				return nil, err
			}
			if ast.KindOf(peek.Kind) == ast.KindRedir {
				opTok, err := p.lex.Read(lexer.ShCommand)
				if err != nil {
					return nil, err
				}
				fd, _ := strconv.Atoi(tok.Lit)
				redir, last, err := p.parseOneRedirect(opTok, fd)
				if err != nil {
					return nil, err
				}
				redirects = append(redirects, redir)
				if err := p.resyncFrom(last); err != nil {
					return nil, err
				}
				tok = p.cur
				continue
			}
		}

		w, last, err := p.words.ReadWordFromToken(lexer.ShCommand, tok)
		if err != nil {
			return nil, err
		}

		if assigning {
			if pair, ok := splitAssignPrefix(w); ok {
				moreEnv = append(moreEnv, &ast.Assignment{Pairs: []ast.AssignPair{pair}})
				if err := p.resyncFrom(last); err != nil {
					return nil, err
				}
				tok = p.cur
				continue
			}
			assigning = false
		}

		// Only the very first argv word (nothing read yet at all) can
		// open an implicit function definition.
		if len(words) == 0 && len(moreEnv) == 0 && len(redirects) == 0 {
			if name, ok := wordLiteralText(w); ok {
				if err := p.resyncFrom(last); err != nil {
					return nil, err
				}
				if p.cur.Kind == ast.LeftSubshell && p.peek.Kind == ast.RightSubshell {
					return p.finishFuncDef(name)
				}
				words = append(words, w)
				tok = p.cur
				continue
			}
		}

		words = append(words, w)
		if err := p.resyncFrom(last); err != nil {
			return nil, err
		}
		tok = p.cur
	}

	if len(words) == 0 && len(moreEnv) > 0 {
		var pairs []ast.AssignPair
		for _, a := range moreEnv {
			pairs = append(pairs, a.Pairs...)
		}
		return &ast.Assignment{Pairs: pairs, Redirects: redirects}, nil
	}

	if len(moreEnv) == 0 && len(redirects) == 0 {
		if cmd, ok, err := p.maybeExpandAlias(words); err != nil {
			return nil, err
		} else if ok {
			return cmd, nil
		}
	}
	return &ast.SimpleCommand{Words: words, Redirects: redirects, MoreEnv: moreEnv}, nil
}

// maybeExpandAlias implements spec.md §4.6's alias re-expansion: when a
// plain simple command's first word statically evaluates to a name bound
// in the alias table and not already being expanded higher up the call
// stack, its bound text (followed by the rest of the command, retyped)
// is re-lexed and re-parsed as if the user had written it that way
// directly, guarded against cycles by aliasesInFlight.
//
// Retyping the rest of the command requires every suffix word's literal
// source text to be recoverable as a single-line span (wordSpanText);
// a word split across lines, or one the lexer never gave a span (none
// arise in practice, but the check is cheap), is rare enough that,
// rather than approximate it, expansion is simply skipped and the
// plain SimpleCommand kept as-is. Using the original source bytes
// rather than each word's statically-evaluated value matters: StaticEval
// would strip the quoting off `'foo bar'`, turning one argument into two
// once the reconstructed line is re-lexed.
func (p *Parser) maybeExpandAlias(words []ast.Word) (ast.Command, bool, error) {
	if len(words) == 0 {
		return nil, false, nil
	}
	name, ok := wordparser.StaticEval(words[0], nil)
	if !ok {
		return nil, false, nil
	}
	expansion, bound := p.aliases[name]
	if !bound || p.aliasesInFlight[name] {
		return nil, false, nil
	}

	var text strings.Builder
	text.WriteString(expansion)
	for _, w := range words[1:] {
		rest, ok := p.wordSpanText(w)
		if !ok {
			return nil, false, nil
		}
		if b := text.String(); b != "" && !strings.HasSuffix(b, " ") && !strings.HasSuffix(b, "\t") {
			text.WriteByte(' ')
		}
		text.WriteString(rest)
	}
	text.WriteByte('\n')

	p.aliasesInFlight[name] = true
	defer delete(p.aliasesInFlight, name)

	sub := lexer.New(linereader.NewString(text.String()), p.arena)
	subParser, err := New(sub, p.arena, p.opts)
	if err != nil {
		return nil, false, err
	}
	subParser.aliases = p.aliases
	subParser.aliasesInFlight = p.aliasesInFlight
	list, err := subParser.ParseProgram()
	if err != nil {
		return nil, false, err
	}
	var child ast.Command = list
	if len(list.Children) == 1 {
		child = list.Children[0]
	}
	return &ast.ExpandedAlias{Name: name, Child: child}, true, nil
}

// wordSpanText returns w's literal source bytes, from the start of its
// first part's span to the end of its last part's span, the way
// arena.SpanText does for a single span — single-line ranges only
// (spec.md §4.4 step 3), so a word whose parts straddle a line break
// reports !ok rather than return a spliced-together approximation.
func (p *Parser) wordSpanText(w ast.Word) (string, bool) {
	spans := w.Spans()
	if len(spans) == 0 {
		return "", false
	}
	first, ok := p.arena.GetLineSpan(spans[0])
	if !ok {
		return "", false
	}
	last, ok := p.arena.GetLineSpan(spans[len(spans)-1])
	if !ok || last.LineID != first.LineID {
		return "", false
	}
	line, ok := p.arena.GetLine(first.LineID)
	if !ok {
		return "", false
	}
	start, end := first.Col, last.Col+last.Length
	if start < 0 || end > len(line) || start > end {
		return "", false
	}
	return line[start:end], true
}

// finishFuncDef consumes the empty '()' pair cur/peek are already resting
// on and parses the body the same way parseFunctionKeyword's explicit
// `function name body` form does.
func (p *Parser) finishFuncDef(name string) (ast.Command, error) {
	if err := p.advance(); err != nil { // cur: '(' -> ')'
		return nil, err
	}
	if err := p.expectAdvance(ast.RightSubshell); err != nil {
		return nil, err
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

// parseOneRedirect reads one redirect's target, given its already-read
// operator token opTok. A here-doc operator (<<, <<-) only queues the
// delimiter word; the body is read later from ReadHereDocBody once the
// enclosing line's newline is reached (spec.md §4.4's pending here-doc
// rule — several here-docs can be queued on one line before any of their
// bodies are read).
func (p *Parser) parseOneRedirect(opTok ast.Token, fd int) (*ast.Redirect, ast.Token, error) {
	redir := &ast.Redirect{Op: opTok, Fd: fd}
	if opTok.Kind == ast.RedirLessLess || opTok.Kind == ast.RedirLessLessDash {
		redir.IsHereDoc = true
		redir.DashStrip = opTok.Kind == ast.RedirLessLessDash
		begin, last, err := p.words.ReadWordWithLastToken(lexer.ShCommand)
		if err != nil {
			return nil, last, err
		}
		redir.BeginWord = begin
		p.pendingHereDocs = append(p.pendingHereDocs, pendingHereDoc{redir: redir})
		return redir, last, nil
	}
	arg, last, err := p.words.ReadWordWithLastToken(lexer.ShCommand)
	if err != nil {
		return nil, last, err
	}
	redir.Arg = arg
	return redir, last, nil
}

// simpleCommandEnds reports whether tok closes a simple command's word/
// redirect loop: any operator, a closing delimiter belonging to an
// enclosing compound command, or (generically, covering then/fi/do/done/
// esac/elif/else without naming each one) any keyword.
func simpleCommandEnds(tok ast.Token) bool {
	switch tok.Kind {
	case ast.EofReal, ast.EofHint, ast.OpNewline, ast.OpSemi, ast.OpAmp, ast.OpAndAnd,
		ast.OpOrOr, ast.OpPipe, ast.OpPipeAmp, ast.OpSemiAmp, ast.OpDSemi, ast.OpDSemiAmp,
		ast.RightBraceGroup, ast.RightSubshell, ast.RightDBracket, ast.RightDParen:
		return true
	}
	return ast.KindOf(tok.Kind) == ast.KindKW
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// wordLiteralText returns w's text if it is made of nothing but plain
// literal characters (a bare name, as a function-definition's name or an
// assignment's LHS must be), and ok=false otherwise.
func wordLiteralText(w ast.Word) (string, bool) {
	switch v := w.(type) {
	case *ast.TokenWord:
		if v.Tok.Kind == ast.LitChars {
			return v.Tok.Lit, true
		}
	case *ast.CompoundWord:
		if len(v.Parts) == 1 {
			if lit, ok := v.Parts[0].(*ast.LiteralPart); ok {
				return lit.Tok.Lit, true
			}
		}
	}
	return "", false
}

// assignPrefix is what a leading "NAME=" / "NAME+=" / "NAME[index]="
// run, scanned out of one literal token's text, decomposes into.
type assignPrefix struct {
	name  string
	index string // raw text between [ and ], empty if no subscript
	plus  bool
	rest  string // whatever of the same literal run follows the '='
}

// scanAssignPrefix scans s for a leading assignment prefix. Only the
// prefix itself needs to live in one literal run; a valid assignment's
// RHS is free to carry substitutions of its own ($x=$(foo)), so this
// stops as soon as the '=' is found rather than trying to validate the
// whole word the way StaticEval does.
func scanAssignPrefix(s string) (assignPrefix, bool) {
	i := 0
	if i >= len(s) || !isNameStart(s[i]) {
		return assignPrefix{}, false
	}
	i++
	for i < len(s) && isNameCont(s[i]) {
		i++
	}
	name := s[:i]

	var index string
	if i < len(s) && s[i] == '[' {
		depth := 1
		j := i + 1
		for j < len(s) && depth > 0 {
			switch s[j] {
			case '[':
				depth++
			case ']':
				depth--
			}
			j++
		}
		if depth != 0 {
			return assignPrefix{}, false
		}
		index = s[i+1 : j-1]
		i = j
	}

	plus := false
	if i < len(s) && s[i] == '+' {
		plus = true
		i++
	}
	if i >= len(s) || s[i] != '=' {
		return assignPrefix{}, false
	}
	i++
	return assignPrefix{name: name, index: index, plus: plus, rest: s[i:]}, true
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameCont(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}

// splitAssignPrefix reports whether w's leading literal text opens with
// an assignment prefix, returning the parsed AssignPair (with RHS
// rebuilt from whatever literal remainder and further WordParts follow
// the '=').
//
// The lexer only fuses name-continuation bytes into one LitChars run, so
// "FOO=bar" comes back as two adjacent LiteralParts ("FOO", then "=bar",
// since '=' isn't a name byte): the prefix can straddle several leading
// LiteralParts, not just the first, so they are concatenated before
// scanning and the consumed byte count is walked back across them to
// split the boundary part and reassemble whatever remains into the RHS.
func splitAssignPrefix(w ast.Word) (ast.AssignPair, bool) {
	var leading []ast.Token
	var rest []ast.WordPart
	switch v := w.(type) {
	case *ast.CompoundWord:
		i := 0
		for ; i < len(v.Parts); i++ {
			lit, ok := v.Parts[i].(*ast.LiteralPart)
			if !ok {
				break
			}
			leading = append(leading, lit.Tok)
		}
		if len(leading) == 0 {
			return ast.AssignPair{}, false
		}
		rest = v.Parts[i:]
	case *ast.TokenWord:
		if v.Tok.Kind != ast.LitChars {
			return ast.AssignPair{}, false
		}
		leading = []ast.Token{v.Tok}
	default:
		return ast.AssignPair{}, false
	}

	var combined strings.Builder
	for _, t := range leading {
		combined.WriteString(t.Lit)
	}
	full := combined.String()
	pre, ok := scanAssignPrefix(full)
	if !ok {
		return ast.AssignPair{}, false
	}

	pair := ast.AssignPair{Name: pre.name, Plus: pre.plus}
	if pre.index != "" {
		pair.Index = &ast.TokenWord{Tok: ast.Token{Kind: ast.LitChars, Lit: pre.index}}
	}

	consumed := len(full) - len(pre.rest)
	var rhsParts []ast.WordPart
	off := 0
	for _, t := range leading {
		tl := len(t.Lit)
		if off+tl <= consumed {
			off += tl
			continue
		}
		start := 0
		if off < consumed {
			start = consumed - off
		}
		if start < tl {
			rhsParts = append(rhsParts, &ast.LiteralPart{Tok: ast.Token{Kind: ast.LitChars, Lit: t.Lit[start:]}})
		}
		off += tl
	}
	rhsParts = append(rhsParts, rest...)
	switch len(rhsParts) {
	case 0:
		pair.RHS = nil
	case 1:
		if lit, ok := rhsParts[0].(*ast.LiteralPart); ok {
			pair.RHS = &ast.TokenWord{Tok: lit.Tok}
		} else {
			pair.RHS = &ast.CompoundWord{Parts: rhsParts}
		}
	default:
		pair.RHS = &ast.CompoundWord{Parts: rhsParts}
	}
	return pair, true
}
