// Package cmdparser implements the command parser (spec.md §4.4-§4.6):
// simple commands via two-pass assignment/suffix splitting, pipelines
// and and-or lists, the compound command forms, alias re-expansion, the
// here-doc pending queue, and Oil's command-level additions (var/setvar/
// set, func/proc, for-in, paren conditions).
//
// Grounded on the *shape* of wudi-hey's parser.Parser (parser/parser.go):
// the same currentToken/peekToken cursor idiom and nextToken/expectPeek
// helpers, generalized from PHP statement parsing to this grammar's
// pipeline/and-or/compound-command structure, which has no direct
// analogue in the teacher.
package cmdparser

import (
	"github.com/oilshell/oil-parser/arena"
	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/boolparser"
	"github.com/oilshell/oil-parser/errors"
	"github.com/oilshell/oil-parser/exprparser"
	"github.com/oilshell/oil-parser/lexer"
	"github.com/oilshell/oil-parser/tdop"
	"github.com/oilshell/oil-parser/wordparser"
)

// pendingHereDoc is one `<<`/`<<-`/`<<<` redirect awaiting its body,
// queued until the enclosing command line's terminating newline is
// reached (spec.md §4.4's here-doc drain rule — a line can carry several
// here-doc operators, all filled in order once the newline is hit).
type pendingHereDoc struct {
	redir *ast.Redirect
}

// Parser is the command parser: a Lexer, an Arena, a WordParser built
// over the same Lexer, an error Reporter, the active Options, and the
// alias table plus in-flight cycle guard spec.md §4.6 requires.
type Parser struct {
	lex      *lexer.Lexer
	arena    *arena.Arena
	words    *wordparser.WordParser
	reporter *errors.Reporter
	opts     Options

	cur  ast.Token
	peek ast.Token

	aliases        map[string]string
	aliasesInFlight map[string]bool

	pendingHereDocs []pendingHereDoc
}

// New constructs a Parser reading from lex, recording into a, under the
// given Options.
func New(lex *lexer.Lexer, a *arena.Arena, opts Options) (*Parser, error) {
	p := &Parser{
		lex: lex, arena: a, opts: opts,
		reporter: errors.NewReporter(),
		aliases:  make(map[string]string),
		aliasesInFlight: make(map[string]bool),
	}
	p.words = wordparser.New(lex, p)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// resyncFrom re-anchors the Parser's cursor after a delegated reader has
// been reading directly from the shared Lexer: cur becomes the
// delegate's final token, and peek is previewed under ShCommand mode,
// the mode the outer grammar always resumes in.
//
// For a sub-parser (boolparser/tdop/exprparser) that final token is
// always its own closing delimiter. For the WordParser's
// ReadWordWithLastToken, it can instead be the WSSpace that separated
// the word just read from whatever follows (words.ReadWord only ever
// stops on a non-word-starting token, and plain inter-word space is
// one); WSSpace carries no content of its own, so it's skipped here by
// reading forward under ShCommand mode until a real token appears.
func (p *Parser) resyncFrom(cur ast.Token) error {
	for cur.Kind == ast.WSSpace {
		tok, err := p.lex.Read(lexer.ShCommand)
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

// advance shifts cur to the previously previewed peek (committing it
// for real via Read, which reuses the Lexer's cached lookahead entry
// instead of re-scanning) and previews the next one.
//
// peek is always populated via LookAhead rather than Read, so the raw
// byte position right after cur is never actually consumed until
// something calls advance again (or some other reader, like the
// WordParser, calls Read itself). This is what lets p.words.ReadWord
// and the boolparser/tdop/exprparser sub-parsers safely take over
// reading from the shared Lexer mid-grammar, under their own modes,
// without cur/peek having already eaten the bytes they need: a
// LookAhead under one mode is discarded, not committed, the moment a
// Read under a different mode asks for the same position.
func (p *Parser) advance() error {
	cur, err := p.lex.Read(lexer.ShCommand)
	if err != nil {
		return err
	}
	for cur.Kind == ast.WSSpace {
		cur, err = p.lex.Read(lexer.ShCommand)
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

// peekNonSpace previews the next non-whitespace token under ShCommand
// mode without consuming it, skipping whitespace by actually consuming
// it (whitespace carries no content worth preserving for a delegated
// reader, so this much destructiveness is always safe).
func (p *Parser) peekNonSpace() (ast.Token, error) {
	for {
		tok, err := p.lex.LookAhead(lexer.ShCommand)
		if err != nil {
			return tok, err
		}
		if tok.Kind != ast.WSSpace {
			return tok, nil
		}
		if _, err := p.lex.Read(lexer.ShCommand); err != nil {
			return ast.Token{}, err
		}
	}
}

// SetAlias registers or redefines an alias, as the `alias` builtin would
// at runtime feeding bindings back into the parser for a REPL.
func (p *Parser) SetAlias(name, expansion string) { p.aliases[name] = expansion }

// Errors returns every diagnostic accumulated so far.
func (p *Parser) Errors() errors.List { return p.reporter.Errors() }

// ParseCommandSub implements wordparser.CommandReader and
// exprparser.CommandReader: it parses one nested CommandList up to the
// delimiter its caller already knows about (the closing `)`/backtick/`]`
// is consumed by the caller, not here — this method stops as soon as a
// command finishes and the next token cannot start another command).
// mode is not consulted; the list is read through this Parser's own
// ShCommand-mode cursor.
func (p *Parser) ParseCommandSub(mode lexer.Mode) (ast.Command, error) {
	list, err := p.parseCommandListUntil(closesCommandSub)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ParseArithSub implements wordparser.CommandReader for $((...)):
// delegates straight to tdop, consuming the closing `))` itself since
// tdop's ParseExpression stops right before it.
func (p *Parser) ParseArithSub() (ast.ArithExpr, error) {
	sub, err := tdop.New(p.lex)
	if err != nil {
		return nil, err
	}
	expr, err := sub.ParseExpression(tdop.Lowest)
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ReadWordWithLastToken implements boolparser.WordReader, letting the
// bool parser resync its own cursor off the boundary token that ended
// the word instead of destructively advancing past the word's first
// token beforehand.
func (p *Parser) ReadWordWithLastToken(mode lexer.Mode) (ast.Word, ast.Token, error) {
	return p.words.ReadWordWithLastToken(mode)
}

// ReadWords implements exprparser.WordsReader for Oil's `@(word word)`
// array-literal splicing: reads words under ShCommand mode until the
// closing paren/right-delimiter the ExprParser is watching for.
func (p *Parser) ReadWords(mode lexer.Mode) ([]ast.Word, error) {
	var words []ast.Word
	for {
		w, last, err := p.words.ReadWordWithLastToken(mode)
		if err != nil {
			return nil, err
		}
		if tw, ok := w.(*ast.TokenWord); ok {
			_ = tw
			return words, nil
		}
		words = append(words, w)
		if last.Kind == ast.EofReal || last.Kind == ast.OpNewline {
			return words, nil
		}
	}
}

func closesCommandSub(tok ast.Token) bool {
	switch tok.Kind {
	case ast.RightDollarParen, ast.RightBacktick, ast.RightDollarBracket, ast.EofReal:
		return true
	}
	return false
}

// ParseProgram parses an entire top-level input as a CommandList, the
// grammar's start symbol (spec.md §3).
func (p *Parser) ParseProgram() (*ast.CommandList, error) {
	return p.parseCommandListUntil(func(tok ast.Token) bool { return tok.Kind == ast.EofReal })
}

func (p *Parser) parseCommandListUntil(stop func(ast.Token) bool) (*ast.CommandList, error) {
	list := &ast.CommandList{}
	for {
		for p.cur.Kind == ast.OpNewline || p.cur.Kind == ast.OpSemi {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if stop(p.cur) {
			return list, nil
		}
		cmd, err := p.parseAndOr()
		if err != nil {
			return nil, err
		}
		sentence, err := p.parseTrailer(cmd)
		if err != nil {
			return nil, err
		}
		list.Children = append(list.Children, sentence)
		if err := p.drainHereDocsIfNewline(); err != nil {
			return nil, err
		}
		if stop(p.cur) {
			return list, nil
		}
	}
}

// parseTrailer wraps cmd in a Sentence if followed by `;`/`&`, matching
// spec.md §4.4's trailing-operator rule; a bare newline/EOF/closing
// delimiter leaves cmd unwrapped.
func (p *Parser) parseTrailer(cmd ast.Command) (ast.Command, error) {
	switch p.cur.Kind {
	case ast.OpSemi, ast.OpAmp:
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Sentence{Child: cmd, Op: op}, nil
	}
	return cmd, nil
}

func (p *Parser) drainHereDocsIfNewline() error {
	if p.cur.Kind != ast.OpNewline || len(p.pendingHereDocs) == 0 {
		return nil
	}
	pending := p.pendingHereDocs
	p.pendingHereDocs = nil
	for _, h := range pending {
		delim, _ := wordparser.StaticEval(h.redir.BeginWord, p.reporter)
		quoted := wordparser.IsHereDocDelimQuoted(h.redir.BeginWord)
		parts, err := p.words.ReadHereDocBody(delim, quoted, h.redir.DashStrip, h.redir.Op.Span)
		if err != nil {
			return err
		}
		h.redir.Body = parts
		h.redir.BodyFilled = true
		h.redir.Quoted = quoted
	}
	return p.advance()
}

// parseAndOr parses a left-associative chain of pipelines joined by
// &&/||, per spec.md §4.4.
func (p *Parser) parseAndOr() (ast.Command, error) {
	first, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	andOr := &ast.AndOr{Children: []ast.Command{first}}
	for p.cur.Kind == ast.OpAndAnd || p.cur.Kind == ast.OpOrOr {
		op := p.cur.Kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.cur.Kind == ast.OpNewline {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		next, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		andOr.Ops = append(andOr.Ops, op)
		andOr.Children = append(andOr.Children, next)
	}
	if len(andOr.Children) == 1 {
		return andOr.Children[0], nil
	}
	return andOr, nil
}

// parsePipeline parses a `!`-prefixable, left-associative chain of
// commands joined by `|`/`|&`.
func (p *Parser) parsePipeline() (ast.Command, error) {
	negated := false
	if p.cur.Kind == ast.OpBang {
		negated = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	first, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	pipe := &ast.Pipeline{Children: []ast.Command{first}, Negated: negated, StderrIndices: map[int]bool{}}
	for p.cur.Kind == ast.OpPipe || p.cur.Kind == ast.OpPipeAmp {
		if p.cur.Kind == ast.OpPipeAmp {
			pipe.StderrIndices[len(pipe.Children)-1] = true
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.cur.Kind == ast.OpNewline {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		next, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		pipe.Children = append(pipe.Children, next)
	}
	if !negated && len(pipe.Children) == 1 {
		return pipe.Children[0], nil
	}
	return pipe, nil
}

// parseCommand dispatches on the current token to either a compound
// command form or a simple command (spec.md §4.4's full grammar).
func (p *Parser) parseCommand() (ast.Command, error) {
	if kw, ok := lexer.LookupOilKeyword(p.cur.Lit); ok && p.cur.Kind == ast.LitChars {
		switch kw {
		case ast.KwVar, ast.KwSetVar, ast.KwSetKw:
			if p.opts.ParseEquals {
				p.cur.Kind = kw
			}
		case ast.KwFunc, ast.KwProc:
			if p.opts.ParseFuncProc {
				p.cur.Kind = kw
			}
		}
	}
	switch p.cur.Kind {
	case ast.KwIf:
		return p.parseIf()
	case ast.KwWhile:
		return p.parseWhileUntil(false)
	case ast.KwUntil:
		return p.parseWhileUntil(true)
	case ast.KwFor:
		return p.parseFor()
	case ast.KwCase:
		return p.parseCase()
	case ast.KwFunction:
		return p.parseFunctionKeyword()
	case ast.KwTime:
		return p.parseTime()
	case ast.LeftBraceGroup:
		return p.parseBraceGroup()
	case ast.LeftSubshell:
		return p.parseSubshell()
	case ast.LeftDBracket:
		return p.parseDBracket()
	case ast.LeftDParen:
		return p.parseDParen()
	case ast.KwVar, ast.KwSetVar, ast.KwSetKw:
		if p.opts.ParseEquals {
			return p.parseOilAssign()
		}
	case ast.KwFunc, ast.KwProc:
		if p.opts.ParseFuncProc {
			return p.parseOilFuncProc()
		}
	case ast.KwBreak, ast.KwContinue, ast.KwReturn:
		return p.parseControlFlow()
	}
	return p.parseSimpleOrAssignOrFuncDef()
}

func (p *Parser) parseControlFlow() (ast.Command, error) {
	kw := p.cur.Kind
	// `return (expr)` is Oil's proc-return form (ast.Return, a
	// parenthesized expression), distinct from the POSIX `return [word]`
	// form (ast.ControlFlow) every other branch below builds; only take
	// this branch when parse_paren is active and a '(' actually follows,
	// so plain `return` and `return "$status"` keep going through the
	// word path.
	if kw == ast.KwReturn && p.opts.ParseParen && p.peek.Kind == ast.LeftSubshell {
		if err := p.advance(); err != nil { // cur: 'return' -> '('
			return nil, err
		}
		val, err := p.parseOilParenCondition()
		if err != nil {
			return nil, err
		}
		return &ast.Return{Value: val}, nil
	}
	var arg ast.Word
	if p.peek.Kind != ast.OpNewline && p.peek.Kind != ast.OpSemi && p.peek.Kind != ast.EofReal {
		// cur is still the keyword itself; the argument word starts
		// right after it, so read it directly rather than advancing
		// past the keyword first.
		w, last, err := p.words.ReadWordWithLastToken(lexer.ShCommand)
		if err != nil {
			return nil, err
		}
		if _, ok := w.(*ast.TokenWord); !ok {
			arg = w
		}
		if err := p.resyncFrom(last); err != nil {
			return nil, err
		}
	} else if err := p.advance(); err != nil { // cur -> newline/';'/EOF, no arg
		return nil, err
	}
	return &ast.ControlFlow{Keyword: kw, Arg: arg}, nil
}

// newExprParser builds an ExprParser sharing this Parser's Lexer and
// delegating Expr_WordsDummy/Expr_CommandDummy splicing back to the
// Parser itself (which already implements both narrow interfaces).
func (p *Parser) newExprParser() (*exprparser.Parser, error) {
	return exprparser.New(p.lex, p, p)
}

// newArithSubParser builds a tdop.Parser sharing this Parser's Lexer,
// for `((...))`/`for ((...))` headers (matches ParseArithSub's own
// tdop.New(p.lex) construction for $((...))).
func newArithSubParser(p *Parser) (*tdop.Parser, error) {
	return tdop.New(p.lex)
}

// newBoolParser builds a boolparser.Parser sharing this Parser's Lexer
// for `[[ ... ]]`, delegating operand-word reads back to the Parser
// itself (which implements boolparser.WordReader).
func newBoolParser(p *Parser) (*boolparser.Parser, error) {
	return boolparser.New(p.lex, p)
}
