package ast

// ArithExpr is the sum type produced by the TDOP arithmetic parser for
// `$(( ))` / `(( ))` / the three clauses of `for (( ; ; ))`.
type ArithExpr interface {
	Node
	arithExprNode()
}

// ArithWord is a literal/variable operand, lexed under Arith mode.
type ArithWord struct {
	Base
	Tok Token // Arith_Number or Arith_Name
}

func (e *ArithWord) arithExprNode()       {}
func (e *ArithWord) GetChildren() []Node  { return nil }
func (e *ArithWord) Accept(v Visitor)     { Walk(v, e) }

// ArithVarSub embeds a $name / ${name} read inside an arithmetic context.
type ArithVarSub struct {
	Base
	Part WordPart
}

func (e *ArithVarSub) arithExprNode()       {}
func (e *ArithVarSub) GetChildren() []Node  { return []Node{e.Part} }
func (e *ArithVarSub) Accept(v Visitor)     { Walk(v, e) }

// ArithUnary is -x, +x, !x, ~x, ++x, --x, x++, x--.
type ArithUnary struct {
	Base
	Op      TokenKind
	OpLit   string
	Operand ArithExpr
	Postfix bool
}

func (e *ArithUnary) arithExprNode()      {}
func (e *ArithUnary) GetChildren() []Node { return []Node{e.Operand} }
func (e *ArithUnary) Accept(v Visitor)    { Walk(v, e) }

// ArithBinary is a left/right binary operation, including assignment
// (=, +=, ...), comparison, and the ternary's two halves folded into a
// nested ArithBinary pair under ArithTernary below.
type ArithBinary struct {
	Base
	Op    TokenKind
	OpLit string
	Left  ArithExpr
	Right ArithExpr
}

func (e *ArithBinary) arithExprNode()      {}
func (e *ArithBinary) GetChildren() []Node { return []Node{e.Left, e.Right} }
func (e *ArithBinary) Accept(v Visitor)    { Walk(v, e) }

// ArithTernary is cond ? t : f.
type ArithTernary struct {
	Base
	Cond, Then, Else ArithExpr
}

func (e *ArithTernary) arithExprNode()      {}
func (e *ArithTernary) GetChildren() []Node { return []Node{e.Cond, e.Then, e.Else} }
func (e *ArithTernary) Accept(v Visitor)    { Walk(v, e) }

// ---------------------------------------------------------------------

// BoolExpr is the sum type the [[ ]] Pratt parser produces.
type BoolExpr interface {
	Node
	boolExprNode()
}

// BoolWord is an operand word of a [[ ]] expression (e.g. the argument
// to -z, or either side of ==).
type BoolWord struct {
	Base
	W Word
}

func (e *BoolWord) boolExprNode()      {}
func (e *BoolWord) GetChildren() []Node { return []Node{e.W} }
func (e *BoolWord) Accept(v Visitor)    { Walk(v, e) }

// BoolUnaryOp is `-z WORD`, `-f WORD`, etc.
type BoolUnaryOp struct {
	Base
	Op   TokenKind
	Arg  Word
}

func (e *BoolUnaryOp) boolExprNode()      {}
func (e *BoolUnaryOp) GetChildren() []Node { return []Node{e.Arg} }
func (e *BoolUnaryOp) Accept(v Visitor)    { Walk(v, e) }

// BoolBinaryOp is `L -eq R`, `L == R`, `L =~ R`, etc.
type BoolBinaryOp struct {
	Base
	Op    TokenKind
	Left  Word
	Right Word
}

func (e *BoolBinaryOp) boolExprNode()      {}
func (e *BoolBinaryOp) GetChildren() []Node { return []Node{e.Left, e.Right} }
func (e *BoolBinaryOp) Accept(v Visitor)    { Walk(v, e) }

// BoolNot, BoolAnd, BoolOr compose boolean sub-expressions.
type BoolNot struct {
	Base
	Operand BoolExpr
}

func (e *BoolNot) boolExprNode()      {}
func (e *BoolNot) GetChildren() []Node { return []Node{e.Operand} }
func (e *BoolNot) Accept(v Visitor)    { Walk(v, e) }

type BoolAndOr struct {
	Base
	IsAnd bool
	Left  BoolExpr
	Right BoolExpr
}

func (e *BoolAndOr) boolExprNode()      {}
func (e *BoolAndOr) GetChildren() []Node { return []Node{e.Left, e.Right} }
func (e *BoolAndOr) Accept(v Visitor)    { Walk(v, e) }

// ---------------------------------------------------------------------

// OilExpr is the sum type the table-driven ExprParser produces for Oil's
// expression sublanguage: `var`/`setvar` right-hand sides, `if (...)`
// conditions, func/proc default values, and the bodies of $(...)/${...}/
// $[...]/$/.../ spliced in under Expr mode.
type OilExpr interface {
	Node
	oilExprNode()
}

// OilLiteral is a number, string, bool, or null literal.
type OilLiteral struct {
	Base
	Tok Token
}

func (e *OilLiteral) oilExprNode()      {}
func (e *OilLiteral) GetChildren() []Node { return nil }
func (e *OilLiteral) Accept(v Visitor)  { Walk(v, e) }

// OilVar is a bare variable reference `x`.
type OilVar struct {
	Base
	Name string
}

func (e *OilVar) oilExprNode()      {}
func (e *OilVar) GetChildren() []Node { return nil }
func (e *OilVar) Accept(v Visitor)  { Walk(v, e) }

// OilUnary / OilBinary mirror the arithmetic shapes for the Oil grammar
// (+ - * / ** and / or not == != < > <= >= in is).
type OilUnary struct {
	Base
	Op      TokenKind
	Operand OilExpr
}

func (e *OilUnary) oilExprNode()      {}
func (e *OilUnary) GetChildren() []Node { return []Node{e.Operand} }
func (e *OilUnary) Accept(v Visitor)  { Walk(v, e) }

type OilBinary struct {
	Base
	Op    TokenKind
	Left  OilExpr
	Right OilExpr
}

func (e *OilBinary) oilExprNode()      {}
func (e *OilBinary) GetChildren() []Node { return []Node{e.Left, e.Right} }
func (e *OilBinary) Accept(v Visitor)  { Walk(v, e) }

// OilIndex is base[index].
type OilIndex struct {
	Base
	Recv  OilExpr
	Index OilExpr
}

func (e *OilIndex) oilExprNode()      {}
func (e *OilIndex) GetChildren() []Node { return []Node{e.Recv, e.Index} }
func (e *OilIndex) Accept(v Visitor)  { Walk(v, e) }

// OilAttr is base.attr.
type OilAttr struct {
	Base
	Recv OilExpr
	Attr string
}

func (e *OilAttr) oilExprNode()      {}
func (e *OilAttr) GetChildren() []Node { return []Node{e.Recv} }
func (e *OilAttr) Accept(v Visitor)  { Walk(v, e) }

// OilCall is f(args).
type OilCall struct {
	Base
	Callee OilExpr
	Args   []OilExpr
}

func (e *OilCall) oilExprNode() {}
func (e *OilCall) GetChildren() []Node {
	children := make([]Node, 0, len(e.Args)+1)
	children = append(children, e.Callee)
	for _, a := range e.Args {
		children = append(children, a)
	}
	return children
}
func (e *OilCall) Accept(v Visitor) { Walk(v, e) }

// OilArrayLiteral is @(word word ...), spliced in from the WordParser
// via the Expr_WordsDummy terminal (see spec.md §4.5 splicing rules).
type OilArrayLiteral struct {
	Base
	Words []Word
}

func (e *OilArrayLiteral) oilExprNode() {}
func (e *OilArrayLiteral) GetChildren() []Node {
	children := make([]Node, len(e.Words))
	for i, w := range e.Words {
		children[i] = w
	}
	return children
}
func (e *OilArrayLiteral) Accept(v Visitor) { Walk(v, e) }

// OilCommandSub is $(...) inside an Oil expression, spliced in from the
// CommandParser via the Expr_CommandDummy terminal.
type OilCommandSub struct {
	Base
	Child Command
}

func (e *OilCommandSub) oilExprNode()      {}
func (e *OilCommandSub) GetChildren() []Node { return []Node{e.Child} }
func (e *OilCommandSub) Accept(v Visitor)  { Walk(v, e) }

// OilVarSub is ${...} read while inside an Oil expression (VSub_Oil mode).
type OilVarSub struct {
	Base
	Part WordPart
}

func (e *OilVarSub) oilExprNode()      {}
func (e *OilVarSub) GetChildren() []Node { return []Node{e.Part} }
func (e *OilVarSub) Accept(v Visitor)  { Walk(v, e) }

// OilCommandArraySub is $[...] (Command mode nested inside an Oil
// expression), holding the parsed command.
type OilCommandArraySub struct {
	Base
	Child Command
}

func (e *OilCommandArraySub) oilExprNode()      {}
func (e *OilCommandArraySub) GetChildren() []Node { return []Node{e.Child} }
func (e *OilCommandArraySub) Accept(v Visitor)  { Walk(v, e) }

// OilDoubleQuoted is "..." inside an Oil expression: a sequence of
// literal/var-sub/expr-sub pieces, mirroring QuotedPart but typed as an
// OilExpr so it composes with the rest of the expression grammar.
type OilDoubleQuoted struct {
	Base
	Parts []OilExpr
}

func (e *OilDoubleQuoted) oilExprNode() {}
func (e *OilDoubleQuoted) GetChildren() []Node {
	children := make([]Node, len(e.Parts))
	for i, p := range e.Parts {
		children[i] = p
	}
	return children
}
func (e *OilDoubleQuoted) Accept(v Visitor) { Walk(v, e) }

// OilRegex is $/ ... / : a sequence of regex atoms (literals and char
// classes), per scenario 6 of spec.md §8.
type OilRegex struct {
	Base
	Atoms []RegexAtom
}

func (e *OilRegex) oilExprNode() {}
func (e *OilRegex) GetChildren() []Node {
	children := make([]Node, len(e.Atoms))
	for i, a := range e.Atoms {
		children[i] = a
	}
	return children
}
func (e *OilRegex) Accept(v Visitor) { Walk(v, e) }

// RegexAtom is one piece of an OilRegex: a literal or a [...] char class.
type RegexAtom interface {
	Node
	regexAtomNode()
}

type RegexLiteral struct {
	Base
	Text string
}

func (a *RegexLiteral) regexAtomNode()    {}
func (a *RegexLiteral) GetChildren() []Node { return nil }
func (a *RegexLiteral) Accept(v Visitor)  { Walk(v, a) }

type RegexCharClass struct {
	Base
	Chars string // e.g. "b c" parsed down to "bc"
}

func (a *RegexCharClass) regexAtomNode()    {}
func (a *RegexCharClass) GetChildren() []Node { return nil }
func (a *RegexCharClass) Accept(v Visitor)  { Walk(v, a) }
