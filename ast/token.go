package ast

import "fmt"

// TokenKind is the closed enumeration of lexeme kinds the lexer can
// produce. Every kind maps to exactly one coarser Kind via KindOf.
type TokenKind int

// Kind is the coarse partition a TokenKind belongs to, used by callers
// that only care about the category (e.g. "skip Kind.Ignored tokens").
type Kind int

const (
	KindLit Kind = iota
	KindOp
	KindKW
	KindWS
	KindLeft
	KindRight
	KindRedir
	KindBoolUnary
	KindBoolBinary
	KindExtGlob
	KindChar
	KindVSub
	KindArith
	KindExpr
	KindEof
	KindUnknown
	KindIgnored
)

var kindNames = map[Kind]string{
	KindLit: "Lit", KindOp: "Op", KindKW: "KW", KindWS: "WS",
	KindLeft: "Left", KindRight: "Right", KindRedir: "Redir",
	KindBoolUnary: "BoolUnary", KindBoolBinary: "BoolBinary",
	KindExtGlob: "ExtGlob", KindChar: "Char", KindVSub: "VSub",
	KindArith: "Arith", KindExpr: "Expr", KindEof: "Eof",
	KindUnknown: "Unknown", KindIgnored: "Ignored",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// Token kind constants, grouped by category in the style of the
// teacher's PHP token enumeration (one const block per lexical family).
const (
	Unknown TokenKind = iota
	EofReal
	EofHint // hint-rewrite target used to disambiguate command-sub EOF

	// Literal / whitespace / ignored
	LitChars
	LitEscapedChar
	LitCompDummy // inserted by EmitCompDummy just before Eof_Real
	WSSpace
	Ignored
	OpNewline

	// Operators recognised in ShCommand mode
	OpPipe
	OpPipeAmp
	OpAndAnd
	OpOrOr
	OpSemi
	OpAmp
	OpSemiAmp
	OpDSemi
	OpDSemiAmp
	OpAndGreat
	OpBang

	// Left/Right paired delimiters across modes
	LeftDParen
	RightDParen
	LeftDBracket
	RightDBracket
	LeftSubshell // (
	RightSubshell
	LeftBraceGroup // {
	RightBraceGroup
	LeftBacktick
	RightBacktick
	LeftDollarParen   // $(
	RightDollarParen  // )
	LeftDollarDParen  // $((
	RightDollarDParen // ))
	LeftDollarBrace // ${
	RightDollarBrace
	LeftDollarSQ // $'
	RightDollarSQ
	LeftDQ // "
	RightDQ
	LeftSQ
	RightSQ
	LeftExtGlob // @( ?( *( +( !(
	RightExtGlob
	LeftArrayLiteral // @(  (Oil array literal)
	RightArrayLiteral
	LeftDollarSlash // $/
	RightDollarSlash
	LeftDollarBracket // $[
	RightDollarBracket
	LeftAtBracket // @[
	RightAtBracket
	LeftDoubleQuoteOil
	RightDoubleQuoteOil

	// Redirects
	RedirLess
	RedirGreat
	RedirDGreat
	RedirLessLess
	RedirLessLessDash
	RedirLessLessLess
	RedirLessGreat
	RedirGreatAnd
	RedirLessAnd
	RedirClobber

	// Keywords
	KwIf
	KwThen
	KwElif
	KwElse
	KwFi
	KwFor
	KwWhile
	KwUntil
	KwDo
	KwDone
	KwCase
	KwEsac
	KwIn
	KwFunction
	KwTime
	KwBang
	KwBreak
	KwContinue
	KwReturn
	KwVar
	KwSetVar
	KwSetKw
	KwFunc
	KwProc

	// Boolean ([[ ]]) operators
	BoolUnaryZ
	BoolUnaryN
	BoolUnaryF
	BoolUnaryD
	BoolUnaryE
	BoolBinaryEq
	BoolBinaryNe
	BoolBinaryLt
	BoolBinaryGt
	BoolBinaryEqEq
	BoolBinaryTildeEq

	// Extended-glob / char-class
	ExtGlobAt
	ExtGlobQuestion
	ExtGlobStar
	ExtGlobPlus
	ExtGlobBang
	CharClassChar

	// Variable substitution
	VSubName
	VSubNumber
	VSubSpecial // $?, $!, $$, $#, $@, $*, $-, $0
	VSubOp      // :-, :=, :?, :+, #, ##, %, %%, /, //

	// Arithmetic
	ArithNumber
	ArithName
	ArithPlus
	ArithMinus
	ArithStar
	ArithSlash
	ArithPercent
	ArithLParen
	ArithRParen
	ArithComma
	ArithAssign
	ArithLess
	ArithGreater
	ArithLessEq
	ArithGreaterEq
	ArithEqEq
	ArithNotEq
	ArithIncr
	ArithDecr

	// Oil expression tokens
	ExprName
	ExprNumber
	ExprString
	ExprPlus
	ExprMinus
	ExprStar
	ExprSlash
	ExprDot
	ExprEqual
	ExprEqEq
	ExprArrow
	ExprComma
	ExprColon
	ExprLBracket
	ExprRBracket
	ExprLBrace
	ExprRBrace
	ExprWordsDummy   // carries []Word payload, never ends a start symbol
	ExprCommandDummy // carries *CommandSubPart payload

	// History expansion (best-effort, see lexer/history.go)
	HistoryBang
	HistoryBangBang
	HistoryCaret
)

var tokenNames = map[TokenKind]string{
	Unknown: "Unknown", EofReal: "Eof_Real", EofHint: "Eof_Hint",
	LitChars: "Lit_Chars", LitEscapedChar: "Lit_EscapedChar",
	LitCompDummy: "Lit_CompDummy", WSSpace: "WS_Space", Ignored: "Ignored",
	OpNewline: "Op_Newline", OpPipe: "Op_Pipe", OpPipeAmp: "Op_PipeAmp",
	OpAndAnd: "Op_AndAnd", OpOrOr: "Op_OrOr", OpSemi: "Op_Semi",
	OpAmp: "Op_Amp", OpSemiAmp: "Op_SemiAmp", OpDSemi: "Op_DSemi",
	OpDSemiAmp: "Op_DSemiAmp", OpAndGreat: "Op_AndGreat",
	OpBang: "Op_Bang",
	LeftDParen: "Left_DParen", RightDParen: "Right_DParen",
	LeftDBracket: "Left_DBracket", RightDBracket: "Right_DBracket",
	LeftSubshell: "Left_Subshell", RightSubshell: "Right_Subshell",
	LeftBraceGroup: "Left_BraceGroup", RightBraceGroup: "Right_BraceGroup",
	LeftBacktick: "Left_Backtick", RightBacktick: "Right_Backtick",
	LeftDollarParen: "Left_DollarParen", RightDollarParen: "Right_DollarParen",
	LeftDollarDParen: "Left_DollarDParen", RightDollarDParen: "Right_DollarDParen",
	LeftDollarBrace: "Left_DollarBrace", RightDollarBrace: "Right_DollarBrace",
	LeftDollarSQ: "Left_DollarSQ", RightDollarSQ: "Right_DollarSQ",
	LeftDQ: "Left_DQ", RightDQ: "Right_DQ",
	LeftSQ: "Left_SQ", RightSQ: "Right_SQ",
	LeftExtGlob: "Left_ExtGlob", RightExtGlob: "Right_ExtGlob",
	LeftArrayLiteral: "Left_ArrayLiteral", RightArrayLiteral: "Right_ArrayLiteral",
	LeftDollarSlash: "Left_DollarSlash", RightDollarSlash: "Right_DollarSlash",
	LeftDollarBracket: "Left_DollarBracket", RightDollarBracket: "Right_DollarBracket",
	LeftAtBracket: "Left_AtBracket", RightAtBracket: "Right_AtBracket",
	LeftDoubleQuoteOil: "Left_DoubleQuote", RightDoubleQuoteOil: "Right_DoubleQuote",
	RedirLess: "Redir_Less", RedirGreat: "Redir_Great",
	RedirDGreat: "Redir_DGreat", RedirLessLess: "Redir_LessLess",
	RedirLessLessDash: "Redir_LessLessDash", RedirLessLessLess: "Redir_LessLessLess",
	RedirLessGreat: "Redir_LessGreat", RedirGreatAnd: "Redir_GreatAnd",
	RedirLessAnd: "Redir_LessAnd", RedirClobber: "Redir_Clobber",
	KwIf: "KW_If", KwThen: "KW_Then", KwElif: "KW_Elif", KwElse: "KW_Else",
	KwFi: "KW_Fi", KwFor: "KW_For", KwWhile: "KW_While", KwUntil: "KW_Until",
	KwDo: "KW_Do", KwDone: "KW_Done", KwCase: "KW_Case", KwEsac: "KW_Esac",
	KwIn: "KW_In", KwFunction: "KW_Function", KwTime: "KW_Time",
	KwBang: "KW_Bang", KwBreak: "KW_Break", KwContinue: "KW_Continue",
	KwReturn: "KW_Return", KwVar: "KW_Var", KwSetVar: "KW_SetVar",
	KwSetKw: "KW_Set", KwFunc: "KW_Func", KwProc: "KW_Proc",
	BoolUnaryZ: "BoolUnary_z", BoolUnaryN: "BoolUnary_n",
	BoolUnaryF: "BoolUnary_f", BoolUnaryD: "BoolUnary_d", BoolUnaryE: "BoolUnary_e",
	BoolBinaryEq: "BoolBinary_eq", BoolBinaryNe: "BoolBinary_ne",
	BoolBinaryLt: "BoolBinary_lt", BoolBinaryGt: "BoolBinary_gt",
	BoolBinaryEqEq: "BoolBinary_eqeq", BoolBinaryTildeEq: "BoolBinary_tildeeq",
	ExtGlobAt: "ExtGlob_At", ExtGlobQuestion: "ExtGlob_Question",
	ExtGlobStar: "ExtGlob_Star", ExtGlobPlus: "ExtGlob_Plus",
	ExtGlobBang: "ExtGlob_Bang", CharClassChar: "Char_Class",
	VSubName: "VSub_Name", VSubNumber: "VSub_Number",
	VSubSpecial: "VSub_Special", VSubOp: "VSub_Op",
	ArithNumber: "Arith_Number", ArithName: "Arith_Name",
	ArithPlus: "Arith_Plus", ArithMinus: "Arith_Minus",
	ArithStar: "Arith_Star", ArithSlash: "Arith_Slash",
	ArithPercent: "Arith_Percent", ArithLParen: "Arith_LParen",
	ArithRParen: "Arith_RParen", ArithComma: "Arith_Comma",
	ArithAssign: "Arith_Assign",
	ArithLess: "Arith_Less", ArithGreater: "Arith_Greater",
	ArithLessEq: "Arith_LessEq", ArithGreaterEq: "Arith_GreaterEq",
	ArithEqEq: "Arith_EqEq", ArithNotEq: "Arith_NotEq",
	ArithIncr: "Arith_Incr", ArithDecr: "Arith_Decr",
	ExprName: "Expr_Name", ExprNumber: "Expr_Number", ExprString: "Expr_String",
	ExprPlus: "Expr_Plus", ExprMinus: "Expr_Minus", ExprStar: "Expr_Star",
	ExprSlash: "Expr_Slash", ExprDot: "Expr_Dot", ExprEqual: "Expr_Equal",
	ExprEqEq: "Expr_EqEq", ExprArrow: "Expr_Arrow", ExprComma: "Expr_Comma",
	ExprColon: "Expr_Colon", ExprLBracket: "Expr_LBracket", ExprRBracket: "Expr_RBracket",
	ExprLBrace: "Expr_LBrace", ExprRBrace: "Expr_RBrace",
	ExprWordsDummy: "Expr_WordsDummy", ExprCommandDummy: "Expr_CommandDummy",
	HistoryBang: "History_Bang", HistoryBangBang: "History_BangBang",
	HistoryCaret: "History_Caret",
}

func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// kindOf partitions each TokenKind into its coarse Kind. Built once from
// the const ranges above rather than duplicated per-token, matching the
// teacher's single source-of-truth TokenNames map idiom.
var kindTable = buildKindTable()

func buildKindTable() map[TokenKind]Kind {
	m := make(map[TokenKind]Kind, len(tokenNames))
	set := func(k Kind, ks ...TokenKind) {
		for _, tk := range ks {
			m[tk] = k
		}
	}
	set(KindUnknown, Unknown)
	set(KindEof, EofReal, EofHint)
	set(KindLit, LitChars, LitEscapedChar, LitCompDummy)
	set(KindIgnored, WSSpace, Ignored)
	set(KindOp, OpNewline, OpPipe, OpPipeAmp, OpAndAnd, OpOrOr, OpSemi,
		OpAmp, OpSemiAmp, OpDSemi, OpDSemiAmp, OpAndGreat, OpBang)
	set(KindLeft, LeftDParen, LeftDBracket, LeftSubshell, LeftBraceGroup,
		LeftBacktick, LeftDollarParen, LeftDollarDParen, LeftDollarBrace,
		LeftDollarSQ, LeftDQ, LeftSQ, LeftExtGlob, LeftArrayLiteral,
		LeftDollarSlash, LeftDollarBracket, LeftAtBracket, LeftDoubleQuoteOil)
	set(KindRight, RightDParen, RightDBracket, RightSubshell, RightBraceGroup,
		RightBacktick, RightDollarParen, RightDollarDParen, RightDollarBrace,
		RightDollarSQ, RightDQ, RightSQ, RightExtGlob, RightArrayLiteral,
		RightDollarSlash, RightDollarBracket, RightAtBracket, RightDoubleQuoteOil)
	set(KindRedir, RedirLess, RedirGreat, RedirDGreat, RedirLessLess,
		RedirLessLessDash, RedirLessLessLess, RedirLessGreat, RedirGreatAnd,
		RedirLessAnd, RedirClobber)
	set(KindKW, KwIf, KwThen, KwElif, KwElse, KwFi, KwFor, KwWhile, KwUntil,
		KwDo, KwDone, KwCase, KwEsac, KwIn, KwFunction, KwTime, KwBang,
		KwBreak, KwContinue, KwReturn, KwVar, KwSetVar, KwSetKw, KwFunc, KwProc)
	set(KindBoolUnary, BoolUnaryZ, BoolUnaryN, BoolUnaryF, BoolUnaryD, BoolUnaryE)
	set(KindBoolBinary, BoolBinaryEq, BoolBinaryNe, BoolBinaryLt, BoolBinaryGt,
		BoolBinaryEqEq, BoolBinaryTildeEq)
	set(KindExtGlob, ExtGlobAt, ExtGlobQuestion, ExtGlobStar, ExtGlobPlus, ExtGlobBang)
	set(KindChar, CharClassChar)
	set(KindVSub, VSubName, VSubNumber, VSubSpecial, VSubOp)
	set(KindArith, ArithNumber, ArithName, ArithPlus, ArithMinus, ArithStar,
		ArithSlash, ArithPercent, ArithLParen, ArithRParen, ArithComma, ArithAssign,
		ArithLess, ArithGreater, ArithLessEq, ArithGreaterEq, ArithEqEq, ArithNotEq,
		ArithIncr, ArithDecr)
	set(KindExpr, ExprName, ExprNumber, ExprString, ExprPlus, ExprMinus,
		ExprStar, ExprSlash, ExprDot, ExprEqual, ExprEqEq, ExprArrow, ExprComma,
		ExprColon, ExprLBracket, ExprRBracket, ExprLBrace, ExprRBrace,
		ExprWordsDummy, ExprCommandDummy)
	set(KindOp, HistoryBang, HistoryBangBang, HistoryCaret)
	return m
}

// KindOf returns the coarse Kind for a TokenKind.
func KindOf(tk TokenKind) Kind {
	if k, ok := kindTable[tk]; ok {
		return k
	}
	return KindUnknown
}

// Token is a single lexeme: a kind, its literal text, and the span id it
// occupies in the Arena that produced it.
type Token struct {
	Kind TokenKind
	Lit  string
	Span SpanID
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s %q span=%d}", t.Kind, t.Lit, t.Span)
}
