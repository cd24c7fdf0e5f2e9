package lexer

import "github.com/oilshell/oil-parser/ast"

// shellKeywords maps reserved words to their KW_* token kind, consulted
// for every name-shaped run lexed in ShCommand mode, whatever its
// position in the command (an argument spelled `in` or `done` lexes as
// a keyword too). Bash's reserved words are
// lexical, not just parser-level identifiers, so the lexer — not the
// word parser — classifies them.
var shellKeywords = map[string]ast.TokenKind{
	"if": ast.KwIf, "then": ast.KwThen, "elif": ast.KwElif,
	"else": ast.KwElse, "fi": ast.KwFi,
	"for": ast.KwFor, "while": ast.KwWhile, "until": ast.KwUntil,
	"do": ast.KwDo, "done": ast.KwDone,
	"case": ast.KwCase, "esac": ast.KwEsac, "in": ast.KwIn,
	"function": ast.KwFunction, "time": ast.KwTime, "!": ast.KwBang,
	"break": ast.KwBreak, "continue": ast.KwContinue, "return": ast.KwReturn,
}

// oilKeywords are only recognized as keywords when the corresponding Oil
// option is enabled; the CommandParser, which knows the active Options,
// decides whether to treat a Lit_Chars word matching one of these as a
// keyword or as an ordinary command name. The lexer itself always
// reports these literally; see cmdparser for the option-gated dispatch.
var oilKeywords = map[string]ast.TokenKind{
	"var": ast.KwVar, "setvar": ast.KwSetVar, "set": ast.KwSetKw,
	"func": ast.KwFunc, "proc": ast.KwProc,
}

// LookupKeyword returns the KW_* token kind for name if it is a POSIX
// shell reserved word, with ok=true.
func LookupKeyword(name string) (ast.TokenKind, bool) {
	k, ok := shellKeywords[name]
	return k, ok
}

// LookupOilKeyword returns the KW_* token kind for name if it is one of
// the Oil keywords (var/setvar/set/func/proc), with ok=true. Callers
// must additionally check the relevant Options field before treating it
// as reserved.
func LookupOilKeyword(name string) (ast.TokenKind, bool) {
	k, ok := oilKeywords[name]
	return k, ok
}
