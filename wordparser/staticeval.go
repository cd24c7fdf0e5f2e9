package wordparser

import (
	"strings"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/errors"
)

// StaticEval reduces a Word to a plain string at parse time, for the
// contexts spec.md requires it (here-doc delimiters, which must be a
// single unquoted-or-quoted word with no live substitution; assignment
// names; case-pattern literals the parser pre-scans for alias lookup).
// It fails with an AssertionError-flavored report if the word contains
// anything that can only be resolved at runtime (a variable or command
// substitution).
func StaticEval(w ast.Word, reporter *errors.Reporter) (string, bool) {
	switch word := w.(type) {
	case *ast.TokenWord:
		return word.Tok.Lit, true
	case *ast.CompoundWord:
		var b strings.Builder
		for _, part := range word.Parts {
			s, ok := staticEvalPart(part, reporter)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	default:
		return "", false
	}
}

func staticEvalPart(p ast.WordPart, reporter *errors.Reporter) (string, bool) {
	switch part := p.(type) {
	case *ast.LiteralPart:
		return unescapeLiteral(part.Tok), true
	case *ast.QuotedPart:
		var b strings.Builder
		for _, inner := range part.Parts {
			s, ok := staticEvalPart(inner, reporter)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	case *ast.TildeSubPart:
		if part.UserName == "" {
			return "~", true
		}
		return "~" + part.UserName, true
	default:
		if reporter != nil {
			reporter.Report(errors.NewAssertionError(
				"word part cannot be statically evaluated (contains a substitution)", ast.NoSpan))
		}
		return "", false
	}
}

func unescapeLiteral(tok ast.Token) string {
	if tok.Kind != ast.LitEscapedChar {
		return tok.Lit
	}
	if len(tok.Lit) == 2 && tok.Lit[0] == '\\' {
		return tok.Lit[1:]
	}
	return tok.Lit
}

// IsHereDocDelimQuoted reports whether a statically-evaluated here-doc
// delimiter word contained any quoting, which per POSIX disables
// parameter/command substitution inside the body (spec.md §4.2's
// here-doc quoting rule).
func IsHereDocDelimQuoted(w ast.Word) bool {
	cw, ok := w.(*ast.CompoundWord)
	if !ok {
		return false
	}
	for _, part := range cw.Parts {
		if _, ok := part.(*ast.QuotedPart); ok {
			return true
		}
	}
	return false
}
