// Package grammar holds the checked-in precedence table for the Oil
// expression sublanguage (spec.md §4.5's mode-transition table, realized
// as a binding-power table rather than a numeric LL(1) action table):
// which token kinds open an infix/postfix operator and at what
// precedence. Checked in as literal Go data rather than generated,
// since spec.md §1 excludes a grammar-compiler toolchain from this
// module's scope.
package grammar

import "github.com/oilshell/oil-parser/ast"

// Precedence is a binding power: higher binds tighter.
type Precedence int

const (
	_ Precedence = iota
	Lowest
	Or
	And
	Not
	Equality
	Relational
	Additive
	Mult
	Unary
	Postfix // . [ (
)

// Table maps an infix/postfix operator token to its binding power.
// [[exprparser]] consumes this directly; [[boolparser]] and [[tdop]]
// keep their own small local tables since their operator sets are
// fixed-arity and disjoint from the Oil expression grammar's.
var Table = map[ast.TokenKind]Precedence{
	ast.ExprEqEq: Equality,
	ast.ExprPlus: Additive, ast.ExprMinus: Additive,
	ast.ExprStar: Mult, ast.ExprSlash: Mult,
	ast.ExprDot: Postfix, ast.ExprLBracket: Postfix,
}

// Lookup returns op's precedence, or Lowest if op is not an
// infix/postfix operator at all (so it never extends a running parse).
func Lookup(op ast.TokenKind) Precedence {
	if p, ok := Table[op]; ok {
		return p
	}
	return Lowest
}
