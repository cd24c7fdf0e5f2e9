// Package ast defines the sum-typed AST the parser front end produces:
// spans, tokens, words, word parts, redirects, commands and Oil
// expressions. Each category is a Go interface with one concrete struct
// per former variant, rather than a deep class hierarchy, per the
// "collapse subclasses into sibling structs" design note this module
// follows.
package ast

// SpanID identifies a byte range owned by an Arena. Zero is never a
// valid id; NoSpan marks "no span assigned".
type SpanID int32

// NoSpan is the zero value used where no span id applies.
const NoSpan SpanID = 0

// Span is the byte range an Arena hands back for a given SpanID.
type Span struct {
	LineID int
	Col    int
	Length int
}
