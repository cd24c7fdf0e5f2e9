package ast

// Node is the common shape every AST value implements: a list of span
// ids for diagnostics, plus visitor support. Concrete Command/WordPart/
// Word/Expr/Redirect variants all embed Base and satisfy this directly,
// instead of inheriting from a class hierarchy.
type Node interface {
	GetChildren() []Node
	Accept(v Visitor)
}

// Base carries the span-id list shared by every AST node variant.
type Base struct {
	SpanIDs []SpanID
}

// AddSpan appends a span id owned by this node.
func (b *Base) AddSpan(id SpanID) {
	if id != NoSpan {
		b.SpanIDs = append(b.SpanIDs, id)
	}
}
