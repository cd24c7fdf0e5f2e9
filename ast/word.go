package ast

// Word is either a single surfaced operator/newline/EOF token (a
// Token-word) or an ordered sequence of WordParts (a Compound-word).
type Word interface {
	Node
	wordNode()
	Spans() []SpanID
}

// TokenWord surfaces a single operator/newline/EOF token as a word, used
// where the grammar accepts "a word or a terminator".
type TokenWord struct {
	Base
	Tok Token
}

func (w *TokenWord) wordNode()      {}
func (w *TokenWord) Spans() []SpanID {
	if w.Tok.Span == NoSpan {
		return nil
	}
	return []SpanID{w.Tok.Span}
}
func (w *TokenWord) GetChildren() []Node { return nil }
func (w *TokenWord) Accept(v Visitor)    { Walk(v, w) }

// CompoundWord is an ordered sequence of WordParts joined without
// intervening whitespace.
type CompoundWord struct {
	Base
	Parts []WordPart
}

func (w *CompoundWord) wordNode()       {}
func (w *CompoundWord) Spans() []SpanID { return w.Base.SpanIDs }
func (w *CompoundWord) GetChildren() []Node {
	children := make([]Node, 0, len(w.Parts))
	for _, p := range w.Parts {
		children = append(children, p)
	}
	return children
}
func (w *CompoundWord) Accept(v Visitor) { Walk(v, w) }

// IsEmpty reports whether the compound word has no parts (e.g. an empty
// quoted string still has one QuotedPart, but a bare close of "" has
// none before that part is appended).
func (w *CompoundWord) IsEmpty() bool { return len(w.Parts) == 0 }
