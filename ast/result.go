package ast

// ParseResult is what the CommandParser hands back for one interactive
// unit of input: an empty line, end of file, or a parsed command node.
type ParseResult struct {
	EmptyLine bool
	Eof       bool
	Node      Command // nil unless neither EmptyLine nor Eof
}
