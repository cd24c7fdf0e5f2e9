package lexer

import "github.com/oilshell/oil-parser/ast"

// History-expansion is a best-effort, interactive-only lexical layer
// (spec.md Open Question (b)): bash recognizes "!", "!!", "!N", "!-N",
// "!string", "!?string?", and "^old^new^" only at specific cursor
// positions while reading a line for the interactive top-level loop, not
// as part of the general grammar. Rather than deriving the full history
// grammar from scratch, this file implements the small set of heuristics
// bash's own `bash_history.c` documents as "common usage", matching
// spec.md's instruction to record this as a deliberately partial
// implementation.
//
// matchHistory is not wired into modeMatchers: its only caller is
// ExpandHistoryRefs, which rewrites a raw line before the text reaches
// the Lexer, since history expansion is a textual preprocessing pass,
// not a token kind Read/LookAhead ever need to produce mid-parse.
// cmd/oilparse does not call ExpandHistoryRefs.
func matchHistory(line string, pos int) (ast.TokenKind, int, bool) {
	if line[pos] != '!' && line[pos] != '^' {
		return ast.Unknown, 0, false
	}
	if line[pos] == '^' {
		if pos == 0 {
			return ast.HistoryCaret, scanToNextCaret(line, pos), true
		}
		return ast.Unknown, 0, false
	}
	// '!'
	if pos+1 < len(line) && line[pos+1] == '!' {
		return ast.HistoryBangBang, 2, true
	}
	if pos+1 < len(line) {
		c := line[pos+1]
		if isDigit(c) || c == '-' || isNameStart(c) || c == '?' {
			n := 1 + scanWhile(line, pos+1, func(b byte) bool {
				return isDigit(b) || b == '-' || isNameCont(b) || b == '?'
			})
			return ast.HistoryBang, n, true
		}
	}
	return ast.Unknown, 0, false
}

func scanToNextCaret(line string, pos int) int {
	n := 1
	for pos+n < len(line) && line[pos+n] != '^' {
		n++
	}
	if pos+n < len(line) {
		n++ // include the second caret
		rest := line[pos+n:]
		m := 0
		for m < len(rest) && rest[m] != '^' && rest[m] != '\n' {
			m++
		}
		n += m
	}
	return n
}

// ExpandHistoryRefs rewrites the common history-expansion forms in an
// interactive input line before it reaches the Lexer: "!!" to the
// previous command, "!N"/"!-N" to an absolute/relative history entry,
// "!string" to the most recent command starting with string, and
// "^old^new" as a quick substitution on the previous command. prev is
// the history list, most recent last.
func ExpandHistoryRefs(line string, prev []string) string {
	if len(prev) == 0 {
		return line
	}
	out := make([]byte, 0, len(line))
	i := 0
	for i < len(line) {
		kind, n, ok := matchHistory(line, i)
		if !ok {
			out = append(out, line[i])
			i++
			continue
		}
		tok := line[i : i+n]
		switch kind {
		case ast.HistoryBangBang:
			out = append(out, prev[len(prev)-1]...)
		case ast.HistoryBang:
			out = append(out, expandBangRef(tok[1:], prev)...)
		case ast.HistoryCaret:
			out = append(out, expandCaretSub(tok, prev[len(prev)-1])...)
		}
		i += n
	}
	return string(out)
}

func expandBangRef(ref string, prev []string) string {
	if ref == "" {
		return prev[len(prev)-1]
	}
	if n, ok := parseSignedIndex(ref); ok {
		idx := n
		if n < 0 {
			idx = len(prev) + n
		} else {
			idx = n - 1
		}
		if idx >= 0 && idx < len(prev) {
			return prev[idx]
		}
		return "!" + ref
	}
	prefix := ref
	if len(prefix) > 0 && prefix[len(prefix)-1] == '?' {
		prefix = prefix[:len(prefix)-1]
	}
	for j := len(prev) - 1; j >= 0; j-- {
		if len(prev[j]) >= len(prefix) && prev[j][:len(prefix)] == prefix {
			return prev[j]
		}
	}
	return "!" + ref
}

func parseSignedIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	if i >= len(s) {
		return 0, false
	}
	n := 0
	for ; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}

func expandCaretSub(tok, previous string) string {
	body := tok[1:]
	if len(body) > 0 && body[len(body)-1] == '^' {
		body = body[:len(body)-1]
	}
	parts := splitOnce(body, '^')
	if parts == nil {
		return previous
	}
	old, new := parts[0], parts[1]
	idx := indexOf(previous, old)
	if idx < 0 {
		return previous
	}
	return previous[:idx] + new + previous[idx+len(old):]
}

func splitOnce(s string, sep byte) []string {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}

func indexOf(s, sub string) int {
	if sub == "" {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
