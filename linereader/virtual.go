package linereader

// Virtual is a LineReader over a pre-supplied slice of lines, used to
// re-lex here-doc bodies collected by the CommandParser's pending queue
// (spec.md §4.4 step 3) without reaching back into the outer source.
type Virtual struct {
	lines  []string
	pos    int
	nextID int
	offset int
}

// NewVirtual returns a Virtual reader over the given lines, each of
// which should already include its trailing newline if one existed.
func NewVirtual(lines []string) *Virtual {
	return &Virtual{lines: lines}
}

func (r *Virtual) GetLine() (int, string, int, bool) {
	if r.pos >= len(r.lines) {
		return 0, "", 0, false
	}
	line := r.lines[r.pos]
	r.pos++
	id := r.nextID
	r.nextID++
	start := r.offset
	r.offset += len(line)
	return id, line, start, true
}
