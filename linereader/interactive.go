package linereader

import (
	"io"

	"github.com/chzyer/readline"
)

// Interactive is a LineReader backed by github.com/chzyer/readline,
// producing one line per call to the user's terminal. This is the
// variant spec.md §6 calls out for completion/interactive use; it never
// produces EmitCompDummy itself (that is the Lexer's job) but its
// presence lets a REPL driver feed the CommandParser one line at a time
// exactly as the file/string readers do.
//
// Grounded on duhaifeng-light-lang/cmd/light/repl.go's readline.NewEx
// usage, adapted from a whole-program REPL loop into a LineReader that
// the CommandParser pulls from on demand.
type Interactive struct {
	rl     *readline.Instance
	nextID int
	offset int
}

// NewInteractive wraps an already-configured *readline.Instance.
func NewInteractive(rl *readline.Instance) *Interactive {
	return &Interactive{rl: rl}
}

func (r *Interactive) GetLine() (int, string, int, bool) {
	line, err := r.rl.Readline()
	if err != nil {
		// readline.ErrInterrupt on Ctrl-C, io.EOF on Ctrl-D: both mean
		// "no more input" to a LineReader.
		if err == io.EOF || err == readline.ErrInterrupt {
			return 0, "", 0, false
		}
		return 0, "", 0, false
	}
	id := r.nextID
	r.nextID++
	start := r.offset
	text := line + "\n"
	r.offset += len(text)
	return id, text, start, true
}
