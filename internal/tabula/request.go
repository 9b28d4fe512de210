package tabula

import (
	"strings"

	"github.com/joseph-ayodele/tabula-extract/constants"
)

// Request describes one extraction. Area takes precedence over Guess: when
// Area is set the guess flag is never sent.
type Request struct {
	FilePath string
	Pages    string // page selector, "all" when empty
	Guess    bool
	Lattice  bool
	Stream   bool
	Area     string // top,left,bottom,right
	Columns  string // comma separated x coordinates
}

// Normalize returns a copy of r with defaults applied.
func (r Request) Normalize() Request {
	if strings.TrimSpace(r.Pages) == "" {
		r.Pages = constants.DefaultPages
	}
	return r
}

// Modes lists the strategies r asks the engine for, in invocation order.
func (r Request) Modes() []constants.Mode {
	var modes []constants.Mode
	if r.Lattice {
		modes = append(modes, constants.ModeLattice)
	}
	if r.Stream {
		modes = append(modes, constants.ModeStream)
	}
	if r.Area != "" {
		modes = append(modes, constants.ModeArea)
	} else if r.Guess {
		modes = append(modes, constants.ModeGuess)
	}
	if len(modes) == 0 {
		modes = append(modes, constants.ModeDefault)
	}
	return modes
}

// ModeString joins Modes with "+", e.g. "lattice+area".
func (r Request) ModeString() string {
	modes := r.Modes()
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, "+")
}
