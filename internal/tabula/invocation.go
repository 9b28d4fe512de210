package tabula

import (
	"strings"

	"github.com/joseph-ayodele/tabula-extract/constants"
)

// Invocation is the engine argument list for one request. Tokens are passed
// to the process directly, no shell is involved.
type Invocation struct {
	args []string
}

// BuildInvocation maps req onto engine flags in a fixed order:
// file, --pages, --format, [--lattice], [--stream], [--area|--guess], [--columns].
// Values are passed through untouched; the engine rejects malformed ones.
func BuildInvocation(req Request) Invocation {
	req = req.Normalize()

	args := []string{
		req.FilePath,
		"--pages", req.Pages,
		"--format", constants.OutputFormat,
	}
	if req.Lattice {
		args = append(args, "--lattice")
	}
	if req.Stream {
		args = append(args, "--stream")
	}
	if req.Area != "" {
		args = append(args, "--area", req.Area)
	} else if req.Guess {
		args = append(args, "--guess")
	}
	if req.Columns != "" {
		args = append(args, "--columns", req.Columns)
	}
	return Invocation{args: args}
}

// Args returns a copy of the tokens.
func (inv Invocation) Args() []string {
	out := make([]string, len(inv.args))
	copy(out, inv.args)
	return out
}

// String renders the tokens shell-quoted, for logs.
func (inv Invocation) String() string {
	return shellJoin(inv.args)
}

func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$`;&|<>()*?[]{}!#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
