package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/tcconsole/internal/console"
)

// Reporter routes operator-facing console text (help output and completion
// candidates) to the REPL's writer and passes every other event to next.
type Reporter struct {
	console.Reporter
	out io.Writer
}

// NewReporter wraps next.
//
// Precondition: next and out must be non-nil.
func NewReporter(next console.Reporter, out io.Writer) *Reporter {
	return &Reporter{Reporter: next, out: out}
}

// Print writes text to the REPL output.
func (r *Reporter) Print(text string) {
	fmt.Fprintln(r.out, text)
}

// Completions writes the candidates on one line.
func (r *Reporter) Completions(_ string, candidates []string) {
	fmt.Fprintln(r.out, strings.Join(candidates, "  "))
}
