// Package repl drives a console from a line-oriented reader such as a
// terminal in cooked mode or a pipe.
//
// A line ending in TAB requests completion of the command name before it.
// A line made only of up/down cursor keys walks the history and prints the
// recalled entry. Every other line is executed.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/cory-johannsen/tcconsole/internal/console"
)

// Prompt is printed before each line in interactive mode.
const Prompt = "] "

// StopTimeout bounds how long Stop waits for the input reader to exit.
const StopTimeout = 500 * time.Millisecond

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// REPL reads lines and feeds them to a Console.
type REPL struct {
	console     *console.Console
	in          io.Reader
	out         io.Writer
	interactive bool
	style       styler

	mu         sync.Mutex
	readerDone chan struct{}
	stopOnce   sync.Once
	stopped    atomic.Bool
}

// New creates a REPL.
//
// Precondition: c, in and out must be non-nil.
// Postcondition: When interactive is true the REPL prints prompts and
// colours its output.
func New(c *console.Console, in io.Reader, out io.Writer, interactive bool) *REPL {
	return &REPL{
		console:     c,
		in:          in,
		out:         out,
		interactive: interactive,
		style:       styler{enabled: interactive},
	}
}

// Start reads lines until the input ends or ctx is cancelled.
//
// All console calls happen on the calling goroutine; a helper goroutine only
// reads input and exits when the input ends or Stop closes it.
//
// Postcondition: Returns nil at end of input, cancellation or Stop, or the
// read error.
func (r *REPL) Start(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	r.mu.Lock()
	r.readerDone = done
	r.mu.Unlock()

	go func() {
		defer close(done)
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		r.prompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil && ctx.Err() == nil && !r.stopped.Load() {
						return fmt.Errorf("reading console input: %w", err)
					}
				default:
				}
				return nil
			}
			r.Handle(line)
		}
	}
}

// Stop closes the input when it is an io.Closer and waits up to StopTimeout
// for the reader goroutine to exit. A blocking terminal read is not
// interrupted by Close on every platform; that reader is abandoned to process
// exit. Input that cannot be closed is left to end on its own.
//
// Postcondition: Safe to call more than once, and before Start.
func (r *REPL) Stop() {
	closer, ok := r.in.(io.Closer)
	if !ok {
		return
	}
	r.stopOnce.Do(func() {
		r.stopped.Store(true)
		_ = closer.Close()
	})
	r.mu.Lock()
	done := r.readerDone
	r.mu.Unlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(StopTimeout):
	}
}

func (r *REPL) prompt() {
	if r.interactive {
		fmt.Fprint(r.out, r.style.paint(dim, Prompt))
	}
}

// Handle processes one input line.
func (r *REPL) Handle(line string) {
	if prefix, ok := strings.CutSuffix(line, "\t"); ok {
		r.complete(prefix)
		return
	}
	if steps, ok := cursorKeys(line); ok {
		r.recall(steps)
		return
	}

	out := r.console.Execute(stripEscapes(line))
	if out.Failed() {
		fmt.Fprintln(r.out, r.style.paint(red, out.Err.Error()))
	}
}

func (r *REPL) complete(prefix string) {
	prefix = strings.TrimLeft(prefix, " \t")
	if strings.ContainsAny(prefix, " \t") {
		// Only command names complete.
		fmt.Fprintln(r.out, prefix)
		return
	}
	completed, _ := r.console.Complete(prefix)
	fmt.Fprintln(r.out, r.style.paint(cyan, completed))
}

// cursorKeys decodes a line made only of up/down keys into history steps:
// negative values step back, positive forward.
func cursorKeys(line string) ([]int, bool) {
	var steps []int
	for line != "" {
		switch {
		case strings.HasPrefix(line, keyUp):
			steps = append(steps, -1)
			line = line[len(keyUp):]
		case strings.HasPrefix(line, keyDown):
			steps = append(steps, 1)
			line = line[len(keyDown):]
		default:
			return nil, false
		}
	}
	return steps, len(steps) > 0
}

func (r *REPL) recall(steps []int) {
	var (
		entry string
		moved bool
	)
	for _, s := range steps {
		var (
			e  string
			ok bool
		)
		if s < 0 {
			e, ok = r.console.HistoryUp("")
		} else {
			e, ok = r.console.HistoryDown()
		}
		if ok {
			entry, moved = e, true
		}
	}
	if !moved {
		fmt.Fprintln(r.out, r.style.paint(yellow, "(no history)"))
		return
	}
	fmt.Fprintln(r.out, entry)
}
