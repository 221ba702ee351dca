package console

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ConfigExt is the file extension of batch files.
const ConfigExt = ".cfg"

// MaxExecDepth bounds nested exec calls from within batch files.
const MaxExecDepth = 16

// ConfigPath returns the path a batch file name resolves to.
func (c *Console) ConfigPath(name string) string {
	return filepath.Join(c.configDir, name+ConfigExt)
}

// ExecuteFile runs every line of the named batch file through Execute.
//
// Lines starting with "//" are skipped. A failing line is reported and the
// batch continues with the next one.
//
// Precondition: name has no extension; ConfigExt is appended.
// Postcondition: Returns an error wrapping ErrFileNotFound if the file is
// absent (no line runs), ErrExecDepth if nested too deeply, or nil once every
// line has been dispatched.
func (c *Console) ExecuteFile(name string) error {
	if c.closed {
		return ErrClosed
	}
	if c.depth >= MaxExecDepth {
		return fmt.Errorf("%w: %s", ErrExecDepth, name)
	}

	path := c.ConfigPath(name)
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.reporter.FileNotFound(name, path)
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lines := splitLines(string(data))
	id := uuid.NewString()
	c.reporter.BatchStarted(id, name)

	c.depth++
	defer func() { c.depth-- }()

	failed := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "//") {
			continue
		}
		if out := c.Execute(line); out.Failed() {
			failed++
		}
	}

	c.reporter.BatchFinished(id, name, len(lines), failed)
	return nil
}

// splitLines splits text on newlines, dropping a trailing carriage return
// from each line and the empty element after a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
