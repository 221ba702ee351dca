package console

import "github.com/spf13/afero"

// Options configures a Console.
type Options struct {
	// Mode reports the current run mode; nil means RunModeOffline.
	Mode func() RunMode
	// Fs is the file system batch files are read from; nil means the OS.
	Fs afero.Fs
	// ConfigDir is the directory holding .cfg batch files.
	ConfigDir string
	// HistorySize is the history ring capacity; values below 2 use
	// DefaultHistorySize.
	HistorySize int
}

// Console is the context object tying the registry, history and batch
// executor together. It is created once at startup and owned by one
// goroutine until Close.
type Console struct {
	registry  *Registry
	history   *History
	reporter  Reporter
	mode      func() RunMode
	fs        afero.Fs
	configDir string
	depth     int
	closed    bool
}

// New registers the built-in commands on b, seals its registry and returns
// the Console.
//
// Precondition: b must be non-nil and not yet used by another Console.
// Postcondition: Returns a Console whose registry rejects further registration.
func New(b *Builder, opts Options) *Console {
	c := &Console{
		registry:  b.registry,
		history:   NewHistory(opts.HistorySize),
		reporter:  b.reporter,
		mode:      opts.Mode,
		fs:        opts.Fs,
		configDir: opts.ConfigDir,
	}
	if c.mode == nil {
		c.mode = func() RunMode { return RunModeOffline }
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	registerBuiltins(b, c)
	b.registry.Seal()
	return c
}

// Registry returns the sealed command registry.
func (c *Console) Registry() *Registry {
	return c.registry
}

// History returns the command history.
func (c *Console) History() *History {
	return c.history
}

// Mode returns the current run mode.
func (c *Console) Mode() RunMode {
	return c.mode()
}

// Complete autocompletes prefix against the registered command names and
// reports the candidates when more than one remains.
//
// Postcondition: Same contract as Registry.Complete.
func (c *Console) Complete(prefix string) (string, []string) {
	completed, candidates := c.registry.Complete(prefix)
	if len(candidates) > 1 {
		c.reporter.Completions(prefix, candidates)
	}
	return completed, candidates
}

// HistoryUp recalls the previous history entry, stashing current as the
// live line when leaving it.
func (c *Console) HistoryUp(current string) (string, bool) {
	return c.history.Previous(current)
}

// HistoryDown recalls the next history entry.
func (c *Console) HistoryDown() (string, bool) {
	return c.history.Next()
}

// Close tears the console down.
//
// Postcondition: history is cleared; later Execute, Invoke and ExecuteFile
// calls fail with ErrClosed.
func (c *Console) Close() {
	c.history.Reset()
	c.closed = true
}
