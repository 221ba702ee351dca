package console

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/cory-johannsen/tcconsole/internal/console/typereader"
)

// event is one call recorded by recordingReporter.
type event struct {
	kind string
	name string
	err  error
	val  any
}

type recordingReporter struct {
	events  []event
	printed []string
}

func (r *recordingReporter) add(kind, name string, err error, val any) {
	r.events = append(r.events, event{kind: kind, name: name, err: err, val: val})
}

func (r *recordingReporter) CommandAdded(name string) { r.add("added", name, nil, nil) }
func (r *recordingReporter) RegistrationRejected(name string, err error) {
	r.add("rejected", name, err, nil)
}
func (r *recordingReporter) UnknownCommand(name string) { r.add("unknown", name, nil, nil) }
func (r *recordingReporter) PermissionDenied(name string, _ Permission, _ RunMode) {
	r.add("denied", name, nil, nil)
}
func (r *recordingReporter) ArityViolation(name string, got, _, _ int) {
	r.add("arity", name, nil, got)
}
func (r *recordingReporter) HandlerFailed(name string, err error) { r.add("failed", name, err, nil) }
func (r *recordingReporter) FileNotFound(name, path string)       { r.add("notfound", name, nil, path) }
func (r *recordingReporter) VariableChanged(name string, value any) {
	r.add("changed", name, nil, value)
}
func (r *recordingReporter) BatchStarted(id, name string) { r.add("batch_start", name, nil, id) }
func (r *recordingReporter) BatchFinished(_, name string, lines, failed int) {
	r.add("batch_end", name, nil, [2]int{lines, failed})
}
func (r *recordingReporter) Completions(prefix string, candidates []string) {
	r.add("completions", prefix, nil, candidates)
}
func (r *recordingReporter) Print(text string) { r.printed = append(r.printed, text) }

// count returns how many events of kind were recorded.
func (r *recordingReporter) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// last returns the most recent event of kind.
func (r *recordingReporter) last(kind string) (event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].kind == kind {
			return r.events[i], true
		}
	}
	return event{}, false
}

func noop([]string) error { return nil }

// newTestConsole builds a Console over an in-memory file system after
// letting register add commands.
func newTestConsole(t *testing.T, mode RunMode, register func(b *Builder)) (*Console, *recordingReporter, afero.Fs) {
	t.Helper()
	rep := &recordingReporter{}
	b := NewBuilder(typereader.Default(), rep, false)
	if register != nil {
		register(b)
	}
	fs := afero.NewMemMapFs()
	c := New(b, Options{
		Mode:        func() RunMode { return mode },
		Fs:          fs,
		ConfigDir:   "Cfg",
		HistorySize: DefaultHistorySize,
	})
	return c, rep, fs
}
