package console

// Reporter receives the console's observable events.
type Reporter interface {
	CommandAdded(name string)
	// RegistrationRejected covers duplicates (err wraps ErrDuplicateCommand)
	// and malformed registrations.
	RegistrationRejected(name string, err error)
	UnknownCommand(name string)
	PermissionDenied(name string, perm Permission, mode RunMode)
	ArityViolation(name string, got, minArgs, maxArgs int)
	HandlerFailed(name string, err error)
	FileNotFound(name, path string)
	VariableChanged(name string, value any)
	// BatchStarted and BatchFinished bracket one ExecuteFile call.
	BatchStarted(id, name string)
	BatchFinished(id, name string, lines, failed int)
	// Completions lists the candidates of an ambiguous completion.
	Completions(prefix string, candidates []string)
	// Print carries operator-facing text such as help output.
	Print(text string)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) CommandAdded(string)                          {}
func (NopReporter) RegistrationRejected(string, error)           {}
func (NopReporter) UnknownCommand(string)                        {}
func (NopReporter) PermissionDenied(string, Permission, RunMode) {}
func (NopReporter) ArityViolation(string, int, int, int)         {}
func (NopReporter) HandlerFailed(string, error)                  {}
func (NopReporter) FileNotFound(string, string)                  {}
func (NopReporter) VariableChanged(string, any)                  {}
func (NopReporter) BatchStarted(string, string)                  {}
func (NopReporter) BatchFinished(string, string, int, int)       {}
func (NopReporter) Completions(string, []string)                 {}
func (NopReporter) Print(string)                                 {}
