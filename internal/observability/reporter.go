package observability

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tcconsole/internal/console"
)

// ConsoleReporter logs console events as structured zap entries.
//
// Operator mistakes (unknown command, permission, arity) log at warn level,
// handler and file failures at error level, bookkeeping at debug.
type ConsoleReporter struct {
	logger *zap.Logger
}

// NewConsoleReporter creates a ConsoleReporter.
//
// Precondition: logger must be non-nil.
func NewConsoleReporter(logger *zap.Logger) *ConsoleReporter {
	return &ConsoleReporter{logger: logger}
}

var _ console.Reporter = (*ConsoleReporter)(nil)

// CommandAdded logs a registration at debug level.
func (r *ConsoleReporter) CommandAdded(name string) {
	r.logger.Debug("added command", zap.String("command", name))
}

// RegistrationRejected logs a rejected registration at error level.
func (r *ConsoleReporter) RegistrationRejected(name string, err error) {
	r.logger.Error("command registration rejected",
		zap.String("command", name),
		zap.Error(err),
	)
}

// UnknownCommand logs a line naming no registered command.
func (r *ConsoleReporter) UnknownCommand(name string) {
	r.logger.Warn("unknown command", zap.String("command", name))
}

// PermissionDenied logs a command refused in the current run mode.
func (r *ConsoleReporter) PermissionDenied(name string, perm console.Permission, mode console.RunMode) {
	r.logger.Warn("command not allowed in this run mode",
		zap.String("command", name),
		zap.Stringer("permission", perm),
		zap.Stringer("mode", mode),
	)
}

// ArityViolation logs an out-of-bounds argument count, saying which way
// the operator missed.
func (r *ConsoleReporter) ArityViolation(name string, got, minArgs, maxArgs int) {
	msg := "invalid arguments: more arguments are required"
	if maxArgs != 0 && got > maxArgs {
		msg = "invalid arguments: fewer arguments are required"
	}
	r.logger.Warn(msg,
		zap.String("command", name),
		zap.Int("args", got),
		zap.Int("min_args", minArgs),
		zap.Int("max_args", maxArgs),
	)
}

// HandlerFailed logs a handler error or recovered panic.
func (r *ConsoleReporter) HandlerFailed(name string, err error) {
	r.logger.Error("command failed",
		zap.String("command", name),
		zap.Error(err),
	)
}

// FileNotFound logs a missing batch file.
func (r *ConsoleReporter) FileNotFound(name, path string) {
	r.logger.Error("config file does not exist, not executing",
		zap.String("file", name),
		zap.String("path", path),
	)
}

// VariableChanged logs the value a variable holds after assignment.
func (r *ConsoleReporter) VariableChanged(name string, value any) {
	r.logger.Info("variable set",
		zap.String("variable", name),
		zap.Any("value", value),
	)
}

// BatchStarted logs the start of a batch file at debug level.
func (r *ConsoleReporter) BatchStarted(id, name string) {
	r.logger.Debug("executing config file",
		zap.String("batch_id", id),
		zap.String("file", name),
	)
}

// BatchFinished logs line and failure counts for a completed batch.
func (r *ConsoleReporter) BatchFinished(id, name string, lines, failed int) {
	r.logger.Info("executed config file",
		zap.String("batch_id", id),
		zap.String("file", name),
		zap.Int("lines", lines),
		zap.Int("failed", failed),
	)
}

// Completions logs the candidates of an ambiguous completion.
func (r *ConsoleReporter) Completions(prefix string, candidates []string) {
	r.logger.Info("possible completions",
		zap.String("prefix", prefix),
		zap.Strings("candidates", candidates),
	)
}

// Print logs operator-facing text at info level.
func (r *ConsoleReporter) Print(text string) {
	r.logger.Info(text)
}
