package console

import "fmt"

// Status classifies the result of dispatching one line.
type Status int

// Dispatch statuses.
const (
	StatusOK Status = iota
	StatusNoOp
	StatusUnknownCommand
	StatusPermissionDenied
	StatusTooFewArguments
	StatusTooManyArguments
	StatusHandlerFailed
)

// String returns a short status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "noop"
	case StatusUnknownCommand:
		return "unknown_command"
	case StatusPermissionDenied:
		return "permission_denied"
	case StatusTooFewArguments:
		return "too_few_arguments"
	case StatusTooManyArguments:
		return "too_many_arguments"
	case StatusHandlerFailed:
		return "handler_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of dispatching one line.
type Outcome struct {
	Status Status
	// Command is the registered name, or the typed name when unknown.
	Command string
	// Err wraps the matching sentinel for every failing status.
	Err error
}

// OK reports whether the command ran successfully.
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

// Failed reports whether the line was rejected or its handler failed.
func (o Outcome) Failed() bool {
	return o.Status != StatusOK && o.Status != StatusNoOp
}

// Execute tokenizes line and dispatches it.
//
// Gates run in order: empty line, lookup, permission, arity, handler. Handler
// errors and panics are caught. Only a successful dispatch is recorded in
// history, which also returns the recall cursor to the live line.
//
// Postcondition: Returns an Outcome; never panics on operator input.
func (c *Console) Execute(line string) Outcome {
	if c.closed {
		return Outcome{Status: StatusNoOp, Err: ErrClosed}
	}
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return Outcome{Status: StatusNoOp}
	}

	out := c.dispatch(tokens[0], tokens[1:])
	if out.OK() {
		c.history.Append(line)
	}
	return out
}

// Invoke dispatches name with pre-split args through the same lookup,
// permission, arity and handler gates as Execute, without touching history.
func (c *Console) Invoke(name string, args []string) Outcome {
	if c.closed {
		return Outcome{Status: StatusNoOp, Err: ErrClosed}
	}
	return c.dispatch(name, args)
}

func (c *Console) dispatch(name string, args []string) Outcome {
	cmd, ok := c.registry.Lookup(name)
	if !ok {
		c.reporter.UnknownCommand(name)
		return Outcome{
			Status:  StatusUnknownCommand,
			Command: name,
			Err:     fmt.Errorf("%w: %q", ErrUnknownCommand, name),
		}
	}

	mode := c.mode()
	if !cmd.Permission.Allows(mode) {
		c.reporter.PermissionDenied(cmd.Name, cmd.Permission, mode)
		return Outcome{
			Status:  StatusPermissionDenied,
			Command: cmd.Name,
			Err:     fmt.Errorf("%w: %s is %s, console is %s", ErrPermissionDenied, cmd.Name, cmd.Permission, mode),
		}
	}

	n := len(args)
	if cmd.MinArgs != 0 && n < cmd.MinArgs {
		c.reporter.ArityViolation(cmd.Name, n, cmd.MinArgs, cmd.MaxArgs)
		return Outcome{
			Status:  StatusTooFewArguments,
			Command: cmd.Name,
			Err:     fmt.Errorf("%w: %s takes at least %d, got %d", ErrTooFewArguments, cmd.Name, cmd.MinArgs, n),
		}
	}
	if cmd.MaxArgs != 0 && n > cmd.MaxArgs {
		c.reporter.ArityViolation(cmd.Name, n, cmd.MinArgs, cmd.MaxArgs)
		return Outcome{
			Status:  StatusTooManyArguments,
			Command: cmd.Name,
			Err:     fmt.Errorf("%w: %s takes at most %d, got %d", ErrTooManyArguments, cmd.Name, cmd.MaxArgs, n),
		}
	}

	if err := call(cmd, args); err != nil {
		c.reporter.HandlerFailed(cmd.Name, err)
		return Outcome{
			Status:  StatusHandlerFailed,
			Command: cmd.Name,
			Err:     fmt.Errorf("%w: %s: %w", ErrHandlerFailed, cmd.Name, err),
		}
	}
	return Outcome{Status: StatusOK, Command: cmd.Name}
}

// call runs the handler, converting a panic into an error.
func call(cmd *Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cmd.Handler(args)
}
