package console

import "errors"

// Sentinel errors. Callers match them with errors.Is.
var (
	ErrDuplicateCommand = errors.New("duplicate command name")
	ErrRegistrySealed   = errors.New("registry is sealed")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTooFewArguments  = errors.New("too few arguments")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrHandlerFailed    = errors.New("command failed")
	ErrFileNotFound     = errors.New("config file not found")
	ErrExecDepth        = errors.New("exec nesting too deep")
	ErrClosed           = errors.New("console is closed")
)
