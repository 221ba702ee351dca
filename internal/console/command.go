// Package console provides the command console backend: command and variable
// registration, line tokenizing, permission and arity gated dispatch, command
// history, prefix autocompletion and batch file execution.
//
// A Console is owned by a single goroutine. None of its methods are safe for
// concurrent use.
package console

import (
	"fmt"

	"github.com/cory-johannsen/tcconsole/internal/console/typereader"
)

// Permission restricts the run modes a command may execute in.
type Permission int

// Permission classes.
const (
	// PermissionBoth allows the command in every run mode.
	PermissionBoth Permission = iota
	// PermissionServerOnly requires RunModeServer.
	PermissionServerOnly
	// PermissionClientOnly is refused only while in RunModeServer.
	PermissionClientOnly
)

// String returns the permission name used in logs and help text.
func (p Permission) String() string {
	switch p {
	case PermissionBoth:
		return "both"
	case PermissionServerOnly:
		return "server-only"
	case PermissionClientOnly:
		return "client-only"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// RunMode is the embedding application's networking posture.
type RunMode int

// Run modes.
const (
	RunModeOffline RunMode = iota
	RunModeClient
	RunModeServer
)

// String returns the run mode name as it appears in configuration.
func (m RunMode) String() string {
	switch m {
	case RunModeOffline:
		return "offline"
	case RunModeClient:
		return "client"
	case RunModeServer:
		return "server"
	default:
		return fmt.Sprintf("runmode(%d)", int(m))
	}
}

// ParseRunMode converts a configuration string into a RunMode.
//
// Postcondition: Returns the RunMode, or an error for an unknown name.
func ParseRunMode(s string) (RunMode, error) {
	switch s {
	case "offline":
		return RunModeOffline, nil
	case "client":
		return RunModeClient, nil
	case "server":
		return RunModeServer, nil
	default:
		return RunModeOffline, fmt.Errorf("unknown run mode %q: must be one of offline, client, server", s)
	}
}

// Allows reports whether a command with permission p may run in mode.
func (p Permission) Allows(mode RunMode) bool {
	switch p {
	case PermissionServerOnly:
		return mode == RunModeServer
	case PermissionClientOnly:
		return mode != RunModeServer
	default:
		return true
	}
}

// Handler executes a command with its already validated arguments.
type Handler func(args []string) error

// Command describes a named console operation.
type Command struct {
	// Name is the unique, case-insensitive command name.
	Name string
	// Summary is the one-line help text.
	Summary string
	// Permission restricts the run modes the command may execute in.
	Permission Permission
	// MinArgs is the minimum argument count; 0 means unbounded.
	MinArgs int
	// MaxArgs is the maximum argument count; 0 means unbounded.
	MaxArgs int
	// Handler is invoked only with an argument count inside the bounds.
	Handler Handler
	// GraphicsOnly commands are skipped when the console is built headless.
	GraphicsOnly bool
}

// Variable binds external storage to a one-argument setter command.
type Variable struct {
	Name    string
	Summary string
	// Kind selects the typereader used to parse the argument.
	Kind typereader.Kind
	// Get returns the current value.
	Get func() any
	// Set stores a value produced by the Kind's reader.
	Set          func(any)
	GraphicsOnly bool
}

// StringVar binds p as a string variable.
func StringVar(name, summary string, p *string) Variable {
	return Variable{
		Name:    name,
		Summary: summary,
		Kind:    typereader.String,
		Get:     func() any { return *p },
		Set:     func(v any) { *p = v.(string) },
	}
}

// BoolVar binds p as a bool variable.
func BoolVar(name, summary string, p *bool) Variable {
	return Variable{
		Name:    name,
		Summary: summary,
		Kind:    typereader.Bool,
		Get:     func() any { return *p },
		Set:     func(v any) { *p = v.(bool) },
	}
}

// IntVar binds p as an int variable.
func IntVar(name, summary string, p *int) Variable {
	return Variable{
		Name:    name,
		Summary: summary,
		Kind:    typereader.Int,
		Get:     func() any { return *p },
		Set:     func(v any) { *p = v.(int) },
	}
}

// FloatVar binds p as a float64 variable.
func FloatVar(name, summary string, p *float64) Variable {
	return Variable{
		Name:    name,
		Summary: summary,
		Kind:    typereader.Float,
		Get:     func() any { return *p },
		Set:     func(v any) { *p = v.(float64) },
	}
}
