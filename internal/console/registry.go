package console

import (
	"errors"
	"fmt"
	"sort"
)

// Registry maps case-insensitive command names to Command definitions.
//
// Registration is append-only. Once sealed the Registry is read-only.
type Registry struct {
	commands map[string]*Command // lower-cased name → command
	sealed   bool
}

// NewRegistry creates an empty, unsealed Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// key normalizes a command name for lookup. Only ASCII letters fold, so a
// non-ASCII name never matches a registered one.
func key(name string) string {
	b := []byte(name)
	for i, c := range b {
		b[i] = lowerASCII(c)
	}
	return string(b)
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// validName reports whether name is printable ASCII without spaces or quotes.
func validName(name string) bool {
	for i := 0; i < len(name); i++ {
		if c := name[i]; c <= ' ' || c == '"' || c >= 0x7f {
			return false
		}
	}
	return true
}

// Register adds cmd to the registry.
//
// Precondition: cmd.Name must be non-empty and cmd.Handler non-nil.
// Postcondition: cmd is registered, or an error is returned and the registry
// is unchanged. A name that differs from an existing one only by case is a
// duplicate.
func (r *Registry) Register(cmd Command) error {
	if r.sealed {
		return fmt.Errorf("registering %q: %w", cmd.Name, ErrRegistrySealed)
	}
	if cmd.Name == "" {
		return errors.New("command name must not be empty")
	}
	if !validName(cmd.Name) {
		return fmt.Errorf("command name %q must be printable ASCII without spaces or quotes", cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %q has no handler", cmd.Name)
	}
	if cmd.MinArgs < 0 || cmd.MaxArgs < 0 {
		return fmt.Errorf("command %q has negative arity bounds", cmd.Name)
	}
	if cmd.MaxArgs != 0 && cmd.MinArgs > cmd.MaxArgs {
		return fmt.Errorf("command %q: min args %d exceeds max args %d", cmd.Name, cmd.MinArgs, cmd.MaxArgs)
	}
	k := key(cmd.Name)
	if existing, exists := r.commands[k]; exists {
		return fmt.Errorf("%w: %q conflicts with %q", ErrDuplicateCommand, cmd.Name, existing.Name)
	}
	c := cmd
	r.commands[k] = &c
	return nil
}

// Seal ends the registration phase.
//
// Postcondition: every later Register call fails with ErrRegistrySealed.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Lookup finds a command by case-insensitive name.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[key(name)]
	return cmd, ok
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// Commands returns all registered commands ordered by lower-cased name.
func (r *Registry) Commands() []*Command {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]*Command, 0, len(keys))
	for _, k := range keys {
		result = append(result, r.commands[k])
	}
	return result
}
