package console

import (
	"fmt"

	"github.com/cory-johannsen/tcconsole/internal/console/typereader"
)

// Builder collects command and variable registrations during startup.
//
// Failed registrations are reported and skipped; they never abort the build.
type Builder struct {
	registry *Registry
	readers  *typereader.Registry
	reporter Reporter
	headless bool
}

// NewBuilder creates a Builder.
//
// Precondition: readers and reporter must be non-nil.
// Postcondition: Returns a Builder over an empty, unsealed Registry. When
// headless is true, GraphicsOnly registrations are skipped.
func NewBuilder(readers *typereader.Registry, reporter Reporter, headless bool) *Builder {
	return &Builder{
		registry: NewRegistry(),
		readers:  readers,
		reporter: reporter,
		headless: headless,
	}
}

// Command registers cmd.
//
// Postcondition: Returns nil if cmd was added or deliberately skipped as
// GraphicsOnly in headless mode; otherwise the registration error, which has
// also been reported.
func (b *Builder) Command(cmd Command) error {
	if cmd.GraphicsOnly && b.headless {
		return nil
	}
	if err := b.registry.Register(cmd); err != nil {
		b.reporter.RegistrationRejected(cmd.Name, err)
		return err
	}
	b.reporter.CommandAdded(cmd.Name)
	return nil
}

// Variable registers v as a command taking exactly one argument.
//
// Precondition: v.Get and v.Set must be non-nil.
// Postcondition: Returns nil on success or skip; an error if v's Kind has no
// reader or the name collides.
func (b *Builder) Variable(v Variable) error {
	reader, ok := b.readers.Lookup(v.Kind)
	if !ok {
		err := fmt.Errorf("variable %q: no reader for kind %s", v.Name, v.Kind)
		b.reporter.RegistrationRejected(v.Name, err)
		return err
	}
	if v.Get == nil || v.Set == nil {
		err := fmt.Errorf("variable %q: missing accessor", v.Name)
		b.reporter.RegistrationRejected(v.Name, err)
		return err
	}
	return b.Command(Command{
		Name:         v.Name,
		Summary:      v.Summary,
		Permission:   PermissionBoth,
		MinArgs:      1,
		MaxArgs:      1,
		GraphicsOnly: v.GraphicsOnly,
		Handler: func(args []string) error {
			v.Set(reader.Read(args[0]))
			b.reporter.VariableChanged(v.Name, v.Get())
			return nil
		},
	})
}

// Registry exposes the registry being built.
func (b *Builder) Registry() *Registry {
	return b.registry
}
