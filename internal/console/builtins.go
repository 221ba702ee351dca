package console

import (
	"fmt"
	"strconv"
	"strings"
)

// registerBuiltins adds the commands every console carries.
func registerBuiltins(b *Builder, c *Console) {
	_ = b.Command(Command{
		Name:       "exec",
		Summary:    "Executes a file",
		Permission: PermissionBoth,
		MinArgs:    1,
		MaxArgs:    1,
		Handler: func(args []string) error {
			return c.ExecuteFile(args[0])
		},
	})
	_ = b.Command(Command{
		Name:       "help",
		Summary:    "Lists commands, or describes one",
		Permission: PermissionBoth,
		MaxArgs:    1,
		Handler: func(args []string) error {
			if len(args) == 0 {
				for _, cmd := range c.registry.Commands() {
					c.reporter.Print(fmt.Sprintf("%s - %s", cmd.Name, cmd.Summary))
				}
				return nil
			}
			cmd, ok := c.registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
			}
			c.reporter.Print(describe(cmd))
			return nil
		},
	})
}

// describe renders the help text for one command.
func describe(cmd *Command) string {
	var sb strings.Builder
	sb.WriteString(cmd.Name)
	sb.WriteString(": ")
	sb.WriteString(cmd.Summary)
	fmt.Fprintf(&sb, " (args %s..%s, %s)", bound(cmd.MinArgs, "0"), bound(cmd.MaxArgs, "any"), cmd.Permission)
	return sb.String()
}

func bound(n int, unbounded string) string {
	if n == 0 {
		return unbounded
	}
	return strconv.Itoa(n)
}
