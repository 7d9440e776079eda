// Package shellcmd builds POSIX shell command strings for remote execution.
// Arguments are quoted individually so that target names, paths and schedule
// expressions never splice into the surrounding shell syntax.
package shellcmd

import (
	"fmt"
	"strings"
)

type Command struct {
	Program string
	Args    []string
}

func New(program string, args ...string) *Command {
	return &Command{
		Program: program,
		Args:    args,
	}
}

func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Program)

	for _, arg := range c.Args {
		parts = append(parts, Quote(arg))
	}

	return strings.Join(parts, " ")
}

// And chains commands with && so that the sequence stops on the first failure.
func And(cmds ...*Command) string {
	parts := make([]string, 0, len(cmds))

	for _, cmd := range cmds {
		parts = append(parts, cmd.String())
	}

	return strings.Join(parts, " && ")
}

// Quote wraps s in single quotes, escaping embedded single quotes the POSIX
// way ('\'').
func Quote(s string) string {
	if s == "" {
		return "''"
	}

	if !strings.ContainsAny(s, " \t\n\"'`$\\|&;<>()*?[]#~=%!{}") {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Script quotes a raw shell fragment as a single argument for sh -c.
func Script(fragment string) string {
	return fmt.Sprintf("sh -c %s", Quote(fragment))
}
