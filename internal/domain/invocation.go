package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Invocation is a command plus its argument vector, ready for process creation.
// Dir is the working directory; empty means the current one.
type Invocation struct {
	Command string
	Args    []string
	Dir     string
}

// BuildInvocation creates an Invocation from already separated arguments.
// The argument slice is copied; nothing is quoted or escaped.
func BuildInvocation(command string, args []string) Invocation {
	return Invocation{
		Command: command,
		Args:    slices.Clone(args),
	}
}

// InDir returns a copy of the invocation running in dir
func (inv Invocation) InDir(dir string) Invocation {
	return Invocation{
		Command: inv.Command,
		Args:    slices.Clone(inv.Args),
		Dir:     dir,
	}
}

// String renders the argument vector for logs
func (inv Invocation) String() string {
	parts := append([]string{inv.Command}, inv.Args...)
	return strings.Join(parts, " ")
}

// ShellLine renders the invocation the way the platform shell would be asked
// to run it: change into Dir, then run the command with quoted arguments.
func (inv Invocation) ShellLine(platform Platform) string {
	var b strings.Builder
	if inv.Dir != "" {
		if platform == PlatformWindows {
			fmt.Fprintf(&b, "cd /d %s && ", quote(inv.Dir))
		} else {
			fmt.Fprintf(&b, "cd %s && ", quote(inv.Dir))
		}
	}
	b.WriteString(inv.Command)
	for _, arg := range inv.Args {
		b.WriteString(" ")
		b.WriteString(quote(arg))
	}
	return b.String()
}

// quote wraps s in double quotes without escaping, matching how the line is
// handed to cmd.exe and sh alike
func quote(s string) string {
	return `"` + s + `"`
}

// ShellInvocation wraps a command line for the platform shell
func ShellInvocation(platform Platform, line string) Invocation {
	if platform == PlatformWindows {
		return BuildInvocation("cmd", []string{"/C", line})
	}
	return BuildInvocation("sh", []string{"-c", line})
}
