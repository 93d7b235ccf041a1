package clinic

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// App is a multi-command application: a registry of commands keyed by name. The registry is
// populated by [New] and never changes afterwards.
type App struct {
	// Name is the executable name used in help text. Defaults to "program".
	Name string

	// Help is shown at the top of the application help.
	Help string

	// Flags holds optional application flags. They are parsed from the tokens that precede an
	// explicit command name, e.g. "calc -verbose add --x 1". Parsing mutates the flag set, so an
	// App with flags must not run concurrently.
	Flags *flag.FlagSet

	// Logger receives debug records about command selection. Nil discards them.
	Logger *slog.Logger

	// NoColor disables colored error output.
	NoColor bool

	commands   map[string]*Command
	defaultCmd *Command
}

// New creates an application from commands. Command names must be unique and at most one
// command may be the default. A single command is always the default.
func New(name string, commands ...*Command) (*App, error) {
	if len(commands) == 0 {
		return nil, NewError(ErrAnnotation, errors.New("application has no commands"))
	}
	a := &App{
		Name:     name,
		commands: make(map[string]*Command, len(commands)),
	}
	for _, c := range commands {
		if c == nil {
			return nil, NewError(ErrAnnotation, errors.New("application command is nil"))
		}
		if _, ok := a.commands[c.name]; ok {
			return nil, NewError(ErrAnnotation, fmt.Errorf("duplicate command name %q", c.name))
		}
		a.commands[c.name] = c
		if c.isDefault {
			if a.defaultCmd != nil {
				return nil, NewError(ErrAnnotation, fmt.Errorf("commands %q and %q are both marked as default: only one command can be the default", a.defaultCmd.name, c.name))
			}
			a.defaultCmd = c
		}
	}
	if len(commands) == 1 {
		a.defaultCmd = commands[0]
	}
	return a, nil
}

// Commands returns the registered commands sorted by name.
func (a *App) Commands() []*Command {
	out := make([]*Command, 0, len(a.commands))
	for _, c := range a.commands {
		out = append(out, c)
	}
	slices.SortFunc(out, func(x, y *Command) int {
		return cmp.Compare(x.name, y.name)
	})
	return out
}

// Lookup returns the command registered under name.
func (a *App) Lookup(name string) (*Command, bool) {
	c, ok := a.commands[name]
	return c, ok
}

func (a *App) executable() string {
	if a.Name == "" {
		return defaultExecutableName
	}
	return a.Name
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
