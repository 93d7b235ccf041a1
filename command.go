package clinic

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Func describes a Go function to expose as a command.
type Func struct {
	// Name is the function's name, used to infer the command name in hyphen-case. When empty,
	// the name the runtime reports for Fn is used.
	Name string

	// Fn is the function value. It may return nothing, a value, an error, or a value and an
	// error. A leading context.Context parameter receives the execution context and is not an
	// option.
	Fn any

	// Params holds the parameter names, positionally aligned with Fn's parameters. Go can't
	// recover them at run time; options of unnamed parameters need explicit names.
	Params []string
}

// CommandConfig is the explicit configuration of a command. A nil *CommandConfig builds an
// automatic command with every field inferred.
type CommandConfig struct {
	// Name overrides the inferred command name.
	Name string

	// Help is shown in the application and command help.
	Help string

	// Default marks the command run when no command name is given.
	Default bool

	// Automatic turns every parameter without explicit configuration into an option. Without
	// it, each bound parameter needs an entry in Options.
	Automatic bool

	// Options configures parameters positionally. A nil entry means "no explicit
	// configuration".
	Options []*OptionConfig
}

// Command is one invocable entry point built from a function. It is immutable once built and
// safe for concurrent use.
type Command struct {
	name       string
	help       string
	isDefault  bool
	executable string

	// options is aligned with the function's parameters. A nil slot is not bound.
	options []*Option

	fn      reflect.Value
	ctxSlot int
}

// NewCommand builds a command from fn. Any misconfiguration is reported as an [Error] with
// code [ErrAnnotation].
func NewCommand(fn Func, cfg *CommandConfig) (*Command, error) {
	c, err := newCommand(fn, cfg)
	if err != nil {
		return nil, NewError(ErrAnnotation, err)
	}
	return c, nil
}

// Must is a helper that wraps a call to [NewCommand] and panics if the error is non-nil.
func Must(c *Command, err error) *Command {
	if err != nil {
		panic(err)
	}
	return c
}

func newCommand(fn Func, cfg *CommandConfig) (*Command, error) {
	if fn.Fn == nil {
		return nil, errors.New("command function is nil")
	}
	v := reflect.ValueOf(fn.Fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("command function must be a non-nil func, got %T", fn.Fn)
	}
	if err := checkResults(v.Type()); err != nil {
		return nil, err
	}
	automatic := cfg == nil || cfg.Automatic
	if cfg == nil {
		cfg = &CommandConfig{}
	}

	name := cfg.Name
	if name == "" {
		var err error
		if name, err = commandName(fn.Name, v); err != nil {
			return nil, err
		}
	}
	if strings.ContainsAny(name, " \t\n") || strings.HasPrefix(name, "-") {
		return nil, fmt.Errorf("invalid command name %q", name)
	}

	ft := v.Type()
	if len(cfg.Options) > ft.NumIn() {
		return nil, fmt.Errorf("command %q configures %d options but its function takes %d parameters", name, len(cfg.Options), ft.NumIn())
	}
	if len(fn.Params) > ft.NumIn() {
		return nil, fmt.Errorf("command %q names %d parameters but its function takes %d", name, len(fn.Params), ft.NumIn())
	}

	c := &Command{
		name:       name,
		help:       cfg.Help,
		isDefault:  cfg.Default,
		executable: defaultExecutableName,
		options:    make([]*Option, ft.NumIn()),
		fn:         v,
		ctxSlot:    -1,
	}
	for i := range ft.NumIn() {
		t := ft.In(i)
		if i == 0 && t == contextType {
			c.ctxSlot = 0
			continue
		}
		var ocfg *OptionConfig
		if i < len(cfg.Options) {
			ocfg = cfg.Options[i]
		}
		if ocfg != nil && ocfg.Skip {
			continue
		}
		if ocfg == nil && !automatic {
			return nil, fmt.Errorf("command %q has parameters without option configuration: configure every parameter or set CommandConfig.Automatic", name)
		}
		var param string
		if i < len(fn.Params) {
			param = fn.Params[i]
		}
		opt, err := newOption(t, param, ocfg)
		if err != nil {
			return nil, fmt.Errorf("command %q, parameter %d: %w", name, i, err)
		}
		c.options[i] = opt
	}

	seen := make(map[string]bool)
	for _, opt := range c.options {
		if opt == nil {
			continue
		}
		for _, n := range opt.names {
			if seen[n] {
				return nil, fmt.Errorf("command %q: duplicate option name %s", name, n)
			}
			seen[n] = true
		}
	}
	return c, nil
}

var errorType = reflect.TypeFor[error]()

func checkResults(ft reflect.Type) error {
	switch ft.NumOut() {
	case 0:
		return nil
	case 1:
		return nil
	case 2:
		if ft.Out(1) == errorType {
			return nil
		}
	}
	return fmt.Errorf("command function %s must return nothing, a value, an error, or a value and an error", ft)
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.name
}

// Help returns the command's help text.
func (c *Command) Help() string {
	return c.help
}

// IsDefault reports whether the command runs when no command name is given.
func (c *Command) IsDefault() bool {
	return c.isDefault
}

// Options returns the options aligned with the function's parameters. Slots that are not bound
// are nil.
func (c *Command) Options() []*Option {
	return slices.Clone(c.options)
}

// withExecutable returns a copy of c whose help refers to the given executable name.
func (c *Command) withExecutable(name string) *Command {
	cp := *c
	cp.executable = name
	return &cp
}

func (c *Command) lookup() map[string]int {
	index := make(map[string]int)
	for i, opt := range c.options {
		if opt == nil {
			continue
		}
		for _, n := range opt.names {
			index[n] = i
		}
	}
	return index
}
