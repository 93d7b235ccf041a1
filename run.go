package clinic

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mfridman/xflag"

	"github.com/mfridman/clinic/pkg/suggest"
)

// RunOptions specifies options for running an application.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the
	// command. If any of these are nil, the command will use the default streams ([os.Stdin],
	// [os.Stdout], and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Run selects a command from args, binds the remaining tokens and invokes it. Help requests are
// printed to Stdout; parse and configuration errors are printed to Stderr followed by the
// relevant usage text. Errors returned by the command's function are not printed. All errors
// are returned to the caller, see [ExitCode].
//
// The first token selects the command unless it starts with a dash, in which case all tokens go
// to the default command.
func (a *App) Run(ctx context.Context, args []string, options *RunOptions) error {
	options = checkAndSetRunOptions(options)
	_, err := a.execute(ctx, args, options)
	if err != nil {
		a.report(options, err)
	}
	return err
}

// Execute is like [App.Run] but returns the command's result and prints nothing.
func (a *App) Execute(ctx context.Context, args []string, options *RunOptions) (any, error) {
	return a.execute(ctx, args, checkAndSetRunOptions(options))
}

func (a *App) execute(ctx context.Context, args []string, options *RunOptions) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := a.logger()
	cmd, rest, err := a.selectCommand(args)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "command selected", "command", cmd.name, "tokens", len(rest))

	state := &State{
		Command: cmd.name,
		Stdin:   options.Stdin,
		Stdout:  options.Stdout,
		Stderr:  options.Stderr,
		flags:   a.Flags,
	}
	result, err := cmd.withExecutable(a.executable()).Execute(withState(ctx, state), rest)
	if err != nil {
		logger.DebugContext(ctx, "command failed", "command", cmd.name, "error", err)
		return nil, err
	}
	return result, nil
}

func (a *App) selectCommand(args []string) (*Command, []string, error) {
	if len(args) > 0 && args[0] == HelpOption {
		return nil, nil, a.usageError(ErrShowHelp, errors.New("help requested"))
	}
	if a.Flags != nil {
		if i := a.commandIndex(args); i > 0 {
			if err := a.parseFlags(args[:i]); err != nil {
				return nil, nil, err
			}
			args = args[i:]
		}
	}
	if len(args) > 0 && !isOptionLike(args[0]) {
		c, ok := a.commands[args[0]]
		if !ok {
			return nil, nil, a.usageError(ErrParse, a.unknownCommand(args[0]))
		}
		return c, args[1:], nil
	}
	if a.defaultCmd == nil {
		return nil, nil, a.usageError(ErrParse, errors.New("no command was provided"))
	}
	return a.defaultCmd, args, nil
}

// commandIndex returns the position of the first registered command name that follows one or
// more option-like tokens, or -1.
func (a *App) commandIndex(args []string) int {
	if len(args) == 0 || !isOptionLike(args[0]) {
		return -1
	}
	for i, arg := range args {
		if _, ok := a.commands[arg]; ok {
			return i
		}
	}
	return -1
}

func (a *App) parseFlags(args []string) error {
	a.Flags.SetOutput(io.Discard)
	if err := xflag.ParseToEnd(a.Flags, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return a.usageError(ErrShowHelp, err)
		}
		return a.usageError(ErrParse, err)
	}
	if a.Flags.NArg() > 0 {
		return a.usageError(ErrParse, fmt.Errorf("unexpected argument %q before the command name", a.Flags.Arg(0)))
	}
	return nil
}

func (a *App) unknownCommand(name string) error {
	known := make([]string, 0, len(a.commands))
	for n := range a.commands {
		known = append(known, n)
	}
	suggestions := suggest.FindSimilar(name, known, 3)
	if len(suggestions) > 0 {
		return fmt.Errorf("unrecognized command %q. Did you mean one of these?\n\t%s",
			name,
			strings.Join(suggestions, "\n\t"))
	}
	return fmt.Errorf("unrecognized command %q", name)
}

func (a *App) usageError(code ErrorCode, err error) error {
	return newUsageError(code, err, a.Usage())
}

func (a *App) report(options *RunOptions, err error) {
	var cliErr *Error
	if !errors.As(err, &cliErr) {
		return
	}
	switch cliErr.code {
	case ErrShowHelp:
		fmt.Fprintln(options.Stdout, cliErr.usage)
	case ErrParse, ErrAnnotation, ErrInternal:
		prefix := color.New(color.FgRed, color.Bold)
		if a.NoColor {
			prefix.DisableColor()
		}
		prefix.Fprint(options.Stderr, "error:")
		fmt.Fprintf(options.Stderr, " %s\n", cliErr.Error())
		if cliErr.usage != "" {
			fmt.Fprintf(options.Stderr, "\n%s\n", cliErr.usage)
		}
	}
}

// ExitCode maps the error returned by [App.Run] to a process exit code: 0 for success and help
// requests, 2 for invalid command line input and 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil, IsCode(err, ErrShowHelp):
		return 0
	case IsCode(err, ErrParse):
		return 2
	default:
		return 1
	}
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}
