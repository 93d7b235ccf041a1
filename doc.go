// Package clinic turns plain Go functions into a multi-command command-line application.
//
// A [Command] is built from a [Func] and an optional [CommandConfig]. Each function parameter
// becomes an [Option] whose names, requiredness, default and help come from an [OptionConfig]
// or are inferred from the parameter. Tokens are bound to options by name: single-valued options
// take exactly one value, flags take none and multi-valued options (slices, arrays, sets and
// containers from pkg/collection) take every value up to the next option name.
//
//	add := clinic.Must(clinic.NewCommand(clinic.Func{
//		Name:   "add",
//		Fn:     func(x, y int) int { return x + y },
//		Params: []string{"x", "y"},
//	}, nil))
//	app, err := clinic.New("calc", add)
//	...
//	err = app.Run(ctx, os.Args[1:], nil)
//	os.Exit(clinic.ExitCode(err))
//
// Commands are immutable once built and may be executed concurrently.
package clinic
