package clinic

import (
	"context"
	"flag"
	"fmt"
	"io"
)

// State represents the shared state of one application run. Functions that take a
// context.Context can retrieve it with [StateFrom] to reach the standard streams and the
// application flags.
type State struct {
	// Command is the name of the selected command.
	Command string

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	flags *flag.FlagSet
}

type stateKey struct{}

func withState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// StateFrom returns the [State] of the run that invoked the current command, or nil when the
// command was executed directly rather than through [App.Run].
func StateFrom(ctx context.Context) *State {
	s, _ := ctx.Value(stateKey{}).(*State)
	return s
}

// GetFlag retrieves an application flag value by name, with type inference. Example usage:
//
//	verbose := GetFlag[bool](state, "verbose")
//	count := GetFlag[int](state, "count")
//
// If the flag isn't found, or its type doesn't match, it panics with a detailed error. A missing
// flag is a programming error and it's better to fail loud and early.
func GetFlag[T any](s *State, name string) T {
	if s == nil || s.flags == nil {
		panic(fmt.Errorf("internal error: flag %q requested but the application has no flags", name))
	}
	f := s.flags.Lookup(name)
	if f == nil {
		panic(fmt.Errorf("internal error: flag %q not found in %q flag set", name, s.flags.Name()))
	}
	getter, ok := f.Value.(flag.Getter)
	if !ok {
		panic(fmt.Errorf("internal error: flag %q does not implement flag.Getter", name))
	}
	value := getter.Get()
	v, ok := value.(T)
	if !ok {
		panic(fmt.Errorf("internal error: type mismatch for flag %q: registered %T, requested %T", name, value, *new(T)))
	}
	return v
}
