package clinic

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mfridman/clinic/pkg/coerce"
	"github.com/mfridman/clinic/pkg/suggest"
)

// Parse binds args to the command's parameters without invoking its function. The result holds
// one value per parameter; the context slot, if any, is nil.
//
// Tokens are scanned left to right. Every value must follow an option name, and any token that
// starts with a dash is an option name, so values can never begin with a dash. A [HelpOption]
// token stops parsing with an [ErrShowHelp] error carrying the command help.
func (c *Command) Parse(args []string) ([]any, error) {
	values, err := c.bind(args)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(values))
	for i, v := range values {
		if i == c.ctxSlot {
			continue
		}
		out[i] = v.Interface()
	}
	return out, nil
}

// Execute binds args and calls the command's function with the result. It returns the
// function's value, if any. Errors returned by the function are returned as is.
func (c *Command) Execute(ctx context.Context, args []string) (any, error) {
	values, err := c.bind(args)
	if err != nil {
		return nil, err
	}
	if c.ctxSlot >= 0 {
		if ctx == nil {
			ctx = context.Background()
		}
		values[c.ctxSlot] = reflect.ValueOf(ctx)
	}
	return c.invoke(values)
}

func isOptionLike(token string) bool {
	return strings.HasPrefix(token, "-")
}

func (c *Command) bind(args []string) ([]reflect.Value, error) {
	ft := c.fn.Type()
	values := make([]reflect.Value, len(c.options))
	required := make(map[*Option]bool)
	for i, opt := range c.options {
		if opt == nil {
			values[i] = zeroValue(ft.In(i))
			continue
		}
		if opt.required {
			required[opt] = true
		}
		values[i] = opt.initial()
	}
	index := c.lookup()

	var (
		last     *Option
		lastName string
	)
	for i := 0; i < len(args); i++ {
		token := args[i]
		if token == HelpOption {
			return nil, newUsageError(ErrShowHelp, errors.New("help requested"), c.Usage())
		}
		if !isOptionLike(token) {
			msg := fmt.Sprintf("unexpected argument %q", token)
			switch {
			case last != nil && last.flag:
				msg += fmt.Sprintf(": %s is a flag and doesn't take any arguments", lastName)
			case last != nil && !last.multiValue:
				msg += fmt.Sprintf(": %s only takes one argument", lastName)
			}
			return nil, c.parseError(errors.New(msg))
		}
		slot, ok := index[token]
		if !ok {
			return nil, c.parseError(c.unknownOption(token))
		}
		opt := c.options[slot]
		delete(required, opt)
		last, lastName = opt, token

		if opt.flag {
			values[slot] = opt.flagValue()
			continue
		}
		if i+1 >= len(args) || isOptionLike(args[i+1]) {
			want := "1 argument"
			if opt.multiValue {
				want = "at least 1 argument"
			}
			return nil, c.parseError(fmt.Errorf("%s takes %s but got 0", token, want))
		}

		end := i + 2
		if opt.multiValue {
			for end < len(args) && !isOptionLike(args[end]) {
				end++
			}
		}
		tokens := make([]string, 0, end-i-1)
		for _, arg := range args[i+1 : end] {
			tokens = append(tokens, unquote(arg))
		}
		v, err := opt.convert(tokens)
		if err != nil {
			return nil, c.conversionError(opt, token, tokens, err)
		}
		values[slot] = v
		i = end - 1
	}

	if len(required) > 0 {
		var missing []string
		for _, opt := range c.options {
			if required[opt] {
				missing = append(missing, opt.String())
			}
		}
		noun := "option"
		if len(missing) > 1 {
			noun = "options"
		}
		return nil, c.parseError(fmt.Errorf("missing required %s: %s", noun, strings.Join(missing, " ")))
	}
	return values, nil
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func (c *Command) parseError(err error) error {
	return newUsageError(ErrParse, err, c.Usage())
}

func (c *Command) unknownOption(token string) error {
	var known []string
	for _, opt := range c.options {
		if opt != nil {
			known = append(known, opt.names...)
		}
	}
	suggestions := suggest.FindSimilar(token, known, 3)
	if len(suggestions) > 0 {
		return fmt.Errorf("unrecognized option %q. Did you mean one of these?\n\t%s",
			token,
			strings.Join(suggestions, "\n\t"))
	}
	return fmt.Errorf("unrecognized option %q", token)
}

func (c *Command) conversionError(opt *Option, name string, tokens []string, err error) error {
	if errors.Is(err, coerce.ErrUnsupported) {
		return newUsageError(ErrAnnotation, fmt.Errorf("option %s: %w", opt, err), c.Usage())
	}
	var countErr *coerce.CountError
	if errors.As(err, &countErr) {
		return c.parseError(fmt.Errorf("%s takes %d arguments but got %d", name, countErr.Want, countErr.Got))
	}
	return c.parseError(fmt.Errorf("failed to convert argument %q to %s for option %s: %w",
		strings.Join(tokens, " "), coerce.TypeName(opt.typ), opt, err))
}

func (c *Command) invoke(values []reflect.Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewError(ErrInternal, fmt.Errorf("command %q panicked: %v", c.name, r))
		}
	}()
	var out []reflect.Value
	if c.fn.Type().IsVariadic() {
		out = c.fn.CallSlice(values)
	} else {
		out = c.fn.Call(values)
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if c.fn.Type().Out(0) == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		if err := asError(out[1]); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
