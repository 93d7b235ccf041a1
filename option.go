package clinic

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mfridman/clinic/pkg/coerce"
)

// OptionConfig is the explicit configuration of one function parameter. The zero value asks for
// every field to be inferred.
type OptionConfig struct {
	// Names the option is addressed by. Names without a leading dash get one: "x" becomes "-x"
	// and "name" becomes "--name". When empty, the name is inferred from the parameter name.
	Names []string

	// Required options must appear on the command line and can't have a default.
	Required bool

	// Help is shown next to the option in the command help.
	Help string

	// Default is the literal default of a single-valued option. It is converted with the same
	// rules as a command line value. An empty literal means no default.
	Default string

	// Defaults are the literal defaults of a multi-valued option, one per element.
	Defaults []string

	// Flag marks a boolean option that takes no value: its presence binds true.
	Flag bool

	// HideDefault omits the default value from the command help.
	HideDefault bool

	// ElemType declares the element type of a multi-valued option. It is required when the
	// parameter type does not carry it, such as []any, and overrides it otherwise.
	ElemType reflect.Type

	// Skip excludes the parameter from binding. It always receives its zero value.
	Skip bool
}

func (cfg *OptionConfig) hasDefault() bool {
	return cfg.Default != "" || len(cfg.Defaults) > 0
}

// Option describes one bindable parameter of a [Command]. It is immutable once built.
type Option struct {
	names       []string
	required    bool
	typ         reflect.Type
	elemType    reflect.Type
	defaults    []string
	value       reflect.Value
	help        string
	showDefault bool
	flag        bool
	multiValue  bool
}

// NewOption builds the option for a parameter of type t. param is the parameter name used to
// infer the option name; pass "" when it is unknown. A nil cfg infers everything.
func NewOption(t reflect.Type, param string, cfg *OptionConfig) (*Option, error) {
	o, err := newOption(t, param, cfg)
	if err != nil {
		return nil, NewError(ErrAnnotation, err)
	}
	return o, nil
}

func newOption(t reflect.Type, param string, cfg *OptionConfig) (*Option, error) {
	if t == nil {
		return nil, errors.New("option type is nil")
	}
	if cfg == nil {
		cfg = &OptionConfig{}
	}
	names, err := resolveNames(param, cfg.Names)
	if err != nil {
		return nil, err
	}
	joined := strings.Join(names, "/")

	o := &Option{
		names:      names,
		required:   cfg.Required,
		typ:        t,
		help:       cfg.Help,
		flag:       cfg.Flag,
		multiValue: coerce.IsMulti(t),
	}
	if o.required && cfg.hasDefault() {
		return nil, fmt.Errorf("can't set a default for required option %s", joined)
	}
	if o.flag && !isBool(t) {
		return nil, fmt.Errorf("option %s is a flag but its type %s isn't a boolean", joined, coerce.TypeName(t))
	}

	if o.multiValue {
		declared := coerce.Elem(t)
		o.elemType = declared
		if cfg.ElemType != nil {
			o.elemType = cfg.ElemType
		}
		if coerce.Erased(o.elemType) {
			return nil, fmt.Errorf("option %s has type %s whose element type is unknown: set OptionConfig.ElemType", joined, coerce.TypeName(t))
		}
		if !o.elemType.AssignableTo(declared) {
			return nil, fmt.Errorf("option %s declares element type %s, which %s can't hold", joined, coerce.TypeName(o.elemType), coerce.TypeName(t))
		}
		o.defaults = slices.Clone(cfg.Defaults)
		if len(o.defaults) == 0 && cfg.Default != "" {
			o.defaults = []string{cfg.Default}
		}
	} else if len(cfg.Defaults) > 0 {
		return nil, fmt.Errorf("option %s takes a single value: use Default instead of Defaults", joined)
	} else if cfg.Default != "" {
		o.defaults = []string{cfg.Default}
	}

	if o.value, err = o.resolveDefault(); err != nil {
		return nil, fmt.Errorf("invalid default for option %s: %w", joined, err)
	}
	o.showDefault = !cfg.HideDefault && !o.required
	return o, nil
}

func resolveNames(param string, configured []string) ([]string, error) {
	var names []string
	if len(configured) > 0 {
		for _, name := range configured {
			name = strings.TrimSpace(name)
			if strings.Trim(name, "-") == "" {
				return nil, fmt.Errorf("invalid option name %q", name)
			}
			name = withDashes(name)
			if name == HelpOption {
				return nil, fmt.Errorf("%s is reserved and can't be used as an option name", HelpOption)
			}
			names = append(names, name)
		}
	} else {
		if param == "" {
			return nil, errors.New("can't infer an option name because the parameter name is unavailable: set Func.Params or OptionConfig.Names")
		}
		name := optionName(param)
		if name == HelpOption {
			return nil, fmt.Errorf("parameter %q needs explicit option names because %s is reserved", param, HelpOption)
		}
		names = []string{name}
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names, nil
}

// resolveDefault converts the configured default literals into a fresh value. Options without
// defaults get the zero value without any conversion, so unsupported types are only reported
// when a value is actually supplied.
func (o *Option) resolveDefault() (reflect.Value, error) {
	if len(o.defaults) == 0 {
		return zeroValue(o.typ), nil
	}
	if o.multiValue {
		return coerce.Values(o.typ, o.elemType, o.defaults)
	}
	return coerce.Value(o.typ, o.defaults[0])
}

// initial returns the value a binding starts from. Values of reference kinds, including
// self-parsing types such as net.IP, are rebuilt per call so that executions never share a
// mutable default.
func (o *Option) initial() reflect.Value {
	if o.multiValue || isReference(o.typ) {
		if v, err := o.resolveDefault(); err == nil {
			return v
		}
	}
	return o.value
}

func isReference(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer:
		return true
	}
	return false
}

// convert turns the tokens bound to this option into a value.
func (o *Option) convert(tokens []string) (reflect.Value, error) {
	if o.multiValue {
		return coerce.Values(o.typ, o.elemType, tokens)
	}
	return coerce.Value(o.typ, tokens[0])
}

func (o *Option) flagValue() reflect.Value {
	if o.typ.Kind() == reflect.Pointer {
		p := reflect.New(o.typ.Elem())
		p.Elem().Set(reflect.ValueOf(true).Convert(o.typ.Elem()))
		return p
	}
	return reflect.ValueOf(true).Convert(o.typ)
}

func isBool(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Bool
}

// Names returns the option names, shortest first.
func (o *Option) Names() []string {
	return slices.Clone(o.names)
}

// Required reports whether the option must be supplied.
func (o *Option) Required() bool {
	return o.required
}

// Default returns the default value, or the zero value of the parameter type when none was
// configured.
func (o *Option) Default() any {
	return o.initial().Interface()
}

// HasDefault reports whether a default was configured explicitly.
func (o *Option) HasDefault() bool {
	return len(o.defaults) > 0
}

// Help returns the option's help text.
func (o *Option) Help() string {
	return o.help
}

// ShowDefault reports whether the help text shows the default value.
func (o *Option) ShowDefault() bool {
	return o.showDefault
}

// Flag reports whether the option takes no value.
func (o *Option) Flag() bool {
	return o.flag
}

// MultiValue reports whether the option binds a run of tokens.
func (o *Option) MultiValue() bool {
	return o.multiValue
}

// Type returns the parameter type.
func (o *Option) Type() reflect.Type {
	return o.typ
}

// ElemType returns the element type of a multi-valued option, or nil.
func (o *Option) ElemType() reflect.Type {
	return o.elemType
}

func (o *Option) String() string {
	return strings.Join(o.names, "/")
}

func (o *Option) renderDefault() string {
	return coerce.Format(o.value)
}
