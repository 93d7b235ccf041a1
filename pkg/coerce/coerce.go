// Package coerce converts command line tokens into Go values of a declared type.
//
// Scalars are parsed with the same literal grammar the Go compiler accepts for numeric literals
// (base prefixes and underscores included). Any type whose pointer implements
// [encoding.TextUnmarshaler] or [flag.Value] is treated as a scalar built from a single string.
// Slices, arrays, sets (map[T]struct{} or map[T]bool) and pointers to [Container] implementations
// are multi-valued and are filled element by element.
package coerce

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"
)

// ErrUnsupported is returned when a type cannot be built from a string.
var ErrUnsupported = errors.New("unsupported type")

// SyntaxError reports a literal that could not be converted to the requested type.
type SyntaxError struct {
	Literal string
	Type    reflect.Type
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Literal, TypeName(e.Type), e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// CountError is returned when a fixed-size array receives the wrong number of values.
type CountError struct {
	Want, Got int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("want exactly %d values, got %d", e.Want, e.Got)
}

// Char is a single Unicode character. Use it instead of rune, which is indistinguishable from
// int32.
type Char rune

func (c Char) String() string {
	return string(c)
}

// Container is implemented by pointer types that accumulate coerced elements, such as
// *collection.SortedSet[T]. The zero value of the pointed-to type must be ready to use.
type Container interface {
	// ElemType reports the element type. An interface type means the element type is erased and
	// must be supplied by the caller.
	ElemType() reflect.Type
	// Add inserts one element. The value always has the element type.
	Add(v any) error
	// Items returns the elements in iteration order.
	Items() []any
}

type setter interface {
	Set(string) error
}

var (
	charType            = reflect.TypeFor[Char]()
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	setterType          = reflect.TypeFor[setter]()
	containerType       = reflect.TypeFor[Container]()
)

func hasParser(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	p := reflect.PointerTo(t)
	return p.Implements(textUnmarshalerType) || p.Implements(setterType)
}

func isContainer(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Implements(containerType)
}

func isSetMap(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	v := t.Elem()
	return v.Kind() == reflect.Bool || (v.Kind() == reflect.Struct && v.NumField() == 0)
}

// IsMulti reports whether t is bound from a run of tokens rather than a single token.
func IsMulti(t reflect.Type) bool {
	if t == nil || hasParser(t) {
		return false
	}
	if isContainer(t) {
		return true
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Map:
		return isSetMap(t)
	}
	return false
}

// Elem returns the declared element type of a multi-valued type, or nil if t is not
// multi-valued. The result may be an interface type, see [Erased].
func Elem(t reflect.Type) reflect.Type {
	if !IsMulti(t) {
		return nil
	}
	if isContainer(t) {
		return reflect.New(t.Elem()).Interface().(Container).ElemType()
	}
	if t.Kind() == reflect.Map {
		return t.Key()
	}
	return t.Elem()
}

// Erased reports whether an element type carries no information about the values it holds.
func Erased(elem reflect.Type) bool {
	return elem == nil || elem.Kind() == reflect.Interface
}

// Value converts a single token into a value of type t.
func Value(t reflect.Type, s string) (reflect.Value, error) {
	switch t {
	case charType:
		if utf8.RuneCountInString(s) != 1 {
			return reflect.Value{}, &SyntaxError{Literal: s, Type: t, Err: errors.New("must be exactly one character")}
		}
		r, _ := utf8.DecodeRuneInString(s)
		return reflect.ValueOf(Char(r)), nil
	case durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			return reflect.Value{}, &SyntaxError{Literal: s, Type: t, Err: err}
		}
		return reflect.ValueOf(d), nil
	}
	if hasParser(t) {
		p := reflect.New(t)
		var err error
		switch x := p.Interface().(type) {
		case encoding.TextUnmarshaler:
			err = x.UnmarshalText([]byte(s))
		case setter:
			err = x.Set(s)
		}
		if err != nil {
			return reflect.Value{}, &SyntaxError{Literal: s, Type: t, Err: err}
		}
		return p.Elem(), nil
	}

	v := reflect.New(t).Elem()
	var err error
	switch t.Kind() {
	case reflect.Bool:
		var b bool
		if b, err = strconv.ParseBool(s); err == nil {
			v.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if n, err = strconv.ParseInt(s, 0, t.Bits()); err == nil {
			v.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var n uint64
		if n, err = strconv.ParseUint(s, 0, t.Bits()); err == nil {
			v.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = strconv.ParseFloat(s, t.Bits()); err == nil {
			v.SetFloat(f)
		}
	case reflect.Complex64, reflect.Complex128:
		var c complex128
		if c, err = strconv.ParseComplex(s, t.Bits()); err == nil {
			v.SetComplex(c)
		}
	case reflect.String:
		v.SetString(s)
	case reflect.Pointer:
		e, err := Value(t.Elem(), s)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(e)
		return p, nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s cannot be built from a string", ErrUnsupported, TypeName(t))
	}
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return reflect.Value{}, &SyntaxError{Literal: s, Type: t, Err: err}
	}
	return v, nil
}

// Values converts a run of tokens into a multi-valued type t. A non-nil elem overrides the
// declared element type and is required when the declared element type is erased.
func Values(t, elem reflect.Type, tokens []string) (reflect.Value, error) {
	if !IsMulti(t) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not a container", ErrUnsupported, TypeName(t))
	}
	declared := Elem(t)
	if elem == nil {
		elem = declared
	}
	if Erased(elem) {
		return reflect.Value{}, fmt.Errorf("%w: element type of %s is unknown", ErrUnsupported, TypeName(t))
	}
	if !elem.AssignableTo(declared) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to elements of %s", ErrUnsupported, TypeName(elem), TypeName(t))
	}
	items := make([]reflect.Value, 0, len(tokens))
	for _, tok := range tokens {
		v, err := Value(elem, tok)
		if err != nil {
			return reflect.Value{}, err
		}
		items = append(items, v)
	}
	return assemble(t, items)
}

func assemble(t reflect.Type, items []reflect.Value) (reflect.Value, error) {
	if isContainer(t) {
		v := reflect.New(t.Elem())
		c := v.Interface().(Container)
		for _, item := range items {
			if err := c.Add(item.Interface()); err != nil {
				return reflect.Value{}, err
			}
		}
		return v, nil
	}
	switch t.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			s.Index(i).Set(item)
		}
		return s, nil
	case reflect.Array:
		if len(items) != t.Len() {
			return reflect.Value{}, &CountError{Want: t.Len(), Got: len(items)}
		}
		a := reflect.New(t).Elem()
		for i, item := range items {
			a.Index(i).Set(item)
		}
		return a, nil
	case reflect.Map:
		member := reflect.Zero(t.Elem())
		if t.Elem().Kind() == reflect.Bool {
			member = reflect.ValueOf(true).Convert(t.Elem())
		}
		m := reflect.MakeMapWithSize(t, len(items))
		for _, item := range items {
			m.SetMapIndex(item, member)
		}
		return m, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s is not a container", ErrUnsupported, TypeName(t))
}

// Zero returns the value an unset parameter of type t receives: an empty container for
// multi-valued types and the Go zero value otherwise.
func Zero(t reflect.Type) reflect.Value {
	if IsMulti(t) && t.Kind() != reflect.Array {
		if v, err := assemble(t, nil); err == nil {
			return v
		}
	}
	return reflect.Zero(t)
}

// TypeName returns a short, human readable name for t.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t == charType {
		return "char"
	}
	return t.String()
}
