package coerce

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Format renders v the way it is shown in help text. Multi-valued types render as their
// elements joined by ", ". The output of Format for a scalar converts back to an equal value with
// [Value].
func Format(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if IsMulti(v.Type()) {
		items := Elements(v)
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, formatScalar(item))
		}
		return strings.Join(parts, ", ")
	}
	return formatScalar(v)
}

// Elements returns the elements of a multi-valued v in iteration order. Hash sets are ordered
// by their rendering so that output is stable.
func Elements(v reflect.Value) []reflect.Value {
	t := v.Type()
	if isContainer(t) {
		if v.IsNil() {
			return nil
		}
		var out []reflect.Value
		for _, item := range v.Interface().(Container).Items() {
			out = append(out, reflect.ValueOf(item))
		}
		return out
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]reflect.Value, v.Len())
		for i := range v.Len() {
			out[i] = v.Index(i)
		}
		return out
	case reflect.Map:
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(formatScalar(a), formatScalar(b))
		})
		return keys
	}
	return nil
}

func formatScalar(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return ""
		}
	}
	if v.CanInterface() {
		if s, ok := formatMethod(v.Interface()); ok {
			return s
		}
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return formatScalar(v.Elem())
	}
	// Methods with pointer receivers, such as (*big.Int).String, need an addressable value.
	if v.CanAddr() && v.Addr().CanInterface() {
		if s, ok := formatMethod(v.Addr().Interface()); ok {
			return s
		}
	} else if v.CanInterface() {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		if s, ok := formatMethod(p.Interface()); ok {
			return s
		}
	}
	return fmt.Sprint(v.Interface())
}

func formatMethod(x any) (string, bool) {
	switch x := x.(type) {
	case encoding.TextMarshaler:
		if b, err := x.MarshalText(); err == nil {
			return string(b), true
		}
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}
