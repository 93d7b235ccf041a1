package clinic

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"github.com/mfridman/clinic/pkg/coerce"
	"github.com/mfridman/clinic/pkg/textutil"
)

const (
	// HelpOption is reserved: it is never an option name and always requests help.
	HelpOption = "--help"

	defaultExecutableName = "program"
)

var contextType = reflect.TypeFor[context.Context]()

// zeroValue is what a parameter receives when nothing sets it: false, 0, 0.0, the NUL
// character, "" or nil for scalars, and an empty container of the same shape for multi-valued
// types.
func zeroValue(t reflect.Type) reflect.Value {
	return coerce.Zero(t)
}

// optionName infers an option name from a parameter name: "dryRun" becomes "--dry-run" and "x"
// becomes "-x".
func optionName(param string) string {
	return withDashes(textutil.Hyphen(param))
}

func withDashes(name string) string {
	if strings.HasPrefix(name, "-") {
		return name
	}
	if len(name) > 1 {
		return "--" + name
	}
	return "-" + name
}

// commandName infers a command name from the function's declared name or, when that is empty,
// from the symbol the runtime reports for fn.
func commandName(declared string, fn reflect.Value) (string, error) {
	name := declared
	if name == "" {
		name = runtimeName(fn)
	}
	if name == "" {
		return "", fmt.Errorf("cannot infer a command name for %s: set Func.Name or CommandConfig.Name", fn.Type())
	}
	return textutil.Hyphen(name), nil
}

func runtimeName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.Index(name, "[...]"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if isAnonymous(name) {
		return ""
	}
	return name
}

// isAnonymous reports whether a runtime symbol such as "func1" or "2" names a function literal.
func isAnonymous(name string) bool {
	rest, _ := strings.CutPrefix(name, "func")
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
