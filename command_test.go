package clinic

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deployService(ctx context.Context, region string, replicas int) error {
	return nil
}

type greeter struct{}

func (greeter) SayHello(name string) string { return "hello " + name }

func TestNewCommand(t *testing.T) {
	t.Parallel()

	t.Run("automatic", func(t *testing.T) {
		t.Parallel()
		cmd, err := NewCommand(Func{
			Fn:     deployService,
			Params: []string{"ctx", "region", "replicas"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "deploy-service", cmd.Name())
		assert.False(t, cmd.IsDefault())

		opts := cmd.Options()
		require.Len(t, opts, 3)
		assert.Nil(t, opts[0])
		assert.Equal(t, []string{"--region"}, opts[1].Names())
		assert.Equal(t, []string{"--replicas"}, opts[2].Names())
	})
	t.Run("declared name wins over runtime name", func(t *testing.T) {
		t.Parallel()
		cmd, err := NewCommand(Func{Name: "rollOut", Fn: deployService, Params: []string{"", "region", "replicas"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "roll-out", cmd.Name())

		cmd, err = NewCommand(Func{Name: "rollOut", Fn: deployService, Params: []string{"", "region", "replicas"}},
			&CommandConfig{Name: "ship", Automatic: true, Help: "Ship it."})
		require.NoError(t, err)
		assert.Equal(t, "ship", cmd.Name())
		assert.Equal(t, "Ship it.", cmd.Help())
	})
	t.Run("method value", func(t *testing.T) {
		t.Parallel()
		cmd, err := NewCommand(Func{Fn: greeter{}.SayHello, Params: []string{"name"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "say-hello", cmd.Name())
	})
	t.Run("explicit configuration", func(t *testing.T) {
		t.Parallel()
		cmd, err := NewCommand(Func{Fn: func(x, y int, verbose bool) int { return x + y }}, &CommandConfig{
			Name:    "add",
			Default: true,
			Options: []*OptionConfig{
				{Names: []string{"x", "first"}, Required: true},
				{Names: []string{"y"}, Default: "10"},
				{Skip: true},
			},
		})
		require.NoError(t, err)
		assert.True(t, cmd.IsDefault())
		opts := cmd.Options()
		require.Len(t, opts, 3)
		assert.Equal(t, []string{"-x", "--first"}, opts[0].Names())
		assert.Equal(t, 10, opts[1].Default())
		assert.Nil(t, opts[2])
	})
	t.Run("automatic fills unconfigured slots", func(t *testing.T) {
		t.Parallel()
		cmd, err := NewCommand(Func{Fn: func(src, dst string) {}, Params: []string{"src", "dst"}}, &CommandConfig{
			Name:      "copy",
			Automatic: true,
			Options:   []*OptionConfig{{Required: true}},
		})
		require.NoError(t, err)
		opts := cmd.Options()
		assert.True(t, opts[0].Required())
		assert.Equal(t, []string{"--dst"}, opts[1].Names())
	})
	t.Run("options accessor is a copy", func(t *testing.T) {
		t.Parallel()
		cmd := Must(NewCommand(Func{Name: "noop", Fn: func(n int) {}, Params: []string{"n"}}, nil))
		opts := cmd.Options()
		opts[0] = nil
		assert.NotNil(t, cmd.Options()[0])
	})
}

func TestNewCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fn     Func
		cfg    *CommandConfig
		errMsg string
	}{
		{
			name:   "nil function",
			fn:     Func{Name: "x"},
			errMsg: "command function is nil",
		},
		{
			name:   "not a function",
			fn:     Func{Name: "x", Fn: 42},
			errMsg: "command function must be a non-nil func, got int",
		},
		{
			name:   "too many results",
			fn:     Func{Name: "x", Fn: func() (int, int, error) { return 0, 0, nil }},
			errMsg: "must return nothing, a value, an error, or a value and an error",
		},
		{
			name:   "second result is not an error",
			fn:     Func{Name: "x", Fn: func() (int, string) { return 0, "" }},
			errMsg: "must return nothing, a value, an error, or a value and an error",
		},
		{
			name:   "anonymous function",
			fn:     Func{Fn: func() {}},
			errMsg: "cannot infer a command name",
		},
		{
			name:   "invalid name",
			fn:     Func{Fn: func() {}},
			cfg:    &CommandConfig{Name: "--run"},
			errMsg: `invalid command name "--run"`,
		},
		{
			name:   "name with spaces",
			fn:     Func{Fn: func() {}},
			cfg:    &CommandConfig{Name: "run it"},
			errMsg: `invalid command name "run it"`,
		},
		{
			name:   "too many option configs",
			fn:     Func{Name: "x", Fn: func(a int) {}},
			cfg:    &CommandConfig{Options: []*OptionConfig{{}, {}}},
			errMsg: `command "x" configures 2 options but its function takes 1 parameters`,
		},
		{
			name:   "too many parameter names",
			fn:     Func{Name: "x", Fn: func(a int) {}, Params: []string{"a", "b"}},
			errMsg: `command "x" names 2 parameters but its function takes 1`,
		},
		{
			name:   "unconfigured parameter",
			fn:     Func{Name: "x", Fn: func(a, b int) {}, Params: []string{"a", "b"}},
			cfg:    &CommandConfig{Options: []*OptionConfig{{}}},
			errMsg: `command "x" has parameters without option configuration`,
		},
		{
			name:   "parameter name unavailable",
			fn:     Func{Name: "x", Fn: func(a int) {}},
			errMsg: `command "x", parameter 0: can't infer an option name because the parameter name is unavailable`,
		},
		{
			name:   "duplicate option names",
			fn:     Func{Name: "x", Fn: func(a, b int) {}},
			cfg:    &CommandConfig{Options: []*OptionConfig{{Names: []string{"n"}}, {Names: []string{"num", "n"}}}},
			errMsg: `command "x": duplicate option name -n`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCommand(tt.fn, tt.cfg)
			require.Error(t, err)
			assert.True(t, IsCode(err, ErrAnnotation))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestMust(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Must(NewCommand(Func{}, nil)) })
	assert.NotPanics(t, func() { Must(NewCommand(Func{Name: "ok", Fn: func() {}}, nil)) })
}

func TestCommandName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		declared string
		fn       any
		want     string
	}{
		{"packageCommand", func() {}, "package-command"},
		{"PackageCommand", func() {}, "package-command"},
		{"", deployService, "deploy-service"},
		{"", greeter{}.SayHello, "say-hello"},
	}
	for _, tt := range tests {
		got, err := commandName(tt.declared, reflect.ValueOf(tt.fn))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := commandName("", reflect.ValueOf(func() {}))
	assert.Error(t, err)
}

func TestIsAnonymous(t *testing.T) {
	t.Parallel()

	assert.True(t, isAnonymous("func1"))
	assert.True(t, isAnonymous("func12"))
	assert.True(t, isAnonymous("2"))
	assert.False(t, isAnonymous("func"))
	assert.False(t, isAnonymous("funcName"))
	assert.False(t, isAnonymous("deployService"))
}

func TestWithDashes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-x", withDashes("x"))
	assert.Equal(t, "--name", withDashes("name"))
	assert.Equal(t, "-n", withDashes("-n"))
	assert.Equal(t, "--dry-run", withDashes("--dry-run"))
	assert.Equal(t, "--dry-run", optionName("dryRun"))
	assert.Equal(t, "--ids2", optionName("ids2"))
	assert.Equal(t, "-v", optionName("v"))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	err := NewError(ErrParse, base)
	assert.True(t, IsCode(err, ErrParse))
	assert.False(t, IsCode(err, ErrAnnotation))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "boom", err.Error())
	assert.False(t, IsCode(base, ErrParse))

	var cliErr *Error
	require.ErrorAs(t, newUsageError(ErrShowHelp, base, "Usage: x"), &cliErr)
	assert.Equal(t, ErrShowHelp, cliErr.Code())
	assert.Equal(t, "Usage: x", cliErr.Usage())
	assert.Equal(t, "show help", ErrShowHelp.String())
	assert.Equal(t, "unknown error", ErrorCode(99).String())
}
