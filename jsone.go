// Package jsone implements JSON-e, a data-structure parameterization
// system: it transforms a JSON template against a user-supplied context to
// produce a new JSON value, driven by `$`-prefixed operators and a small
// `${...}` expression language.
//
// # Quick start
//
//	result, err := jsone.Render(map[string]interface{}{
//	    "$if":   "x > 0",
//	    "then":  "pos",
//	    "else":  "neg",
//	}, map[string]interface{}{"x": -1})
//
// # Options
//
//	result, err := jsone.Render(template, context,
//	    jsone.WithClock(fixedClock),
//	    jsone.WithLogger(slog.Default()),
//	)
//
// # More information
//
// For detailed documentation, see:
//   - Value model: github.com/sandrolain/jsone-go/pkg/value
//   - Parser: github.com/sandrolain/jsone-go/pkg/parser
//   - Interpreter: github.com/sandrolain/jsone-go/pkg/interpreter
//   - Renderer: github.com/sandrolain/jsone-go/pkg/renderer
//   - Operators: github.com/sandrolain/jsone-go/pkg/operators
package jsone

import (
	"fmt"
	"log/slog"

	"github.com/sandrolain/jsone-go/pkg/builtins"
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/fromnow"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	_ "github.com/sandrolain/jsone-go/pkg/operators" // registers the operator table via init()
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

// Error is the structured error type returned by Render: SyntaxError,
// InterpreterError, or TemplateError (spec §7). An error of any kind raised
// while rendering carries the template location path where it occurred.
type Error = errs.Error

// ErrorKind identifies which of the three error taxonomies an Error
// belongs to.
type ErrorKind = errs.Kind

const (
	SyntaxError      = errs.Syntax
	InterpreterError = errs.Interpreter
	TemplateError    = errs.Template
)

// Clock supplies the current time for the `now` built-in and unanchored
// `$fromNow` operators (spec §5: "SHOULD be injectable so tests may freeze
// time deterministically").
type Clock = fromnow.Clock

// RenderOptions configures a Render call.
type RenderOptions struct {
	// Clock supplies the current time. Defaults to the system clock.
	Clock Clock
	// Logger receives Debug-level diagnostic traces of render start,
	// failure and completion; never used for control flow and never logs
	// at warning or error level, since every failure is always returned
	// rather than swallowed (spec §8).
	Logger *slog.Logger
}

// RenderOption mutates RenderOptions; see WithClock and WithLogger.
type RenderOption func(*RenderOptions)

// WithClock overrides the clock used for `now` and unanchored `$fromNow`.
func WithClock(c Clock) RenderOption {
	return func(o *RenderOptions) { o.Clock = c }
}

// WithLogger attaches a structured logger for Debug-level diagnostic
// traces.
func WithLogger(logger *slog.Logger) RenderOption {
	return func(o *RenderOptions) { o.Logger = logger }
}

// Render transforms template against context, per spec §6's public entry
// point contract. template and context must each be one of the Go shapes
// produced by encoding/json.Unmarshal into interface{} (nil, bool, float64,
// string, []interface{}, map[string]interface{}); context's top-level keys
// must additionally match `[A-Za-z_][A-Za-z0-9_]*`, and its values may also
// be callables of the form `func([]interface{}) (interface{}, error)`.
//
// Returns the rendered Go value; a top-level DeleteMarker surfaces as nil.
// Fails with a *jsone.Error of kind TemplateError, InterpreterError, or
// SyntaxError.
func Render(template interface{}, context map[string]interface{}, opts ...RenderOption) (interface{}, error) {
	options := RenderOptions{Clock: fromnow.SystemClock{}}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	ctx := interpreter.NewContext()
	builtins.Install(ctx, options.Clock)

	for name, v := range context {
		if !renderer.IsIdentifier(name) {
			return nil, errs.Templatef("context key %q does not match the identifier grammar", name)
		}
		if fn, ok := v.(func([]interface{}) (interface{}, error)); ok {
			ctx.SetCallable(name, wrapCallable(fn))
			continue
		}
		val, err := value.FromGo(v)
		if err != nil {
			return nil, errs.Templatef("context value %q: %v", name, err)
		}
		ctx.Set(name, val)
	}

	tmpl, err := value.FromGo(template)
	if err != nil {
		return nil, errs.Templatef("template: %v", err)
	}

	options.Logger.Debug("jsone: render start")
	res, err := renderer.RenderTemplate(tmpl, ctx)
	if err != nil {
		options.Logger.Debug("jsone: render failed", "error", err)
		return nil, err
	}
	options.Logger.Debug("jsone: render done")
	if res.Deleted {
		return nil, nil
	}
	return value.ToGo(res.Value), nil
}

// MustRender is like Render but panics if rendering fails. It simplifies
// safe initialization of global template values.
func MustRender(template interface{}, context map[string]interface{}, opts ...RenderOption) interface{} {
	result, err := Render(template, context, opts...)
	if err != nil {
		panic(fmt.Sprintf("jsone: Render: %v", err))
	}
	return result
}

func wrapCallable(fn func([]interface{}) (interface{}, error)) interpreter.Callable {
	return func(args []value.Value) (value.Value, error) {
		goArgs := make([]interface{}, len(args))
		for i, a := range args {
			goArgs[i] = value.ToGo(a)
		}
		result, err := fn(goArgs)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromGo(result)
	}
}
