// Package errs implements the structured error taxonomy shared by every
// component of the template renderer: SyntaxError (tokenizer/parser),
// InterpreterError (expression evaluation), and TemplateError (operator
// misuse, reserved keys, interpolation of composite values).
package errs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies which of the three error taxonomies an Error belongs to.
type Kind uint8

const (
	Syntax Kind = iota
	Interpreter
	Template
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Interpreter:
		return "InterpreterError"
	case Template:
		return "TemplateError"
	default:
		return "Error"
	}
}

// Error is the structured error type returned by every component. Path
// accumulates location fragments (".key" or "[index]" or "[\"json key\"]")
// as the renderer unwinds from a failure, per spec §4.8/§7.
type Error struct {
	Kind    Kind
	Message string
	Path    []string
	Err     error
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Syntaxf(format string, args ...interface{}) *Error {
	return New(Syntax, format, args...)
}

func Interpreterf(format string, args ...interface{}) *Error {
	return New(Interpreter, format, args...)
}

func Templatef(format string, args ...interface{}) *Error {
	return New(Template, format, args...)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Path) > 0 {
		msg = fmt.Sprintf("%s at template%s", msg, strings.Join(e.Path, ""))
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error { return e.Err }

// WithCause attaches an underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Err = cause
	return e
}

// PrependPath pushes a location fragment onto the front of the path, called
// by the renderer as an error bubbles up from a child node to its parent.
func (e *Error) PrependPath(fragment string) *Error {
	e.Path = append([]string{fragment}, e.Path...)
	return e
}

// KeyFragment builds the location fragment for a mapping key: ".key" when
// key looks like an identifier, otherwise "[<json-encoded key>]".
func KeyFragment(key string, identifierRE func(string) bool) string {
	if identifierRE(key) {
		return "." + key
	}
	encoded, _ := json.Marshal(key)
	return "[" + string(encoded) + "]"
}

// IndexFragment builds the location fragment for an array index.
func IndexFragment(i int) string {
	return fmt.Sprintf("[%d]", i)
}

// As reports whether err is an *Error and, if so, returns it.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
