// Package interpreter evaluates a parsed expression AST against a context
// to produce a Value, implementing spec §4.3's type-check rules.
package interpreter

import "github.com/sandrolain/jsone-go/pkg/value"

// Callable is a context entry that can be invoked as a function. Per spec
// §9 Design Notes, context entries are either a plain Value or a Callable;
// the interpreter only dispatches on this wider type at function-call
// sites (spec §4.3 "Function call").
type Callable func(args []value.Value) (value.Value, error)

// entry is a context binding: either a Value or a Callable, never both.
type entry struct {
	val        value.Value
	fn         Callable
	isCallable bool
}

// Context holds the bindings visible to an expression. Bindings introduced
// by $let/$map live in a child Context that shadows its parent without
// mutating it (spec §3 "the parent context is never mutated"), mirroring
// the teacher's EvalContext parent-chain design.
type Context struct {
	parent   *Context
	bindings map[string]entry
}

// NewContext creates a root context with no bindings.
func NewContext() *Context {
	return &Context{bindings: make(map[string]entry)}
}

// Child creates a new context shadowing c: lookups that miss in the child
// fall through to the parent, and bindings set on the child never affect c.
func (c *Context) Child() *Context {
	return &Context{parent: c, bindings: make(map[string]entry)}
}

// Set binds name to a plain Value in this context.
func (c *Context) Set(name string, v value.Value) {
	c.bindings[name] = entry{val: v}
}

// SetCallable binds name to a callable in this context.
func (c *Context) SetCallable(name string, fn Callable) {
	c.bindings[name] = entry{fn: fn, isCallable: true}
}

// Lookup resolves name in c or any ancestor, returning its Value and whether
// it is bound to a plain Value. A name bound to a Callable yields the zero
// Value and false — see LookupCallable.
func (c *Context) Lookup(name string) (value.Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if e, ok := ctx.bindings[name]; ok {
			return e.val, !e.isCallable
		}
	}
	return value.Value{}, false
}

// LookupCallable resolves name to a Callable, if bound as one.
func (c *Context) LookupCallable(name string) (Callable, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if e, ok := ctx.bindings[name]; ok {
			if e.isCallable {
				return e.fn, true
			}
			return nil, false
		}
	}
	return nil, false
}

// Has reports whether name is bound anywhere in the chain.
func (c *Context) Has(name string) bool {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if _, ok := ctx.bindings[name]; ok {
			return true
		}
	}
	return false
}
