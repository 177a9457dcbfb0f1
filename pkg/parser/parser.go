// Package parser implements the precedence-climbing parser for JSON-e
// expressions (spec §4.2, EBNF in §6).
//
// The teacher's JSONata parser (gosonata/pkg/parser) is a full Pratt
// parser with a per-token-kind parseInfix switch, sized for JSONata's much
// larger grammar (paths, filters, lambdas, pipes, sort, assignment). JSON-e's
// operator set is closed and small, so — per spec §9 Design Notes
// ("a table of levels suffices") — this parser collapses that dispatch into
// a single data-driven loop keyed by a level table, which is the more
// idiomatic shape for a small, fixed-precedence grammar.
package parser

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sandrolain/jsone-go/pkg/ast"
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/lexer"
	"github.com/sandrolain/jsone-go/pkg/token"
)

// levels lists the binary-operator precedence levels from lowest to
// highest, per spec §4.2: ||, &&, in, (==,!=), (<,<=,>,>=), (+,-), (*,/).
// `**` is handled separately since it is right-associative.
var levels = []map[token.Kind]string{
	{token.Or: "||"},
	{token.And: "&&"},
	{token.In: "in"},
	{token.Eq: "==", token.Neq: "!="},
	{token.Lt: "<", token.LE: "<=", token.Gt: ">", token.GE: ">="},
	{token.Plus: "+", token.Minus: "-"},
	{token.Star: "*", token.Slash: "/"},
}

// Parse parses a JSON-e expression and returns its AST, or a *errs.Error
// (Kind Syntax) on any lexical or grammatical failure.
func Parse(src string) (*ast.Node, error) {
	p := &parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseLevel(0)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.EOF {
		return nil, p.unexpected()
	}
	return node, nil
}

// ParseUntilBrace parses a single expression from the start of src and
// returns it along with the byte offset of the top-level '}' that must
// follow it, whitespace allowed in between (used by the
// interpolator to find the end of a `${...}` substitution without a
// separate brace-tracking pre-scan: the parser's own grammar — list/object
// literals included — already knows which `{`/`}` belong to it).
func ParseUntilBrace(src string) (*ast.Node, int, error) {
	p := &parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, 0, err
	}
	node, err := p.parseLevel(0)
	if err != nil {
		return nil, 0, err
	}
	if p.cur.Kind != token.BraceClose {
		return nil, 0, p.expected(token.BraceClose)
	}
	return node, p.cur.Start, nil
}

type parser struct {
	lex *lexer.Lexer
	cur token.Token
}

func (p *parser) advance() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

// parseLevel parses the binary-operator chain at precedence level lvl,
// recursing to lvl+1 for higher-precedence sub-expressions. Reaching past
// the last level dispatches to the unary-prefix level.
func (p *parser) parseLevel(lvl int) (*ast.Node, error) {
	if lvl >= len(levels) {
		return p.parseUnary()
	}
	left, err := p.parseLevel(lvl + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := levels[lvl][p.cur.Kind]
		if !ok {
			return left, nil
		}
		pos := p.cur.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseLevel(lvl + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(pos, op, left, right)
	}
}

// parseUnary parses a run of prefix `!`/`+`/`-` operators wrapping a `**`
// chain (parsePow). Per spec §8's resolved edge case, unary minus binds
// LOOSER than `**`: "-2 ** 2" parses as -(2 ** 2) == -4, not (-2) ** 2.
// This is why unary sits above the `**` level (parsePow) rather than
// inside factor construction as the EBNF in spec §6 suggests literally —
// spec §8 states the intended evaluation explicitly and calls out that
// diverging implementations should document the choice; this one follows
// spec §8's worked example.
func (p *parser) parseUnary() (*ast.Node, error) {
	switch p.cur.Kind {
	case token.Not, token.Plus, token.Minus:
		op := p.cur.Value
		pos := p.cur.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(pos, op, inner), nil
	default:
		return p.parsePow()
	}
}

// parsePow parses the right-associative `**` level: `pow := factor ('**'
// unary)?`. The right-hand side recurses into parseUnary (not parsePow
// directly) so a negative exponent like "2 ** -3" still parses; recursing
// through parseUnary when there is no prefix falls straight back into
// parsePow, which is what makes `2 ** 3 ** 2` fold as `2 ** (3 ** 2)`.
func (p *parser) parsePow() (*ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.Pow {
		return left, nil
	}
	pos := p.cur.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.NewBinOp(pos, "**", left, right), nil
}

// parseFactor implements `primary postfix*` — unary prefixes are handled a
// level up by parseUnary (see its doc comment for why).
func (p *parser) parseFactor() (*ast.Node, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(prim)
}

// parsePostfix chains `[expr]`, `[left?:right?]`, and `.identifier` postfix
// operators onto an already-parsed primary expression.
func (p *parser) parsePostfix(left *ast.Node) (*ast.Node, error) {
	for {
		switch p.cur.Kind {
		case token.Dot:
			pos := p.cur.Start
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Kind != token.Identifier {
				return nil, p.expected(token.Identifier)
			}
			name := ast.NewPrimitive(p.cur.Start, p.cur.Value)
			if err := p.advance(); err != nil {
				return nil, err
			}
			left = ast.NewBinOp(pos, ".", left, name)
		case token.BracketOpen:
			pos := p.cur.Start
			if err := p.advance(); err != nil {
				return nil, err
			}
			node, err := p.parseBracket(pos, left)
			if err != nil {
				return nil, err
			}
			left = node
		default:
			return left, nil
		}
	}
}

// parseBracket parses the body of `[...]` after the opening bracket has
// been consumed: either `expr]` (index) or `expr?:expr?]` (slice).
func (p *parser) parseBracket(pos int, target *ast.Node) (*ast.Node, error) {
	var leftBound *ast.Node
	if p.cur.Kind != token.Colon {
		n, err := p.parseLevel(0)
		if err != nil {
			return nil, err
		}
		leftBound = n
	}
	if p.cur.Kind == token.Colon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var rightBound *ast.Node
		if p.cur.Kind != token.BracketClose {
			n, err := p.parseLevel(0)
			if err != nil {
				return nil, err
			}
			rightBound = n
		}
		if err := p.expect(token.BracketClose); err != nil {
			return nil, err
		}
		return ast.NewValueAccess(pos, target, true, leftBound, rightBound), nil
	}
	if err := p.expect(token.BracketClose); err != nil {
		return nil, err
	}
	return ast.NewValueAccess(pos, target, false, leftBound, nil), nil
}

// parsePrimary implements `primary := NUMBER | STRING | 'true' | 'false' |
// 'null' | '(' expr ')' | list | object | IDENT call?`.
func (p *parser) parsePrimary() (*ast.Node, error) {
	switch p.cur.Kind {
	case token.Number:
		return p.parseNumber()
	case token.String:
		raw := p.cur.Value
		pos := p.cur.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewPrimitive(pos, raw), nil
	case token.True, token.False:
		b := p.cur.Kind == token.True
		pos := p.cur.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewPrimitive(pos, b), nil
	case token.Null:
		pos := p.cur.Start
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewPrimitive(pos, nil), nil
	case token.ParenOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseLevel(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.ParenClose); err != nil {
			return nil, err
		}
		return inner, nil
	case token.BracketOpen:
		return p.parseList()
	case token.BraceOpen:
		return p.parseObject()
	case token.Identifier:
		return p.parseIdentOrCall()
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseNumber() (*ast.Node, error) {
	raw := p.cur.Value
	pos := p.cur.Start
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.Syntaxf("invalid number literal %q", raw)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewPrimitive(pos, n), nil
}

// parseIdentOrCall parses an identifier reference, optionally followed by a
// call `(args)`.
func (p *parser) parseIdentOrCall() (*ast.Node, error) {
	pos := p.cur.Start
	name := p.cur.Value
	if err := p.advance(); err != nil {
		return nil, err
	}
	ref := ast.NewContextValue(pos, name)
	if p.cur.Kind != token.ParenOpen {
		return ref, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []*ast.Node
	if p.cur.Kind != token.ParenClose {
		for {
			arg, err := p.parseLevel(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Kind != token.Comma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(token.ParenClose); err != nil {
		return nil, err
	}
	return ast.NewFunctionCall(pos, ref, args), nil
}

// parseList implements `list := '[' (expr (',' expr)*)? ']'`, rejecting a
// trailing comma.
func (p *parser) parseList() (*ast.Node, error) {
	pos := p.cur.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	var elems []*ast.Node
	if p.cur.Kind != token.BracketClose {
		for {
			e, err := p.parseLevel(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.cur.Kind != token.Comma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Kind == token.BracketClose {
				return nil, p.unexpected() // trailing comma rejected
			}
		}
	}
	if err := p.expect(token.BracketClose); err != nil {
		return nil, err
	}
	return ast.NewList(pos, elems), nil
}

// parseObject implements `object := '{' ((IDENT|STRING) ':' expr (','
// (IDENT|STRING) ':' expr)*)? '}'`, rejecting a trailing comma.
func (p *parser) parseObject() (*ast.Node, error) {
	pos := p.cur.Start
	if err := p.advance(); err != nil {
		return nil, err
	}
	var keys []string
	var values []*ast.Node
	if p.cur.Kind != token.BraceClose {
		for {
			var key string
			switch p.cur.Kind {
			case token.Identifier:
				key = p.cur.Value
			case token.String:
				key = p.cur.Value
			default:
				return nil, p.expected(token.Identifier, token.String)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(token.Colon); err != nil {
				return nil, err
			}
			v, err := p.parseLevel(0)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
			values = append(values, v)
			if p.cur.Kind != token.Comma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Kind == token.BraceClose {
				return nil, p.unexpected() // trailing comma rejected
			}
		}
	}
	if err := p.expect(token.BraceClose); err != nil {
		return nil, err
	}
	return ast.NewObject(pos, keys, values), nil
}

func (p *parser) expect(k token.Kind) error {
	if p.cur.Kind != k {
		return p.expected(k)
	}
	return p.advance()
}

func (p *parser) unexpected() error {
	if p.cur.Kind == token.EOF {
		return errs.Syntaxf("Unexpected end of input")
	}
	return errs.Syntaxf("Unexpected token: %s", p.cur.Kind)
}

func (p *parser) expected(kinds ...token.Kind) error {
	if p.cur.Kind == token.EOF {
		return errs.Syntaxf("Unexpected end of input")
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	sort.Strings(names)
	got := p.cur.Kind.String()
	return errs.Syntaxf("Found %s, expected %s", got, fmt.Sprint(names))
}
