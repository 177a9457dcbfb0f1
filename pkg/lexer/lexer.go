// Package lexer implements the JSON-e expression tokenizer (spec §4.1):
// source string in, lazy sequence of token.Tokens out, longest-match-wins
// among the fixed token vocabulary.
//
// The scanning technique (start/current/width position tracking,
// accept/backup/ignore helpers) follows Rob Pike's "Lexical Scanning in Go",
// the same approach the teacher codebase uses for its own (JSONata) lexer,
// narrowed here to JSON-e's much smaller grammar: no regex literals, no
// escaped backtick names, no string escapes, no block comments.
package lexer

import (
	"unicode/utf8"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/token"
)

const eof = -1

// Lexer converts a JSON-e expression string into a sequence of tokens.
type Lexer struct {
	input   string
	length  int
	start   int
	current int
	width   int
}

// New creates a Lexer over the given expression source.
func New(input string) *Lexer {
	return &Lexer{input: input, length: len(input)}
}

// Next returns the next token from the input. Once the input is exhausted,
// Next returns token.EOF for all subsequent calls. On unmatched input it
// returns a token.Error token and an *errs.Error describing the failure.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.emit(token.EOF), nil
	}

	// Two-character symbols that share a prefix with a single-character one.
	switch ch {
	case '*':
		if l.acceptRune('*') {
			return l.emit(token.Pow), nil
		}
		return l.emit(token.Star), nil
	case '!':
		if l.acceptRune('=') {
			return l.emit(token.Neq), nil
		}
		return l.emit(token.Not), nil
	case '<':
		if l.acceptRune('=') {
			return l.emit(token.LE), nil
		}
		return l.emit(token.Lt), nil
	case '>':
		if l.acceptRune('=') {
			return l.emit(token.GE), nil
		}
		return l.emit(token.Gt), nil
	case '=':
		if l.acceptRune('=') {
			return l.emit(token.Eq), nil
		}
		return l.fail("unexpected character %q", ch)
	case '&':
		if l.acceptRune('&') {
			return l.emit(token.And), nil
		}
		return l.fail("unexpected character %q", ch)
	case '|':
		if l.acceptRune('|') {
			return l.emit(token.Or), nil
		}
		return l.fail("unexpected character %q", ch)
	}

	if ch < utf8.RuneSelf {
		if k, ok := token.LookupSymbol1(byte(ch)); ok {
			return l.emit(k), nil
		}
	}

	if ch == '"' || ch == '\'' {
		l.ignore()
		return l.scanString(ch)
	}

	if ch >= '0' && ch <= '9' {
		l.backup()
		return l.scanNumber(), nil
	}

	if isIdentStart(ch) {
		l.backup()
		return l.scanIdentifier(), nil
	}

	return l.fail("unexpected character %q", ch)
}

// scanString reads a single- or double-quoted string literal. JSON-e string
// literals support no escape sequences and cannot embed their own quote
// character (spec §4.1).
func (l *Lexer) scanString(quote rune) (token.Token, error) {
	for {
		r := l.nextRune()
		if r == quote {
			break
		}
		if r == eof {
			return l.fail("unterminated string literal")
		}
	}
	l.backup()
	t := l.emit(token.String)
	l.acceptRune(quote)
	l.ignore()
	return t, nil
}

// scanNumber reads `[0-9]+(\.[0-9]+)?` per spec §4.1.
func (l *Lexer) scanNumber() token.Token {
	l.acceptAll(isDigit)
	dot := l.current
	if l.acceptRune('.') && !l.acceptAll(isDigit) {
		l.current = dot
	}
	return l.emit(token.Number)
}

// scanIdentifier reads `[A-Za-z_][A-Za-z_0-9]*` and resolves keywords
// (true/false/in/null) via negative lookahead: a keyword match is only a
// keyword if it is not itself a longer identifier's prefix, which the
// run-to-completion scan already guarantees (we always consume the longest
// run before checking).
func (l *Lexer) scanIdentifier() token.Token {
	l.nextRune() // first char, already known to be isIdentStart
	l.acceptAll(isIdentCont)
	t := l.emit(token.Identifier)
	if k, ok := token.LookupKeyword(t.Value); ok {
		t.Kind = k
	}
	return t
}

func (l *Lexer) skipWhitespace() {
	l.acceptAll(isWhitespace)
	l.ignore()
}

func (l *Lexer) emit(k token.Kind) token.Token {
	t := token.Token{Kind: k, Value: l.input[l.start:l.current], Start: l.start, End: l.current}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) fail(format string, args ...interface{}) (token.Token, error) {
	t := l.emit(token.Error)
	return t, errs.Syntaxf(format, args...)
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	if l.nextRune() == r {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	matched := false
	for {
		r := l.nextRune()
		if r == eof || !isValid(r) {
			l.backup()
			return matched
		}
		matched = true
	}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
