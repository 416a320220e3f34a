// SPDX-License-Identifier: MPL-2.0

// Package mask formats raw keystrokes against literal/placeholder templates
// such as "(999) 999-9999".
//
// Formatting strips everything except ASCII letters and digits from the input
// and replays the remaining characters through the template: placeholders
// consume one matching character (non-matching characters are dropped) and
// literals are emitted in front of the next filled placeholder. Formatting
// stops as soon as either the template or the input runs out. Literals never
// trail the output, which keeps Format idempotent when the remaining input is
// all rejected.
package mask

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// TokenLiteral is emitted verbatim.
	TokenLiteral TokenKind = iota
	// TokenDigit ("9") accepts 0-9.
	TokenDigit
	// TokenLetter ("a") accepts a-z and A-Z.
	TokenLetter
	// TokenAlnum ("*") accepts digits and letters.
	TokenAlnum
)

var (
	// ErrEmptyPattern is returned for a pattern with no tokens.
	ErrEmptyPattern = errors.New("mask pattern is empty")
	// ErrAlnumLiteral is returned for a pattern whose literal is a letter or
	// digit. Such literals would be read back as input on the next pass.
	ErrAlnumLiteral = errors.New("mask literal must not be a letter or digit")
)

type (
	// TokenKind classifies one template position.
	TokenKind int

	// Token is one template position.
	Token struct {
		Kind TokenKind
		// Literal holds the emitted rune of a TokenLiteral.
		Literal rune
	}

	// Template is a parsed mask pattern.
	Template struct {
		pattern string
		tokens  []Token
	}

	// PatternError reports a pattern Parse rejected. It wraps ErrEmptyPattern
	// or ErrAlnumLiteral.
	PatternError struct {
		Pattern string
		// Offset is the byte offset of the offending literal.
		Offset int
		Err    error
	}
)

// Parse compiles pattern: '9' is a digit, 'a' a letter, '*' a letter or digit,
// and any other character a literal.
func Parse(pattern string) (*Template, error) {
	if pattern == "" {
		return nil, &PatternError{Pattern: pattern, Err: ErrEmptyPattern}
	}
	tokens := make([]Token, 0, len(pattern))
	for off, r := range pattern {
		switch {
		case r == '9':
			tokens = append(tokens, Token{Kind: TokenDigit})
		case r == 'a':
			tokens = append(tokens, Token{Kind: TokenLetter})
		case r == '*':
			tokens = append(tokens, Token{Kind: TokenAlnum})
		case isAlnum(r):
			return nil, &PatternError{Pattern: pattern, Offset: off, Err: ErrAlnumLiteral}
		default:
			tokens = append(tokens, Token{Kind: TokenLiteral, Literal: r})
		}
	}
	return &Template{pattern: pattern, tokens: tokens}, nil
}

// MustParse is like Parse but panics on error. It is meant for patterns known
// at compile time.
func MustParse(pattern string) *Template {
	t, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// Error implements the error interface for PatternError.
func (e *PatternError) Error() string {
	if errors.Is(e.Err, ErrEmptyPattern) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: pattern %q at offset %d", e.Err, e.Pattern, e.Offset)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *PatternError) Unwrap() error { return e.Err }

// String returns the source pattern.
func (t *Template) String() string { return t.pattern }

// Tokens returns a copy of the parsed tokens.
func (t *Template) Tokens() []Token { return append([]Token(nil), t.tokens...) }

// Placeholders counts the positions that consume input.
func (t *Template) Placeholders() int {
	n := 0
	for _, tok := range t.tokens {
		if tok.Kind != TokenLiteral {
			n++
		}
	}
	return n
}

// Format replays the letters and digits of raw through the template.
func (t *Template) Format(raw string) string {
	stream := strip(raw)
	var b strings.Builder
	pending := 0
	pos, i := 0, 0
	for pos < len(t.tokens) && i < len(stream) {
		tok := t.tokens[pos]
		if tok.Kind == TokenLiteral {
			pending++
			pos++
			continue
		}
		c := stream[i]
		i++
		if !tok.Kind.accepts(c) {
			continue
		}
		for _, lit := range t.tokens[pos-pending : pos] {
			b.WriteRune(lit.Literal)
		}
		pending = 0
		b.WriteByte(c)
		pos++
	}
	return b.String()
}

// Raw returns the characters of display the template accepts, without
// literals.
func (t *Template) Raw(display string) string {
	return strip(t.Format(display))
}

// Complete reports whether display fills every placeholder.
func (t *Template) Complete(display string) bool {
	return len(t.Raw(display)) == t.Placeholders()
}

// Format is a one-shot Parse and Format. An invalid pattern yields "".
func Format(raw, pattern string) string {
	t, err := Parse(pattern)
	if err != nil {
		return ""
	}
	return t.Format(raw)
}

func (k TokenKind) accepts(c byte) bool {
	switch k {
	case TokenDigit:
		return isDigit(rune(c))
	case TokenLetter:
		return isLetter(rune(c))
	case TokenAlnum:
		return isAlnum(rune(c))
	default:
		return false
	}
}

// strip keeps ASCII letters and digits.
func strip(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isAlnum(rune(s[i])) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isAlnum(r rune) bool  { return isDigit(r) || isLetter(r) }
