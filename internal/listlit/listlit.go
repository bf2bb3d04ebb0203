// Package listlit parses bracketed lists of quoted strings such as
// "['salt', 'black pepper']", the form the Food.com export uses for its
// steps, tags and ingredients columns.
//
// Only string elements are accepted. Both quote styles work, along with
// the u and r prefixes, backslash escapes, adjacent-literal concatenation
// and a trailing comma. Anything else is a syntax error.
package listlit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSyntax is wrapped by every parse failure
var ErrSyntax = errors.New("invalid list literal")

// Parse returns the elements of s, or an empty slice when s is not a
// well-formed list literal. It never fails.
func Parse(s string) []string {
	items, err := Strict(s)
	if err != nil {
		return []string{}
	}
	return items
}

// Strict parses s and reports why it is not a list literal
func Strict(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") || len(s) < 2 {
		return nil, fmt.Errorf("%w: not bracketed", ErrSyntax)
	}

	p := &parser{src: s, pos: 1}
	items := []string{}

	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return items, p.end()
	}

	for {
		item, err := p.element()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
			if p.peek() == ']' {
				p.pos++
				return items, p.end()
			}
		case ']':
			p.pos++
			return items, p.end()
		default:
			return nil, p.errorf("expected ',' or ']'")
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) end() error {
	if p.pos != len(p.src) {
		return p.errorf("trailing characters")
	}
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrSyntax, fmt.Sprintf(format, args...), p.pos)
}

// element reads one or more adjacent string literals and joins them
func (p *parser) element() (string, error) {
	var b strings.Builder
	n := 0
	for {
		p.skipSpace()
		if !p.atString() {
			break
		}
		s, err := p.str()
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		n++
	}
	if n == 0 {
		return "", p.errorf("expected string")
	}
	return b.String(), nil
}

func (p *parser) atString() bool {
	i := p.pos
	if i < len(p.src) {
		switch p.src[i] {
		case 'u', 'U', 'r', 'R':
			i++
		}
	}
	return i < len(p.src) && (p.src[i] == '\'' || p.src[i] == '"')
}

func (p *parser) str() (string, error) {
	raw := false
	switch p.peek() {
	case 'u', 'U':
		p.pos++
	case 'r', 'R':
		raw = true
		p.pos++
	}

	quote := p.src[p.pos]
	if strings.HasPrefix(p.src[p.pos:], strings.Repeat(string(quote), 3)) {
		return "", p.errorf("triple-quoted strings are not supported")
	}
	p.pos++

	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\n':
			return "", p.errorf("newline in string")
		case c == '\\':
			if raw {
				if p.pos+1 >= len(p.src) {
					return "", p.errorf("unterminated string")
				}
				b.WriteString(p.src[p.pos : p.pos+2])
				p.pos += 2
				continue
			}
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

// escape decodes the escape sequence at p.pos. Unknown escapes are kept
// verbatim, backslash included.
func (p *parser) escape(b *strings.Builder) error {
	if p.pos+1 >= len(p.src) {
		return p.errorf("unterminated string")
	}
	c := p.src[p.pos+1]
	p.pos += 2

	switch c {
	case '\n':
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'v':
		b.WriteByte('\v')
	case 'x':
		return p.hexRune(b, 2)
	case 'u':
		return p.hexRune(b, 4)
	case 'U':
		return p.hexRune(b, 8)
	case 'N':
		return p.errorf("named unicode escapes are not supported")
	case '0', '1', '2', '3', '4', '5', '6', '7':
		end := p.pos - 1
		for end < len(p.src) && end < p.pos+2 && p.src[end] >= '0' && p.src[end] <= '7' {
			end++
		}
		v, _ := strconv.ParseUint(p.src[p.pos-1:end], 8, 32)
		b.WriteRune(rune(v))
		p.pos = end
	default:
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *parser) hexRune(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("truncated \\x/\\u escape")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return p.errorf("bad hex escape")
	}
	r := rune(v)
	if r > utf8.MaxRune {
		return p.errorf("escape out of range")
	}
	b.WriteRune(r)
	p.pos += digits
	return nil
}
