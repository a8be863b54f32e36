package bfnl

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseLiteral parses an assignment or operation operand: a 'text' literal,
// a [list] literal, or a base-10 integer.
func ParseLiteral(text string) (Value, error) {
	text = strings.TrimSpace(text)
	switch {
	case len(text) >= 2 && strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"):
		p := &literalParser{src: text}
		v, err := p.parseList()
		if err != nil {
			return Value{}, err
		}
		p.skipSpace()
		if !p.done() {
			return Value{}, newError(SyntaxError, "unexpected %q after list literal", text[p.pos:])
		}
		return v, nil
	case len(text) >= 2 && strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'"):
		return NewString(text[1 : len(text)-1]), nil
	default:
		i, err := parseInteger(text)
		if err != nil {
			return Value{}, err
		}
		return NewInt(i), nil
	}
}

func parseInteger(text string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	digits := strings.TrimLeft(trimmed, "+-")
	if len(trimmed)-len(digits) > 1 || digits == "" ||
		strings.HasPrefix(digits, "_") || strings.HasSuffix(digits, "_") || strings.Contains(digits, "__") {
		return 0, newError(SyntaxError, "invalid literal %q", text)
	}
	i, err := strconv.ParseInt(strings.ReplaceAll(trimmed, "_", ""), 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, newError(ArithmeticError, "integer literal %q out of range", text)
		}
		return 0, newError(SyntaxError, "invalid literal %q", text)
	}
	return i, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) done() bool { return p.pos >= len(p.src) }

func (p *literalParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) skipSpace() {
	for !p.done() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) parseValue() (Value, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '[':
		return p.parseList()
	case c == '\'' || c == '"':
		return p.parseQuoted(c)
	case c == 0:
		return Value{}, newError(SyntaxError, "unterminated list literal %q", p.src)
	default:
		start := p.pos
		for !p.done() && p.peek() != ',' && p.peek() != ']' {
			p.pos++
		}
		i, err := parseInteger(p.src[start:p.pos])
		if err != nil {
			return Value{}, err
		}
		return NewInt(i), nil
	}
}

func (p *literalParser) parseList() (Value, error) {
	p.pos++ // [
	elems := make([]Value, 0)
	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			return NewList(elems), nil
		}
		if p.done() {
			return Value{}, newError(SyntaxError, "unterminated list literal %q", p.src)
		}
		elem, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return Value{}, newError(SyntaxError, "expected ',' or ']' in list literal %q", p.src)
		}
	}
}

func (p *literalParser) parseQuoted(quote byte) (Value, error) {
	p.pos++
	var b strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return NewString(b.String()), nil
		case c == '\\' && p.pos+1 < len(p.src):
			p.pos++
			b.WriteByte(unescapeByte(p.src[p.pos]))
		default:
			b.WriteByte(c)
		}
		p.pos++
	}
	return Value{}, newError(SyntaxError, "unterminated text in list literal %q", p.src)
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
