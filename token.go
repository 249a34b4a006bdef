// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Reserved code units of the UTF-16 token grammar.
const (
	terminatorKey uint16 = 0x0000
	variableKey   uint16 = 0x0010
	returnTextKey uint16 = 0xBE00
	clearTextKey  uint16 = 0xBE01
	waitTextKey   uint16 = 0xBE02
	nullTextKey   uint16 = 0xBDFF
	rubyTextKey   uint16 = 0xFF01
)

// decodeString converts one entry's raw string bytes to readable text.
// Control sequences become escape/token forms that encodeString maps
// back exactly; everything past the terminator is ignored.
func decodeString(raw []byte, p *Profile) string {
	if p.Encoding == EncodingUTF8 {
		for i, b := range raw {
			if b == 0 {
				return string(raw[:i])
			}
		}
		return string(raw)
	}

	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[i*2]) | uint16(raw[i*2+1])<<8
	}
	return decodeUnits(units, p)
}

func decodeUnits(units []uint16, p *Profile) string {
	var b strings.Builder
	var run []uint16

	flush := func() {
		if len(run) > 0 {
			b.WriteString(string(utf16.Decode(run)))
			run = run[:0]
		}
	}

loop:
	for i := 0; i < len(units); {
		v := units[i]
		i++
		switch v {
		case terminatorKey:
			break loop
		case variableKey:
			flush()
			s, n := decodeVariable(units, i, p)
			b.WriteString(s)
			i += n
		case 0x0A:
			flush()
			b.WriteString(`\n`)
		case '\\':
			flush()
			b.WriteString(`\\`)
		case '[':
			flush()
			b.WriteString(`\[`)
		case '{':
			flush()
			b.WriteString(`\{`)
		default:
			if name, ok := p.specialChar(v); ok {
				flush()
				b.WriteString(name)
			} else {
				run = append(run, p.remapOut(v))
			}
		}
	}
	flush()
	return b.String()
}

// decodeVariable renders one variable sequence starting right after
// its 0x0010 marker and reports how many units it consumed. Truncated
// sequences are rendered from whatever units remain.
func decodeVariable(units []uint16, pos int, p *Profile) (string, int) {
	i := pos
	next := func() uint16 {
		if i >= len(units) {
			return 0
		}
		v := units[i]
		i++
		return v
	}

	count := next()
	code := next()
	switch code {
	case returnTextKey:
		return `\r`, i - pos
	case clearTextKey:
		return `\c`, i - pos
	case waitTextKey:
		return fmt.Sprintf("[WAIT %d]", next()), i - pos
	case nullTextKey:
		return fmt.Sprintf("[~ %d]", next()), i - pos
	case rubyTextKey:
		baseLen := int(next())
		rubyLen := int(next())
		take := func(n int) []uint16 {
			if i+n > len(units) {
				n = len(units) - i
			}
			s := units[i : i+n]
			i += n
			return s
		}
		base1 := take(baseLen)
		ruby := take(rubyLen)
		base2 := take(baseLen)

		var b strings.Builder
		b.WriteByte('{')
		b.WriteString(decodeRubySegment(base1, p))
		b.WriteByte('|')
		b.WriteString(decodeRubySegment(ruby, p))
		if !equalUnits(base1, base2) {
			b.WriteByte('|')
			b.WriteString(decodeRubySegment(base2, p))
		}
		b.WriteByte('}')
		return b.String(), i - pos
	default:
		var b strings.Builder
		b.WriteString("[VAR ")
		b.WriteString(p.variableName(code))
		if count > 1 {
			b.WriteByte('(')
			for a := 0; a < int(count)-1; a++ {
				if a > 0 {
					b.WriteByte(',')
				}
				fmt.Fprintf(&b, "%04X", next())
			}
			b.WriteByte(')')
		}
		b.WriteByte(']')
		return b.String(), i - pos
	}
}

// decodeRubySegment decodes ruby base/reading units as plain text.
func decodeRubySegment(units []uint16, p *Profile) string {
	mapped := make([]uint16, len(units))
	for i, u := range units {
		mapped[i] = p.remapOut(u)
	}
	return string(utf16.Decode(mapped))
}

func equalUnits(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// encodeString converts readable entry text back into raw string
// bytes, terminator included. Exact inverse of decodeString.
func encodeString(s string, p *Profile) ([]byte, error) {
	if p.Encoding == EncodingUTF8 {
		return append([]byte(s), 0), nil
	}

	units, err := encodeUnits(s, p)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		raw[i*2] = byte(u)
		raw[i*2+1] = byte(u >> 8)
	}
	return raw, nil
}

func encodeUnits(s string, p *Profile) ([]uint16, error) {
	runes := []rune(s)
	var out []uint16

	for i := 0; i < len(runes); {
		c := runes[i]
		i++
		switch c {
		case '[':
			end := indexRune(runes, i, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated variable text", ErrBadToken)
			}
			vals, err := parseVariableText(string(runes[i:end]), p)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
			i = end + 1
		case '{':
			end := indexRune(runes, i, '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated ruby text", ErrBadToken)
			}
			vals, err := parseRubyText(string(runes[i:end]), p)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
			i = end + 1
		case '\\':
			if i >= len(runes) {
				return nil, fmt.Errorf("%w: dangling escape", ErrBadToken)
			}
			esc := runes[i]
			i++
			switch esc {
			case 'n':
				out = append(out, 0x0A)
			case '\\', '[', '{':
				out = append(out, uint16(esc))
			case 'r':
				out = append(out, variableKey, 1, returnTextKey)
			case 'c':
				out = append(out, variableKey, 1, clearTextKey)
			default:
				return nil, fmt.Errorf("%w: invalid escape \\%c", ErrBadToken, esc)
			}
		default:
			if code, ok := p.names[string(c)]; ok {
				if _, special := p.specialChar(code); special {
					out = append(out, code)
					continue
				}
			}
			out = append(out, utf16.Encode([]rune{p.remapIn(c)})...)
		}
	}
	return append(out, terminatorKey), nil
}

func indexRune(runes []rune, from int, r rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// parseVariableText converts the inside of a [...] token into units.
func parseVariableText(text string, p *Profile) ([]uint16, error) {
	space := strings.IndexByte(text, ' ')
	if space < 0 {
		return nil, fmt.Errorf("%w: malformed variable %q", ErrBadToken, text)
	}
	command, args := text[:space], text[space+1:]

	switch command {
	case "~":
		n, err := strconv.ParseUint(args, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: bad null line %q", ErrBadToken, text)
		}
		return []uint16{variableKey, 2, nullTextKey, uint16(n)}, nil
	case "WAIT":
		n, err := strconv.ParseUint(args, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: bad wait time %q", ErrBadToken, text)
		}
		return []uint16{variableKey, 2, waitTextKey, uint16(n)}, nil
	case "VAR":
		if open := strings.IndexByte(args, '('); open >= 0 {
			name := args[:open]
			argStr := strings.TrimSuffix(args[open+1:], ")")
			code, err := p.variableNumber(name)
			if err != nil {
				return nil, err
			}
			parts := strings.Split(argStr, ",")
			out := []uint16{variableKey, uint16(1 + len(parts)), code}
			for _, a := range parts {
				v, err := strconv.ParseUint(a, 16, 16)
				if err != nil {
					return nil, fmt.Errorf("%w: bad variable argument %q", ErrBadToken, a)
				}
				out = append(out, uint16(v))
			}
			return out, nil
		}
		code, err := p.variableNumber(args)
		if err != nil {
			return nil, err
		}
		return []uint16{variableKey, 1, code}, nil
	default:
		return nil, fmt.Errorf("%w: unknown variable type %q", ErrBadToken, command)
	}
}

// parseRubyText converts the inside of a {...} token into units.
// Forms: {base|ruby} and {base|ruby|base2}; both base texts must
// encode to the same number of units.
func parseRubyText(text string, p *Profile) ([]uint16, error) {
	parts := strings.Split(text, "|")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("%w: malformed ruby text %q", ErrBadToken, text)
	}
	base1 := encodeRubySegment(parts[0], p)
	ruby := encodeRubySegment(parts[1], p)
	base2 := base1
	if len(parts) == 3 {
		base2 = encodeRubySegment(parts[2], p)
	}
	if len(base1) != len(base2) {
		return nil, fmt.Errorf("%w: ruby base texts mismatch in %q", ErrBadToken, text)
	}

	out := []uint16{
		variableKey,
		uint16(3 + len(base1) + len(ruby)),
		rubyTextKey,
		uint16(len(base1)),
		uint16(len(ruby)),
	}
	out = append(out, base1...)
	out = append(out, ruby...)
	out = append(out, base2...)
	return out, nil
}

func encodeRubySegment(s string, p *Profile) []uint16 {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = p.remapIn(r)
	}
	return utf16.Encode(runes)
}
