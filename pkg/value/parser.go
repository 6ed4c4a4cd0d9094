package value

import (
	"fmt"
	"strconv"
)

// Parse parses a complete gdb value literal. It returns an error if the
// input is not a recognized literal or if trailing input remains after the
// first value.
func Parse(src string) (Value, error) {
	p := &parser{src: src}
	v, err := p.value()
	if err != nil {
		return Value{}, err
	}
	p.ws()
	if !p.eof() {
		return Value{}, p.errorf("trailing input after value")
	}
	return v, nil
}

// parser is a cursor over the source text. All methods operate on bytes;
// gdb's literal syntax is ASCII framing around possibly-UTF-8 string
// contents, which pass through untouched.
type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("value: offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

// at reports whether the input at the cursor starts with tok.
func (p *parser) at(tok string) bool {
	return p.pos+len(tok) <= len(p.src) && p.src[p.pos:p.pos+len(tok)] == tok
}

// eat consumes tok if present and reports whether it did.
func (p *parser) eat(tok string) bool {
	if p.at(tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) ws() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// current returns the byte at the cursor, or 0 at end of input.
func (p *parser) current() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) value() (Value, error) {
	p.ws()
	switch {
	case p.eat("{"):
		return p.listOrMap()
	case p.eat(`"`):
		s, err := p.string()
		if err != nil {
			return Value{}, err
		}
		return S(s), nil
	case isDigit(p.current()) || (p.current() == '-' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1])):
		return p.number()
	case p.eat("true"):
		return B(true), nil
	case p.eat("false"):
		return B(false), nil
	case p.eat("@0x"):
		// Reference values print as "@0xADDR: value"; the address part
		// carries no structure, so skip to the colon and parse what follows.
		p.skipReference()
		return p.value()
	}
	return Value{}, p.errorf("expected a value")
}

// listOrMap parses the remainder of a brace-delimited aggregate. The opening
// brace is already consumed. gdb prints three aggregate shapes with the same
// delimiters: plain lists {1, 2}, keyed containers {[1] = 2}, and struct
// aggregates {x = 5}. The first element decides list vs. map; mixing list
// and map elements is an error, but struct fields and bracketed keys may
// coexist.
func (p *parser) listOrMap() (Value, error) {
	var (
		list  []Value
		m     []Entry
		isMap bool
		first = true
	)
	for {
		p.ws()
		hasComma := p.eat(",")
		p.ws()
		if first && hasComma {
			return Value{}, p.errorf(", not allowed before first item")
		}
		if p.eat("}") {
			break
		}
		if !first && !hasComma {
			return Value{}, p.errorf("expected , after item")
		}
		p.ws()

		bracketed := p.eat("[")
		if bracketed && !first && !isMap {
			return Value{}, p.errorf("can't mix list and map")
		}
		if bracketed {
			isMap = true
		}

		switch {
		case !bracketed && isAlpha(p.current()):
			// Struct field: ident = value.
			if len(list) > 0 {
				return Value{}, p.errorf("can't mix list and map")
			}
			isMap = true
			key := p.ident()
			p.ws()
			if !p.eat("=") {
				return Value{}, p.errorf("expected a = after field")
			}
			v, err := p.value()
			if err != nil {
				return Value{}, err
			}
			m = append(m, Entry{Key: S(key), Val: v})
		case bracketed:
			key, err := p.value()
			if err != nil {
				return Value{}, err
			}
			p.ws()
			if !p.eat("]") {
				return Value{}, p.errorf("expected a ]")
			}
			p.ws()
			if !p.eat("=") {
				return Value{}, p.errorf("expected a = after key")
			}
			v, err := p.value()
			if err != nil {
				return Value{}, err
			}
			m = append(m, Entry{Key: key, Val: v})
		default:
			if isMap {
				return Value{}, p.errorf("can't mix list and map")
			}
			v, err := p.value()
			if err != nil {
				return Value{}, err
			}
			list = append(list, v)
		}
		first = false
	}
	if isMap {
		return M(m...), nil
	}
	return L(list...), nil
}

// string parses the remainder of a double-quoted string. The opening quote
// is already consumed.
func (p *parser) string() (string, error) {
	var out []byte
	for !p.eof() && !p.at(`"`) {
		if p.eat(`\`) {
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			c := p.src[p.pos]
			p.pos++
			switch c {
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			default:
				return "", p.errorf("unknown escape \\%c", c)
			}
			continue
		}
		out = append(out, p.src[p.pos])
		p.pos++
	}
	if !p.eat(`"`) {
		return "", p.errorf(`missing closing "`)
	}
	return string(out), nil
}

func (p *parser) number() (Value, error) {
	start := p.pos
	if p.current() == '-' {
		p.pos++
	}
	dot := false
	for !p.eof() {
		c := p.current()
		if isDigit(c) {
			p.pos++
			continue
		}
		if c == '.' {
			if dot {
				return Value{}, p.errorf("malformed number")
			}
			dot = true
			p.pos++
			continue
		}
		break
	}
	lit := p.src[start:p.pos]
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, p.errorf("malformed number %q", lit)
	}
	return N(n), nil
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isAlnum(p.current()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// skipReference consumes up to and including the ":" that terminates a
// reference address.
func (p *parser) skipReference() {
	for !p.eof() && !p.eat(":") {
		p.pos++
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }
