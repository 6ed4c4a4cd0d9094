// Package mi parses GDB Machine Interface (MI) output records.
//
// gdb in --interpreter=mi3 mode emits one record per line:
//
//	token^result-class,key=value,...   result record
//	token*class,key=value,...          exec async record
//	token+class,key=value,...          status async record
//	token=class,key=value,...          notify async record
//	~"text"                            console stream
//	&"text"                            log stream
//	@"text"                            target stream
//	(gdb)                              end-of-output marker
//
// Lines that match none of the above are output of the program being
// debugged and pass through as [KindStdout] records.
package mi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Maan2003/gdb-utils/pkg/errors"
)

// Kind classifies an MI record.
type Kind int

const (
	// KindResult is a ^ record answering a previously issued command.
	KindResult Kind = iota
	// KindNotify covers the *, + and = asynchronous records.
	KindNotify
	// KindConsole is a ~ stream record (gdb console text).
	KindConsole
	// KindLog is a & stream record (gdb internal log).
	KindLog
	// KindTarget is a @ stream record (remote target output).
	KindTarget
	// KindDone is the "(gdb)" end-of-output marker.
	KindDone
	// KindStdout is a non-MI line, i.e. inferior process output.
	KindStdout
)

// String returns the record kind name used in the JSON encoding.
func (k Kind) String() string {
	switch k {
	case KindResult:
		return "result"
	case KindNotify:
		return "notify"
	case KindConsole:
		return "console"
	case KindLog:
		return "log"
	case KindTarget:
		return "target"
	case KindDone:
		return "done"
	case KindStdout:
		return "stdout"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Record is one parsed MI output line.
type Record struct {
	Kind     Kind
	Token    int // command correlation token; -1 when absent
	HasToken bool
	Class    string // result class ("done", "error", ...) or async class ("stopped", ...)
	Message  string // decoded text for stream and stdout records
	Payload  Dict   // key/value results for result and notify records
}

// Dict is an ordered list of key/value results. MI preserves order and
// allows duplicate keys ("frame" repeated in a stack list), so a Go map
// does not fit.
type Dict []Field

// Field is one key/value pair of a Dict.
type Field struct {
	Key   string
	Value Value
}

// Get returns the value for the first field named key.
func (d Dict) Get(key string) (Value, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// ValueKind discriminates MI values: c-strings, tuples and lists.
type ValueKind int

const (
	// ValueString is a c-string.
	ValueString ValueKind = iota
	// ValueList is a [...] list of values.
	ValueList
	// ValueDict is a {...} tuple of key=value results.
	ValueDict
)

// Value is one MI result value.
type Value struct {
	Kind ValueKind
	Str  string
	List []Value
	Dict Dict
}

// Parse parses a single MI output line (without the trailing newline).
func Parse(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "(gdb)" {
		return Record{Kind: KindDone, Token: -1}, nil
	}

	p := &miParser{src: line}
	token, hasToken := p.token()

	switch {
	case p.eat("^"):
		return p.resultRecord(KindResult, token, hasToken)
	case p.eat("*"), p.eat("+"), p.eat("="):
		return p.resultRecord(KindNotify, token, hasToken)
	case p.eat("~"):
		return p.streamRecord(KindConsole)
	case p.eat("&"):
		return p.streamRecord(KindLog)
	case p.eat("@"):
		return p.streamRecord(KindTarget)
	}

	// Not MI framing at all: inferior output.
	return Record{Kind: KindStdout, Token: -1, Message: line}, nil
}

type miParser struct {
	src string
	pos int
}

func (p *miParser) errorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeProtocol, "mi: offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *miParser) eof() bool { return p.pos >= len(p.src) }

func (p *miParser) current() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *miParser) eat(tok string) bool {
	if p.pos+len(tok) <= len(p.src) && p.src[p.pos:p.pos+len(tok)] == tok {
		p.pos += len(tok)
		return true
	}
	return false
}

// token consumes an optional leading decimal token.
func (p *miParser) token() (int, bool) {
	start := p.pos
	for !p.eof() && p.current() >= '0' && p.current() <= '9' {
		p.pos++
	}
	if p.pos == start {
		return -1, false
	}
	// A bare number line is inferior output, not a token; only treat it as
	// a token when record framing follows.
	switch p.current() {
	case '^', '*', '+', '=':
		n, _ := strconv.Atoi(p.src[start:p.pos])
		return n, true
	}
	p.pos = start
	return -1, false
}

func (p *miParser) resultRecord(kind Kind, token int, hasToken bool) (Record, error) {
	class := p.ident()
	if class == "" {
		return Record{}, p.errorf("expected result class")
	}
	rec := Record{Kind: kind, Token: token, HasToken: hasToken, Class: class}
	for p.eat(",") {
		f, err := p.field()
		if err != nil {
			return Record{}, err
		}
		rec.Payload = append(rec.Payload, f)
	}
	if !p.eof() {
		return Record{}, p.errorf("trailing input in record")
	}
	return rec, nil
}

func (p *miParser) streamRecord(kind Kind) (Record, error) {
	if !p.eat(`"`) {
		return Record{}, p.errorf("expected string in stream record")
	}
	s, err := p.cstring()
	if err != nil {
		return Record{}, err
	}
	return Record{Kind: kind, Token: -1, Message: s}, nil
}

func (p *miParser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.current()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *miParser) field() (Field, error) {
	key := p.ident()
	if key == "" {
		return Field{}, p.errorf("expected result key")
	}
	if !p.eat("=") {
		return Field{}, p.errorf("expected = after key %q", key)
	}
	v, err := p.value()
	if err != nil {
		return Field{}, err
	}
	return Field{Key: key, Value: v}, nil
}

func (p *miParser) value() (Value, error) {
	switch {
	case p.eat(`"`):
		s, err := p.cstring()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueString, Str: s}, nil
	case p.eat("{"):
		var d Dict
		if p.eat("}") {
			return Value{Kind: ValueDict, Dict: d}, nil
		}
		for {
			f, err := p.field()
			if err != nil {
				return Value{}, err
			}
			d = append(d, f)
			if p.eat(",") {
				continue
			}
			if p.eat("}") {
				return Value{Kind: ValueDict, Dict: d}, nil
			}
			return Value{}, p.errorf("expected , or } in tuple")
		}
	case p.eat("["):
		var list []Value
		if p.eat("]") {
			return Value{Kind: ValueList, List: list}, nil
		}
		for {
			item, err := p.listItem()
			if err != nil {
				return Value{}, err
			}
			list = append(list, item)
			if p.eat(",") {
				continue
			}
			if p.eat("]") {
				return Value{Kind: ValueList, List: list}, nil
			}
			return Value{}, p.errorf("expected , or ] in list")
		}
	}
	return Value{}, p.errorf("expected value")
}

// listItem parses a list element. MI lists may hold plain values or
// key=value results ("[frame={...},frame={...}]"); keyed elements wrap into
// a single-field dict so the key survives.
func (p *miParser) listItem() (Value, error) {
	start := p.pos
	key := p.ident()
	if key != "" && p.eat("=") {
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueDict, Dict: Dict{{Key: key, Value: v}}}, nil
	}
	p.pos = start
	return p.value()
}

// cstring parses the remainder of a double-quoted MI c-string. The opening
// quote is already consumed.
func (p *miParser) cstring() (string, error) {
	var out []byte
	for !p.eof() {
		c := p.current()
		p.pos++
		switch c {
		case '"':
			return string(out), nil
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			e := p.current()
			p.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case '\\', '"', '\'':
				out = append(out, e)
			default:
				// Unknown escapes pass through verbatim; gdb emits octal
				// escapes for non-ASCII bytes and these stay readable.
				out = append(out, '\\', e)
			}
		default:
			out = append(out, c)
		}
	}
	return "", p.errorf("unterminated string")
}
