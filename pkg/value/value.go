// Package value models the literal syntax gdb uses when printing values
// ("{1, 2, 3}", "{[0] = 5}", "{x = 1, y = 2}") as a tagged Value tree.
//
// Values come back from the debugger as flat text; [Parse] turns that text
// into something the extraction and rendering layers can walk. The grammar
// intentionally covers only what gdb's print command emits for the data
// shapes we visualize: booleans, numbers, C strings, brace-delimited lists,
// associative containers, struct aggregates, and "@0xADDR:" reference
// prefixes.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	// Bool is a true/false literal.
	Bool Kind = iota
	// Number is a numeric literal. All numbers are held as float64.
	Number
	// String is a double-quoted string literal, stored decoded.
	String
	// List is a brace-delimited ordered sequence: {1, 2, 3}.
	List
	// Map is a brace-delimited keyed container: {[1] = 2} or {x = 5}.
	// Struct aggregates parse as maps with string keys.
	Map
	// Raw is a printed form the literal grammar does not cover (pointer
	// addresses, enum names, <optimized out>). The text is kept verbatim;
	// a Raw value has no structure of its own.
	Raw
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	case Raw:
		return "raw"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Entry is one key/value pair of a Map. Order is preserved from the input.
type Entry struct {
	Key Value
	Val Value
}

// Value is a parsed gdb value literal.
// Exactly the field selected by Kind is meaningful.
type Value struct {
	Kind Kind

	Bool bool
	Num  float64
	Str  string
	List []Value
	Map  []Entry
}

// B returns a Bool value.
func B(b bool) Value { return Value{Kind: Bool, Bool: b} }

// N returns a Number value.
func N(n float64) Value { return Value{Kind: Number, Num: n} }

// S returns a String value.
func S(s string) Value { return Value{Kind: String, Str: s} }

// L returns a List value.
func L(items ...Value) Value { return Value{Kind: List, List: items} }

// M returns a Map value.
func M(entries ...Entry) Value { return Value{Kind: Map, Map: entries} }

// R returns a Raw value holding unparsed printed text.
func R(text string) Value { return Value{Kind: Raw, Str: text} }

// String renders the value back in gdb's literal syntax. Numbers that are
// integral print without a fractional part.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case Bool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case Number:
		b.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case String:
		b.WriteString(strconv.Quote(v.Str))
	case List:
		b.WriteByte('{')
		for i, item := range v.List {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b)
		}
		b.WriteByte('}')
	case Map:
		b.WriteByte('{')
		for i, e := range v.Map {
			if i > 0 {
				b.WriteString(", ")
			}
			if e.Key.Kind == String {
				// Struct fields round-trip as bare identifiers.
				b.WriteString(e.Key.Str)
			} else {
				b.WriteByte('[')
				e.Key.write(b)
				b.WriteByte(']')
			}
			b.WriteString(" = ")
			e.Val.write(b)
		}
		b.WriteByte('}')
	case Raw:
		b.WriteString(v.Str)
	}
}

// Interface converts the value into plain Go data for JSON output: bools,
// float64s, strings, []any for lists, and map[string]any for maps (non-string
// keys use their literal rendering).
func (v Value) Interface() any {
	switch v.Kind {
	case Bool:
		return v.Bool
	case Number:
		return v.Num
	case String:
		return v.Str
	case List:
		out := make([]any, len(v.List))
		for i, item := range v.List {
			out[i] = item.Interface()
		}
		return out
	case Map:
		out := make(map[string]any, len(v.Map))
		for _, e := range v.Map {
			key := e.Key.Str
			if e.Key.Kind != String {
				key = e.Key.String()
			}
			out[key] = e.Val.Interface()
		}
		return out
	case Raw:
		return v.Str
	}
	return nil
}
