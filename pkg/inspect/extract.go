// Package inspect turns opaque debugger values into ordered sequences the
// exporters can render.
//
// Extraction is deliberately explicit about its outcome: a value either
// yields a [Sequence] of elements, is [Text] (a terminal string, never
// recursed into), or is [NotExtractable]. Callers branch on the tag instead
// of probing capabilities at runtime, and an empty sequence is a valid
// success distinct from "not a recognized structure".
package inspect

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/Maan2003/gdb-utils/pkg/value"
)

// Kind tags the outcome of an extraction.
type Kind int

const (
	// NotExtractable means the value exposes no sequence or string view
	// and no static array size. The zero Extraction has this kind.
	NotExtractable Kind = iota
	// Sequence means the value decomposed into ordered elements.
	Sequence
	// Text means the value is string content, used as a leaf.
	Text
)

// Extraction is the tagged result of coercing one value.
type Extraction struct {
	Kind  Kind
	Items []value.Value // valid when Kind == Sequence
	Text  string        // valid when Kind == Text
}

// Elements coerces a parsed value into an extraction:
//
//   - lists yield their elements in order,
//   - maps yield their values in entry order (keys are container metadata
//     and are dropped),
//   - strings yield Text,
//   - everything else is NotExtractable.
//
// Elements never recurses; callers that know their domain ("each adjacency
// entry is itself a sequence") coerce inner values themselves.
func Elements(v value.Value) Extraction {
	switch v.Kind {
	case value.List:
		items := v.List
		if items == nil {
			items = []value.Value{}
		}
		return Extraction{Kind: Sequence, Items: items}
	case value.Map:
		items := make([]value.Value, len(v.Map))
		for i, e := range v.Map {
			items[i] = e.Val
		}
		return Extraction{Kind: Sequence, Items: items}
	case value.String:
		return Extraction{Kind: Text, Text: v.Str}
	}
	return Extraction{Kind: NotExtractable}
}

// Evaluator resolves textual expressions against live process state.
// *gdb.Session is the production implementation.
type Evaluator interface {
	Eval(ctx context.Context, expr string) (value.Value, error)
}

// ElementsOf evaluates expr and coerces the result. The returned error is
// an evaluation failure (bad expression, dead session) and is distinct from
// a successful evaluation of a value that is simply not extractable.
//
// When the printed value has no sequence form, ElementsOf falls back to
// static array typing: if sizeof(expr) divides evenly by sizeof(expr[0]),
// the value is a contiguous array of quotient-many elements, which are
// fetched by position. Any failure along that path degrades to
// NotExtractable; a partially fetched sequence is never returned.
func ElementsOf(ctx context.Context, ev Evaluator, expr string) (Extraction, error) {
	v, err := ev.Eval(ctx, expr)
	if err != nil {
		return Extraction{}, err
	}
	if ext := Elements(v); ext.Kind != NotExtractable {
		return ext, nil
	}
	if items, ok := staticArrayElements(ctx, ev, expr); ok {
		return Extraction{Kind: Sequence, Items: items}, nil
	}
	return Extraction{Kind: NotExtractable}, nil
}

// staticArrayElements fetches elements of a statically sized array via the
// evaluator. It reports ok=false unless every element resolves.
func staticArrayElements(ctx context.Context, ev Evaluator, expr string) ([]value.Value, bool) {
	total, ok := evalSize(ctx, ev, fmt.Sprintf("sizeof(%s)", expr))
	if !ok || total == 0 {
		return nil, false
	}
	elem, ok := evalSize(ctx, ev, fmt.Sprintf("sizeof((%s)[0])", expr))
	if !ok || elem == 0 || total%elem != 0 {
		return nil, false
	}

	n := total / elem
	items := make([]value.Value, 0, n)
	for i := int64(0); i < n; i++ {
		v, err := ev.Eval(ctx, fmt.Sprintf("(%s)[%d]", expr, i))
		if err != nil {
			return nil, false
		}
		items = append(items, v)
	}
	return items, true
}

// evalSize evaluates a sizeof expression to a positive integer.
func evalSize(ctx context.Context, ev Evaluator, expr string) (int64, bool) {
	v, err := ev.Eval(ctx, expr)
	if err != nil || v.Kind != value.Number {
		return 0, false
	}
	if v.Num <= 0 || v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	return int64(v.Num), true
}

// Display renders a value as cell or node text. String content displays
// unquoted (its string view is the display form); everything else uses the
// literal rendering, which for Raw values is the debugger's own text.
func Display(v value.Value) string {
	if v.Kind == value.String {
		return v.Str
	}
	return v.String()
}

// Index addresses one cell of an exported table: a scalar position in a
// 1-D table, or a (column, row) pair in a 2-D table.
type Index struct {
	I    int
	J    int
	Pair bool
}

// String renders the index for legends and logs.
func (ix Index) String() string {
	if ix.Pair {
		return fmt.Sprintf("(%d, %d)", ix.I, ix.J)
	}
	return strconv.Itoa(ix.I)
}

// ResolveIndex interprets a highlight-key value as a cell index: an
// integral number is a scalar index, and a sequence whose first two
// elements are integral numbers is an (i, j) pair. Anything else resolves
// to no index, which callers treat as "skip this key".
func ResolveIndex(v value.Value) (Index, bool) {
	if i, ok := integral(v); ok {
		return Index{I: i}, true
	}
	ext := Elements(v)
	if ext.Kind != Sequence || len(ext.Items) < 2 {
		return Index{}, false
	}
	i, ok := integral(ext.Items[0])
	if !ok {
		return Index{}, false
	}
	j, ok := integral(ext.Items[1])
	if !ok {
		return Index{}, false
	}
	return Index{I: i, J: j, Pair: true}, true
}

func integral(v value.Value) (int, bool) {
	if v.Kind != value.Number || v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	return int(v.Num), true
}
