package inspect

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/Maan2003/gdb-utils/pkg/value"
)

// fakeEvaluator resolves expressions from a fixed table.
type fakeEvaluator struct {
	values map[string]value.Value
	calls  []string
}

func (f *fakeEvaluator) Eval(ctx context.Context, expr string) (value.Value, error) {
	f.calls = append(f.calls, expr)
	v, ok := f.values[expr]
	if !ok {
		return value.Value{}, fmt.Errorf("no symbol %q", expr)
	}
	return v, nil
}

func TestElementsList(t *testing.T) {
	ext := Elements(value.L(value.N(10), value.N(20), value.N(30)))
	if ext.Kind != Sequence {
		t.Fatalf("Kind = %v, want Sequence", ext.Kind)
	}
	want := []value.Value{value.N(10), value.N(20), value.N(30)}
	if !reflect.DeepEqual(ext.Items, want) {
		t.Errorf("Items = %v, want %v (order and count preserved)", ext.Items, want)
	}
}

func TestElementsMapDropsKeys(t *testing.T) {
	m := value.M(
		value.Entry{Key: value.N(0), Val: value.S("a")},
		value.Entry{Key: value.N(7), Val: value.S("b")},
	)
	ext := Elements(m)
	if ext.Kind != Sequence {
		t.Fatalf("Kind = %v, want Sequence", ext.Kind)
	}
	want := []value.Value{value.S("a"), value.S("b")}
	if !reflect.DeepEqual(ext.Items, want) {
		t.Errorf("Items = %v, want values only, in entry order", ext.Items)
	}
}

func TestElementsEmptyListIsSequence(t *testing.T) {
	ext := Elements(value.L())
	if ext.Kind != Sequence {
		t.Fatalf("empty list Kind = %v, want Sequence", ext.Kind)
	}
	if len(ext.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(ext.Items))
	}
}

func TestElementsText(t *testing.T) {
	ext := Elements(value.S("hello"))
	if ext.Kind != Text {
		t.Fatalf("Kind = %v, want Text", ext.Kind)
	}
	if ext.Text != "hello" {
		t.Errorf("Text = %q, want %q", ext.Text, "hello")
	}
}

func TestElementsNotExtractable(t *testing.T) {
	for _, v := range []value.Value{value.N(5), value.B(true), value.R("0x55555555")} {
		if ext := Elements(v); ext.Kind != NotExtractable {
			t.Errorf("Elements(%v).Kind = %v, want NotExtractable", v, ext.Kind)
		}
	}
}

func TestElementsOfDirect(t *testing.T) {
	ev := &fakeEvaluator{values: map[string]value.Value{
		"xs": value.L(value.N(1), value.N(2)),
	}}
	ext, err := ElementsOf(context.Background(), ev, "xs")
	if err != nil {
		t.Fatalf("ElementsOf error: %v", err)
	}
	if ext.Kind != Sequence || len(ext.Items) != 2 {
		t.Errorf("ext = %+v, want 2-element sequence", ext)
	}
}

func TestElementsOfEvalFailure(t *testing.T) {
	ev := &fakeEvaluator{values: map[string]value.Value{}}
	if _, err := ElementsOf(context.Background(), ev, "missing"); err == nil {
		t.Error("ElementsOf on unknown expression should return an error")
	}
}

func TestElementsOfStaticArray(t *testing.T) {
	// A pointer-ish value with no sequence view, but static array typing:
	// sizeof quotient 12/4 = 3 elements fetched by position.
	ev := &fakeEvaluator{values: map[string]value.Value{
		"buf":              value.R("0x7fffffffde40"),
		"sizeof(buf)":      value.N(12),
		"sizeof((buf)[0])": value.N(4),
		"(buf)[0]":         value.N(9),
		"(buf)[1]":         value.N(8),
		"(buf)[2]":         value.N(7),
	}}
	ext, err := ElementsOf(context.Background(), ev, "buf")
	if err != nil {
		t.Fatalf("ElementsOf error: %v", err)
	}
	if ext.Kind != Sequence {
		t.Fatalf("Kind = %v, want Sequence", ext.Kind)
	}
	want := []value.Value{value.N(9), value.N(8), value.N(7)}
	if !reflect.DeepEqual(ext.Items, want) {
		t.Errorf("Items = %v, want %v", ext.Items, want)
	}
}

func TestElementsOfStaticArrayPartialFailure(t *testing.T) {
	// Element 1 does not resolve: the whole extraction degrades to
	// NotExtractable instead of returning a partial sequence.
	ev := &fakeEvaluator{values: map[string]value.Value{
		"buf":              value.R("0x7fffffffde40"),
		"sizeof(buf)":      value.N(8),
		"sizeof((buf)[0])": value.N(4),
		"(buf)[0]":         value.N(9),
	}}
	ext, err := ElementsOf(context.Background(), ev, "buf")
	if err != nil {
		t.Fatalf("ElementsOf error: %v", err)
	}
	if ext.Kind != NotExtractable {
		t.Errorf("Kind = %v, want NotExtractable", ext.Kind)
	}
}

func TestElementsOfNotExtractable(t *testing.T) {
	ev := &fakeEvaluator{values: map[string]value.Value{
		"x": value.N(5),
	}}
	ext, err := ElementsOf(context.Background(), ev, "x")
	if err != nil {
		t.Fatalf("ElementsOf error: %v", err)
	}
	if ext.Kind != NotExtractable {
		t.Errorf("Kind = %v, want NotExtractable (sizeof probes failed)", ext.Kind)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.N(10), "10"},
		{value.N(2.5), "2.5"},
		{value.S("hi"), "hi"}, // string view displays raw
		{value.B(false), "false"},
		{value.L(value.N(1)), "{1}"},
	}
	for _, tt := range tests {
		if got := Display(tt.v); got != tt.want {
			t.Errorf("Display(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want Index
		ok   bool
	}{
		{"scalar", value.N(3), Index{I: 3}, true},
		{"pair", value.L(value.N(1), value.N(2)), Index{I: 1, J: 2, Pair: true}, true},
		{"longer array uses first two", value.L(value.N(1), value.N(2), value.N(3)), Index{I: 1, J: 2, Pair: true}, true},
		{"non-integral scalar", value.N(1.5), Index{}, false},
		{"string", value.S("x"), Index{}, false},
		{"single element array", value.L(value.N(1)), Index{}, false},
		{"non-numeric pair", value.L(value.S("a"), value.N(2)), Index{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveIndex(tt.v)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ResolveIndex(%v) = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIndexString(t *testing.T) {
	if got := (Index{I: 4}).String(); got != "4" {
		t.Errorf("String() = %q, want %q", got, "4")
	}
	if got := (Index{I: 1, J: 2, Pair: true}).String(); got != "(1, 2)" {
		t.Errorf("String() = %q, want %q", got, "(1, 2)")
	}
}
