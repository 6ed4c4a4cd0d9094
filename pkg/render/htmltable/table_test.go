package htmltable

import (
	"strings"
	"testing"

	"github.com/Maan2003/gdb-utils/pkg/inspect"
	"github.com/Maan2003/gdb-utils/pkg/value"
)

func TestBuild1D(t *testing.T) {
	tbl := Build("xs", []value.Value{value.N(10), value.N(20), value.N(30)})

	if tbl.TwoD {
		t.Fatal("TwoD = true, want 1-D")
	}
	want := []string{"10", "20", "30"}
	if len(tbl.Cells) != len(want) {
		t.Fatalf("Cells = %v, want %v", tbl.Cells, want)
	}
	for i := range want {
		if tbl.Cells[i] != want[i] {
			t.Errorf("Cells[%d] = %q, want %q", i, tbl.Cells[i], want[i])
		}
	}
}

func TestBuild2DRagged(t *testing.T) {
	tbl := Build("dp", []value.Value{
		value.L(value.N(1), value.N(2)),
		value.L(value.N(3)),
	})

	if !tbl.TwoD {
		t.Fatal("TwoD = false, want 2-D")
	}
	if len(tbl.Cols) != 2 || tbl.Rows != 2 {
		t.Fatalf("Cols x Rows = %dx%d, want 2x2", len(tbl.Cols), tbl.Rows)
	}
	if len(tbl.Cols[1]) != 1 || tbl.Cols[1][0] != "3" {
		t.Errorf("Cols[1] = %v, want short column [3]", tbl.Cols[1])
	}
}

func TestBuildMixedElements(t *testing.T) {
	// One sequence element makes the whole table 2-D; the scalar becomes a
	// one-cell column.
	tbl := Build("a", []value.Value{
		value.L(value.N(1)),
		value.N(9),
	})
	if !tbl.TwoD {
		t.Fatal("TwoD = false, want 2-D")
	}
	if len(tbl.Cols[1]) != 1 || tbl.Cols[1][0] != "9" {
		t.Errorf("Cols[1] = %v, want single display cell", tbl.Cols[1])
	}
}

func TestAssignDistinctExpressions(t *testing.T) {
	// Same resolved index, different source text: two entries, two colors.
	hls := Assign([]Key{
		{Expr: "i", Index: inspect.Index{I: 3}},
		{Expr: "j+1", Index: inspect.Index{I: 3}},
	}, nil)

	if len(hls) != 2 {
		t.Fatalf("len(highlights) = %d, want 2", len(hls))
	}
	if hls[0].Color == hls[1].Color {
		t.Error("distinct expressions must get distinct colors")
	}
}

func TestAssignRepeatedExpression(t *testing.T) {
	hls := Assign([]Key{
		{Expr: "i", Index: inspect.Index{I: 1}},
		{Expr: "i", Index: inspect.Index{I: 1}},
	}, nil)
	if len(hls) != 1 {
		t.Errorf("len(highlights) = %d, want 1 (repeat reuses entry)", len(hls))
	}
}

func TestAssignPaletteWraps(t *testing.T) {
	keys := make([]Key, 7)
	for i := range keys {
		keys[i] = Key{Expr: string(rune('a' + i)), Index: inspect.Index{I: i}}
	}
	hls := Assign(keys, DefaultPalette)

	if len(hls) != 7 {
		t.Fatalf("len(highlights) = %d, want 7", len(hls))
	}
	if hls[6].Color != DefaultPalette[0] {
		t.Errorf("7th color = %q, want wrap to %q", hls[6].Color, DefaultPalette[0])
	}
}

func TestRender1D(t *testing.T) {
	tbl := Build("xs", []value.Value{value.N(10), value.N(20), value.N(30)})
	out := string(Render(tbl))

	for _, want := range []string{
		"<caption>xs</caption>",
		`<th class="heading">0</th>`,
		`<th class="heading">2</th>`,
		`<td class="data">10</td>`,
		`<td class="data">30</td>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "background-color") {
		t.Error("no highlights requested, but output has colored cells")
	}
	if strings.Contains(out, "legend") {
		t.Error("no highlights requested, but output has a legend")
	}
}

func TestRender2DBlankPadding(t *testing.T) {
	tbl := Build("dp", []value.Value{
		value.L(value.N(1), value.N(2)),
		value.L(value.N(3)),
	})
	out := string(Render(tbl))

	// Column 1 has no second row; the cell renders blank, not missing.
	if !strings.Contains(out, `<td class="data"></td>`) {
		t.Errorf("ragged column should pad with a blank cell:\n%s", out)
	}
}

func TestRenderHighlightAndLegend(t *testing.T) {
	tbl := Build("dp", []value.Value{
		value.L(value.N(1), value.N(2)),
		value.L(value.N(3), value.N(4)),
	})
	hls := Assign([]Key{
		{Expr: "best", Index: inspect.Index{I: 1, J: 0, Pair: true}},
	}, nil)
	out := string(Render(tbl, WithHighlights(hls)))

	want := `<td class="data" style="background-color: ` + DefaultPalette[0] + `">3</td>`
	if !strings.Contains(out, want) {
		t.Errorf("output missing highlighted cell %q:\n%s", want, out)
	}
	if !strings.Contains(out, `class="legend"`) || !strings.Contains(out, ">best</div>") {
		t.Errorf("output missing legend entry for %q", "best")
	}
}

func TestRenderSameCellEarliestWins(t *testing.T) {
	tbl := Build("xs", []value.Value{value.N(5), value.N(6)})
	hls := Assign([]Key{
		{Expr: "first", Index: inspect.Index{I: 1}},
		{Expr: "second", Index: inspect.Index{I: 1}},
	}, nil)
	out := string(Render(tbl, WithHighlights(hls)))

	if !strings.Contains(out, `background-color: `+DefaultPalette[0]+`">6`) {
		t.Error("cell should take the earliest-assigned color")
	}
	if strings.Contains(out, `background-color: `+DefaultPalette[1]+`">6`) {
		t.Error("later highlight must not override the cell color")
	}
	// Both expressions still appear in the legend.
	for _, expr := range []string{"first", "second"} {
		if !strings.Contains(out, ">"+expr+"</div>") {
			t.Errorf("legend missing %q", expr)
		}
	}
}

func TestRenderEscapesCaption(t *testing.T) {
	tbl := Build("a<b", []value.Value{value.N(1)})
	out := string(Render(tbl))
	if !strings.Contains(out, "<caption>a&lt;b</caption>") {
		t.Error("caption must be HTML-escaped")
	}
}

func TestRenderCustomFont(t *testing.T) {
	tbl := Build("xs", []value.Value{value.N(1)})
	out := string(Render(tbl, WithFont("JetBrains Mono")))
	if !strings.Contains(out, "font-family: JetBrains Mono;") {
		t.Error("WithFont should override the document font")
	}
}
