// Package htmltable renders 1-D and 2-D array values as self-contained
// styled HTML documents.
//
// The layout mirrors how competitive programmers read DP tables: the outer
// index runs across columns, the inner index down rows, with a heading row
// and column carrying the indices. Highlight keys mark individual cells
// with palette colors and a legend ties each color back to the expression
// it came from.
package htmltable

import (
	"bytes"
	"fmt"
	"html"

	"github.com/Maan2003/gdb-utils/pkg/inspect"
	"github.com/Maan2003/gdb-utils/pkg/value"
)

// Table is the cell model built from an extracted sequence. For a 2-D
// table, Cols[i] holds column i top to bottom and Rows is the padded row
// count; a 1-D table keeps its cells in Cells and leaves Cols nil.
type Table struct {
	Caption string
	TwoD    bool
	Cells   []string   // 1-D cells, by index
	Cols    [][]string // 2-D columns, possibly ragged
	Rows    int        // 2-D row count, max column length
}

// Build classifies the extracted elements and lays out the cell model. The
// table is 2-D when at least one element has its own sequence view; ragged
// columns are kept short here and padded with blank cells at render time.
// In a 2-D table, an element with no sequence view becomes a single-cell
// column holding its display text.
func Build(caption string, items []value.Value) Table {
	t := Table{Caption: caption}

	cols := make([][]string, len(items))
	for i, item := range items {
		ext := inspect.Elements(item)
		if ext.Kind != inspect.Sequence {
			continue
		}
		t.TwoD = true
		col := make([]string, len(ext.Items))
		for j, cell := range ext.Items {
			col[j] = inspect.Display(cell)
		}
		cols[i] = col
	}

	if !t.TwoD {
		t.Cells = make([]string, len(items))
		for i, item := range items {
			t.Cells[i] = inspect.Display(item)
		}
		return t
	}

	for i, item := range items {
		if cols[i] == nil {
			cols[i] = []string{inspect.Display(item)}
		}
		if len(cols[i]) > t.Rows {
			t.Rows = len(cols[i])
		}
	}
	t.Cols = cols
	return t
}

// Key is one resolved highlight request: the source expression text and
// the cell index it resolved to.
type Key struct {
	Expr  string
	Index inspect.Index
}

// Highlight is a key with its assigned palette color.
type Highlight struct {
	Expr  string
	Index inspect.Index
	Color string
}

// DefaultPalette is the ordered set of highlight colors. Soft fills keep
// black cell text readable.
var DefaultPalette = []string{
	"#8dd3c7",
	"#ffffb3",
	"#bebada",
	"#fb8072",
	"#80b1d3",
	"#fdb462",
}

// Assign maps keys to palette colors in first-seen order of their source
// expression text. A repeated expression reuses its color and produces no
// new entry; two distinct expressions get distinct colors even when they
// resolve to the same cell. More distinct expressions than colors wraps
// around the palette.
func Assign(keys []Key, palette []string) []Highlight {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	seen := make(map[string]bool, len(keys))
	var out []Highlight
	for _, k := range keys {
		if seen[k.Expr] {
			continue
		}
		seen[k.Expr] = true
		out = append(out, Highlight{
			Expr:  k.Expr,
			Index: k.Index,
			Color: palette[len(out)%len(palette)],
		})
	}
	return out
}

// Option configures rendering via [Render].
type Option func(*renderer)

type renderer struct {
	font       string
	highlights []Highlight
}

// WithFont overrides the document font family.
func WithFont(font string) Option { return func(r *renderer) { r.font = font } }

// WithHighlights attaches color assignments from [Assign].
func WithHighlights(hls []Highlight) Option {
	return func(r *renderer) { r.highlights = hls }
}

// Render writes the table as a full standalone HTML document. Cell colors
// are inline styles; when several highlights land on the same cell, the
// earliest-assigned one wins.
func Render(t Table, opts ...Option) []byte {
	r := renderer{font: "Input Mono"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	r.writeStyle(&buf)
	buf.WriteString("<table>")
	fmt.Fprintf(&buf, "<caption>%s</caption>", html.EscapeString(t.Caption))

	if t.TwoD {
		r.write2D(&buf, t)
	} else {
		r.write1D(&buf, t)
	}

	buf.WriteString("</table>")
	r.writeLegend(&buf)
	return buf.Bytes()
}

func (r *renderer) writeStyle(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<style>
  html,
  body {
    margin: 0;
    font-family: %s;
  }
  table {
    border-collapse: collapse;
  }

  caption {
    margin-bottom: 10px;
  }

  .heading {
    font-weight: 400;
    padding-right: 5px;
    padding-bottom: 2px;
  }
  td.data {
    border: black 1px solid;
    padding: 10px;
    min-width: 10px;
  }

  .legend {
    margin-top: 10px;
  }
  .swatch {
    display: inline-block;
    width: 12px;
    height: 12px;
    margin-right: 5px;
    border: black 1px solid;
  }
</style>
`, r.font)
}

func (r *renderer) write1D(buf *bytes.Buffer, t Table) {
	buf.WriteString("<tr>")
	for i := range t.Cells {
		fmt.Fprintf(buf, `<th class="heading">%d</th>`, i)
	}
	buf.WriteString("</tr>")

	buf.WriteString("<tr>")
	for i, cell := range t.Cells {
		r.writeCell(buf, cell, inspect.Index{I: i})
	}
	buf.WriteString("</tr>")
}

func (r *renderer) write2D(buf *bytes.Buffer, t Table) {
	buf.WriteString("<tr>")
	buf.WriteString("<th></th>")
	for i := range t.Cols {
		fmt.Fprintf(buf, `<th class="heading">%d</th>`, i)
	}
	buf.WriteString("</tr>")

	for j := 0; j < t.Rows; j++ {
		buf.WriteString("<tr>")
		fmt.Fprintf(buf, `<td class="heading">%d</td>`, j)
		for i, col := range t.Cols {
			cell := ""
			if j < len(col) {
				cell = col[j]
			}
			r.writeCell(buf, cell, inspect.Index{I: i, J: j, Pair: true})
		}
		buf.WriteString("</tr>")
	}
}

func (r *renderer) writeCell(buf *bytes.Buffer, cell string, at inspect.Index) {
	if color, ok := r.colorAt(at); ok {
		fmt.Fprintf(buf, `<td class="data" style="background-color: %s">%s</td>`,
			color, html.EscapeString(cell))
		return
	}
	fmt.Fprintf(buf, `<td class="data">%s</td>`, html.EscapeString(cell))
}

// colorAt finds the earliest highlight addressing the cell.
func (r *renderer) colorAt(at inspect.Index) (string, bool) {
	for _, hl := range r.highlights {
		if hl.Index == at {
			return hl.Color, true
		}
	}
	return "", false
}

func (r *renderer) writeLegend(buf *bytes.Buffer) {
	if len(r.highlights) == 0 {
		return
	}
	buf.WriteString(`<div class="legend">`)
	for _, hl := range r.highlights {
		fmt.Fprintf(buf, `<div><span class="swatch" style="background-color: %s"></span>%s</div>`,
			hl.Color, html.EscapeString(hl.Expr))
	}
	buf.WriteString("</div>")
}
