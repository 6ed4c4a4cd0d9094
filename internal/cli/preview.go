package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Maan2003/gdb-utils/pkg/inspect"
	"github.com/Maan2003/gdb-utils/pkg/render/htmltable"
)

var previewHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

// printTablePreview renders the cell model to the terminal. Highlighted
// cells show bold cyan since terminal cells have no background palette to
// match the HTML export.
func printTablePreview(t htmltable.Table, hls []htmltable.Highlight) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim)

	if t.TwoD {
		headers := make([]string, len(t.Cols)+1)
		headers[0] = ""
		for i := range t.Cols {
			headers[i+1] = strconv.Itoa(i)
		}
		tbl.Headers(headers...)

		for j := 0; j < t.Rows; j++ {
			row := make([]string, len(t.Cols)+1)
			row[0] = strconv.Itoa(j)
			for i, col := range t.Cols {
				if j < len(col) {
					row[i+1] = col[j]
				}
			}
			tbl.Row(row...)
		}
		tbl.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return StyleDim
			}
			if highlighted(hls, inspect.Index{I: col - 1, J: row, Pair: true}) {
				return previewHighlightStyle
			}
			return StyleValue
		})
	} else {
		headers := make([]string, len(t.Cells))
		for i := range t.Cells {
			headers[i] = strconv.Itoa(i)
		}
		tbl.Headers(headers...)
		tbl.Row(t.Cells...)
		tbl.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleDim
			}
			if highlighted(hls, inspect.Index{I: col}) {
				return previewHighlightStyle
			}
			return StyleValue
		})
	}

	fmt.Println(tbl.Render())
	for _, hl := range hls {
		printDetail("%s at %s", hl.Expr, hl.Index)
	}
}

func highlighted(hls []htmltable.Highlight, at inspect.Index) bool {
	for _, hl := range hls {
		if hl.Index == at {
			return true
		}
	}
	return false
}
