// Package dot renders adjacency structures as Graphviz node-link diagrams.
//
// The input is an adjacency list as extracted from the debuggee: element i
// holds the neighbors of node i. Nodes are named by their index, so node
// "3" with neighbors {1, 4} produces edges 3 -> 1 and 3 -> 4. Neighbor
// values render through their display text, which lets adjacency entries
// reference nodes by string label as well as by number.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/Maan2003/gdb-utils/pkg/errors"
	"github.com/Maan2003/gdb-utils/pkg/inspect"
	"github.com/Maan2003/gdb-utils/pkg/value"
)

// Edge is one directed edge of the graph.
type Edge struct {
	From string
	To   string
}

// Graph is the node-link model built from an adjacency list. Nodes holds
// one entry per adjacency index, in index order; targets that only appear
// on the right-hand side of an edge are declared implicitly by DOT.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// FromAdjacency builds a graph from extracted adjacency elements. Element i
// always declares node i. Elements with a sequence view contribute one edge
// per neighbor; elements without one stay declared with no outgoing edges,
// so a node whose neighbor list cannot be read still appears in the drawing.
func FromAdjacency(items []value.Value) Graph {
	g := Graph{Nodes: make([]string, len(items))}
	for i, item := range items {
		g.Nodes[i] = strconv.Itoa(i)

		ext := inspect.Elements(item)
		if ext.Kind != inspect.Sequence {
			continue
		}
		for _, nb := range ext.Items {
			g.Edges = append(g.Edges, Edge{
				From: g.Nodes[i],
				To:   inspect.Display(nb),
			})
		}
	}
	return g
}

// ToDOT serializes the graph in Graphviz DOT syntax. Isolated nodes get an
// explicit declaration so they still appear in the drawing.
func ToDOT(g Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q;\n", n)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Format selects the rendered output encoding.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// ParseFormat validates a format name from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatSVG, FormatPNG, FormatJPG:
		return Format(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unknown format %q (want dot, svg, png, or jpg)", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string { return string(f) }

// Render draws the DOT source into the requested format. FormatDOT passes
// the source through untouched; image formats go through graphviz.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	if format == FormatDOT {
		return []byte(dot), nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	case FormatJPG:
		gvFormat = graphviz.JPG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render")
	}
	return buf.Bytes(), nil
}
