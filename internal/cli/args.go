package cli

import "strings"

// splitExprFile splits command arguments into an expression and an output
// path. The path is the final argument; everything before it joins back
// into one expression, so "graph g.adj [0] out.svg" reads the expression
// "g.adj [0]" without quoting.
func splitExprFile(args []string) (expr, file string) {
	file = args[len(args)-1]
	expr = strings.Join(args[:len(args)-1], " ")
	return expr, file
}

// splitTableArgs splits table arguments into the root expression, the
// highlight key expressions, and the output path. The first argument is
// the expression and the last the path; anything between is a highlight
// key.
func splitTableArgs(args []string) (expr string, highlights []string, file string) {
	expr = args[0]
	file = args[len(args)-1]
	if len(args) > 2 {
		highlights = args[1 : len(args)-1]
	}
	return expr, highlights, file
}
