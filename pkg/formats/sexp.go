package formats

import (
	"fmt"
	"strings"

	"github.com/chewxy/sexp"
)

// S-expression navigation helpers.
//
// The parser collapses a one-element list to its only symbol, so "(default)"
// arrives as the bare symbol default. nodeItems treats both shapes the same.

func nodeItems(s sexp.Sexp) []sexp.Sexp {
	switch n := s.(type) {
	case nil:
		return nil
	case sexp.List:
		return n
	default:
		return []sexp.Sexp{n}
	}
}

// nodeName returns the leading symbol of a node.
func nodeName(s sexp.Sexp) (string, error) {
	items := nodeItems(s)
	if len(items) == 0 {
		return "", fmt.Errorf("empty node")
	}
	sym, ok := items[0].(sexp.Symbol)
	if !ok {
		return "", fmt.Errorf("expected symbol, got %v", items[0])
	}
	return string(sym), nil
}

// nodeSymbols returns the symbols after the node name.
// Example: nodeSymbols((ext bin raw)) returns ["bin", "raw"]
func nodeSymbols(s sexp.Sexp) ([]string, error) {
	items := nodeItems(s)
	if len(items) <= 1 {
		return nil, nil
	}
	out := make([]string, 0, len(items)-1)
	for _, item := range items[1:] {
		sym, ok := item.(sexp.Symbol)
		if !ok {
			return nil, fmt.Errorf("unexpected list %v", item)
		}
		out = append(out, string(sym))
	}
	return out, nil
}

// nodeText joins the symbols after the node name with single spaces.
// Example: nodeText((name Raw binary data)) returns "Raw binary data"
func nodeText(s sexp.Sexp) (string, error) {
	syms, err := nodeSymbols(s)
	if err != nil {
		return "", err
	}
	return strings.Join(syms, " "), nil
}

// stripComments removes everything from ';' to the end of each line.
func stripComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if before, _, found := strings.Cut(line, ";"); found {
			lines[i] = before
		}
	}
	return strings.Join(lines, "\n")
}

// checkParens rejects unbalanced and empty lists before they reach the
// s-expression parser, which does not report either.
func checkParens(src string) error {
	line := 1
	depth := 0
	empty := false
	for _, r := range src {
		switch {
		case r == '\n':
			line++
		case r == '(':
			depth++
			empty = true
		case r == ')':
			if depth == 0 {
				return fmt.Errorf("line %d: unexpected ')'", line)
			}
			if empty {
				return fmt.Errorf("line %d: empty list", line)
			}
			depth--
		case r == ' ' || r == '\t' || r == '\r':
		default:
			empty = false
		}
	}
	if depth > 0 {
		return fmt.Errorf("line %d: %d unclosed '('", line, depth)
	}
	return nil
}
