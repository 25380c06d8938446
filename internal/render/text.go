package render

import (
	"bufio"
	"io"
	"strings"
)

// WriteText writes n as indented plain text. Rows print on one line; the
// children of a node with a header are indented below it.
func WriteText(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeTextNode(bw, n, 0)
	return bw.Flush()
}

func writeTextNode(w *bufio.Writer, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	switch n.Kind {
	case Inline, Heading:
		if n.Text != "" {
			writeLine(w, indent, n.Text)
		}
		return
	case Row:
		if line := strings.Join(rowTexts(n, nil), " "); line != "" {
			writeLine(w, indent, line)
		}
		return
	case Section:
		writeLine(w, indent, "▸ "+n.Text)
		depth++
	default:
		if n.Text != "" {
			writeLine(w, indent, n.Text)
		}
		if n.Header != nil {
			writeTextNode(w, n.Header, depth)
			depth++
		}
	}

	for _, c := range n.Children {
		writeTextNode(w, c, depth)
	}
}

func rowTexts(n *Node, out []string) []string {
	if n == nil {
		return out
	}
	if n.Text != "" {
		out = append(out, n.Text)
	}
	out = rowTexts(n.Header, out)
	for _, c := range n.Children {
		out = rowTexts(c, out)
	}
	return out
}

func writeLine(w *bufio.Writer, indent, s string) {
	w.WriteString(indent)
	w.WriteString(s)
	w.WriteByte('\n')
}
