package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func (k Kind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Heading:
		return "heading"
	case Section:
		return "section"
	case Row:
		return "row"
	default:
		return "block"
	}
}

var nodeTemplate = template.Must(template.ParseFS(templateFS, "templates/node.tmpl"))

// WriteHTML writes n and its children as HTML. Copy targets carry their
// value and label in data-copy and data-label attributes.
func WriteHTML(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	return nodeTemplate.ExecuteTemplate(w, "node", n)
}

// HTML renders n to a string.
func HTML(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
