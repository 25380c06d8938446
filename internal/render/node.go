// Package render turns Dokploy data into a tree of display nodes and writes
// that tree as HTML or indented text. Every function here is pure: the same
// input always yields the same tree.
package render

type Kind int

const (
	// Block is a generic container.
	Block Kind = iota
	// Inline is a run of text inside a block.
	Inline
	// Heading titles its parent.
	Heading
	// Section is a collapsible group with Text as its summary.
	Section
	// Row is a container whose content reads as a single line.
	Row
)

// CopyTarget marks a node whose value can be copied to the clipboard.
type CopyTarget struct {
	Value string
	Label string
}

// Node is one element of the display tree. A container with a Header
// draws it before its children, which are nested beneath it.
type Node struct {
	Kind     Kind
	Class    string
	Text     string
	Title    string
	Copy     *CopyTarget
	Open     bool
	Header   *Node
	Children []*Node
}

// Append adds non-nil children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func block(class string, children ...*Node) *Node {
	return (&Node{Kind: Block, Class: class}).Append(children...)
}

func row(class string, children ...*Node) *Node {
	return (&Node{Kind: Row, Class: class}).Append(children...)
}

func text(class, s string) *Node {
	return &Node{Kind: Inline, Class: class, Text: s}
}

func heading(class, s string) *Node {
	return &Node{Kind: Heading, Class: class, Text: s}
}

// CopyTargets returns every copy target in the tree in document order.
func CopyTargets(n *Node) []CopyTarget {
	var out []CopyTarget
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Copy != nil {
			out = append(out, *n.Copy)
		}
		walk(n.Header)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Find returns the nodes with the given class in document order.
func Find(n *Node, class string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Class == class {
			out = append(out, n)
		}
		walk(n.Header)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}
