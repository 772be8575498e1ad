package xmlparser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"acordos/debt-parser/internal/xmlutils"
)

// Kind tags a tree node.
type Kind int

// Node kinds.
const (
	Scalar Kind = iota
	Object
	Array
)

// AttributePrefix marks keys that come from XML attributes.
const AttributePrefix = "@_"

// TextKey holds the character data of an element that also has attributes or
// children.
const TextKey = "#text"

// Node is a schema-less view of an XML element. Scalars carry Text; objects
// carry ordered Keys with their Fields; arrays carry Items, one per repeated
// sibling element.
type Node struct {
	Kind   Kind
	Text   string
	Keys   []string
	Fields map[string]*Node
	Items  []*Node
}

// Get returns the child stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Object {
		return nil, false
	}
	c, ok := n.Fields[key]
	return c, ok
}

// IsEmpty reports whether n carries no value. Objects and arrays are never
// empty.
func (n *Node) IsEmpty() bool {
	return n == nil || (n.Kind == Scalar && strings.TrimSpace(n.Text) == "")
}

// ScalarText returns the text a field value stands for: the scalar itself,
// the #text of an element with attributes, or the first such value of an
// array.
func (n *Node) ScalarText() (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case Scalar:
		s := xmlutils.CleanText(n.Text)
		return s, s != ""
	case Object:
		if t, ok := n.Get(TextKey); ok {
			return t.ScalarText()
		}
	case Array:
		for _, item := range n.Items {
			if s, ok := item.ScalarText(); ok {
				return s, true
			}
		}
	}
	return "", false
}

func (n *Node) set(key string, child *Node) {
	if n.Fields == nil {
		n.Fields = make(map[string]*Node)
	}
	existing, ok := n.Fields[key]
	if !ok {
		n.Keys = append(n.Keys, key)
		n.Fields[key] = child
		return
	}
	if existing.Kind == Array {
		existing.Items = append(existing.Items, child)
		return
	}
	n.Fields[key] = &Node{Kind: Array, Items: []*Node{existing, child}}
}

// Limits bounds tree construction.
type Limits struct {
	MaxDepth int
	MaxNodes int
}

// Default limits.
const (
	DefaultMaxDepth = 128
	DefaultMaxNodes = 100000
)

// DefaultLimits returns the default bounds.
func DefaultLimits() Limits {
	return Limits{MaxDepth: DefaultMaxDepth, MaxNodes: DefaultMaxNodes}
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultMaxNodes
	}
	return l
}

// ErrLimitExceeded is wrapped by BuildTree when a document is deeper or
// larger than its limits allow.
var ErrLimitExceeded = errors.New("XML document exceeds parser limits")

// ErrNoRootElement is returned for input that holds no element at all.
var ErrNoRootElement = errors.New("XML document has no root element")

type frame struct {
	name string
	node *Node
	text strings.Builder
}

// BuildTree decodes data into a tree rooted at an object holding the
// document element under its local name.
func BuildTree(data []byte, limits Limits) (*Node, error) {
	limits = limits.withDefaults()
	d := xmlutils.NewDecoder(bytes.NewReader(data))

	root := &Node{Kind: Object}
	stack := []*frame{{node: root}}
	nodes := 0
	sawRoot := false

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) > limits.MaxDepth {
				return nil, fmt.Errorf("%w: depth above %d", ErrLimitExceeded, limits.MaxDepth)
			}
			nodes++
			el := &frame{name: t.Name.Local, node: &Node{Kind: Scalar}}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				nodes++
				el.node.Kind = Object
				el.node.set(AttributePrefix+a.Name.Local, &Node{Kind: Scalar, Text: a.Value})
			}
			if nodes > limits.MaxNodes {
				return nil, fmt.Errorf("%w: more than %d nodes", ErrLimitExceeded, limits.MaxNodes)
			}
			stack = append(stack, el)
			sawRoot = true

		case xml.CharData:
			stack[len(stack)-1].text.Write(t)

		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			el.finish()
			stack[len(stack)-1].node.Kind = Object
			stack[len(stack)-1].node.set(el.name, el.node)
		}
	}

	if len(stack) > 1 {
		return nil, io.ErrUnexpectedEOF
	}
	if !sawRoot {
		return nil, ErrNoRootElement
	}
	return root, nil
}

// finish settles the element's character data: plain text for a leaf,
// #text for an element that also has attributes or children.
func (f *frame) finish() {
	text := strings.TrimSpace(f.text.String())
	if f.node.Kind == Scalar {
		f.node.Text = text
		return
	}
	if text != "" {
		f.node.set(TextKey, &Node{Kind: Scalar, Text: text})
	}
}
