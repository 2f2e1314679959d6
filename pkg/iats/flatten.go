package iats

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Value is a flattened XML value: either a Leaf or a Node.
type Value interface {
	isValue()
}

// Leaf is the text content of an element without child elements.
type Leaf string

func (Leaf) isValue() {}

// String returns the leaf text.
func (l Leaf) String() string { return string(l) }

// Node maps element tag names to their flattened values. Tags are kept
// exactly as they appear on the wire.
type Node map[string]Value

func (Node) isValue() {}

// Get returns the value stored under key.
func (n Node) Get(key string) (Value, bool) {
	v, ok := n[key]
	return v, ok
}

// Has reports whether key is present.
func (n Node) Has(key string) bool {
	_, ok := n[key]
	return ok
}

// Text returns the leaf text under key, or "" when key is absent or holds a
// Node.
func (n Node) Text(key string) string {
	if l, ok := n[key].(Leaf); ok {
		return string(l)
	}
	return ""
}

// Child returns the Node under key, or an empty Node when key is absent or
// holds a Leaf.
func (n Node) Child(key string) Node {
	if c, ok := n[key].(Node); ok {
		return c
	}
	return Node{}
}

// Lookup walks path from n. It returns false as soon as a segment is missing
// or a Leaf is reached before the end of the path.
func (n Node) Lookup(path ...string) (Value, bool) {
	var cur Value = n
	for _, key := range path {
		node, ok := cur.(Node)
		if !ok {
			return nil, false
		}
		if cur, ok = node[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Element renders n as an element named tag. Flattening the result yields n
// again when n came from Flatten: its leaves are already trimmed and it has
// no empty sub-nodes.
func (n Node) Element(tag string) *etree.Element {
	e := etree.NewElement(tag)
	for key, v := range n {
		switch v := v.(type) {
		case Leaf:
			e.CreateElement(key).SetText(string(v))
		case Node:
			e.AddChild(v.Element(key))
		}
	}
	return e
}

// Flatten parses an XML fragment and flattens the children of its root
// element. Empty input yields an empty Node.
func Flatten(fragment []byte) (Node, error) {
	if len(bytes.TrimSpace(fragment)) == 0 {
		return Node{}, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(fragment); err != nil {
		return nil, fmt.Errorf("flatten: invalid XML: %w", err)
	}
	return FlattenElement(doc.Root()), nil
}

// FlattenElement flattens the child elements of e. Elements with children
// become Nodes, the rest become Leafs of their trimmed text. When the same
// tag repeats among siblings the last one wins.
func FlattenElement(e *etree.Element) Node {
	n := Node{}
	if e == nil {
		return n
	}
	for _, child := range e.ChildElements() {
		n[child.Tag] = flattenValue(child)
	}
	return n
}

func flattenValue(e *etree.Element) Value {
	if len(e.ChildElements()) == 0 {
		return Leaf(strings.TrimSpace(e.Text()))
	}
	return FlattenElement(e)
}
