// Package ui describes plugin configuration views as a serializable
// component tree rendered by the host.
package ui

import (
	"encoding/json"
	"fmt"
)

// Node is the serialized form of a component.
type Node struct {
	Type     string `json:"type"`
	Props    Props  `json:"props"`
	Children []Node `json:"children,omitempty"`
}

// Props is the fixed property record shared by all component kinds.
// Fields a kind does not use stay empty and are omitted on the wire.
type Props struct {
	ID      string   `json:"id,omitempty"`
	Label   string   `json:"label,omitempty"`
	Hint    string   `json:"hint,omitempty"`
	Text    string   `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Component renders itself to a Node.
type Component interface {
	Node() Node
}

// Viewer is the optional interface a plugin implements to expose a
// configuration view. Hosts discover it by type assertion.
type Viewer interface {
	View() Component
}

// Div is the container component.
type Div struct {
	children []Component
}

func NewDiv(children ...Component) *Div {
	d := &Div{}
	return d.Add(children...)
}

// Add appends children and returns the container for chaining.
func (d *Div) Add(children ...Component) *Div {
	d.children = append(d.children, children...)
	return d
}

func (d *Div) Node() Node {
	nodes := make([]Node, 0, len(d.children))
	for _, child := range d.children {
		nodes = append(nodes, child.Node())
	}
	return Node{Type: "div", Children: nodes}
}

type leaf struct {
	kind  string
	props Props
}

func (l leaf) Node() Node {
	return Node{Type: l.kind, Props: l.props}
}

func Label(text string) Component {
	return leaf{kind: "label", props: Props{Text: text}}
}

func TextBox(id, label, hint string) Component {
	return leaf{kind: "input", props: Props{ID: id, Label: label, Hint: hint}}
}

func Checkbox(id, label string, options ...string) Component {
	return leaf{kind: "checkbox", props: Props{ID: id, Label: label, Options: options}}
}

func Radio(id, label string, options ...string) Component {
	return leaf{kind: "radio", props: Props{ID: id, Label: label, Options: options}}
}

func Select(id, label string, options ...string) Component {
	return leaf{kind: "select", props: Props{ID: id, Label: label, Options: options}}
}

// Marshal renders a component tree as the JSON the host consumes.
func Marshal(c Component) ([]byte, error) {
	b, err := json.Marshal(c.Node())
	if err != nil {
		return nil, fmt.Errorf("encode view: %w", err)
	}
	return b, nil
}
