package tree

import (
	"errors"
	"reflect"
	"strings"
)

var (
	// ErrNilTree is returned when a query is given no root.
	ErrNilTree = errors.New("tree: nil root")

	// ErrInvalidCriterion is returned for an empty tag or a nil type.
	ErrInvalidCriterion = errors.New("tree: invalid criterion")
)

// Node is one node of a rendered tree.
type Node struct {
	// Tag is the host element name, e.g. "div". Empty for composite nodes.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty" validate:"required_without=Name"`

	// Name is the registered component name used by fixtures.
	Name string `json:"component,omitempty" yaml:"component,omitempty"`

	// Component is the component value of a composite node. Its dynamic
	// type is what ByType matches.
	Component any `json:"-" yaml:"-"`

	// Props are the node's rendered properties.
	Props map[string]string `json:"props,omitempty" yaml:"props,omitempty"`

	// Children are rendered in order.
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty" validate:"dive"`
}

// Host creates a host node with the given tag and children.
func Host(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// Composite creates a composite node rendering component.
func Composite(component any, children ...*Node) *Node {
	return &Node{Component: component, Children: children}
}

// Walk visits root and its descendants in document order. Returning false
// from fn stops the walk.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if !fn(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// ByTag returns every host node under root whose tag equals tag, ignoring
// case, in document order.
func ByTag(root *Node, tag string) ([]*Node, error) {
	if root == nil {
		return nil, ErrNilTree
	}
	if tag == "" {
		return nil, ErrInvalidCriterion
	}

	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Tag != "" && strings.EqualFold(n.Tag, tag) {
			out = append(out, n)
		}
		return true
	})
	return out, nil
}

// ByType returns every composite node under root whose component has
// exactly type typ, in document order.
func ByType(root *Node, typ reflect.Type) ([]*Node, error) {
	if root == nil {
		return nil, ErrNilTree
	}
	if typ == nil {
		return nil, ErrInvalidCriterion
	}

	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Component != nil && reflect.TypeOf(n.Component) == typ {
			out = append(out, n)
		}
		return true
	})
	return out, nil
}
