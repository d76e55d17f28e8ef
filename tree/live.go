package tree

import (
	"reflect"
	"sync/atomic"
)

// Live holds the most recently rendered tree. A renderer publishes new
// snapshots with Render while waits query the current one from the frame
// goroutine. Published snapshots must not be mutated afterwards.
type Live struct {
	root    atomic.Pointer[Node]
	renders atomic.Int64
}

// NewLive creates a Live with nothing rendered yet.
func NewLive() *Live {
	return &Live{}
}

// Render publishes root as the current tree. A nil root clears it.
func (l *Live) Render(root *Node) {
	l.root.Store(root)
	l.renders.Add(1)
}

// Root returns the current tree, or nil if nothing is rendered.
func (l *Live) Root() *Node {
	return l.root.Load()
}

// Renders returns how many times Render has been called.
func (l *Live) Renders() int {
	return int(l.renders.Load())
}

// ByTag queries the current tree like ByTag. Before the first render the
// result is empty rather than an error, so waits keep polling.
func (l *Live) ByTag(tag string) ([]*Node, error) {
	if tag == "" {
		return nil, ErrInvalidCriterion
	}
	root := l.root.Load()
	if root == nil {
		return nil, nil
	}
	return ByTag(root, tag)
}

// ByType queries the current tree like ByType, with the same empty result
// before the first render.
func (l *Live) ByType(typ reflect.Type) ([]*Node, error) {
	if typ == nil {
		return nil, ErrInvalidCriterion
	}
	root := l.root.Load()
	if root == nil {
		return nil, nil
	}
	return ByType(root, typ)
}
