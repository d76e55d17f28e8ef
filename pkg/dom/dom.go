// Package dom lets scry waits poll HTML documents parsed with
// golang.org/x/net/html.
//
//	live := dom.NewLive()
//	go func() { live.Render(resp.Body) }()
//
//	form, err := scry.WaitForTag(ctx, frames, (*dom.Live).ByTag, live, "form",
//	    scry.Attempts(30),
//	).Await(ctx)
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"golang.org/x/net/html"
)

var (
	// ErrNilDocument is returned when a query is given no root.
	ErrNilDocument = errors.New("dom: nil document")

	// ErrEmptyTag is returned when a query is given an empty tag.
	ErrEmptyTag = errors.New("dom: empty tag")
)

// ByTag returns every element under root whose tag name equals tag, ignoring
// case, in document order.
func ByTag(root *html.Node, tag string) ([]*html.Node, error) {
	if root == nil {
		return nil, ErrNilDocument
	}
	if tag == "" {
		return nil, ErrEmptyTag
	}

	var out []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return out, nil
}

// Attr returns the value of the named attribute of n.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Live holds the most recently rendered document.
type Live struct {
	doc atomic.Pointer[html.Node]
}

// NewLive creates a Live with no document.
func NewLive() *Live {
	return &Live{}
}

// Render parses r and publishes it as the current document. On a parse
// error the previous document is kept.
func (l *Live) Render(r io.Reader) error {
	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	l.doc.Store(doc)
	return nil
}

// RenderString is Render for an in-memory document.
func (l *Live) RenderString(s string) error {
	return l.Render(strings.NewReader(s))
}

// Document returns the current document, or nil.
func (l *Live) Document() *html.Node {
	return l.doc.Load()
}

// ByTag queries the current document. Before the first render the result is
// empty so waits keep polling.
func (l *Live) ByTag(tag string) ([]*html.Node, error) {
	if tag == "" {
		return nil, ErrEmptyTag
	}
	doc := l.doc.Load()
	if doc == nil {
		return nil, nil
	}
	return ByTag(doc, tag)
}
