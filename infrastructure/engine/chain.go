// ABOUTME: Engine selection and chaining
// ABOUTME: Chain tries engines in order and returns the first article found

package engine

import (
	"fmt"
	"net/url"

	"readerview/core/domain"
	"readerview/core/interfaces"
	"readerview/infrastructure/engine/readability"
	"readerview/infrastructure/engine/trafilatura"

	"golang.org/x/net/html"
)

// Chain is an ExtractionEngine that asks each engine in turn.
type Chain []interfaces.ExtractionEngine

// Extract gives every engine its own copy of doc, since engines may mutate it.
func (c Chain) Extract(doc *html.Node, pageURL *url.URL) (*domain.Extraction, error) {
	var firstErr error
	for i, e := range c {
		input := doc
		if i < len(c)-1 {
			input = Clone(doc)
		}
		ext, err := e.Extract(input, pageURL)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ext != nil {
			return ext, nil
		}
	}
	return nil, firstErr
}

// New returns the engine registered under name: "readability",
// "trafilatura" or "chain".
func New(name string) (interfaces.ExtractionEngine, error) {
	switch name {
	case "", "readability":
		return readability.NewEngine(), nil
	case "trafilatura":
		return trafilatura.NewEngine(), nil
	case "chain":
		return Chain{readability.NewEngine(), trafilatura.NewEngine()}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}

// Clone returns a deep copy of n.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}
