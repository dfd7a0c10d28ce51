// ABOUTME: Strips presentation attributes from extracted article markup
// ABOUTME: Keeps the source page's styling from leaking into the viewer

package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PresentationAttributes are removed from every element.
var PresentationAttributes = []string{"style", "class", "color", "bgcolor"}

// Sanitize parses fragment as the inner HTML of a <div> and returns it with
// every presentation attribute removed. Sanitize is idempotent.
func Sanitize(fragment string) (string, error) {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	SanitizeNode(container)

	return goquery.NewDocumentFromNode(container).Html()
}

// SanitizeNode removes presentation attributes from root and all of its
// descendant elements, in place.
func SanitizeNode(root *html.Node) {
	sel := goquery.NewDocumentFromNode(root).Selection
	sel = sel.AddSelection(sel.Find("*"))
	for _, attr := range PresentationAttributes {
		sel.RemoveAttr(attr)
	}
}

// Clean reports whether no element under root carries a presentation attribute.
func Clean(root *html.Node) bool {
	clean := true
	goquery.NewDocumentFromNode(root).Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range PresentationAttributes {
			if _, ok := s.Attr(attr); ok {
				clean = false
				return false
			}
		}
		return true
	})
	return clean
}

// activeElements never reach a rendered viewer page.
var activeElements = "script, noscript, iframe, frame, frameset, object, embed, applet, form, base, meta, link, style"

// Inert returns fragment sanitized and with scripting removed: active
// elements, event handler attributes and javascript: URLs. It is applied to
// articles that arrive from outside the service before they are rendered.
func Inert(fragment string) (string, error) {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	doc := goquery.NewDocumentFromNode(container)
	doc.Find(activeElements).Remove()
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		kept := node.Attr[:0]
		for _, a := range node.Attr {
			key := strings.ToLower(a.Key)
			if strings.HasPrefix(key, "on") {
				continue
			}
			if (key == "href" || key == "src" || key == "action" || key == "formaction" || key == "xlink:href") &&
				strings.HasPrefix(strings.ToLower(strings.TrimSpace(a.Val)), "javascript:") {
				continue
			}
			kept = append(kept, a)
		}
		node.Attr = kept
	})

	SanitizeNode(container)

	return doc.Html()
}
