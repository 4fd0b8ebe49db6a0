// Package htmldoc implements the table driver over a parsed, in-memory HTML
// document. It reads saved page snapshots without a browser and serves as a
// deterministic collaborator in tests.
//
// Locators are evaluated as XPath through htmlquery; CSS locators need a
// browser driver. Mutations (Fill, Click, SelectOption) edit the in-memory
// DOM and are recorded in an action journal.
package htmldoc

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/entrhq/gridmap/pkg/table"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node

	mu      sync.Mutex
	actions []Action
}

// Parse parses an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load parses the HTML file at path.
func Load(path string) (*Document, error) {
	root, err := htmlquery.LoadDoc(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return &Document{root: root}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render serializes the current state of the document.
func (d *Document) Render() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	if err := html.Render(&b, d.root); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return b.String(), nil
}

// FindContainer locates the first element matching loc anywhere in the document.
func (d *Document) FindContainer(loc table.Locator) (table.Element, error) {
	return d.FindOne(d.root, loc)
}

// FindAll locates every element under scope matching loc.
func (d *Document) FindAll(scope table.Element, loc table.Locator) ([]table.Element, error) {
	n, err := node(scope)
	if err != nil {
		return nil, err
	}
	expr, err := toXPath(loc)
	if err != nil {
		return nil, err
	}
	nodes, err := htmlquery.QueryAll(n, expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid xpath %q: %v", table.ErrConfiguration, expr, err)
	}
	out := make([]table.Element, len(nodes))
	for i, m := range nodes {
		out[i] = m
	}
	return out, nil
}

// FindOne locates the first element under scope matching loc.
func (d *Document) FindOne(scope table.Element, loc table.Locator) (table.Element, error) {
	n, err := node(scope)
	if err != nil {
		return nil, err
	}
	expr, err := toXPath(loc)
	if err != nil {
		return nil, err
	}
	found, err := htmlquery.Query(n, expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid xpath %q: %v", table.ErrConfiguration, expr, err)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: nothing matches %s under %s", table.ErrElementNotFound, loc, describe(n))
	}
	return found, nil
}

// Text returns the rendered text of an element: whitespace is collapsed,
// block boundaries become spaces and script-like content is skipped. Form
// controls report their current value.
func (d *Document) Text(el table.Element) (string, error) {
	n, err := node(el)
	if err != nil {
		return "", err
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "input":
			return htmlquery.SelectAttr(n, "value"), nil
		case "select":
			return selectedText(n), nil
		}
	}
	return renderedText(n), nil
}

// RawText returns all descendant text of an element.
func (d *Document) RawText(el table.Element) (string, error) {
	n, err := node(el)
	if err != nil {
		return "", err
	}
	return htmlquery.InnerText(n), nil
}

func node(el table.Element) (*html.Node, error) {
	n, ok := el.(*html.Node)
	if !ok || n == nil {
		return nil, fmt.Errorf("htmldoc: element %T is not an HTML node", el)
	}
	return n, nil
}

// describe names a node for error messages and the action journal.
func describe(n *html.Node) string {
	switch n.Type {
	case html.DocumentNode:
		return "document"
	case html.ElementNode:
		var b strings.Builder
		b.WriteString(n.Data)
		if id := htmlquery.SelectAttr(n, "id"); id != "" {
			b.WriteString("#" + id)
		}
		if name := htmlquery.SelectAttr(n, "name"); name != "" {
			fmt.Fprintf(&b, "[name=%s]", name)
		}
		return b.String()
	default:
		return "node"
	}
}
