package htmldoc

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// renderedText approximates what a browser renders for n.
func renderedText(n *html.Node) string {
	var b strings.Builder
	writeText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if isSkippedElement(tag) {
			return
		}
		switch tag {
		case "br":
			b.WriteByte(' ')
			return
		case "select":
			b.WriteString(" " + selectedText(n) + " ")
			return
		case "input":
			if showsValue(n) {
				b.WriteString(" " + attr(n, "value") + " ")
			}
			return
		}
		if isBlockElement(tag) {
			b.WriteByte(' ')
			defer b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, b)
	}
}

// selectedText returns the text of the selected options of a select element,
// or of its first option when none is marked.
func selectedText(sel *html.Node) string {
	opts := optionNodes(sel)
	var texts []string
	for _, o := range opts {
		if hasAttr(o, "selected") {
			texts = append(texts, renderedText(o))
		}
	}
	if len(texts) == 0 && len(opts) > 0 && !hasAttr(sel, "multiple") {
		return renderedText(opts[0])
	}
	return strings.Join(texts, ", ")
}

func optionNodes(sel *html.Node) []*html.Node {
	return htmlquery.Find(sel, ".//option")
}

// showsValue reports whether an input displays its value as text.
func showsValue(n *html.Node) bool {
	switch strings.ToLower(attr(n, "type")) {
	case "hidden", "checkbox", "radio", "file", "image":
		return false
	}
	return true
}

// isSkippedElement returns true for elements whose content is never rendered
func isSkippedElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "head":
		return true
	}
	return false
}

// isBlockElement returns true for elements that break the text flow
func isBlockElement(tagName string) bool {
	blocks := map[string]bool{
		"div":        true,
		"p":          true,
		"section":    true,
		"article":    true,
		"header":     true,
		"footer":     true,
		"nav":        true,
		"main":       true,
		"aside":      true,
		"h1":         true,
		"h2":         true,
		"h3":         true,
		"h4":         true,
		"h5":         true,
		"h6":         true,
		"ul":         true,
		"ol":         true,
		"li":         true,
		"table":      true,
		"thead":      true,
		"tbody":      true,
		"tfoot":      true,
		"tr":         true,
		"td":         true,
		"th":         true,
		"form":       true,
		"fieldset":   true,
		"blockquote": true,
		"pre":        true,
		"option":     true,
	}
	return blocks[tagName]
}
