package htmldoc

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/entrhq/gridmap/pkg/table"
)

// ActionKind names a recorded mutation.
type ActionKind string

const (
	ActionClick  ActionKind = "click"
	ActionFill   ActionKind = "fill"
	ActionSelect ActionKind = "select"
)

// Action is one recorded mutation of the document.
type Action struct {
	Kind    ActionKind
	Element string
	Values  []string
}

func (a Action) String() string {
	if len(a.Values) == 0 {
		return fmt.Sprintf("%s %s", a.Kind, a.Element)
	}
	return fmt.Sprintf("%s %s %q", a.Kind, a.Element, a.Values)
}

// Actions returns the mutations applied so far, oldest first.
func (d *Document) Actions() []Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.actions)
}

// ResetActions clears the action journal.
func (d *Document) ResetActions() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = nil
}

func (d *Document) record(kind ActionKind, n *html.Node, values ...string) {
	d.actions = append(d.actions, Action{Kind: kind, Element: describe(n), Values: values})
}

// Click clicks an element. Checkboxes toggle, radio buttons and options
// become selected; other elements are only recorded.
func (d *Document) Click(el table.Element) error {
	n, err := node(el)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case n.Data == "input" && attr(n, "type") == "checkbox":
		if hasAttr(n, "checked") {
			removeAttr(n, "checked")
		} else {
			setAttr(n, "checked", "")
		}
	case n.Data == "input" && attr(n, "type") == "radio":
		setAttr(n, "checked", "")
	case n.Data == "option":
		if sel := enclosingSelect(n); sel != nil && !hasAttr(sel, "multiple") {
			for _, o := range optionNodes(sel) {
				removeAttr(o, "selected")
			}
		}
		setAttr(n, "selected", "")
	}
	d.record(ActionClick, n)
	return nil
}

// Fill replaces the value of an input or the content of any other element.
func (d *Document) Fill(el table.Element, value string) error {
	n, err := node(el)
	if err != nil {
		return err
	}
	if n.Type != html.ElementNode {
		return fmt.Errorf("htmldoc: cannot fill %s", describe(n))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch n.Data {
	case "input":
		setAttr(n, "value", value)
	case "select":
		return fmt.Errorf("htmldoc: cannot fill %s, select an option instead", describe(n))
	default:
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			c = next
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	}
	d.record(ActionFill, n, value)
	return nil
}

// SelectOption selects the options of a select element whose value or text
// is among values. Every value must match an option.
func (d *Document) SelectOption(el table.Element, values ...string) error {
	n, err := node(el)
	if err != nil {
		return err
	}
	if n.Data != "select" {
		return fmt.Errorf("htmldoc: %s is not a select element", describe(n))
	}
	if len(values) > 1 && !hasAttr(n, "multiple") {
		return fmt.Errorf("htmldoc: %s accepts a single option, got %d", describe(n), len(values))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	opts := optionNodes(n)
	matched := make(map[string]bool, len(values))
	hits := make([]bool, len(opts))
	for i, o := range opts {
		v := attr(o, "value")
		text := renderedText(o)
		if !hasAttr(o, "value") {
			v = text
		}
		for _, want := range values {
			if want == v || want == text {
				matched[want] = true
				hits[i] = true
			}
		}
	}
	for _, want := range values {
		if !matched[want] {
			return fmt.Errorf("%w: option %q in %s", table.ErrElementNotFound, want, describe(n))
		}
	}

	for i, o := range opts {
		if hits[i] {
			setAttr(o, "selected", "")
		} else {
			removeAttr(o, "selected")
		}
	}
	d.record(ActionSelect, n, values...)
	return nil
}

func enclosingSelect(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "select" {
			return p
		}
	}
	return nil
}

// Checked reports whether a checkbox or radio button is checked.
func (d *Document) Checked(el table.Element) (bool, error) {
	n, err := node(el)
	if err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return hasAttr(n, "checked"), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return strings.EqualFold(a.Key, key)
	})
}
