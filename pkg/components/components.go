// Package components provides the reusable cell components that table
// insertion and filter bindings resolve to, and the registry that maps
// component references to them.
package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/entrhq/gridmap/pkg/table"
)

// Actor is a table driver that can also interact with elements.
type Actor interface {
	table.Driver

	Click(el table.Element) error
	Fill(el table.Element, value string) error
	SelectOption(el table.Element, values ...string) error
	Checked(el table.Element) (bool, error)
}

// Stock component types.
const (
	Input    table.ComponentType = "input"
	Select   table.ComponentType = "select"
	Button   table.ComponentType = "button"
	Link     table.ComponentType = "link"
	Checkbox table.ComponentType = "checkbox"
)

// SubtypeSelf targets the cell element itself instead of a control inside it.
const SubtypeSelf = "self"

// Defaults returns a registry holding the stock components driven by a.
func Defaults(a Actor) *Registry {
	r := NewRegistry()

	r.RegisterInserter(Input, "", &InputInserter{Actor: a, Control: table.XPath(".//input")})
	r.RegisterInserter(Input, "textarea", &InputInserter{Actor: a, Control: table.XPath(".//textarea")})
	r.RegisterInserter(Input, SubtypeSelf, &InputInserter{Actor: a})
	r.RegisterInserter(Select, "", &SelectInserter{Actor: a, Control: table.XPath(".//select")})
	r.RegisterInserter(Select, SubtypeSelf, &SelectInserter{Actor: a})
	r.RegisterInserter(Button, "", &ClickInserter{Actor: a, Control: table.XPath(".//button")})
	r.RegisterInserter(Link, "", &ClickInserter{Actor: a, Control: table.XPath(".//a")})
	r.RegisterInserter(Checkbox, "", &CheckboxInserter{Actor: a, Control: table.XPath(".//input[@type='checkbox']")})

	r.RegisterFilterer(Input, "", &InputFilter{Actor: a, Control: table.XPath(".//input")})
	r.RegisterFilterer(Select, "", &SelectFilter{Actor: a, Control: table.XPath(".//select")})

	return r
}

// control locates the interactive element inside scope. A zero locator
// means scope itself.
func control(a Actor, scope table.Element, loc table.Locator) (table.Element, error) {
	if loc.IsZero() {
		return scope, nil
	}
	el, err := a.FindOne(scope, loc)
	if err != nil {
		return nil, fmt.Errorf("control %s: %w", loc, err)
	}
	return el, nil
}

// InputInserter fills a text control with a single value. No value clears it.
type InputInserter struct {
	Actor   Actor
	Control table.Locator
}

// Insert fills the control with the first value.
func (c *InputInserter) Insert(cell table.Element, values ...string) error {
	if len(values) > 1 {
		return fmt.Errorf("input accepts one value, got %d", len(values))
	}
	el, err := control(c.Actor, cell, c.Control)
	if err != nil {
		return err
	}
	value := ""
	if len(values) == 1 {
		value = values[0]
	}
	return c.Actor.Fill(el, value)
}

// SelectInserter selects options of a select control.
type SelectInserter struct {
	Actor   Actor
	Control table.Locator
}

// Insert selects the given options by value or label.
func (c *SelectInserter) Insert(cell table.Element, values ...string) error {
	if len(values) == 0 {
		return fmt.Errorf("select needs at least one option")
	}
	el, err := control(c.Actor, cell, c.Control)
	if err != nil {
		return err
	}
	return c.Actor.SelectOption(el, values...)
}

// ClickInserter clicks a control such as a button or link. Values are ignored.
type ClickInserter struct {
	Actor   Actor
	Control table.Locator
}

// Insert clicks the control.
func (c *ClickInserter) Insert(cell table.Element, _ ...string) error {
	el, err := control(c.Actor, cell, c.Control)
	if err != nil {
		return err
	}
	return c.Actor.Click(el)
}

// CheckboxInserter sets a checkbox to the boolean value given, or toggles it
// when no value is given.
type CheckboxInserter struct {
	Actor   Actor
	Control table.Locator
}

// Insert checks or unchecks the control, toggling it without a value.
func (c *CheckboxInserter) Insert(cell table.Element, values ...string) error {
	if len(values) > 1 {
		return fmt.Errorf("checkbox accepts one value, got %d", len(values))
	}
	el, err := control(c.Actor, cell, c.Control)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return c.Actor.Click(el)
	}

	want, err := strconv.ParseBool(strings.TrimSpace(values[0]))
	if err != nil {
		return fmt.Errorf("checkbox value %q: %w", values[0], err)
	}
	checked, err := c.Actor.Checked(el)
	if err != nil {
		return err
	}
	if checked == want {
		return nil
	}
	return c.Actor.Click(el)
}
