package table

import (
	"fmt"
	"strings"
)

// How names the strategy a Locator uses to find elements.
type How string

const (
	ByCSS   How = "css"
	ByXPath How = "xpath"
	ByID    How = "id"
	ByName  How = "name"
	ByTag   How = "tag"
	ByClass How = "class"
)

// Locator finds one or more elements relative to a scope element.
// The zero Locator refers to the scope element itself.
type Locator struct {
	By    How    `yaml:"by" json:"by"`
	Value string `yaml:"value" json:"value"`
}

// CSS returns a CSS selector locator.
func CSS(selector string) Locator { return Locator{By: ByCSS, Value: selector} }

// XPath returns an XPath locator. Relative expressions (".//td") are
// evaluated against the scope element.
func XPath(expr string) Locator { return Locator{By: ByXPath, Value: expr} }

// ID returns a locator matching the element id attribute.
func ID(id string) Locator { return Locator{By: ByID, Value: id} }

// Name returns a locator matching the element name attribute.
func Name(name string) Locator { return Locator{By: ByName, Value: name} }

// Tag returns a locator matching elements by tag name.
func Tag(tag string) Locator { return Locator{By: ByTag, Value: tag} }

// Class returns a locator matching elements carrying a CSS class.
func Class(class string) Locator { return Locator{By: ByClass, Value: class} }

// IsZero reports whether the locator refers to the scope element itself.
func (l Locator) IsZero() bool {
	return l.Value == ""
}

// Validate checks that the locator uses a known strategy.
func (l Locator) Validate() error {
	if l.IsZero() {
		return nil
	}
	switch l.By {
	case ByCSS, ByXPath, ByID, ByName, ByTag, ByClass:
		return nil
	default:
		return fmt.Errorf("%w: unknown locator strategy %q", ErrConfiguration, l.By)
	}
}

func (l Locator) String() string {
	if l.IsZero() {
		return "self"
	}
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

// ParseLocator parses the "by=value" form produced by String. A value
// without a known strategy prefix is an XPath when it starts with "/", "." or
// "(" and a CSS selector otherwise. The empty string and "self" parse to the
// zero Locator.
func ParseLocator(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "self" {
		return Locator{}, nil
	}
	if by, value, ok := strings.Cut(s, "="); ok {
		loc := Locator{By: How(strings.ToLower(strings.TrimSpace(by))), Value: strings.TrimSpace(value)}
		if loc.Validate() == nil {
			if loc.IsZero() {
				return Locator{}, fmt.Errorf("%w: locator %q has no value", ErrConfiguration, s)
			}
			return loc, nil
		}
	}
	switch s[0] {
	case '/', '.', '(':
		return XPath(s), nil
	default:
		return CSS(s), nil
	}
}

// SectionLocators locates the rows and header row of one table section.
type SectionLocators struct {
	Rows      Locator `yaml:"rows" json:"rows"`
	HeaderRow Locator `yaml:"header_row" json:"header_row"`
}

// TableLocators locates a table and its rows. A section without an entry in
// Sections uses Rows and HeaderRow.
type TableLocators struct {
	Container Locator
	Rows      Locator
	HeaderRow Locator
	Sections  map[string]SectionLocators
}

func (t TableLocators) validate() error {
	if t.Container.IsZero() {
		return fmt.Errorf("%w: table container locator is required", ErrConfiguration)
	}
	if t.Rows.IsZero() {
		return fmt.Errorf("%w: table rows locator is required", ErrConfiguration)
	}
	for _, l := range []Locator{t.Container, t.Rows, t.HeaderRow} {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	for name, s := range t.Sections {
		if err := s.Rows.Validate(); err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		if err := s.HeaderRow.Validate(); err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
	}
	return nil
}

// rows returns the row locator for a section.
func (t TableLocators) rows(section string) Locator {
	if s, ok := t.Sections[section]; ok && !s.Rows.IsZero() {
		return s.Rows
	}
	return t.Rows
}

// headerRow returns the header row locator for a section.
func (t TableLocators) headerRow(section string) Locator {
	if s, ok := t.Sections[section]; ok && !s.HeaderRow.IsZero() {
		return s.HeaderRow
	}
	return t.HeaderRow
}

// CellLocator binds one row field to the locators needed to find, read,
// write and filter its cell(s).
type CellLocator struct {
	// Cell finds the cell element(s) relative to a row. Zero means the row
	// element itself.
	Cell Locator

	// Text finds the text-bearing element inside a cell. Zero means the cell.
	Text Locator

	// Header finds the header cell relative to the section's header row.
	Header Locator

	// Section groups fields whose rows are located separately.
	Section string

	Insert *InsertBinding
	Filter *FilterBinding
}

func (c CellLocator) validate() error {
	for _, l := range []Locator{c.Cell, c.Text, c.Header} {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	if c.Insert != nil {
		if err := c.Insert.validate(); err != nil {
			return err
		}
	}
	if c.Filter != nil {
		if err := c.Filter.validate(); err != nil {
			return err
		}
	}
	return nil
}
