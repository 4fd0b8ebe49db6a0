package config

import (
	"errors"
	"fmt"

	"github.com/entrhq/gridmap/pkg/table"
)

// TableDef declares a table and its row fields. Locators are written in the
// "by=value" form accepted by table.ParseLocator, e.g. "xpath=.//td[2]" or
// "css=table#users".
type TableDef struct {
	// URL is the page the table lives on when read through a browser
	URL string `yaml:"url,omitempty"`

	Container string                `yaml:"container"`
	Rows      string                `yaml:"rows"`
	HeaderRow string                `yaml:"header_row,omitempty"`
	Sections  map[string]SectionDef `yaml:"sections,omitempty"`
	Fields    []FieldDef            `yaml:"fields"`
}

// SectionDef overrides the row locators of one section.
type SectionDef struct {
	Rows      string `yaml:"rows"`
	HeaderRow string `yaml:"header_row,omitempty"`
}

// FieldDef declares one row field.
type FieldDef struct {
	ID      string          `yaml:"id"`
	Kind    table.FieldKind `yaml:"kind,omitempty"`
	Cell    string          `yaml:"cell,omitempty"`
	Text    string          `yaml:"text,omitempty"`
	Header  string          `yaml:"header,omitempty"`
	Section string          `yaml:"section,omitempty"`
	Insert  *InsertDef      `yaml:"insert,omitempty"`
	Filter  *ComponentDef   `yaml:"filter,omitempty"`
}

// ComponentDef refers to a registered component.
type ComponentDef struct {
	Type    string `yaml:"type"`
	Subtype string `yaml:"subtype,omitempty"`
}

// InsertDef binds a field to an insertion component.
type InsertDef struct {
	ComponentDef `yaml:",inline"`
	Priority     int `yaml:"priority,omitempty"`
}

// Locators compiles the table level locators.
func (d TableDef) Locators() (table.TableLocators, error) {
	var errs []error
	parse := func(what, s string) table.Locator {
		loc, err := table.ParseLocator(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
		return loc
	}

	locs := table.TableLocators{
		Container: parse("container", d.Container),
		Rows:      parse("rows", d.Rows),
		HeaderRow: parse("header_row", d.HeaderRow),
	}
	if len(d.Sections) > 0 {
		locs.Sections = make(map[string]table.SectionLocators, len(d.Sections))
		for name, s := range d.Sections {
			locs.Sections[name] = table.SectionLocators{
				Rows:      parse("sections."+name+".rows", s.Rows),
				HeaderRow: parse("sections."+name+".header_row", s.HeaderRow),
			}
		}
	}
	return locs, errors.Join(errs...)
}

// CellLocator compiles the field's locators and bindings.
func (f FieldDef) CellLocator() (table.CellLocator, error) {
	var errs []error
	parse := func(what, s string) table.Locator {
		loc, err := table.ParseLocator(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q %s: %w", f.ID, what, err))
		}
		return loc
	}

	loc := table.CellLocator{
		Cell:    parse("cell", f.Cell),
		Text:    parse("text", f.Text),
		Header:  parse("header", f.Header),
		Section: f.Section,
	}
	if f.Insert != nil {
		loc.Insert = table.InsertComponent(table.ComponentType(f.Insert.Type), f.Insert.Subtype, f.Insert.Priority)
	}
	if f.Filter != nil {
		loc.Filter = table.FilterComponent(table.ComponentType(f.Filter.Type), f.Filter.Subtype)
	}
	return loc, errors.Join(errs...)
}

// Schema compiles the definition into a Record schema.
func (d TableDef) Schema() (*table.Schema[table.Record], error) {
	locs, err := d.Locators()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", table.ErrConfiguration, err)
	}

	fields := make([]table.RecordField, 0, len(d.Fields))
	for _, f := range d.Fields {
		loc, err := f.CellLocator()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", table.ErrConfiguration, err)
		}
		fields = append(fields, table.RecordField{ID: f.ID, Kind: f.Kind, Locator: loc})
	}
	return table.RecordSchema(locs, fields)
}
