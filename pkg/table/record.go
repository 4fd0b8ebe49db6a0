package table

import "fmt"

// FieldKind is the shape of a declaratively defined Record field.
type FieldKind string

const (
	// KindCell holds exactly one cell.
	KindCell FieldKind = "cell"
	// KindCells holds many cells.
	KindCells FieldKind = "cells"
)

// Record is a row type whose fields are defined at runtime, typically from
// a configuration file.
type Record struct {
	cells map[string]*Cell
	lists map[string][]Cell
}

// Cell returns the single-cell field id, or nil when unset.
func (r *Record) Cell(id string) *Cell {
	return r.cells[id]
}

// Cells returns the collection field id, or nil when unset.
func (r *Record) Cells(id string) []Cell {
	return r.lists[id]
}

// SetCell sets a single-cell field. A nil cell unsets it.
func (r *Record) SetCell(id string, c *Cell) {
	if c == nil {
		delete(r.cells, id)
		return
	}
	if r.cells == nil {
		r.cells = make(map[string]*Cell)
	}
	r.cells[id] = c
}

// SetCells sets a collection field. A nil slice unsets it.
func (r *Record) SetCells(id string, cells []Cell) {
	if cells == nil {
		delete(r.lists, id)
		return
	}
	if r.lists == nil {
		r.lists = make(map[string][]Cell)
	}
	r.lists[id] = cells
}

// Text returns the text of a single-cell field.
func (r *Record) Text(id string) string {
	return CellText(r.cells[id])
}

// Values returns the populated fields as text: a string for single cells and
// a []string for collections.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.cells)+len(r.lists))
	for id, c := range r.cells {
		out[id] = c.Text
	}
	for id, cells := range r.lists {
		out[id] = Texts(cells)
	}
	return out
}

// RecordField declares one Record field.
type RecordField struct {
	ID      string
	Kind    FieldKind
	Locator CellLocator
}

// RecordSchema builds a Record schema from field declarations.
func RecordSchema(locators TableLocators, fields []RecordField) (*Schema[Record], error) {
	b := NewSchema[Record](locators)
	for _, f := range fields {
		id := f.ID
		switch f.Kind {
		case KindCell, "":
			b.CellFunc(id,
				func(r *Record) *Cell { return r.Cell(id) },
				func(r *Record, c *Cell) { r.SetCell(id, c) },
				f.Locator)
		case KindCells:
			b.CellsFunc(id,
				func(r *Record) []Cell { return r.Cells(id) },
				func(r *Record, c []Cell) { r.SetCells(id, c) },
				f.Locator)
		default:
			return nil, fmt.Errorf("%w: field %q has kind %q, want %q or %q", ErrInvalidFieldType, id, f.Kind, KindCell, KindCells)
		}
	}
	return b.Build()
}
