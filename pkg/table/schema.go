package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// field is one registered row field with its accessors and locator.
type field[R any] struct {
	id         string
	loc        CellLocator
	collection bool
	order      int

	getOne  func(*R) *Cell
	setOne  func(*R, *Cell) error
	getMany func(*R) []Cell
	setMany func(*R, []Cell) error
}

func (f *field[R]) populated(r *R) bool {
	if f.collection {
		return f.getMany(r) != nil
	}
	return f.getOne(r) != nil
}

// copyTo moves the field value of src into dst.
func (f *field[R]) copyTo(dst, src *R) error {
	if f.collection {
		return f.setMany(dst, f.getMany(src))
	}
	return f.setOne(dst, f.getOne(src))
}

// probe checks that a fresh row leaves the field unset and that the field
// keeps a probe value once set.
func (f *field[R]) probe() error {
	row := new(R)
	if f.populated(row) {
		return fmt.Errorf("%w: field %q is already set on a fresh row", ErrBinding, f.id)
	}
	var err error
	if f.collection {
		err = f.setMany(row, []Cell{})
	} else {
		err = f.setOne(row, &Cell{})
	}
	if err != nil {
		return fmt.Errorf("field %q rejected probe value: %w", f.id, err)
	}
	if !f.populated(row) {
		return fmt.Errorf("%w: field %q does not keep the values written to it", ErrBinding, f.id)
	}
	return nil
}

// SchemaBuilder registers the fields of row type R.
type SchemaBuilder[R any] struct {
	locators TableLocators
	fields   []*field[R]
	errs     []error
}

// NewSchema starts a schema for row type R.
func NewSchema[R any](locators TableLocators) *SchemaBuilder[R] {
	return &SchemaBuilder[R]{locators: locators}
}

// Cell registers a single-cell field through a pointer to the row's field.
func (b *SchemaBuilder[R]) Cell(id string, ptr func(*R) **Cell, loc CellLocator) *SchemaBuilder[R] {
	if ptr == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q has no accessor", ErrBinding, id))
		return b
	}
	return b.add(&field[R]{
		id:  id,
		loc: loc,
		getOne: func(r *R) *Cell {
			if p := ptr(r); p != nil {
				return *p
			}
			return nil
		},
		setOne: func(r *R, c *Cell) error {
			p := ptr(r)
			if p == nil {
				return fmt.Errorf("%w: field %q accessor returned nil", ErrBinding, id)
			}
			*p = c
			return nil
		},
	})
}

// Cells registers a collection field through a pointer to the row's field.
func (b *SchemaBuilder[R]) Cells(id string, ptr func(*R) *[]Cell, loc CellLocator) *SchemaBuilder[R] {
	if ptr == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q has no accessor", ErrBinding, id))
		return b
	}
	return b.add(&field[R]{
		id:         id,
		loc:        loc,
		collection: true,
		getMany: func(r *R) []Cell {
			if p := ptr(r); p != nil {
				return *p
			}
			return nil
		},
		setMany: func(r *R, c []Cell) error {
			p := ptr(r)
			if p == nil {
				return fmt.Errorf("%w: field %q accessor returned nil", ErrBinding, id)
			}
			*p = c
			return nil
		},
	})
}

// CellFunc registers a single-cell field through a getter and setter.
func (b *SchemaBuilder[R]) CellFunc(id string, get func(*R) *Cell, set func(*R, *Cell), loc CellLocator) *SchemaBuilder[R] {
	if get == nil || set == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q needs both a getter and a setter", ErrBinding, id))
		return b
	}
	return b.add(&field[R]{
		id:     id,
		loc:    loc,
		getOne: get,
		setOne: func(r *R, c *Cell) error { set(r, c); return nil },
	})
}

// CellsFunc registers a collection field through a getter and setter.
func (b *SchemaBuilder[R]) CellsFunc(id string, get func(*R) []Cell, set func(*R, []Cell), loc CellLocator) *SchemaBuilder[R] {
	if get == nil || set == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q needs both a getter and a setter", ErrBinding, id))
		return b
	}
	return b.add(&field[R]{
		id:         id,
		loc:        loc,
		collection: true,
		getMany:    get,
		setMany:    func(r *R, c []Cell) error { set(r, c); return nil },
	})
}

func (b *SchemaBuilder[R]) add(f *field[R]) *SchemaBuilder[R] {
	f.order = len(b.fields)
	b.fields = append(b.fields, f)
	return b
}

// Build validates the registration and returns the schema.
func (b *SchemaBuilder[R]) Build() (*Schema[R], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if err := b.locators.validate(); err != nil {
		return nil, err
	}

	s := &Schema[R]{
		locators:   b.locators,
		fields:     b.fields,
		byID:       make(map[string]*field[R], len(b.fields)),
		partitions: make(map[string]*partition[R]),
	}
	seen := make(map[string]bool)
	for _, f := range b.fields {
		if f.id == "" {
			return nil, fmt.Errorf("%w: field at position %d has no id", ErrConfiguration, f.order)
		}
		if _, dup := s.byID[f.id]; dup {
			return nil, fmt.Errorf("%w: field %q registered twice", ErrConfiguration, f.id)
		}
		if err := f.loc.validate(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.id, err)
		}
		if err := f.probe(); err != nil {
			return nil, err
		}
		s.byID[f.id] = f
		if !seen[f.loc.Section] {
			seen[f.loc.Section] = true
			s.sections = append(s.sections, f.loc.Section)
		}
	}
	return s, nil
}

// MustBuild is like Build but panics on error. It suits package-level schema
// variables.
func (b *SchemaBuilder[R]) MustBuild() *Schema[R] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Schema is the validated cell locator registry of row type R. It is safe
// for concurrent use.
type Schema[R any] struct {
	locators TableLocators
	fields   []*field[R]
	byID     map[string]*field[R]
	sections []string

	mu         sync.RWMutex
	partitions map[string]*partition[R]
}

// partition is a field subset grouped by section, in registration order.
type partition[R any] struct {
	sections []sectionPart[R]
}

type sectionPart[R any] struct {
	name   string
	fields []*field[R]
}

// TableLocators returns the table-level locators.
func (s *Schema[R]) TableLocators() TableLocators {
	return s.locators
}

// Fields returns the registered field ids in registration order.
func (s *Schema[R]) Fields() []string {
	ids := make([]string, len(s.fields))
	for i, f := range s.fields {
		ids[i] = f.id
	}
	return ids
}

// Sections returns the section names in order of first registration.
func (s *Schema[R]) Sections() []string {
	return append([]string(nil), s.sections...)
}

// IsCollection reports whether the field holds many cells.
func (s *Schema[R]) IsCollection(id string) (bool, error) {
	f, err := s.lookup(id)
	if err != nil {
		return false, err
	}
	return f.collection, nil
}

func (s *Schema[R]) lookup(id string) (*field[R], error) {
	f, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: no cell locator for field %q", ErrConfiguration, id)
	}
	return f, nil
}

// FieldLocator is the locator of one field in a RowLocators view.
type FieldLocator struct {
	Field      string
	Collection bool
	CellLocator
}

// SectionLocator lists the field locators of one section.
type SectionLocator struct {
	Name   string
	Fields []FieldLocator
}

// RowLocators is a field subset of a schema grouped by section.
type RowLocators struct {
	Sections []SectionLocator
}

// Locators returns the locators of the requested fields grouped by section.
// No fields means every field.
func (s *Schema[R]) Locators(fields ...string) (RowLocators, error) {
	p, err := s.partition(fields)
	if err != nil {
		return RowLocators{}, err
	}
	out := RowLocators{Sections: make([]SectionLocator, 0, len(p.sections))}
	for _, sec := range p.sections {
		sl := SectionLocator{Name: sec.name}
		for _, f := range sec.fields {
			sl.Fields = append(sl.Fields, FieldLocator{Field: f.id, Collection: f.collection, CellLocator: f.loc})
		}
		out.Sections = append(out.Sections, sl)
	}
	return out, nil
}

func (s *Schema[R]) partition(ids []string) (*partition[R], error) {
	selected, err := s.selectFields(ids)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(selected))
	for i, f := range selected {
		keys[i] = f.id
	}
	key := strings.Join(keys, "\x00")

	s.mu.RLock()
	p, ok := s.partitions[key]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	p = &partition[R]{}
	index := make(map[string]int)
	for _, f := range selected {
		i, ok := index[f.loc.Section]
		if !ok {
			i = len(p.sections)
			index[f.loc.Section] = i
			p.sections = append(p.sections, sectionPart[R]{name: f.loc.Section})
		}
		p.sections[i].fields = append(p.sections[i].fields, f)
	}

	s.mu.Lock()
	s.partitions[key] = p
	s.mu.Unlock()
	return p, nil
}

// selectFields resolves ids to fields in registration order, dropping
// duplicates.
func (s *Schema[R]) selectFields(ids []string) ([]*field[R], error) {
	if len(ids) == 0 {
		return s.fields, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, err := s.lookup(id); err != nil {
			return nil, err
		}
		want[id] = true
	}
	out := make([]*field[R], 0, len(want))
	for _, f := range s.fields {
		if want[f.id] {
			out = append(out, f)
		}
	}
	return out, nil
}

// insertionOrder returns the fields with an insertion binding ordered by
// priority, ties broken by registration order.
func (s *Schema[R]) insertionOrder() []*field[R] {
	var out []*field[R]
	for _, f := range s.fields {
		if f.loc.Insert != nil {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].loc.Insert.Priority < out[j].loc.Insert.Priority
	})
	return out
}

// merge folds the fields of src that are unset in dst into dst.
func (s *Schema[R]) merge(dst, src *R) error {
	for _, f := range s.fields {
		if f.populated(dst) || !f.populated(src) {
			continue
		}
		if err := f.copyTo(dst, src); err != nil {
			return err
		}
	}
	return nil
}
