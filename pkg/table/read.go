package table

import (
	"fmt"
	"strings"
)

// ReadTable reads every row of the table. When fields are given only those
// fields are populated; the others stay nil.
func (t *Table[R]) ReadTable(fields ...string) ([]*R, error) {
	return t.read(fields, nil)
}

// ReadRange reads the rows from 1-based start (inclusive) to end
// (exclusive). A range selecting no rows yields an empty result.
func (t *Table[R]) ReadRange(start, end int, fields ...string) ([]*R, error) {
	return t.read(fields, &span{start: start, end: end})
}

// ReadRow reads the row identified by id.
func (t *Table[R]) ReadRow(id RowID, fields ...string) (*R, error) {
	p, err := t.schema.partition(fields)
	if err != nil {
		return nil, err
	}
	container, err := t.container()
	if err != nil {
		return nil, err
	}
	rows, index, err := t.locate(container, id)
	if err != nil {
		return nil, err
	}

	var acc *R
	for _, sec := range p.sections {
		partial, err := t.readRow(rows[sec.name][index], sec.fields)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", id, err)
		}
		if acc, err = t.fold(acc, partial); err != nil {
			return nil, err
		}
	}
	if acc == nil {
		acc = new(R)
	}
	return acc, nil
}

func (t *Table[R]) read(fields []string, rng *span) ([]*R, error) {
	p, err := t.schema.partition(fields)
	if err != nil {
		return nil, err
	}
	if len(p.sections) == 0 {
		return []*R{}, nil
	}

	container, err := t.container()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(p.sections))
	sets := make([][]Element, len(p.sections))
	for i, sec := range p.sections {
		rows, err := t.sectionRows(container, sec.name)
		if err != nil {
			return nil, err
		}
		if rng != nil {
			clipped := rng.clip(rows)
			if len(clipped) == 0 {
				t.log.Warnf("range [%d,%d) selects no rows of section %q (%d rows)", rng.start, rng.end, sec.name, len(rows))
			}
			rows = clipped
		}
		names[i] = sec.name
		sets[i] = rows
	}

	n, err := aligned(names, sets)
	if err != nil {
		return nil, err
	}

	out := make([]*R, 0, n)
	for i := 0; i < n; i++ {
		var acc *R
		for j, sec := range p.sections {
			partial, err := t.readRow(sets[j][i], sec.fields)
			if err != nil {
				return nil, fmt.Errorf("read row %d: %w", i, err)
			}
			if acc, err = t.fold(acc, partial); err != nil {
				return nil, err
			}
		}
		out = append(out, acc)
	}
	t.log.Debugf("read %d rows across %d sections", len(out), len(p.sections))
	return out, nil
}

// fold merges partial into acc. The first partial row becomes the
// accumulator; later ones only fill fields still unset.
func (t *Table[R]) fold(acc, partial *R) (*R, error) {
	if acc == nil {
		return partial, nil
	}
	if partial == nil {
		return acc, nil
	}
	if err := t.schema.merge(acc, partial); err != nil {
		return nil, err
	}
	return acc, nil
}

// readRow builds one partial row from a row element.
func (t *Table[R]) readRow(row Element, fields []*field[R]) (*R, error) {
	r := new(R)
	for _, f := range fields {
		if err := t.readField(r, row, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (t *Table[R]) readField(r *R, row Element, f *field[R]) error {
	if f.collection {
		els, err := t.findAll(row, f.loc.Cell)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.id, err)
		}
		cells := make([]Cell, 0, len(els))
		for _, el := range els {
			c, err := NewCell(t.driver, el, f.loc.Text)
			if err != nil {
				return fmt.Errorf("field %q: %w", f.id, err)
			}
			cells = append(cells, c)
		}
		return f.setMany(r, cells)
	}

	el, err := t.findOne(row, f.loc.Cell)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.id, err)
	}
	c, err := NewCell(t.driver, el, f.loc.Text)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.id, err)
	}
	return f.setOne(r, &c)
}

// locate finds the logical row id names. It returns the row elements of
// every schema section and the index of the row within them.
func (t *Table[R]) locate(container Element, id RowID) (map[string][]Element, int, error) {
	sections := t.schema.sections
	if len(sections) == 0 {
		sections = []string{""}
	}
	sets := make([][]Element, len(sections))
	for i, name := range sections {
		rows, err := t.sectionRows(container, name)
		if err != nil {
			return nil, 0, err
		}
		sets[i] = rows
	}
	n, err := aligned(sections, sets)
	if err != nil {
		return nil, 0, err
	}
	bySection := make(map[string][]Element, len(sections))
	for i, name := range sections {
		bySection[name] = sets[i]
	}

	if !id.byText {
		if id.index < 0 || id.index >= n {
			return nil, 0, fmt.Errorf("%w: row index %d, valid range is [0,%d)", ErrIndexOutOfRange, id.index, n)
		}
		return bySection, id.index, nil
	}

	for i := 0; i < n; i++ {
		var b strings.Builder
		for j := range sets {
			text, err := t.driver.RawText(sets[j][i])
			if err != nil {
				return nil, 0, fmt.Errorf("text of row %d: %w", i, err)
			}
			if j > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(text)
		}
		if id.matches(b.String()) {
			return bySection, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: no row among %d contains all of %q", ErrRowNotFound, n, id.criteria)
}

// aligned checks that every section yields the same number of rows.
func aligned(names []string, sets [][]Element) (int, error) {
	if len(sets) == 0 {
		return 0, nil
	}
	n := len(sets[0])
	for i := 1; i < len(sets); i++ {
		if len(sets[i]) != n {
			return 0, fmt.Errorf("%w: section %q has %d rows but section %q has %d",
				ErrConfiguration, names[i], len(sets[i]), names[0], n)
		}
	}
	return n, nil
}

func (t *Table[R]) container() (Element, error) {
	loc := t.schema.locators.Container
	c, err := t.driver.FindContainer(loc)
	if err != nil {
		return nil, fmt.Errorf("table container %s: %w", loc, err)
	}
	return c, nil
}

func (t *Table[R]) sectionRows(container Element, section string) ([]Element, error) {
	loc := t.schema.locators.rows(section)
	rows, err := t.driver.FindAll(container, loc)
	if err != nil {
		return nil, fmt.Errorf("rows %s of section %q: %w", loc, section, err)
	}
	return rows, nil
}

func (t *Table[R]) findOne(scope Element, loc Locator) (Element, error) {
	if loc.IsZero() {
		return scope, nil
	}
	el, err := t.driver.FindOne(scope, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	return el, nil
}

func (t *Table[R]) findAll(scope Element, loc Locator) ([]Element, error) {
	if loc.IsZero() {
		return []Element{scope}, nil
	}
	els, err := t.driver.FindAll(scope, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	return els, nil
}
