package table

import "fmt"

// InsertCell writes values into the first cell of field in the row named
// by id.
func (t *Table[R]) InsertCell(id RowID, fieldID string, values ...string) error {
	return t.InsertCellAt(id, fieldID, 1, values...)
}

// InsertCellAt writes values into the cellIndex-th (1-based) cell of field
// in the row named by id, through the field's insertion binding.
func (t *Table[R]) InsertCellAt(id RowID, fieldID string, cellIndex int, values ...string) error {
	f, err := t.schema.lookup(fieldID)
	if err != nil {
		return err
	}
	ins, err := t.inserter(f)
	if err != nil {
		return err
	}

	container, err := t.container()
	if err != nil {
		return err
	}
	rows, index, err := t.locate(container, id)
	if err != nil {
		return err
	}
	return t.insertAt(ins, f, rows[f.loc.Section][index], cellIndex, values)
}

// InsertRow writes every field of data that carries an insertion binding
// into the row named by id, lowest priority first. A nil single-cell field
// is skipped; a collection field is written cell by cell at successive
// indices.
func (t *Table[R]) InsertRow(id RowID, data *R) error {
	if data == nil {
		return fmt.Errorf("%w: no row data to insert", ErrBinding)
	}

	type op struct {
		f      *field[R]
		ins    Inserter
		index  int
		values []string
	}
	var ops []op
	for _, f := range t.schema.insertionOrder() {
		if !f.populated(data) {
			continue
		}
		ins, err := t.inserter(f)
		if err != nil {
			return err
		}
		if f.collection {
			for i, c := range f.getMany(data) {
				ops = append(ops, op{f: f, ins: ins, index: i + 1, values: cellValues(&c)})
			}
			continue
		}
		ops = append(ops, op{f: f, ins: ins, index: 1, values: cellValues(f.getOne(data))})
	}
	if len(ops) == 0 {
		return nil
	}

	container, err := t.container()
	if err != nil {
		return err
	}
	_, index, err := t.locate(container, id)
	if err != nil {
		return err
	}

	// Insertions may re-render the table, so the row is located again by
	// index before every write.
	for _, o := range ops {
		container, err := t.container()
		if err != nil {
			return err
		}
		rows, _, err := t.locate(container, Index(index))
		if err != nil {
			return err
		}
		if err := t.insertAt(o.ins, o.f, rows[o.f.loc.Section][index], o.index, o.values); err != nil {
			return err
		}
	}
	t.log.Debugf("inserted %d values into %s", len(ops), id)
	return nil
}

func (t *Table[R]) insertAt(ins Inserter, f *field[R], row Element, cellIndex int, values []string) error {
	cells, err := t.findAll(row, f.loc.Cell)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.id, err)
	}
	if len(cells) == 0 {
		return fmt.Errorf("%w: no cells of field %q match %s", ErrInvalidCellIndex, f.id, f.loc.Cell)
	}
	if cellIndex < 1 || cellIndex > len(cells) {
		return fmt.Errorf("%w: cell index %d of field %q, valid range is [1,%d]", ErrInvalidCellIndex, cellIndex, f.id, len(cells))
	}
	if err := ins.Insert(cells[cellIndex-1], values...); err != nil {
		return fmt.Errorf("insert into field %q cell %d: %w", f.id, cellIndex, err)
	}
	return nil
}

func (t *Table[R]) inserter(f *field[R]) (Inserter, error) {
	if f.loc.Insert == nil {
		return nil, fmt.Errorf("%w: field %q", ErrNoInsertionMethod, f.id)
	}
	ins, err := f.loc.Insert.resolve(t.services)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.id, err)
	}
	if ins == nil {
		return nil, fmt.Errorf("%w: field %q resolved to no inserter", ErrNoInsertionMethod, f.id)
	}
	return ins, nil
}

// cellValues returns the values a cell contributes to a row insertion.
func cellValues(c *Cell) []string {
	if c == nil || c.Text == "" {
		return nil
	}
	return []string{c.Text}
}
