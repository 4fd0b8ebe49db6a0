package table

import "fmt"

// Filter filters the table through the header cell of field, using the
// field's filter binding.
func (t *Table[R]) Filter(fieldID string, strategy Strategy, values ...string) error {
	f, err := t.schema.lookup(fieldID)
	if err != nil {
		return err
	}
	if f.loc.Filter == nil {
		return fmt.Errorf("%w: field %q", ErrNoFilterMethod, f.id)
	}
	flt, err := f.loc.Filter.resolve(t.services)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.id, err)
	}
	if flt == nil {
		return fmt.Errorf("%w: field %q resolved to no filterer", ErrNoFilterMethod, f.id)
	}

	header, err := t.headerCell(f)
	if err != nil {
		return err
	}
	if err := flt.Filter(header, strategy, values...); err != nil {
		return fmt.Errorf("filter field %q: %w", f.id, err)
	}
	t.log.Debugf("filtered field %q with %s %q", f.id, strategy, values)
	return nil
}

// Sort sorts the table through the header cell of field using the sort
// hook set with WithSorter.
func (t *Table[R]) Sort(fieldID string, strategy Strategy) error {
	f, err := t.schema.lookup(fieldID)
	if err != nil {
		return err
	}
	header, err := t.headerCell(f)
	if err != nil {
		return err
	}
	if err := t.sorter.Sort(header, strategy); err != nil {
		return fmt.Errorf("sort field %q: %w", f.id, err)
	}
	return nil
}

func (t *Table[R]) headerCell(f *field[R]) (Element, error) {
	loc := t.schema.locators.headerRow(f.loc.Section)
	if loc.IsZero() {
		return nil, fmt.Errorf("%w: no header row locator for section %q", ErrConfiguration, f.loc.Section)
	}
	container, err := t.container()
	if err != nil {
		return nil, err
	}
	headerRow, err := t.driver.FindOne(container, loc)
	if err != nil {
		return nil, fmt.Errorf("header row %s: %w", loc, err)
	}
	header, err := t.findOne(headerRow, f.loc.Header)
	if err != nil {
		return nil, fmt.Errorf("header of field %q: %w", f.id, err)
	}
	return header, nil
}
