package table

import (
	"fmt"
	"strings"

	"github.com/entrhq/gridmap/pkg/logging"
)

// Table reads and mutates one HTML table as rows of type R.
//
// A Table is not safe for concurrent use: it drives a single UI session,
// which must be used sequentially. Independent sessions use independent
// Tables; they may share a Schema.
type Table[R any] struct {
	schema   *Schema[R]
	driver   Driver
	services Services
	sorter   Sorter
	log      *logging.Logger
}

type options struct {
	services Services
	sorter   Sorter
	logger   *logging.Logger
}

// Option configures a Table.
type Option func(*options)

// WithServices sets the registry that resolves component bindings.
func WithServices(s Services) Option {
	return func(o *options) { o.services = s }
}

// WithSorter sets the hook invoked by Sort. The default hook does nothing.
func WithSorter(s Sorter) Option {
	return func(o *options) { o.sorter = s }
}

// WithLogger sets the logger. The default logger discards entries.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns a Table reading schema's table through driver.
func New[R any](schema *Schema[R], driver Driver, opts ...Option) *Table[R] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sorter == nil {
		o.sorter = SorterFunc(func(Element, Strategy) error { return nil })
	}
	if o.logger == nil {
		o.logger = logging.Discard("table")
	}
	return &Table[R]{
		schema:   schema,
		driver:   driver,
		services: o.services,
		sorter:   o.sorter,
		log:      o.logger,
	}
}

// Schema returns the schema the table was built with.
func (t *Table[R]) Schema() *Schema[R] {
	return t.schema
}

// RowID identifies a row either by 0-based index or by search criteria.
type RowID struct {
	index    int
	criteria []string
	byText   bool
}

// Index identifies the row at 0-based position i.
func Index(i int) RowID {
	return RowID{index: i}
}

// Matching identifies the first row whose text contains every criterion.
// Matching is case-sensitive.
func Matching(criteria ...string) RowID {
	return RowID{criteria: append([]string(nil), criteria...), byText: true}
}

func (id RowID) String() string {
	if id.byText {
		return fmt.Sprintf("row matching %q", id.criteria)
	}
	return fmt.Sprintf("row %d", id.index)
}

func (id RowID) matches(text string) bool {
	for _, c := range id.criteria {
		if !strings.Contains(text, c) {
			return false
		}
	}
	return true
}

// span is a 1-based row range, start inclusive and end exclusive.
type span struct {
	start, end int
}

// clip returns the rows inside the span.
func (s span) clip(rows []Element) []Element {
	from := max(0, s.start-1)
	to := min(len(rows), s.end-1)
	if from >= to {
		return nil
	}
	return rows[from:to]
}
