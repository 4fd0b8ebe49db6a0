package table

// Element is an opaque handle to a UI element owned by a Driver.
type Element any

// Driver is the UI-driving collaborator the engine reads tables through.
// Waits, retries and stale-element recovery belong to the implementation;
// every call either succeeds or returns an error.
type Driver interface {
	// FindContainer locates a top-level element. It returns an error wrapping
	// ErrElementNotFound when nothing matches.
	FindContainer(loc Locator) (Element, error)

	// FindAll locates every element under scope matching loc. No match is
	// an empty slice, not an error.
	FindAll(scope Element, loc Locator) ([]Element, error)

	// FindOne locates the first element under scope matching loc. It returns
	// an error wrapping ErrElementNotFound when nothing matches.
	FindOne(scope Element, loc Locator) (Element, error)

	// Text returns the rendered text of an element.
	Text(el Element) (string, error)

	// RawText returns all descendant text of an element.
	RawText(el Element) (string, error)
}

// Cell is one table cell: its UI handle and the text extracted from it.
type Cell struct {
	Handle Element
	Text   string
}

// NewCell builds a Cell from a cell element. When text is non-zero the
// text-bearing element is located inside el first.
func NewCell(d Driver, el Element, text Locator) (Cell, error) {
	target := el
	if !text.IsZero() {
		found, err := d.FindOne(el, text)
		if err != nil {
			return Cell{}, err
		}
		target = found
	}
	s, err := d.Text(target)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Handle: el, Text: s}, nil
}

// CellText returns the text of c, or "" for a nil cell.
func CellText(c *Cell) string {
	if c == nil {
		return ""
	}
	return c.Text
}

// Texts returns the text of every cell in cells.
func Texts(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}
