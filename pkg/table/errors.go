package table

import "errors"

// Error kinds returned by the engine. Every error the engine produces wraps
// exactly one of these, so callers classify failures with errors.Is.
var (
	// ErrConfiguration reports missing or inconsistent locator metadata.
	ErrConfiguration = errors.New("table configuration error")

	// ErrInvalidFieldType reports a mapped field that is neither a single
	// cell nor a cell collection.
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrElementNotFound reports a table, row or cell element that could not
	// be located.
	ErrElementNotFound = errors.New("element not found")

	// ErrRowNotFound reports that no row matched the search criteria.
	ErrRowNotFound = errors.New("row not found")

	// ErrIndexOutOfRange reports a row index outside the discovered rows.
	ErrIndexOutOfRange = errors.New("row index out of range")

	// ErrInvalidCellIndex reports a 1-based cell index outside the matched cells.
	ErrInvalidCellIndex = errors.New("invalid cell index")

	// ErrBinding reports a value that could not be written into a row.
	ErrBinding = errors.New("field binding error")

	// ErrNoInsertionMethod reports a field without a component or custom
	// insertion binding.
	ErrNoInsertionMethod = errors.New("no insertion method")

	// ErrNoFilterMethod reports a field without a component or custom
	// filter binding.
	ErrNoFilterMethod = errors.New("no filter method")
)
