// Package table maps HTML-rendered tables to typed Go rows and back.
//
// A row type is any struct whose mapped fields are *Cell (one cell) or
// []Cell (many cells). Fields are registered explicitly on a SchemaBuilder
// together with the CellLocator that finds their cells:
//
//	type userRow struct {
//	    Name   *table.Cell
//	    Status *table.Cell
//	    Roles  []table.Cell
//	}
//
//	var users = table.NewSchema[userRow](table.TableLocators{
//	    Container: table.ID("users"),
//	    Rows:      table.XPath(".//tbody/tr"),
//	    HeaderRow: table.XPath(".//thead/tr"),
//	}).
//	    Cell("name", func(r *userRow) **table.Cell { return &r.Name },
//	        table.CellLocator{Cell: table.XPath("./td[1]")}).
//	    Cell("status", func(r *userRow) **table.Cell { return &r.Status },
//	        table.CellLocator{
//	            Cell:   table.XPath("./td[2]"),
//	            Header: table.XPath("./th[2]"),
//	            Insert: table.InsertComponent("select", "", 0),
//	            Filter: table.FilterComponent("select", ""),
//	        }).
//	    Cells("roles", func(r *userRow) *[]table.Cell { return &r.Roles },
//	        table.CellLocator{Cell: table.XPath("./td[3]//li")}).
//	    MustBuild()
//
// A Table combines a Schema with a Driver (the UI-driving collaborator) and
// optionally a Services registry for component bindings:
//
//	t := table.New(users, driver, table.WithServices(registry))
//	rows, err := t.ReadTable()                     // every field
//	names, err := t.ReadTable("name")              // projection
//	bob, err := t.ReadRow(table.Matching("Bob"))   // first row containing "Bob"
//	err = t.InsertCell(table.Index(1), "status", "Active")
//
// # Sections
//
// Fields may belong to named sections whose rows are located separately,
// for example a table rendered as a frozen column block next to a
// scrollable one. Each section is read on its own and the partial rows are
// merged by position; the first section to populate a field wins. Sections
// yielding different row counts are a configuration error.
//
// # Errors
//
// Every error wraps one of the Err* kinds declared in this package.
// Configuration problems are detected before the driver is called.
package table
