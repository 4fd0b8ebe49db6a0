package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/gridmap/pkg/htmldoc"
	"github.com/entrhq/gridmap/pkg/table"
)

const headerHTML = `<table id="t"><thead><tr>
  <th id="name">Name <input name="q"></th>
  <th id="status">Status <select multiple><option>Active</option><option>Inactive</option><option>Locked</option></select></th>
  <th id="sort"><a href="#">Created</a></th>
</tr></thead></table>`

func TestPick(t *testing.T) {
	values := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a"}, pick(table.First, values))
	assert.Equal(t, []string{"c"}, pick(table.Last, values))
	assert.Equal(t, values, pick(table.All, values))
	assert.Equal(t, values, pick(table.Contains, values))
	assert.Nil(t, pick(table.First, nil))

	for i := 0; i < 20; i++ {
		got := pick(table.Random, values)
		require.Len(t, got, 1)
		assert.Contains(t, values, got[0])
	}
}

func headerDoc(t *testing.T) (*htmldoc.Document, *Registry) {
	t.Helper()
	doc, err := htmldoc.ParseString(headerHTML)
	require.NoError(t, err)
	return doc, Defaults(doc)
}

func TestInputFilter(t *testing.T) {
	doc, r := headerDoc(t)
	f, err := r.Filterer(table.ComponentRef{Type: Input})
	require.NoError(t, err)

	require.NoError(t, f.Filter(cell(t, doc, "name"), table.All, "Al", "Bo"))

	input, err := doc.FindContainer(table.Name("q"))
	require.NoError(t, err)
	value, err := doc.Text(input)
	require.NoError(t, err)
	assert.Equal(t, "Al Bo", value)
}

func TestSelectFilter(t *testing.T) {
	doc, r := headerDoc(t)
	f, err := r.Filterer(table.ComponentRef{Type: Select})
	require.NoError(t, err)

	require.NoError(t, f.Filter(cell(t, doc, "status"), table.Last, "Active", "Locked"))
	sel, err := doc.FindOne(cell(t, doc, "status"), table.Tag("select"))
	require.NoError(t, err)
	text, err := doc.Text(sel)
	require.NoError(t, err)
	assert.Equal(t, "Locked", text)

	require.NoError(t, f.Filter(cell(t, doc, "status"), table.All, "Active", "Inactive"))
	text, err = doc.Text(sel)
	require.NoError(t, err)
	assert.Equal(t, "Active, Inactive", text)

	assert.Error(t, f.Filter(cell(t, doc, "status"), table.All))
}

func TestClickSorter(t *testing.T) {
	doc, _ := headerDoc(t)
	s := &ClickSorter{Actor: doc, Control: table.Tag("a")}

	require.NoError(t, s.Sort(cell(t, doc, "sort"), table.Ascending))
	assert.Len(t, doc.Actions(), 1)

	doc.ResetActions()
	require.NoError(t, s.Sort(cell(t, doc, "sort"), table.Descending))
	assert.Len(t, doc.Actions(), 2)

	assert.Error(t, s.Sort(cell(t, doc, "sort"), table.Random))
	assert.Len(t, doc.Actions(), 2)
}

// ClickSorter plugs into a table as its sort hook.
func TestClickSorter_AsTableHook(t *testing.T) {
	const page = `<table id="t"><thead><tr><th><a href="#">Name</a></th></tr></thead>
<tbody><tr><td>Alice</td></tr></tbody></table>`
	doc, err := htmldoc.ParseString(page)
	require.NoError(t, err)

	type row struct{ Name *table.Cell }
	s, err := table.NewSchema[row](table.TableLocators{
		Container: table.ID("t"),
		Rows:      table.XPath("./tbody/tr"),
		HeaderRow: table.XPath("./thead/tr"),
	}).
		Cell("name", func(r *row) **table.Cell { return &r.Name }, table.CellLocator{
			Cell:   table.XPath("./td[1]"),
			Header: table.XPath("./th[1]"),
		}).
		Build()
	require.NoError(t, err)

	tbl := table.New(s, doc, table.WithSorter(&ClickSorter{Actor: doc, Control: table.Tag("a")}))
	require.NoError(t, tbl.Sort("name", table.Descending))
	assert.Len(t, doc.Actions(), 2)
}
