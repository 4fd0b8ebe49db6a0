package table_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/gridmap/pkg/htmldoc"
	"github.com/entrhq/gridmap/pkg/table"
)

// ordersHTML renders each logical row across two bodies: a frozen id
// column and a scrollable details block.
const ordersHTML = `<html><body>
<table id="orders">
  <thead><tr><th>Id</th><th>Note</th></tr></thead>
  <tbody class="frozen">
    <tr><td>1</td></tr>
    <tr><td>2</td></tr>
  </tbody>
  <tbody class="details">
    <tr><td>first order</td><td>open</td></tr>
    <tr><td>second order</td><td>closed</td></tr>
  </tbody>
  <tbody class="short">
    <tr><td>only one</td></tr>
  </tbody>
</table>
</body></html>`

type orderRow struct {
	ID    *table.Cell
	Note  *table.Cell
	State *table.Cell
	Extra *table.Cell
}

func ordersLocators() table.TableLocators {
	return table.TableLocators{
		Container: table.ID("orders"),
		Rows:      table.XPath("./tbody[@class='frozen']/tr"),
		HeaderRow: table.XPath("./thead/tr"),
		Sections: map[string]table.SectionLocators{
			"details": {Rows: table.XPath("./tbody[@class='details']/tr")},
			"short":   {Rows: table.XPath("./tbody[@class='short']/tr")},
		},
	}
}

func orderSchema(t *testing.T, withShort bool) *table.Schema[orderRow] {
	t.Helper()
	b := table.NewSchema[orderRow](ordersLocators()).
		Cell("id", func(r *orderRow) **table.Cell { return &r.ID }, table.CellLocator{Cell: table.XPath("./td[1]")}).
		Cell("note", func(r *orderRow) **table.Cell { return &r.Note }, table.CellLocator{Cell: table.XPath("./td[1]"), Section: "details"}).
		Cell("state", func(r *orderRow) **table.Cell { return &r.State }, table.CellLocator{
			Cell:    table.XPath("./td[2]"),
			Header:  table.XPath("./th[2]"),
			Section: "details",
		})
	if withShort {
		b.Cell("extra", func(r *orderRow) **table.Cell { return &r.Extra }, table.CellLocator{Cell: table.XPath("./td[1]"), Section: "short"})
	}
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func ordersDoc(t *testing.T) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.ParseString(ordersHTML)
	require.NoError(t, err)
	return doc
}

func orderTexts(rows []*orderRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{table.CellText(r.ID), table.CellText(r.Note), table.CellText(r.State), table.CellText(r.Extra)}
	}
	return out
}

func TestSections_MergeByPosition(t *testing.T) {
	tbl := table.New(orderSchema(t, false), ordersDoc(t))

	rows, err := tbl.ReadTable()
	require.NoError(t, err)

	want := [][]string{
		{"1", "first order", "open", ""},
		{"2", "second order", "closed", ""},
	}
	if diff := cmp.Diff(want, orderTexts(rows)); diff != "" {
		t.Errorf("ReadTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestSections_ProjectionReadsOnlyNeededSections(t *testing.T) {
	tbl := table.New(orderSchema(t, true), ordersDoc(t))

	// The short section would fail alignment, but it is not requested
	rows, err := tbl.ReadTable("id", "state")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "", "open", ""}, {"2", "", "closed", ""}}, orderTexts(rows))
}

func TestSections_Mismatch(t *testing.T) {
	tbl := table.New(orderSchema(t, true), ordersDoc(t))

	_, err := tbl.ReadTable()
	assert.ErrorIs(t, err, table.ErrConfiguration)

	_, err = tbl.ReadTable("id", "extra")
	assert.ErrorIs(t, err, table.ErrConfiguration)
}

func TestSections_MatchAcrossSections(t *testing.T) {
	tbl := table.New(orderSchema(t, false), ordersDoc(t))

	row, err := tbl.ReadRow(table.Matching("2", "closed"))
	require.NoError(t, err)
	assert.Equal(t, "second order", row.Note.Text)

	_, err = tbl.ReadRow(table.Matching("1", "closed"))
	assert.ErrorIs(t, err, table.ErrRowNotFound)
}

func TestSections_ReadRange(t *testing.T) {
	tbl := table.New(orderSchema(t, false), ordersDoc(t))

	rows, err := tbl.ReadRange(2, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2", "second order", "closed", ""}}, orderTexts(rows))
}

func TestSections_HeaderFallsBackToDefault(t *testing.T) {
	doc := ordersDoc(t)
	var headers []string
	sorter := table.SorterFunc(func(header table.Element, _ table.Strategy) error {
		text, err := doc.Text(header)
		headers = append(headers, text)
		return err
	})
	tbl := table.New(orderSchema(t, false), doc, table.WithSorter(sorter))

	require.NoError(t, tbl.Sort("state", table.Ascending))
	assert.Equal(t, []string{"Note"}, headers)
}
