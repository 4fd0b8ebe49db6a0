package htmldoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/entrhq/gridmap/pkg/table"
)

const formHTML = `<html>
<head><title>Users</title><style>td { color: red; }</style></head>
<body>
<div id="main" class="panel wide">
  <p>Hello,<br>world  <!-- note --> again</p>
  <script>var hidden = true;</script>
  <input id="q" name="query" value="initial">
  <input id="flag" type="checkbox">
  <select id="status" name="status">
    <option value="a">Active</option>
    <option value="i">Inactive</option>
  </select>
  <select id="tags" multiple>
    <option>red</option>
    <option>blue</option>
  </select>
  <span class="panel-title" title="it's">Title</span>
  <ul><li>one</li><li>two</li></ul>
</div>
</body>
</html>`

func parse(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(formHTML)
	require.NoError(t, err)
	return doc
}

func find(t *testing.T, doc *Document, loc table.Locator) table.Element {
	t.Helper()
	el, err := doc.FindContainer(loc)
	require.NoError(t, err)
	return el
}

func text(t *testing.T, doc *Document, el table.Element) string {
	t.Helper()
	s, err := doc.Text(el)
	require.NoError(t, err)
	return s
}

func TestFind(t *testing.T) {
	doc := parse(t)

	tests := []struct {
		name string
		loc  table.Locator
		want string
	}{
		{name: "id", loc: table.ID("main"), want: "div#main"},
		{name: "name", loc: table.Name("query"), want: "input#q[name=query]"},
		{name: "tag", loc: table.Tag("UL"), want: "ul"},
		{name: "class word", loc: table.Class("wide"), want: "div#main"},
		{name: "xpath", loc: table.XPath("//select[@multiple]"), want: "select#tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := find(t, doc, tt.loc)
			assert.Equal(t, tt.want, describe(el.(*html.Node)))
		})
	}
}

func TestFind_ClassIsWholeWord(t *testing.T) {
	doc := parse(t)

	els, err := doc.FindAll(doc.Root(), table.Class("panel"))
	require.NoError(t, err)
	assert.Len(t, els, 1, "panel-title must not match class panel")
}

func TestFind_Relative(t *testing.T) {
	doc := parse(t)
	list := find(t, doc, table.Tag("ul"))

	items, err := doc.FindAll(list, table.XPath("./li"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "two", text(t, doc, items[1]))

	self, err := doc.FindOne(list, table.Locator{})
	require.NoError(t, err)
	assert.Same(t, list, self)

	none, err := doc.FindAll(list, table.Tag("td"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFind_Errors(t *testing.T) {
	doc := parse(t)

	_, err := doc.FindContainer(table.ID("missing"))
	assert.ErrorIs(t, err, table.ErrElementNotFound)

	_, err = doc.FindContainer(table.CSS("div#main"))
	assert.ErrorIs(t, err, table.ErrConfiguration)

	_, err = doc.FindAll(doc.Root(), table.XPath("//div["))
	assert.ErrorIs(t, err, table.ErrConfiguration)

	_, err = doc.FindOne("not a node", table.Tag("div"))
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", literal("plain"))
	assert.Equal(t, `"it's"`, literal("it's"))
	assert.Equal(t, `concat('a"b', "'", 'c')`, literal(`a"b'c`))

	doc := parse(t)
	el, err := doc.FindContainer(table.XPath("//span[@title=" + literal("it's") + "]"))
	require.NoError(t, err)
	assert.Equal(t, "Title", text(t, doc, el))
}

func TestText(t *testing.T) {
	doc := parse(t)

	assert.Equal(t, "Hello, world again", text(t, doc, find(t, doc, table.Tag("p"))))
	assert.Equal(t, "initial", text(t, doc, find(t, doc, table.ID("q"))))
	assert.Equal(t, "Active", text(t, doc, find(t, doc, table.ID("status"))), "first option when none is selected")
	assert.Equal(t, "", text(t, doc, find(t, doc, table.ID("tags"))), "multiple select with nothing selected")

	main := text(t, doc, find(t, doc, table.ID("main")))
	assert.NotContains(t, main, "hidden")
	assert.Contains(t, main, "initial Active")
	assert.Contains(t, main, "one two")

	raw, err := doc.RawText(find(t, doc, table.Tag("p")))
	require.NoError(t, err)
	assert.Equal(t, "Hello,world   again", raw)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(formHTML), 0600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Title", text(t, doc, find(t, doc, table.Tag("span"))))

	_, err = Load(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
