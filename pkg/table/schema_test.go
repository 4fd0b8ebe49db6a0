package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/gridmap/pkg/table"
)

func TestBuild_Errors(t *testing.T) {
	cell := table.CellLocator{Cell: table.XPath("./td[1]")}
	name := func(r *userRow) **table.Cell { return &r.Name }

	tests := []struct {
		name    string
		build   func() (*table.Schema[userRow], error)
		wantErr error
	}{
		{
			name: "missing container",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](table.TableLocators{Rows: table.Tag("tr")}).Cell("name", name, cell).Build()
			},
			wantErr: table.ErrConfiguration,
		},
		{
			name: "missing rows",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](table.TableLocators{Container: table.ID("users")}).Cell("name", name, cell).Build()
			},
			wantErr: table.ErrConfiguration,
		},
		{
			name: "empty id",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](usersLocators()).Cell("", name, cell).Build()
			},
			wantErr: table.ErrConfiguration,
		},
		{
			name: "duplicate id",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](usersLocators()).Cell("name", name, cell).Cell("name", name, cell).Build()
			},
			wantErr: table.ErrConfiguration,
		},
		{
			name: "unknown locator strategy",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](usersLocators()).
					Cell("name", name, table.CellLocator{Cell: table.Locator{By: "link", Value: "x"}}).Build()
			},
			wantErr: table.ErrConfiguration,
		},
		{
			name: "nil accessor",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](usersLocators()).Cell("name", nil, cell).Build()
			},
			wantErr: table.ErrBinding,
		},
		{
			name: "setter drops values",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](usersLocators()).CellFunc("name",
					func(*userRow) *table.Cell { return nil },
					func(*userRow, *table.Cell) {},
					cell).Build()
			},
			wantErr: table.ErrBinding,
		},
		{
			name: "set on fresh row",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](usersLocators()).CellsFunc("roles",
					func(*userRow) []table.Cell { return []table.Cell{} },
					func(*userRow, []table.Cell) {},
					cell).Build()
			},
			wantErr: table.ErrBinding,
		},
		{
			name: "empty insert binding",
			build: func() (*table.Schema[userRow], error) {
				return table.NewSchema[userRow](usersLocators()).
					Cell("name", name, table.CellLocator{Cell: table.XPath("./td[1]"), Insert: &table.InsertBinding{}}).Build()
			},
			wantErr: table.ErrConfiguration,
		},
		{
			name: "filter binding with both variants",
			build: func() (*table.Schema[userRow], error) {
				b := table.FilterComponent("input", "")
				b.Custom = func() table.Filterer { return nil }
				return table.NewSchema[userRow](usersLocators()).
					Cell("name", name, table.CellLocator{Cell: table.XPath("./td[1]"), Filter: b}).Build()
			},
			wantErr: table.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMustBuild_Panics(t *testing.T) {
	assert.Panics(t, func() {
		table.NewSchema[userRow](table.TableLocators{}).MustBuild()
	})
}

func TestSchema_Accessors(t *testing.T) {
	s := userSchema(t, table.CellLocator{Section: "details"})

	assert.Equal(t, []string{"name", "status", "roles"}, s.Fields())
	assert.Equal(t, []string{"", "details"}, s.Sections())

	collection, err := s.IsCollection("roles")
	require.NoError(t, err)
	assert.True(t, collection)

	_, err = s.IsCollection("email")
	assert.ErrorIs(t, err, table.ErrConfiguration)
}

func TestSchema_Locators(t *testing.T) {
	s := userSchema(t, table.CellLocator{Section: "details"})

	all, err := s.Locators()
	require.NoError(t, err)
	require.Len(t, all.Sections, 2)
	assert.Equal(t, "", all.Sections[0].Name)
	assert.Equal(t, []string{"name", "roles"}, fieldIDs(all.Sections[0]))
	assert.Equal(t, "details", all.Sections[1].Name)
	assert.Equal(t, []string{"status"}, fieldIDs(all.Sections[1]))

	// Requested order and duplicates do not matter
	some, err := s.Locators("roles", "name", "roles")
	require.NoError(t, err)
	require.Len(t, some.Sections, 1)
	assert.Equal(t, []string{"name", "roles"}, fieldIDs(some.Sections[0]))
	assert.True(t, some.Sections[0].Fields[1].Collection)
	assert.Equal(t, table.XPath("./td[3]/span"), some.Sections[0].Fields[1].Cell)

	_, err = s.Locators("name", "email")
	assert.ErrorIs(t, err, table.ErrConfiguration)
	assert.Contains(t, err.Error(), `no cell locator for field "email"`)
}

func fieldIDs(sec table.SectionLocator) []string {
	ids := make([]string, len(sec.Fields))
	for i, f := range sec.Fields {
		ids[i] = f.Field
	}
	return ids
}

func TestSchema_Match(t *testing.T) {
	s := userSchema(t, table.CellLocator{})

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{name: "none means all", patterns: nil, want: []string{"name", "status", "roles"}},
		{name: "exact", patterns: []string{"status"}, want: []string{"status"}},
		{name: "wildcard keeps registration order", patterns: []string{"*s"}, want: []string{"status", "roles"}},
		{name: "alternatives", patterns: []string{"{roles,name}"}, want: []string{"name", "roles"}},
		{name: "overlapping patterns", patterns: []string{"n*", "*e"}, want: []string{"name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Match(tt.patterns...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := s.Match("name", "email*")
	assert.ErrorIs(t, err, table.ErrConfiguration)
}

func TestRecordSchema(t *testing.T) {
	fields := []table.RecordField{
		{ID: "name", Locator: table.CellLocator{Cell: table.XPath("./td[1]")}},
		{ID: "roles", Kind: table.KindCells, Locator: table.CellLocator{Cell: table.XPath("./td[3]/span")}},
	}
	s, err := table.RecordSchema(usersLocators(), fields)
	require.NoError(t, err)

	rows, err := table.New(s, usersDoc(t)).ReadTable()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, map[string]any{"name": "Alice", "roles": []string{"admin", "dev"}}, rows[0].Values())
	assert.Equal(t, "Bob", rows[1].Text("name"))
	assert.Nil(t, rows[1].Cell("status"))

	_, err = table.RecordSchema(usersLocators(), []table.RecordField{{ID: "x", Kind: "grid"}})
	assert.ErrorIs(t, err, table.ErrInvalidFieldType)
}

func TestRecord_SetAndUnset(t *testing.T) {
	var r table.Record
	r.SetCell("a", &table.Cell{Text: "1"})
	r.SetCells("b", []table.Cell{{Text: "2"}})
	assert.Equal(t, "1", r.Text("a"))
	assert.Len(t, r.Cells("b"), 1)

	r.SetCell("a", nil)
	r.SetCells("b", nil)
	assert.Nil(t, r.Cell("a"))
	assert.Nil(t, r.Cells("b"))
	assert.Empty(t, r.Values())
}

func TestParseLocator(t *testing.T) {
	tests := []struct {
		in   string
		want table.Locator
	}{
		{"", table.Locator{}},
		{"self", table.Locator{}},
		{"xpath=./td[1]", table.XPath("./td[1]")},
		{"ID = users", table.ID("users")},
		{"css=a[href=x]", table.CSS("a[href=x]")},
		{"a[href=x]", table.CSS("a[href=x]")},
		{".//td", table.XPath(".//td")},
		{"(//tr)[2]", table.XPath("(//tr)[2]")},
		{"tbody > tr", table.CSS("tbody > tr")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := table.ParseLocator(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := table.ParseLocator("xpath=")
	assert.ErrorIs(t, err, table.ErrConfiguration)
}
