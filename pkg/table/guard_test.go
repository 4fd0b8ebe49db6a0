package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/entrhq/gridmap/pkg/table"
)

// mockDriver fails the test on any call that was not expected.
type mockDriver struct {
	mock.Mock
}

func (m *mockDriver) FindContainer(loc table.Locator) (table.Element, error) {
	args := m.Called(loc)
	return args.Get(0), args.Error(1)
}

func (m *mockDriver) FindAll(scope table.Element, loc table.Locator) ([]table.Element, error) {
	args := m.Called(scope, loc)
	els, _ := args.Get(0).([]table.Element)
	return els, args.Error(1)
}

func (m *mockDriver) FindOne(scope table.Element, loc table.Locator) (table.Element, error) {
	args := m.Called(scope, loc)
	return args.Get(0), args.Error(1)
}

func (m *mockDriver) Text(el table.Element) (string, error) {
	args := m.Called(el)
	return args.String(0), args.Error(1)
}

func (m *mockDriver) RawText(el table.Element) (string, error) {
	args := m.Called(el)
	return args.String(0), args.Error(1)
}

// mockServices resolves nothing unless told to.
type mockServices struct {
	mock.Mock
}

func (m *mockServices) Inserter(ref table.ComponentRef) (table.Inserter, error) {
	args := m.Called(ref)
	ins, _ := args.Get(0).(table.Inserter)
	return ins, args.Error(1)
}

func (m *mockServices) Filterer(ref table.ComponentRef) (table.Filterer, error) {
	args := m.Called(ref)
	f, _ := args.Get(0).(table.Filterer)
	return f, args.Error(1)
}

// Configuration errors must surface before the UI is touched.
func TestConfigurationErrorsPrecedeDriverCalls(t *testing.T) {
	status := table.CellLocator{Insert: table.InsertComponent("select", "", 0)}

	tests := []struct {
		name     string
		services table.Services
		op       func(tbl *table.Table[userRow]) error
		wantErr  error
	}{
		{
			name:    "read unknown field",
			op:      func(tbl *table.Table[userRow]) error { _, err := tbl.ReadTable("email"); return err },
			wantErr: table.ErrConfiguration,
		},
		{
			name:    "read range of unknown field",
			op:      func(tbl *table.Table[userRow]) error { _, err := tbl.ReadRange(1, 3, "email"); return err },
			wantErr: table.ErrConfiguration,
		},
		{
			name:    "read row of unknown field",
			op:      func(tbl *table.Table[userRow]) error { _, err := tbl.ReadRow(table.Index(0), "email"); return err },
			wantErr: table.ErrConfiguration,
		},
		{
			name:    "insert into unknown field",
			op:      func(tbl *table.Table[userRow]) error { return tbl.InsertCell(table.Index(0), "email", "x") },
			wantErr: table.ErrConfiguration,
		},
		{
			name:    "insert without binding",
			op:      func(tbl *table.Table[userRow]) error { return tbl.InsertCell(table.Index(0), "name", "x") },
			wantErr: table.ErrNoInsertionMethod,
		},
		{
			name:    "insert component without registry",
			op:      func(tbl *table.Table[userRow]) error { return tbl.InsertCell(table.Index(0), "status", "x") },
			wantErr: table.ErrConfiguration,
		},
		{
			name: "insert row with unresolvable component",
			services: func() table.Services {
				s := &mockServices{}
				s.On("Inserter", table.ComponentRef{Type: "select"}).Return(nil, table.ErrConfiguration)
				return s
			}(),
			op: func(tbl *table.Table[userRow]) error {
				return tbl.InsertRow(table.Index(0), &userRow{Status: &table.Cell{Text: "Active"}})
			},
			wantErr: table.ErrConfiguration,
		},
		{
			name:    "filter without binding",
			op:      func(tbl *table.Table[userRow]) error { return tbl.Filter("roles", table.All) },
			wantErr: table.ErrNoFilterMethod,
		},
		{
			name:    "sort unknown field",
			op:      func(tbl *table.Table[userRow]) error { return tbl.Sort("email", table.Ascending) },
			wantErr: table.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &mockDriver{}
			var opts []table.Option
			if tt.services != nil {
				opts = append(opts, table.WithServices(tt.services))
			}
			tbl := table.New(userSchema(t, status), driver, opts...)

			err := tt.op(tbl)
			assert.ErrorIs(t, err, tt.wantErr)
			driver.AssertExpectations(t)
			assert.Empty(t, driver.Calls, "driver must not be called")
		})
	}
}

func TestInsertCell_ResolvesThroughServices(t *testing.T) {
	doc := usersDoc(t)
	var calls []string
	services := &mockServices{}
	services.On("Inserter", table.ComponentRef{Type: "select", Subtype: "inline"}).
		Return(recorder{doc: doc, name: "status", calls: &calls}, nil).Once()

	status := table.CellLocator{Insert: table.InsertComponent("select", "inline", 0)}
	tbl := table.New(userSchema(t, status), doc, table.WithServices(services))

	assert.NoError(t, tbl.InsertCell(table.Matching("Bob"), "status", "Active"))
	assert.Equal(t, []string{"status:Inactive=Active"}, calls)
	services.AssertExpectations(t)
}
