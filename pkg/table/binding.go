package table

import "fmt"

// ComponentType tags a reusable insertion or filter component.
type ComponentType string

// ComponentRef identifies a component in the service registry.
type ComponentRef struct {
	Type    ComponentType
	Subtype string
}

// IsZero reports whether the reference names no component.
func (r ComponentRef) IsZero() bool {
	return r.Type == ""
}

func (r ComponentRef) String() string {
	if r.Subtype == "" {
		return string(r.Type)
	}
	return string(r.Type) + "/" + r.Subtype
}

// Strategy selects which matching element(s) an operation acts on.
// Handlers may define additional strategies.
type Strategy string

const (
	First      Strategy = "first"
	Last       Strategy = "last"
	Random     Strategy = "random"
	All        Strategy = "all"
	Ascending  Strategy = "ascending"
	Descending Strategy = "descending"
	Contains   Strategy = "contains"
	Equals     Strategy = "equals"
)

// Inserter writes values into a table cell.
type Inserter interface {
	Insert(cell Element, values ...string) error
}

// Filterer applies a filter through a header cell.
type Filterer interface {
	Filter(header Element, strategy Strategy, values ...string) error
}

// Sorter sorts a table through a header cell.
type Sorter interface {
	Sort(header Element, strategy Strategy) error
}

// InserterFunc adapts a function to the Inserter interface.
type InserterFunc func(cell Element, values ...string) error

func (f InserterFunc) Insert(cell Element, values ...string) error {
	return f(cell, values...)
}

// FiltererFunc adapts a function to the Filterer interface.
type FiltererFunc func(header Element, strategy Strategy, values ...string) error

func (f FiltererFunc) Filter(header Element, strategy Strategy, values ...string) error {
	return f(header, strategy, values...)
}

// SorterFunc adapts a function to the Sorter interface.
type SorterFunc func(header Element, strategy Strategy) error

func (f SorterFunc) Sort(header Element, strategy Strategy) error {
	return f(header, strategy)
}

// Services resolves component references to concrete handlers.
type Services interface {
	Inserter(ref ComponentRef) (Inserter, error)
	Filterer(ref ComponentRef) (Filterer, error)
}

// InsertBinding delegates a field's insertion either to a registered
// component or to a custom handler built fresh for every call. Exactly one of
// Component and Custom must be set.
type InsertBinding struct {
	Component ComponentRef
	Custom    func() Inserter

	// Priority orders whole-row insertion, lowest first.
	Priority int
}

// InsertComponent binds insertion to a registered component.
func InsertComponent(t ComponentType, subtype string, priority int) *InsertBinding {
	return &InsertBinding{Component: ComponentRef{Type: t, Subtype: subtype}, Priority: priority}
}

// InsertCustom binds insertion to a custom handler factory.
func InsertCustom(factory func() Inserter, priority int) *InsertBinding {
	return &InsertBinding{Custom: factory, Priority: priority}
}

func (b *InsertBinding) validate() error {
	switch {
	case b.Component.IsZero() && b.Custom == nil:
		return fmt.Errorf("%w: insertion binding names neither a component nor a custom handler", ErrConfiguration)
	case !b.Component.IsZero() && b.Custom != nil:
		return fmt.Errorf("%w: insertion binding names both component %s and a custom handler", ErrConfiguration, b.Component)
	}
	return nil
}

func (b *InsertBinding) resolve(s Services) (Inserter, error) {
	if b.Custom != nil {
		return b.Custom(), nil
	}
	if s == nil {
		return nil, fmt.Errorf("%w: no service registry to resolve component %s", ErrConfiguration, b.Component)
	}
	return s.Inserter(b.Component)
}

// FilterBinding delegates a field's filtering either to a registered
// component or to a custom handler. Exactly one of Component and Custom must
// be set.
type FilterBinding struct {
	Component ComponentRef
	Custom    func() Filterer
}

// FilterComponent binds filtering to a registered component.
func FilterComponent(t ComponentType, subtype string) *FilterBinding {
	return &FilterBinding{Component: ComponentRef{Type: t, Subtype: subtype}}
}

// FilterCustom binds filtering to a custom handler factory.
func FilterCustom(factory func() Filterer) *FilterBinding {
	return &FilterBinding{Custom: factory}
}

func (b *FilterBinding) validate() error {
	switch {
	case b.Component.IsZero() && b.Custom == nil:
		return fmt.Errorf("%w: filter binding names neither a component nor a custom handler", ErrConfiguration)
	case !b.Component.IsZero() && b.Custom != nil:
		return fmt.Errorf("%w: filter binding names both component %s and a custom handler", ErrConfiguration, b.Component)
	}
	return nil
}

func (b *FilterBinding) resolve(s Services) (Filterer, error) {
	if b.Custom != nil {
		return b.Custom(), nil
	}
	if s == nil {
		return nil, fmt.Errorf("%w: no service registry to resolve component %s", ErrConfiguration, b.Component)
	}
	return s.Filterer(b.Component)
}
