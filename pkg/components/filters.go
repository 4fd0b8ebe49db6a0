package components

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/entrhq/gridmap/pkg/table"
)

// pick narrows values according to strategy. Strategies other than First,
// Last and Random keep every value.
func pick(strategy table.Strategy, values []string) []string {
	if len(values) == 0 {
		return nil
	}
	switch strategy {
	case table.First:
		return values[:1]
	case table.Last:
		return values[len(values)-1:]
	case table.Random:
		i := rand.IntN(len(values))
		return values[i : i+1]
	default:
		return values
	}
}

// InputFilter types the selected values, space separated, into a text
// control in the header cell.
type InputFilter struct {
	Actor   Actor
	Control table.Locator
}

// Filter fills the header control with the values the strategy picks.
func (f *InputFilter) Filter(header table.Element, strategy table.Strategy, values ...string) error {
	el, err := control(f.Actor, header, f.Control)
	if err != nil {
		return err
	}
	return f.Actor.Fill(el, strings.Join(pick(strategy, values), " "))
}

// SelectFilter selects the chosen values in a select control in the header
// cell.
type SelectFilter struct {
	Actor   Actor
	Control table.Locator
}

// Filter selects the values the strategy picks.
func (f *SelectFilter) Filter(header table.Element, strategy table.Strategy, values ...string) error {
	chosen := pick(strategy, values)
	if len(chosen) == 0 {
		return fmt.Errorf("select filter needs at least one option")
	}
	el, err := control(f.Actor, header, f.Control)
	if err != nil {
		return err
	}
	return f.Actor.SelectOption(el, chosen...)
}

// ClickSorter sorts by clicking a header control: once for ascending and
// twice for descending. It implements table.Sorter.
type ClickSorter struct {
	Actor   Actor
	Control table.Locator
}

// Sort clicks the header control as many times as strategy needs.
func (s *ClickSorter) Sort(header table.Element, strategy table.Strategy) error {
	clicks := 0
	switch strategy {
	case table.Ascending:
		clicks = 1
	case table.Descending:
		clicks = 2
	default:
		return fmt.Errorf("unsupported sort strategy %q", strategy)
	}
	el, err := control(s.Actor, header, s.Control)
	if err != nil {
		return err
	}
	for i := 0; i < clicks; i++ {
		if err := s.Actor.Click(el); err != nil {
			return err
		}
	}
	return nil
}
