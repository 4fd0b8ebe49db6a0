package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/gridmap/pkg/table"
)

// textScript returns what a user sees in an element: the value of form
// controls and the rendered text of everything else.
const textScript = `el => {
	const tag = el.tagName.toLowerCase();
	if (tag === 'input' || tag === 'textarea') return el.value;
	if (tag === 'select') return Array.from(el.selectedOptions).map(o => o.text).join(', ');
	return el.innerText;
}`

// Driver drives tables on the page of a browser session. It implements
// table.Driver and components.Actor; elements are playwright.ElementHandle
// values.
type Driver struct {
	session *Session
}

// NewDriver creates a driver for the session's current page.
func NewDriver(s *Session) *Driver {
	return &Driver{session: s}
}

// FindContainer waits for the first element matching loc to be attached.
func (d *Driver) FindContainer(loc table.Locator) (table.Element, error) {
	d.session.UpdateLastUsed()

	sel, err := selector(loc)
	if err != nil {
		return nil, err
	}
	el, err := d.session.Page.WaitForSelector(sel, playwright.PageWaitForSelectorOptions{
		State: playwright.WaitForSelectorStateAttached,
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s: %v", table.ErrElementNotFound, sel, err)
		}
		return nil, fmt.Errorf("wait for %s: %w", sel, err)
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s", table.ErrElementNotFound, sel)
	}
	return el, nil
}

// FindAll locates every element under scope matching loc.
func (d *Driver) FindAll(scope table.Element, loc table.Locator) ([]table.Element, error) {
	h, err := handle(scope)
	if err != nil {
		return nil, err
	}
	sel, err := selector(loc)
	if err != nil {
		return nil, err
	}
	found, err := h.QuerySelectorAll(sel)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	out := make([]table.Element, len(found))
	for i, el := range found {
		out[i] = el
	}
	return out, nil
}

// FindOne locates the first element under scope matching loc.
func (d *Driver) FindOne(scope table.Element, loc table.Locator) (table.Element, error) {
	h, err := handle(scope)
	if err != nil {
		return nil, err
	}
	sel, err := selector(loc)
	if err != nil {
		return nil, err
	}
	el, err := h.QuerySelector(sel)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if el == nil {
		return nil, fmt.Errorf("%w: no element found matching selector: %s", table.ErrElementNotFound, sel)
	}
	return el, nil
}

// Text returns the visible text or control value of an element.
func (d *Driver) Text(el table.Element) (string, error) {
	h, err := handle(el)
	if err != nil {
		return "", err
	}
	v, err := h.Evaluate(textScript)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	s, _ := v.(string)
	return strings.TrimSpace(s), nil
}

// RawText returns the text content of an element and all its descendants.
func (d *Driver) RawText(el table.Element) (string, error) {
	h, err := handle(el)
	if err != nil {
		return "", err
	}
	s, err := h.TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return s, nil
}

// Click clicks an element.
func (d *Driver) Click(el table.Element) error {
	d.session.UpdateLastUsed()

	h, err := handle(el)
	if err != nil {
		return err
	}
	if err := h.Click(); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Update current URL in case click caused navigation
	d.session.CurrentURL = d.session.Page.URL()
	return nil
}

// Fill fills an input element with value.
func (d *Driver) Fill(el table.Element, value string) error {
	d.session.UpdateLastUsed()

	h, err := handle(el)
	if err != nil {
		return err
	}
	if err := h.Fill(value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// SelectOption selects options of a select element by value or label.
func (d *Driver) SelectOption(el table.Element, values ...string) error {
	d.session.UpdateLastUsed()

	h, err := handle(el)
	if err != nil {
		return err
	}
	if _, err := h.SelectOption(playwright.SelectOptionValues{Values: &values}); err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	return nil
}

// Checked reports whether a checkbox or radio element is checked.
func (d *Driver) Checked(el table.Element) (bool, error) {
	h, err := handle(el)
	if err != nil {
		return false, err
	}
	checked, err := h.IsChecked()
	if err != nil {
		return false, fmt.Errorf("checked state failed: %w", err)
	}
	return checked, nil
}

func handle(el table.Element) (playwright.ElementHandle, error) {
	h, ok := el.(playwright.ElementHandle)
	if !ok || h == nil {
		return nil, fmt.Errorf("browser: element %T is not a playwright element handle", el)
	}
	return h, nil
}

// selector translates a locator into a Playwright selector.
func selector(loc table.Locator) (string, error) {
	if loc.IsZero() {
		return "", fmt.Errorf("%w: empty locator", table.ErrConfiguration)
	}
	switch loc.By {
	case table.ByCSS:
		return "css=" + loc.Value, nil
	case table.ByXPath:
		return "xpath=" + loc.Value, nil
	case table.ByID:
		return "id=" + loc.Value, nil
	case table.ByName:
		return fmt.Sprintf("css=[name=%q]", loc.Value), nil
	case table.ByTag:
		return "css=" + strings.ToLower(loc.Value), nil
	case table.ByClass:
		return "css=." + loc.Value, nil
	default:
		return "", fmt.Errorf("%w: unknown locator strategy %q", table.ErrConfiguration, loc.By)
	}
}
