package htmldoc

import (
	"fmt"
	"strings"

	"github.com/entrhq/gridmap/pkg/table"
)

// toXPath translates a locator into an XPath expression relative to the
// scope node.
func toXPath(loc table.Locator) (string, error) {
	if loc.IsZero() {
		return ".", nil
	}
	switch loc.By {
	case table.ByXPath:
		return loc.Value, nil
	case table.ByID:
		return ".//*[@id=" + literal(loc.Value) + "]", nil
	case table.ByName:
		return ".//*[@name=" + literal(loc.Value) + "]", nil
	case table.ByTag:
		return ".//" + strings.ToLower(loc.Value), nil
	case table.ByClass:
		return ".//*[contains(concat(' ', normalize-space(@class), ' '), " + literal(" "+loc.Value+" ") + ")]", nil
	case table.ByCSS:
		return "", fmt.Errorf("%w: css locator %q needs a browser driver", table.ErrConfiguration, loc.Value)
	default:
		return "", fmt.Errorf("%w: unknown locator strategy %q", table.ErrConfiguration, loc.By)
	}
}

// literal quotes s as an XPath string literal.
func literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
