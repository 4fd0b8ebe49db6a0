package table

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Match returns the ids of the fields matching any of the glob patterns, in
// registration order. A pattern that matches no field is a configuration
// error.
func (s *Schema[R]) Match(patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		return s.Fields(), nil
	}

	globs := make([]glob.Glob, len(patterns))
	for i, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid field pattern %q: %v", ErrConfiguration, p, err)
		}
		globs[i] = g
	}

	hits := make([]bool, len(patterns))
	var ids []string
	for _, f := range s.fields {
		matched := false
		for i, g := range globs {
			if g.Match(f.id) {
				hits[i] = true
				matched = true
			}
		}
		if matched {
			ids = append(ids, f.id)
		}
	}

	for i, hit := range hits {
		if !hit {
			return nil, fmt.Errorf("%w: no cell locator for field pattern %q", ErrConfiguration, patterns[i])
		}
	}
	return ids, nil
}
