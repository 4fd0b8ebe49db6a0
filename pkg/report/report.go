// Package report renders rows read from a table as a terminal table, JSON,
// YAML or Markdown, and writes them to disk as artifacts.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/entrhq/gridmap/pkg/table"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name. The empty string is FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json, yaml or markdown)", s)
	}
}

// Report is a set of rows read from one table.
type Report struct {
	Table     string    `json:"table" yaml:"table"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Fields    []string  `json:"fields" yaml:"fields"`
	Rows      []Row     `json:"rows" yaml:"rows"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Row maps field ids to a string for single cells or a []string for
// collections. Unread fields are absent.
type Row map[string]any

// FromRecords builds a report from records. fields fixes the column order.
func FromRecords(name, source string, fields []string, records []*table.Record) *Report {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		rows = append(rows, Row(rec.Values()))
	}
	return &Report{
		Table:     name,
		Source:    source,
		Fields:    fields,
		Rows:      rows,
		CreatedAt: time.Now(),
	}
}

// Cell returns the value of field id as a single line of text.
func (r Row) Cell(id string) string {
	switch v := r[id].(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Records returns each row's values in field order, one slice per row.
func (r *Report) Records() [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]string, len(r.Fields))
		for j, id := range r.Fields {
			cells[j] = row.Cell(id)
		}
		out[i] = cells
	}
	return out
}
