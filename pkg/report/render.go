package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

var (
	salmonPink = lipgloss.Color("#FFB3BA") // headers and borders
	mutedGray  = lipgloss.Color("#6B7280") // footer

	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)
)

const highlightStyle = "monokai"

// Renderer writes reports in a given format.
type Renderer struct {
	// Color enables styling and syntax highlighting
	Color bool
}

// Render writes r to w in format f.
func (rd Renderer) Render(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatTable, "":
		return rd.renderTable(w, r)
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return rd.emit(w, string(data)+"\n", "json")
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return rd.emit(w, string(data), "yaml")
	case FormatMarkdown:
		return rd.emit(w, Markdown(r), "markdown")
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// String renders r in format f.
func (rd Renderer) String(r *Report, f Format) (string, error) {
	var buf bytes.Buffer
	if err := rd.Render(&buf, r, f); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (rd Renderer) emit(w io.Writer, source, lexer string) error {
	if rd.Color {
		if err := quick.Highlight(w, source, lexer, "terminal256", highlightStyle); err != nil {
			return fmt.Errorf("failed to highlight %s: %w", lexer, err)
		}
		return nil
	}
	_, err := io.WriteString(w, source)
	return err
}

func (rd Renderer) renderTable(w io.Writer, r *Report) error {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		Headers(r.Fields...).
		Rows(r.Records()...)

	if rd.Color {
		t = t.BorderStyle(borderStyle).StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	} else {
		t = t.StyleFunc(func(int, int) lipgloss.Style { return cellStyle })
	}

	footer := fmt.Sprintf("%d row(s) from %s", len(r.Rows), r.Table)
	if rd.Color {
		footer = footerStyle.Render(footer)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", t.String(), footer)
	return err
}

// Markdown renders r as a Markdown document with a pipe table.
func Markdown(r *Report) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# %s\n\n", r.Table))
	if r.Source != "" {
		md.WriteString(fmt.Sprintf("**Source:** %s\n\n", r.Source))
	}
	md.WriteString(fmt.Sprintf("**Rows:** %d\n\n", len(r.Rows)))

	if len(r.Fields) == 0 {
		return md.String()
	}

	md.WriteString("| " + strings.Join(escapeAll(r.Fields), " | ") + " |\n")
	md.WriteString("|" + strings.Repeat(" --- |", len(r.Fields)) + "\n")
	for _, cells := range r.Records() {
		md.WriteString("| " + strings.Join(escapeAll(cells), " | ") + " |\n")
	}
	return md.String()
}

func escapeAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", `\|`)
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}
