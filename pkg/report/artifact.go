package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactWriter writes reports into a directory.
type ArtifactWriter struct {
	outputDir string
	renderer  Renderer
}

// NewArtifactWriter creates a new artifact writer. Artifacts are never
// colored.
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{
		outputDir: outputDir,
	}
}

// WriteAll writes the report as <table>.json, <table>.yaml and <table>.md
// and returns the written paths.
func (w *ArtifactWriter) WriteAll(r *Report) ([]string, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, f := range []Format{FormatJSON, FormatYAML, FormatMarkdown} {
		path, err := w.Write(r, f)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Write writes the report in one format and returns the path.
func (w *ArtifactWriter) Write(r *Report, f Format) (string, error) {
	path := filepath.Join(w.outputDir, artifactName(r.Table)+extension(f))

	data, err := w.renderer.String(r, f)
	if err != nil {
		return "", err
	}
	if writeErr := os.WriteFile(path, []byte(data), 0600); writeErr != nil {
		return "", fmt.Errorf("failed to write %s report: %w", f, writeErr)
	}
	return path, nil
}

func extension(f Format) string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

func artifactName(table string) string {
	if table == "" {
		return "rows"
	}
	return filepath.Base(filepath.Clean(table))
}
