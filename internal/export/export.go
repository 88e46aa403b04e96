// Package export renders record sets into downloadable artifacts
// (CSV, Word, PDF) and returns the public URL they are served under.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// Supported export formats. "excel" produces CSV, which spreadsheet
// applications open directly.
const (
	FormatExcel = "excel"
	FormatWord  = "word"
	FormatPDF   = "pdf"
)

// ErrUnsupportedFormat is returned for formats outside the supported set.
// This is a caller error, distinct from user-input ambiguity.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// documentHeading appears on every generated artifact.
const documentHeading = "Army Record System"

// Table is a rendered record set: a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Exporter writes artifacts into a directory and maps them to public URLs.
type Exporter struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// New creates an Exporter. The directory is created if missing.
func New(dir, baseURL string, logger *slog.Logger) (*Exporter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Exporter{dir: dir, baseURL: baseURL, logger: logger}, nil
}

// Dir returns the artifact directory, for static file serving.
func (e *Exporter) Dir() string { return e.dir }

// Export writes the table as an artifact of the given format and returns its
// public URL. base is the filename stem (e.g. "officers"); the final name is
// unique per call.
func (e *Exporter) Export(t Table, title, base, format string) (string, error) {
	name := fmt.Sprintf("%s_%s_%s", base,
		time.Now().Format("20060102_150405"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:6])

	var filename string
	var err error
	switch format {
	case FormatExcel:
		filename = name + ".csv"
		err = e.writeCSV(filepath.Join(e.dir, filename), t, title)
	case FormatWord:
		filename = name + ".doc"
		err = e.writeDoc(filepath.Join(e.dir, filename), t, title)
	case FormatPDF:
		filename = name + ".pdf"
		err = e.writePDF(filepath.Join(e.dir, filename), t, title)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}

	e.logger.Info("export artifact written",
		"file", filename, "format", format, "rows", len(t.Rows))
	return e.baseURL + filename, nil
}

// writeCSV writes title row, header row, then data rows.
func (e *Exporter) writeCSV(path string, t Table, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{title}); err != nil {
		return fmt.Errorf("writing csv title: %w", err)
	}
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("writing csv headers: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return f.Close()
}

// docTemplate renders an HTML-bodied .doc file, which Word and LibreOffice
// open as a table document.
var docTemplate = template.Must(template.New("doc").Parse(`<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Heading}}</h1>
<h2>{{.Title}}</h2>
<table border="1" cellspacing="0" cellpadding="4">
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

func (e *Exporter) writeDoc(path string, t Table, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating doc file: %w", err)
	}
	defer f.Close()

	data := struct {
		Heading, Title string
		Headers        []string
		Rows           [][]string
	}{documentHeading, title, t.Headers, t.Rows}

	if err := docTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("rendering doc: %w", err)
	}
	return f.Close()
}

func (e *Exporter) writePDF(path string, t Table, title string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, documentHeading, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Headers))

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for _, h := range t.Headers {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
