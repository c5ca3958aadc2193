package reportexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"plagrelay/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sheetName = "Report"

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" (the default when empty) or "xlsx".
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", domain.NewValidationError("unsupported export format %q; allowed: csv, xlsx", raw)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

var plagiarismColumns = []string{
	"Identifier",
	"Backend",
	"Overall Percent",
	"Source URL",
	"Source Percent",
	"Content Type",
}

var aiColumns = []string{
	"Identifier",
	"Backend",
	"Overall Percent",
	"Chunk Start",
	"Chunk End",
	"Reliability",
	"Comment",
}

// Header returns the column names for a report of the given kind.
func Header(kind domain.CheckKind) []string {
	if kind == domain.CheckKindAIDetection {
		return aiColumns
	}
	return plagiarismColumns
}

// Records flattens a report into one row per matched source or flagged
// chunk. A report with neither still yields a single summary row.
func Records(r *domain.ReconciledReport) [][]interface{} {
	base := []interface{}{r.Identifier, string(r.Backend), r.Percent}

	var rows [][]interface{}
	switch r.CheckKind {
	case domain.CheckKindAIDetection:
		for _, ch := range r.Chunks {
			rows = append(rows, concat(base, ch.Position.Start, ch.Position.End, ch.Reliability, r.Comment))
		}
		if len(rows) == 0 {
			rows = append(rows, concat(base, "", "", "", r.Comment))
		}
	default:
		for _, src := range r.Sources {
			rows = append(rows, concat(base, src.URL, src.Percent, src.ContentType))
		}
		if len(rows) == 0 {
			rows = append(rows, concat(base, "", "", ""))
		}
	}
	return rows
}

func concat(base []interface{}, rest ...interface{}) []interface{} {
	row := make([]interface{}, 0, len(base)+len(rest))
	row = append(row, base...)
	return append(row, rest...)
}

// Write renders the report in the given format to w.
func Write(w io.Writer, format Format, r *domain.ReconciledReport) error {
	if format == FormatXLSX {
		return WriteXLSX(w, r)
	}
	return WriteCSV(w, r)
}

// WriteCSV writes the report as CSV with a leading BOM.
func WriteCSV(w io.Writer, r *domain.ReconciledReport) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(r.CheckKind)); err != nil {
		return err
	}
	for _, rec := range Records(r) {
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = formatCell(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the report as a single-sheet workbook.
func WriteXLSX(w io.Writer, r *domain.ReconciledReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := Header(r.CheckKind)
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	for i, rec := range Records(r) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := rec
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters unsafe for Content-Disposition with
// underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {kind}_report_{identifier}_{YYYY-MM-DD}.{ext}.
func BuildFilename(r *domain.ReconciledReport, format Format, now time.Time) string {
	name := SanitizeFilename(fmt.Sprintf("%s_report_%s", r.CheckKind, r.Identifier))
	return fmt.Sprintf("%s_%s.%s", name, now.Format("2006-01-02"), format)
}
