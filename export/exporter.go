// Package export serializes extracted tables to CSV and XLSX.
//
// Values are written exactly as extracted: no type coercion, no header
// row, no data cleaning. Sheet names are sanitized for Excel
// compatibility but name collisions are left to the caller.
package export

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// DefaultSheetName is used when a sanitized sheet name comes out empty.
const DefaultSheetName = "Sheet1"

// maxSheetNameLength is Excel's hard limit on worksheet names.
const maxSheetNameLength = 31

// Exporter converts tables (rows of cells) to export formats.
type Exporter struct {
	log *slog.Logger
}

// New creates an Exporter. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{log: logger}
}

// CSV renders a single table as CSV text. Rows may be ragged; each row
// is written with exactly the cells it has.
func (e *Exporter) CSV(table [][]string) (string, error) {
	text, err := writeCSV(table)
	if err != nil {
		return "", err
	}
	e.log.Info("exported table to CSV", "rows", len(table), "chars", len(text))
	return text, nil
}

// Excel renders a single table as an XLSX workbook with one sheet. The
// sheet name is sanitized with SanitizeSheetName.
func (e *Exporter) Excel(table [][]string, sheetName string) ([]byte, error) {
	data, err := writeWorkbook([]sheetData{{
		name: SanitizeSheetName(sheetName),
		rows: table,
	}})
	if err != nil {
		return nil, fmt.Errorf("building workbook: %w", err)
	}
	e.log.Info("exported table to XLSX", "rows", len(table), "bytes", len(data))
	return data, nil
}

// ExcelSheets renders multiple named tables as one multi-sheet XLSX
// workbook. Sheets are emitted in sorted name order so output is
// deterministic. Names are sanitized individually; if two names
// sanitize to the same string the workbook will contain duplicate sheet
// names — deduplication is the caller's responsibility.
func (e *Exporter) ExcelSheets(tables map[string][][]string) ([]byte, error) {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	sheets := make([]sheetData, 0, len(names))
	for _, name := range names {
		sheets = append(sheets, sheetData{
			name: SanitizeSheetName(name),
			rows: tables[name],
		})
	}

	data, err := writeWorkbook(sheets)
	if err != nil {
		return nil, fmt.Errorf("building workbook: %w", err)
	}
	e.log.Info("exported tables to multi-sheet XLSX", "sheets", len(sheets), "bytes", len(data))
	return data, nil
}

// SanitizeSheetName makes a name safe for use as an Excel worksheet
// name: the characters \ / * ? [ ] : are stripped, the result is
// truncated to 31 runes, and an empty or blank result is replaced with
// DefaultSheetName.
func SanitizeSheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '*', '?', '[', ']', ':':
			return -1
		}
		return r
	}, name)

	if runes := []rune(cleaned); len(runes) > maxSheetNameLength {
		cleaned = string(runes[:maxSheetNameLength])
	}

	if strings.TrimSpace(cleaned) == "" {
		return DefaultSheetName
	}
	return cleaned
}
