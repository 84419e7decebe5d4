package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// MaxHeaderSearchRows is the maximum number of rows to scan for the header.
var MaxHeaderSearchRows = 20

// newCSVReader returns a reader tolerant of ragged rows and stray quotes,
// which spreadsheet exports of the reflections file contain.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// findHeader reads records until one contains every import column.
// Rows before the header (titles, notes) are discarded.
func findHeader(cr *csv.Reader) (HeaderIndex, int, error) {
	for i := 0; i < MaxHeaderSearchRows; i++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv: %w", err)
		}

		idx := MakeHeaderIndex(record)
		if idx.HasAll(CSVColumns) {
			line, _ := cr.FieldPos(0)
			return idx, line, nil
		}
	}
	return nil, 0, fmt.Errorf("%w (expected: %s)", ErrHeaderNotFound, strings.Join(CSVColumns, ", "))
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// HasAll reports whether every column is present.
func (h HeaderIndex) HasAll(columns []string) bool {
	for _, col := range columns {
		if _, ok := h[strings.ToLower(col)]; !ok {
			return false
		}
	}
	return true
}

// Cell returns the raw value of column in row, or "" when absent.
func (h HeaderIndex) Cell(row []string, column string) string {
	pos, ok := h[strings.ToLower(column)]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// CleanCell trims whitespace and surrounding quotes from a header cell.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// rowLanguage returns the Language cell of a data row as written. A row
// belongs to a partition only when the cell equals the canonical code
// exactly, so "pt-BR " or "pt-br" is skipped rather than imported.
func rowLanguage(row []string, idx HeaderIndex) string {
	return idx.Cell(row, ColumnLanguage)
}

// parseRow maps a data row onto a Reflection. Date is trimmed; the
// free-text fields are stored as written.
func parseRow(row []string, idx HeaderIndex) (Reflection, error) {
	r := Reflection{
		Date:      strings.TrimSpace(idx.Cell(row, ColumnDate)),
		Language:  Language(rowLanguage(row, idx)),
		Title:     idx.Cell(row, ColumnTitle),
		Quote:     idx.Cell(row, ColumnQuote),
		Text:      idx.Cell(row, ColumnText),
		Reference: idx.Cell(row, ColumnReference),
	}

	if err := ValidateDate(r.Date); err != nil {
		return r, err
	}
	return r, nil
}

// ValidateDate checks that s is a real calendar day in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
