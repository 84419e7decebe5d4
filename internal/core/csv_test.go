package core

import (
	"errors"
	"strings"
	"testing"
)

func TestFindHeader_SkipsPreamble(t *testing.T) {
	input := "Daily Reflections export\n" +
		",,,\n" +
		"\"Date\", language ,Title,Quote,Reflection Text,Reference\n" +
		"2025-01-01,english,New Beginning,q,t,p. 1\n"

	cr := newCSVReader(strings.NewReader(input))
	idx, line, err := findHeader(cr)
	if err != nil {
		t.Fatalf("findHeader() error = %v", err)
	}
	if line != 3 {
		t.Errorf("header line = %d, want 3", line)
	}
	if idx["language"] != 1 {
		t.Errorf("language column = %d, want 1", idx["language"])
	}

	row, err := cr.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := idx.Cell(row, ColumnTitle); got != "New Beginning" {
		t.Errorf("Title = %q", got)
	}
}

func TestFindHeader_NotWithinLimit(t *testing.T) {
	prev := MaxHeaderSearchRows
	MaxHeaderSearchRows = 2
	t.Cleanup(func() { MaxHeaderSearchRows = prev })

	input := "a\nb\nDate,Language,Title,Quote,Reflection Text,Reference\n"
	_, _, err := findHeader(newCSVReader(strings.NewReader(input)))
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("error = %v, want ErrHeaderNotFound", err)
	}
}

func TestFindHeader_MissingColumn(t *testing.T) {
	input := "Date,Language,Title,Quote,Reference\n2025-01-01,english,t,q,r\n"
	_, _, err := findHeader(newCSVReader(strings.NewReader(input)))
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("error = %v, want ErrHeaderNotFound", err)
	}
}

func TestParseRow(t *testing.T) {
	idx := MakeHeaderIndex(CSVColumns)

	r, err := parseRow([]string{" 2025-01-01 ", "pt-BR", "Novo Começo", " “Citação” ", "Texto", "p. 1"}, idx)
	if err != nil {
		t.Fatalf("parseRow() error = %v", err)
	}
	if r.Date != "2025-01-01" || r.Language != PortugueseBR {
		t.Errorf("Date not trimmed or Language changed: %q %q", r.Date, r.Language)
	}
	if r.Quote != " “Citação” " {
		t.Errorf("Quote should be stored as written, got %q", r.Quote)
	}
	if r.Reference != "p. 1" {
		t.Errorf("Reference = %q", r.Reference)
	}
}

func TestRowLanguage_ExactMatch(t *testing.T) {
	idx := MakeHeaderIndex(CSVColumns)
	tests := []struct {
		cell string
		want bool
	}{
		{"pt-BR", true},
		{"pt-BR ", false},
		{" pt-BR", false},
		{"pt-br", false},
		{"Portuguese", false},
	}
	for _, tt := range tests {
		row := []string{"2025-01-01", tt.cell, "t", "q", "x", "r"}
		if got := rowLanguage(row, idx) == string(PortugueseBR); got != tt.want {
			t.Errorf("rowLanguage(%q) matches pt-BR = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestParseRow_InvalidDate(t *testing.T) {
	idx := MakeHeaderIndex(CSVColumns)
	for _, date := range []string{"", "01/01/2025", "2025-02-30", "2025-1-1"} {
		_, err := parseRow([]string{date, "english", "t", "q", "x", "r"}, idx)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("parseRow(date=%q) error = %v, want ErrInvalidDate", date, err)
		}
	}
}

func TestHeaderIndex_CellShortRow(t *testing.T) {
	idx := MakeHeaderIndex(CSVColumns)
	if got := idx.Cell([]string{"2025-01-01"}, ColumnReference); got != "" {
		t.Errorf("Cell() on short row = %q, want empty", got)
	}
}

func TestIsEmptyRow(t *testing.T) {
	if !isEmptyRow([]string{"", "  ", "\t"}) {
		t.Error("whitespace row should be empty")
	}
	if isEmptyRow([]string{"", "x"}) {
		t.Error("row with a value is not empty")
	}
}
