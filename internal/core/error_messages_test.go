package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"wrapped not found", fmt.Errorf("get english reflection: %w", ErrNotFound), "REF001"},
		{"invalid date", fmt.Errorf("%w: %q", ErrInvalidDate, "2025-13-01"), "VAL001"},
		{"invalid month", ErrInvalidMonth, "VAL002"},
		{"unknown language", fmt.Errorf("%w: %q", ErrUnknownLanguage, "german"), "VAL003"},
		{"invalid argument", ErrInvalidArgument, "VAL004"},
		{"csv not found", fmt.Errorf("%w: data/x.csv", ErrCSVNotFound), "FILE001"},
		{"header not found", ErrHeaderNotFound, "FILE002"},
		{"file too large", ErrFileTooLarge, "FILE003"},
		{"strict abort", fmt.Errorf("%w: 2 of 10 rows failed", ErrImportAborted), "IMP001"},
		{"context cancelled", fmt.Errorf("import cancelled: %w", context.Canceled), "REQ001"},
		{"deadline", context.DeadlineExceeded, "REQ002"},
		{"sqlite unique", errors.New("UNIQUE constraint failed: reflections.date, reflections.language"), "DB001"},
		{"postgres duplicate", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001"},
		{"sqlite locked", errors.New("database is locked"), "DB002"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB003"},
		{"missing table", errors.New("no such table: reflections"), "DB004"},
		{"postgres missing table", errors.New(`ERROR: relation "reflections" does not exist (SQLSTATE 42P01)`), "DB004"},
		{"missing file is not a missing table", errors.New("open data/reflections.csv: file does not exist"), "ERR000"},
		{"other postgres relation", errors.New(`ERROR: relation "users" does not exist (SQLSTATE 42P01)`), "ERR000"},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_LanguageActionListsNames(t *testing.T) {
	msg := MapError(ErrUnknownLanguage)
	for _, name := range LanguageNames() {
		if !strings.Contains(msg.Action, name) {
			t.Errorf("Action %q should list %s", msg.Action, name)
		}
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrNotFound)
	want := "No reflection found (Code: REF001). Try another date or language"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
	if !IsUserFacing(ErrInvalidMonth) {
		t.Error("ErrInvalidMonth should be user facing")
	}
	if IsUserFacing(errors.New("segfault")) {
		t.Error("unmatched error should not be user facing")
	}
}
