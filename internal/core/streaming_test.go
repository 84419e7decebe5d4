package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"golang.org/x/text/transform"
)

func TestSanitizer_BOM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Language")...),
			expected: "Date,Language",
		},
		{
			name:     "file without BOM",
			input:    []byte("Date,Language"),
			expected: "Date,Language",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start is not stripped",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: "\uFFFD\uFFFDabc",
		},
		{
			name:     "BOM then invalid bytes",
			input:    []byte("\xEF\xBB\xBFDate,he\xFFlo,ok\xC3"),
			expected: "Date,he\uFFFDlo,ok\uFFFD",
		},
		{
			name:     "UTF-16 BOM decodes",
			input:    []byte{0xFF, 0xFE, 'D', 0, 'a', 0, 't', 0, 'e', 0},
			expected: "Date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := transform.NewReader(bytes.NewReader(tt.input), NewSanitizer())
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestSanitizer_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "valid multibyte",
			input:    []byte("Novo Começo,Português"),
			expected: "Novo Começo,Português",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he�lo",
		},
		{
			name:     "truncated rune at EOF",
			input:    []byte{'o', 'k', 0xC3},
			expected: "ok�",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := transform.NewReader(bytes.NewReader(tt.input), NewSanitizer())
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestSanitizer_RuneSplitAcrossReads(t *testing.T) {
	input := "Começo 🇧🇷 Reflexão"
	reader := transform.NewReader(iotest.OneByteReader(strings.NewReader(input)), NewSanitizer())

	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != input {
		t.Errorf("got %q, want %q", string(result), input)
	}
}

func TestCountingReader(t *testing.T) {
	input := strings.Repeat("x", 1000)
	reader := NewCountingReader(strings.NewReader(input), int64(len(input)))

	buf := make([]byte, 100)
	totalRead := 0
	for {
		n, err := reader.Read(buf)
		totalRead += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if totalRead != len(input) {
		t.Errorf("total read = %d, want %d", totalRead, len(input))
	}
	if reader.BytesRead != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", reader.BytesRead, len(input))
	}
	if reader.Progress() != 100 {
		t.Errorf("Progress = %d, want 100", reader.Progress())
	}
}

func TestCountingReader_UnknownTotal(t *testing.T) {
	reader := NewCountingReader(strings.NewReader("abc"), 0)
	_, _ = io.ReadAll(reader)
	if reader.Progress() != 0 {
		t.Errorf("Progress = %d, want 0 when total is unknown", reader.Progress())
	}
}

func TestWrapForStreaming(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte{'h', 'e', 0x80, 'l', 'o'}...)

	reader := WrapForStreaming(bytes.NewReader(input), int64(len(input)))
	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expected := "he�lo"; string(result) != expected {
		t.Errorf("got %q, want %q", string(result), expected)
	}

	// Counted before the BOM is stripped.
	if reader.Counter.BytesRead != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", reader.Counter.BytesRead, len(input))
	}
}
