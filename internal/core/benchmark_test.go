package core

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/transform"
)

// benchmarkCSV builds a file of n rows spread over the four languages.
func benchmarkCSV(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("\ufeff" + strings.Join(CSVColumns, ",") + "\n")
	for i := 0; i < n; i++ {
		lang := Languages[i%len(Languages)]
		fmt.Fprintf(&buf, "2025-%02d-%02d,%s,Title %d,\"Quote, %d\",Reflection text number %d with some words,p. %d\n",
			i%12+1, i%28+1, lang, i, i, i, i)
	}
	return buf.Bytes()
}

func BenchmarkWrapForStreaming(b *testing.B) {
	data := benchmarkCSV(2000)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := WrapForStreaming(bytes.NewReader(data), int64(len(data)))
		if _, err := io.Copy(io.Discard, s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSanitizer_InvalidInput(b *testing.B) {
	input := make([]byte, 4096)
	for i := range input {
		if i%10 == 0 {
			input[i] = 0x80
		} else {
			input[i] = 'a'
		}
	}
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := io.Copy(io.Discard, transform.NewReader(bytes.NewReader(input), NewSanitizer())); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseRows(b *testing.B) {
	data := benchmarkCSV(2000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cr := newCSVReader(WrapForStreaming(bytes.NewReader(data), int64(len(data))))
		idx, _, err := findHeader(cr)
		if err != nil {
			b.Fatal(err)
		}
		for {
			record, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				b.Fatal(err)
			}
			if isEmptyRow(record) || rowLanguage(record, idx) != string(PortugueseBR) {
				continue
			}
			if _, err := parseRow(record, idx); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkIsEmptyRow(b *testing.B) {
	row := []string{"", "  ", "\t", "", "   ", ""}
	for i := 0; i < b.N; i++ {
		_ = isEmptyRow(row)
	}
}
