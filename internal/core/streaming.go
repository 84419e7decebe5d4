package core

// streaming.go wraps the import file so it can be parsed in one pass
// without loading it into memory:
//
//   - CountingReader tracks raw bytes read for progress reporting
//   - NewSanitizer drops a leading byte order mark left by spreadsheet
//     exports and replaces invalid UTF-8 bytes with U+FFFD
//
// Use WrapForStreaming to apply both in the right order.

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// NewSanitizer returns a transformer that strips a UTF-8 BOM and repairs
// ill-formed UTF-8. A UTF-16 BOM switches to decoding UTF-16 instead.
// Transformers are stateful, so each stream needs its own.
func NewSanitizer() transform.Transformer {
	return transform.Chain(unicode.BOMOverride(transform.Nop), runes.ReplaceIllFormed())
}

// CountingReader tracks bytes read from the underlying file.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
	Total     int64 // 0 if unknown
}

// NewCountingReader creates a counting reader with optional total size.
func NewCountingReader(r io.Reader, total int64) *CountingReader {
	return &CountingReader{reader: r, Total: total}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// Progress returns the read progress as a percentage (0-100).
func (r *CountingReader) Progress() int {
	if r.Total <= 0 {
		return 0
	}
	return int(r.BytesRead * 100 / r.Total)
}

// StreamingReader is the reader handed to the CSV parser plus the counter
// that observes the raw file underneath it.
type StreamingReader struct {
	io.Reader
	Counter *CountingReader
}

// WrapForStreaming counts raw file bytes, then strips the BOM and sanitizes
// UTF-8. Counting sits closest to the file so progress matches the file size.
func WrapForStreaming(r io.Reader, totalSize int64) *StreamingReader {
	counter := NewCountingReader(r, totalSize)
	return &StreamingReader{
		Reader:  transform.NewReader(counter, NewSanitizer()),
		Counter: counter,
	}
}
