// Package export writes the reflections table out as static data files
// and a sitemap for the web front end.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/reflections/internal/core"
)

// Source lists the reflections of one language in date order.
type Source interface {
	ListByLanguage(ctx context.Context, lang core.Language) ([]core.Reflection, error)
}

// Format selects the data file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q (want json or yaml)", core.ErrInvalidArgument, s)
	}
}

// Record is the shape of one entry in an exported data file.
type Record struct {
	Date    string `json:"date" yaml:"date"`
	Title   string `json:"title" yaml:"title"`
	Quote   string `json:"quote" yaml:"quote"`
	Text    string `json:"text" yaml:"text"`
	Content string `json:"content" yaml:"content"`
}

// FileResult describes one written data file.
type FileResult struct {
	Language core.Language
	Path     string
	Count    int
}

// WriteLanguageFiles writes one data file per supported language into dir,
// named like daily_reflections_english.json. Languages with no rows still
// get a file holding an empty list.
func WriteLanguageFiles(ctx context.Context, src Source, dir string, format Format) ([]FileResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	results := make([]FileResult, 0, len(core.Languages))
	for _, lang := range core.Languages {
		reflections, err := src.ListByLanguage(ctx, lang)
		if err != nil {
			return results, fmt.Errorf("list %s reflections: %w", lang, err)
		}

		data, err := Encode(toRecords(reflections), format)
		if err != nil {
			return results, fmt.Errorf("encode %s reflections: %w", lang, err)
		}

		path := filepath.Join(dir, lang.ExportBaseName()+"."+string(format))
		if err := writeFileAtomic(path, data); err != nil {
			return results, err
		}
		results = append(results, FileResult{Language: lang, Path: path, Count: len(reflections)})
	}
	return results, nil
}

// Encode serializes records in the given format.
func Encode(records []Record, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

func toRecords(reflections []core.Reflection) []Record {
	records := make([]Record, len(reflections))
	for i, r := range reflections {
		records[i] = Record{
			Date:    r.Date,
			Title:   r.Title,
			Quote:   r.Quote,
			Text:    r.Text,
			Content: r.Reference,
		}
	}
	return records
}

// writeFileAtomic writes to a temp file in the same directory and renames
// it into place so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
