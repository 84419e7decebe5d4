package core

import (
	"fmt"
	"strings"
)

// Language identifies one partition of the reflections table.
type Language string

// The closed set of supported languages. The string values are the ones
// stored in the language column.
const (
	English      Language = "english"
	Spanish      Language = "spanish"
	French       Language = "french"
	PortugueseBR Language = "pt-BR"
)

// Languages lists the supported languages in display order.
var Languages = []Language{English, Spanish, French, PortugueseBR}

type languageInfo struct {
	display string // selector label
	heading string // multilingual comparison heading
	code    string // URL and sitemap code
	file    string // export file base name
}

var languageTable = map[Language]languageInfo{
	English:      {"🇺🇸 English", "🇺🇸 ENGLISH", "en", "daily_reflections_english"},
	Spanish:      {"🇪🇸 Español", "🇪🇸 ESPAÑOL", "es", "daily_reflections_spanish"},
	French:       {"🇫🇷 Français", "🇫🇷 FRANÇAIS", "fr", "daily_reflections_french"},
	PortugueseBR: {"🇧🇷 Português (Brasil)", "🇧🇷 PORTUGUÊS (BRASIL)", "pt-br", "daily_reflections_brazilian-portuguese"},
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := languageTable[l]
	return ok
}

// DisplayName returns the flag-prefixed native name, or the raw value for
// languages outside the supported set.
func (l Language) DisplayName() string {
	if info, ok := languageTable[l]; ok {
		return info.display
	}
	return string(l)
}

// Heading returns the upper-case label used in side-by-side comparisons.
func (l Language) Heading() string {
	if info, ok := languageTable[l]; ok {
		return info.heading
	}
	return strings.ToUpper(string(l))
}

// Code returns the short code used in URLs (en, es, fr, pt-br).
func (l Language) Code() string {
	if info, ok := languageTable[l]; ok {
		return info.code
	}
	return strings.ToLower(string(l))
}

// ExportBaseName returns the data file name without extension.
func (l Language) ExportBaseName() string {
	if info, ok := languageTable[l]; ok {
		return info.file
	}
	return "daily_reflections_" + strings.ToLower(string(l))
}

func (l Language) String() string { return string(l) }

// ParseLanguage accepts a canonical language name or URL code,
// case-insensitively.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(s, string(l)) || strings.EqualFold(s, languageTable[l].code) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// LanguageNames returns the canonical names of all supported languages.
func LanguageNames() []string {
	names := make([]string, len(Languages))
	for i, l := range Languages {
		names[i] = string(l)
	}
	return names
}
