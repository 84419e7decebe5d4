// Package templates renders the HTML pages of the reflections site.
//
// Markup lives in the .templ files; run `templ generate` after editing them
// and commit the regenerated *_templ.go files.
package templates

import (
	"strings"

	"github.com/JonMunkholm/reflections/internal/core"
)

// Strings holds the interface labels of one language.
type Strings struct {
	Title           string
	Previous        string
	Today           string
	Next            string
	NotFoundTitle   string
	NotFoundMessage string
}

var uiStrings = map[core.Language]Strings{
	core.PortugueseBR: {
		Title:           "Portal de Reflexões Diárias A.A.",
		Previous:        "Anterior",
		Today:           "Hoje",
		Next:            "Próximo",
		NotFoundTitle:   "Reflexão não encontrada",
		NotFoundMessage: "Não foi possível encontrar uma reflexão para esta data.",
	},
	core.English: {
		Title:           "A.A. Daily Reflections Portal",
		Previous:        "Previous",
		Today:           "Today",
		Next:            "Next",
		NotFoundTitle:   "Reflection not found",
		NotFoundMessage: "Could not find a reflection for this date.",
	},
	core.French: {
		Title:           "Portail des Réflexions Quotidiennes A.A.",
		Previous:        "Précédent",
		Today:           "Aujourd'hui",
		Next:            "Suivant",
		NotFoundTitle:   "Réflexion non trouvée",
		NotFoundMessage: "Impossible de trouver une réflexion pour cette date.",
	},
	core.Spanish: {
		Title:           "Portal de Reflexiones Diarias A.A.",
		Previous:        "Anterior",
		Today:           "Hoy",
		Next:            "Siguiente",
		NotFoundTitle:   "Reflexión no encontrada",
		NotFoundMessage: "No se pudo encontrar una reflexión para esta fecha.",
	},
}

// UI returns the labels for lang, falling back to Portuguese.
func UI(lang core.Language) Strings {
	if s, ok := uiStrings[lang]; ok {
		return s
	}
	return uiStrings[core.PortugueseBR]
}

// LanguageLink is one entry of the language selector.
type LanguageLink struct {
	Label  string
	Href   string
	Active bool
}

// PageData is everything the reflection page shows.
type PageData struct {
	Date        string
	DisplayDate string
	Language    core.Language
	Reflection  *core.Reflection // nil renders the not-found card

	PrevHref  string
	TodayHref string
	NextHref  string
	Languages []LanguageLink
}

// Paragraphs splits text on blank lines, dropping empty paragraphs.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func htmlLang(lang core.Language) string {
	if lang == core.PortugueseBR {
		return "pt-BR"
	}
	return lang.Code()
}
