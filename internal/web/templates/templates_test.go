package templates

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/reflections/internal/core"
)

func TestParagraphs(t *testing.T) {
	got := Paragraphs("One\r\n\r\nTwo\n\n\n\n  Three  \n")
	want := []string{"One", "Two", "Three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs = %q, want %q", got, want)
	}
	if got := Paragraphs("   "); got != nil {
		t.Errorf("Paragraphs(blank) = %q, want nil", got)
	}
}

func TestUI_FallsBackToPortuguese(t *testing.T) {
	if got := UI(core.Language("german")).Today; got != "Hoje" {
		t.Errorf("UI(german).Today = %q, want Hoje", got)
	}
	if got := UI(core.Spanish).Next; got != "Siguiente" {
		t.Errorf("UI(spanish).Next = %q", got)
	}
}

func TestErrorAlert_Escapes(t *testing.T) {
	var buf bytes.Buffer
	if err := ErrorAlert("<bad>", "", "ERR000").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "&lt;bad&gt;") || strings.Contains(out, "<bad>") {
		t.Errorf("message not escaped: %s", out)
	}
	if strings.Contains(out, "<p></p>") {
		t.Errorf("empty action rendered: %s", out)
	}
}

func TestReflectionPage_LanguageSelector(t *testing.T) {
	var buf bytes.Buffer
	page := ReflectionPage(PageData{
		Date:     "2025-01-01",
		Language: core.French,
		Languages: []LanguageLink{
			{Label: "English", Href: "/?lang=en"},
			{Label: "Français", Href: "/?lang=fr", Active: true},
		},
	})
	if err := page.Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<html lang="fr">`,
		`<a href="/?lang=fr" class="active" aria-current="page">Français</a>`,
		`<a href="/?lang=en">English</a>`,
		"Réflexion non trouvée",
		"</main></body></html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestReflectionPage_Card(t *testing.T) {
	var buf bytes.Buffer
	page := ReflectionPage(PageData{
		Date:        "2025-01-01",
		DisplayDate: "Wednesday, January 01, 2025",
		Language:    core.PortugueseBR,
		PrevHref:    "/?date=2024-12-31&lang=pt-br",
		Reflection: &core.Reflection{
			Date:     "2025-01-01",
			Language: core.PortugueseBR,
			Title:    "Novo <Começo>",
			Text:     "Um.\n\nDois.",
		},
	})
	if err := page.Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<html lang="pt-BR">`,
		`<title>Portal de Reflexões Diárias A.A.</title>`,
		`<time datetime="2025-01-01">Wednesday, January 01, 2025</time>`,
		`<h2>Novo &lt;Começo&gt;</h2>`,
		`<p>Um.</p><p>Dois.</p>`,
		`<a rel="prev" href="/?date=2024-12-31&amp;lang=pt-br">← Anterior</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	for _, absent := range []string{"<blockquote>", `<p class="reference"></p>`} {
		if strings.Contains(out, absent) {
			t.Errorf("page should not contain %q", absent)
		}
	}
}
