// Package display renders reflections, statistics and import reports as
// fixed-width console text.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/reflections/internal/core"
)

const (
	// CardWidth is the interior width of a single reflection card.
	CardWidth = 78

	// PageWidth is the width of the multilingual comparison.
	PageWidth = 100

	longDate = "Monday, January 02, 2006"
)

// FormatDate renders a YYYY-MM-DD date as "Wednesday, January 01, 2025",
// falling back to the raw value when it does not parse.
func FormatDate(date string) string {
	t, err := time.Parse(core.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(longDate)
}

// Reflection writes a bordered card for r. The reflection text is included
// only when full is set. A nil reflection prints a not-found line.
func Reflection(w io.Writer, r *core.Reflection, full bool) error {
	if r == nil {
		_, err := fmt.Fprintln(w, "❌ No reflection found.")
		return err
	}

	box := NewBox(CardWidth).
		Line("📅 " + FormatDate(r.Date)).
		Divider().
		Line("📖 " + r.Title).
		Divider().
		Wrapped("💭 " + r.Quote)
	if full {
		box.Divider().Wrapped("🔍 " + r.Text)
	}
	box.Divider().Line("📚 " + r.Reference)

	return box.Render(w)
}

// Multilingual writes the side-by-side comparison of one date across every
// language present in reflections, in display order.
func Multilingual(w io.Writer, reflections map[core.Language]core.Reflection, date string) error {
	if len(reflections) == 0 {
		_, err := fmt.Fprintf(w, "❌ No reflections found for %s\n", date)
		return err
	}

	var sb strings.Builder
	heavy := strings.Repeat("═", PageWidth)

	sb.WriteString(heavy + "\n")
	sb.WriteString(Center("🌟 DAILY REFLECTIONS - AA 🌟", PageWidth) + "\n")
	sb.WriteString(heavy + "\n")
	sb.WriteString(Center(FormatDate(date), PageWidth) + "\n")
	sb.WriteString(heavy + "\n")

	first := true
	for _, lang := range core.Languages {
		r, ok := reflections[lang]
		if !ok {
			continue
		}
		if !first {
			sb.WriteString("\n" + strings.Repeat("·", PageWidth) + "\n")
		}
		first = false

		sb.WriteString("\n" + Center(lang.Heading(), PageWidth) + "\n")
		sb.WriteString(strings.Repeat("─", PageWidth) + "\n")
		sb.WriteString("📖 " + r.Title + "\n\n")
		sb.WriteString(NewBox(PageWidth - 8).Wrapped(r.Quote).String())
		sb.WriteString("\n")
		for _, line := range WrapText(r.Text, PageWidth-5) {
			sb.WriteString("   " + line + "\n")
		}
		sb.WriteString("\n📚 " + r.Reference + "\n")
	}
	sb.WriteString("\n" + heavy + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SearchResults writes a count line followed by up to limit short cards.
// A limit of zero or less shows every result.
func SearchResults(w io.Writer, keyword string, results []core.Reflection, limit int) error {
	if _, err := fmt.Fprintf(w, "Found %d reflections containing %q\n", len(results), keyword); err != nil {
		return err
	}
	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}
	for i := range results[:limit] {
		if _, err := fmt.Fprintf(w, "\nResult %d:\n", i+1); err != nil {
			return err
		}
		if err := Reflection(w, &results[i], false); err != nil {
			return err
		}
	}
	return nil
}

// List writes one line per reflection: date and title.
func List(w io.Writer, reflections []core.Reflection) error {
	for _, r := range reflections {
		if _, err := fmt.Fprintf(w, "%s  %s\n", r.Date, r.Title); err != nil {
			return err
		}
	}
	return nil
}
