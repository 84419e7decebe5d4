package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/reflections/internal/core"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	headerStyle = cellStyle.Bold(true)
)

// Statistics writes the row count and average text length per language.
func Statistics(w io.Writer, stats *core.Statistics) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Language", "Reflections", "Avg. length").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col > 0:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for _, lang := range orderedLanguages(stats.ByLanguage) {
		t.Row(
			lang.DisplayName(),
			strconv.Itoa(stats.ByLanguage[lang]),
			strconv.FormatFloat(stats.AverageTextLength[lang], 'f', 2, 64),
		)
	}
	t.Row("Total", strconv.Itoa(stats.TotalReflections), "")

	_, err := fmt.Fprintf(w, "📊 DATABASE STATISTICS\n%s\n", t.Render())
	return err
}

// orderedLanguages lists supported languages first in display order, then
// any other stored values alphabetically.
func orderedLanguages(counts map[core.Language]int) []core.Language {
	var out []core.Language
	for _, lang := range core.Languages {
		if _, ok := counts[lang]; ok {
			out = append(out, lang)
		}
	}

	var extra []core.Language
	for lang := range counts {
		if !lang.Valid() {
			extra = append(extra, lang)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
