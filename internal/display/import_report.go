package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/reflections/internal/core"
)

const reportWidth = 44

// ImportReport writes the outcome of an import: counts, failed rows and the
// per-language breakdown of the table afterwards.
func ImportReport(w io.Writer, res *core.ImportResult) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "✅ Imported %d %s reflections from %s\n", res.Inserted, res.Language.DisplayName(), res.FileName)
	fmt.Fprintf(&sb, "   Verified %d entries in database\n", res.Stored)
	fmt.Fprintf(&sb, "   %d rows read, %d matched, %d skipped, %d failed (%s)\n",
		res.TotalRows, res.Matched, res.Skipped, res.Failed, res.Duration.Round(time.Millisecond))

	if failed := res.FailedRows(); len(failed) > 0 {
		sb.WriteString("\n")
		writeFailedRows(&sb, failed)
	}

	if len(res.Breakdown) > 0 {
		sb.WriteString("\n")
		box := NewBox(reportWidth).Centered("Language Statistics").Divider()
		for _, lang := range orderedLanguages(res.Breakdown) {
			box.Line(fmt.Sprintf("%s%8d", PadRight(lang.DisplayName()+":", reportWidth-10), res.Breakdown[lang]))
		}
		sb.WriteString(box.String())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FailedRows lists rows rejected by an import, one per line.
func FailedRows(w io.Writer, rows []core.RowResult) error {
	var sb strings.Builder
	writeFailedRows(&sb, rows)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFailedRows(sb *strings.Builder, rows []core.RowResult) {
	fmt.Fprintf(sb, "❌ Failed rows (%d):\n", len(rows))
	for _, row := range rows {
		fmt.Fprintf(sb, "   line %d (%s): %s\n", row.Line, row.Date, row.Reason)
	}
}
