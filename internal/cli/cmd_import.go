package cli

import (
	"errors"
	"log/slog"

	"github.com/JonMunkholm/reflections/internal/core"
	"github.com/JonMunkholm/reflections/internal/display"
	"github.com/spf13/cobra"
)

func newImportCommand(d *commandDeps) *cobra.Command {
	var (
		csvPath string
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace one language's reflections with the rows of a CSV file",
		Long: `Import deletes every reflection of the target language and inserts the
matching rows of the CSV file in a single transaction. Other languages are
left untouched. Rows that fail are reported; with --strict any failure
rolls the whole import back.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVar(&csvPath, "csv", d.cfg.Import.CSVPath, "CSV file to import")
	cmd.Flags().BoolVar(&strict, "strict", d.cfg.Import.Strict, "Roll back the import if any row fails")
	lang := languageFlag(cmd, d.cfg.Import.Language)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		l, err := lang()
		if err != nil {
			return err
		}

		opts := core.ImportOptions{
			CSVPath:     csvPath,
			Language:    l,
			Strict:      strict,
			MaxFileSize: d.cfg.Import.MaxFileSize,
		}
		// Opening the database creates it, so reject a bad source first.
		if _, err := core.CheckImportSource(opts); err != nil {
			return err
		}
		return withService(cmd.Context(), d, func(svc *core.Service) error {
			res, err := svc.Import(cmd.Context(), opts)
			if errors.Is(err, core.ErrImportAborted) && res != nil {
				if ferr := display.FailedRows(d.out, res.FailedRows()); ferr != nil {
					slog.Error("write failed rows", "error", ferr)
				}
				return err
			}
			if err != nil {
				return err
			}
			return display.ImportReport(d.out, res)
		}, core.WithProgress(logProgress))
	}
	return cmd
}

func logProgress(p core.ImportProgress) {
	slog.Debug("import progress",
		"import_id", p.ImportID,
		"phase", p.Phase,
		"row", p.CurrentRow,
		"inserted", p.Inserted,
		"failed", p.Failed,
		"percent", p.Percent(),
	)
}
