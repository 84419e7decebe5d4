package cli

import (
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/reflections/internal/core"
	"github.com/JonMunkholm/reflections/internal/export"
	"github.com/spf13/cobra"
)

func newExportCommand(d *commandDeps) *cobra.Command {
	var dir, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one data file per language for the static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), d, func(svc *core.Service) error {
				files, err := export.WriteLanguageFiles(cmd.Context(), svc, dir, f)
				if err != nil {
					return err
				}
				for _, file := range files {
					slog.Info("data file written", "language", file.Language, "path", file.Path, "count", file.Count)
					fmt.Fprintf(d.out, "✅ %-28s %5d reflections → %s\n", file.Language.DisplayName(), file.Count, file.Path)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", d.cfg.Site.ExportDir, "Output directory")
	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "File format: json or yaml")
	return cmd
}

func newSitemapCommand(d *commandDeps) *cobra.Command {
	var out, baseURL string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml with one URL per reflection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), d, func(svc *core.Service) error {
				set, err := export.BuildSitemap(cmd.Context(), svc, baseURL, d.now())
				if err != nil {
					return err
				}
				if err := export.WriteSitemapFile(out, set); err != nil {
					return err
				}
				slog.Info("sitemap written", "path", out, "urls", len(set.URLs))
				_, err = fmt.Fprintf(d.out, "✅ Sitemap generated with %d URLs → %s\n", len(set.URLs), out)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", d.cfg.Site.SitemapPath, "Output file")
	cmd.Flags().StringVar(&baseURL, "base-url", d.cfg.Site.BaseURL, "Site base URL")
	return cmd
}
