// Package cli implements the reflections command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JonMunkholm/reflections/internal/config"
	"github.com/JonMunkholm/reflections/internal/core"
	db "github.com/JonMunkholm/reflections/internal/database"
	"github.com/spf13/cobra"
)

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// nowFn is the clock for today and the sitemap; tests replace it.
var nowFn = time.Now

// commandDeps is shared by every subcommand.
type commandDeps struct {
	out   io.Writer
	cfg   *config.Config
	dbURL string // --db, overrides cfg.Database.URL when set
	now   func() time.Time
}

// Run executes the command line and returns the process exit code.
// Errors are logged with their technical detail and printed to errOut as
// user messages.
func Run(ctx context.Context, args []string, out, errOut io.Writer, cfg *config.Config) int {
	cmd := NewRootCommand(out, cfg)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(errOut, "❌ "+errorText(err))
		return ExitCodeError
	}
	return ExitCodeSuccess
}

// errorText prefers the mapped user message and falls back to the raw
// error for usage problems cobra reports itself.
func errorText(err error) string {
	if !core.IsUserFacing(err) {
		return err.Error()
	}
	return core.FormatUserError(err)
}

// NewRootCommand builds the command tree.
func NewRootCommand(out io.Writer, cfg *config.Config) *cobra.Command {
	deps := &commandDeps{out: out, cfg: cfg, now: nowFn}

	cmd := &cobra.Command{
		Use:           "reflections",
		Short:         "Browse, import and publish the multilingual daily reflections database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVar(&deps.dbURL, "db", "", "SQLite path or postgres:// URL (overrides DATABASE_URL)")

	cmd.AddCommand(
		newTodayCommand(deps),
		newDateCommand(deps),
		newRandomCommand(deps),
		newSearchCommand(deps),
		newMonthCommand(deps),
		newStatsCommand(deps),
		newImportCommand(deps),
		newExportCommand(deps),
		newSitemapCommand(deps),
		newServeCommand(deps),
		newDemoCommand(deps),
	)
	return cmd
}

func (d *commandDeps) databaseURL() string {
	if d.dbURL != "" {
		return d.dbURL
	}
	return d.cfg.Database.URL
}

// withService opens the database for the duration of fn.
func withService(ctx context.Context, d *commandDeps, fn func(*core.Service) error, opts ...core.Option) error {
	conn, err := db.Open(ctx, d.databaseURL(), db.Options{
		MaxOpenConns:    d.cfg.Database.MaxOpenConns,
		MaxIdleConns:    d.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: d.cfg.Database.ConnMaxLifetime,
		BusyTimeout:     d.cfg.Database.BusyTimeout,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	slog.Debug("database opened", "url", config.MaskURL(d.databaseURL()), "dialect", db.DialectFor(conn.DriverName()))

	opts = append([]core.Option{
		core.WithClock(d.now),
		core.WithImportTimeout(d.cfg.Import.Timeout),
	}, opts...)
	return fn(core.NewService(conn, opts...))
}

// languageFlag registers --lang on cmd and returns its parser.
func languageFlag(cmd *cobra.Command, def string) func() (core.Language, error) {
	raw := cmd.Flags().StringP("lang", "l", def, "Language: english, spanish, french, pt-BR (or en, es, fr, pt-br)")
	return func() (core.Language, error) {
		return core.ParseLanguage(*raw)
	}
}
