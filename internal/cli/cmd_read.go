package cli

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/reflections/internal/core"
	"github.com/JonMunkholm/reflections/internal/display"
	"github.com/spf13/cobra"
)

func newTodayCommand(d *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's reflection",
		Args:  cobra.NoArgs,
	}
	lang := languageFlag(cmd, string(core.English))

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		l, err := lang()
		if err != nil {
			return err
		}
		return withService(cmd.Context(), d, func(svc *core.Service) error {
			r, err := svc.GetToday(cmd.Context(), l)
			if err != nil {
				return err
			}
			return display.Reflection(d.out, r, true)
		})
	}
	return cmd
}

func newDateCommand(d *commandDeps) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "date <YYYY-MM-DD>",
		Short: "Show the reflection for a date",
		Args:  cobra.ExactArgs(1),
	}
	lang := languageFlag(cmd, string(core.English))
	cmd.Flags().BoolVar(&all, "all", false, "Compare the date across every language")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		date := args[0]
		return withService(cmd.Context(), d, func(svc *core.Service) error {
			if all {
				reflections, err := svc.GetAllLanguages(cmd.Context(), date)
				if err != nil {
					return err
				}
				return display.Multilingual(d.out, reflections, date)
			}

			l, err := lang()
			if err != nil {
				return err
			}
			r, err := svc.GetByDate(cmd.Context(), date, l)
			if err != nil {
				return err
			}
			return display.Reflection(d.out, r, true)
		})
	}
	return cmd
}

func newRandomCommand(d *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random reflection",
		Args:  cobra.NoArgs,
	}
	lang := languageFlag(cmd, string(core.English))

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		l, err := lang()
		if err != nil {
			return err
		}
		return withService(cmd.Context(), d, func(svc *core.Service) error {
			r, err := svc.GetRandom(cmd.Context(), l)
			if err != nil {
				return err
			}
			return display.Reflection(d.out, r, true)
		})
	}
	return cmd
}

func newSearchCommand(d *commandDeps) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search titles, quotes and texts",
		Args:  cobra.ExactArgs(1),
	}
	lang := languageFlag(cmd, string(core.English))
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n results (0 shows all)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		l, err := lang()
		if err != nil {
			return err
		}
		if limit < 0 {
			return fmt.Errorf("%w: --limit %d", core.ErrInvalidArgument, limit)
		}
		return withService(cmd.Context(), d, func(svc *core.Service) error {
			results, err := svc.Search(cmd.Context(), args[0], l)
			if err != nil {
				return err
			}
			return display.SearchResults(d.out, args[0], results, limit)
		})
	}
	return cmd
}

func newMonthCommand(d *commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month <1-12>",
		Short: "List the reflections of a calendar month",
		Args:  cobra.ExactArgs(1),
	}
	lang := languageFlag(cmd, string(core.English))

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		month, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", core.ErrInvalidMonth, args[0])
		}
		l, err := lang()
		if err != nil {
			return err
		}
		return withService(cmd.Context(), d, func(svc *core.Service) error {
			reflections, err := svc.GetByMonth(cmd.Context(), month, l)
			if err != nil {
				return err
			}
			if len(reflections) == 0 {
				_, err := fmt.Fprintf(d.out, "No %s reflections for month %d\n", l, month)
				return err
			}
			return display.List(d.out, reflections)
		})
	}
	return cmd
}

func newStatsCommand(d *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts and average text length per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), d, func(svc *core.Service) error {
				stats, err := svc.GetStatistics(cmd.Context())
				if err != nil {
					return err
				}
				return display.Statistics(d.out, stats)
			})
		},
	}
}
