package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/JonMunkholm/reflections/internal/core"
	"github.com/JonMunkholm/reflections/internal/display"
	"github.com/spf13/cobra"
)

func newDemoCommand(d *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through the read operations against the current database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), d, func(svc *core.Service) error {
				return runDemo(cmd.Context(), d.out, svc)
			})
		},
	}
}

type demoStep struct {
	heading string
	run     func(ctx context.Context, w io.Writer, svc *core.Service) error
}

var demoSteps = []demoStep{
	{"1️⃣  Today's Reflection (English):", func(ctx context.Context, w io.Writer, svc *core.Service) error {
		return showReflection(w)(svc.GetToday(ctx, core.English))
	}},
	{"2️⃣  Multilingual Daily Comparison (January 1st):", func(ctx context.Context, w io.Writer, svc *core.Service) error {
		const date = "2025-01-01"
		all, err := svc.GetAllLanguages(ctx, date)
		if err != nil {
			return err
		}
		return display.Multilingual(w, all, date)
	}},
	{"3️⃣  Random Reflection (Brazilian Portuguese):", func(ctx context.Context, w io.Writer, svc *core.Service) error {
		return showReflection(w)(svc.GetRandom(ctx, core.PortugueseBR))
	}},
	{"4️⃣  Search Results for 'hope':", func(ctx context.Context, w io.Writer, svc *core.Service) error {
		results, err := svc.Search(ctx, "hope", core.English)
		if err != nil {
			return err
		}
		return display.SearchResults(w, "hope", results, 2)
	}},
	{"5️⃣  Search Results for 'Deus' (Portuguese):", func(ctx context.Context, w io.Writer, svc *core.Service) error {
		results, err := svc.Search(ctx, "Deus", core.PortugueseBR)
		if err != nil {
			return err
		}
		return display.SearchResults(w, "Deus", results, 1)
	}},
	{"6️⃣  Database Statistics:", func(ctx context.Context, w io.Writer, svc *core.Service) error {
		stats, err := svc.GetStatistics(ctx)
		if err != nil {
			return err
		}
		return display.Statistics(w, stats)
	}},
}

// runDemo prints every step. Missing reflections are shown inline; any
// other error stops the walkthrough.
func runDemo(ctx context.Context, w io.Writer, svc *core.Service) error {
	fmt.Fprintln(w, "🌟 AA Daily Reflections Database - Basic Usage Examples")
	for _, step := range demoSteps {
		fmt.Fprintf(w, "\n%s\n", step.heading)
		if err := step.run(ctx, w, svc); err != nil {
			return err
		}
	}
	return nil
}

func showReflection(w io.Writer) func(*core.Reflection, error) error {
	return func(r *core.Reflection, err error) error {
		if errors.Is(err, core.ErrNotFound) {
			return display.Reflection(w, nil, true)
		}
		if err != nil {
			return err
		}
		return display.Reflection(w, r, true)
	}
}
