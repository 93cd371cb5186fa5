package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akorchagin/partnerpulse/internal/config"
	"github.com/akorchagin/partnerpulse/internal/period"
	"github.com/akorchagin/partnerpulse/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show plan-vs-fact progress",
	Long: `Show the personal plan targets against the period's realized numbers.

Examples:
  partnerpulse plan                   # This week's bucket
  partnerpulse plan --period month    # Monthly bucket`,
	RunE: runPlan,
}

var planPeriod string

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planPeriod, "period", "p", "week", "Time period: week, month, allTime")
}

func runPlan(cmd *cobra.Command, args []string) error {
	p, ok := period.Parse(planPeriod)
	if !ok {
		return fmt.Errorf("unknown period %q", planPeriod)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg.LogLevel)

	ctx := context.Background()
	eng, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer eng.close()

	snapshot, _ := eng.generator.PersonSnapshot(eng.generator.CurrentUserID(), p)
	facts := snapshot.DynamicKPI.PlanFacts()

	bucket := plan.BucketFor(string(p))
	targets := eng.tracker.Targets()
	rows := plan.Rows(targets.Metrics(bucket), facts)

	fmt.Fprintf(cmd.OutOrStdout(), "План, %s\n\n", period.Label(p))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Показатель\tПлан\tФакт\tПрогресс")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d%% %s\n",
			row.Label, row.Plan, row.Fact, row.Percent, progressBar(row.Percent))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nОбщий прогресс: %d%%\n", plan.Overall(rows))
	return nil
}

// progressBar renders a ten-cell bar, full cells capped at 100%.
func progressBar(percent int) string {
	filled := percent / 10
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
