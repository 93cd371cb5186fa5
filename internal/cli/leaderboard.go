package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akorchagin/partnerpulse/internal/analytics"
	"github.com/akorchagin/partnerpulse/internal/config"
	"github.com/akorchagin/partnerpulse/internal/leaderboard"
	"github.com/akorchagin/partnerpulse/internal/period"
	"github.com/akorchagin/partnerpulse/internal/util"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the partner leaderboard",
	Long: `Print the partner leaderboard for a period.

Examples:
  partnerpulse leaderboard                          # This week, by leads
  partnerpulse leaderboard --period month           # This month
  partnerpulse leaderboard --sort commissionUsd     # By commission
  partnerpulse leaderboard --online                 # Online partners only`,
	RunE: runLeaderboard,
}

var (
	leaderboardPeriod string
	leaderboardSort   string
	leaderboardQuery  string
	leaderboardOnline bool
)

func init() {
	rootCmd.AddCommand(leaderboardCmd)

	leaderboardCmd.Flags().StringVarP(&leaderboardPeriod, "period", "p", "week", "Time period: week, month, allTime")
	leaderboardCmd.Flags().StringVarP(&leaderboardSort, "sort", "s", "leadsAdded", "Sort column")
	leaderboardCmd.Flags().StringVarP(&leaderboardQuery, "query", "q", "", "Filter by name substring")
	leaderboardCmd.Flags().BoolVar(&leaderboardOnline, "online", false, "Only partners online now")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	p, ok := period.Parse(leaderboardPeriod)
	if !ok {
		return fmt.Errorf("unknown period %q", leaderboardPeriod)
	}
	column, ok := leaderboard.ParseColumn(leaderboardSort)
	if !ok {
		return fmt.Errorf("unknown sort column %q", leaderboardSort)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen := analytics.NewGenerator(cfg.Seed, nil)
	partners := leaderboard.Sort(
		leaderboard.Filter(gen.NetworkSnapshot(p).Partners, leaderboard.Filters{
			Query:      leaderboardQuery,
			OnlineOnly: leaderboardOnline,
		}),
		column, leaderboard.Desc,
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Партнёры, %s\n\n", period.Label(p))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Имя\tЛиды\tЭтапы\tЗвонки\tЧаты\tПодборки\tКомиссия\tОнлайн")
	for _, row := range partners {
		online := analytics.FormatLastSeen(row.LastSeenMinutesAgo)
		if row.IsOnline {
			online = "онлайн"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\t%s\n",
			row.Name, row.LeadsAdded, row.StageChangesCount, row.CallClicks,
			row.ChatOpens, row.SelectionsCreated, util.FormatMoneyUSD(row.CommissionUSD), online)
	}
	return w.Flush()
}
