package nutri

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/view"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log weigh-ins and show history",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Record a weigh-in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := parsePositiveFloat("weight", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			entry, err := screen.NewProfile(e.client, e.log).AddWeight(ctx, kg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f kg on %s\n", entry.Weight, view.FormatDate(entry.Date))
			return nil
		})
	},
}

var weightHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show weigh-ins, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			prof := screen.NewProfile(e.client, e.log)
			if err := prof.Load(ctx); err != nil {
				return err
			}
			series := prof.Series()
			out := cmd.OutOrStdout()
			if len(series) == 0 {
				fmt.Fprintln(out, "No weigh-ins yet")
				return nil
			}
			rows := make([][]string, 0, len(series))
			for _, p := range series {
				rows = append(rows, []string{view.FormatDate(p.Date), fmt.Sprintf("%.1f", p.Weight)})
			}
			if err := view.Table(out, []string{"DATE", "KG"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s  %+.1f kg\n", view.Sparkline(series), view.Delta(series))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightHistoryCmd)
}
