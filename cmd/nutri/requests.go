package nutri

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/view"
)

var requestsLimit int

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Show the most recent backend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		if requestsLimit <= 0 {
			return fmt.Errorf("--limit must be > 0")
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			entries, err := e.journal.Recent(ctx, requestsLimit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No requests recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, en := range entries {
				status := "-"
				if en.Status > 0 {
					status = strconv.Itoa(en.Status)
				}
				rows = append(rows, []string{
					en.CreatedAt.Local().Format("2006-01-02 15:04:05"), en.Method, en.Path, status,
					fmt.Sprintf("%dms", en.Duration.Milliseconds()), en.RequestID, en.Error,
				})
			}
			return view.Table(cmd.OutOrStdout(), []string{"TIME", "METHOD", "PATH", "STATUS", "TOOK", "REQUEST ID", "ERROR"}, rows)
		})
	},
}

func init() {
	rootCmd.AddCommand(requestsCmd)
	requestsCmd.Flags().IntVar(&requestsLimit, "limit", 20, "How many requests to show")
}
