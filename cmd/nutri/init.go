package nutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/app"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local nutri state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(cfg app.Config, _ *sql.DB) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized nutri state at %s\n", cfg.StatePath)
			fmt.Fprintf(cmd.OutOrStdout(), "Backend: %s\n", cfg.APIURL)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
