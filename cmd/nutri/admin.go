package nutri

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/view"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative views (superusers only)",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			users, err := screen.NewAdmin(e.client, e.log).Users(ctx)
			if errors.Is(err, screen.ErrNotAdmin) {
				return fmt.Errorf("%w; see `nutri dashboard`", screen.ErrNotAdmin)
			}
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					strconv.FormatInt(u.ID, 10), u.Email, u.FullName,
					strconv.FormatBool(u.IsSuperuser), strconv.FormatBool(u.IsActive),
				})
			}
			return view.Table(cmd.OutOrStdout(), []string{"ID", "EMAIL", "NAME", "ADMIN", "ACTIVE"}, rows)
		})
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd)
}
