package nutri

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/view"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Greeting and a summary of your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			u, err := e.auth.CurrentUser(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Olá, %s!\n", view.Title(u.FullName))

			prof := screen.NewProfile(e.client, e.log)
			if err := prof.Load(ctx); err != nil {
				return err
			}
			if p, ok := prof.Current(); ok {
				fmt.Fprintf(out, "Goal\t%s\n", p.Goal.Label())
				fmt.Fprintf(out, "Weight\t%.1f kg\n", p.Weight)
			} else {
				fmt.Fprintln(out, "No profile yet: run `nutri profile set` to get meal plans.")
			}

			recipes := screen.NewRecipes(e.client, e.log)
			if err := recipes.Load(ctx); err != nil {
				return err
			}
			all := recipes.All()
			favs := 0
			for _, r := range all {
				if r.IsFavorite {
					favs++
				}
			}
			fmt.Fprintf(out, "Recipes\t%d (%d favourite)\n", len(all), favs)
			if u.IsSuperuser {
				fmt.Fprintln(out, "Admin\t`nutri admin users` lists every account")
			}
			theme, err := currentTheme(ctx, e)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Theme\t%s\n", theme)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
