package nutri

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/prefs"
)

// currentTheme is the stored theme, falling back to NUTRI_THEME, then light.
func currentTheme(ctx context.Context, e *env) (prefs.Theme, error) {
	fallback := prefs.ThemeLight
	if e.cfg.Theme != "" {
		t, err := prefs.ParseTheme(e.cfg.Theme)
		if err != nil {
			return "", fmt.Errorf("NUTRI_THEME: %w", err)
		}
		fallback = t
	}
	return prefs.GetTheme(ctx, e.kv, fallback)
}

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the display theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			cur, err := currentTheme(ctx, e)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cur)
				return nil
			}
			next := cur.Toggle()
			if !strings.EqualFold(args[0], "toggle") {
				if next, err = prefs.ParseTheme(args[0]); err != nil {
					return err
				}
			}
			if err := prefs.SetTheme(ctx, e.kv, next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", next)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
