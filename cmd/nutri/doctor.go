package nutri

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/api"
	"github.com/saadjs/nutri-cli/internal/session"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check local state, backend reachability and the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			out := cmd.OutOrStdout()
			problems := 0
			fmt.Fprintf(out, "State: %s\n", e.cfg.StatePath)
			fmt.Fprintf(out, "Backend: %s (timeout %s)\n", e.cfg.APIURL, timeoutLabel(e.cfg.Timeout))

			token, ok, err := e.sess.Credential(ctx)
			if err != nil {
				return err
			}
			switch {
			case !ok:
				fmt.Fprintln(out, "Credential: none")
			default:
				claims, err := session.Inspect(token)
				switch {
				case err != nil:
					fmt.Fprintln(out, "Credential: stored, unreadable")
				case claims.Expired(time.Now()):
					fmt.Fprintf(out, "Credential: expired at %s\n", claims.ExpiresAt.Local().Format(time.RFC3339))
					problems++
				default:
					fmt.Fprintf(out, "Credential: %s\n", claims.Subject)
				}
			}

			_, err = e.client.Me(ctx)
			var apiErr *api.Error
			switch {
			case err == nil:
				fmt.Fprintln(out, "Reachable: yes (authenticated)")
			case errors.As(err, &apiErr):
				fmt.Fprintf(out, "Reachable: yes (status %d)\n", apiErr.Status)
				if ok && api.IsUnauthorized(err) {
					problems++
				}
			default:
				fmt.Fprintf(out, "Reachable: no (%v)\n", err)
				problems++
			}
			if problems > 0 {
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			return nil
		})
	},
}

func timeoutLabel(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
