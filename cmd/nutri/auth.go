package nutri

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			password, err := readSecret(cmd, bufio.NewReader(cmd.InOrStdin()), loginPassword, "password")
			if err != nil {
				return err
			}
			u, err := e.auth.Login(ctx, loginEmail, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", u.FullName, u.Email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := e.auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerConfirm  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			in := bufio.NewReader(cmd.InOrStdin())
			password, err := readSecret(cmd, in, registerPassword, "password")
			if err != nil {
				return err
			}
			confirm := registerConfirm
			if !cmd.Flags().Changed("confirm") {
				if confirm, err = readSecret(cmd, in, "", "confirm password"); err != nil {
					return err
				}
			}
			u, err := e.auth.Register(ctx, model.NewUser{
				FullName:        registerName,
				Email:           registerEmail,
				Password:        password,
				PasswordConfirm: confirm,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %d for %s; run `nutri login --email %s`\n", u.ID, u.Email, u.Email)
			return nil
		})
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect the stored credential",
}

var authStatusRemote bool

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who the stored token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			out := cmd.OutOrStdout()
			token, ok, err := e.sess.Credential(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			if claims, err := session.Inspect(token); err != nil {
				fmt.Fprintf(out, "Token stored (not a readable JWT: %v)\n", err)
			} else {
				fmt.Fprintf(out, "Subject\t%s\n", claims.Subject)
				if !claims.ExpiresAt.IsZero() {
					state := "valid"
					if claims.Expired(time.Now()) {
						state = "expired"
					}
					fmt.Fprintf(out, "Expires\t%s (%s)\n", claims.ExpiresAt.Local().Format(time.RFC3339), state)
				}
			}
			if !authStatusRemote {
				return nil
			}
			u, err := e.auth.CurrentUser(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "User\t%s <%s>\n", u.FullName, u.Email)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, authCmd)
	authCmd.AddCommand(authStatusCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (read from stdin when omitted)")
	_ = loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (read from stdin when omitted)")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm", "", "Password confirmation")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")

	authStatusCmd.Flags().BoolVar(&authStatusRemote, "remote", false, "Also ask the backend who the token belongs to")
}
