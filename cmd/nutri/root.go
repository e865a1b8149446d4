package nutri

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/screen"
)

var (
	statePath  string
	apiURL     string
	timeoutArg string
	envFile    string
	verbose    bool
	ephemeral  bool
)

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "nutri is a terminal client for the NutriAgent diet service",
	Long: "nutri talks to a NutriAgent backend: manage your nutrition profile and weight, " +
		"keep a recipe book, generate AI meal plans and recipes, and track shopping lists.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, screen.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "Run `nutri login` to sign in again.")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to the local state database (env NUTRI_STATE)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (env NUTRI_API_URL)")
	rootCmd.PersistentFlags().StringVar(&timeoutArg, "timeout", "", "Per-request timeout, e.g. 30s; 0 disables it (env NUTRI_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Dotenv file to load (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the credential in memory only")
}
