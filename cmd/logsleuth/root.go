package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logsleuth/logsleuth/pkg/config"
)

var (
	flagConfigPath string
	flagPlain      bool
	flagModel      string
	flagBaseURL    string
	flagAPIKey     string
)

var rootCmd = &cobra.Command{
	Use:   "logsleuth",
	Short: "logsleuth analyzes platform error logs with an LLM agent",
	Long: `logsleuth fetches error logs from the log platform by event serial
number, analyzes them through an LLM agent loop with tools, and produces a
structured risk report. It can also drive a real browser against the log
page when the HTTP API is not an option.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; values never override the real environment
		if _, err := config.LoadDotEnv(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		if err := config.Initialize(flagConfigPath); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to the config file (default ~/.logsleuth/config.json)")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "disable styling and full-screen views")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "LLM model (overrides env and config)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "LLM API base URL (overrides env and config)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "LLM API key (overrides env and config)")
}
