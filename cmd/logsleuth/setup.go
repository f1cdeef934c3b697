package main

import (
	"github.com/spf13/cobra"

	"github.com/logsleuth/logsleuth/pkg/setup"
)

var setupSkipBrowsers bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the runtime environment (browser engine, config checks)",
	Long: `Setup installs the Playwright driver and browser binaries if missing
and verifies configuration. Hard failures abort with remediation steps;
configuration issues are warnings only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := setup.Run(setup.Options{
			SkipBrowsers: setupSkipBrowsers,
			Writer:       cmd.OutOrStdout(),
		})
		return err
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupSkipBrowsers, "skip-browsers", false, "install the driver only, skip browser binaries")
	rootCmd.AddCommand(setupCmd)
}
