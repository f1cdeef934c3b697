package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logsleuth/logsleuth/pkg/logparse"
	"github.com/logsleuth/logsleuth/pkg/tools/logservice"
)

var (
	fetchRaw    bool
	fetchModule string
	fetchRules  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <EventID>",
	Short: "Fetch and print raw logs for an event, no LLM involved",
	Long: `Fetch retrieves the error logs for an event from the log platform
gateway and prints them, followed by a parse summary and a rule-based risk
assessment. Useful for checking connectivity and cookies before running a
full analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID := args[0]
		ctx := cmd.Context()

		policy, err := loadRiskPolicy(fetchRules)
		if err != nil {
			return err
		}

		client := newLogServiceClient(buildCache(ctx))

		detail, err := client.Fetch(ctx, eventID)
		if err != nil {
			if errors.Is(err, logservice.ErrAuthRequired) {
				return fmt.Errorf("the log platform rejected the request as unauthenticated; set LOG_SERVICE_COOKIE and retry")
			}
			return err
		}

		fmt.Printf("# event: %s  platform: %s  cached: %v\n\n", detail.EventID, detail.Platform, detail.FromCache)
		fmt.Println(detail.Content)

		if fetchRaw {
			return nil
		}

		lines := logparse.Parse(detail.Content)
		if fetchModule != "" {
			lines, err = logparse.FilterByModule(lines, fetchModule)
			if err != nil {
				return err
			}
		}

		summary := logparse.Summarize(lines)
		risk := policy.Assess(lines)

		fmt.Println()
		fmt.Println("--- summary ---")
		fmt.Println(summary.String())
		fmt.Printf("rule-based risk: %s\n", risk)

		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchRaw, "raw", false, "print only the raw log content, no summary")
	fetchCmd.Flags().StringVar(&fetchModule, "module", "", "only summarize lines whose module matches this glob pattern")
	fetchCmd.Flags().StringVar(&fetchRules, "rules", "", "path to a YAML risk rules file (default: built-in rules)")
	rootCmd.AddCommand(fetchCmd)
}
