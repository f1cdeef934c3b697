package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logsleuth/logsleuth/pkg/history"
)

var (
	historyLimit int
	historyEvent string
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously produced analysis reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := history.Open(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close() //nolint:errcheck

		var entries []history.Entry
		if historyEvent != "" {
			entries, err = store.FindByEventID(ctx, historyEvent)
		} else {
			entries, err = store.List(ctx, historyLimit)
		}
		if err != nil {
			return err
		}

		if historyJSON {
			payload, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(payload))
			return nil
		}

		if len(entries) == 0 {
			fmt.Println("No reports recorded yet.")
			return nil
		}

		for _, entry := range entries {
			summary := truncateSummary(entry.Report.ErrorSummary, 80)
			fmt.Printf("%s  %-8s  %-36s  %s\n",
				entry.CreatedAt.Format("2006-01-02 15:04"),
				strings.ToUpper(string(entry.Report.RiskLevel)),
				entry.Report.EventID,
				summary)
		}
		return nil
	},
}

// truncateSummary shortens a summary for one-line listing, counting runes
// so multibyte text is never split mid-character.
func truncateSummary(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of reports to list")
	historyCmd.Flags().StringVar(&historyEvent, "event", "", "only show reports for this EventID")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print entries as JSON")
	rootCmd.AddCommand(historyCmd)
}
