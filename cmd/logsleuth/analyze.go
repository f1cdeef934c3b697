package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	analyzeJSON       bool
	analyzeCopy       bool
	analyzeNoThinking bool
	analyzeNoHistory  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <EventID or free text>",
	Short: "Analyze an error event through the LLM agent",
	Long: `Analyze fetches the error logs for an event and runs the LLM agent
loop over them, producing a structured risk report.

The argument can be a bare event serial number or free text containing one,
e.g.:

  logsleuth analyze DJC-CF-1211212348-8RJKIC-529-425718
  logsleuth analyze "流水号是 DJC-CF-1211212348-8RJKIC-529-425718，帮我看看"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		eventID := extractEventID(query)

		ctx := cmd.Context()
		ag, err := buildAnalysisAgent(ctx, true)
		if err != nil {
			return err
		}

		// A bare EventID still needs a sentence for the model to act on
		if query == eventID {
			query = fmt.Sprintf("Analyze the error event %s and report what went wrong.", eventID)
		}

		report, err := runAnalysis(ctx, ag, query, eventID, analyzeJSON, analyzeCopy, !analyzeNoThinking)
		if err != nil {
			return err
		}

		if !analyzeNoHistory {
			saveReport(ctx, report)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as highlighted JSON")
	analyzeCmd.Flags().BoolVar(&analyzeCopy, "copy", false, "copy the report JSON to the clipboard")
	analyzeCmd.Flags().BoolVar(&analyzeNoThinking, "no-thinking", false, "hide the model's thinking stream (plain mode)")
	analyzeCmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "do not record the report in local history")
	rootCmd.AddCommand(analyzeCmd)
}
