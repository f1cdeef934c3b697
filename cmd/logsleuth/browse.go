package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/logsleuth/logsleuth/pkg/config"
	"github.com/logsleuth/logsleuth/pkg/llm/tokenizer"
	"github.com/logsleuth/logsleuth/pkg/tools/browser"
)

// idleReapInterval is how often lingering browser sessions are checked.
const idleReapInterval = 30 * time.Second

var (
	browseJSON       bool
	browseCopy       bool
	browseNoThinking bool
	browseNoHistory  bool
	browseHeadful    bool
)

var browseCmd = &cobra.Command{
	Use:   "browse <EventID>",
	Short: "Analyze an error event via the log web page (real browser)",
	Long: `Browse drives a real browser to the log platform's detail page for the
event, dismisses any login dialogs, extracts the rendered log content, and
runs the LLM agent over it. Use this when the HTTP log API is not reachable
or authenticated access must go through the web UI.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID := args[0]
		ctx := cmd.Context()

		pageURL := config.DefaultPageURL
		if svc := config.GetLogService(); svc != nil {
			pageURL = svc.GetPageURL()
		}

		manager := browser.NewSessionManager()
		defer func() {
			if err := manager.Shutdown(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: browser shutdown: %v\n", err)
			}
		}()

		// Reap sessions left idle while the LLM analysis runs.
		stopReaper := manager.StartIdleReaper(idleReapInterval)
		defer stopReaper()

		fmt.Fprintf(os.Stderr, "Opening log page for %s...\n", eventID)
		page, err := browser.NewLogPage(manager, pageURL).Open(eventID, !browseHeadful)
		if err != nil {
			return fmt.Errorf("failed to open log page: %w", err)
		}
		if page.Text == "" {
			return fmt.Errorf("log page for %s rendered no content", eventID)
		}

		ag, err := buildAnalysisAgent(ctx, false)
		if err != nil {
			return err
		}

		pageText := page.Text
		if tok, err := tokenizer.NewForModel(ag.GetProvider().GetModel()); err == nil {
			pageText = tok.Truncate(pageText, maxLogTokens)
		}

		query := fmt.Sprintf(
			"Analyze the error event %s. The log page content extracted from %s follows:\n\n%s",
			eventID, page.URL, pageText)

		report, err := runAnalysis(ctx, ag, query, eventID, browseJSON, browseCopy, !browseNoThinking)
		if err != nil {
			return err
		}

		if !browseNoHistory {
			saveReport(ctx, report)
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().BoolVar(&browseJSON, "json", false, "print the report as highlighted JSON")
	browseCmd.Flags().BoolVar(&browseCopy, "copy", false, "copy the report JSON to the clipboard")
	browseCmd.Flags().BoolVar(&browseNoThinking, "no-thinking", false, "hide the model's thinking stream (plain mode)")
	browseCmd.Flags().BoolVar(&browseNoHistory, "no-history", false, "do not record the report in local history")
	browseCmd.Flags().BoolVar(&browseHeadful, "headful", false, "show the browser window instead of running headless")
	rootCmd.AddCommand(browseCmd)
}
