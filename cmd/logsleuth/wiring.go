package main

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/atotto/clipboard"

	"github.com/logsleuth/logsleuth/pkg/agent"
	"github.com/logsleuth/logsleuth/pkg/cache"
	"github.com/logsleuth/logsleuth/pkg/config"
	"github.com/logsleuth/logsleuth/pkg/executor/cli"
	"github.com/logsleuth/logsleuth/pkg/executor/tui"
	"github.com/logsleuth/logsleuth/pkg/history"
	"github.com/logsleuth/logsleuth/pkg/llm/openai"
	"github.com/logsleuth/logsleuth/pkg/llm/tokenizer"
	"github.com/logsleuth/logsleuth/pkg/logparse"
	"github.com/logsleuth/logsleuth/pkg/tools/logservice"
	"github.com/logsleuth/logsleuth/pkg/tools/monitor"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// maxLogTokens caps how much log or page text goes into the prompt.
const maxLogTokens = 6000

// eventIDRegex matches platform event serial numbers embedded in free
// text, e.g. DJC-CF-1211212348-8RJKIC-529-425718.
var eventIDRegex = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9]*(?:-[A-Za-z0-9]+){2,}\b`)

// extractEventID pulls the first event serial number out of free text.
// Returns "" when none is found.
func extractEventID(text string) string {
	return eventIDRegex.FindString(text)
}

// loadRiskPolicy loads a YAML risk rules file when a path is given,
// otherwise the built-in policy.
func loadRiskPolicy(path string) (*logparse.Policy, error) {
	if path == "" {
		return logparse.DefaultPolicy(), nil
	}
	return logparse.LoadPolicy(path)
}

// buildCache selects the fetch cache: Redis when configured, otherwise
// in-process memory. Redis connection failures fall back to memory with a
// warning rather than blocking analysis.
func buildCache(ctx context.Context) cache.Cache {
	section := config.GetCache()
	if section == nil {
		return cache.NewMemoryCache(cache.DefaultTTL)
	}

	ttl := section.GetTTL()
	addr := section.GetRedisAddr()
	if addr == "" {
		return cache.NewMemoryCache(ttl)
	}

	redisCache, err := cache.NewRedisCache(ctx, addr, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: redis cache unavailable (%v), using memory cache\n", err)
		return cache.NewMemoryCache(ttl)
	}
	return redisCache
}

// newLogServiceClient builds the log platform client from config and env.
func newLogServiceClient(store cache.Cache) *logservice.Client {
	gatewayURL := config.ResolveLogServiceURL()
	referer := config.DefaultReferer
	if svc := config.GetLogService(); svc != nil {
		referer = svc.GetReferer()
	}

	opts := []logservice.ClientOption{
		logservice.WithCache(store),
	}
	if cookie := config.ResolveLogServiceCookie(); cookie != "" {
		opts = append(opts, logservice.WithCookie(cookie))
	}

	return logservice.NewClient(gatewayURL, referer, opts...)
}

// buildAnalysisAgent wires up the provider, tools, and agent for one
// analysis run. withFetch controls whether the fetch_error_log tool is
// registered (browse feeds page content directly instead).
func buildAnalysisAgent(ctx context.Context, withFetch bool) (*agent.DefaultAgent, error) {
	provider, err := config.BuildProvider(flagModel, flagBaseURL, flagAPIKey, openai.DefaultModel)
	if err != nil {
		return nil, err
	}

	ag := agent.NewDefaultAgent(provider)

	if withFetch {
		client := newLogServiceClient(buildCache(ctx))

		// Cap fetched logs so a huge payload cannot blow the context window
		var fetchOpts []logservice.FetchToolOption
		if tok, err := tokenizer.NewForModel(provider.GetModel()); err == nil {
			fetchOpts = append(fetchOpts, logservice.WithResultBudget(tok, maxLogTokens))
		}

		if err := ag.RegisterTool(logservice.NewFetchTool(client, fetchOpts...)); err != nil {
			return nil, fmt.Errorf("failed to register fetch tool: %w", err)
		}
	}

	endpoint := ""
	if mon := config.GetMonitor(); mon != nil {
		endpoint = mon.GetEndpoint()
	}
	statusClient := monitor.NewClient(endpoint)
	if err := ag.RegisterTool(monitor.NewStatusTool(statusClient)); err != nil {
		return nil, fmt.Errorf("failed to register status tool: %w", err)
	}

	return ag, nil
}

// runAnalysis executes one agent turn with the appropriate executor and
// renders the final report. jsonOut/copyOut mirror the --json/--copy flags.
func runAnalysis(ctx context.Context, ag *agent.DefaultAgent, query, eventID string, jsonOut, copyOut, showThinking bool) (*types.AnalysisReport, error) {
	plain := flagPlain || !stdoutIsTTY()

	if plain {
		executor := cli.NewExecutor(ag,
			cli.WithShowThinking(showThinking),
			cli.WithPlain(true),
			cli.WithJSONOutput(jsonOut),
			cli.WithClipboardCopy(copyOut),
		)
		return executor.RunOnce(ctx, query, eventID)
	}

	executor := tui.NewExecutor(ag)
	report, err := executor.RunOnce(ctx, query, eventID)
	if err != nil {
		return nil, err
	}

	rendered, err := cli.RenderReport(report, jsonOut, false)
	if err != nil {
		return report, err
	}
	fmt.Println(rendered)

	if copyOut {
		if err := copyReportToClipboard(report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: clipboard copy failed: %v\n", err)
		}
	}

	return report, nil
}

// copyReportToClipboard puts the report JSON on the system clipboard.
func copyReportToClipboard(report *types.AnalysisReport) error {
	payload, err := report.JSON()
	if err != nil {
		return err
	}
	return clipboard.WriteAll(payload)
}

// saveReport appends the report to the local history database. Failures
// only warn; the analysis already succeeded.
func saveReport(ctx context.Context, report *types.AnalysisReport) {
	store, err := history.Open(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history store: %v\n", err)
		return
	}
	defer store.Close() //nolint:errcheck

	if _, err := store.Save(ctx, report); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save report to history: %v\n", err)
	}
}

// stdoutIsTTY reports whether stdout is attached to a terminal.
func stdoutIsTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
