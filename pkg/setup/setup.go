// Package setup bootstraps the logsleuth runtime environment: it provisions
// the Playwright driver and browser binaries and verifies configuration.
// Hard failures (an uninstallable driver) abort with remediation text;
// everything else is a warning.
package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/logsleuth/logsleuth/pkg/config"
	"github.com/logsleuth/logsleuth/pkg/logging"
	"github.com/logsleuth/logsleuth/pkg/tools/browser"
)

// Options configures a setup run.
type Options struct {
	// SkipBrowsers installs only the driver, not the browser binaries.
	SkipBrowsers bool

	// Writer receives progress output. Defaults to os.Stdout.
	Writer io.Writer
}

// Result summarizes a completed setup run.
type Result struct {
	// DriverInstalled is true when this run downloaded the driver or
	// browsers (as opposed to reusing an existing installation).
	DriverInstalled bool

	// Warnings are the non-fatal issues encountered.
	Warnings []string
}

// Run performs the bootstrap sequence. It returns an error only for fatal
// conditions; the caller should exit non-zero in that case. Warnings are
// reported in the result and never abort.
func Run(opts Options) (*Result, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	log, err := logging.NewLogger("setup")
	if err == nil {
		defer log.Close() //nolint:errcheck
	}

	result := &Result{}

	fmt.Fprintln(w, "logsleuth setup")
	fmt.Fprintln(w)

	// Step 1: browser automation engine
	fmt.Fprintln(w, "[1/3] Checking browser automation engine...")
	if probeErr := browser.ProbeDriver(); probeErr == nil {
		fmt.Fprintln(w, "      Driver already installed, reusing it.")
		log.Infof("playwright driver present, reusing")
	} else {
		// An existing install that won't start is older than the version
		// the client library runs. Warn and upgrade rather than abort.
		if existing := browser.InstalledDriverVersions(); len(existing) > 0 {
			warning := fmt.Sprintf(
				"existing driver install (%s) is older than the version this build requires; upgrading",
				strings.Join(existing, ", "))
			result.Warnings = append(result.Warnings, warning)
			fmt.Fprintf(w, "      WARNING: %s\n", warning)
			log.Warnf("%s", warning)
		} else {
			fmt.Fprintln(w, "      Driver not found, installing...")
		}
		log.Infof("playwright driver not runnable: %v", probeErr)

		installErr := installDriver(opts.SkipBrowsers)
		if installErr != nil {
			log.Errorf("driver install failed: %v", installErr)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "ERROR: could not install the browser automation engine.")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "To fix this:")
			fmt.Fprintln(w, "  - check your network connection (the driver is downloaded on first install)")
			fmt.Fprintln(w, "  - ensure you have write access to your home directory")
			fmt.Fprintln(w, "  - then re-run: logsleuth setup")
			return nil, fmt.Errorf("driver installation failed: %w", installErr)
		}

		result.DriverInstalled = true
		if opts.SkipBrowsers {
			fmt.Fprintln(w, "      Driver installed (browser binaries skipped).")
		} else {
			fmt.Fprintln(w, "      Driver and browser binaries installed.")
		}
	}

	// Step 2: configuration
	fmt.Fprintln(w, "[2/3] Checking configuration...")
	for _, warning := range checkConfiguration() {
		result.Warnings = append(result.Warnings, warning)
		fmt.Fprintf(w, "      WARNING: %s\n", warning)
		log.Warnf("%s", warning)
	}
	if len(result.Warnings) == 0 {
		fmt.Fprintln(w, "      Configuration looks good.")
	}

	// Step 3: usage instructions
	fmt.Fprintln(w, "[3/3] Done.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  logsleuth analyze <EventID>   analyze an error event via the log API")
	fmt.Fprintln(w, "  logsleuth browse <EventID>    analyze via the log web page (real browser)")
	fmt.Fprintln(w, "  logsleuth fetch <EventID>     fetch and print raw logs, no LLM")

	return result, nil
}

// installDriver provisions the driver, optionally with browser binaries.
func installDriver(skipBrowsers bool) error {
	if skipBrowsers {
		return browser.InstallDriverOnly()
	}
	return browser.InstallDriver()
}

// checkConfiguration returns warnings about missing configuration. None of
// these block setup; analysis commands surface hard errors themselves.
func checkConfiguration() []string {
	var warnings []string

	if !dotEnvPresent() {
		warnings = append(warnings, fmt.Sprintf(
			"no .env file found; create one with %s as needed",
			strings.Join(config.DotEnvKeys, ", ")))
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		llm := config.GetLLM()
		if llm == nil || llm.GetAPIKey() == "" {
			warnings = append(warnings, "OPENAI_API_KEY is not set; analyze/browse will fail until it is")
		}
	}

	if os.Getenv("LOG_SERVICE_COOKIE") == "" {
		svc := config.GetLogService()
		if svc == nil || svc.GetCookie() == "" {
			warnings = append(warnings, "LOG_SERVICE_COOKIE is not set; the log platform may reject fetches as unauthenticated")
		}
	}

	return warnings
}

// dotEnvPresent checks the working directory and the binary's directory.
func dotEnvPresent() bool {
	if _, err := os.Stat(".env"); err == nil {
		return true
	}
	if exe, err := os.Executable(); err == nil {
		if _, err := os.Stat(filepath.Join(filepath.Dir(exe), ".env")); err == nil {
			return true
		}
	}
	return false
}
