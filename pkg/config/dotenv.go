package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DotEnvKeys lists the environment variables the CLI reads from .env files.
var DotEnvKeys = []string{
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"OPENAI_MODEL",
	"LOG_SERVICE_URL",
	"LOG_SERVICE_COOKIE",
}

// LoadDotEnv reads KEY=VALUE pairs from the given file and sets them in the
// process environment. Variables already present in the environment are not
// overwritten, so the shell always wins over the file.
//
// A missing file is not an error; it returns (false, nil) so callers can
// distinguish "no .env" from a parse failure.
func LoadDotEnv(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Allow the common "export KEY=VALUE" form.
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			return true, fmt.Errorf("%s:%d: expected KEY=VALUE, got %q", path, lineNo, line)
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = unquote(value)

		if key == "" {
			return true, fmt.Errorf("%s:%d: empty key", path, lineNo)
		}

		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return true, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return true, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return true, nil
}

// unquote strips one matching pair of single or double quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
