package config

import (
	"fmt"
	"os"

	"github.com/logsleuth/logsleuth/pkg/llm/openai"
)

// BuildProvider creates an LLM provider based on configuration precedence:
// CLI flags > Environment variables > Config file > Defaults
func BuildProvider(cliModel, cliBaseURL, cliAPIKey, defaultModel string) (*openai.Provider, error) {
	// Start with CLI values (empty strings if not provided)
	finalModel := cliModel
	finalBaseURL := cliBaseURL
	finalAPIKey := cliAPIKey

	// Fall back to environment variables if CLI values are empty
	if finalModel == "" || finalModel == defaultModel {
		if envModel := os.Getenv("OPENAI_MODEL"); envModel != "" {
			finalModel = envModel
		}
	}
	if finalAPIKey == "" {
		finalAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if finalBaseURL == "" {
		finalBaseURL = os.Getenv("OPENAI_BASE_URL")
	}

	// Get config file settings
	llmConfigFromFile := GetLLM()

	// Fall back to config file if still empty
	if llmConfigFromFile != nil {
		if finalModel == "" || finalModel == defaultModel {
			if configFileModel := llmConfigFromFile.GetModel(); configFileModel != "" {
				finalModel = configFileModel
			}
		}
		if finalBaseURL == "" {
			if configFileBaseURL := llmConfigFromFile.GetBaseURL(); configFileBaseURL != "" {
				finalBaseURL = configFileBaseURL
			}
		}
		if finalAPIKey == "" {
			if configFileAPIKey := llmConfigFromFile.GetAPIKey(); configFileAPIKey != "" {
				finalAPIKey = configFileAPIKey
			}
		}
	}

	// Use default model if still not set
	if finalModel == "" {
		finalModel = defaultModel
	}

	// Validate that API key was resolved
	if finalAPIKey == "" {
		return nil, fmt.Errorf("API key is required. Set OPENAI_API_KEY in the environment or .env, use --api-key, or configure in ~/.logsleuth/config.json")
	}

	// Create OpenAI provider with the final, resolved configuration
	providerOpts := []openai.ProviderOption{
		openai.WithModel(finalModel),
	}
	if finalBaseURL != "" {
		providerOpts = append(providerOpts, openai.WithBaseURL(finalBaseURL))
	}

	provider, err := openai.NewProvider(finalAPIKey, providerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	return provider, nil
}

// ResolveLogServiceURL returns the gateway URL with LOG_SERVICE_URL taking
// precedence over the config file.
func ResolveLogServiceURL() string {
	if v := os.Getenv("LOG_SERVICE_URL"); v != "" {
		return v
	}
	if section := GetLogService(); section != nil {
		return section.GetGatewayURL()
	}
	return DefaultGatewayURL
}

// ResolveLogServiceCookie returns the auth cookie with LOG_SERVICE_COOKIE
// taking precedence over the config file.
func ResolveLogServiceCookie() string {
	if v := os.Getenv("LOG_SERVICE_COOKIE"); v != "" {
		return v
	}
	if section := GetLogService(); section != nil {
		return section.GetCookie()
	}
	return ""
}
