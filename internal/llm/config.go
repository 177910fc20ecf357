package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// discoveryOrder is the order in which API keys are probed when no
// provider is selected explicitly.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
}

// Endpoint holds the credentials and model for one provider.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string // optional API override
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// Config selects a provider and carries its settings.
type Config struct {
	Provider string
	Endpoint Endpoint
	Retry    RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// DefaultConfig returns a Config for provider with default model, retry
// and timeout settings and no API key.
func DefaultConfig(provider string) Config {
	return Config{
		Provider: provider,
		Endpoint: Endpoint{Model: defaultModels[provider]},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv reads the configuration from the environment. It reports
// false when no provider is selected and no API key can be found, in which
// case AI features stay off.
//
// STRATIZ_LLM_PROVIDER selects a provider explicitly. Otherwise the first
// provider with an API key wins, checking STRATIZ_<PROVIDER>_API_KEY and
// then the vendor's own variable (GEMINI_API_KEY, ...).
func ConfigFromEnv() (Config, bool) {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) (Config, bool) {
	provider := strings.ToLower(strings.TrimSpace(getenv("STRATIZ_LLM_PROVIDER")))
	if provider == "" {
		for _, p := range discoveryOrder {
			if apiKey(getenv, p) != "" {
				provider = p
				break
			}
		}
	}
	if provider == "" {
		return Config{}, false
	}

	cfg := DefaultConfig(provider)
	prefix := "STRATIZ_" + strings.ToUpper(provider) + "_"
	cfg.Endpoint.APIKey = apiKey(getenv, provider)
	if m := getenv(prefix + "MODEL"); m != "" {
		cfg.Endpoint.Model = m
	}
	cfg.Endpoint.BaseURL = getenv(prefix + "BASE_URL")
	if t := getenv("STRATIZ_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg, true
}

func apiKey(getenv func(string) string, provider string) string {
	upper := strings.ToUpper(provider)
	if k := getenv("STRATIZ_" + upper + "_API_KEY"); k != "" {
		return k
	}
	return getenv(upper + "_API_KEY")
}

// Validate checks that the selected provider exists and has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Endpoint.APIKey == "" {
			return fmt.Errorf("STRATIZ_%s_API_KEY is required for the %s provider",
				strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names are used as-is.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
