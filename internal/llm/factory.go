package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/stratiz/internal/store"
)

// New builds the provider named by cfg and wraps it so calls are retried
// and then logged: caller → retry → logging → provider. A nil repo skips
// logging.
func New(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Endpoint)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.Endpoint)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.Endpoint)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Endpoint)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if repo != nil {
		base = WithLogging(base, cfg.Provider, repo)
	}
	return WithRetry(base, cfg.Retry, cfg.Timeout), nil
}

// NewFromEnv builds a provider from ConfigFromEnv. It returns (nil, nil)
// when nothing is configured.
func NewFromEnv(ctx context.Context, repo store.EventRepo) (Provider, error) {
	cfg, ok := ConfigFromEnv()
	if !ok {
		return nil, nil
	}
	return New(ctx, cfg, repo)
}
