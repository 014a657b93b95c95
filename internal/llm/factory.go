package llm

import (
	"context"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/internal/mailscan"
)

// NewProvider builds the configured scoring provider, falling back to the
// heuristic when no remote provider is configured.
func NewProvider(cfg *config.Config) Provider {
	if cfg.LLM.Provider == "claude" && cfg.LLM.APIKey != "" {
		return NewClaudeProvider(cfg)
	}
	return NewHeuristicProvider()
}

// Scorer adapts a Provider to the pipeline's ChanceScorer with a guaranteed
// answer: remote failures degrade to the heuristic score instead of erroring.
type Scorer struct {
	provider Provider
	fallback *HeuristicProvider
}

// NewScorer wraps the configured provider for use by the scanner.
func NewScorer(cfg *config.Config) *Scorer {
	return &Scorer{
		provider: NewProvider(cfg),
		fallback: NewHeuristicProvider(),
	}
}

// ScoreChance returns the provider's estimate, or the heuristic one when the
// provider fails.
func (s *Scorer) ScoreChance(ctx context.Context, company, role string, status mailscan.StatusTag) (int, error) {
	chance, err := s.provider.ScoreChance(ctx, company, role, status)
	if err != nil {
		logging.FromContext(ctx).Debug().
			Err(err).
			Str("provider", s.provider.GetProviderName()).
			Msg("chance provider failed, using heuristic")
		return s.fallback.ScoreChance(ctx, company, role, status)
	}
	return chance, nil
}
