package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrail/internal/config"
	"jobtrail/internal/mailscan"
)

type failingProvider struct{}

func (failingProvider) ScoreChance(ctx context.Context, company, role string, status mailscan.StatusTag) (int, error) {
	return 0, errors.New("remote provider down")
}

func (failingProvider) GetProviderName() string { return "failing" }

func TestNewProviderSelection(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "heuristic", NewProvider(cfg).GetProviderName())

	cfg.LLM.Provider = "claude"
	assert.Equal(t, "heuristic", NewProvider(cfg).GetProviderName(), "claude without an API key falls back")

	cfg.LLM.APIKey = "sk-test"
	assert.Equal(t, "claude", NewProvider(cfg).GetProviderName())
}

func TestScorerFallsBackOnProviderError(t *testing.T) {
	s := &Scorer{provider: failingProvider{}, fallback: NewHeuristicProvider()}

	chance, err := s.ScoreChance(context.Background(), "Acme Corp", "Engineer", mailscan.StatusInterview)
	require.NoError(t, err)
	assert.Equal(t, 60, chance)
}

func TestHeuristicScores(t *testing.T) {
	p := NewHeuristicProvider()
	ctx := context.Background()

	tests := []struct {
		status mailscan.StatusTag
		want   int
	}{
		{mailscan.StatusOffer, 95},
		{mailscan.StatusInterview, 60},
		{mailscan.StatusRejected, 5},
		{mailscan.StatusHiring, 25},
		{mailscan.StatusApplied, 35},
	}

	for _, tt := range tests {
		chance, err := p.ScoreChance(ctx, "Acme Corp", "Engineer", tt.status)
		require.NoError(t, err)
		assert.Equal(t, tt.want, chance, "status %s", tt.status)
	}
}
