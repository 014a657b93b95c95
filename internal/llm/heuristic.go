package llm

import (
	"context"

	"jobtrail/internal/mailscan"
)

// HeuristicProvider scores from the application status alone. It is the
// default provider and the fallback when a remote provider fails.
type HeuristicProvider struct{}

// NewHeuristicProvider creates the deterministic scorer.
func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

// ScoreChance maps the lifecycle stage to a coarse success chance. Further
// stages score higher; a rejection floors the estimate.
func (p *HeuristicProvider) ScoreChance(ctx context.Context, company, role string, status mailscan.StatusTag) (int, error) {
	switch status {
	case mailscan.StatusOffer:
		return 95, nil
	case mailscan.StatusInterview:
		return 60, nil
	case mailscan.StatusRejected:
		return 5, nil
	case mailscan.StatusHiring:
		return 25, nil
	default:
		return 35, nil
	}
}

// GetProviderName returns the name of the provider.
func (p *HeuristicProvider) GetProviderName() string {
	return "heuristic"
}
