// Package llm estimates an applicant's odds for a tracked application. The
// estimate is advisory: the scan pipeline records it on newly created rows
// but never depends on a provider being reachable.
package llm

import (
	"context"

	"jobtrail/internal/mailscan"
)

// Provider defines the interface for chance-scoring providers.
type Provider interface {
	// ScoreChance returns an estimated success chance in [0, 100].
	ScoreChance(ctx context.Context, company, role string, status mailscan.StatusTag) (int, error)

	// GetProviderName returns the name of the provider.
	GetProviderName() string
}
