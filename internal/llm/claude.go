package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/internal/mailscan"
)

// ClaudeProvider implements the scoring provider interface using Anthropic's
// Claude.
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
}

// NewClaudeProvider creates a new Claude provider instance.
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)
	return &ClaudeProvider{client: client, config: cfg}
}

// ScoreChance asks Claude for a success-chance estimate. The response must be
// a bare JSON object; anything else is a provider error and the caller falls
// back to the heuristic score.
func (cp *ClaudeProvider) ScoreChance(ctx context.Context, company, role string, status mailscan.StatusTag) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, cp.config.LLM.Timeout)
	defer cancel()

	prompt := cp.buildScoringPrompt(company, role, status)

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: int64(cp.config.LLM.MaxTokens),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("calling claude api: %w", err)
	}

	chance, err := parseScoreResponse(response)
	if err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Debug().
		Str("company", company).
		Str("role", role).
		Int("chance", chance).
		Msg("claude chance score")

	return chance, nil
}

// buildScoringPrompt creates the prompt asking for a single JSON field.
func (cp *ClaudeProvider) buildScoringPrompt(company, role string, status mailscan.StatusTag) string {
	return fmt.Sprintf(`You estimate a job applicant's chance of ultimately receiving an offer.

Application:
- Company: %s
- Role: %s
- Current stage: %s

Return ONLY a JSON object of the form {"chance": <integer 0-100>} with no
additional text.`, company, role, status)
}

// parseScoreResponse extracts the chance integer from Claude's reply.
func parseScoreResponse(response *anthropic.Message) (int, error) {
	if len(response.Content) == 0 {
		return 0, fmt.Errorf("empty response from claude")
	}

	var text string
	for _, content := range response.Content {
		text = content.AsText().Text
		break
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var parsed struct {
		Chance int `json:"chance"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return 0, fmt.Errorf("parsing claude response %q: %w", text, err)
	}
	if parsed.Chance < 0 || parsed.Chance > 100 {
		return 0, fmt.Errorf("chance %d out of range", parsed.Chance)
	}
	return parsed.Chance, nil
}

// GetProviderName returns the name of the provider.
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
