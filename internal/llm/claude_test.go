package llm

import (
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textMessage(t *testing.T, text string) *anthropic.Message {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
	})
	require.NoError(t, err)
	var m anthropic.Message
	require.NoError(t, m.UnmarshalJSON(raw))
	return &m
}

func TestParseScoreResponse(t *testing.T) {
	t.Run("bare json", func(t *testing.T) {
		chance, err := parseScoreResponse(textMessage(t, `{"chance": 72}`))
		require.NoError(t, err)
		assert.Equal(t, 72, chance)
	})

	t.Run("fenced json", func(t *testing.T) {
		chance, err := parseScoreResponse(textMessage(t, "```json\n{\"chance\": 40}\n```"))
		require.NoError(t, err)
		assert.Equal(t, 40, chance)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := parseScoreResponse(textMessage(t, `{"chance": 150}`))
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseScoreResponse(textMessage(t, "I'd estimate around 70%."))
		assert.Error(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := parseScoreResponse(&anthropic.Message{})
		assert.Error(t, err)
	})
}
