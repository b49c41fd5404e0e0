package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigs(t *testing.T) {
	t.Run("Default extraction config", func(t *testing.T) {
		config := DefaultExtractionConfig()
		assert.Equal(t, 100, config.ContextWindow, "Expected default context window of 100")
		assert.Equal(t, 100, config.RelationWindow, "Expected default relation window of 100")
		assert.False(t, config.CaseSensitiveTerms, "Expected case-insensitive term matching by default")
	})

	t.Run("Default disambiguation config", func(t *testing.T) {
		config := DefaultDisambiguationConfig()
		assert.Equal(t, 0.8, config.NameThreshold, "Expected default name threshold of 0.8")
		assert.Equal(t, 0.6, config.ContextThreshold, "Expected default context threshold of 0.6")
		assert.Equal(t, 75, config.CoreferenceWindow, "Expected default coreference window of 75")
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("Without overrides returns defaults", func(t *testing.T) {
		extraction, disambiguation := ConfigFromEnv()
		assert.Equal(t, DefaultExtractionConfig(), extraction, "Expected default extraction config without overrides")
		assert.Equal(t, DefaultDisambiguationConfig(), disambiguation, "Expected default disambiguation config without overrides")
	})

	t.Run("Environment overrides are applied", func(t *testing.T) {
		t.Setenv("TAGGER_CONTEXT_WINDOW", "50")
		t.Setenv("TAGGER_NAME_THRESHOLD", "0.9")

		extraction, disambiguation := ConfigFromEnv()
		assert.Equal(t, 50, extraction.ContextWindow, "Expected context window override to be applied")
		assert.Equal(t, 0.9, disambiguation.NameThreshold, "Expected name threshold override to be applied")
		assert.Equal(t, 0.6, disambiguation.ContextThreshold, "Expected unset keys to keep defaults")
	})

	t.Run("Invalid values are ignored", func(t *testing.T) {
		t.Setenv("TAGGER_RELATION_WINDOW", "not-a-number")

		extraction, _ := ConfigFromEnv()
		assert.Equal(t, 100, extraction.RelationWindow, "Expected invalid override to be ignored")
	})
}
