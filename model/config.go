package model

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ExtractionConfig represents configuration for the extraction pipeline
type ExtractionConfig struct {
	// ContextWindow is the number of characters kept on each side of a match
	// as the entity's original context.
	ContextWindow int `json:"context_window"`

	// RelationWindow is the maximum character distance between two entities
	// for a co-occurrence relation to be derived.
	RelationWindow int `json:"relation_window"`

	// CaseSensitiveTerms controls dictionary term matching.
	CaseSensitiveTerms bool `json:"case_sensitive_terms"`
}

// DisambiguationConfig represents configuration for the disambiguation stages
type DisambiguationConfig struct {
	// NameThreshold is the minimum name similarity for grouping.
	NameThreshold float64 `json:"name_threshold"`

	// ContextThreshold is the minimum context (Jaccard) similarity for grouping.
	ContextThreshold float64 `json:"context_threshold"`

	// CoreferenceWindow is the number of characters kept on each side of a
	// resolved reference as its original context.
	CoreferenceWindow int `json:"coreference_window"`
}

// DefaultExtractionConfig returns a sensible default configuration
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		ContextWindow:      100,
		RelationWindow:     100,
		CaseSensitiveTerms: false,
	}
}

// DefaultDisambiguationConfig returns a sensible default configuration
func DefaultDisambiguationConfig() DisambiguationConfig {
	return DisambiguationConfig{
		NameThreshold:     0.8,
		ContextThreshold:  0.6,
		CoreferenceWindow: 75,
	}
}

// ConfigFromEnv returns the default configurations with overrides applied from
// the environment (a .env file is loaded first if present). Recognized keys:
// TAGGER_CONTEXT_WINDOW, TAGGER_RELATION_WINDOW, TAGGER_NAME_THRESHOLD,
// TAGGER_CONTEXT_THRESHOLD, TAGGER_COREFERENCE_WINDOW.
func ConfigFromEnv() (ExtractionConfig, DisambiguationConfig) {
	// Ignore a missing .env file, plain environment variables still apply.
	_ = godotenv.Load()

	extraction := DefaultExtractionConfig()
	disambiguation := DefaultDisambiguationConfig()

	if v, ok := envInt("TAGGER_CONTEXT_WINDOW"); ok {
		extraction.ContextWindow = v
	}
	if v, ok := envInt("TAGGER_RELATION_WINDOW"); ok {
		extraction.RelationWindow = v
	}
	if v, ok := envFloat("TAGGER_NAME_THRESHOLD"); ok {
		disambiguation.NameThreshold = v
	}
	if v, ok := envFloat("TAGGER_CONTEXT_THRESHOLD"); ok {
		disambiguation.ContextThreshold = v
	}
	if v, ok := envInt("TAGGER_COREFERENCE_WINDOW"); ok {
		disambiguation.CoreferenceWindow = v
	}

	return extraction, disambiguation
}

func envInt(key string) (int, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
