package disambiguate

import (
	"log/slog"

	"github.com/siherrmann/tagger/model"
)

// NewDefaultService composes the default disambiguator set (name-based, then
// context-based, with their configured thresholds) and the coreference
// resolver into a service. Passing a nil generator selects random short IDs.
func NewDefaultService(logger *slog.Logger, config model.DisambiguationConfig, idGen IDGenerator) *Service {
	if idGen == nil {
		idGen = NewShortIDGenerator()
	}

	return NewService(
		logger,
		NewCoreferenceResolver(config.CoreferenceWindow, idGen),
		NewNameDisambiguator(config.NameThreshold, idGen),
		NewContextDisambiguator(config.ContextThreshold, idGen),
	)
}
