package disambiguate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// Service orchestrates the configured disambiguators and the coreference
// resolver over one extracted entity set. Each disambiguator receives the
// output of the previous one, so earlier group assignments win; the resolver
// runs last against the original source text. Failures at this layer signal a
// pipeline defect and propagate to the caller.
type Service struct {
	disambiguators []Disambiguator
	resolver       *CoreferenceResolver
	log            *slog.Logger
}

// NewService creates a disambiguation service
func NewService(logger *slog.Logger, resolver *CoreferenceResolver, disambiguators ...Disambiguator) *Service {
	return &Service{
		disambiguators: disambiguators,
		resolver:       resolver,
		log:            logger,
	}
}

// Disambiguators returns the configured strategy set.
func (s *Service) Disambiguators() []Disambiguator {
	return s.disambiguators
}

// DisambiguateEntities runs every disambiguator in sequence, then the
// coreference resolver, and returns the tagged entity set. The context is
// checked between stages; the comparison work inside a stage is not
// internally cancellable.
func (s *Service) DisambiguateEntities(ctx context.Context, text string, entities []*model.Entity, tenantID string) ([]*model.Entity, error) {
	if entities == nil {
		return nil, helper.NewError("disambiguate entities", fmt.Errorf("entity collection is nil"))
	}

	current := entities
	for _, disambiguator := range s.disambiguators {
		if err := ctx.Err(); err != nil {
			return nil, helper.NewError("disambiguate entities", err)
		}

		result, err := disambiguator.Disambiguate(current, tenantID)
		if err != nil {
			s.log.Error("Disambiguator failed",
				slog.String("disambiguator", disambiguator.Name()),
				slog.String("error", err.Error()))
			return nil, helper.NewError(fmt.Sprintf("%v disambiguation", disambiguator.Name()), err)
		}

		s.log.Info("Disambiguator finished",
			slog.String("disambiguator", disambiguator.Name()),
			slog.Int("num_groups", countGroups(result)))
		current = result
	}

	if err := ctx.Err(); err != nil {
		return nil, helper.NewError("disambiguate entities", err)
	}

	resolved, err := s.resolver.Resolve(text, current, tenantID)
	if err != nil {
		s.log.Error("Coreference resolution failed", slog.String("error", err.Error()))
		return nil, helper.NewError("coreference resolution", err)
	}

	s.log.Info("Disambiguation finished",
		slog.Int("num_entities", len(resolved)),
		slog.Int("num_groups", countGroups(resolved)))

	return resolved, nil
}

// countGroups counts the distinct disambiguation IDs in a collection.
func countGroups(entities []*model.Entity) int {
	groups := make(map[string]bool)
	for _, entity := range entities {
		if entity.DisambiguationID != "" {
			groups[entity.DisambiguationID] = true
		}
	}
	return len(groups)
}
