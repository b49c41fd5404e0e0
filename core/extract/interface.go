package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// Extractor is a strategy that scans raw text and emits candidate entity
// mentions with position spans and confidence scores. Extractors hold only
// read-only configuration (pattern and term tables) and are safe for
// concurrent use once configured.
type Extractor interface {
	// ExtractEntities scans text and returns candidate entities. Empty text
	// yields an empty result, never an error.
	ExtractEntities(text string, sourceID string, tenantID string) ([]*model.Entity, error)
	// SupportedTypes returns the entity types this extractor can emit.
	SupportedTypes() []model.EntityType
	// Name identifies the extractor in logs.
	Name() string
}

// Pipeline runs a configured set of extractors over one text unit and merges
// their candidate lists. Candidates from different extractors are not
// deduplicated here; overlapping mentions are left to disambiguation.
type Pipeline struct {
	extractors []Extractor
	config     model.ExtractionConfig
	log        *slog.Logger
}

// NewPipeline creates a new extraction pipeline
func NewPipeline(logger *slog.Logger, config model.ExtractionConfig, extractors ...Extractor) *Pipeline {
	return &Pipeline{
		extractors: extractors,
		config:     config,
		log:        logger,
	}
}

// AddExtractor appends an extractor to the pipeline.
func (p *Pipeline) AddExtractor(extractor Extractor) error {
	if extractor == nil {
		return helper.NewError("add extractor", fmt.Errorf("extractor is nil"))
	}
	p.extractors = append(p.extractors, extractor)
	return nil
}

// Extractors returns the configured extractor set.
func (p *Pipeline) Extractors() []Extractor {
	return p.extractors
}

// Extract runs every configured extractor over the text and returns the union
// of their candidates. A single extractor's failure (error or panic) is logged
// and its contribution dropped; the remaining extractors still run. The
// context is checked between extractors.
func (p *Pipeline) Extract(ctx context.Context, text string, sourceID string, tenantID string) ([]*model.Entity, error) {
	if strings.TrimSpace(text) == "" {
		p.log.Info("Skipping extraction of empty text", slog.String("source_id", sourceID))
		return []*model.Entity{}, nil
	}

	var merged []*model.Entity
	for _, extractor := range p.extractors {
		if err := ctx.Err(); err != nil {
			return nil, helper.NewError("extract", err)
		}

		entities, err := p.runExtractor(extractor, text, sourceID, tenantID)
		if err != nil {
			p.log.Warn("Extractor failed, dropping its contribution",
				slog.String("extractor", extractor.Name()),
				slog.String("source_id", sourceID),
				slog.String("error", err.Error()))
			continue
		}

		p.log.Info("Extractor finished",
			slog.String("extractor", extractor.Name()),
			slog.Int("num_entities", len(entities)))
		merged = append(merged, entities...)
	}

	p.log.Info("Extraction finished",
		slog.String("source_id", sourceID),
		slog.Int("num_entities", len(merged)))

	return merged, nil
}

// runExtractor isolates a single strategy so a panic inside one pattern set
// cannot abort the whole pipeline.
func (p *Pipeline) runExtractor(extractor Extractor, text, sourceID, tenantID string) (entities []*model.Entity, err error) {
	defer func() {
		if r := recover(); r != nil {
			entities = nil
			err = helper.NewError(extractor.Name(), fmt.Errorf("extractor panicked: %v", r))
		}
	}()

	return extractor.ExtractEntities(text, sourceID, tenantID)
}
