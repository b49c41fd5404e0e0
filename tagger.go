package tagger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/tagger/core/disambiguate"
	"github.com/siherrmann/tagger/core/extract"
	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// Tagger provides a unified interface to the extraction pipeline and the
// disambiguation service. One Tagger can process documents from different
// tenants concurrently; entities of different tenants are never compared.
type Tagger struct {
	Pipeline *extract.Pipeline
	Service  *disambiguate.Service
	// Configuration
	extraction     model.ExtractionConfig
	disambiguation model.DisambiguationConfig
	// Logging
	log *slog.Logger
}

// New creates a Tagger with the default extractor and disambiguator set:
// pattern-based, dictionary-based and rule-based extraction, then name-based
// and context-based disambiguation with the configured thresholds, then
// coreference resolution.
func New(extraction model.ExtractionConfig, disambiguation model.DisambiguationConfig) *Tagger {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	pipeline := extract.NewPipeline(
		logger,
		extraction,
		extract.NewPatternExtractor(extraction),
		extract.NewDictionaryExtractor(extraction),
		extract.NewRuleExtractor(extraction),
	)

	service := disambiguate.NewDefaultService(logger, disambiguation, nil)

	return &Tagger{
		Pipeline:       pipeline,
		Service:        service,
		extraction:     extraction,
		disambiguation: disambiguation,
		log:            logger,
	}
}

// NewDefault creates a Tagger with the default configurations.
func NewDefault() *Tagger {
	return New(model.DefaultExtractionConfig(), model.DefaultDisambiguationConfig())
}

// SetPipeline replaces the extraction pipeline.
func (t *Tagger) SetPipeline(pipeline *extract.Pipeline) {
	t.Pipeline = pipeline
}

// SetService replaces the disambiguation service.
func (t *Tagger) SetService(service *disambiguate.Service) {
	t.Service = service
}

// Logger returns the tagger's logger for use by custom stages.
func (t *Tagger) Logger() *slog.Logger {
	return t.log
}

// Process runs one document through the full pipeline:
// 1. Every configured extractor scans the content and emits candidates.
// 2. The disambiguators group coreferent candidates and tag them.
// 3. The coreference resolver links pronouns and generic references.
// 4. Co-occurrence relations are derived between nearby mentions.
// The returned result holds the tagged entity set and the relations, ready
// for a downstream knowledge-graph writer.
func (t *Tagger) Process(ctx context.Context, doc *model.Document) (*model.Result, error) {
	if doc == nil {
		return nil, helper.NewError("process document", fmt.Errorf("document is nil"))
	}
	if doc.Content == "" {
		t.log.Info("Skipping document without content", slog.String("source_id", doc.SourceID))
		return &model.Result{Entities: []*model.Entity{}}, nil
	}

	candidates, err := t.Pipeline.Extract(ctx, doc.Content, doc.SourceID, doc.TenantID)
	if err != nil {
		return nil, helper.NewError("extract entities", err)
	}

	t.log.Info("Extracted candidate entities",
		slog.String("source_id", doc.SourceID),
		slog.Int("num_entities", len(candidates)))

	tagged, err := t.Service.DisambiguateEntities(ctx, doc.Content, candidates, doc.TenantID)
	if err != nil {
		return nil, helper.NewError("disambiguate entities", err)
	}

	relations := extract.DeriveRelations(tagged, t.extraction.RelationWindow)

	t.log.Info("Processed document",
		slog.String("source_id", doc.SourceID),
		slog.Int("num_entities", len(tagged)),
		slog.Int("num_relations", len(relations)))

	return &model.Result{
		Entities:  tagged,
		Relations: relations,
	}, nil
}

// ProcessText is a convenience wrapper around Process for raw text input.
func (t *Tagger) ProcessText(ctx context.Context, text, sourceID, tenantID string) (*model.Result, error) {
	doc := model.NewDocument("", sourceID, tenantID, text)
	return t.Process(ctx, doc)
}
