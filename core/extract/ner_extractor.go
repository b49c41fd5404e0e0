package extract

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// NERExtractor detects person, organization and location mentions with a
// token-classification model. It implements the same contract as the
// rule-driven extractors but requires a local model, so it is opt-in and not
// part of the default extractor set.
type NERExtractor struct {
	session     *hugot.Session
	nerPipeline *pipelines.TokenClassificationPipeline
	config      model.ExtractionConfig
}

// NewNERExtractor creates an NER extractor using the distilbert-NER model,
// downloading it on first use.
func NewNERExtractor(config model.ExtractionConfig) (*NERExtractor, error) {
	// Using KnightsAnalytics optimized distilbert-NER model
	modelName := "KnightsAnalytics/distilbert-NER"
	modelPath, err := helper.PrepareModel(modelName, "model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	// Create token classification pipeline for NER
	pipelineConfig := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}), // Ignore non-entity tokens
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	return &NERExtractor{
		session:     session,
		nerPipeline: nerPipeline,
		config:      config,
	}, nil
}

// Close releases the model session.
func (e *NERExtractor) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}

// Name identifies the extractor in logs.
func (e *NERExtractor) Name() string {
	return "ner"
}

// SupportedTypes returns the entity types the model can emit.
func (e *NERExtractor) SupportedTypes() []model.EntityType {
	return []model.EntityType{
		model.EntityTypePerson,
		model.EntityTypeOrganization,
		model.EntityTypeLocation,
		model.EntityTypeCustom,
	}
}

// ExtractEntities runs the NER model over the text and converts its output
// into candidate entities with spans and model scores as confidence.
func (e *NERExtractor) ExtractEntities(text string, sourceID string, tenantID string) ([]*model.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []*model.Entity{}, nil
	}

	result, err := e.nerPipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to run NER: %w", err)
	}

	if len(result.Entities) == 0 {
		return []*model.Entity{}, nil
	}

	var entities []*model.Entity
	for _, nerEntity := range result.Entities[0] {
		entityType := entityTypeFromLabel(nerEntity.Entity)

		entity := model.NewEntity(strings.TrimSpace(nerEntity.Word), entityType, sourceID, tenantID)
		entity.Confidence = float64(nerEntity.Score)
		start := int(nerEntity.Start)
		end := int(nerEntity.End)
		entity.SetSpan(start, end)
		entity.OriginalContext = helper.ContextWindow(text, start, end-start, e.config.ContextWindow)
		entity.Attributes[model.AttrPatternName] = model.StringValue("ner_model")

		entities = append(entities, entity)
	}

	return entities, nil
}

// entityTypeFromLabel maps BIO-tagged NER labels onto entity types.
func entityTypeFromLabel(label string) model.EntityType {
	// Remove BIO tagging prefixes (B- for beginning, I- for inside)
	label = strings.TrimPrefix(strings.TrimPrefix(label, "B-"), "I-")

	switch label {
	case "PER":
		return model.EntityTypePerson
	case "ORG":
		return model.EntityTypeOrganization
	case "LOC":
		return model.EntityTypeLocation
	default:
		return model.EntityTypeCustom
	}
}
