package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// defaultTermConfidence is used for entity types without a configured default.
const defaultTermConfidence = 0.7

// defaultTypeConfidences holds per-type confidence defaults for dictionary terms.
var defaultTypeConfidences = map[model.EntityType]float64{
	model.EntityTypeOrganization:   0.9,
	model.EntityTypeTechnicalTerm:  0.8,
	model.EntityTypeJobTitle:       0.8,
	model.EntityTypeSkill:          0.7,
	model.EntityTypeDatabaseTable:  0.6,
	model.EntityTypeDatabaseColumn: 0.6,
}

// DictionaryExtractor matches known terms against text. Single-word terms are
// matched against whole tokens, multi-word terms by a repeated substring scan
// recording all non-overlapping occurrences.
type DictionaryExtractor struct {
	terms         map[model.EntityType]map[string]float64
	caseSensitive bool
	config        model.ExtractionConfig
}

// NewDictionaryExtractor creates a dictionary extractor with empty term
// tables. Terms are registered with AddTerm/AddTerms or loaded from a YAML
// file with LoadTermsFile.
func NewDictionaryExtractor(config model.ExtractionConfig) *DictionaryExtractor {
	return &DictionaryExtractor{
		terms:         make(map[model.EntityType]map[string]float64),
		caseSensitive: config.CaseSensitiveTerms,
		config:        config,
	}
}

// AddTerm registers a term for the given entity type. A confidence of zero or
// less selects the per-type default.
func (e *DictionaryExtractor) AddTerm(entityType model.EntityType, term string, confidence float64) error {
	if strings.TrimSpace(term) == "" {
		return helper.NewError("add term", fmt.Errorf("term is empty"))
	}
	if confidence <= 0 {
		confidence = DefaultTermConfidence(entityType)
	}

	key := term
	if !e.caseSensitive {
		key = strings.ToLower(term)
	}

	if e.terms[entityType] == nil {
		e.terms[entityType] = make(map[string]float64)
	}
	e.terms[entityType][key] = confidence
	return nil
}

// AddTerms registers terms with the per-type default confidence.
func (e *DictionaryExtractor) AddTerms(entityType model.EntityType, terms []string) error {
	for _, term := range terms {
		if err := e.AddTerm(entityType, term, 0); err != nil {
			return err
		}
	}
	return nil
}

// termFileEntry is one term in a YAML term table.
type termFileEntry struct {
	Term       string  `yaml:"term"`
	Confidence float64 `yaml:"confidence"`
}

// LoadTermsFile loads term tables from a YAML file keyed by entity type:
//
//	organization:
//	  - term: Acme Corporation
//	    confidence: 0.9
//	skill:
//	  - term: Go
func (e *DictionaryExtractor) LoadTermsFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return helper.NewError("read term file", err)
	}

	var tables map[string][]termFileEntry
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return helper.NewError("parse term file", err)
	}

	for typeName, entries := range tables {
		entityType := model.EntityType(typeName)
		for _, entry := range entries {
			if err := e.AddTerm(entityType, entry.Term, entry.Confidence); err != nil {
				return err
			}
		}
	}
	return nil
}

// DefaultTermConfidence returns the default confidence for terms of a type.
func DefaultTermConfidence(entityType model.EntityType) float64 {
	if confidence, ok := defaultTypeConfidences[entityType]; ok {
		return confidence
	}
	return defaultTermConfidence
}

// Name identifies the extractor in logs.
func (e *DictionaryExtractor) Name() string {
	return "dictionary"
}

// SupportedTypes returns the entity types with at least one registered term.
func (e *DictionaryExtractor) SupportedTypes() []model.EntityType {
	types := make([]model.EntityType, 0, len(e.terms))
	for entityType := range e.terms {
		types = append(types, entityType)
	}
	return types
}

// ExtractEntities matches all registered terms against the text.
func (e *DictionaryExtractor) ExtractEntities(text string, sourceID string, tenantID string) ([]*model.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []*model.Entity{}, nil
	}

	var entities []*model.Entity
	tokens := tokenizeWithPositions(text)

	for entityType, table := range e.terms {
		for term, confidence := range table {
			if strings.ContainsAny(term, " \t") {
				entities = append(entities, e.scanSubstring(text, term, entityType, confidence, sourceID, tenantID)...)
				continue
			}
			entities = append(entities, e.matchTokens(text, tokens, term, entityType, confidence, sourceID, tenantID)...)
		}
	}

	return entities, nil
}

// matchTokens matches a single-word term against whole tokens.
func (e *DictionaryExtractor) matchTokens(text string, tokens []tokenSpan, term string, entityType model.EntityType, confidence float64, sourceID, tenantID string) []*model.Entity {
	var entities []*model.Entity
	for _, token := range tokens {
		candidate := token.value
		if !e.caseSensitive {
			candidate = strings.ToLower(candidate)
		}
		if candidate != term {
			continue
		}
		entities = append(entities, e.newMatch(text, token.value, term, token.start, entityType, confidence, sourceID, tenantID))
	}
	return entities
}

// scanSubstring records all non-overlapping occurrences of a multi-word term.
func (e *DictionaryExtractor) scanSubstring(text string, term string, entityType model.EntityType, confidence float64, sourceID, tenantID string) []*model.Entity {
	haystack := text
	if !e.caseSensitive {
		haystack = strings.ToLower(text)
	}

	var entities []*model.Entity
	offset := 0
	for {
		index := strings.Index(haystack[offset:], term)
		if index < 0 {
			break
		}
		start := offset + index
		entities = append(entities, e.newMatch(text, text[start:start+len(term)], term, start, entityType, confidence, sourceID, tenantID))
		offset = start + len(term)
	}
	return entities
}

func (e *DictionaryExtractor) newMatch(text, value, term string, start int, entityType model.EntityType, confidence float64, sourceID, tenantID string) *model.Entity {
	entity := model.NewEntity(value, entityType, sourceID, tenantID)
	entity.Confidence = confidence
	entity.SetSpan(start, start+len(value))
	entity.OriginalContext = helper.ContextWindow(text, start, len(value), e.config.ContextWindow)
	entity.Attributes[model.AttrMatchedTerm] = model.StringValue(term)
	return entity
}

// tokenSpan is a token with its byte offset in the source text.
type tokenSpan struct {
	value string
	start int
}

// tokenizeWithPositions splits text on whitespace and punctuation, keeping
// byte offsets for span assignment.
func tokenizeWithPositions(text string) []tokenSpan {
	var tokens []tokenSpan
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, tokenSpan{value: text[start:i], start: start})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, tokenSpan{value: text[start:], start: start})
	}
	return tokens
}
