package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// patternConfidence is the fixed confidence assigned to pattern matches.
// Patterns are exact by construction, so matches rank high.
const patternConfidence = 0.9

// NamedPattern pairs a compiled pattern with the name recorded on matches.
type NamedPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// PatternExtractor emits one entity per match of every registered pattern.
// Overlapping matches from different patterns are all kept.
type PatternExtractor struct {
	patterns map[model.EntityType][]NamedPattern
	config   model.ExtractionConfig
}

// NewPatternExtractor creates a pattern extractor preloaded with the default
// pattern set (emails, URLs, phone numbers, dates, currency amounts,
// percentages, SQL references and function-like code snippets).
func NewPatternExtractor(config model.ExtractionConfig) *PatternExtractor {
	extractor := &PatternExtractor{
		patterns: make(map[model.EntityType][]NamedPattern),
		config:   config,
	}
	extractor.registerDefaultPatterns()
	return extractor
}

// NewEmptyPatternExtractor creates a pattern extractor without any patterns.
func NewEmptyPatternExtractor(config model.ExtractionConfig) *PatternExtractor {
	return &PatternExtractor{
		patterns: make(map[model.EntityType][]NamedPattern),
		config:   config,
	}
}

// AddPattern compiles and registers a pattern for the given entity type.
func (e *PatternExtractor) AddPattern(entityType model.EntityType, name string, pattern string) error {
	if strings.TrimSpace(name) == "" {
		return helper.NewError("add pattern", fmt.Errorf("pattern name is empty"))
	}
	if strings.TrimSpace(pattern) == "" {
		return helper.NewError("add pattern", fmt.Errorf("pattern %v is empty", name))
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return helper.NewError(fmt.Sprintf("compile pattern %v", name), err)
	}

	e.patterns[entityType] = append(e.patterns[entityType], NamedPattern{Name: name, Pattern: compiled})
	return nil
}

// Name identifies the extractor in logs.
func (e *PatternExtractor) Name() string {
	return "pattern"
}

// SupportedTypes returns the entity types with at least one registered pattern.
func (e *PatternExtractor) SupportedTypes() []model.EntityType {
	types := make([]model.EntityType, 0, len(e.patterns))
	for entityType := range e.patterns {
		types = append(types, entityType)
	}
	return types
}

// ExtractEntities scans text with every registered pattern. Each match yields
// one entity with its span, a context window and any named capture groups
// copied into the attributes.
func (e *PatternExtractor) ExtractEntities(text string, sourceID string, tenantID string) ([]*model.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []*model.Entity{}, nil
	}

	var entities []*model.Entity
	for entityType, patterns := range e.patterns {
		for _, pattern := range patterns {
			matches := pattern.Pattern.FindAllStringSubmatchIndex(text, -1)
			for _, match := range matches {
				start, end := match[0], match[1]
				entity := model.NewEntity(text[start:end], entityType, sourceID, tenantID)
				entity.Confidence = patternConfidence
				entity.SetSpan(start, end)
				entity.OriginalContext = helper.ContextWindow(text, start, end-start, e.config.ContextWindow)
				entity.Attributes[model.AttrPatternName] = model.StringValue(pattern.Name)

				for i, groupName := range pattern.Pattern.SubexpNames() {
					if groupName == "" || match[2*i] < 0 {
						continue
					}
					entity.Attributes[groupName] = model.StringValue(text[match[2*i]:match[2*i+1]])
				}

				entities = append(entities, entity)
			}
		}
	}

	return entities, nil
}

// registerDefaultPatterns loads the built-in pattern table. Patterns are
// independent, a text span may be matched by more than one of them.
func (e *PatternExtractor) registerDefaultPatterns() {
	defaults := []struct {
		entityType model.EntityType
		name       string
		pattern    string
	}{
		{model.EntityTypeEmail, "email", `\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`},
		{model.EntityTypeUrl, "url", `\bhttps?://[^\s<>"]+`},
		{model.EntityTypePhoneNumber, "phone_us", `\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`},
		{model.EntityTypeDateTime, "iso_date", `\b\d{4}-\d{2}-\d{2}(?:T\d{2}:\d{2}:\d{2}(?:Z|[+-]\d{2}:\d{2})?)?\b`},
		{model.EntityTypeDateTime, "us_date", `\b\d{1,2}/\d{1,2}/\d{4}\b`},
		{model.EntityTypeDateTime, "eu_date", `\b\d{1,2}\.\d{1,2}\.\d{4}\b`},
		{model.EntityTypeMoney, "currency_amount", `[$€£]\s?\d+(?:,\d{3})*(?:\.\d+)?\b`},
		{model.EntityTypePercentage, "percentage", `\b\d+(?:\.\d+)?\s?%`},
		{model.EntityTypeDatabaseTable, "sql_table", `(?i)\b(?:FROM|JOIN|INTO|UPDATE)\s+(?P<TableName>[A-Za-z_][A-Za-z0-9_.]*)`},
		{model.EntityTypeDatabaseColumn, "sql_column", `(?i)\b(?:SELECT|WHERE|GROUP BY|ORDER BY)\s+(?P<ColumnName>[A-Za-z_][A-Za-z0-9_.]*)`},
		{model.EntityTypeCodeSnippet, "function_declaration", `\b(?:func|function|def)\s+[A-Za-z_][A-Za-z0-9_]*\s*\([^)]*\)`},
	}

	for _, d := range defaults {
		// Default patterns are known to compile.
		_ = e.AddPattern(d.entityType, d.name, d.pattern)
	}
}
