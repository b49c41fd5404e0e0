package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// RuleMatch is one hit produced by a rule function.
type RuleMatch struct {
	Value      string
	Start      int
	Length     int
	Attributes model.Attributes
}

// RuleFunc scans text and returns all matches of one heuristic.
type RuleFunc func(text string) []RuleMatch

// Rule pairs a named heuristic with its entity type and fixed confidence.
type Rule struct {
	Name       string
	Type       model.EntityType
	Confidence float64
	Fn         RuleFunc
}

// RuleExtractor applies a list of named heuristic rules to text. Rules cover
// mentions that have linguistic shape rather than a fixed lexical pattern,
// like titled person names or organizations with legal-entity suffixes.
type RuleExtractor struct {
	rules  []Rule
	config model.ExtractionConfig
}

// NewRuleExtractor creates a rule extractor preloaded with the default rules.
func NewRuleExtractor(config model.ExtractionConfig) *RuleExtractor {
	extractor := &RuleExtractor{config: config}
	for _, rule := range defaultRules() {
		// Default rules are well formed.
		_ = extractor.AddRule(rule)
	}
	return extractor
}

// NewEmptyRuleExtractor creates a rule extractor without any rules.
func NewEmptyRuleExtractor(config model.ExtractionConfig) *RuleExtractor {
	return &RuleExtractor{config: config}
}

// AddRule registers a rule.
func (e *RuleExtractor) AddRule(rule Rule) error {
	if strings.TrimSpace(rule.Name) == "" {
		return helper.NewError("add rule", fmt.Errorf("rule name is empty"))
	}
	if rule.Fn == nil {
		return helper.NewError("add rule", fmt.Errorf("rule %v has no function", rule.Name))
	}
	e.rules = append(e.rules, rule)
	return nil
}

// Name identifies the extractor in logs.
func (e *RuleExtractor) Name() string {
	return "rule"
}

// SupportedTypes returns the entity types of the registered rules.
func (e *RuleExtractor) SupportedTypes() []model.EntityType {
	seen := make(map[model.EntityType]bool)
	var types []model.EntityType
	for _, rule := range e.rules {
		if !seen[rule.Type] {
			seen[rule.Type] = true
			types = append(types, rule.Type)
		}
	}
	return types
}

// ExtractEntities applies every rule to the text.
func (e *RuleExtractor) ExtractEntities(text string, sourceID string, tenantID string) ([]*model.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []*model.Entity{}, nil
	}

	var entities []*model.Entity
	for _, rule := range e.rules {
		for _, match := range rule.Fn(text) {
			entity := model.NewEntity(match.Value, rule.Type, sourceID, tenantID)
			entity.Confidence = rule.Confidence
			entity.SetSpan(match.Start, match.Start+match.Length)
			entity.OriginalContext = helper.ContextWindow(text, match.Start, match.Length, e.config.ContextWindow)
			entity.Attributes[model.AttrRuleName] = model.StringValue(rule.Name)
			for key, value := range match.Attributes {
				entity.Attributes[key] = value
			}
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

var (
	titledPersonPattern  = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)
	fullNamePattern      = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	organizationPattern  = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&]*(?:\s+[A-Z][A-Za-z0-9&]*)*,?\s+(?:Inc|Corp|Corporation|LLC|Ltd|GmbH|AG)\.?`)
	locationPattern      = regexp.MustCompile(`\b(?:in|at|near)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
	versionedProductName = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]*(?:\s+[A-Z][A-Za-z0-9]*)*\s+v?\d+(?:\.\d+)+\b`)
	apiEndpointPattern   = regexp.MustCompile(`\b(GET|POST|PUT|PATCH|DELETE)\s+(/[A-Za-z0-9_\-/{}.]*)`)

	// Tokens that mark a capitalized pair as a company name, not a person.
	legalSuffixes = map[string]bool{
		"Inc": true, "Corp": true, "Corporation": true, "LLC": true,
		"Ltd": true, "GmbH": true, "AG": true, "Co": true,
	}
)

// defaultRules returns the built-in heuristic rule set.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:       "titled_person_name",
			Type:       model.EntityTypePerson,
			Confidence: 0.85,
			Fn:         regexRule(titledPersonPattern, 0),
		},
		{
			Name:       "person_full_name",
			Type:       model.EntityTypePerson,
			Confidence: 0.7,
			Fn:         fullNameRule,
		},
		{
			Name:       "organization_legal_suffix",
			Type:       model.EntityTypeOrganization,
			Confidence: 0.9,
			Fn:         regexRule(organizationPattern, 0),
		},
		{
			// Heuristic only, prepositions introduce many non-locations.
			Name:       "prepositional_location",
			Type:       model.EntityTypeLocation,
			Confidence: 0.6,
			Fn:         regexRule(locationPattern, 1),
		},
		{
			Name:       "versioned_product",
			Type:       model.EntityTypeProduct,
			Confidence: 0.85,
			Fn:         regexRule(versionedProductName, 0),
		},
		{
			Name:       "api_endpoint",
			Type:       model.EntityTypeApi,
			Confidence: 0.9,
			Fn:         apiEndpointRule,
		},
	}
}

// regexRule adapts a compiled pattern into a RuleFunc. group selects which
// capture group forms the mention (0 for the whole match).
func regexRule(pattern *regexp.Regexp, group int) RuleFunc {
	return func(text string) []RuleMatch {
		var matches []RuleMatch
		for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := match[2*group], match[2*group+1]
			if start < 0 {
				continue
			}
			matches = append(matches, RuleMatch{
				Value:  text[start:end],
				Start:  start,
				Length: end - start,
			})
		}
		return matches
	}
}

// fullNameRule matches sequences of capitalized words, skipping spans that end
// in a legal-entity suffix (those belong to the organization rule).
func fullNameRule(text string) []RuleMatch {
	var matches []RuleMatch
	for _, match := range fullNamePattern.FindAllStringIndex(text, -1) {
		value := text[match[0]:match[1]]
		words := strings.Fields(value)
		if legalSuffixes[words[len(words)-1]] {
			continue
		}
		matches = append(matches, RuleMatch{
			Value:  value,
			Start:  match[0],
			Length: match[1] - match[0],
		})
	}
	return matches
}

// apiEndpointRule matches HTTP-method-prefixed endpoint paths, recording the
// method and path as attributes.
func apiEndpointRule(text string) []RuleMatch {
	var matches []RuleMatch
	for _, match := range apiEndpointPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := match[0], match[1]
		matches = append(matches, RuleMatch{
			Value:  text[start:end],
			Start:  start,
			Length: end - start,
			Attributes: model.Attributes{
				"HttpMethod": model.StringValue(text[match[2]:match[3]]),
				"Path":       model.StringValue(text[match[4]:match[5]]),
			},
		})
	}
	return matches
}
