package disambiguate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// stopWords are excluded from context key-term sets.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "any": true, "can": true,
	"had": true, "her": true, "was": true, "one": true, "our": true,
	"out": true, "has": true, "have": true, "this": true, "that": true,
	"with": true, "from": true, "they": true, "will": true, "would": true,
	"there": true, "their": true, "what": true, "about": true, "which": true,
	"when": true, "were": true, "been": true, "more": true, "also": true,
	"into": true, "than": true, "them": true, "then": true, "some": true,
	"its": true, "his": true, "she": true, "him": true, "who": true,
	"after": true, "before": true, "over": true, "under": true, "between": true,
}

// ContextDisambiguator groups entities whose surrounding text overlaps
// strongly, measured as Jaccard similarity between normalized key-term sets.
// Only entities carrying an original context participate; entities grouped by
// an earlier pass are left alone.
type ContextDisambiguator struct {
	threshold float64
	supported map[model.EntityType]bool
	idGen     IDGenerator
}

// NewContextDisambiguator creates a context-based disambiguator. The default
// threshold is 0.6.
func NewContextDisambiguator(threshold float64, idGen IDGenerator) *ContextDisambiguator {
	return &ContextDisambiguator{
		threshold: threshold,
		supported: typeSet(defaultNameLikeTypes()),
		idGen:     idGen,
	}
}

// SetSupportedTypes replaces the set of entity types this strategy groups.
func (d *ContextDisambiguator) SetSupportedTypes(types []model.EntityType) {
	d.supported = typeSet(types)
}

// Name identifies the strategy.
func (d *ContextDisambiguator) Name() string {
	return "Context"
}

// SupportedTypes returns the entity types this strategy groups.
func (d *ContextDisambiguator) SupportedTypes() []model.EntityType {
	types := make([]model.EntityType, 0, len(d.supported))
	for entityType := range d.supported {
		types = append(types, entityType)
	}
	return types
}

// keyTerms extracts the normalized key-term set from a context snippet:
// lower-cased, punctuation stripped, tokens longer than 2 characters, stop
// words removed.
func keyTerms(context string) map[string]bool {
	terms := make(map[string]bool)
	tokens := strings.FieldsFunc(strings.ToLower(context), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if len(token) <= 2 || stopWords[token] {
			continue
		}
		terms[token] = true
	}
	return terms
}

// jaccard computes |intersection| / |union| of two term sets.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for term := range a {
		if b[term] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// ContextSimilarity computes the Jaccard similarity between the key-term sets
// of two entity contexts. Entities of different types or tenants, or without
// context, score 0.
func ContextSimilarity(a, b *model.Entity) float64 {
	if a.TenantID != b.TenantID {
		return 0
	}
	if a.Type != b.Type {
		return 0
	}
	if a.OriginalContext == "" || b.OriginalContext == "" {
		return 0
	}
	return jaccard(keyTerms(a.OriginalContext), keyTerms(b.OriginalContext))
}

// FindRelated returns the candidates whose context similarity with target
// reaches the threshold.
func (d *ContextDisambiguator) FindRelated(target *model.Entity, candidates []*model.Entity, threshold float64) []*model.Entity {
	var related []*model.Entity
	for _, candidate := range candidates {
		if candidate.ID == target.ID {
			continue
		}
		if ContextSimilarity(target, candidate) >= threshold {
			related = append(related, candidate)
		}
	}
	return related
}

// Disambiguate clusters entities by shared context using the same single-pass
// scheme as the name strategy. Entities that already carry a disambiguation
// ID are skipped entirely, first assignment wins. Each member records its
// context similarity to the group seed.
func (d *ContextDisambiguator) Disambiguate(entities []*model.Entity, tenantID string) ([]*model.Entity, error) {
	if entities == nil {
		return nil, helper.NewError("context disambiguation", fmt.Errorf("entity collection is nil"))
	}

	out := cloneAll(entities)
	processed := make([]bool, len(out))

	for i, seed := range out {
		if processed[i] || !d.eligible(seed, tenantID) {
			continue
		}
		processed[i] = true

		group := []*model.Entity{seed}
		scores := []float64{1.0}
		for j := range out {
			if j == i || processed[j] || !d.eligible(out[j], tenantID) {
				continue
			}
			similarity := ContextSimilarity(seed, out[j])
			if similarity < d.threshold {
				continue
			}
			group = append(group, out[j])
			scores = append(scores, similarity)
			processed[j] = true
		}

		if len(group) < 2 {
			continue
		}

		tagGroup(group, d.idGen(), d.Name())
		for k, member := range group {
			member.Attributes[model.AttrContextSimilarityScore] = model.FloatValue(scores[k])
		}
	}

	return out, nil
}

// eligible reports whether an entity participates in context grouping.
func (d *ContextDisambiguator) eligible(entity *model.Entity, tenantID string) bool {
	return entity.DisambiguationID == "" &&
		entity.OriginalContext != "" &&
		d.supported[entity.Type] &&
		entity.TenantID == tenantID
}
