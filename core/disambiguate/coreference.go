package disambiguate

import (
	"fmt"
	"regexp"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// coreferenceConfidence is the fixed confidence of derived reference entities.
const coreferenceConfidence = 0.7

// referencePattern pairs a mention pattern with the entity type its
// antecedent must have and the reference type recorded on resolution.
type referencePattern struct {
	pattern        *regexp.Regexp
	antecedentType model.EntityType
	referenceType  string
}

var referencePatterns = []referencePattern{
	{regexp.MustCompile(`(?i)\b(?:he|him|his)\b`), model.EntityTypePerson, "pronoun_male"},
	{regexp.MustCompile(`(?i)\b(?:she|her|hers)\b`), model.EntityTypePerson, "pronoun_female"},
	{regexp.MustCompile(`(?i)\b(?:they|them|their|theirs)\b`), model.EntityTypePerson, "pronoun_neutral"},
	{regexp.MustCompile(`(?i)\bthe\s+(?:company|organization|firm|corporation|business)\b`), model.EntityTypeOrganization, "organization_reference"},
}

// CoreferenceResolver links pronouns and generic organization references back
// to the nearest preceding compatible entity. Resolution is purely
// positional: the antecedent is the entity with the largest start position
// still before the mention. No gender agreement is checked, the nearest
// preceding person wins for every pronoun bucket.
type CoreferenceResolver struct {
	window int
	idGen  IDGenerator
}

// NewCoreferenceResolver creates a resolver. The default context window is 75
// characters on each side of a resolved mention.
func NewCoreferenceResolver(window int, idGen IDGenerator) *CoreferenceResolver {
	return &CoreferenceResolver{
		window: window,
		idGen:  idGen,
	}
}

// Resolve scans the text for reference mentions and returns the input
// entities plus one derived entity per resolved mention. Antecedents without
// a disambiguation ID get one generated and backfilled, so the mention and
// its antecedent always share a group. The input collection is not modified.
func (r *CoreferenceResolver) Resolve(text string, entities []*model.Entity, tenantID string) ([]*model.Entity, error) {
	if entities == nil {
		return nil, helper.NewError("coreference resolution", fmt.Errorf("entity collection is nil"))
	}

	out := cloneAll(entities)
	if text == "" {
		return out, nil
	}

	var derived []*model.Entity
	for _, ref := range referencePatterns {
		for _, match := range ref.pattern.FindAllStringIndex(text, -1) {
			antecedent := nearestPreceding(out, ref.antecedentType, tenantID, match[0])
			if antecedent == nil {
				continue
			}
			derived = append(derived, r.newReference(text, match[0], match[1], ref, antecedent))
		}
	}

	return append(out, derived...), nil
}

// newReference creates the derived entity for a resolved mention and links it
// to its antecedent.
func (r *CoreferenceResolver) newReference(text string, start, end int, ref referencePattern, antecedent *model.Entity) *model.Entity {
	if antecedent.DisambiguationID == "" {
		antecedent.DisambiguationID = r.idGen()
	}

	entity := model.NewEntity(text[start:end], antecedent.Type, antecedent.SourceID, antecedent.TenantID)
	entity.Confidence = coreferenceConfidence
	entity.SetSpan(start, end)
	entity.OriginalContext = helper.ContextWindow(text, start, end-start, r.window)
	entity.DisambiguationID = antecedent.DisambiguationID
	entity.Attributes[model.AttrReferenceType] = model.StringValue(ref.referenceType)
	entity.Attributes[model.AttrReferenceTarget] = model.EntityRefValue(antecedent.ID)
	return entity
}

// nearestPreceding returns the entity of the wanted type with the largest
// start position strictly before pos, or nil if none precedes it.
func nearestPreceding(entities []*model.Entity, entityType model.EntityType, tenantID string, pos int) *model.Entity {
	var nearest *model.Entity
	for _, entity := range entities {
		if entity.Type != entityType || entity.TenantID != tenantID {
			continue
		}
		if !entity.HasPosition() || *entity.StartPos >= pos {
			continue
		}
		if nearest == nil || *entity.StartPos > *nearest.StartPos {
			nearest = entity
		}
	}
	return nearest
}
