package disambiguate

import (
	"fmt"

	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

// NameDisambiguator groups entities whose names are similar enough to refer
// to the same referent, using single-pass clustering over normalized
// Levenshtein similarity.
type NameDisambiguator struct {
	threshold float64
	supported map[model.EntityType]bool
	idGen     IDGenerator
}

// NewNameDisambiguator creates a name-based disambiguator. The default
// threshold is 0.8.
func NewNameDisambiguator(threshold float64, idGen IDGenerator) *NameDisambiguator {
	return &NameDisambiguator{
		threshold: threshold,
		supported: typeSet(defaultNameLikeTypes()),
		idGen:     idGen,
	}
}

// SetSupportedTypes replaces the set of entity types this strategy groups.
func (d *NameDisambiguator) SetSupportedTypes(types []model.EntityType) {
	d.supported = typeSet(types)
}

// Name identifies the strategy.
func (d *NameDisambiguator) Name() string {
	return "Name"
}

// SupportedTypes returns the entity types this strategy groups.
func (d *NameDisambiguator) SupportedTypes() []model.EntityType {
	types := make([]model.EntityType, 0, len(d.supported))
	for entityType := range d.supported {
		types = append(types, entityType)
	}
	return types
}

// similarity applies the person surname boost on top of the default measure.
func (d *NameDisambiguator) similarity(a, b *model.Entity) float64 {
	return surnameBoost(NameSimilarity(a, b), a, b)
}

// FindRelated returns the candidates whose name similarity with target
// reaches the threshold.
func (d *NameDisambiguator) FindRelated(target *model.Entity, candidates []*model.Entity, threshold float64) []*model.Entity {
	var related []*model.Entity
	for _, candidate := range candidates {
		if candidate.ID == target.ID {
			continue
		}
		if d.similarity(target, candidate) >= threshold {
			related = append(related, candidate)
		}
	}
	return related
}

// Disambiguate clusters the entities in a single pass: every entity without a
// disambiguation ID seeds a group once, then all remaining entities with
// similarity at or above the threshold join it. Entities grouped by an
// earlier pass keep their ID but may be absorbed as comparison candidates, in
// which case the new members adopt the existing group ID. Groups of size 1
// stay unlabeled. The input collection is not modified.
func (d *NameDisambiguator) Disambiguate(entities []*model.Entity, tenantID string) ([]*model.Entity, error) {
	if entities == nil {
		return nil, helper.NewError("name disambiguation", fmt.Errorf("entity collection is nil"))
	}

	out := cloneAll(entities)
	processed := make([]bool, len(out))

	for i, seed := range out {
		if processed[i] || seed.DisambiguationID != "" {
			continue
		}
		if !d.supported[seed.Type] || seed.TenantID != tenantID {
			continue
		}
		processed[i] = true

		group := []*model.Entity{seed}
		existingID := ""
		for j := range out {
			if j == i || processed[j] {
				continue
			}
			candidate := out[j]
			if !d.supported[candidate.Type] {
				continue
			}
			if d.similarity(seed, candidate) < d.threshold {
				continue
			}
			group = append(group, candidate)
			processed[j] = true
			if existingID == "" && candidate.DisambiguationID != "" {
				existingID = candidate.DisambiguationID
			}
		}

		if len(group) < 2 {
			continue
		}

		id := existingID
		if id == "" {
			id = d.idGen()
		}
		tagGroup(group, id, d.Name())
	}

	return out, nil
}
