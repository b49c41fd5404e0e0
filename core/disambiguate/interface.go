package disambiguate

import (
	"github.com/siherrmann/tagger/model"
)

// Disambiguator is a strategy that partitions a candidate entity set into
// groups referring to the same real-world referent. Implementations never
// mutate their input; they return a new collection of copied entities with
// DisambiguationID and grouping attributes set. Entities of unsupported
// types, and entities grouped by an earlier pass, pass through unchanged.
type Disambiguator interface {
	// Disambiguate groups entities of one tenant and returns the new
	// collection. Passing a nil collection is a caller error.
	Disambiguate(entities []*model.Entity, tenantID string) ([]*model.Entity, error)
	// FindRelated returns the candidates related to target at or above the
	// given similarity threshold.
	FindRelated(target *model.Entity, candidates []*model.Entity, threshold float64) []*model.Entity
	// SupportedTypes returns the entity types this strategy groups.
	SupportedTypes() []model.EntityType
	// Name identifies the strategy in logs and in the
	// DisambiguationMethod attribute.
	Name() string
}

// typeSet converts a type list into a lookup set.
func typeSet(types []model.EntityType) map[model.EntityType]bool {
	set := make(map[model.EntityType]bool, len(types))
	for _, entityType := range types {
		set[entityType] = true
	}
	return set
}

// defaultNameLikeTypes lists the types whose surface names identify a
// referent well enough for similarity grouping.
func defaultNameLikeTypes() []model.EntityType {
	return []model.EntityType{
		model.EntityTypePerson,
		model.EntityTypeOrganization,
		model.EntityTypeLocation,
		model.EntityTypeProduct,
		model.EntityTypeProject,
		model.EntityTypeTechnicalTerm,
		model.EntityTypeJobTitle,
		model.EntityTypeSkill,
		model.EntityTypeDatabaseTable,
		model.EntityTypeDatabaseColumn,
		model.EntityTypeApi,
	}
}
