package model

// Result represents the tagged output of one processed text unit
type Result struct {
	Entities  []*Entity   `json:"entities"`
	Relations []*Relation `json:"relations,omitempty"`
}

// Groups returns the entities keyed by their DisambiguationID. Entities
// without a disambiguation ID are omitted.
func (r *Result) Groups() map[string][]*Entity {
	groups := make(map[string][]*Entity)
	for _, entity := range r.Entities {
		if entity.DisambiguationID == "" {
			continue
		}
		groups[entity.DisambiguationID] = append(groups[entity.DisambiguationID], entity)
	}
	return groups
}

// ByType returns the entities of the given type.
func (r *Result) ByType(entityType EntityType) []*Entity {
	var entities []*Entity
	for _, entity := range r.Entities {
		if entity.Type == entityType {
			entities = append(entities, entity)
		}
	}
	return entities
}
