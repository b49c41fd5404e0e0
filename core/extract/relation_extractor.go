package extract

import (
	"time"

	"github.com/google/uuid"

	"github.com/siherrmann/tagger/model"
)

// DeriveRelations creates co-occurrence relations between entities of one
// text unit whose spans lie within window characters of each other. Entities
// without a position, or from different tenants, never relate.
func DeriveRelations(entities []*model.Entity, window int) []*model.Relation {
	if window <= 0 || len(entities) < 2 {
		return nil
	}

	var relations []*model.Relation
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			first := entities[i]
			second := entities[j]

			if !first.HasPosition() || !second.HasPosition() {
				continue
			}
			if first.TenantID != second.TenantID {
				continue
			}

			distance := *second.StartPos - *first.StartPos
			if distance < 0 {
				distance = -distance
			}
			if distance >= window {
				continue
			}

			relations = append(relations, &model.Relation{
				ID:             uuid.New(),
				SourceEntityID: first.ID,
				TargetEntityID: second.ID,
				RelationType:   model.RelationTypeCoOccurrence,
				Weight:         coOccurrenceWeight(distance, window),
				Bidirectional:  true,
				Attributes: model.Attributes{
					"Distance":   model.IntValue(distance),
					"SourceName": model.StringValue(first.Name),
					"TargetName": model.StringValue(second.Name),
					"SourceType": model.StringValue(string(first.Type)),
					"TargetType": model.StringValue(string(second.Type)),
				},
				CreatedAt: time.Now(),
			})
		}
	}

	return relations
}

// coOccurrenceWeight maps entity proximity onto an edge weight. Adjacent
// entities get weight 1.0, decreasing linearly to 0.0 at twice the window.
func coOccurrenceWeight(distance, window int) float64 {
	weight := 1.0 - float64(distance)/float64(2*window)
	if weight < 0 {
		return 0.0
	}
	return weight
}
