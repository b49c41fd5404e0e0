package model

import (
	"time"

	"github.com/google/uuid"
)

// RelationType represents the type of semantic relation between two entities
type RelationType string

const (
	RelationTypeCoOccurrence RelationType = "co_occurrence"
	RelationTypeReference    RelationType = "reference"
	RelationTypeCustom       RelationType = "custom"
)

// Relation represents a semantic relation between two extracted entities.
// Relations are handed to the downstream knowledge-graph writer together
// with the entities they connect.
type Relation struct {
	ID             uuid.UUID    `json:"id"`
	SourceEntityID uuid.UUID    `json:"source_entity_id"`
	TargetEntityID uuid.UUID    `json:"target_entity_id"`
	RelationType   RelationType `json:"relation_type"`
	Weight         float64      `json:"weight"`
	Bidirectional  bool         `json:"bidirectional"`
	Attributes     Attributes   `json:"attributes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
