package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity represents a single mention of a real-world object extracted from text.
// Mentions that refer to the same referent share a DisambiguationID; the mentions
// themselves are never merged or deleted by the pipeline.
type Entity struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Type             EntityType `json:"entity_type"`
	Confidence       float64    `json:"confidence"`
	SourceID         string     `json:"source_id"`
	TenantID         string     `json:"tenant_id"`
	StartPos         *int       `json:"start_pos,omitempty"`
	EndPos           *int       `json:"end_pos,omitempty"`
	OriginalContext  string     `json:"original_context,omitempty"`
	Attributes       Attributes `json:"attributes,omitempty"`
	DisambiguationID string     `json:"disambiguation_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewEntity creates an entity with a fresh ID and an empty attribute set.
func NewEntity(name string, entityType EntityType, sourceID string, tenantID string) *Entity {
	return &Entity{
		ID:         uuid.New(),
		Name:       name,
		Type:       entityType,
		SourceID:   sourceID,
		TenantID:   tenantID,
		Attributes: Attributes{},
		CreatedAt:  time.Now(),
	}
}

// Clone returns a deep copy of the entity. Disambiguation stages operate on
// copies and return new collections, so earlier stage output stays unchanged.
func (e *Entity) Clone() *Entity {
	clone := *e
	if e.StartPos != nil {
		pos := *e.StartPos
		clone.StartPos = &pos
	}
	if e.EndPos != nil {
		pos := *e.EndPos
		clone.EndPos = &pos
	}
	clone.Attributes = e.Attributes.Clone()
	return &clone
}

// HasPosition reports whether the entity is tied to a literal span in its source.
// Derived entities (e.g. system entities) may carry no position.
func (e *Entity) HasPosition() bool {
	return e.StartPos != nil && e.EndPos != nil
}

// SetSpan sets the character span of the mention in the source text.
func (e *Entity) SetSpan(start, end int) {
	e.StartPos = &start
	e.EndPos = &end
}
