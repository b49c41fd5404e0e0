package disambiguate

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/siherrmann/tagger/model"
)

// IDGenerator produces opaque disambiguation tokens. It is injected rather
// than ambient so tests can run with deterministic IDs.
type IDGenerator func() string

// NewShortIDGenerator returns a generator deriving short random tokens from
// uuids.
func NewShortIDGenerator() IDGenerator {
	return func() string {
		id := uuid.New().String()
		return id[:8]
	}
}

// NewSequentialIDGenerator returns a deterministic generator producing
// prefix-0, prefix-1, ... for tests.
func NewSequentialIDGenerator(prefix string) IDGenerator {
	var counter atomic.Int64
	return func() string {
		n := counter.Add(1)
		return prefix + "-" + strconv.FormatInt(n-1, 10)
	}
}

// tagGroup assigns the disambiguation ID and grouping attributes to the fresh
// members. Members already carrying an ID keep it and their earlier grouping
// attributes untouched, first assignment wins. When the group absorbed an
// already-grouped member, the absorbed group's primary stands and the new
// members join as non-primaries.
func tagGroup(group []*model.Entity, id string, method string) {
	adopted := false
	for _, entity := range group {
		if entity.DisambiguationID != "" {
			adopted = true
			break
		}
	}

	var primary *model.Entity
	if !adopted {
		primary = choosePrimary(group)
	}

	for _, entity := range group {
		if entity.DisambiguationID != "" {
			continue
		}
		entity.DisambiguationID = id
		if entity.Attributes == nil {
			entity.Attributes = model.Attributes{}
		}
		entity.Attributes[model.AttrIsPrimaryEntity] = model.BoolValue(entity == primary)
		entity.Attributes[model.AttrEntityGroupSize] = model.IntValue(len(group))
		entity.Attributes[model.AttrDisambiguationMethod] = model.StringValue(method)
	}
}

// choosePrimary picks the group member with the strictly highest confidence.
// Confidence ties resolve to the lexicographically lowest entity ID, so the
// choice does not depend on iteration order.
func choosePrimary(group []*model.Entity) *model.Entity {
	primary := group[0]
	for _, entity := range group[1:] {
		if entity.Confidence > primary.Confidence {
			primary = entity
			continue
		}
		if entity.Confidence == primary.Confidence &&
			strings.Compare(entity.ID.String(), primary.ID.String()) < 0 {
			primary = entity
		}
	}
	return primary
}

// cloneAll copies an entity collection so grouping never aliases the input.
func cloneAll(entities []*model.Entity) []*model.Entity {
	clones := make([]*model.Entity, len(entities))
	for i, entity := range entities {
		clones[i] = entity.Clone()
	}
	return clones
}
