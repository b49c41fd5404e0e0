package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Attribute keys written by the extraction and disambiguation stages.
const (
	AttrPatternName            = "PatternName"
	AttrRuleName               = "RuleName"
	AttrMatchedTerm            = "MatchedTerm"
	AttrIsPrimaryEntity        = "IsPrimaryEntity"
	AttrEntityGroupSize        = "EntityGroupSize"
	AttrDisambiguationMethod   = "DisambiguationMethod"
	AttrReferenceType          = "ReferenceType"
	AttrReferenceTarget        = "ReferenceTarget"
	AttrContextSimilarityScore = "ContextSimilarityScore"
)

// AttributeKind discriminates the variants an AttributeValue can hold.
type AttributeKind string

const (
	AttributeKindString    AttributeKind = "string"
	AttributeKindFloat     AttributeKind = "float"
	AttributeKindInt       AttributeKind = "int"
	AttributeKindBool      AttributeKind = "bool"
	AttributeKindEntityRef AttributeKind = "entity_ref"
)

// AttributeValue is a closed variant over the value types extractors and
// disambiguators attach to entities. Only the field matching Kind is valid.
type AttributeValue struct {
	Kind      AttributeKind `json:"kind"`
	Str       string        `json:"str,omitempty"`
	Float     float64       `json:"float,omitempty"`
	Int       int           `json:"int,omitempty"`
	Bool      bool          `json:"bool,omitempty"`
	EntityRef uuid.UUID     `json:"entity_ref,omitempty"`
}

// StringValue creates a string attribute value.
func StringValue(s string) AttributeValue {
	return AttributeValue{Kind: AttributeKindString, Str: s}
}

// FloatValue creates a float attribute value.
func FloatValue(f float64) AttributeValue {
	return AttributeValue{Kind: AttributeKindFloat, Float: f}
}

// IntValue creates an int attribute value.
func IntValue(i int) AttributeValue {
	return AttributeValue{Kind: AttributeKindInt, Int: i}
}

// BoolValue creates a bool attribute value.
func BoolValue(b bool) AttributeValue {
	return AttributeValue{Kind: AttributeKindBool, Bool: b}
}

// EntityRefValue creates an attribute value referencing another entity by ID.
func EntityRefValue(id uuid.UUID) AttributeValue {
	return AttributeValue{Kind: AttributeKindEntityRef, EntityRef: id}
}

// String returns the human-readable form of the contained value.
func (v AttributeValue) String() string {
	switch v.Kind {
	case AttributeKindString:
		return v.Str
	case AttributeKindFloat:
		return fmt.Sprintf("%g", v.Float)
	case AttributeKindInt:
		return fmt.Sprintf("%d", v.Int)
	case AttributeKindBool:
		return fmt.Sprintf("%t", v.Bool)
	case AttributeKindEntityRef:
		return v.EntityRef.String()
	default:
		return ""
	}
}

// Attributes maps attribute keys to typed values.
type Attributes map[string]AttributeValue

// Clone returns a copy of the attribute map.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	clone := make(Attributes, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// GetString returns the string value for key, if present and of string kind.
func (a Attributes) GetString(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindString {
		return "", false
	}
	return v.Str, true
}

// GetFloat returns the float value for key, if present and of float kind.
func (a Attributes) GetFloat(key string) (float64, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindFloat {
		return 0, false
	}
	return v.Float, true
}

// GetInt returns the int value for key, if present and of int kind.
func (a Attributes) GetInt(key string) (int, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindInt {
		return 0, false
	}
	return v.Int, true
}

// GetBool returns the bool value for key, if present and of bool kind.
func (a Attributes) GetBool(key string) (bool, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindBool {
		return false, false
	}
	return v.Bool, true
}

// GetEntityRef returns the referenced entity ID for key, if present.
func (a Attributes) GetEntityRef(key string) (uuid.UUID, bool) {
	v, ok := a[key]
	if !ok || v.Kind != AttributeKindEntityRef {
		return uuid.Nil, false
	}
	return v.EntityRef, true
}

// Marshal converts Attributes to JSON bytes
func (a Attributes) Marshal() ([]byte, error) {
	return json.Marshal(a)
}

// Unmarshal converts JSON bytes or Attributes to Attributes
func (a *Attributes) Unmarshal(value interface{}) error {
	if value == nil {
		*a = Attributes{}
		return nil
	}

	if s, ok := value.(Attributes); ok {
		*a = s
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, a)
}
