package disambiguate

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/siherrmann/tagger/model"
)

// NameSimilarity computes the default similarity between two entity mentions.
// Entities of different types or tenants have similarity 0. Identical names
// (case-insensitive) score 1.0; otherwise the score is the normalized
// Levenshtein similarity 1 - distance/maxLen over the lower-cased names.
// The function is symmetric.
func NameSimilarity(a, b *model.Entity) float64 {
	if a.TenantID != b.TenantID {
		return 0
	}
	if a.Type != b.Type {
		return 0
	}
	if strings.EqualFold(a.Name, b.Name) {
		return 1.0
	}

	first := strings.ToLower(a.Name)
	second := strings.ToLower(b.Name)

	maxLen := utf8.RuneCountInString(first)
	if l := utf8.RuneCountInString(second); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(first, second)
	return 1.0 - float64(distance)/float64(maxLen)
}

// nameTokens splits a name on the separators people use inside names.
func nameTokens(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.'
	})
}

// surnameBoost raises the similarity of two multi-token person names with a
// matching last token to at least 0.7. "J. Smith" and "John Smith" should
// land in reach of grouping even though their edit distance is large.
func surnameBoost(similarity float64, a, b *model.Entity) float64 {
	if a.Type != model.EntityTypePerson || b.Type != model.EntityTypePerson {
		return similarity
	}
	if similarity >= 0.7 {
		return similarity
	}

	first := nameTokens(a.Name)
	second := nameTokens(b.Name)
	if len(first) < 2 || len(second) < 2 {
		return similarity
	}
	if strings.EqualFold(first[len(first)-1], second[len(second)-1]) {
		return 0.7
	}
	return similarity
}
