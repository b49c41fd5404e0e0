package disambiguate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siherrmann/tagger/model"
)

func TestNameDisambiguator(t *testing.T) {
	newDisambiguator := func() *NameDisambiguator {
		return NewNameDisambiguator(0.8, NewSequentialIDGenerator("name"))
	}

	t.Run("Similar names share a group", func(t *testing.T) {
		a := newTestEntity("Acme Incorporated", model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity("Acme Incorporatet", model.EntityTypeOrganization, "tenant-1")

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		require.Len(t, out, 2, "Expected the same number of entities back")
		assert.NotEmpty(t, out[0].DisambiguationID, "Expected a disambiguation ID")
		assert.Equal(t, out[0].DisambiguationID, out[1].DisambiguationID, "Expected both mentions in one group")

		size, _ := out[0].Attributes.GetInt(model.AttrEntityGroupSize)
		assert.Equal(t, 2, size, "Expected the group size attribute")
		method, _ := out[0].Attributes.GetString(model.AttrDisambiguationMethod)
		assert.Equal(t, "Name", method, "Expected the method attribute")
	})

	t.Run("Similarity exactly at the threshold groups", func(t *testing.T) {
		// Distance 2 over length 10 gives exactly 0.80.
		a := newTestEntity("abcdefghij", model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity("abcdefghxy", model.EntityTypeOrganization, "tenant-1")

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.NotEmpty(t, out[0].DisambiguationID, "Expected grouping at exactly the threshold")
		assert.Equal(t, out[0].DisambiguationID, out[1].DisambiguationID, "Expected both mentions in one group")
	})

	t.Run("Similarity just below the threshold does not group", func(t *testing.T) {
		// Distance 21 over length 100 gives 0.79.
		a := newTestEntity(strings.Repeat("a", 100), model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity(strings.Repeat("a", 79)+strings.Repeat("b", 21), model.EntityTypeOrganization, "tenant-1")

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.Empty(t, out[0].DisambiguationID, "Expected no grouping just below the threshold")
		assert.Empty(t, out[1].DisambiguationID, "Expected no grouping just below the threshold")
	})

	t.Run("Identical names of different types stay apart", func(t *testing.T) {
		a := newTestEntity("Orion", model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity("Orion", model.EntityTypeProduct, "tenant-1")

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.Empty(t, out[0].DisambiguationID, "Expected no grouping across types")
		assert.Empty(t, out[1].DisambiguationID, "Expected no grouping across types")
	})

	t.Run("Identical names of different tenants stay apart", func(t *testing.T) {
		a := newTestEntity("Acme Inc.", model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity("Acme Inc.", model.EntityTypeOrganization, "tenant-2")

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.Empty(t, out[0].DisambiguationID, "Expected no grouping across tenants")
		assert.Empty(t, out[1].DisambiguationID, "Expected no grouping across tenants")
	})

	t.Run("Groups of size one stay unlabeled", func(t *testing.T) {
		a := newTestEntity("Acme Inc.", model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity("Globex Corporation", model.EntityTypeOrganization, "tenant-1")

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.Empty(t, out[0].DisambiguationID, "Expected a lone mention to stay unlabeled")
		assert.Empty(t, out[1].DisambiguationID, "Expected a lone mention to stay unlabeled")
	})

	t.Run("Surname boost groups abbreviated person names", func(t *testing.T) {
		disambiguator := NewNameDisambiguator(0.7, NewSequentialIDGenerator("name"))
		a := newTestEntity("J. Smith", model.EntityTypePerson, "tenant-1")
		b := newTestEntity("Jonathan Smith", model.EntityTypePerson, "tenant-1")

		out, err := disambiguator.Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.NotEmpty(t, out[0].DisambiguationID, "Expected the boosted pair to group")
		assert.Equal(t, out[0].DisambiguationID, out[1].DisambiguationID, "Expected both mentions in one group")
	})

	t.Run("Existing group IDs are kept and adopted", func(t *testing.T) {
		a := newTestEntity("Acme Incorporated", model.EntityTypeOrganization, "tenant-1")
		a.DisambiguationID = "existing"
		b := newTestEntity("Acme Incorporatet", model.EntityTypeOrganization, "tenant-1")

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.Equal(t, "existing", out[0].DisambiguationID, "Expected the existing ID to be kept")
		assert.Equal(t, "existing", out[1].DisambiguationID, "Expected the new member to adopt the existing ID")
	})

	t.Run("Absorbed members keep their earlier grouping attributes", func(t *testing.T) {
		a := newTestEntity("Acme Incorporated", model.EntityTypeOrganization, "tenant-1")
		a.DisambiguationID = "existing"
		a.Attributes[model.AttrIsPrimaryEntity] = model.BoolValue(true)
		a.Attributes[model.AttrEntityGroupSize] = model.IntValue(3)
		a.Attributes[model.AttrDisambiguationMethod] = model.StringValue("Name")
		b := newTestEntity("Acme Incorporatet", model.EntityTypeOrganization, "tenant-1")
		b.Confidence = 0.95

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")

		absorbed := out[0]
		primary, _ := absorbed.Attributes.GetBool(model.AttrIsPrimaryEntity)
		assert.True(t, primary, "Expected the absorbed member to keep its primary flag")
		size, _ := absorbed.Attributes.GetInt(model.AttrEntityGroupSize)
		assert.Equal(t, 3, size, "Expected the absorbed member to keep its earlier group size")

		joined := out[1]
		assert.Equal(t, "existing", joined.DisambiguationID, "Expected the new member to adopt the existing ID")
		primary, _ = joined.Attributes.GetBool(model.AttrIsPrimaryEntity)
		assert.False(t, primary, "Expected a member joining an existing group to never be primary")
	})

	t.Run("Input collection is not modified", func(t *testing.T) {
		a := newTestEntity("Acme Incorporated", model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity("Acme Incorporatet", model.EntityTypeOrganization, "tenant-1")
		input := []*model.Entity{a, b}

		_, err := newDisambiguator().Disambiguate(input, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		assert.Empty(t, a.DisambiguationID, "Expected the input entity to stay unchanged")
		assert.Empty(t, b.DisambiguationID, "Expected the input entity to stay unchanged")
		assert.Empty(t, a.Attributes, "Expected the input attributes to stay unchanged")
	})

	t.Run("Disambiguation is idempotent", func(t *testing.T) {
		a := newTestEntity("Acme Incorporated", model.EntityTypeOrganization, "tenant-1")
		b := newTestEntity("Acme Incorporatet", model.EntityTypeOrganization, "tenant-1")

		disambiguator := newDisambiguator()
		once, err := disambiguator.Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected the first pass to succeed")
		twice, err := disambiguator.Disambiguate(once, "tenant-1")
		require.NoError(t, err, "Expected the second pass to succeed")

		for i := range once {
			assert.Equal(t, once[i].DisambiguationID, twice[i].DisambiguationID, "Expected group assignments to be stable")
		}
	})

	t.Run("Exactly one primary per group", func(t *testing.T) {
		a := newTestEntity("Acme Incorporated", model.EntityTypeOrganization, "tenant-1")
		a.Confidence = 0.9
		b := newTestEntity("Acme Incorporatet", model.EntityTypeOrganization, "tenant-1")
		b.Confidence = 0.6

		out, err := newDisambiguator().Disambiguate([]*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")

		primaries := 0
		for _, entity := range out {
			if primary, _ := entity.Attributes.GetBool(model.AttrIsPrimaryEntity); primary {
				primaries++
				assert.Equal(t, 0.9, entity.Confidence, "Expected the highest-confidence member as primary")
			}
		}
		assert.Equal(t, 1, primaries, "Expected exactly one primary per group")
	})

	t.Run("Nil collection returns an error", func(t *testing.T) {
		_, err := newDisambiguator().Disambiguate(nil, "tenant-1")
		assert.Error(t, err, "Expected an error for a nil collection")
	})
}

func TestNameDisambiguatorFindRelated(t *testing.T) {
	t.Run("Returns candidates above the threshold", func(t *testing.T) {
		disambiguator := NewNameDisambiguator(0.8, NewSequentialIDGenerator("name"))
		target := newTestEntity("Acme Incorporated", model.EntityTypeOrganization, "tenant-1")
		similar := newTestEntity("Acme Incorporatet", model.EntityTypeOrganization, "tenant-1")
		unrelated := newTestEntity("Globex Corporation", model.EntityTypeOrganization, "tenant-1")

		related := disambiguator.FindRelated(target, []*model.Entity{similar, unrelated, target}, 0.8)
		require.Len(t, related, 1, "Expected only the similar candidate")
		assert.Equal(t, similar.ID, related[0].ID, "Expected the similar candidate to be returned")
	})
}
