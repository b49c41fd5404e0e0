package disambiguate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siherrmann/tagger/model"
)

// failingDisambiguator always fails.
type failingDisambiguator struct{}

func (f *failingDisambiguator) Disambiguate([]*model.Entity, string) ([]*model.Entity, error) {
	return nil, fmt.Errorf("strategy unavailable")
}

func (f *failingDisambiguator) FindRelated(*model.Entity, []*model.Entity, float64) []*model.Entity {
	return nil
}

func (f *failingDisambiguator) SupportedTypes() []model.EntityType {
	return nil
}

func (f *failingDisambiguator) Name() string {
	return "failing"
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService(t *testing.T) {
	newDefault := func() *Service {
		return NewDefaultService(testLogger(), model.DefaultDisambiguationConfig(), NewSequentialIDGenerator("group"))
	}

	t.Run("Name stage wins before the context stage", func(t *testing.T) {
		text := "Acme Incorporated and Acme Incorporatet reported earnings."
		a := newPositionedEntity("Acme Incorporated", model.EntityTypeOrganization, 0)
		a.OriginalContext = text
		b := newPositionedEntity("Acme Incorporatet", model.EntityTypeOrganization, 22)
		b.OriginalContext = text

		out, err := newDefault().DisambiguateEntities(context.Background(), text, []*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		require.Len(t, out, 2, "Expected no derived entities")

		assert.Equal(t, out[0].DisambiguationID, out[1].DisambiguationID, "Expected both mentions in one group")
		method, _ := out[0].Attributes.GetString(model.AttrDisambiguationMethod)
		assert.Equal(t, "Name", method, "Expected the name stage to claim the group first")
	})

	t.Run("Context stage groups what the name stage missed", func(t *testing.T) {
		a := newPositionedEntity("Acme Inc.", model.EntityTypeOrganization, 0)
		a.OriginalContext = "announced record quarterly earnings today"
		b := newPositionedEntity("Acme Corp.", model.EntityTypeOrganization, 50)
		b.OriginalContext = "announced record quarterly earnings today"

		out, err := newDefault().DisambiguateEntities(context.Background(), "", []*model.Entity{a, b}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")

		assert.Equal(t, out[0].DisambiguationID, out[1].DisambiguationID, "Expected both mentions in one group")
		method, _ := out[0].Attributes.GetString(model.AttrDisambiguationMethod)
		assert.Equal(t, "Context", method, "Expected the context stage to claim the group")
	})

	t.Run("Coreference resolver runs last", func(t *testing.T) {
		text := "John Smith shipped the release. He celebrated."
		john := newPositionedEntity("John Smith", model.EntityTypePerson, 0)

		out, err := newDefault().DisambiguateEntities(context.Background(), text, []*model.Entity{john}, "tenant-1")
		require.NoError(t, err, "Expected disambiguation to succeed")
		require.Len(t, out, 2, "Expected one derived entity for the pronoun")
		assert.Equal(t, out[0].DisambiguationID, out[1].DisambiguationID, "Expected the mention to share the antecedent's group")
	})

	t.Run("Failing disambiguator propagates", func(t *testing.T) {
		service := NewService(testLogger(),
			NewCoreferenceResolver(75, NewSequentialIDGenerator("group")),
			&failingDisambiguator{})

		_, err := service.DisambiguateEntities(context.Background(), "some text", []*model.Entity{}, "tenant-1")
		assert.Error(t, err, "Expected the stage failure to propagate")
	})

	t.Run("Cancelled context stops the service", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newDefault().DisambiguateEntities(ctx, "some text", []*model.Entity{}, "tenant-1")
		assert.Error(t, err, "Expected an error for a cancelled context")
	})

	t.Run("Nil collection returns an error", func(t *testing.T) {
		_, err := newDefault().DisambiguateEntities(context.Background(), "some text", nil, "tenant-1")
		assert.Error(t, err, "Expected an error for a nil collection")
	})
}
