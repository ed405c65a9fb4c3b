package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/mocks"
	"github.com/ersonp/kin-core/internal/domain/services"
)

func newHandlers(t *testing.T) (*PersonHandler, *RelationshipHandler, *TreeHandler, *mocks.Storage) {
	t.Helper()
	storage := mocks.NewStorage()
	family := services.NewFamilyService(storage, entities.DefaultPolicy())
	return NewPersonHandler(family),
		NewRelationshipHandler(family),
		NewTreeHandler(family, entities.DefaultMetrics()),
		storage
}

func TestPersonHandlerCRUD(t *testing.T) {
	people, _, _, _ := newHandlers(t)

	p, ok := people.HandleAdd(entities.PersonDraft{Name: "Alice"})
	require.True(t, ok)
	require.NotNil(t, p)

	_, ok = people.HandleAdd(entities.PersonDraft{Name: "  "})
	assert.False(t, ok)

	assert.True(t, people.HandleUpdate(p.ID, entities.PersonDraft{Name: "Alicia"}))
	got := people.HandleGet(p.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Alicia", got.Name)

	assert.Len(t, people.HandleList(), 1)
	assert.True(t, people.HandleRemove(p.ID))
	assert.Empty(t, people.HandleList())
}

func TestRelationshipHandler(t *testing.T) {
	people, rels, _, _ := newHandlers(t)

	a, _ := people.HandleAdd(entities.PersonDraft{Name: "Alice"})
	b, _ := people.HandleAdd(entities.PersonDraft{Name: "Bob"})
	c, _ := people.HandleAdd(entities.PersonDraft{Name: "Carol"})

	assert.True(t, rels.HandleAddSpouse(a.ID, b.ID))
	assert.False(t, rels.HandleAddSpouse(a.ID, c.ID), "monogamy")
	assert.Len(t, rels.HandleListSpouses(), 1)

	assert.True(t, rels.HandleAddEdge(a.ID, c.ID))
	assert.False(t, rels.HandleAddEdge(c.ID, a.ID), "cycle")
	assert.Len(t, rels.HandleListEdges(), 1)

	assert.True(t, rels.HandleRemoveEdge(a.ID, c.ID))
	assert.True(t, rels.HandleRemoveSpouse(b.ID, a.ID))
}

func TestTreeHandlerLayout(t *testing.T) {
	people, rels, tree, _ := newHandlers(t)

	a, _ := people.HandleAdd(entities.PersonDraft{Name: "Alice"})
	b, _ := people.HandleAdd(entities.PersonDraft{Name: "Bob"})
	c, _ := people.HandleAdd(entities.PersonDraft{Name: "Carol"})
	require.True(t, rels.HandleAddSpouse(a.ID, b.ID))
	require.True(t, rels.HandleAddEdge(a.ID, c.ID))

	result := tree.HandleLayout()

	require.Len(t, result.Units, 2)
	assert.Len(t, result.Links, 1)
	require.Len(t, result.Layout.Boxes, 2)
	assert.Positive(t, result.Layout.Width)

	// The connector anchors on Alice's side of the couple.
	parentBox := result.Layout.Box(result.Links[0].FromUnitID)
	require.NotNil(t, parentBox)
	assert.Equal(t, a.ID, result.Links[0].FromPersonID)
}

func TestHandlersShareOneStore(t *testing.T) {
	people, rels, tree, _ := newHandlers(t)

	a, _ := people.HandleAdd(entities.PersonDraft{Name: "Alice"})
	b, _ := people.HandleAdd(entities.PersonDraft{Name: "Bob"})
	require.True(t, rels.HandleAddEdge(a.ID, b.ID))

	require.True(t, people.HandleRemove(b.ID))
	assert.Empty(t, rels.HandleListEdges(), "cascade visible through every handler")
	assert.Len(t, tree.HandleLayout().Layout.Boxes, 1)
}
