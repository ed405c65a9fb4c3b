package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

func TestNewStoreRequiresPath(t *testing.T) {
	_, err := NewStore("")
	assert.Error(t, err)
}

func TestLoadMissingFileYieldsEmptySnapshot(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "family.json"))
	require.NoError(t, err)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.People)
	assert.Empty(t, snap.Edges)
	assert.Empty(t, snap.Spouses)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "family.json"))
	require.NoError(t, err)
	ctx := context.Background()

	snap := &entities.Snapshot{
		People: []entities.Person{
			{ID: "a", Name: "Alice", Gender: entities.GenderFemale, BloodType: entities.BloodAB, BirthDate: "1990-01-02"},
			{ID: "b", Name: "Bob", Gender: entities.GenderMale, BloodType: entities.BloodUnknown},
		},
		Edges:   []entities.ParentEdge{{ParentID: "a", ChildID: "b"}},
		Spouses: []entities.SpouseLink{},
	}

	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestSaveUsesLegacyFieldNames(t *testing.T) {
	// The document shape matches what the mobile app persisted, so an
	// exported blob from it imports cleanly.
	path := filepath.Join(t.TempDir(), "family.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	snap := &entities.Snapshot{
		People:  []entities.Person{{ID: "a", Name: "Alice", PhotoRef: "file://x.jpg"}},
		Edges:   []entities.ParentEdge{{ParentID: "a", ChildID: "b"}},
		Spouses: []entities.SpouseLink{{AID: "a", BID: "b"}},
	}
	require.NoError(t, store.Save(context.Background(), snap))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "people")
	assert.Contains(t, doc, "edges")
	assert.Contains(t, doc, "spouses")

	people := doc["people"].([]any)
	person := people[0].(map[string]any)
	assert.Contains(t, person, "photoUri")
	assert.Contains(t, person, "birthDate")

	edges := doc["edges"].([]any)
	edge := edges[0].(map[string]any)
	assert.Contains(t, edge, "parentId")
	assert.Contains(t, edge, "childId")
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "family.json"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &entities.Snapshot{
		People: []entities.Person{{ID: "a", Name: "Alice"}},
	}))
	require.NoError(t, store.Save(ctx, &entities.Snapshot{
		People: []entities.Person{{ID: "b", Name: "Bob"}},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.People, 1)
	assert.Equal(t, "Bob", loaded.People[0].Name)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.Error(t, err)
}
