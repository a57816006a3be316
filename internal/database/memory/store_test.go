package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

func TestStoreGetPut(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	t.Run("get on a missing record returns not found", func(t *testing.T) {
		_, err := store.Get(ctx, "demo", domain.FoodTypeMaterial, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "demo", domain.FoodTypeMaterial, 1, []byte(`{"id":1,"name":"flour"}`)))

		record, err := store.Get(ctx, "demo", domain.FoodTypeMaterial, 1)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"name":"flour"}`, string(record))
	})

	t.Run("partitions are isolated by shop and food type", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "other", domain.FoodTypeMaterial, 1, []byte(`{"id":1,"name":"salt"}`)))

		_, err := store.Get(ctx, "demo", domain.FoodTypeIngredient, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		record, err := store.Get(ctx, "demo", domain.FoodTypeMaterial, 1)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"name":"flour"}`, string(record))
	})
}

func TestStoreUpdateField(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Put(ctx, "demo", domain.FoodTypeMaterial, 1,
		[]byte(`{"id":1,"name":"flour","related_ingredient_list":[]}`)))

	t.Run("rewrites only the named field", func(t *testing.T) {
		err := store.UpdateField(ctx, "demo", domain.FoodTypeMaterial, 1,
			"related_ingredient_list", []byte(`[{"id":7,"is_active":true}]`))
		require.NoError(t, err)

		record, err := store.Get(ctx, "demo", domain.FoodTypeMaterial, 1)
		require.NoError(t, err)

		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(record, &doc))
		assert.JSONEq(t, `[{"id":7,"is_active":true}]`, string(doc["related_ingredient_list"]))
		assert.JSONEq(t, `"flour"`, string(doc["name"]))
	})

	t.Run("missing record returns not found", func(t *testing.T) {
		err := store.UpdateField(ctx, "demo", domain.FoodTypeMaterial, 99, "name", []byte(`"x"`))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStoreQueryByPartition(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Put(ctx, "demo", domain.FoodTypeMaterial, 2, []byte(`{"id":2}`)))
	require.NoError(t, store.Put(ctx, "demo", domain.FoodTypeMaterial, 1, []byte(`{"id":1}`)))
	require.NoError(t, store.Put(ctx, "demo", domain.FoodTypeIngredient, 3, []byte(`{"id":3}`)))

	records, err := store.QueryByPartition(ctx, "demo", domain.FoodTypeMaterial)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"id":1}`, string(records[0]), "ordered by id")
	assert.JSONEq(t, `{"id":2}`, string(records[1]))

	empty, err := store.QueryByPartition(ctx, "demo", domain.FoodTypeProduct)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStoreSequences(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	t.Run("counter starts at one", func(t *testing.T) {
		next, err := store.NextSequence(ctx, "demo", domain.FoodTypeMaterial)
		require.NoError(t, err)
		assert.Equal(t, 1, next)
	})

	t.Run("next is stable until advanced", func(t *testing.T) {
		next, err := store.NextSequence(ctx, "demo", domain.FoodTypeMaterial)
		require.NoError(t, err)
		assert.Equal(t, 1, next)

		require.NoError(t, store.AdvanceSequence(ctx, "demo", domain.FoodTypeMaterial))

		next, err = store.NextSequence(ctx, "demo", domain.FoodTypeMaterial)
		require.NoError(t, err)
		assert.Equal(t, 2, next)
	})

	t.Run("counters are per partition", func(t *testing.T) {
		next, err := store.NextSequence(ctx, "demo", domain.FoodTypeIngredient)
		require.NoError(t, err)
		assert.Equal(t, 1, next)
	})
}
