package memory

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asquebay/bought-together-service/internal/model"
)

func newOrder(id string, productIDs ...string) model.Order {
	items := make([]model.Item, 0, len(productIDs))
	for _, pid := range productIDs {
		items = append(items, model.Item{
			Product:  model.Product{ID: pid, Name: "product " + pid},
			Quantity: 1,
		})
	}
	return model.Order{ID: id, Items: items}
}

func TestSubmit_ThenList(t *testing.T) {
	store := NewOrderStore()
	order := newOrder("aaa", "sample")

	require.NoError(t, store.Submit(order))

	orders := store.List()
	require.Len(t, orders, 1)
	assert.Equal(t, order, orders[0])
}

func TestSubmit_EmptyItems(t *testing.T) {
	store := NewOrderStore()

	err := store.Submit(model.Order{ID: "o-1"})
	assert.ErrorIs(t, err, ErrEmptyItems)

	err = store.Submit(model.Order{ID: "o-2", Items: []model.Item{}})
	assert.ErrorIs(t, err, ErrEmptyItems)

	assert.Empty(t, store.List())
}

func TestSubmit_DuplicateID(t *testing.T) {
	store := NewOrderStore()
	first := newOrder("o-1", "aaa")

	require.NoError(t, store.Submit(first))

	err := store.Submit(newOrder("o-1", "bbb", "ccc"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	orders := store.List()
	require.Len(t, orders, 1)
	assert.Equal(t, first, orders[0], "existing order must stay unchanged")
}

func TestList_InsertionOrder(t *testing.T) {
	store := NewOrderStore()
	ids := []string{"o-3", "o-1", "o-2", "o-10"}
	for _, id := range ids {
		require.NoError(t, store.Submit(newOrder(id, "aaa")))
	}

	got := make([]string, 0, len(ids))
	for _, o := range store.List() {
		got = append(got, o.ID)
	}
	assert.Equal(t, ids, got)
}

func TestList_ReturnsIsolatedSnapshot(t *testing.T) {
	store := NewOrderStore()
	require.NoError(t, store.Submit(newOrder("o-1", "aaa")))

	snapshot := store.List()
	snapshot[0].Items[0].Product.ID = "mutated"
	snapshot[0].Items = append(snapshot[0].Items, model.Item{Product: model.Product{ID: "zzz"}, Quantity: 1})

	require.NoError(t, store.Submit(newOrder("o-2", "bbb")))
	assert.Len(t, snapshot, 1, "snapshot must not see later writes")

	fresh := store.List()
	require.Len(t, fresh, 2)
	assert.Equal(t, "aaa", fresh[0].Items[0].Product.ID)
	assert.Len(t, fresh[0].Items, 1)
}

func TestSubmit_CallerMutationDoesNotLeak(t *testing.T) {
	store := NewOrderStore()
	order := newOrder("o-1", "aaa")

	require.NoError(t, store.Submit(order))
	order.Items[0].Product.ID = "mutated"

	assert.Equal(t, "aaa", store.List()[0].Items[0].Product.ID)
}

func TestReset(t *testing.T) {
	store := NewOrderStore()
	require.NoError(t, store.Submit(newOrder("o-1", "aaa")))
	require.NoError(t, store.Submit(newOrder("o-2", "bbb")))

	store.Reset()
	assert.Empty(t, store.List())
	assert.Equal(t, 0, store.Len())

	// повторный сброс ничего не ломает
	store.Reset()
	assert.Empty(t, store.List())

	// id снова свободен после сброса
	assert.NoError(t, store.Submit(newOrder("o-1", "ccc")))
	assert.Equal(t, 1, store.Len())
}

func TestSubmit_ConcurrentSameID(t *testing.T) {
	store := NewOrderStore()

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		dupes     atomic.Int32
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Submit(newOrder("same-id", fmt.Sprintf("p-%d", i)))
			switch {
			case err == nil:
				successes.Add(1)
			case assert.ErrorIs(t, err, ErrDuplicateID):
				dupes.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(99), dupes.Load())
	assert.Equal(t, 1, store.Len())
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	store := NewOrderStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Submit(newOrder(fmt.Sprintf("o-%d", i), "aaa", "bbb")))
		}(i)
		go func() {
			defer wg.Done()
			for _, o := range store.List() {
				assert.NotEmpty(t, o.Items)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}
