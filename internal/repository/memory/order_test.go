package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gostorefront/fulfillment/internal/domain/cart"
	"github.com/gostorefront/fulfillment/internal/domain/order"
)

func newOrder(id, userID string) *order.Order {
	return &order.Order{
		ID:          id,
		UserID:      userID,
		Status:      order.StatusPending,
		TotalAmount: decimal.RequireFromString("160.00"),
		Items: []cart.Item{
			{ID: "c1", UserID: userID, ProductID: "p1", ProductName: "Widget", Quantity: 1},
		},
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("o1", "u1")))

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	byUser, err := repo.FindOpenByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "o1", byUser.ID)
}

func TestOrderRepository_DuplicateUser(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("o1", "u1")))
	err := repo.Create(ctx, newOrder("o2", "u1"))
	require.ErrorIs(t, err, order.ErrAlreadyExists)

	_, err = repo.GetByID(ctx, "o2")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderRepository_Delete(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("o1", "u1")))
	require.NoError(t, repo.Delete(ctx, "o1"))

	_, err := repo.GetByID(ctx, "o1")
	require.ErrorIs(t, err, order.ErrNotFound)

	// The user slot is freed, so a new order can be created.
	require.NoError(t, repo.Create(ctx, newOrder("o2", "u1")))
}

func TestOrderRepository_DeleteMissing(t *testing.T) {
	repo := NewOrderRepository()

	err := repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderRepository_ReturnsCopies(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("o1", "u1")))

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	got.Items[0].ProductName = "changed"

	again, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", again.Items[0].ProductName)
}

func TestOrderRepository_ConcurrentCreateSingleWinner(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	const attempts = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		fails int
	)
	for i := range attempts {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := repo.Create(ctx, newOrder(string(rune('a'+n)), "u1"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else {
				fails++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, fails)
}

func TestCartRepository_SnapshotAndClear(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, cart.Item{ID: "c1", UserID: "u1", ProductName: "Widget", Quantity: 1}))
	require.NoError(t, repo.AddItem(ctx, cart.Item{ID: "c2", UserID: "u1", ProductName: "Gadget", Quantity: 2}))

	items, err := repo.ItemsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Mutating the returned slice must not affect the stored cart.
	items[0].ProductName = "changed"
	again, err := repo.ItemsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", again[0].ProductName)

	require.NoError(t, repo.ClearByUser(ctx, "u1"))
	empty, err := repo.ItemsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	// Clearing an already-empty cart is not an error.
	require.NoError(t, repo.ClearByUser(ctx, "u1"))
}
