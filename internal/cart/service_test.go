package cart

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylora-be/internal/apperr"
	"stylora-be/internal/storage"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	gw := storage.NewFileGateway(filepath.Join(t.TempDir(), "storage.json"))
	store, err := storage.Open(context.Background(), gw, time.Second)
	require.NoError(t, err)
	return NewService(store)
}

func addParams(qty int) AddParams {
	return AddParams{
		UserID:       1,
		ProductID:    "P1",
		ProductName:  "Classic Tee",
		ProductPrice: decimal.RequireFromString("19.99"),
		ProductImage: "https://img.example/p1.jpg",
		Quantity:     qty,
		Size:         "M",
	}
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Same Product And Size Merges", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Add(ctx, addParams(2))
		require.NoError(t, err)
		cart, err := svc.Add(ctx, addParams(3))
		require.NoError(t, err)

		require.Len(t, cart, 1)
		assert.Equal(t, 5, cart[0].Quantity)
		assert.NotEmpty(t, cart[0].ID)
	})

	t.Run("Different Size Appends", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Add(ctx, addParams(1))
		require.NoError(t, err)

		p := addParams(1)
		p.Size = "L"
		cart, err := svc.Add(ctx, p)
		require.NoError(t, err)

		require.Len(t, cart, 2)
		assert.NotEqual(t, cart[0].ID, cart[1].ID)
	})

	t.Run("Merge Keeps Original Line ID", func(t *testing.T) {
		svc := newTestService(t)

		first, err := svc.Add(ctx, addParams(1))
		require.NoError(t, err)
		second, err := svc.Add(ctx, addParams(1))
		require.NoError(t, err)

		assert.Equal(t, first[0].ID, second[0].ID)
	})

	t.Run("Zero Quantity Rejected", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Add(ctx, addParams(0))
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Empty(t, svc.Get(ctx, 1))
	})

	t.Run("Negative Price Rejected", func(t *testing.T) {
		svc := newTestService(t)

		p := addParams(1)
		p.ProductPrice = decimal.RequireFromString("-1")
		_, err := svc.Add(ctx, p)
		require.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("Blank Size Rejected", func(t *testing.T) {
		svc := newTestService(t)

		p := addParams(1)
		p.Size = "   "
		_, err := svc.Add(ctx, p)
		require.ErrorIs(t, err, ErrMissingFields)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})
}

func TestService_SetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := newTestService(t)
		cart, err := svc.Add(ctx, addParams(2))
		require.NoError(t, err)

		updated, err := svc.SetQuantity(ctx, 1, cart[0].ID, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, updated[0].Quantity)
	})

	t.Run("Zero Is Invalid And Cart Unchanged", func(t *testing.T) {
		svc := newTestService(t)
		cart, err := svc.Add(ctx, addParams(2))
		require.NoError(t, err)

		_, err = svc.SetQuantity(ctx, 1, cart[0].ID, 0)
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 2, svc.Get(ctx, 1)[0].Quantity)
	})

	t.Run("Unknown Item Is NotFound", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.Add(ctx, addParams(2))
		require.NoError(t, err)

		_, err = svc.SetQuantity(ctx, 1, "no-such-item", 3)
		require.ErrorIs(t, err, ErrItemNotFound)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes By ID", func(t *testing.T) {
		svc := newTestService(t)
		cart, err := svc.Add(ctx, addParams(2))
		require.NoError(t, err)

		updated, err := svc.Remove(ctx, 1, cart[0].ID)
		require.NoError(t, err)
		assert.Empty(t, updated)
	})

	t.Run("Unknown ID Is A NoOp", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.Add(ctx, addParams(2))
		require.NoError(t, err)

		updated, err := svc.Remove(ctx, 1, "no-such-item")
		require.NoError(t, err)
		assert.Len(t, updated, 1)
	})
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, addParams(2))
	require.NoError(t, err)

	cleared, err := svc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cleared)
	assert.Empty(t, svc.Get(ctx, 1))
}

func TestService_GetNeverFails(t *testing.T) {
	svc := newTestService(t)
	cart := svc.Get(context.Background(), 999)
	assert.NotNil(t, cart)
	assert.Empty(t, cart)
}
