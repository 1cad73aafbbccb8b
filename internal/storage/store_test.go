package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylora-be/internal/apperr"
	"stylora-be/internal/domain"
)

// memGateway keeps saved snapshots in memory and can be told to fail.
type memGateway struct {
	mu      sync.Mutex
	saved   *domain.Snapshot
	failing bool
}

func (g *memGateway) Load(ctx context.Context) (*domain.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saved == nil {
		return domain.NewSnapshot(), nil
	}
	return g.saved.Clone(), nil
}

func (g *memGateway) Save(ctx context.Context, snap *domain.Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failing {
		return errors.New("disk on fire")
	}
	g.saved = snap.Clone()
	return nil
}

func openTestStore(t *testing.T, gw Gateway) *Store {
	t.Helper()
	s, err := Open(context.Background(), gw, time.Second)
	require.NoError(t, err)
	return s
}

func TestStore_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Assigns Sequential IDs", func(t *testing.T) {
		s := openTestStore(t, &memGateway{})

		u1, err := s.CreateUser(ctx, "A", "a@x.com", "hash")
		require.NoError(t, err)
		u2, err := s.CreateUser(ctx, "B", "b@x.com", "hash")
		require.NoError(t, err)

		assert.Equal(t, 1, u1.ID)
		assert.Equal(t, 2, u2.ID)
	})

	t.Run("Duplicate Email Conflicts", func(t *testing.T) {
		s := openTestStore(t, &memGateway{})

		_, err := s.CreateUser(ctx, "A", "a@x.com", "hash")
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, "A2", "a@x.com", "hash2")
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("Failed Save Rolls Back", func(t *testing.T) {
		gw := &memGateway{failing: true}
		s := openTestStore(t, gw)

		_, err := s.CreateUser(ctx, "A", "a@x.com", "hash")
		require.Error(t, err)
		assert.Equal(t, apperr.KindStorageUnavailable, apperr.KindOf(err))

		_, found := s.UserByEmail("a@x.com")
		assert.False(t, found)
	})
}

func TestStore_MutateCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit And Reload", func(t *testing.T) {
		gw := &memGateway{}
		s := openTestStore(t, gw)

		_, err := s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
			return append(items, domain.CartItem{ID: "i1", ProductID: "P1", Size: "M", Quantity: 2}), nil
		})
		require.NoError(t, err)

		// a second store over the same gateway sees the committed cart
		s2 := openTestStore(t, gw)
		cart := s2.Cart(1)
		require.Len(t, cart, 1)
		assert.Equal(t, 2, cart[0].Quantity)
	})

	t.Run("Fn Error Leaves State Untouched", func(t *testing.T) {
		s := openTestStore(t, &memGateway{})

		_, err := s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
			return nil, apperr.New(apperr.KindInvalidInput, "nope")
		})
		require.Error(t, err)
		assert.Empty(t, s.Cart(1))
	})

	t.Run("Failed Save Rolls Back", func(t *testing.T) {
		gw := &memGateway{}
		s := openTestStore(t, gw)

		_, err := s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
			return append(items, domain.CartItem{ID: "i1", Quantity: 1}), nil
		})
		require.NoError(t, err)

		gw.failing = true
		_, err = s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
			return append(items, domain.CartItem{ID: "i2", Quantity: 1}), nil
		})
		require.Error(t, err)

		cart := s.Cart(1)
		require.Len(t, cart, 1)
		assert.Equal(t, "i1", cart[0].ID)
	})

	t.Run("Concurrent Increments Never Lost", func(t *testing.T) {
		s := openTestStore(t, &memGateway{})

		const n = 50
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
					if len(items) == 0 {
						return []domain.CartItem{{ID: "i1", ProductID: "P1", Size: "M", Quantity: 1}}, nil
					}
					items[0].Quantity++
					return items, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		cart := s.Cart(1)
		require.Len(t, cart, 1)
		assert.Equal(t, n, cart[0].Quantity)
	})
}

func TestStore_CommitOrder(t *testing.T) {
	ctx := context.Background()

	seedCart := func(t *testing.T, s *Store) {
		t.Helper()
		_, err := s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
			return []domain.CartItem{{
				ID: "i1", ProductID: "P1", Size: "M", Quantity: 2,
				ProductPrice: decimal.NewFromInt(1000),
			}}, nil
		})
		require.NoError(t, err)
	}

	t.Run("Prepends And Clears Cart", func(t *testing.T) {
		gw := &memGateway{}
		s := openTestStore(t, gw)
		seedCart(t, s)

		saved := &domain.SavedCheckout{PaymentMethod: domain.PaymentCard}
		order, err := s.CommitOrder(ctx, 1, func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error) {
			require.Len(t, cart, 1)
			return domain.Order{ID: "ORD-1", UserID: 1, Items: cart, Status: domain.StatusPending}, saved, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ORD-1", order.ID)

		assert.Empty(t, s.Cart(1))
		orders := s.Orders(1)
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-1", orders[0].ID)

		got, ok := s.SavedCheckout(1)
		require.True(t, ok)
		assert.Equal(t, domain.PaymentCard, got.PaymentMethod)

		// newest first
		_, err = s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
			return []domain.CartItem{{ID: "i2", ProductID: "P2", Size: "L", Quantity: 1}}, nil
		})
		require.NoError(t, err)
		_, err = s.CommitOrder(ctx, 1, func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error) {
			return domain.Order{ID: "ORD-2", UserID: 1, Items: cart}, nil, nil
		})
		require.NoError(t, err)

		orders = s.Orders(1)
		require.Len(t, orders, 2)
		assert.Equal(t, "ORD-2", orders[0].ID)
		assert.Equal(t, "ORD-1", orders[1].ID)
	})

	t.Run("Build Error Changes Nothing", func(t *testing.T) {
		s := openTestStore(t, &memGateway{})
		seedCart(t, s)

		_, err := s.CommitOrder(ctx, 1, func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error) {
			return domain.Order{}, nil, apperr.New(apperr.KindInvalidInput, "cannot order an empty cart")
		})
		require.Error(t, err)

		assert.Len(t, s.Cart(1), 1)
		assert.Empty(t, s.Orders(1))
	})

	t.Run("Failed Save Keeps Cart", func(t *testing.T) {
		gw := &memGateway{}
		s := openTestStore(t, gw)
		seedCart(t, s)

		gw.failing = true
		_, err := s.CommitOrder(ctx, 1, func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error) {
			return domain.Order{ID: "ORD-1", UserID: 1, Items: cart},
				&domain.SavedCheckout{PaymentMethod: domain.PaymentCashOnDelivery}, nil
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindStorageUnavailable, apperr.KindOf(err))

		// order not appended, cart not cleared, prefs not written
		assert.Empty(t, s.Orders(1))
		assert.Len(t, s.Cart(1), 1)
		_, ok := s.SavedCheckout(1)
		assert.False(t, ok)
	})
}

func TestStore_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, &memGateway{})

	_, err := s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
		return []domain.CartItem{{ID: "i1", Quantity: 1}}, nil
	})
	require.NoError(t, err)
	_, err = s.CommitOrder(ctx, 1, func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error) {
		return domain.Order{ID: "ORD-1", UserID: 1, Items: cart, Status: domain.StatusPending}, nil, nil
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateOrderStatus(ctx, 1, "ORD-1", domain.StatusShipped))

	got, ok := s.OrderByID(1, "ORD-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusShipped, got.Status)

	err = s.UpdateOrderStatus(ctx, 1, "ORD-missing", domain.StatusShipped)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStore_FileBacked(t *testing.T) {
	// end to end against the real file gateway
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	s := openTestStore(t, NewFileGateway(path))
	_, err := s.CreateUser(ctx, "A", "a@x.com", "hash")
	require.NoError(t, err)
	_, err = s.MutateCart(ctx, 1, func(items []domain.CartItem) ([]domain.CartItem, error) {
		return []domain.CartItem{{ID: "i1", ProductID: "P1", Size: "M", Quantity: 3}}, nil
	})
	require.NoError(t, err)

	// restart
	s2 := openTestStore(t, NewFileGateway(path))
	u, ok := s2.UserByEmail("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "A", u.Name)
	cart := s2.Cart(1)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}
