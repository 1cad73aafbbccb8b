package cart

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stylora-be/internal/domain"
	"stylora-be/internal/logger"
)

// Store is the slice of the storage layer the cart service needs.
type Store interface {
	Cart(userID int) []domain.CartItem
	MutateCart(
		ctx context.Context,
		userID int,
		fn func(items []domain.CartItem) ([]domain.CartItem, error),
	) ([]domain.CartItem, error)
}

type AddParams struct {
	UserID       int
	ProductID    string
	ProductName  string
	ProductPrice decimal.Decimal
	ProductImage string
	Quantity     int
	Size         string
}

// Service defines the business logic for carts.
type Service interface {
	Get(ctx context.Context, userID int) []domain.CartItem
	Add(ctx context.Context, params AddParams) ([]domain.CartItem, error)
	SetQuantity(ctx context.Context, userID int, itemID string, quantity int) ([]domain.CartItem, error)
	Remove(ctx context.Context, userID int, itemID string) ([]domain.CartItem, error)
	Clear(ctx context.Context, userID int) ([]domain.CartItem, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

// Get returns the user's cart; a user without a cart gets an empty one.
func (s *service) Get(ctx context.Context, userID int) []domain.CartItem {
	return s.store.Cart(userID)
}

// Add merges the product into the cart. A line with the same
// (productId, size) has its quantity incremented; anything else is
// appended as a new line with a fresh id.
func (s *service) Add(ctx context.Context, params AddParams) ([]domain.CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
		zap.Int("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
		zap.String("size", params.Size),
	)

	if params.ProductID == "" || params.ProductName == "" || strings.TrimSpace(params.Size) == "" {
		return nil, ErrMissingFields
	}
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if params.ProductPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	updated, err := s.store.MutateCart(ctx, params.UserID,
		func(items []domain.CartItem) ([]domain.CartItem, error) {
			for i := range items {
				if items[i].ProductID == params.ProductID && items[i].Size == params.Size {
					items[i].Quantity += params.Quantity
					return items, nil
				}
			}

			return append(items, domain.CartItem{
				ID:           uuid.NewString(),
				ProductID:    params.ProductID,
				ProductName:  params.ProductName,
				ProductPrice: params.ProductPrice,
				ProductImage: params.ProductImage,
				Quantity:     params.Quantity,
				Size:         params.Size,
			}), nil
		})
	if err != nil {
		log.Error("failed to add to cart", zap.Error(err))
		return nil, err
	}

	log.Debug("item added to cart", zap.Int("lines", len(updated)))
	return updated, nil
}

// SetQuantity replaces a line's quantity. The line is addressed by its
// id; an unknown id is NotFound.
func (s *service) SetQuantity(ctx context.Context, userID int, itemID string, quantity int) ([]domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.store.MutateCart(ctx, userID,
		func(items []domain.CartItem) ([]domain.CartItem, error) {
			for i := range items {
				if items[i].ID == itemID {
					items[i].Quantity = quantity
					return items, nil
				}
			}
			return nil, ErrItemNotFound
		})
}

// Remove deletes a line by id. Removing an id that is not present is a
// no-op.
func (s *service) Remove(ctx context.Context, userID int, itemID string) ([]domain.CartItem, error) {
	return s.store.MutateCart(ctx, userID,
		func(items []domain.CartItem) ([]domain.CartItem, error) {
			out := items[:0]
			for _, item := range items {
				if item.ID != itemID {
					out = append(out, item)
				}
			}
			return out, nil
		})
}

// Clear resets the cart to empty. The order ledger calls this
// implicitly through its commit; this is the caller-facing variant.
func (s *service) Clear(ctx context.Context, userID int) ([]domain.CartItem, error) {
	return s.store.MutateCart(ctx, userID,
		func(items []domain.CartItem) ([]domain.CartItem, error) {
			return []domain.CartItem{}, nil
		})
}
