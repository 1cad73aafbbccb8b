package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylora-be/internal/domain"
	"stylora-be/internal/logger"
	"stylora-be/internal/pricing"
)

// Store is the slice of the storage layer the order ledger needs.
type Store interface {
	UserByID(id int) (domain.User, bool)
	Orders(userID int) []domain.Order
	OrderByID(userID int, orderID string) (domain.Order, bool)
	SavedCheckout(userID int) (domain.SavedCheckout, bool)
	CommitOrder(
		ctx context.Context,
		userID int,
		build func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error),
	) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, userID int, orderID string, status domain.OrderStatus) error
}

type PlaceOrderInput struct {
	ShippingAddress       domain.Address
	BillingAddress        domain.Address
	BillingSameAsShipping bool
	PaymentMethod         domain.PaymentMethod
	CardDetails           domain.CardDetails

	// Checkout pre-fill preferences, mirroring the client's toggles.
	SaveAddress bool
	SaveCard    bool
}

// Service is the order ledger: it converts a priced cart snapshot into
// an immutable order and owns the per-user history.
type Service interface {
	PlaceOrder(ctx context.Context, userID int, input PlaceOrderInput) (domain.Order, error)
	ListOrders(ctx context.Context, userID int) []domain.Order
	GetOrder(ctx context.Context, userID int, orderID string) (domain.Order, error)
	UpdateStatus(ctx context.Context, userID int, orderID string, status domain.OrderStatus) error
	CheckoutDefaults(ctx context.Context, userID int) domain.SavedCheckout
}

type service struct {
	store Store
	calc  pricing.Calculator
}

func NewService(store Store, calc pricing.Calculator) Service {
	return &service{store: store, calc: calc}
}

// PlaceOrder validates the checkout, snapshots the cart and its pricing
// into a new order, prepends it to the history and clears the cart.
// Order append and cart clear are one transaction: if persistence fails
// the cart survives untouched.
func (s *service) PlaceOrder(ctx context.Context, userID int, input PlaceOrderInput) (domain.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int("user_id", userID),
	)

	u, found := s.store.UserByID(userID)
	if !found {
		return domain.Order{}, ErrUnknownUser
	}

	if err := validateAddress(input.ShippingAddress); err != nil {
		return domain.Order{}, err
	}
	if !input.PaymentMethod.Valid() {
		return domain.Order{}, ErrInvalidPayment
	}
	if input.PaymentMethod == domain.PaymentCard {
		c := input.CardDetails
		if c.Number == "" || c.Expiry == "" || c.CVV == "" {
			return domain.Order{}, ErrMissingCardDetails
		}
	}

	billing := input.BillingAddress
	if input.BillingSameAsShipping {
		billing = input.ShippingAddress
	}

	order, err := s.store.CommitOrder(ctx, userID,
		func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error) {
			if len(cart) == 0 {
				return domain.Order{}, nil, ErrEmptyCart
			}

			breakdown := s.calc.Compute(cart)
			o := domain.Order{
				ID:              NewOrderID(),
				UserID:          u.ID,
				UserEmail:       u.Email,
				UserName:        u.Name,
				ShippingAddress: input.ShippingAddress,
				BillingAddress:  billing,
				PaymentMethod:   input.PaymentMethod,
				Items:           cart,
				Subtotal:        breakdown.Subtotal,
				Shipping:        breakdown.Shipping,
				Tax:             breakdown.Tax,
				Total:           breakdown.Total,
				Status:          domain.StatusPending,
				CreatedAt:       time.Now().UTC(),
			}

			return o, s.buildSavedCheckout(userID, input, billing), nil
		})
	if err != nil {
		log.Warn("order placement failed", zap.Error(err))
		return domain.Order{}, err
	}

	log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Total.String()),
	)
	return order, nil
}

// buildSavedCheckout merges this checkout's selections into the user's
// saved preferences. The payment method is always remembered; addresses
// and card details only on request.
func (s *service) buildSavedCheckout(userID int, input PlaceOrderInput, billing domain.Address) *domain.SavedCheckout {
	saved, _ := s.store.SavedCheckout(userID)
	saved.PaymentMethod = input.PaymentMethod

	if input.SaveAddress {
		saved.ShippingAddress = input.ShippingAddress
		saved.BillingAddress = billing
	}
	if input.SaveCard && input.PaymentMethod == domain.PaymentCard {
		saved.CardDetails = input.CardDetails
	}
	return &saved
}

// ListOrders returns the history, newest first.
func (s *service) ListOrders(ctx context.Context, userID int) []domain.Order {
	return s.store.Orders(userID)
}

// GetOrder is scoped to the owning user; another user's order id is
// NotFound here, never a cross-user read.
func (s *service) GetOrder(ctx context.Context, userID int, orderID string) (domain.Order, error) {
	o, found := s.store.OrderByID(userID, orderID)
	if !found {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// UpdateStatus transitions an order's status through the allowed set.
func (s *service) UpdateStatus(ctx context.Context, userID int, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.store.UpdateOrderStatus(ctx, userID, orderID, status)
}

// CheckoutDefaults pre-fills the next checkout from the saved
// preferences; a user without any gets the card default.
func (s *service) CheckoutDefaults(ctx context.Context, userID int) domain.SavedCheckout {
	saved, ok := s.store.SavedCheckout(userID)
	if !ok {
		return domain.SavedCheckout{PaymentMethod: domain.PaymentCard}
	}
	return saved
}

func validateAddress(a domain.Address) error {
	required := []string{a.FirstName, a.LastName, a.StreetAddress, a.State, a.Zip}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return ErrMissingAddress
		}
	}
	return nil
}

// NewOrderID builds a legible, prefixed id: a millisecond timestamp for
// rough ordering plus 128 random bits so concurrent placements cannot
// collide.
func NewOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
