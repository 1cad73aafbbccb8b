package storage

import (
	"context"
	"sync"
	"time"

	"stylora-be/internal/apperr"
	"stylora-be/internal/domain"
)

// Store owns the authoritative in-memory snapshot and pushes every
// committed mutation through the Gateway.
//
// Concurrency contract: mutations for the same user are serialized by a
// per-user mutex, so a read-modify-write (the cart merge) can never lose
// an increment. Commits are serialized globally because the gateway
// persists the whole snapshot. If the gateway rejects a save, the
// in-memory state is rolled back; a mutation either fully applies and is
// durable, or has no effect.
type Store struct {
	gw      Gateway
	timeout time.Duration

	mu    sync.Mutex // guards state and commits
	state *domain.Snapshot

	lockMu sync.Mutex
	locks  map[int]*sync.Mutex
}

// Open loads the snapshot through the gateway and wraps it.
func Open(ctx context.Context, gw Gateway, timeout time.Duration) (*Store, error) {
	snap, err := gw.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap.Normalize()

	return &Store{
		gw:      gw,
		timeout: timeout,
		state:   snap,
		locks:   map[int]*sync.Mutex{},
	}, nil
}

func (s *Store) userLock(userID int) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.gw.Save(ctx, s.state)
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) == apperr.KindUnknown {
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to persist snapshot", err)
	}
	return err
}

// --- reads (all return copies) ---

func (s *Store) UserByEmail(email string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserByEmail(email)
}

func (s *Store) UserByID(id int) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserByID(id)
}

func (s *Store) Cart(userID int) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneCart(s.state.Carts[userID])
}

func (s *Store) Orders(userID int) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneOrders(s.state.Orders[userID])
}

func (s *Store) OrderByID(userID int, orderID string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.state.Orders[userID] {
		if o.ID == orderID {
			o.Items = domain.CloneCart(o.Items)
			return o, true
		}
	}
	return domain.Order{}, false
}

func (s *Store) SavedCheckout(userID int) (domain.SavedCheckout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, ok := s.state.SavedCheckout[userID]
	return saved, ok
}

// --- writes ---

// CreateUser assigns the next id, enforces email uniqueness, and
// persists. The email must already be normalized.
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.state.UserByEmail(email); exists {
		return domain.User{}, apperr.New(apperr.KindConflict, "User already registered. Please login.")
	}

	u := domain.User{
		ID:           s.state.NextUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	s.state.Users = append(s.state.Users, u)
	if err := s.persist(ctx); err != nil {
		s.state.Users = s.state.Users[:len(s.state.Users)-1]
		return domain.User{}, err
	}
	return u, nil
}

// UpdateUser replaces the stored record with the same id.
func (s *Store) UpdateUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Users {
		if s.state.Users[i].ID == u.ID {
			prev := s.state.Users[i]
			s.state.Users[i] = u
			if err := s.persist(ctx); err != nil {
				s.state.Users[i] = prev
				return err
			}
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "user not found")
}

// MutateCart runs fn against a copy of the user's cart under that user's
// mutation lock and commits the result. fn returning an error aborts
// without touching state.
func (s *Store) MutateCart(
	ctx context.Context,
	userID int,
	fn func(items []domain.CartItem) ([]domain.CartItem, error),
) ([]domain.CartItem, error) {

	ul := s.userLock(userID)
	ul.Lock()
	defer ul.Unlock()

	s.mu.Lock()
	current := domain.CloneCart(s.state.Carts[userID])
	s.mu.Unlock()

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Carts[userID]
	s.state.Carts[userID] = next
	if err := s.persist(ctx); err != nil {
		s.state.Carts[userID] = prev
		return nil, err
	}
	return domain.CloneCart(next), nil
}

// CommitOrder runs build against the cart snapshot under the user's
// lock, then applies the two-effect transaction: prepend the order to
// the history and clear the cart (plus, optionally, the saved checkout
// preferences). If persistence fails nothing is applied — in particular
// the cart is NOT cleared.
func (s *Store) CommitOrder(
	ctx context.Context,
	userID int,
	build func(cart []domain.CartItem) (domain.Order, *domain.SavedCheckout, error),
) (domain.Order, error) {

	ul := s.userLock(userID)
	ul.Lock()
	defer ul.Unlock()

	s.mu.Lock()
	cart := domain.CloneCart(s.state.Carts[userID])
	s.mu.Unlock()

	order, saved, err := build(cart)
	if err != nil {
		return domain.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevOrders := s.state.Orders[userID]
	prevCart := s.state.Carts[userID]
	prevSaved, hadSaved := s.state.SavedCheckout[userID]

	s.state.Orders[userID] = append([]domain.Order{order}, prevOrders...)
	s.state.Carts[userID] = []domain.CartItem{}
	if saved != nil {
		s.state.SavedCheckout[userID] = *saved
	}

	if err := s.persist(ctx); err != nil {
		s.state.Orders[userID] = prevOrders
		s.state.Carts[userID] = prevCart
		if saved != nil {
			if hadSaved {
				s.state.SavedCheckout[userID] = prevSaved
			} else {
				delete(s.state.SavedCheckout, userID)
			}
		}
		return domain.Order{}, err
	}

	order.Items = domain.CloneCart(order.Items)
	return order, nil
}

// UpdateOrderStatus transitions one order's status.
func (s *Store) UpdateOrderStatus(ctx context.Context, userID int, orderID string, status domain.OrderStatus) error {
	ul := s.userLock(userID)
	ul.Lock()
	defer ul.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.state.Orders[userID]
	for i := range orders {
		if orders[i].ID == orderID {
			prev := orders[i].Status
			orders[i].Status = status
			if err := s.persist(ctx); err != nil {
				orders[i].Status = prev
				return err
			}
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "order not found")
}
