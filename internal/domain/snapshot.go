package domain

import "strings"

// Snapshot is the whole persisted state: the global users table plus the
// per-user partitions (cart, order history, saved checkout preferences).
// The persistence gateway loads and saves it as one unit.
type Snapshot struct {
	Users         []User                `json:"users"`
	Carts         map[int][]CartItem    `json:"userCarts"`
	Orders        map[int][]Order       `json:"userOrders"`
	SavedCheckout map[int]SavedCheckout `json:"savedCheckout"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:         []User{},
		Carts:         map[int][]CartItem{},
		Orders:        map[int][]Order{},
		SavedCheckout: map[int]SavedCheckout{},
	}
}

// Normalize replaces nil collections with empty ones so a partially
// populated snapshot (fresh file, old schema) behaves like an empty one.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Carts == nil {
		s.Carts = map[int][]CartItem{}
	}
	if s.Orders == nil {
		s.Orders = map[int][]Order{}
	}
	if s.SavedCheckout == nil {
		s.SavedCheckout = map[int]SavedCheckout{}
	}
}

// Clone deep-copies the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := NewSnapshot()
	out.Users = append(out.Users[:0], s.Users...)
	for id, items := range s.Carts {
		out.Carts[id] = CloneCart(items)
	}
	for id, orders := range s.Orders {
		out.Orders[id] = CloneOrders(orders)
	}
	for id, saved := range s.SavedCheckout {
		out.SavedCheckout[id] = saved
	}
	return out
}

// NextUserID yields max(id)+1, starting at 1 for an empty table.
func (s *Snapshot) NextUserID() int {
	next := 1
	for _, u := range s.Users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	return next
}

// UserByEmail looks up a user by normalized email.
func (s *Snapshot) UserByEmail(email string) (User, bool) {
	email = NormalizeEmail(email)
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

func (s *Snapshot) UserByID(id int) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// NormalizeEmail is the canonical form used for uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
