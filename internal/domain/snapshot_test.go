package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNextUserID(t *testing.T) {
	s := NewSnapshot()
	assert.Equal(t, 1, s.NextUserID())

	s.Users = append(s.Users, User{ID: 3}, User{ID: 7}, User{ID: 5})
	assert.Equal(t, 8, s.NextUserID())
}

func TestUserByEmail_Normalized(t *testing.T) {
	s := NewSnapshot()
	s.Users = append(s.Users, User{ID: 1, Email: "a@x.com"})

	u, ok := s.UserByEmail("  A@X.COM  ")
	assert.True(t, ok)
	assert.Equal(t, 1, u.ID)

	_, ok = s.UserByEmail("b@x.com")
	assert.False(t, ok)
}

func TestClone_Independent(t *testing.T) {
	s := NewSnapshot()
	s.Users = append(s.Users, User{ID: 1, Email: "a@x.com"})
	s.Carts[1] = []CartItem{{ID: "i1", ProductID: "P1", Size: "M", Quantity: 2,
		ProductPrice: decimal.NewFromInt(1000)}}
	s.Orders[1] = []Order{{ID: "ORD-1", UserID: 1, Items: []CartItem{{ID: "i1"}}}}

	c := s.Clone()
	c.Carts[1][0].Quantity = 99
	c.Orders[1][0].Items[0].ID = "mutated"
	c.Users[0].Email = "evil@x.com"

	assert.Equal(t, 2, s.Carts[1][0].Quantity)
	assert.Equal(t, "i1", s.Orders[1][0].Items[0].ID)
	assert.Equal(t, "a@x.com", s.Users[0].Email)
}

func TestNormalize_NilCollections(t *testing.T) {
	var s Snapshot
	s.Normalize()

	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.Carts)
	assert.NotNil(t, s.Orders)
	assert.NotNil(t, s.SavedCheckout)
}

func TestCloneCart_NilIsEmpty(t *testing.T) {
	out := CloneCart(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
