package checkout

import (
	"testing"

	"github.com/example/hamper-shop/internal/domain/cart"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func cartWith(items int, details cart.CustomerDetails) *cart.Cart {
	c := &cart.Cart{ID: "cart-test", Customer: details}
	for i := 0; i < items; i++ {
		c.Items = append(c.Items, cart.CartItem{
			ID:        "item",
			Kind:      cart.KindPrebuilt,
			Name:      "Hamper",
			UnitPrice: decimal.NewFromInt(100),
			LineTotal: decimal.NewFromInt(100),
			Quantity:  1,
		})
	}
	return c
}

var contact = cart.CustomerDetails{Name: "Asha", Phone: "9800000000"}

// ============================================
// CanGoToStep Tests
// ============================================

func TestCanGoToStep(t *testing.T) {
	tests := []struct {
		name string
		cart *cart.Cart
		want map[Step]bool
	}{
		{"empty cart", cartWith(0, cart.CustomerDetails{}), map[Step]bool{CartReview: true, CustomerDetails: false, FinalOrder: false}},
		{"empty cart with contact", cartWith(0, contact), map[Step]bool{CartReview: true, CustomerDetails: false, FinalOrder: false}},
		{"items no details", cartWith(1, cart.CustomerDetails{}), map[Step]bool{CartReview: true, CustomerDetails: true, FinalOrder: false}},
		{"name only", cartWith(1, cart.CustomerDetails{Name: "Asha"}), map[Step]bool{CartReview: true, CustomerDetails: true, FinalOrder: false}},
		{"phone only", cartWith(1, cart.CustomerDetails{Phone: "1"}), map[Step]bool{CartReview: true, CustomerDetails: true, FinalOrder: false}},
		{"email and address do not gate", cartWith(2, cart.CustomerDetails{Name: "Asha", Phone: "1"}), map[Step]bool{CartReview: true, CustomerDetails: true, FinalOrder: true}},
		{"nil cart", nil, map[Step]bool{CartReview: true, CustomerDetails: false, FinalOrder: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for step, want := range tt.want {
				assert.Equal(t, want, CanGoToStep(tt.cart, step), "step %s", step)
			}
			assert.False(t, CanGoToStep(tt.cart, Step(0)))
			assert.False(t, CanGoToStep(tt.cart, Step(4)))
		})
	}
}

func TestCanGoToStep_Monotonic(t *testing.T) {
	carts := []*cart.Cart{
		nil,
		cartWith(0, cart.CustomerDetails{}),
		cartWith(0, contact),
		cartWith(1, cart.CustomerDetails{}),
		cartWith(1, cart.CustomerDetails{Name: "A"}),
		cartWith(3, contact),
	}

	for _, c := range carts {
		for n := CartReview; n < FinalOrder; n++ {
			if !CanGoToStep(c, n) {
				assert.False(t, CanGoToStep(c, n+1))
			}
		}
	}
}

// ============================================
// Flow Transition Tests
// ============================================

func TestFlow_CheckoutGate(t *testing.T) {
	f := NewFlow(zerolog.Nop())
	c := cartWith(0, cart.CustomerDetails{})

	assert.Equal(t, CartReview, f.Step())
	assert.False(t, f.Next(c))
	assert.False(t, f.GoTo(c, CustomerDetails))
	assert.Equal(t, CartReview, f.Step())

	c = cartWith(1, cart.CustomerDetails{})
	assert.True(t, f.Next(c))
	assert.Equal(t, CustomerDetails, f.Step())
	assert.False(t, f.Next(c))

	c.Customer.Name = "Asha"
	assert.False(t, f.Next(c))
	c.Customer.Phone = "9800000000"
	assert.True(t, f.Next(c))
	assert.Equal(t, FinalOrder, f.Step())
	assert.False(t, f.Next(c), "no step after final order")
}

func TestFlow_BackIsUngated(t *testing.T) {
	f := NewFlow(zerolog.Nop())
	full := cartWith(1, contact)
	assert.True(t, f.GoTo(full, FinalOrder))

	empty := cartWith(0, cart.CustomerDetails{})
	assert.True(t, f.Back(empty))
	assert.Equal(t, CustomerDetails, f.Step())
	assert.True(t, f.Back(empty))
	assert.Equal(t, CartReview, f.Step())
	assert.False(t, f.Back(empty))
	assert.Equal(t, CartReview, f.Step())
}

func TestFlow_GoTo(t *testing.T) {
	f := NewFlow(zerolog.Nop())
	c := cartWith(1, cart.CustomerDetails{Name: "Asha"})

	assert.False(t, f.GoTo(c, FinalOrder), "phone missing")
	assert.Equal(t, CartReview, f.Step())

	c.Customer.Phone = "1"
	assert.True(t, f.GoTo(c, FinalOrder))
	assert.Equal(t, FinalOrder, f.Step())
	assert.False(t, f.GoTo(c, FinalOrder), "already there")

	assert.True(t, f.GoTo(c, CartReview))
	assert.False(t, f.GoTo(c, Step(7)))
	assert.Equal(t, CartReview, f.Step())
}

func TestFlow_CanTransitionTo_OnlyAdjacent(t *testing.T) {
	f := NewFlow(zerolog.Nop())
	c := cartWith(1, contact)

	assert.True(t, f.CanTransitionTo(c, CustomerDetails))
	assert.False(t, f.CanTransitionTo(c, FinalOrder), "Next never skips a step")
	assert.False(t, f.CanTransitionTo(c, CartReview))
}

func TestFlow_Reset(t *testing.T) {
	f := NewFlow(zerolog.Nop())
	assert.True(t, f.GoTo(cartWith(1, contact), FinalOrder))

	f.Reset()

	assert.Equal(t, CartReview, f.Step())
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "cart_review", CartReview.String())
	assert.Equal(t, "customer_details", CustomerDetails.String())
	assert.Equal(t, "final_order", FinalOrder.String())
	assert.Equal(t, "unknown", Step(0).String())
}
