package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventItemAdded       = "ItemAddedToCart"
	EventQuantityUpdated = "CartItemQuantityUpdated"
	EventItemRemoved     = "ItemRemovedFromCart"
	EventCartCleared     = "CartCleared"
	EventDetailsUpdated  = "CustomerDetailsUpdated"
)

type ItemAddedToCart struct {
	CartID  string    `json:"cart_id"`
	Item    CartItem  `json:"item"`
	AddedAt time.Time `json:"added_at"`
}

// CartItemQuantityUpdated carries the recomputed line total so replay never
// has to derive prices.
type CartItemQuantityUpdated struct {
	CartID    string          `json:"cart_id"`
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ItemRemovedFromCart struct {
	CartID    string    `json:"cart_id"`
	ItemID    string    `json:"item_id"`
	RemovedAt time.Time `json:"removed_at"`
}

// CartCleared empties the cart and resets the customer details.
type CartCleared struct {
	CartID    string    `json:"cart_id"`
	ClearedAt time.Time `json:"cleared_at"`
}

// CustomerDetailsUpdated carries the full merged details, not the patch.
type CustomerDetailsUpdated struct {
	CartID    string          `json:"cart_id"`
	Details   CustomerDetails `json:"details"`
	UpdatedAt time.Time       `json:"updated_at"`
}
