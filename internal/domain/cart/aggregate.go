package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/hamper-shop/internal/infrastructure/store"
	"github.com/shopspring/decimal"
)

const AggregateType = "Cart"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidName     = errors.New("item name is required")
	ErrNegativePrice   = errors.New("unit price must not be negative")
	ErrInvalidKind     = errors.New("item kind does not match its payload")
)

type Kind string

const (
	KindCustom   Kind = "custom"
	KindPrebuilt Kind = "prebuilt"
)

// CustomHamper records the configurator choices by display name.
type CustomHamper struct {
	Occasion  string   `json:"occasion"`
	Vibe      string   `json:"vibe"`
	Packaging string   `json:"packaging"`
	Contents  []string `json:"contents"`
}

// PrebuiltHamper is a copy of the catalog product taken when the item was added.
type PrebuiltHamper struct {
	ProductID    string   `json:"product_id"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Occasions    []string `json:"occasions"`
	Features     []string `json:"features"`
	Contents     []string `json:"contents"`
	Packaging    string   `json:"packaging"`
	DeliveryInfo string   `json:"delivery_info"`
}

// CartItem is one line of the cart. LineTotal is always UnitPrice * Quantity.
type CartItem struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Quantity  int             `json:"quantity"`
	Custom    *CustomHamper   `json:"custom,omitempty"`
	Prebuilt  *PrebuiltHamper `json:"prebuilt,omitempty"`
}

// Candidate is an item waiting to be added; the cart assigns its id.
type Candidate struct {
	Kind      Kind
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Custom    *CustomHamper
	Prebuilt  *PrebuiltHamper
}

func (c Candidate) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}
	if c.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if c.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	switch {
	case c.Kind == KindCustom && c.Custom != nil && c.Prebuilt == nil:
	case c.Kind == KindPrebuilt && c.Prebuilt != nil && c.Custom == nil:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, c.Kind)
	}
	return nil
}

type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// HasContact reports whether the fields needed to place an order are filled.
func (d CustomerDetails) HasContact() bool {
	return d.Name != "" && d.Phone != ""
}

// DetailsPatch updates only the non-nil fields.
type DetailsPatch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

func (p DetailsPatch) Apply(d CustomerDetails) CustomerDetails {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	return d
}

// Cart keeps items in insertion order.
type Cart struct {
	ID       string          `json:"id"`
	Items    []CartItem      `json:"items"`
	Customer CustomerDetails `json:"customer"`
	Version  int             `json:"version"`
}

// Aggregate interface implementation
func (c *Cart) GetID() string    { return c.ID }
func (c *Cart) GetVersion() int  { return c.Version }
func (c *Cart) SetVersion(v int) { c.Version = v }

// Total is the sum of the line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// ItemCount is the sum of quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) LineCount() int { return len(c.Items) }

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

func (c *Cart) Item(id string) (CartItem, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

func (c *Cart) indexOf(id string) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// ApplyEvent applies a single event to the cart state (implements aggregate.Aggregate)
func (c *Cart) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventItemAdded:
		var data ItemAddedToCart
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.ID = data.CartID
		c.Items = append(c.Items, data.Item)
	case EventQuantityUpdated:
		var data CartItemQuantityUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		if i := c.indexOf(data.ItemID); i >= 0 {
			c.Items[i].Quantity = data.Quantity
			c.Items[i].LineTotal = data.LineTotal
		}
	case EventItemRemoved:
		var data ItemRemovedFromCart
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		if i := c.indexOf(data.ItemID); i >= 0 {
			c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
		}
	case EventCartCleared:
		var data CartCleared
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.ID = data.CartID
		c.Items = nil
		c.Customer = CustomerDetails{}
	case EventDetailsUpdated:
		var data CustomerDetailsUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		c.ID = data.CartID
		c.Customer = data.Details
	}
	c.Version = event.Version
	return nil
}
