package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/example/hamper-shop/internal/domain/aggregate"
	"github.com/example/hamper-shop/internal/idgen"
	"github.com/example/hamper-shop/internal/infrastructure/store"
	"github.com/example/hamper-shop/internal/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service is the only writer of carts.
type Service struct {
	eventStore store.EventStoreInterface
	ids        idgen.Generator
	log        zerolog.Logger
	now        func() time.Time
}

func NewService(es store.EventStoreInterface, ids idgen.Generator, log zerolog.Logger) *Service {
	if ids == nil {
		ids = idgen.UUID{}
	}
	return &Service{
		eventStore: es,
		ids:        ids,
		log:        logger.Component(log, "cart"),
		now:        time.Now,
	}
}

// GetCartID returns the cart ID for a session
func GetCartID(sessionID string) string {
	return "cart-" + sessionID
}

// Get rebuilds the cart. A cart with no events is returned empty.
func (s *Service) Get(ctx context.Context, cartID string) (*Cart, error) {
	cart, _, err := aggregate.LoadAggregate(ctx, s.eventStore, cartID, func() *Cart {
		return &Cart{ID: cartID}
	})
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", cartID, err)
	}
	return cart, nil
}

// AddItem appends a new line and returns it with its assigned id.
func (s *Service) AddItem(ctx context.Context, cartID string, c Candidate) (CartItem, error) {
	if err := c.Validate(); err != nil {
		return CartItem{}, err
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return CartItem{}, err
	}

	item := CartItem{
		ID:        s.ids.NewID(),
		Kind:      c.Kind,
		Name:      c.Name,
		UnitPrice: c.UnitPrice,
		LineTotal: c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity))),
		Quantity:  c.Quantity,
		Custom:    c.Custom,
		Prebuilt:  c.Prebuilt,
	}

	event := ItemAddedToCart{
		CartID:  cartID,
		Item:    item,
		AddedAt: s.now(),
	}
	if err := s.commit(ctx, cart, EventItemAdded, event); err != nil {
		return CartItem{}, err
	}

	s.log.Debug().
		Str("cart_id", cartID).
		Str("item_id", item.ID).
		Str("kind", string(item.Kind)).
		Int("quantity", item.Quantity).
		Str("line_total", item.LineTotal.String()).
		Msg("item added")
	return item, nil
}

// UpdateQuantity sets a new quantity and recomputes the line total from the
// unit price. Non-positive quantities and unknown ids are ignored; removing
// an item is RemoveItem's job.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	if quantity <= 0 {
		s.log.Debug().Str("item_id", itemID).Int("quantity", quantity).Msg("non-positive quantity ignored")
		return nil
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return err
	}
	item, ok := cart.Item(itemID)
	if !ok || item.Quantity == quantity {
		return nil
	}

	event := CartItemQuantityUpdated{
		CartID:    cartID,
		ItemID:    itemID,
		Quantity:  quantity,
		LineTotal: item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		UpdatedAt: s.now(),
	}
	return s.commit(ctx, cart, EventQuantityUpdated, event)
}

// Increment raises the quantity by one.
func (s *Service) Increment(ctx context.Context, cartID, itemID string) error {
	return s.step(ctx, cartID, itemID, 1)
}

// Decrement lowers the quantity by one. At quantity 1 it does nothing.
func (s *Service) Decrement(ctx context.Context, cartID, itemID string) error {
	return s.step(ctx, cartID, itemID, -1)
}

func (s *Service) step(ctx context.Context, cartID, itemID string, delta int) error {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return err
	}
	item, ok := cart.Item(itemID)
	if !ok {
		return nil
	}
	return s.UpdateQuantity(ctx, cartID, itemID, item.Quantity+delta)
}

// RemoveItem deletes the line. Removing an absent id is a no-op.
func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return err
	}
	if _, ok := cart.Item(itemID); !ok {
		return nil
	}

	event := ItemRemovedFromCart{
		CartID:    cartID,
		ItemID:    itemID,
		RemovedAt: s.now(),
	}
	return s.commit(ctx, cart, EventItemRemoved, event)
}

// Clear empties the cart and resets the customer details.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return err
	}

	event := CartCleared{
		CartID:    cartID,
		ClearedAt: s.now(),
	}
	return s.commit(ctx, cart, EventCartCleared, event)
}

// UpdateCustomerDetails merges the patch into the stored details.
func (s *Service) UpdateCustomerDetails(ctx context.Context, cartID string, patch DetailsPatch) (CustomerDetails, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return CustomerDetails{}, err
	}

	merged := patch.Apply(cart.Customer)
	if merged == cart.Customer {
		return merged, nil
	}

	event := CustomerDetailsUpdated{
		CartID:    cartID,
		Details:   merged,
		UpdatedAt: s.now(),
	}
	if err := s.commit(ctx, cart, EventDetailsUpdated, event); err != nil {
		return CustomerDetails{}, err
	}
	return merged, nil
}

// commit appends the event, folds it into cart and snapshots when due.
func (s *Service) commit(ctx context.Context, cart *Cart, eventType string, data any) error {
	storedEvent, err := s.eventStore.Append(ctx, cart.ID, AggregateType, eventType, data)
	if err != nil {
		return fmt.Errorf("append %s: %w", eventType, err)
	}

	if storedEvent != nil {
		if err := cart.ApplyEvent(*storedEvent); err != nil {
			return fmt.Errorf("apply %s: %w", eventType, err)
		}
	}

	if _, err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, cart, AggregateType); err != nil {
		s.log.Warn().Err(err).Str("cart_id", cart.ID).Msg("failed to create snapshot")
	}
	return nil
}
