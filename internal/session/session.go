// Package session holds the state of one shopper: a cart, a configurator
// and a checkout flow.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/hamper-shop/internal/catalog"
	"github.com/example/hamper-shop/internal/domain/cart"
	"github.com/example/hamper-shop/internal/domain/checkout"
	"github.com/example/hamper-shop/internal/domain/configurator"
	"github.com/example/hamper-shop/internal/logger"
	"github.com/example/hamper-shop/internal/message"
	"github.com/example/hamper-shop/internal/metrics"
	"github.com/example/hamper-shop/internal/whatsapp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingDependency = errors.New("session dependency missing")
	ErrUnknownOption     = errors.New("unknown catalog option")
)

const (
	flowConfigurator = "configurator"
	flowCheckout     = "checkout"
)

// Deps wires a session. Metrics may be nil.
type Deps struct {
	SessionID string
	Brand     string
	Catalog   *catalog.Catalog
	Carts     *cart.Service
	Chat      *whatsapp.Service
	Metrics   *metrics.SessionMetrics
	Logger    zerolog.Logger
}

// Session is not safe for concurrent use; one shopper drives it.
type Session struct {
	id      string
	cartID  string
	brand   string
	catalog *catalog.Catalog
	carts   *cart.Service
	chat    *whatsapp.Service
	metrics *metrics.SessionMetrics
	builder *configurator.Builder
	flow    *checkout.Flow
	log     zerolog.Logger
}

func New(d Deps) (*Session, error) {
	switch {
	case d.SessionID == "":
		return nil, fmt.Errorf("%w: session id", ErrMissingDependency)
	case d.Catalog == nil:
		return nil, fmt.Errorf("%w: catalog", ErrMissingDependency)
	case d.Carts == nil:
		return nil, fmt.Errorf("%w: cart service", ErrMissingDependency)
	case d.Chat == nil:
		return nil, fmt.Errorf("%w: chat service", ErrMissingDependency)
	}

	base := d.Logger.With().Str("session_id", d.SessionID).Logger()
	return &Session{
		id:      d.SessionID,
		cartID:  cart.GetCartID(d.SessionID),
		brand:   d.Brand,
		catalog: d.Catalog,
		carts:   d.Carts,
		chat:    d.Chat,
		metrics: d.Metrics,
		builder: configurator.NewBuilder(d.Catalog, base),
		flow:    checkout.NewFlow(base),
		log:     logger.Component(base, "session"),
	}, nil
}

func (s *Session) ID() string     { return s.id }
func (s *Session) CartID() string { return s.cartID }

// Builder exposes the configurator for reading its step and selection.
func (s *Session) Builder() *configurator.Builder { return s.builder }

// ============================================
// Configurator
// ============================================

// StartConfigurator opens the configurator, optionally with an occasion
// from a "shop by occasion" link.
func (s *Session) StartConfigurator(preselected string) {
	s.builder.Start(preselected)
	if s.builder.Step() != configurator.FirstStep {
		s.metrics.IncTransition(flowConfigurator, s.builder.Step().String())
	}
}

func (s *Session) SelectOccasion(id string) error {
	o, ok := s.catalog.Occasion(id)
	if !ok {
		return fmt.Errorf("%w: occasion %q", ErrUnknownOption, id)
	}
	s.builder.SelectOccasion(o)
	s.metrics.IncTransition(flowConfigurator, s.builder.Step().String())
	return nil
}

func (s *Session) SelectVibe(id string) error {
	v, ok := s.catalog.Vibe(id)
	if !ok {
		return fmt.Errorf("%w: vibe %q", ErrUnknownOption, id)
	}
	s.builder.SelectVibe(v)
	s.metrics.IncTransition(flowConfigurator, s.builder.Step().String())
	return nil
}

func (s *Session) SelectPackaging(id string) error {
	p, ok := s.catalog.PackagingOption(id)
	if !ok {
		return fmt.Errorf("%w: packaging %q", ErrUnknownOption, id)
	}
	s.builder.SelectPackaging(p)
	s.metrics.IncTransition(flowConfigurator, s.builder.Step().String())
	return nil
}

func (s *Session) ToggleContent(id string) error {
	c, ok := s.catalog.Content(id)
	if !ok {
		return fmt.Errorf("%w: content %q", ErrUnknownOption, id)
	}
	s.builder.ToggleContent(c)
	return nil
}

func (s *Session) SetQuantity(q int) bool {
	return s.builder.SetQuantity(q)
}

func (s *Session) ConfiguratorNext() bool {
	return s.recordBuilderMove(s.builder.Continue())
}

func (s *Session) ConfiguratorBack() bool {
	return s.recordBuilderMove(s.builder.Back())
}

func (s *Session) ConfiguratorGoTo(step configurator.Step) bool {
	return s.recordBuilderMove(s.builder.GoToStep(step))
}

func (s *Session) recordBuilderMove(moved bool) bool {
	if moved {
		s.metrics.IncTransition(flowConfigurator, s.builder.Step().String())
	}
	return moved
}

// AddHamperToCart commits the finished selection into the cart.
func (s *Session) AddHamperToCart(ctx context.Context) (cart.CartItem, error) {
	item, err := s.builder.Commit(ctx, func(ctx context.Context, c cart.Candidate) (cart.CartItem, error) {
		return s.carts.AddItem(ctx, s.cartID, c)
	})
	if err != nil {
		return cart.CartItem{}, err
	}
	s.metrics.IncItemAdded(string(item.Kind))
	return item, nil
}

// ConfigureHamper selects every option of cmd and adds the hamper.
func (s *Session) ConfigureHamper(ctx context.Context, cmd ConfigureHamper) (cart.CartItem, error) {
	s.StartConfigurator(cmd.Occasion)
	if err := s.SelectVibe(cmd.Vibe); err != nil {
		return cart.CartItem{}, err
	}
	if err := s.SelectPackaging(cmd.Packaging); err != nil {
		return cart.CartItem{}, err
	}
	for _, id := range cmd.Contents {
		if s.builder.Selection().HasContent(id) {
			continue
		}
		if err := s.ToggleContent(id); err != nil {
			return cart.CartItem{}, err
		}
	}
	if cmd.Quantity > 0 {
		s.SetQuantity(cmd.Quantity)
	}
	return s.AddHamperToCart(ctx)
}

// ============================================
// Cart
// ============================================

// AddPrebuilt copies the catalog product into the cart.
func (s *Session) AddPrebuilt(ctx context.Context, cmd AddPrebuilt) (cart.CartItem, error) {
	p, ok := s.catalog.Product(cmd.ProductID)
	if !ok {
		return cart.CartItem{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, cmd.ProductID)
	}
	unit, err := p.Amount()
	if err != nil {
		return cart.CartItem{}, err
	}
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item, err := s.carts.AddItem(ctx, s.cartID, cart.Candidate{
		Kind:      cart.KindPrebuilt,
		Name:      p.Name,
		UnitPrice: unit,
		Quantity:  quantity,
		Prebuilt: &cart.PrebuiltHamper{
			ProductID:    p.ID,
			Category:     p.Category,
			Description:  p.Description,
			Occasions:    append([]string(nil), p.Occasions...),
			Features:     append([]string(nil), p.Features...),
			Contents:     append([]string(nil), p.Contents...),
			Packaging:    p.Packaging,
			DeliveryInfo: p.DeliveryInfo,
		},
	})
	if err != nil {
		return cart.CartItem{}, err
	}
	s.metrics.IncItemAdded(string(item.Kind))
	return item, nil
}

func (s *Session) UpdateQuantity(ctx context.Context, cmd UpdateQuantity) error {
	return s.carts.UpdateQuantity(ctx, s.cartID, cmd.ItemID, cmd.Quantity)
}

func (s *Session) IncrementItem(ctx context.Context, itemID string) error {
	return s.carts.Increment(ctx, s.cartID, itemID)
}

func (s *Session) DecrementItem(ctx context.Context, itemID string) error {
	return s.carts.Decrement(ctx, s.cartID, itemID)
}

func (s *Session) RemoveItem(ctx context.Context, cmd RemoveItem) error {
	c, err := s.Cart(ctx)
	if err != nil {
		return err
	}
	if _, ok := c.Item(cmd.ItemID); !ok {
		return nil
	}
	if err := s.carts.RemoveItem(ctx, s.cartID, cmd.ItemID); err != nil {
		return err
	}
	s.metrics.IncItemRemoved()
	return nil
}

// ClearCart empties the cart, forgets the customer details and returns the
// checkout to its first step.
func (s *Session) ClearCart(ctx context.Context) error {
	if err := s.carts.Clear(ctx, s.cartID); err != nil {
		return err
	}
	s.flow.Reset()
	return nil
}

func (s *Session) UpdateCustomerDetails(ctx context.Context, cmd UpdateCustomer) (cart.CustomerDetails, error) {
	return s.carts.UpdateCustomerDetails(ctx, s.cartID, cmd.patch())
}

func (s *Session) Cart(ctx context.Context) (*cart.Cart, error) {
	return s.carts.Get(ctx, s.cartID)
}

func (s *Session) Total(ctx context.Context) (decimal.Decimal, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Total(), nil
}

func (s *Session) ItemCount(ctx context.Context) (int, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return 0, err
	}
	return c.ItemCount(), nil
}

// ============================================
// Checkout
// ============================================

func (s *Session) CheckoutStep() checkout.Step { return s.flow.Step() }

func (s *Session) CanGoToStep(ctx context.Context, target checkout.Step) (bool, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return false, err
	}
	return checkout.CanGoToStep(c, target), nil
}

func (s *Session) NextStep(ctx context.Context) (bool, error) {
	return s.moveCheckout(ctx, s.flow.Next)
}

func (s *Session) PreviousStep(ctx context.Context) (bool, error) {
	return s.moveCheckout(ctx, s.flow.Back)
}

func (s *Session) GoToStep(ctx context.Context, target checkout.Step) (bool, error) {
	return s.moveCheckout(ctx, func(c *cart.Cart) bool { return s.flow.GoTo(c, target) })
}

func (s *Session) moveCheckout(ctx context.Context, move func(*cart.Cart) bool) (bool, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return false, err
	}
	if !move(c) {
		return false, nil
	}
	s.metrics.IncTransition(flowCheckout, s.flow.Step().String())
	return true, nil
}

// OrderSummary renders the current cart without sending it.
func (s *Session) OrderSummary(ctx context.Context) (string, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return "", err
	}
	return message.BuildOrderSummary(s.brand, c.Items, c.Customer), nil
}

// PlaceOrder sends the order summary when the checkout is at its final step
// and the gates still hold. The cart and the step are left as they are.
func (s *Session) PlaceOrder(ctx context.Context) (string, bool, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return "", false, err
	}
	if s.flow.Step() != checkout.FinalOrder || !checkout.CanGoToStep(c, checkout.FinalOrder) {
		s.log.Debug().Stringer("step", s.flow.Step()).Msg("order not placed, checkout incomplete")
		return "", false, nil
	}

	link := s.chat.Send(ctx, message.BuildOrderSummary(s.brand, c.Items, c.Customer))
	total, _ := c.Total().Float64()
	s.metrics.IncDispatch("order")
	s.metrics.ObserveOrderTotal(total)
	s.log.Info().
		Int("lines", c.LineCount()).
		Int("items", c.ItemCount()).
		Str("total", c.Total().String()).
		Msg("order dispatched")
	return link, true, nil
}

// ============================================
// Direct messages
// ============================================

// OrderProductNow sends a single prebuilt hamper order without the cart.
func (s *Session) OrderProductNow(ctx context.Context, productID string) (string, error) {
	p, ok := s.catalog.Product(productID)
	if !ok {
		return "", fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	link := s.chat.Send(ctx, message.BuildProductOrder(p))
	s.metrics.IncDispatch("product_order")
	return link, nil
}

func (s *Session) EnquireProduct(ctx context.Context, productID string) (string, error) {
	p, ok := s.catalog.Product(productID)
	if !ok {
		return "", fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
	}
	link := s.chat.Send(ctx, message.BuildProductEnquiry(p))
	s.metrics.IncDispatch("enquiry")
	return link, nil
}

func (s *Session) SubmitContact(ctx context.Context, form message.ContactForm) string {
	link := s.chat.Send(ctx, message.BuildContactMessage(form))
	s.metrics.IncDispatch("contact")
	return link
}
