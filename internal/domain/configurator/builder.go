package configurator

import (
	"context"
	"errors"

	"github.com/example/hamper-shop/internal/catalog"
	"github.com/example/hamper-shop/internal/domain/cart"
	"github.com/example/hamper-shop/internal/logger"
	"github.com/rs/zerolog"
)

var ErrIncompleteSelection = errors.New("selection needs occasion, vibe, packaging and at least one content item")

// AddFunc receives the finished hamper, typically cart.Service.AddItem bound to a cart id.
type AddFunc func(ctx context.Context, c cart.Candidate) (cart.CartItem, error)

// Builder drives the five configurator steps for one session.
type Builder struct {
	catalog   *catalog.Catalog
	selection Selection
	step      Step
	quantity  int
	log       zerolog.Logger
}

func NewBuilder(cat *catalog.Catalog, log zerolog.Logger) *Builder {
	return &Builder{
		catalog:  cat,
		step:     FirstStep,
		quantity: 1,
		log:      logger.Component(log, "configurator"),
	}
}

// Start resets the builder. A resolvable preselected occasion is seeded and
// the builder opens at the vibe step.
func (b *Builder) Start(preselected string) {
	b.Reset()
	o, ok := ResolveOccasion(b.catalog, preselected)
	if !ok {
		return
	}
	b.selection.Occasion = &o
	b.step = StepVibe
	b.log.Debug().Str("occasion_id", o.ID).Str("identifier", preselected).Msg("occasion preselected")
}

func (b *Builder) Reset() {
	b.selection = Selection{}
	b.step = FirstStep
	b.quantity = 1
}

func (b *Builder) Step() Step               { return b.step }
func (b *Builder) Quantity() int            { return b.quantity }
func (b *Builder) Selection() Selection     { return b.selection.clone() }
func (b *Builder) CanEnterStep(n Step) bool { return b.selection.CanEnterStep(n) }

func (b *Builder) SelectOccasion(o catalog.Occasion) {
	b.selection.Occasion = &o
	b.step = StepVibe
}

func (b *Builder) SelectVibe(v catalog.Vibe) {
	b.selection.Vibe = &v
	b.step = StepPackaging
}

func (b *Builder) SelectPackaging(p catalog.Packaging) {
	b.selection.Packaging = &p
	b.step = StepContents
}

// ToggleContent adds c, or removes it when already picked. The step is unchanged.
func (b *Builder) ToggleContent(c catalog.Content) {
	for i, picked := range b.selection.Contents {
		if picked.ID == c.ID {
			b.selection.Contents = append(b.selection.Contents[:i:i], b.selection.Contents[i+1:]...)
			return
		}
	}
	b.selection.Contents = append(b.selection.Contents, c)
}

// SetQuantity ignores values below 1.
func (b *Builder) SetQuantity(q int) bool {
	if q < 1 {
		return false
	}
	b.quantity = q
	return true
}

// Continue moves forward one step when the next step's gate holds.
func (b *Builder) Continue() bool {
	if b.step >= LastStep {
		return false
	}
	return b.GoToStep(b.step + 1)
}

// Back moves one step back, never below the first.
func (b *Builder) Back() bool {
	if b.step <= FirstStep {
		return false
	}
	b.step--
	return true
}

func (b *Builder) GoToStep(n Step) bool {
	if !b.selection.CanEnterStep(n) {
		return false
	}
	b.step = n
	return true
}

// Candidate converts the selection into a cart candidate.
func (b *Builder) Candidate() (cart.Candidate, error) {
	s := b.selection
	if !s.Complete() {
		return cart.Candidate{}, ErrIncompleteSelection
	}
	return cart.Candidate{
		Kind:      cart.KindCustom,
		Name:      s.Occasion.Name + " Hamper",
		UnitPrice: s.Price(),
		Quantity:  b.quantity,
		Custom: &cart.CustomHamper{
			Occasion:  s.Occasion.Name,
			Vibe:      s.Vibe.Name,
			Packaging: s.Packaging.Name,
			Contents:  s.ContentNames(),
		},
	}, nil
}

// Commit hands the finished hamper to add and resets the builder. On error
// the selection is kept.
func (b *Builder) Commit(ctx context.Context, add AddFunc) (cart.CartItem, error) {
	c, err := b.Candidate()
	if err != nil {
		return cart.CartItem{}, err
	}
	item, err := add(ctx, c)
	if err != nil {
		return cart.CartItem{}, err
	}
	b.log.Debug().Str("item_id", item.ID).Str("unit_price", c.UnitPrice.String()).Int("quantity", c.Quantity).Msg("hamper committed")
	b.Reset()
	return item, nil
}
